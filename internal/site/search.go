package site

import (
	"bufio"
	"encoding/json"
	"strings"

	"github.com/ziadkadry99/brigade/internal/content"
	"github.com/ziadkadry99/brigade/internal/location"
)

// maxSearchContent truncates the indexed text of one section.
const maxSearchContent = 2000

// SearchEntry represents a single searchable section.
type SearchEntry struct {
	Href    string `json:"href"`
	Group   string `json:"group"`
	Label   string `json:"label"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// BuildSearchIndex builds one entry per section in registry order.
func BuildSearchIndex(lib *content.Library) []SearchEntry {
	codec := location.ForRegistry(lib.Registry)
	entries := make([]SearchEntry, 0, lib.Registry.Len())
	for _, s := range lib.Registry.Sections() {
		entry := parseMarkdownForSearch(lib.Markdown(s.CompositeID()))
		entry.Href = codec.Encode(s.Group, s.ID)
		entry.Group = string(s.Group)
		entry.Label = s.Label
		if entry.Title == "" {
			entry.Title = s.Label
		}
		entries = append(entries, entry)
	}
	return entries
}

// parseMarkdownForSearch extracts the title, the first paragraph line as a
// summary, and the flattened text.
func parseMarkdownForSearch(markdown string) SearchEntry {
	var entry SearchEntry
	var lines []string
	foundTitle := false
	foundSummary := false

	scanner := bufio.NewScanner(strings.NewReader(markdown))
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if !foundTitle && strings.HasPrefix(trimmed, "# ") {
			entry.Title = strings.TrimPrefix(trimmed, "# ")
			foundTitle = true
			continue
		}
		if !foundSummary && !strings.HasPrefix(trimmed, "#") && !strings.HasPrefix(trimmed, "```") {
			entry.Summary = trimmed
			foundSummary = true
		}
		lines = append(lines, trimmed)
	}

	content := strings.Join(lines, " ")
	if len(content) > maxSearchContent {
		content = content[:maxSearchContent]
	}
	entry.Content = content
	return entry
}

// Search returns the entries whose label, title, summary or content contain
// every word of query, case-insensitively. An empty query matches nothing.
func Search(entries []SearchEntry, query string) []SearchEntry {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return nil
	}
	var out []SearchEntry
	for _, e := range entries {
		haystack := strings.ToLower(e.Label + " " + e.Title + " " + e.Summary + " " + e.Content)
		match := true
		for _, w := range words {
			if !strings.Contains(haystack, w) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// MarshalSearchIndex encodes the search index as indented JSON.
func MarshalSearchIndex(entries []SearchEntry) ([]byte, error) {
	return json.MarshalIndent(entries, "", "  ")
}
