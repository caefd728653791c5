package site

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/brigade/internal/content"
	"github.com/ziadkadry99/brigade/internal/progress"
)

func demo(t *testing.T) *content.Library {
	t.Helper()
	lib, err := content.Demo()
	if err != nil {
		t.Fatalf("loading demo: %v", err)
	}
	return lib
}

func TestRenderPageLive(t *testing.T) {
	lib := demo(t)

	var buf bytes.Buffer
	if err := RenderPage(&buf, lib, PageOptions{Live: true}); err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		`<title>Brigade Training Platform</title>`,
		`data-live="true"`,
		`data-socket="/ws/nav"`,
		`data-root-margin="-22% 0px -48% 0px"`,
		`<section id="web-dashboard" class="slide" data-group="web">`,
		`<section id="mobile-profile" class="slide" data-group="mobile">`,
		`class="section-nav"`,
		`href="#web-menus"`,
		`<script src="script.js"></script>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}

	// Sections appear in registry order.
	first := strings.Index(html, `id="web-dashboard"`)
	last := strings.Index(html, `id="mobile-home"`)
	if first < 0 || last < 0 || first > last {
		t.Errorf("web-dashboard (%d) should precede mobile-home (%d)", first, last)
	}
}

func TestRenderPageStatic(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPage(&buf, demo(t), PageOptions{BasePath: "../"}); err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, `data-live="false"`) {
		t.Error("static page should not be live")
	}
	if !strings.Contains(html, `href="../style.css"`) {
		t.Error("expected base path on stylesheet")
	}
}

func TestScriptTakesBandFromPage(t *testing.T) {
	js := Script()
	if !strings.Contains(js, "rootMargin: body.dataset.rootMargin") {
		t.Error("script should read its rootMargin from the page")
	}
	if strings.Contains(js, "-22%") {
		t.Error("script should not hardcode the band")
	}
}

func TestInitialState(t *testing.T) {
	st := InitialState(demo(t).Registry)
	if st.ActiveID != "web-dashboard" {
		t.Errorf("ActiveID = %q, want web-dashboard", st.ActiveID)
	}
	if !st.Expanded["web"] || st.Expanded["mobile"] {
		t.Errorf("Expanded = %v, want web open and mobile closed", st.Expanded)
	}
}

func TestExport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "site")
	var log bytes.Buffer

	n, err := NewExporter(out, &progress.TerminalReporter{Out: &log}).Export(demo(t))
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if n != 4 {
		t.Errorf("files = %d, want 4", n)
	}
	for _, name := range []string{"index.html", "style.css", "script.js", "search-index.json"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	if !strings.Contains(log.String(), "Brigade Training Platform: 4 files") {
		t.Errorf("unexpected progress output: %q", log.String())
	}

	data, err := os.ReadFile(filepath.Join(out, "search-index.json"))
	if err != nil {
		t.Fatal(err)
	}
	var entries []SearchEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(entries) != 10 {
		t.Fatalf("entries = %d, want 10", len(entries))
	}
	if entries[0].Href != "#web-dashboard" {
		t.Errorf("first href = %q", entries[0].Href)
	}
}

func TestParseMarkdownForSearch(t *testing.T) {
	entry := parseMarkdownForSearch("# Menu Builder\n\nGroup recipes into a menu.\n\n## Publishing\n\nAssigns training.\n")
	if entry.Title != "Menu Builder" {
		t.Errorf("Title = %q", entry.Title)
	}
	if entry.Summary != "Group recipes into a menu." {
		t.Errorf("Summary = %q", entry.Summary)
	}
	if !strings.Contains(entry.Content, "Assigns training.") {
		t.Errorf("Content = %q", entry.Content)
	}
}

func TestSearch(t *testing.T) {
	entries := BuildSearchIndex(demo(t))

	if got := Search(entries, ""); got != nil {
		t.Errorf("empty query matched %d entries", len(got))
	}

	got := Search(entries, "MENU")
	if len(got) == 0 {
		t.Fatal("expected matches for menu")
	}
	found := false
	for _, e := range got {
		if e.Href == "#web-menus" {
			found = true
		}
	}
	if !found {
		t.Error("expected #web-menus among results")
	}

	if got := Search(entries, "menu zzzzqx"); len(got) != 0 {
		t.Errorf("expected no results, got %d", len(got))
	}
}
