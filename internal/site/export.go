package site

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ziadkadry99/brigade/internal/content"
	"github.com/ziadkadry99/brigade/internal/progress"
)

// Exporter writes a presentation as static files.
type Exporter struct {
	OutputDir string
	Reporter  progress.Reporter
}

// NewExporter creates an Exporter writing into outputDir.
func NewExporter(outputDir string, reporter progress.Reporter) *Exporter {
	if reporter == nil {
		reporter = progress.Nop{}
	}
	return &Exporter{OutputDir: outputDir, Reporter: reporter}
}

// Export writes index.html, style.css, script.js and search-index.json.
// It returns the number of files written.
func (e *Exporter) Export(lib *content.Library) (int, error) {
	if err := os.MkdirAll(e.OutputDir, 0o755); err != nil {
		return 0, err
	}

	var page bytes.Buffer
	if err := RenderPage(&page, lib, PageOptions{}); err != nil {
		return 0, fmt.Errorf("rendering page: %w", err)
	}
	index, err := MarshalSearchIndex(BuildSearchIndex(lib))
	if err != nil {
		return 0, fmt.Errorf("encoding search index: %w", err)
	}

	files := []struct {
		name string
		data []byte
	}{
		{"index.html", page.Bytes()},
		{"style.css", []byte(cssContent)},
		{"script.js", []byte(jsContent)},
		{"search-index.json", index},
	}

	e.Reporter.Begin(lib.Title, len(files))
	defer e.Reporter.End(e.OutputDir)

	for i, f := range files {
		if err := os.WriteFile(filepath.Join(e.OutputDir, f.name), f.data, 0o644); err != nil {
			return i, fmt.Errorf("writing %s: %w", f.name, err)
		}
		e.Reporter.Wrote(progress.File{Name: f.name, Bytes: len(f.data)})
	}
	return len(files), nil
}
