// Package content loads the presentation: the section registry and the
// markdown body of every section, rendered to HTML.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/brigade/internal/sections"
)

//go:embed demo
var demoFS embed.FS

// DefaultInclude matches every markdown body.
var DefaultInclude = []string{"**/*.md"}

// registryFiles are tried in order at the root of a content directory.
var registryFiles = []string{"registry.yml", "registry.yaml", "registry.toml"}

// Library is one immutable snapshot of the presentation content.
type Library struct {
	Title    string
	Registry *sections.Registry
	bodies   map[string]template.HTML
	sources  map[string]string
}

// Body returns the rendered HTML of a section, or "" if it has none.
func (l *Library) Body(compositeID string) template.HTML {
	return l.bodies[compositeID]
}

// Markdown returns the markdown source of a section, or "".
func (l *Library) Markdown(compositeID string) string {
	return l.sources[compositeID]
}

// Page is one section with its rendered body, in registry order.
type Page struct {
	sections.Section
	AnchorID string
	Body     template.HTML
}

// Pages returns every section with its body in registry order.
func (l *Library) Pages() []Page {
	pages := make([]Page, 0, l.Registry.Len())
	for _, s := range l.Registry.Sections() {
		pages = append(pages, Page{
			Section:  s,
			AnchorID: s.CompositeID(),
			Body:     l.bodies[s.CompositeID()],
		})
	}
	return pages
}

// newMarkdown mirrors the static site renderer: GFM, heading ids and
// highlighted code blocks.
func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

// Demo returns the built-in restaurant-training presentation.
func Demo() (*Library, error) {
	sub, err := fs.Sub(demoFS, "demo")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub, DefaultInclude)
}

// Load reads a content directory from disk.
func Load(dir string, include []string) (*Library, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("content directory %s: %w", dir, err)
	}
	return LoadFS(os.DirFS(dir), include)
}

// LoadFS reads a registry file at the root of fsys and renders every
// "{group}/{sectionId}.md" file matching include. Markdown files that do not
// correspond to a registry section are ignored.
func LoadFS(fsys fs.FS, include []string) (*Library, error) {
	file, err := readRegistry(fsys)
	if err != nil {
		return nil, err
	}
	reg, err := file.Registry()
	if err != nil {
		return nil, fmt.Errorf("building registry: %w", err)
	}

	if len(include) == 0 {
		include = DefaultInclude
	}

	md := newMarkdown()
	lib := &Library{
		Title:    file.Title,
		Registry: reg,
		bodies:   make(map[string]template.HTML),
		sources:  make(map[string]string),
	}
	seen := make(map[string]bool)

	for _, pattern := range include {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("matching %q: %w", pattern, err)
		}
		for _, p := range matches {
			if seen[p] {
				continue
			}
			seen[p] = true

			id, ok := compositeFromPath(p)
			if !ok {
				continue
			}
			if _, known := reg.Get(id); !known {
				continue
			}

			src, err := fs.ReadFile(fsys, p)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", p, err)
			}
			var buf bytes.Buffer
			if err := md.Convert(src, &buf); err != nil {
				return nil, fmt.Errorf("converting %s: %w", p, err)
			}
			lib.bodies[id] = template.HTML(buf.String())
			lib.sources[id] = string(src)
		}
	}

	return lib, nil
}

func readRegistry(fsys fs.FS) (sections.File, error) {
	for _, name := range registryFiles {
		data, err := fs.ReadFile(fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return sections.File{}, fmt.Errorf("reading %s: %w", name, err)
		}
		f, err := sections.Decode(data, sections.Format(name))
		if err != nil {
			return sections.File{}, fmt.Errorf("%s: %w", name, err)
		}
		return f, nil
	}
	return sections.File{}, fmt.Errorf("no registry file (%s)", strings.Join(registryFiles, ", "))
}

// compositeFromPath maps "web/menus.md" to "web-menus".
func compositeFromPath(p string) (string, bool) {
	dir, file := path.Split(p)
	dir = strings.TrimSuffix(dir, "/")
	if dir == "" || strings.Contains(dir, "/") || !strings.HasSuffix(file, ".md") {
		return "", false
	}
	return sections.CompositeID(sections.Group(dir), strings.TrimSuffix(file, ".md")), true
}
