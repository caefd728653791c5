// Package site renders a presentation as a single HTML page, either served
// live with the navigator attached or exported as static files.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/ziadkadry99/brigade/internal/content"
	"github.com/ziadkadry99/brigade/internal/nav"
	"github.com/ziadkadry99/brigade/internal/panel"
	"github.com/ziadkadry99/brigade/internal/sections"
	"github.com/ziadkadry99/brigade/internal/viewport"
)

// DefaultSocketPath is where the live page connects its navigator.
const DefaultSocketPath = "/ws/nav"

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// PageOptions controls how a page is rendered.
type PageOptions struct {
	// BasePath prefixes the style.css and script.js references.
	BasePath string
	// Live attaches the page to the navigator websocket at SocketPath.
	Live       bool
	SocketPath string
	// Params sets the band the page's intersection observer watches. The
	// zero value selects viewport.DefaultParams.
	Params viewport.Params
}

type pageSection struct {
	content.Page
	GroupLabel string
}

type pageData struct {
	Title      string
	BasePath   string
	Live       bool
	SocketPath string
	RootMargin string
	Panel      template.HTML
	Pages      []pageSection
}

// InitialState is the navigation state a page is first rendered with,
// before the navigator has seen the fragment or the session.
func InitialState(reg *sections.Registry) nav.State {
	st := nav.State{Expanded: map[sections.Group]bool{
		reg.Primary():   true,
		reg.Secondary(): false,
	}}
	if s, ok := reg.First(reg.Primary()); ok {
		st.ActiveID = s.CompositeID()
	} else if reg.Len() > 0 {
		st.ActiveID = reg.At(0).CompositeID()
	}
	return st
}

// RenderPage writes the full presentation page.
func RenderPage(w io.Writer, lib *content.Library, opts PageOptions) error {
	if opts.Live && opts.SocketPath == "" {
		opts.SocketPath = DefaultSocketPath
	}
	if opts.Params == (viewport.Params{}) {
		opts.Params = viewport.DefaultParams()
	}

	var menu bytes.Buffer
	if err := panel.Render(&menu, panel.Build(lib.Registry, InitialState(lib.Registry))); err != nil {
		return fmt.Errorf("rendering panel: %w", err)
	}

	title := lib.Title
	if title == "" {
		title = "Presentation"
	}

	data := pageData{
		Title:      title,
		BasePath:   opts.BasePath,
		Live:       opts.Live,
		SocketPath: opts.SocketPath,
		RootMargin: opts.Params.RootMargin(),
		Panel:      template.HTML(menu.String()),
	}
	for _, p := range lib.Pages() {
		data.Pages = append(data.Pages, pageSection{Page: p, GroupLabel: panel.GroupLabel(p.Group)})
	}

	return pageTmpl.Execute(w, data)
}

// StyleSheet returns the page CSS.
func StyleSheet() string { return cssContent }

// Script returns the page JavaScript.
func Script() string { return jsContent }
