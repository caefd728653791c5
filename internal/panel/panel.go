// Package panel is the disclosure menu over the navigation controller: a
// view model of the registry and the actions its buttons trigger.
package panel

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ziadkadry99/brigade/internal/location"
	"github.com/ziadkadry99/brigade/internal/nav"
	"github.com/ziadkadry99/brigade/internal/sections"
)

// Navigator is the subset of nav.Controller the panel drives.
type Navigator interface {
	NavigateTo(compositeID string, opts nav.Options) bool
	NavigateByOffset(delta int) bool
	ToggleGroup(g sections.Group)
	State() nav.State
}

// Item is one section entry in the menu.
type Item struct {
	CompositeID string `json:"composite_id"`
	SectionID   string `json:"section_id"`
	Label       string `json:"label"`
	Order       int    `json:"order"`
	Href        string `json:"href"`
	Active      bool   `json:"active"`
}

// GroupView is one collapsible group of the menu.
type GroupView struct {
	Group    sections.Group `json:"group"`
	Label    string         `json:"label"`
	Expanded bool           `json:"expanded"`
	// Position is the display order of the active section when it belongs
	// to this group, otherwise 0.
	Position int    `json:"position"`
	Total    int    `json:"total"`
	Items    []Item `json:"items"`
}

// View is everything the panel renders.
type View struct {
	ActiveID    string      `json:"active_id"`
	ActiveLabel string      `json:"active_label"`
	Progress    string      `json:"progress"`
	Groups      []GroupView `json:"groups"`
	HasPrev     bool        `json:"has_prev"`
	HasNext     bool        `json:"has_next"`
	Open        bool        `json:"open"`
}

// Build derives the view from the registry and a state snapshot.
func Build(reg *sections.Registry, st nav.State) View {
	codec := location.ForRegistry(reg)
	v := View{ActiveID: st.ActiveID}

	for _, g := range reg.Groups() {
		gv := GroupView{
			Group:    g,
			Label:    GroupLabel(g),
			Expanded: st.Expanded[g],
		}
		for _, s := range reg.InGroup(g) {
			active := s.CompositeID() == st.ActiveID
			if active {
				gv.Position = s.Order
				v.ActiveLabel = s.Label
			}
			gv.Items = append(gv.Items, Item{
				CompositeID: s.CompositeID(),
				SectionID:   s.ID,
				Label:       s.Label,
				Order:       s.Order,
				Href:        codec.Encode(s.Group, s.ID),
				Active:      active,
			})
		}
		gv.Total = len(gv.Items)
		v.Groups = append(v.Groups, gv)
	}

	if order, total, ok := reg.Position(st.ActiveID); ok {
		v.Progress = fmt.Sprintf("%d of %d", order, total)
	}
	if i, ok := reg.IndexOf(st.ActiveID); ok {
		v.HasPrev = i > 0
		v.HasNext = i < reg.Len()-1
	} else {
		v.HasNext = reg.Len() > 1
	}
	return v
}

// GroupLabel title-cases a group name for display ("web" -> "Web").
func GroupLabel(g sections.Group) string {
	words := strings.FieldsFunc(string(g), func(c rune) bool {
		return c == '_' || c == '.'
	})
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Panel holds the open/closed disclosure state and forwards clicks to the
// navigator.
type Panel struct {
	nav Navigator
	reg *sections.Registry

	mu   sync.Mutex
	open bool
}

// New returns a closed panel.
func New(reg *sections.Registry, n Navigator) *Panel {
	return &Panel{nav: n, reg: reg}
}

// SetOpen opens or closes the disclosure.
func (p *Panel) SetOpen(open bool) {
	p.mu.Lock()
	p.open = open
	p.mu.Unlock()
}

// IsOpen reports whether the disclosure is open.
func (p *Panel) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

// Select navigates to a section and closes the panel.
func (p *Panel) Select(compositeID string) bool {
	ok := p.nav.NavigateTo(compositeID, nav.DefaultOptions())
	p.SetOpen(false)
	return ok
}

// Step moves to the previous (-1) or next (+1) section and closes the panel.
func (p *Panel) Step(delta int) bool {
	ok := p.nav.NavigateByOffset(delta)
	p.SetOpen(false)
	return ok
}

// Toggle expands or collapses a group; the panel stays open.
func (p *Panel) Toggle(g sections.Group) {
	p.nav.ToggleGroup(g)
}

// View builds the current view.
func (p *Panel) View() View {
	v := Build(p.reg, p.nav.State())
	v.Open = p.IsOpen()
	return v
}
