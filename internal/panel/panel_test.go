package panel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/brigade/internal/nav"
	"github.com/ziadkadry99/brigade/internal/sections"
)

func registry() *sections.Registry {
	return sections.MustNew("web", "mobile", []sections.Section{
		{Group: "web", ID: "dashboard", Label: "Dashboard", Order: 1},
		{Group: "web", ID: "menus", Label: "Menus", Order: 2},
		{Group: "mobile", ID: "home", Label: "Home", Order: 1},
	})
}

type stubNavigator struct {
	state    nav.State
	targets  []string
	deltas   []int
	toggled  []sections.Group
	navigate bool
}

func (s *stubNavigator) NavigateTo(id string, opts nav.Options) bool {
	s.targets = append(s.targets, id)
	if s.navigate {
		s.state.ActiveID = id
	}
	return s.navigate
}

func (s *stubNavigator) NavigateByOffset(delta int) bool {
	s.deltas = append(s.deltas, delta)
	return s.navigate
}

func (s *stubNavigator) ToggleGroup(g sections.Group) {
	s.toggled = append(s.toggled, g)
	s.state.Expanded[g] = !s.state.Expanded[g]
}

func (s *stubNavigator) State() nav.State { return s.state }

func TestBuild(t *testing.T) {
	v := Build(registry(), nav.State{
		ActiveID: "web-menus",
		Expanded: map[sections.Group]bool{"web": true},
	})

	assert.Equal(t, "Menus", v.ActiveLabel)
	assert.Equal(t, "2 of 2", v.Progress)
	assert.True(t, v.HasPrev)
	assert.True(t, v.HasNext)

	require.Len(t, v.Groups, 2)
	web, mobile := v.Groups[0], v.Groups[1]
	assert.Equal(t, "Web", web.Label)
	assert.True(t, web.Expanded)
	assert.Equal(t, 2, web.Position)
	assert.Equal(t, 2, web.Total)
	assert.Equal(t, "#web-menus", web.Items[1].Href)
	assert.True(t, web.Items[1].Active)
	assert.False(t, web.Items[0].Active)

	assert.False(t, mobile.Expanded)
	assert.Equal(t, 0, mobile.Position)
	assert.Equal(t, 1, mobile.Total)
}

func TestBuildEnds(t *testing.T) {
	v := Build(registry(), nav.State{ActiveID: "web-dashboard"})
	assert.False(t, v.HasPrev)
	assert.True(t, v.HasNext)

	v = Build(registry(), nav.State{ActiveID: "mobile-home"})
	assert.True(t, v.HasPrev)
	assert.False(t, v.HasNext)
	assert.Equal(t, "1 of 1", v.Progress)
}

func TestPanelActionsCloseDisclosure(t *testing.T) {
	stub := &stubNavigator{navigate: true, state: nav.State{Expanded: map[sections.Group]bool{}}}
	p := New(registry(), stub)

	p.SetOpen(true)
	assert.True(t, p.Select("web-menus"))
	assert.False(t, p.IsOpen())
	assert.Equal(t, []string{"web-menus"}, stub.targets)

	p.SetOpen(true)
	p.Toggle("mobile")
	assert.True(t, p.IsOpen(), "toggling a group keeps the panel open")
	assert.True(t, p.View().Groups[1].Expanded)

	assert.True(t, p.Step(1))
	assert.False(t, p.IsOpen())
	assert.Equal(t, []int{1}, stub.deltas)

	v := p.View()
	assert.Equal(t, "web-menus", v.ActiveID)
	assert.False(t, v.Open)
}

func TestRender(t *testing.T) {
	v := Build(registry(), nav.State{
		ActiveID: "web-dashboard",
		Expanded: map[sections.Group]bool{"web": true},
	})
	v.Open = true

	var b strings.Builder
	require.NoError(t, Render(&b, v))
	html := b.String()

	assert.Contains(t, html, `class="section-nav open"`)
	assert.Contains(t, html, `href="#web-menus"`)
	assert.Contains(t, html, `data-section="web-dashboard" class="active" aria-current="true"`)
	assert.Contains(t, html, `data-step="-1" disabled`)
	assert.Contains(t, html, `1 of 2`)
}

func TestGroupLabel(t *testing.T) {
	assert.Equal(t, "Web", GroupLabel("web"))
	assert.Equal(t, "Line Cook", GroupLabel("line_cook"))
}
