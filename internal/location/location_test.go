package location

import (
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/brigade/internal/sections"
)

func testRegistry() *sections.Registry {
	return sections.MustNew("web", "mobile", []sections.Section{
		{Group: "web", ID: "dashboard", Label: "Dashboard", Order: 1},
		{Group: "web", ID: "menus", Label: "Menus", Order: 2},
		{Group: "web", ID: "recipe-builder", Label: "Recipe Builder", Order: 3},
		{Group: "mobile", ID: "home", Label: "Home", Order: 1},
	})
}

func TestEncode(t *testing.T) {
	c := NewCodec("web", "mobile")
	assert.Equal(t, "#web-menus", c.Encode("web", "menus"))
	assert.Equal(t, "mobile-home", ElementID("mobile", "home"))
}

func TestRoundTripRegistry(t *testing.T) {
	r := testRegistry()
	c := ForRegistry(r)
	for _, s := range r.Sections() {
		ref, err := c.Decode(c.Encode(s.Group, s.ID))
		require.NoError(t, err, s.CompositeID())
		assert.Equal(t, Ref{Group: s.Group, SectionID: s.ID}, ref)
		assert.Equal(t, s.CompositeID(), ref.CompositeID())
	}
}

func TestRoundTripReservedCharacters(t *testing.T) {
	r := sections.MustNew("web", "mobile", []sections.Section{
		{Group: "web", ID: "50%off", Label: "Fifty Off", Order: 1},
		{Group: "web", ID: "a%20b", Label: "Escaped", Order: 2},
		{Group: "web", ID: "a b", Label: "Spaced", Order: 3},
		{Group: "mobile", ID: "menü#1?x/y", Label: "Reserved", Order: 1},
	})
	c := ForRegistry(r)

	assert.Equal(t, "#web-50%25off", c.Encode("web", "50%off"))
	for _, s := range r.Sections() {
		ref, err := c.Decode(c.Encode(s.Group, s.ID))
		require.NoError(t, err, s.CompositeID())
		assert.Equal(t, Ref{Group: s.Group, SectionID: s.ID}, ref)
		_, ok := r.Get(ref.CompositeID())
		assert.True(t, ok, ref.CompositeID())
	}
}

func TestDecodeRejects(t *testing.T) {
	c := NewCodec("primary", "secondary")
	for _, fragment := range []string{"", "#", "#unknowngroup-x", "#primary-", "#-primary", "#primary", "#primary-   "} {
		_, err := c.Decode(fragment)
		assert.Truef(t, errors.Is(err, ErrInvalidFragment), "Decode(%q) err = %v", fragment, err)
	}
}

func TestDecodeNormalizes(t *testing.T) {
	c := NewCodec("web", "mobile")

	ref, err := c.Decode("#WEB-Menus")
	require.NoError(t, err)
	assert.Equal(t, Ref{Group: "web", SectionID: "menus"}, ref)

	ref, err = c.Decode("web-recipe-builder")
	require.NoError(t, err)
	assert.Equal(t, Ref{Group: "web", SectionID: "recipe-builder"}, ref)

	ref, err = c.Decode("#mobile-%20home")
	require.NoError(t, err)
	assert.Equal(t, "home", ref.SectionID)
}

func TestRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	c := NewCodec("primary", "secondary")

	properties.Property("Decode(Encode(g, id)) == (g, id)", prop.ForAll(
		func(secondary bool, id string) bool {
			g := sections.Group("primary")
			if secondary {
				g = "secondary"
			}
			ref, err := c.Decode(c.Encode(g, id))
			if err != nil {
				return false
			}
			return ref.Group == g && ref.SectionID == id
		},
		gen.Bool(),
		gen.AnyString().SuchThat(func(id string) bool {
			return id != "" && strings.ToLower(id) == id && strings.TrimSpace(id) == id
		}),
	))

	properties.TestingRun(t)
}
