package sections

import (
	"fmt"
	"strings"
)

// Group names one of the two top-level content tracks (e.g. "web", "mobile").
type Group string

// Section is one navigable unit of the presentation.
type Section struct {
	Group Group  `yaml:"group" toml:"group" json:"group"`
	ID    string `yaml:"id" toml:"id" json:"id"`
	Label string `yaml:"label" toml:"label" json:"label"`
	Order int    `yaml:"order" toml:"order" json:"order"`
}

// CompositeID returns "{group}-{id}", the anchor id and lookup key of the section.
func (s Section) CompositeID() string {
	return CompositeID(s.Group, s.ID)
}

// CompositeID joins a group and section id.
func CompositeID(g Group, id string) string {
	return string(g) + "-" + id
}

// Registry is the immutable, ordered set of sections for one page.
// Sections of the primary group come first, then the secondary group,
// each in declaration order.
type Registry struct {
	groups   [2]Group
	sections []Section
	index    map[string]int
}

// New validates the sections and builds a Registry. The first group is the
// primary group, the second the secondary group.
func New(primary, secondary Group, list []Section) (*Registry, error) {
	if err := validateGroup(primary); err != nil {
		return nil, err
	}
	if err := validateGroup(secondary); err != nil {
		return nil, err
	}
	if primary == secondary {
		return nil, fmt.Errorf("groups must be distinct, got %q twice", primary)
	}

	r := &Registry{
		groups: [2]Group{primary, secondary},
		index:  make(map[string]int, len(list)),
	}

	for _, g := range r.groups {
		for _, s := range list {
			if s.Group != g {
				continue
			}
			if err := validateSection(s); err != nil {
				return nil, err
			}
			key := s.CompositeID()
			if _, dup := r.index[key]; dup {
				return nil, fmt.Errorf("duplicate section %q in group %q", s.ID, s.Group)
			}
			r.index[key] = len(r.sections)
			r.sections = append(r.sections, s)
		}
	}

	if len(r.sections) != len(list) {
		for _, s := range list {
			if s.Group != primary && s.Group != secondary {
				return nil, fmt.Errorf("section %q has unknown group %q", s.ID, s.Group)
			}
		}
	}

	return r, nil
}

// MustNew is like New but panics on invalid input. Intended for static tables.
func MustNew(primary, secondary Group, list []Section) *Registry {
	r, err := New(primary, secondary, list)
	if err != nil {
		panic(err)
	}
	return r
}

func validateGroup(g Group) error {
	switch {
	case g == "":
		return fmt.Errorf("group name is required")
	case strings.Contains(string(g), "-"):
		return fmt.Errorf("group %q must not contain '-'", g)
	case strings.ToLower(string(g)) != string(g) || strings.TrimSpace(string(g)) != string(g):
		return fmt.Errorf("group %q must be lowercase without surrounding spaces", g)
	}
	return nil
}

func validateSection(s Section) error {
	switch {
	case s.ID == "":
		return fmt.Errorf("section in group %q has an empty id", s.Group)
	case strings.ToLower(s.ID) != s.ID || strings.TrimSpace(s.ID) != s.ID:
		return fmt.Errorf("section id %q must be lowercase without surrounding spaces", s.ID)
	case s.Order < 1:
		return fmt.Errorf("section %q: order must be positive, got %d", s.CompositeID(), s.Order)
	}
	return nil
}

// Groups returns the primary and secondary group names.
func (r *Registry) Groups() [2]Group { return r.groups }

// Primary returns the first group.
func (r *Registry) Primary() Group { return r.groups[0] }

// Secondary returns the second group.
func (r *Registry) Secondary() Group { return r.groups[1] }

// HasGroup reports whether g is one of the registry's two groups.
func (r *Registry) HasGroup(g Group) bool {
	return g == r.groups[0] || g == r.groups[1]
}

// Len returns the total number of sections.
func (r *Registry) Len() int { return len(r.sections) }

// At returns the section at flat index i.
func (r *Registry) At(i int) Section { return r.sections[i] }

// Sections returns a copy of the flat ordered section list.
func (r *Registry) Sections() []Section {
	out := make([]Section, len(r.sections))
	copy(out, r.sections)
	return out
}

// CompositeIDs returns the composite ids in flat order.
func (r *Registry) CompositeIDs() []string {
	ids := make([]string, len(r.sections))
	for i, s := range r.sections {
		ids[i] = s.CompositeID()
	}
	return ids
}

// IndexOf returns the flat index of a composite id.
func (r *Registry) IndexOf(compositeID string) (int, bool) {
	i, ok := r.index[compositeID]
	return i, ok
}

// Get returns the section with the given composite id.
func (r *Registry) Get(compositeID string) (Section, bool) {
	i, ok := r.index[compositeID]
	if !ok {
		return Section{}, false
	}
	return r.sections[i], true
}

// Lookup returns the section identified by group and section id.
func (r *Registry) Lookup(g Group, id string) (Section, bool) {
	return r.Get(CompositeID(g, id))
}

// InGroup returns the sections of one group in order.
func (r *Registry) InGroup(g Group) []Section {
	var out []Section
	for _, s := range r.sections {
		if s.Group == g {
			out = append(out, s)
		}
	}
	return out
}

// First returns the first section of a group.
func (r *Registry) First(g Group) (Section, bool) {
	for _, s := range r.sections {
		if s.Group == g {
			return s, true
		}
	}
	return Section{}, false
}

// Position returns the display order of a section and the size of its group,
// for "n of total" labels.
func (r *Registry) Position(compositeID string) (order, total int, ok bool) {
	s, ok := r.Get(compositeID)
	if !ok {
		return 0, 0, false
	}
	for _, other := range r.sections {
		if other.Group == s.Group {
			total++
		}
	}
	return s.Order, total, true
}
