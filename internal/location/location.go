// Package location maps sections to URL fragments and DOM element ids.
package location

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ziadkadry99/brigade/internal/sections"
)

// ErrInvalidFragment is wrapped by every Decode failure.
var ErrInvalidFragment = errors.New("invalid fragment")

// Ref identifies a section by group and section id.
type Ref struct {
	Group     sections.Group
	SectionID string
}

// CompositeID returns the registry lookup key for the ref.
func (r Ref) CompositeID() string {
	return sections.CompositeID(r.Group, r.SectionID)
}

// Codec encodes and decodes fragments for a fixed pair of groups.
type Codec struct {
	groups [2]sections.Group
}

// NewCodec returns a Codec that accepts the two given groups.
func NewCodec(primary, secondary sections.Group) Codec {
	return Codec{groups: [2]sections.Group{primary, secondary}}
}

// ForRegistry returns a Codec for the registry's groups.
func ForRegistry(r *sections.Registry) Codec {
	return Codec{groups: r.Groups()}
}

// Encode returns "#{group}-{sectionID}" with both tokens percent-escaped,
// so Decode recovers ids containing '%', spaces or other reserved bytes.
func (c Codec) Encode(g sections.Group, sectionID string) string {
	return "#" + url.PathEscape(string(g)) + "-" + url.PathEscape(sectionID)
}

// ElementID returns the DOM anchor id "{group}-{sectionID}".
func ElementID(g sections.Group, sectionID string) string {
	return sections.CompositeID(g, sectionID)
}

// Decode parses a fragment such as "#web-menus". The leading '#' is
// optional. The split happens on the first '-'.
func (c Codec) Decode(fragment string) (Ref, error) {
	raw := strings.TrimPrefix(fragment, "#")
	if raw == "" {
		return Ref{}, fmt.Errorf("%w: empty", ErrInvalidFragment)
	}
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	} else {
		return Ref{}, fmt.Errorf("%w: %v", ErrInvalidFragment, err)
	}

	sep := strings.IndexByte(raw, '-')
	if sep <= 0 {
		return Ref{}, fmt.Errorf("%w: no group separator in %q", ErrInvalidFragment, fragment)
	}

	group := sections.Group(strings.ToLower(raw[:sep]))
	if group != c.groups[0] && group != c.groups[1] {
		return Ref{}, fmt.Errorf("%w: unknown group %q", ErrInvalidFragment, group)
	}

	id := strings.ToLower(strings.TrimSpace(raw[sep+1:]))
	if id == "" {
		return Ref{}, fmt.Errorf("%w: empty section in %q", ErrInvalidFragment, fragment)
	}

	return Ref{Group: group, SectionID: id}, nil
}
