// Package viewport decides which section is in view and schedules rescans
// when the page scrolls, resizes or shifts layout.
package viewport

import (
	"math"
	"strconv"
)

// Surface is the scrollable page as seen by the navigator. Anchor tops are
// measured relative to the top of the viewport, in CSS pixels.
type Surface interface {
	ScrollY() float64
	Height() float64
	AnchorTop(id string) (top float64, mounted bool)
	ScrollTo(y float64, smooth bool)
	PrefersReducedMotion() bool
}

// Params tunes the active-section heuristic.
type Params struct {
	// MaxLine caps the anchor line, in pixels from the top of the viewport.
	MaxLine float64
	// Ratio places the anchor line as a fraction of the viewport height.
	Ratio float64
	// BandTop and BandBottom bound the central band watched for
	// intersection changes, as fractions of the viewport height.
	BandTop    float64
	BandBottom float64
}

// DefaultParams returns the tuned defaults: an anchor line at
// min(180px, 22% of the height) and a band from 22% to 52%.
func DefaultParams() Params {
	return Params{
		MaxLine:    180,
		Ratio:      0.22,
		BandTop:    0.22,
		BandBottom: 0.52,
	}
}

// AnchorLine returns the y coordinate a section's top must cross to count as
// active.
func (p Params) AnchorLine(height float64) float64 {
	return min(p.MaxLine, height*p.Ratio)
}

// RootMargin returns the IntersectionObserver rootMargin that shrinks the
// viewport to the central band, e.g. "-22% 0px -48% 0px".
func (p Params) RootMargin() string {
	return "-" + percent(p.BandTop) + " 0px -" + percent(1-p.BandBottom) + " 0px"
}

func percent(fraction float64) string {
	v := math.Round(fraction*10000) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// ActiveIndex returns the index into ids of the last anchor whose top has
// crossed the anchor line. When no anchor has crossed it yet the first
// section is active. ok is false when no anchor is mounted, in which case the
// caller keeps its previous answer.
func ActiveIndex(s Surface, ids []string, p Params) (index int, ok bool) {
	line := p.AnchorLine(s.Height())
	for i, id := range ids {
		top, mounted := s.AnchorTop(id)
		if !mounted {
			continue
		}
		ok = true
		if top-line <= 0 {
			index = i
		}
	}
	return index, ok
}
