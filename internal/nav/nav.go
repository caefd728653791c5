// Package nav implements the presentation navigation controller: it owns the
// active section, drives programmatic scrolling, and reconciles passive
// viewport changes without feedback loops.
package nav

import (
	"time"

	"github.com/ziadkadry99/brigade/internal/sections"
)

// Behavior selects how a programmatic scroll animates.
type Behavior int

const (
	Smooth Behavior = iota
	Instant
)

func (b Behavior) String() string {
	if b == Instant {
		return "instant"
	}
	return "smooth"
}

// Options controls a single NavigateTo call.
type Options struct {
	Behavior Behavior
	// UpdateHash rewrites the URL fragment. Disable it when reacting to a
	// hashchange so the page does not echo its own event.
	UpdateHash bool
}

// DefaultOptions scrolls smoothly and updates the fragment.
func DefaultOptions() Options {
	return Options{Behavior: Smooth, UpdateHash: true}
}

// History replaces the page's URL fragment without adding a history entry.
type History interface {
	ReplaceHash(fragment string)
}

// LastVisited stores the last-visited section id per group.
type LastVisited interface {
	Get(g sections.Group) (string, bool)
	Set(g sections.Group, sectionID string)
}

// State is a snapshot of the navigation state.
type State struct {
	ActiveID string                  `json:"active_id"`
	Expanded map[sections.Group]bool `json:"expanded"`
	// Programmatic is true while a controller-initiated scroll is settling.
	Programmatic bool   `json:"programmatic"`
	Generation   uint64 `json:"generation"`
}

// Timer is a stoppable one-shot timer.
type Timer interface {
	Stop() bool
}

// Clock schedules one-shot callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock is the wall-clock Clock.
var RealClock Clock = realClock{}

const (
	DefaultHeaderOffset    = 55.0
	DefaultInstantCooldown = 120 * time.Millisecond
	DefaultSmoothCooldown  = 900 * time.Millisecond
)
