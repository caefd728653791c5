package nav

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/brigade/internal/location"
	"github.com/ziadkadry99/brigade/internal/sections"
	"github.com/ziadkadry99/brigade/internal/viewport"
)

// Config wires a Controller to its page.
type Config struct {
	Registry    *sections.Registry
	Surface     viewport.Surface
	History     History
	LastVisited LastVisited
	Logger      *zap.Logger

	Params viewport.Params
	// HeaderOffset is subtracted from scroll targets so the fixed header
	// does not cover the section. nil selects DefaultHeaderOffset; an
	// explicit 0 scrolls flush to the anchor.
	HeaderOffset    *float64
	InstantCooldown time.Duration
	SmoothCooldown  time.Duration
	Clock           Clock

	// OnChange receives a snapshot after every state change. It runs on the
	// controller goroutine and must not call back into the Controller.
	OnChange func(State)
}

// Controller is the single writer of navigation state. Every exported method
// is executed on the controller goroutine, in call order.
type Controller struct {
	reg    *sections.Registry
	codec  location.Codec
	ids    []string
	cfg    Config
	logger *zap.Logger

	requests chan func()
	done     chan struct{}
	stopped  chan struct{}
	once     sync.Once

	// Owned by the controller goroutine.
	active   string
	expanded map[sections.Group]bool
	gen      uint64
	cooling  bool
	timer    Timer
}

// New validates cfg and starts the controller goroutine. Close releases it.
func New(cfg Config) (*Controller, error) {
	if cfg.Registry == nil {
		return nil, errors.New("nav: registry is required")
	}
	if cfg.Surface == nil {
		return nil, errors.New("nav: surface is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Params == (viewport.Params{}) {
		cfg.Params = viewport.DefaultParams()
	}
	if cfg.HeaderOffset == nil {
		offset := DefaultHeaderOffset
		cfg.HeaderOffset = &offset
	}
	if cfg.InstantCooldown <= 0 {
		cfg.InstantCooldown = DefaultInstantCooldown
	}
	if cfg.SmoothCooldown <= 0 {
		cfg.SmoothCooldown = DefaultSmoothCooldown
	}
	if cfg.Clock == nil {
		cfg.Clock = RealClock
	}

	c := &Controller{
		reg:      cfg.Registry,
		codec:    location.ForRegistry(cfg.Registry),
		ids:      cfg.Registry.CompositeIDs(),
		cfg:      cfg,
		logger:   cfg.Logger,
		requests: make(chan func()),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		expanded: map[sections.Group]bool{
			cfg.Registry.Primary():   true,
			cfg.Registry.Secondary(): false,
		},
	}
	go c.loop()
	return c, nil
}

func (c *Controller) loop() {
	defer close(c.stopped)
	defer c.stopTimer()

	for {
		select {
		case <-c.done:
			return
		case fn := <-c.requests:
			fn()
		}
	}
}

// do runs fn on the controller goroutine and waits for it. It reports false
// if the controller is closed.
func (c *Controller) do(fn func()) bool {
	finished := make(chan struct{})
	select {
	case c.requests <- func() { fn(); close(finished) }:
	case <-c.done:
		return false
	}
	<-finished
	return true
}

// Close stops the cooldown timer and the controller goroutine. It is safe to
// call more than once.
func (c *Controller) Close() {
	c.once.Do(func() { close(c.done) })
	<-c.stopped
}

// Registry returns the registry the controller navigates.
func (c *Controller) Registry() *sections.Registry { return c.reg }

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	var s State
	c.do(func() { s = c.snapshot() })
	return s
}

// Initialize seeds the active section from, in order: the URL fragment, the
// persisted last-visited section (primary group, then secondary), the first
// primary section, the first section overall. It returns "" for an empty
// registry.
func (c *Controller) Initialize(fragment string) string {
	var id string
	c.do(func() {
		id = c.resolveInitial(fragment)
		c.active = id
		if s, ok := c.reg.Get(id); ok && s.Group == c.reg.Secondary() {
			c.expanded[s.Group] = true
		}
		c.logger.Debug("navigation initialized", zap.String("active", id), zap.String("fragment", fragment))
		c.notify()
	})
	return id
}

func (c *Controller) resolveInitial(fragment string) string {
	if ref, err := c.codec.Decode(fragment); err == nil {
		if s, ok := c.reg.Lookup(ref.Group, ref.SectionID); ok {
			return s.CompositeID()
		}
	}
	if c.cfg.LastVisited != nil {
		for _, g := range c.reg.Groups() {
			id, ok := c.cfg.LastVisited.Get(g)
			if !ok {
				continue
			}
			if s, ok := c.reg.Lookup(g, id); ok {
				return s.CompositeID()
			}
		}
	}
	if s, ok := c.reg.First(c.reg.Primary()); ok {
		return s.CompositeID()
	}
	if c.reg.Len() > 0 {
		return c.reg.At(0).CompositeID()
	}
	return ""
}

// NavigateTo scrolls to the section and makes it active. It returns false
// when the id is unknown or its anchor is not mounted; callers treat that as
// a no-op.
func (c *Controller) NavigateTo(compositeID string, opts Options) bool {
	var ok bool
	c.do(func() { ok = c.navigateTo(compositeID, opts) })
	return ok
}

func (c *Controller) navigateTo(compositeID string, opts Options) bool {
	s, ok := c.reg.Get(compositeID)
	if !ok {
		return false
	}
	top, mounted := c.cfg.Surface.AnchorTop(compositeID)
	if !mounted {
		return false
	}

	c.gen++
	c.cooling = true

	target := max(0, c.cfg.Surface.ScrollY()+top-*c.cfg.HeaderOffset)
	smooth := opts.Behavior == Smooth && !c.cfg.Surface.PrefersReducedMotion()
	c.cfg.Surface.ScrollTo(target, smooth)

	c.activate(s, opts.UpdateHash)

	cooldown := c.cfg.InstantCooldown
	if smooth {
		cooldown = c.cfg.SmoothCooldown
	}
	c.armCooldown(cooldown)

	c.logger.Debug("navigated",
		zap.String("section", compositeID),
		zap.Float64("target", target),
		zap.Bool("smooth", smooth),
		zap.Uint64("generation", c.gen))
	c.notify()
	return true
}

// activate records s as active, expands its group, persists it and
// optionally rewrites the fragment.
func (c *Controller) activate(s sections.Section, updateHash bool) {
	c.active = s.CompositeID()
	if !c.expanded[s.Group] {
		c.expanded[s.Group] = true
	}
	if c.cfg.LastVisited != nil {
		c.cfg.LastVisited.Set(s.Group, s.ID)
	}
	if updateHash && c.cfg.History != nil {
		c.cfg.History.ReplaceHash(c.codec.Encode(s.Group, s.ID))
	}
}

func (c *Controller) armCooldown(d time.Duration) {
	c.stopTimer()
	gen := c.gen
	c.timer = c.cfg.Clock.AfterFunc(d, func() {
		c.do(func() { c.expire(gen) })
	})
}

// expire ends the cooldown armed by generation gen. A timer from an older
// navigation leaves a newer cooldown in place.
func (c *Controller) expire(gen uint64) {
	if gen != c.gen || !c.cooling {
		return
	}
	c.cooling = false
	c.timer = nil
	c.notify()
}

func (c *Controller) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// NavigateByOffset moves delta sections forward or backward from the section
// currently in view, clamped to the registry. Moving past either end is a
// no-op. It reports whether a navigation happened.
func (c *Controller) NavigateByOffset(delta int) bool {
	var ok bool
	c.do(func() {
		n := c.reg.Len()
		if n == 0 {
			return
		}
		cur, measured := viewport.ActiveIndex(c.cfg.Surface, c.ids, c.cfg.Params)
		if !measured {
			cur, _ = c.reg.IndexOf(c.active)
		}
		target := min(max(cur+delta, 0), n-1)
		if target == cur {
			return
		}
		ok = c.navigateTo(c.ids[target], DefaultOptions())
	})
	return ok
}

// SyncFromViewport adopts the section the viewport heuristic reports as in
// view. It does nothing while a programmatic scroll is settling. It reports
// whether the active section changed.
func (c *Controller) SyncFromViewport() bool {
	var changed bool
	c.do(func() {
		if c.cooling {
			return
		}
		i, ok := viewport.ActiveIndex(c.cfg.Surface, c.ids, c.cfg.Params)
		if !ok || c.ids[i] == c.active {
			return
		}
		c.activate(c.reg.At(i), true)
		changed = true
		c.logger.Debug("synced from viewport", zap.String("section", c.active))
		c.notify()
	})
	return changed
}

// HandleHashChange navigates to the section named by a fragment the user
// entered or followed. Unknown or malformed fragments are ignored.
func (c *Controller) HandleHashChange(fragment string) bool {
	ref, err := c.codec.Decode(fragment)
	if err != nil {
		return false
	}
	return c.NavigateTo(ref.CompositeID(), Options{Behavior: Smooth, UpdateHash: false})
}

// ToggleGroup flips the disclosure state of a group.
func (c *Controller) ToggleGroup(g sections.Group) {
	c.do(func() {
		if !c.reg.HasGroup(g) {
			return
		}
		c.expanded[g] = !c.expanded[g]
		c.notify()
	})
}

func (c *Controller) snapshot() State {
	expanded := make(map[sections.Group]bool, len(c.expanded))
	for g, v := range c.expanded {
		expanded[g] = v
	}
	return State{
		ActiveID:     c.active,
		Expanded:     expanded,
		Programmatic: c.cooling,
		Generation:   c.gen,
	}
}

func (c *Controller) notify() {
	if c.cfg.OnChange != nil {
		c.cfg.OnChange(c.snapshot())
	}
}
