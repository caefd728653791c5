package viewport

import (
	"sort"
	"sync"
	"time"
)

// DefaultFrameInterval approximates one animation frame.
const DefaultFrameInterval = 16 * time.Millisecond

// Observer coalesces scroll, resize and intersection signals into at most one
// rescan per frame interval. It never decides the active section itself; it
// only calls rescan.
type Observer struct {
	rescan   func()
	interval time.Duration

	signals chan struct{}
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once

	mu     sync.Mutex
	inBand map[string]bool
}

// NewObserver starts an observer that calls rescan from its own goroutine.
// Close must be called to release it.
func NewObserver(rescan func(), interval time.Duration) *Observer {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	o := &Observer{
		rescan:   rescan,
		interval: interval,
		signals:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		inBand:   make(map[string]bool),
	}
	go o.loop()
	return o
}

// Scroll records a scroll event.
func (o *Observer) Scroll() { o.request() }

// Resize records a resize event.
func (o *Observer) Resize() { o.request() }

// Intersect records whether the section id currently intersects the central
// band. Only membership changes request a rescan.
func (o *Observer) Intersect(id string, intersecting bool) {
	o.mu.Lock()
	changed := o.inBand[id] != intersecting
	if intersecting {
		o.inBand[id] = true
	} else {
		delete(o.inBand, id)
	}
	o.mu.Unlock()

	if changed {
		o.request()
	}
}

// Intersecting returns the ids currently inside the band, sorted.
func (o *Observer) Intersecting() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	ids := make([]string, 0, len(o.inBand))
	for id := range o.inBand {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (o *Observer) request() {
	select {
	case o.signals <- struct{}{}:
	default:
	}
}

// Close stops the observer and waits for its goroutine to exit. Pending
// rescans are dropped.
func (o *Observer) Close() {
	o.once.Do(func() { close(o.done) })
	<-o.stopped
}

func (o *Observer) loop() {
	defer close(o.stopped)

	var (
		timer *time.Timer
		frame <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-o.done:
			return
		case <-o.signals:
			if timer == nil {
				timer = time.NewTimer(o.interval)
				frame = timer.C
			}
		case <-frame:
			timer, frame = nil, nil
			o.rescan()
		}
	}
}
