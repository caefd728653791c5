package remote

import "sync"

// surface is the last geometry a client reported. Scroll requests are
// forwarded to the client and applied to the cached geometry so follow-up
// decisions see the predicted position before the client reports back.
type surface struct {
	mu       sync.Mutex
	viewport Viewport
	send     func(ServerMessage)
}

func newSurface(v Viewport, send func(ServerMessage)) *surface {
	s := &surface{send: send}
	s.update(v)
	return s
}

func (s *surface) update(v Viewport) {
	anchors := make(map[string]float64, len(v.Anchors))
	for id, top := range v.Anchors {
		anchors[id] = top
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if v.Anchors == nil && s.viewport.Anchors != nil {
		// Geometry-only update: shift the known anchors by the scroll delta.
		delta := v.ScrollY - s.viewport.ScrollY
		for id, top := range s.viewport.Anchors {
			anchors[id] = top - delta
		}
	}
	v.Anchors = anchors
	s.viewport = v
}

func (s *surface) ScrollY() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport.ScrollY
}

func (s *surface) Height() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport.Height
}

func (s *surface) AnchorTop(id string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	top, ok := s.viewport.Anchors[id]
	return top, ok
}

func (s *surface) PrefersReducedMotion() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport.ReducedMotion
}

func (s *surface) ScrollTo(y float64, smooth bool) {
	s.mu.Lock()
	delta := y - s.viewport.ScrollY
	s.viewport.ScrollY = y
	for id, top := range s.viewport.Anchors {
		s.viewport.Anchors[id] = top - delta
	}
	s.mu.Unlock()

	s.send(ServerMessage{Type: TypeScrollTo, Y: &y, Smooth: smooth})
}

// history forwards fragment rewrites to the client.
type history struct {
	send func(ServerMessage)
}

func (h history) ReplaceHash(fragment string) {
	h.send(ServerMessage{Type: TypeReplaceHash, Hash: fragment})
}
