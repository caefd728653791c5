package remote

import "github.com/ziadkadry99/brigade/internal/panel"

// Client → server message types.
const (
	TypeMount      = "mount"
	TypeScroll     = "scroll"
	TypeResize     = "resize"
	TypeIntersect  = "intersect"
	TypeHashChange = "hashchange"
	TypeNavigate   = "navigate"
	TypeStep       = "step"
	TypeToggle     = "toggle"
	TypeOpen       = "open"
)

// Server → client message types.
const (
	TypeHello       = "hello"
	TypeScrollTo    = "scroll_to"
	TypeReplaceHash = "replace_hash"
	TypeState       = "state"
	TypeError       = "error"
)

// Viewport is the page geometry a client reports. Anchor tops are relative
// to the top of the viewport.
type Viewport struct {
	ScrollY       float64            `json:"scroll_y"`
	Height        float64            `json:"height"`
	ReducedMotion bool               `json:"reduced_motion"`
	Anchors       map[string]float64 `json:"anchors,omitempty"`
}

// ClientMessage is any message a page sends.
type ClientMessage struct {
	Type         string    `json:"type"`
	SessionID    string    `json:"session_id,omitempty"`
	Hash         string    `json:"hash,omitempty"`
	Viewport     *Viewport `json:"viewport,omitempty"`
	ID           string    `json:"id,omitempty"`
	Intersecting bool      `json:"intersecting,omitempty"`
	Delta        int       `json:"delta,omitempty"`
	Group        string    `json:"group,omitempty"`
	Open         bool      `json:"open,omitempty"`
}

// ServerMessage is any message the server sends.
type ServerMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"session_id,omitempty"`
	Y         *float64    `json:"y,omitempty"`
	Smooth    bool        `json:"smooth,omitempty"`
	Hash      string      `json:"hash,omitempty"`
	State     *panel.View `json:"state,omitempty"`
	Message   string      `json:"message,omitempty"`
}
