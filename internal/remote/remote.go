// Package remote drives a navigation controller from a browser over a
// websocket. The page reports its geometry and user input; the server
// decides the active section and answers with scroll and fragment
// instructions plus the panel view.
package remote

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/brigade/internal/content"
	"github.com/ziadkadry99/brigade/internal/location"
	"github.com/ziadkadry99/brigade/internal/nav"
	"github.com/ziadkadry99/brigade/internal/panel"
	"github.com/ziadkadry99/brigade/internal/sections"
	"github.com/ziadkadry99/brigade/internal/session"
	"github.com/ziadkadry99/brigade/internal/viewport"
)

const (
	mountTimeout = 10 * time.Second
	writeTimeout = 10 * time.Second
	outboxSize   = 64
)

// Config holds what every connection needs.
type Config struct {
	// Library returns the content snapshot a new connection binds to.
	Library func() *content.Library
	Store   session.Store
	Logger  *zap.Logger

	Params viewport.Params
	// HeaderOffset is passed to every controller; nil selects the default.
	HeaderOffset    *float64
	InstantCooldown time.Duration
	SmoothCooldown  time.Duration
	FrameInterval   time.Duration
}

// Handler upgrades GET /ws/nav requests and runs one navigator per
// connection.
type Handler struct {
	cfg      Config
	upgrader websocket.Upgrader
	wg       sync.WaitGroup
}

// NewHandler returns a Handler. A nil Store keeps last-visited state in
// memory.
func NewHandler(cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Store == nil {
		cfg.Store = session.NewMemoryStore()
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = viewport.DefaultFrameInterval
	}
	return &Handler{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Wait blocks until every connection served so far has been released.
func (h *Handler) Wait() { h.wg.Wait() }

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.wg.Add(1)
	defer h.wg.Done()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.cfg.Logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(mountTimeout))
	var mount ClientMessage
	if err := conn.ReadJSON(&mount); err != nil || mount.Type != TypeMount || mount.Viewport == nil {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		conn.WriteJSON(ServerMessage{Type: TypeError, Message: "expected a mount message with a viewport"})
		return
	}
	conn.SetReadDeadline(time.Time{})

	lib := h.cfg.Library()
	sid := mount.SessionID
	if _, err := uuid.Parse(sid); err != nil {
		sid = uuid.NewString()
	}
	logger := h.cfg.Logger.With(zap.String("session", sid))

	c := &connection{
		conn:   conn,
		reg:    lib.Registry,
		logger: logger,
		out:    make(chan ServerMessage, outboxSize),
		done:   make(chan struct{}),
	}
	c.writers.Add(1)
	go c.writeLoop()

	c.send(ServerMessage{Type: TypeHello, SessionID: sid})

	c.surface = newSurface(*mount.Viewport, c.send)
	ctrl, err := nav.New(nav.Config{
		Registry:        lib.Registry,
		Surface:         c.surface,
		History:         history{send: c.send},
		LastVisited:     session.NewLastVisited(h.cfg.Store, sid, logger),
		Logger:          logger,
		Params:          h.cfg.Params,
		HeaderOffset:    h.cfg.HeaderOffset,
		InstantCooldown: h.cfg.InstantCooldown,
		SmoothCooldown:  h.cfg.SmoothCooldown,
		OnChange:        c.pushState,
	})
	if err != nil {
		logger.Error("creating controller", zap.Error(err))
		c.send(ServerMessage{Type: TypeError, Message: "navigation unavailable"})
		c.shutdown()
		c.writers.Wait()
		return
	}
	c.ctrl = ctrl
	c.panel = panel.New(lib.Registry, ctrl)
	c.observer = viewport.NewObserver(func() { ctrl.SyncFromViewport() }, h.cfg.FrameInterval)
	defer c.release()

	logger.Debug("navigator connected", zap.Int("sections", lib.Registry.Len()))
	c.start(mount.Hash)
	c.readLoop()
}

// connection is one mounted page.
type connection struct {
	conn   *websocket.Conn
	reg    *sections.Registry
	logger *zap.Logger

	surface  *surface
	ctrl     *nav.Controller
	panel    *panel.Panel
	observer *viewport.Observer

	out      chan ServerMessage
	done     chan struct{}
	doneOnce sync.Once
	writers  sync.WaitGroup
}

// start resolves the initial section. Unless the fragment named it, the page
// is scrolled to it and the fragment rewritten, so a reload with no hash or a
// stale one lands where the reader was.
func (c *connection) start(hash string) {
	id := c.ctrl.Initialize(hash)
	if id == "" || c.fromFragment(hash, id) {
		return
	}
	if hash == "" && id == c.reg.At(0).CompositeID() {
		return
	}
	c.ctrl.NavigateTo(id, nav.Options{Behavior: nav.Instant, UpdateHash: true})
}

// fromFragment reports whether hash decodes to the section id.
func (c *connection) fromFragment(hash, id string) bool {
	ref, err := location.ForRegistry(c.reg).Decode(hash)
	if err != nil {
		return false
	}
	s, ok := c.reg.Lookup(ref.Group, ref.SectionID)
	return ok && s.CompositeID() == id
}

func (c *connection) readLoop() {
	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				c.send(ServerMessage{Type: TypeError, Message: "invalid message format"})
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket read", zap.Error(err))
			}
			return
		}
		select {
		case <-c.done:
			return
		default:
		}
		c.dispatch(msg)
	}
}

func (c *connection) dispatch(msg ClientMessage) {
	switch msg.Type {
	case TypeScroll, TypeResize:
		if msg.Viewport == nil {
			c.send(ServerMessage{Type: TypeError, Message: msg.Type + " requires a viewport"})
			return
		}
		c.surface.update(*msg.Viewport)
		if msg.Type == TypeScroll {
			c.observer.Scroll()
		} else {
			c.observer.Resize()
		}
	case TypeIntersect:
		c.observer.Intersect(msg.ID, msg.Intersecting)
	case TypeHashChange:
		c.ctrl.HandleHashChange(msg.Hash)
	case TypeNavigate:
		c.panel.Select(msg.ID)
		c.pushView()
	case TypeStep:
		c.panel.Step(msg.Delta)
		c.pushView()
	case TypeToggle:
		c.panel.Toggle(sections.Group(msg.Group))
	case TypeOpen:
		c.panel.SetOpen(msg.Open)
		c.pushView()
	default:
		c.send(ServerMessage{Type: TypeError, Message: "unknown message type: " + msg.Type})
	}
}

// pushState runs on the controller goroutine and must not call back into
// the controller.
func (c *connection) pushState(st nav.State) {
	v := panel.Build(c.reg, st)
	if c.panel != nil {
		v.Open = c.panel.IsOpen()
	}
	c.send(ServerMessage{Type: TypeState, State: &v})
}

func (c *connection) pushView() {
	v := c.panel.View()
	c.send(ServerMessage{Type: TypeState, State: &v})
}

// send queues a message for the writer. It drops the message once the
// connection is shutting down.
func (c *connection) send(m ServerMessage) {
	select {
	case c.out <- m:
	case <-c.done:
	}
}

func (c *connection) writeLoop() {
	defer c.writers.Done()
	for {
		select {
		case <-c.done:
			return
		case m := <-c.out:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteJSON(m); err != nil {
				c.logger.Debug("websocket write", zap.Error(err))
				c.shutdown()
				c.conn.Close()
				return
			}
		}
	}
}

func (c *connection) shutdown() {
	c.doneOnce.Do(func() { close(c.done) })
}

// release stops everything the connection started. The writer is told to
// stop first so nothing blocks on a full outbox.
func (c *connection) release() {
	c.shutdown()
	c.observer.Close()
	c.ctrl.Close()
	c.writers.Wait()
	c.logger.Debug("navigator disconnected")
}
