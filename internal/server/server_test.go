package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/brigade/internal/access"
	"github.com/ziadkadry99/brigade/internal/content"
	"github.com/ziadkadry99/brigade/internal/remote"
	"github.com/ziadkadry99/brigade/internal/site"
	"github.com/ziadkadry99/brigade/internal/viewport"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	lib, err := content.Demo()
	if err != nil {
		t.Fatalf("Demo: %v", err)
	}
	source := content.NewSource(lib)
	return New(cfg, Deps{
		Content: source,
		Remote:  remote.NewHandler(remote.Config{Library: source.Library}),
		Access:  access.NewHandler("abc", nil, nil),
	})
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t, Config{Port: 0})

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, Config{Port: 0, AllowAll: true})

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestPage(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), `id="web-menus"`) {
		t.Error("page is missing the web-menus anchor")
	}

	for path, ct := range map[string]string{"/style.css": "text/css", "/script.js": "text/javascript"} {
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		if w.Code != http.StatusOK || !strings.HasPrefix(w.Header().Get("Content-Type"), ct) {
			t.Errorf("%s: status %d, Content-Type %q", path, w.Code, w.Header().Get("Content-Type"))
		}
	}
}

func TestPageUsesConfiguredBand(t *testing.T) {
	params := viewport.DefaultParams()
	params.BandTop, params.BandBottom = 0.3, 0.6
	srv := newTestServer(t, Config{Params: params})

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if !strings.Contains(w.Body.String(), `data-root-margin="-30% 0px -40% 0px"`) {
		t.Error("page does not carry the configured band")
	}
}

func TestSectionsEndpoint(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest("GET", "/api/sections", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp sectionsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Groups) != 2 || resp.Groups[0] != "web" {
		t.Errorf("groups = %v", resp.Groups)
	}
	if len(resp.Sections) != 10 {
		t.Errorf("sections = %d, want 10", len(resp.Sections))
	}
	if resp.Panel.ActiveID != "web-dashboard" || resp.Panel.Progress != "1 of 5" {
		t.Errorf("panel = %+v", resp.Panel)
	}
}

func TestSearchEndpoint(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest("GET", "/api/search?q=flashcard", nil))

	var results []site.SearchEntry
	if err := json.Unmarshal(w.Body.Bytes(), &results); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least one result")
	}

	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest("GET", "/api/search", nil))
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("empty query body = %q, want []", w.Body.String())
	}
}

func TestAccessRoute(t *testing.T) {
	srv := newTestServer(t, Config{})

	req := httptest.NewRequest("POST", "/access", strings.NewReader(`{"code":"wrong"}`))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if w.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("Cache-Control = %q", w.Header().Get("Cache-Control"))
	}
}

func TestWebSocketUpgrade(t *testing.T) {
	srv := newTestServer(t, Config{})
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/nav"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	defer func() {
		conn.Close()
		srv.deps.Remote.Wait()
	}()

	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}

	msg := remote.ClientMessage{Type: remote.TypeMount, Viewport: &remote.Viewport{Height: 900}}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
	var hello remote.ServerMessage
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("read: %v", err)
	}
	if hello.Type != remote.TypeHello || hello.SessionID == "" {
		t.Errorf("unexpected first message %+v", hello)
	}
}
