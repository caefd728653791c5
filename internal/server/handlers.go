package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/ziadkadry99/brigade/internal/panel"
	"github.com/ziadkadry99/brigade/internal/sections"
	"github.com/ziadkadry99/brigade/internal/site"
)

// sectionsResponse is the GET /api/sections payload.
type sectionsResponse struct {
	Title    string             `json:"title"`
	Groups   []sections.Group   `json:"groups"`
	Sections []sections.Section `json:"sections"`
	Panel    panel.View         `json:"panel"`
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := site.RenderPage(&buf, s.deps.Content.Library(), site.PageOptions{Live: true, Params: s.cfg.Params}); err != nil {
		s.logger.Error("rendering page", zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleStyle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write([]byte(site.StyleSheet()))
}

func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Write([]byte(site.Script()))
}

func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	lib := s.deps.Content.Library()
	groups := lib.Registry.Groups()
	writeJSON(w, http.StatusOK, sectionsResponse{
		Title:    lib.Title,
		Groups:   groups[:],
		Sections: lib.Registry.Sections(),
		Panel:    panel.Build(lib.Registry, site.InitialState(lib.Registry)),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	results := site.Search(site.BuildSearchIndex(s.deps.Content.Library()), q)
	if results == nil {
		results = []site.SearchEntry{}
	}
	writeJSON(w, http.StatusOK, results)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
