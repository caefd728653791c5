// Package access implements the access-code gate: a single stateless
// endpoint that checks a submitted code against a configured secret.
package access

import (
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MessageInvalid is returned with a 401.
const MessageInvalid = "Invalid code"

// maxBody caps the request body; a code never needs more.
const maxBody = 4 << 10

// Request is the POST /access body.
type Request struct {
	Code *string `json:"code"`
}

// Response is the POST /access reply.
type Response struct {
	Authorized bool   `json:"authorized"`
	Message    string `json:"message,omitempty"`
}

// Handler checks submitted codes against a secret.
type Handler struct {
	secret  string
	limiter *Limiter
	logger  *zap.Logger
}

// NewHandler returns a Handler. An empty secret answers every request with
// 500. limiter may be nil to disable rate limiting.
func NewHandler(secret string, limiter *Limiter, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{secret: secret, limiter: limiter, logger: logger}
}

// RegisterRoutes mounts POST /access on the given router.
func RegisterRoutes(r chi.Router, h *Handler) {
	if h.limiter != nil {
		r.With(h.limiter.Middleware).Post("/access", h.ServeHTTP)
		return
	}
	r.Post("/access", h.ServeHTTP)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.secret == "" {
		h.logger.Error("access code is not configured")
		writeJSON(w, http.StatusInternalServerError, Response{Message: "Access code is not configured"})
		return
	}

	var req Request
	body := http.MaxBytesReader(w, r.Body, maxBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil && err != io.EOF {
		writeJSON(w, http.StatusBadRequest, Response{Message: "Malformed request body"})
		return
	}
	if req.Code == nil {
		writeJSON(w, http.StatusBadRequest, Response{Message: "Missing code"})
		return
	}

	if !Match(*req.Code, h.secret) {
		h.logger.Info("access denied", zap.String("remote", r.RemoteAddr))
		writeJSON(w, http.StatusUnauthorized, Response{Message: MessageInvalid})
		return
	}

	writeJSON(w, http.StatusOK, Response{Authorized: true})
}

// Match compares a submitted code with the secret in constant time.
func Match(code, secret string) bool {
	return subtle.ConstantTimeCompare([]byte(code), []byte(secret)) == 1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
