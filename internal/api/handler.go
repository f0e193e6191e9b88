// Package api provides HTTP handlers for the guidance API.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ashureev/spiritual-guide/internal/policy"
	"github.com/go-chi/chi/v5"
)

// Handler serves the static and infrastructure endpoints.
type Handler struct {
	now func() time.Time
}

// NewHandler creates a new Handler.
func NewHandler() *Handler {
	return &Handler{now: time.Now}
}

// RegisterRoutes mounts health and welcome.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/health", h.HandleHealth)
	r.Get("/api/welcome", h.HandleWelcome)
}

// HandleHealth handles GET /api/health.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]any{"ok": true, "ts": h.now().UnixMilli()})
}

// HandleWelcome handles GET /api/welcome.
func (h *Handler) HandleWelcome(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, policy.WelcomeReply())
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
