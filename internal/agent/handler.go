package agent

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ashureev/spiritual-guide/internal/api"
	"github.com/ashureev/spiritual-guide/internal/domain"
	"github.com/ashureev/spiritual-guide/internal/identity"
	"github.com/ashureev/spiritual-guide/internal/policy"
	"github.com/ashureev/spiritual-guide/internal/shared"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

const (
	defaultMaxRequestBodySize = 8 << 10
	defaultMaxMessageLen      = 1000
	defaultMaxHistory         = 10
)

// TurnHandler runs one conversation turn.
type TurnHandler interface {
	HandleTurn(ctx context.Context, req TurnRequest) (domain.Reply, error)
}

// Ensure Service implements TurnHandler.
var _ TurnHandler = (*Service)(nil)

// HandlerConfig bounds inbound requests.
type HandlerConfig struct {
	Salt          string
	MaxBodyBytes  int64
	MaxMessageLen int
	MaxHistory    int
}

// Handler handles the ask endpoint.
type Handler struct {
	turns  TurnHandler
	cfg    HandlerConfig
	logger *slog.Logger
}

// NewHandler creates a new ask handler.
func NewHandler(turns TurnHandler, cfg HandlerConfig, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxRequestBodySize
	}
	if cfg.MaxMessageLen <= 0 {
		cfg.MaxMessageLen = defaultMaxMessageLen
	}
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = defaultMaxHistory
	}
	return &Handler{turns: turns, cfg: cfg, logger: logger}
}

// RegisterRoutes mounts the ask endpoint. Extra middleware (rate limiting)
// applies only to this route.
func (h *Handler) RegisterRoutes(r chi.Router, mw ...func(http.Handler) http.Handler) {
	r.With(mw...).Post("/api/ask", h.HandleAsk)
}

type askRequest struct {
	Persona      string   `json:"persona"`
	Message      string   `json:"message"`
	History      []string `json:"history"`
	UserID       string   `json:"userId"`
	PersonaExtra string   `json:"persona_extra"`
}

// HandleAsk handles POST /api/ask requests.
func (h *Handler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes)

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			api.Error(w, http.StatusRequestEntityTooLarge, "request_too_large")
			return
		}
		api.Error(w, http.StatusBadRequest, "invalid_body")
		return
	}

	message := shared.Truncate(strings.TrimSpace(req.Message), h.cfg.MaxMessageLen)
	if message == "" {
		api.Error(w, http.StatusBadRequest, "empty_message")
		return
	}

	turn := TurnRequest{
		Persona:      shared.Truncate(strings.TrimSpace(req.Persona), h.cfg.MaxMessageLen),
		Message:      message,
		History:      h.sanitizeHistory(req.History),
		UserID:       identity.HashUserID(h.cfg.Salt, identity.UserIDFromRequest(r, req.UserID)),
		PersonaExtra: shared.Truncate(strings.TrimSpace(req.PersonaExtra), h.cfg.MaxMessageLen),
	}

	reply, err := h.turns.HandleTurn(r.Context(), turn)
	if err != nil {
		h.logger.Error("turn failed, serving generic reply",
			"request_id", chiMiddleware.GetReqID(r.Context()),
			"user_id", turn.UserID,
			"error", err,
		)
		api.JSON(w, http.StatusOK, policy.GenericReply())
		return
	}

	api.JSON(w, http.StatusOK, reply)
}

// sanitizeHistory keeps the last MaxHistory non-empty lines, each trimmed
// and capped.
func (h *Handler) sanitizeHistory(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, shared.Truncate(line, h.cfg.MaxMessageLen))
	}
	if len(out) > h.cfg.MaxHistory {
		out = out[len(out)-h.cfg.MaxHistory:]
	}
	return out
}
