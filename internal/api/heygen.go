package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

const (
	defaultHeyGenTokenURL = "https://api.heygen.com/v1/streaming.create_token"
	heyGenTimeout         = 10 * time.Second
	maxHeyGenBody         = 64 << 10
)

// HeyGenOptions configures the avatar proxy.
type HeyGenOptions struct {
	APIKey        string
	VoiceID       string
	DefaultAvatar string
	Avatars       map[string]string
	// Version is echoed to clients for cache busting; empty means the
	// current time in milliseconds.
	Version string
	// TokenURL overrides the upstream endpoint.
	TokenURL   string
	HTTPClient *http.Client
}

// HeyGenHandler proxies streaming-avatar token creation and exposes the
// non-secret avatar configuration.
type HeyGenHandler struct {
	opts   HeyGenOptions
	client *http.Client
	logger *slog.Logger
	now    func() time.Time
}

// NewHeyGenHandler creates a new avatar proxy handler.
func NewHeyGenHandler(opts HeyGenOptions, logger *slog.Logger) *HeyGenHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TokenURL == "" {
		opts.TokenURL = defaultHeyGenTokenURL
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: heyGenTimeout}
	}
	return &HeyGenHandler{opts: opts, client: client, logger: logger, now: time.Now}
}

// RegisterRoutes mounts the HeyGen endpoints. Extra middleware applies only
// to the token route.
func (h *HeyGenHandler) RegisterRoutes(r chi.Router, tokenMW ...func(http.Handler) http.Handler) {
	r.With(tokenMW...).Get("/api/heygen/token", h.HandleToken)
	r.Get("/api/heygen/config", h.HandleConfig)
}

type heyGenTokenResponse struct {
	Data struct {
		Token string `json:"token"`
	} `json:"data"`
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
}

func (r heyGenTokenResponse) token() string {
	switch {
	case r.Data.Token != "":
		return r.Data.Token
	case r.Token != "":
		return r.Token
	default:
		return r.AccessToken
	}
}

// HandleToken handles GET /api/heygen/token. Upstream bodies are never logged.
func (h *HeyGenHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	if h.opts.APIKey == "" {
		Error(w, http.StatusInternalServerError, "missing_HEYGEN_API_KEY")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), heyGenTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.opts.TokenURL, bytes.NewReader([]byte("{}")))
	if err != nil {
		h.logger.Error("build heygen request", "error", err)
		Error(w, http.StatusInternalServerError, "heygen_token_error")
		return
	}
	req.Header.Set("x-api-key", h.opts.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		h.logger.Warn("heygen token request failed", "error", err)
		Error(w, http.StatusInternalServerError, "heygen_token_error")
		return
	}
	defer resp.Body.Close()

	// An unreadable or non-JSON body counts as a response without a token.
	var body heyGenTokenResponse
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxHeyGenBody))
	if readErr != nil {
		h.logger.Warn("heygen token body unreadable", "status", resp.StatusCode, "error", readErr)
	} else if decodeErr := json.Unmarshal(raw, &body); decodeErr != nil {
		h.logger.Debug("heygen token body not json", "status", resp.StatusCode, "error", decodeErr)
	}

	token := ""
	if readErr == nil {
		token = body.token()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 || token == "" {
		status := resp.StatusCode
		if status < 400 {
			// A success status without a token is still a failed upstream call.
			status = http.StatusBadGateway
		}
		h.logger.Warn("heygen token rejected",
			"status", resp.StatusCode,
			"has_token", token != "",
			"body_read_failed", readErr != nil,
		)
		Error(w, status, "heygen_token_failed")
		return
	}

	JSON(w, http.StatusOK, map[string]string{"token": token})
}

type heyGenConfigResponse struct {
	VoiceID       string            `json:"voiceId"`
	DefaultAvatar string            `json:"defaultAvatar"`
	Avatars       map[string]string `json:"avatars"`
	Version       string            `json:"version"`
}

// HandleConfig handles GET /api/heygen/config.
func (h *HeyGenHandler) HandleConfig(w http.ResponseWriter, _ *http.Request) {
	avatars := h.opts.Avatars
	if avatars == nil {
		avatars = map[string]string{}
	}
	version := h.opts.Version
	if version == "" {
		version = strconv.FormatInt(h.now().UnixMilli(), 10)
	}
	JSON(w, http.StatusOK, heyGenConfigResponse{
		VoiceID:       h.opts.VoiceID,
		DefaultAvatar: h.opts.DefaultAvatar,
		Avatars:       avatars,
		Version:       version,
	})
}
