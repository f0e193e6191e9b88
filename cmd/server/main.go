// Spiritual guide conversation server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashureev/spiritual-guide/internal/agent"
	"github.com/ashureev/spiritual-guide/internal/api"
	"github.com/ashureev/spiritual-guide/internal/config"
	"github.com/ashureev/spiritual-guide/internal/identity"
	"github.com/ashureev/spiritual-guide/internal/middleware"
	"github.com/ashureev/spiritual-guide/internal/store"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "memory_backend", cfg.Memory.Backend)
	if cfg.UsesDefaultSalt() {
		slog.Warn("SECRET_SALT is the default value; user ids are hashed with a public salt")
	}

	// Initialize dependencies.
	repo, err := store.Open(context.Background(), cfg.StoreOptions())
	if err != nil {
		slog.Error("Failed to initialize memory store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Memory store health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Memory store ready")

	gateway, err := agent.NewOpenAIClient(agent.OpenAIConfig{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
	}, logger)
	if err != nil {
		slog.Error("Failed to initialize gateway", "error", err)
		os.Exit(1)
	}
	slog.Info("Gateway ready", "model_main", cfg.LLM.ModelMain, "model_bible", cfg.LLM.ModelBible)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := agent.NewMetrics(reg)

	// Initialize services.
	svc := agent.NewService(gateway, repo, cfg.AgentConfig(), logger, metrics)

	// Initialize handlers.
	askHandler := agent.NewHandler(svc, agent.HandlerConfig{
		Salt:          cfg.SecretSalt,
		MaxBodyBytes:  cfg.MaxBodyBytes,
		MaxMessageLen: cfg.MaxMessageLen,
		MaxHistory:    cfg.MaxHistory,
	}, logger)
	baseHandler := api.NewHandler()
	heygenHandler := api.NewHeyGenHandler(api.HeyGenOptions{
		APIKey:        cfg.HeyGen.APIKey,
		VoiceID:       cfg.HeyGen.VoiceID,
		DefaultAvatar: cfg.HeyGen.DefaultAvatar,
		Avatars:       cfg.HeyGen.Avatars,
		Version:       cfg.HeyGen.Version,
	}, logger)

	clientIP := func(r *http.Request) string {
		return identity.IPFromRequest(r, cfg.TrustProxy)
	}
	askLimiter := middleware.NewRateLimiter(cfg.RateLimit.AskPerMinute, clientIP)
	tokenLimiter := middleware.NewRateLimiter(cfg.RateLimit.TokenPerMinute, clientIP)

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	if cfg.TrustProxy {
		r.Use(chiMiddleware.RealIP)
	}
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Public routes.
	baseHandler.RegisterRoutes(r)
	askHandler.RegisterRoutes(r, askLimiter.Middleware)
	heygenHandler.RegisterRoutes(r, tokenLimiter.Middleware)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Covers the gateway deadline plus memory I/O.
		WriteTimeout: cfg.LLM.ResponseTimeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
