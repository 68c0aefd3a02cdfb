package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tabula/internal/config"
	apierrors "tabula/internal/errors"
	"tabula/internal/middleware"
	"tabula/internal/services"
	"tabula/internal/websocket"
)

// RouterDeps carries everything the router wires together.
type RouterDeps struct {
	Config  *config.Config
	Logger  *slog.Logger
	Service *services.AnalysisService
	Hub     *websocket.Hub
	// Metrics is the Prometheus scrape handler; nil disables /metrics.
	Metrics http.Handler
}

// NewRouter builds the full middleware chain and route tree.
func NewRouter(deps RouterDeps) chi.Router {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	errorHandler := apierrors.NewErrorHandler(logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Compress(5))

	if deps.Config.Limits.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(deps.Config.Limits.RateLimitRPS, deps.Config.Limits.RateLimitBurst, logger)
		r.Use(limiter.Handler)
	}
	r.Use(middleware.MaxBodyBytes(deps.Config.Limits.MaxUploadBytes))

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", HealthHandler)
		r.Mount("/analyses", NewAnalysisHandler(deps.Service, logger, errorHandler).Routes())
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}
	if deps.Hub != nil {
		r.Get("/ws", websocket.Handler(deps.Hub, deps.Config.WebSocket))
	}

	return r
}
