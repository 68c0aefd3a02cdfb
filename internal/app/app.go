// Package app wires configuration, logging, observability, services
// and transport into a runnable HTTP application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"tabula/internal/config"
	"tabula/internal/infrastructure"
	"tabula/internal/operations"
	"tabula/internal/services"
	transport "tabula/internal/transport/http"
	ws "tabula/internal/websocket"
)

// Application is the composed server and its dependencies.
type Application struct {
	Config        *config.Config
	Logger        *slog.Logger
	Router        chi.Router
	Server        *http.Server
	Hub           *ws.Hub
	Service       *services.AnalysisService
	OTelProviders *infrastructure.OTelProviders

	relayCancel func()
}

// NewApplication builds the application from configuration.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info("application starting",
		slog.String("service", infrastructure.ServiceName),
		slog.String("version", infrastructure.ServiceVersion))

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	var metrics *infrastructure.BusinessMetrics
	if otelProviders.Meter != nil {
		metrics, err = infrastructure.CreateBusinessMetrics(otelProviders.Meter)
		if err != nil {
			return nil, fmt.Errorf("failed to create metrics: %w", err)
		}
	}

	tracker := operations.NewProgressTracker()
	manager := operations.NewManager(logger, tracker, metrics)
	service := services.NewAnalysisService(manager, logger)

	hub := ws.NewHub(logger)
	hub.Start()
	relayCancel := hub.RelayProgress(tracker)

	router := transport.NewRouter(transport.RouterDeps{
		Config:  cfg,
		Logger:  logger,
		Service: service,
		Hub:     hub,
		Metrics: otelProviders.PrometheusHTTP,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Application{
		Config:        cfg,
		Logger:        logger,
		Router:        router,
		Server:        server,
		Hub:           hub,
		Service:       service,
		OTelProviders: otelProviders,
		relayCancel:   relayCancel,
	}, nil
}

// Run serves HTTP until SIGINT/SIGTERM, then shuts down gracefully.
func (a *Application) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("http server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-stop:
		a.Logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()
	return a.Shutdown(ctx)
}

// Shutdown stops the server and tears down the supporting pieces.
func (a *Application) Shutdown(ctx context.Context) error {
	if err := a.Server.Shutdown(ctx); err != nil {
		a.Logger.Error("http server shutdown failed", slog.String("error", err.Error()))
	}

	if a.relayCancel != nil {
		a.relayCancel()
	}
	a.Hub.Shutdown()

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(ctx); err != nil {
			a.Logger.Error("opentelemetry shutdown failed", slog.String("error", err.Error()))
		}
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	a.Logger.Info("shutdown complete")
	return nil
}
