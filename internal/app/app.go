// Package app assembles the paperpulse API server: configuration,
// logging, observability, the dataset pipeline, and the HTTP router.
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
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"paperpulse/internal/config"
	apierrors "paperpulse/internal/errors"
	"paperpulse/internal/infrastructure"
	"paperpulse/internal/loader"
	custommw "paperpulse/internal/middleware"
	"paperpulse/internal/services"
	handlers "paperpulse/internal/transport/http"
	"paperpulse/internal/validation"
)

// Application is the main application container.
type Application struct {
	Config          *config.Config
	Router          *chi.Mux
	Server          *http.Server
	Logger          *slog.Logger
	ExplorerService *services.ExplorerService
	OTelProviders   *infrastructure.OTelProviders
	Metrics         *infrastructure.BusinessMetrics
}

// NewApplication creates a new application instance with its
// dependencies wired.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	providers, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("initialize observability: %w", err)
	}

	var metrics *infrastructure.BusinessMetrics
	if providers.Meter != nil {
		metrics, err = infrastructure.CreateBusinessMetrics(providers.Meter)
		if err != nil {
			return nil, fmt.Errorf("create business metrics: %w", err)
		}
	}

	paths, err := config.NewPaths("", cfg.Data)
	if err != nil {
		return nil, fmt.Errorf("resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	cache := loader.NewCache(logger, loader.NewLoader(logger, cfg.Data.MaxRows), metrics)
	explorer := services.NewExplorerService(logger, cfg.Analysis, cache, cfg.Data.InputFile, metrics)

	app := &Application{
		Config:          cfg,
		Logger:          logger,
		ExplorerService: explorer,
		OTelProviders:   providers,
		Metrics:         metrics,
	}
	app.Router = app.setupRouter()
	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return app, nil
}

// setupRouter builds the middleware chain and mounts the handlers.
func (a *Application) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))
	r.Use(custommw.SecurityHeaders)
	r.Use(custommw.CORS(custommw.CORSConfig{AllowedOrigins: a.Config.Server.AllowedOrigins}))
	r.Use(custommw.Metrics(a.Metrics))

	rateLimiter := custommw.NewRateLimiter(a.Config.Server.RateLimitRPS, a.Config.Server.RateLimitBurst, a.Logger)
	r.Use(rateLimiter.Handler)

	errorHandler := apierrors.NewErrorHandler(a.Logger, a.Config.Logging.Development)
	explorerHandler := handlers.NewExplorerHandler(a.ExplorerService, a.Logger, errorHandler)
	healthHandler := handlers.NewHealthHandler()

	r.Route("/api", func(r chi.Router) {
		r.Mount("/healthz", healthHandler.Routes())
		r.Mount("/", explorerHandler.Routes())
	})
	if a.OTelProviders != nil && a.OTelProviders.PrometheusHTTP != nil {
		r.Method(http.MethodGet, "/metrics", a.OTelProviders.PrometheusHTTP)
	}

	return r
}

// Run loads the initial dataset snapshot, starts the server, and blocks
// until a shutdown signal arrives.
func (a *Application) Run() error {
	ctx := infrastructure.EnsureTraceID(context.Background())

	validator := validation.NewFileValidator(a.Logger)
	if err := validator.ValidateInputFile(a.Config.Data.InputFile); err != nil {
		// Serve anyway; the dataset can be supplied later and loaded
		// through the refresh endpoint.
		a.Logger.WarnContext(ctx, "input file validation failed",
			slog.String("path", a.Config.Data.InputFile),
			slog.String("error", err.Error()))
	} else if err := a.ExplorerService.Refresh(ctx); err != nil {
		a.Logger.WarnContext(ctx, "initial dataset load failed",
			slog.String("path", a.Config.Data.InputFile),
			slog.String("error", err.Error()))
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.InfoContext(ctx, "server listening",
			slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		a.Logger.InfoContext(ctx, "shutdown signal received",
			slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.WarnContext(ctx, "observability shutdown failed",
				slog.String("error", err.Error()))
		}
	}
	if err := infrastructure.CloseLogFile(); err != nil {
		return fmt.Errorf("close log file: %w", err)
	}

	a.Logger.InfoContext(ctx, "shutdown complete")
	return nil
}
