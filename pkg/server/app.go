package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"RxPulse/internal/ml"
	"RxPulse/internal/usecase"
	pkgcache "RxPulse/pkg/cache"
	"RxPulse/pkg/config"
	xhttp "RxPulse/pkg/http"
	applogger "RxPulse/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	registry   *ml.Registry
	handler    xhttp.Handler
	audit      *usecase.AuditRecorder
	cache      pkgcache.Service
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	registry *ml.Registry,
	handler xhttp.Handler,
	audit *usecase.AuditRecorder,
	cacheSvc pkgcache.Service,
) *App {
	return &App{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		handler:  handler,
		audit:    audit,
		cache:    cacheSvc,
	}
}

// Run loads the models, starts the HTTP server and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if ok := a.registry.Load(); !ok {
		// Serving continues: every prediction answers unavailable until
		// artifacts appear and the process restarts.
		a.logger.Warn("no model artifacts loaded; predictions will be unavailable",
			applogger.String("dir", a.cfg.Models.Dir))
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(a.logger),
	)

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.Bool("mock_models", a.cfg.Models.Mock),
		applogger.String("audit_backend", a.cfg.Audit.Backend),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops the HTTP server and closes infrastructure.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.audit != nil {
		a.audit.Close()
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
