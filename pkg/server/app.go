package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"CashRadar/internal/scheduler"
	"CashRadar/pkg/config"
	xhttp "CashRadar/pkg/http"
	applogger "CashRadar/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	refresher  *scheduler.LedgerRefresher
	httpServer *xhttp.Server
	handler    xhttp.Handler
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	refresher *scheduler.LedgerRefresher,
	handler xhttp.Handler,
) *App {
	return &App{
		cfg:       cfg,
		logger:    logger,
		refresher: refresher,
		handler:   handler,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional startup ledger: analyze the configured file before serving so
	// the read endpoints have data on boot. A failed load is not fatal; the
	// upload endpoint still works.
	if a.cfg.Ledger.Path != "" {
		if err := a.refresher.RunNow(ctx); err != nil {
			a.logger.Warn("startup ledger load failed", applogger.Error(err))
		} else {
			a.logger.Info("startup ledger analyzed", applogger.String("path", a.cfg.Ledger.Path))
		}
	}

	if err := a.refresher.Start(); err != nil {
		return err
	}

	a.httpServer = xhttp.NewServer(a.handler, a.logger,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	a.refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
		return err
	}

	a.logger.Info("shutdown complete")
	return nil
}
