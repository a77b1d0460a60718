package scheduler

import (
	"context"
	"fmt"
	"os"

	"CashRadar/internal/ingest"
	"CashRadar/internal/usecase"
	applogger "CashRadar/pkg/logger"

	"github.com/robfig/cron/v3"
)

// LedgerRefresher re-reads the configured ledger file on a cron schedule and
// republishes the snapshot. The refresh is all-or-nothing; a failed read or
// run leaves the previous snapshot in place.
type LedgerRefresher struct {
	cron     *cron.Cron
	path     string
	spec     string
	pipeline *usecase.LiquidityPipeline
	logger   *applogger.Logger
}

// NewLedgerRefresher creates a refresher for the ledger file at path. An
// empty path or spec disables scheduling; RunNow still works with a path.
func NewLedgerRefresher(path, spec string, pipeline *usecase.LiquidityPipeline, logger *applogger.Logger) *LedgerRefresher {
	return &LedgerRefresher{
		cron:     cron.New(),
		path:     path,
		spec:     spec,
		pipeline: pipeline,
		logger:   logger,
	}
}

// Start registers the refresh job and starts the cron loop.
func (r *LedgerRefresher) Start() error {
	if r.path == "" || r.spec == "" {
		r.logger.Info("ledger refresh disabled")
		return nil
	}
	if _, err := r.cron.AddFunc(r.spec, func() {
		if err := r.RunNow(context.Background()); err != nil {
			r.logger.Error("scheduled ledger refresh failed", applogger.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("register ledger refresh: %w", err)
	}
	r.cron.Start()
	r.logger.Info("ledger refresh scheduled",
		applogger.String("path", r.path),
		applogger.String("cron", r.spec),
	)
	return nil
}

// Stop stops the cron loop gracefully.
func (r *LedgerRefresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

// RunNow reads the ledger file and runs the pipeline once.
func (r *LedgerRefresher) RunNow(ctx context.Context) error {
	if r.path == "" {
		return fmt.Errorf("no ledger path configured")
	}
	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	records, err := ingest.ParseCSV(f)
	if err != nil {
		return fmt.Errorf("parse ledger: %w", err)
	}
	if _, err := r.pipeline.Run(ctx, records); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	return nil
}
