package di

import (
	"fmt"

	"CashRadar/internal/domain/repository"
	"CashRadar/internal/handler/api"
	internalrepo "CashRadar/internal/repository"
	"CashRadar/internal/scheduler"
	"CashRadar/internal/services/behavior"
	"CashRadar/internal/services/forecast"
	"CashRadar/internal/services/requirement"
	"CashRadar/internal/usecase"
	"CashRadar/pkg/config"
	xhttp "CashRadar/pkg/http"
	applogger "CashRadar/pkg/logger"
	"CashRadar/pkg/metrics"
	"CashRadar/pkg/server"
)

// ProvideLogger creates the structured application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideSnapshotStore creates the in-memory snapshot store.
func ProvideSnapshotStore() repository.SnapshotStore {
	return internalrepo.NewMemorySnapshotStore()
}

// ProvidePipelineConfig maps the model section of the YAML config onto
// per-stage engine parameters.
func ProvidePipelineConfig(cfg *config.Config) usecase.PipelineConfig {
	return usecase.PipelineConfig{
		Forecast: forecast.Params{
			Horizon:       cfg.Model.Horizon,
			RollingWindow: cfg.Model.RollingWindow,
			Alpha:         cfg.Model.Alpha,
			Workers:       cfg.Model.Workers,
		},
		Behavior: behavior.Params{
			StructuralQuantile: cfg.Model.StructuralQuantile,
		},
		Requirement: requirement.Params{
			StressPct:        cfg.Model.StressPct,
			ConfidenceFactor: cfg.Model.ConfidenceFactor,
		},
	}
}

// ProvidePipeline creates the liquidity analysis pipeline.
func ProvidePipeline(
	pc usecase.PipelineConfig,
	store repository.SnapshotStore,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.LiquidityPipeline {
	return usecase.NewLiquidityPipeline(pc, store, m, l)
}

// ProvideViews creates the snapshot read-side projections.
func ProvideViews(store repository.SnapshotStore) *usecase.SnapshotViews {
	return usecase.NewSnapshotViews(store)
}

// ProvideRefresher creates the scheduled ledger reloader.
func ProvideRefresher(
	cfg *config.Config,
	pipeline *usecase.LiquidityPipeline,
	l *applogger.Logger,
) *scheduler.LedgerRefresher {
	return scheduler.NewLedgerRefresher(cfg.Ledger.Path, cfg.Ledger.RefreshCron, pipeline, l)
}

// ProvideHandler creates the Echo route handler.
func ProvideHandler(
	l *applogger.Logger,
	pipeline *usecase.LiquidityPipeline,
	views *usecase.SnapshotViews,
) xhttp.Handler {
	return api.NewLiquidityEchoHandler(l, pipeline, views)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	refresher *scheduler.LedgerRefresher,
	handler xhttp.Handler,
) *server.App {
	return server.New(cfg, l, refresher, handler)
}
