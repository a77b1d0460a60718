package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"CashRadar/internal/domain/models"
	domrepo "CashRadar/internal/domain/repository"
	"CashRadar/internal/services/behavior"
	"CashRadar/internal/services/forecast"
	"CashRadar/internal/services/preprocess"
	"CashRadar/internal/services/requirement"
	"CashRadar/internal/services/stats"
	applogger "CashRadar/pkg/logger"
)

// PipelineConfig bundles the tuning knobs of each analysis stage.
type PipelineConfig struct {
	Forecast    forecast.Params
	Behavior    behavior.Params
	Requirement requirement.Params
}

// DefaultPipelineConfig returns the documented model defaults for all stages.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Forecast:    forecast.DefaultParams(),
		Behavior:    behavior.DefaultParams(),
		Requirement: requirement.DefaultParams(),
	}
}

// LiquidityPipeline runs the full ledger analysis: preprocessing, baseline
// forecasting, behavior metrics and cash requirement, and publishes the
// result as one immutable snapshot. Running the same ledger twice produces
// identical snapshot tables.
type LiquidityPipeline struct {
	cfg     PipelineConfig
	store   domrepo.SnapshotStore
	metrics domrepo.Metrics
	logger  *applogger.Logger
}

// NewLiquidityPipeline creates a pipeline publishing into store.
func NewLiquidityPipeline(
	cfg PipelineConfig,
	store domrepo.SnapshotStore,
	metrics domrepo.Metrics,
	logger *applogger.Logger,
) *LiquidityPipeline {
	return &LiquidityPipeline{
		cfg:     cfg,
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// Run executes all stages on the raw ledger, stores the resulting snapshot
// and returns it. Forecasting and behavior analysis run concurrently; the
// requirement stage joins their outputs.
func (p *LiquidityPipeline) Run(ctx context.Context, ledger []models.CashflowRecord) (*models.Snapshot, error) {
	start := time.Now()

	entries, err := p.timedPreprocess(ledger)
	if err != nil {
		p.metrics.RecordRun("error")
		p.metrics.RecordError("schema")
		return nil, fmt.Errorf("preprocess: %w", err)
	}
	if err := ctx.Err(); err != nil {
		p.metrics.RecordRun("canceled")
		return nil, err
	}

	var (
		wg              sync.WaitGroup
		accountForecast []models.AccountForecastRecord
		bankForecast    []models.BankForecastRecord
		report          models.BehaviorReport
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		stageStart := time.Now()
		accountForecast, bankForecast = forecast.NewBaseline(p.cfg.Forecast).Run(entries)
		p.metrics.RecordStageDuration("forecast", time.Since(stageStart).Seconds())
	}()
	go func() {
		defer wg.Done()
		stageStart := time.Now()
		report = behavior.NewEngine(p.cfg.Behavior).Run(entries)
		p.metrics.RecordStageDuration("behavior", time.Since(stageStart).Seconds())
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		p.metrics.RecordRun("canceled")
		return nil, err
	}

	balances := preprocess.LatestBalances(entries)

	stageStart := time.Now()
	accountReq, bankReq := requirement.NewEngine(p.cfg.Requirement).Run(
		accountForecast,
		report.AccountMetrics,
		report.StructuralCash,
		balances,
	)
	p.metrics.RecordStageDuration("requirement", time.Since(stageStart).Seconds())

	snap := &models.Snapshot{
		GeneratedAt:        time.Now().UTC(),
		History:            entries,
		Balances:           balances,
		AccountForecast:    accountForecast,
		BankForecast:       bankForecast,
		Behavior:           report,
		AccountRequirement: accountReq,
		BankRequirement:    bankReq,
		OutflowSigma:       historicalOutflowSigma(entries),
	}
	p.store.Put(snap)

	p.metrics.RecordRun("success")
	p.metrics.RecordAccounts(len(report.AccountMetrics))
	p.logger.Info("pipeline run complete",
		applogger.Int("ledger_rows", len(ledger)),
		applogger.Int("accounts", len(report.AccountMetrics)),
		applogger.Int("forecast_rows", len(accountForecast)),
		applogger.Duration("elapsed", time.Since(start)),
	)
	return snap, nil
}

func (p *LiquidityPipeline) timedPreprocess(ledger []models.CashflowRecord) ([]models.LedgerEntry, error) {
	stageStart := time.Now()
	entries, err := preprocess.Run(ledger)
	p.metrics.RecordStageDuration("preprocess", time.Since(stageStart).Seconds())
	return entries, err
}

// historicalOutflowSigma feeds the forecast confidence band.
func historicalOutflowSigma(entries []models.LedgerEntry) float64 {
	xs := make([]float64, len(entries))
	for i, e := range entries {
		xs[i] = e.Outflow
	}
	return stats.SampleStdDev(xs)
}
