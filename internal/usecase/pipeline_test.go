package usecase

import (
	"context"
	"testing"
	"time"

	"CashRadar/internal/domain/models"
	"CashRadar/internal/repository"
	applogger "CashRadar/pkg/logger"

	"github.com/stretchr/testify/require"
)

type nopMetrics struct{}

func (nopMetrics) RecordRun(string)                    {}
func (nopMetrics) RecordStageDuration(string, float64) {}
func (nopMetrics) RecordAccounts(int)                  {}
func (nopMetrics) RecordError(string)                  {}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return l
}

func day(n int) time.Time {
	return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func testLedger() []models.CashflowRecord {
	var recs []models.CashflowRecord
	for i := 0; i < 30; i++ {
		recs = append(recs, models.CashflowRecord{
			Date:      day(i),
			AccountID: "ACC_A",
			Inflow:    1000 + float64(i%7)*50,
			Outflow:   800 + float64(i%5)*30,
			Balance:   5000 + float64(i)*100,
		})
		recs = append(recs, models.CashflowRecord{
			Date:      day(i),
			AccountID: "ACC_B",
			Inflow:    400,
			Outflow:   900 + float64(i%3)*20,
			Balance:   2000 - float64(i)*10,
		})
	}
	return recs
}

func newTestPipeline() (*LiquidityPipeline, *repository.MemorySnapshotStore) {
	store := repository.NewMemorySnapshotStore()
	l, _ := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	return NewLiquidityPipeline(DefaultPipelineConfig(), store, nopMetrics{}, l), store
}

func TestPipelineRunPublishesSnapshot(t *testing.T) {
	p, store := newTestPipeline()

	snap, err := p.Run(context.Background(), testLedger())
	require.NoError(t, err)
	require.NotNil(t, snap)

	latest, ok := store.Latest()
	require.True(t, ok)
	require.Same(t, snap, latest)

	require.Len(t, snap.History, 60)
	require.Len(t, snap.Behavior.AccountMetrics, 2)
	require.Len(t, snap.AccountForecast, 2*60)
	require.Len(t, snap.BankForecast, 60)
	require.Len(t, snap.AccountRequirement, 2*60)
	require.Len(t, snap.BankRequirement, 60)
	require.Greater(t, snap.OutflowSigma, 0.0)
	require.Len(t, snap.Balances, 2)
	require.InDelta(t, 5000+29*100, snap.Balances["ACC_A"], 1e-9)
}

func TestPipelineRunIsDeterministic(t *testing.T) {
	p, _ := newTestPipeline()
	ledger := testLedger()

	first, err := p.Run(context.Background(), ledger)
	require.NoError(t, err)
	second, err := p.Run(context.Background(), ledger)
	require.NoError(t, err)

	// every derived table must be bit-identical across reruns
	require.Equal(t, first.History, second.History)
	require.Equal(t, first.Balances, second.Balances)
	require.Equal(t, first.AccountForecast, second.AccountForecast)
	require.Equal(t, first.BankForecast, second.BankForecast)
	require.Equal(t, first.Behavior, second.Behavior)
	require.Equal(t, first.AccountRequirement, second.AccountRequirement)
	require.Equal(t, first.BankRequirement, second.BankRequirement)
	require.Equal(t, first.OutflowSigma, second.OutflowSigma)
}

func TestPipelineRunRejectsBadLedger(t *testing.T) {
	p, store := newTestPipeline()

	bad := []models.CashflowRecord{{
		Date:      day(0),
		AccountID: "",
		Inflow:    10,
		Outflow:   5,
		Balance:   100,
	}}
	_, err := p.Run(context.Background(), bad)
	require.Error(t, err)

	_, ok := store.Latest()
	require.False(t, ok, "failed run must not publish a snapshot")
}

func TestPipelineRunCanceledContext(t *testing.T) {
	p, store := newTestPipeline()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Run(ctx, testLedger())
	require.ErrorIs(t, err, context.Canceled)

	_, ok := store.Latest()
	require.False(t, ok)
}

func TestPipelineJoinsRequirementToBehavior(t *testing.T) {
	p, _ := newTestPipeline()

	snap, err := p.Run(context.Background(), testLedger())
	require.NoError(t, err)

	byAcc := map[string]int{}
	for _, r := range snap.AccountRequirement {
		byAcc[r.AccountID]++
	}
	require.Equal(t, map[string]int{"ACC_A": 60, "ACC_B": 60}, byAcc)

	// bank rows equal the sum of account rows on each date
	for i, b := range snap.BankRequirement {
		var gap float64
		for _, a := range snap.AccountRequirement {
			if a.Date.Equal(b.Date) {
				gap += a.FundingGap
			}
		}
		require.InDelta(t, gap, b.FundingGap, 1e-6, "date %d", i)
	}
}
