package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CashRadar/internal/domain/models"
	"CashRadar/internal/services/preprocess"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func constantLedger(id string, start time.Time, days int, inflow, outflow float64) []models.CashflowRecord {
	out := make([]models.CashflowRecord, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, models.CashflowRecord{
			Date: start.AddDate(0, 0, i), AccountID: id,
			Inflow: inflow, Outflow: outflow, Balance: 5000,
		})
	}
	return out
}

func mustPreprocess(t *testing.T, ledger []models.CashflowRecord) []models.LedgerEntry {
	t.Helper()
	entries, err := preprocess.Run(ledger)
	require.NoError(t, err)
	return entries
}

func TestConstantHistoryForecastsConstant(t *testing.T) {
	entries := mustPreprocess(t, constantLedger("ACC1", day(2024, 6, 1), 14, 1000, 800))

	account, bank := NewBaseline(DefaultParams()).Run(entries)
	require.Len(t, account, 60)
	require.Len(t, bank, 60)

	for _, r := range account {
		assert.InDelta(t, 1000, r.PredictedInflow, 1e-9)
		assert.InDelta(t, 800, r.PredictedOutflow, 1e-9)
		assert.Equal(t, models.ModelBaseline, r.Model)
	}
	assert.Equal(t, models.ModelBaselineBank, bank[0].Model)
}

func TestHorizonIsContiguousAfterLastDate(t *testing.T) {
	last := day(2024, 6, 14)
	entries := mustPreprocess(t, constantLedger("ACC1", day(2024, 6, 1), 14, 100, 50))

	p := DefaultParams()
	p.Horizon = 14
	account, _ := NewBaseline(p).Run(entries)
	require.Len(t, account, 14)

	seen := map[time.Time]bool{}
	for i, r := range account {
		assert.Equal(t, last.AddDate(0, 0, i+1), r.Date)
		assert.False(t, seen[r.Date], "duplicate forecast date %v", r.Date)
		seen[r.Date] = true
	}
}

func TestPredictionsNeverNegative(t *testing.T) {
	ledger := []models.CashflowRecord{
		{Date: day(2024, 6, 1), AccountID: "A", Inflow: 0, Outflow: 0, Balance: 0},
		{Date: day(2024, 6, 2), AccountID: "A", Inflow: 5, Outflow: 900, Balance: 0},
	}
	account, _ := NewBaseline(DefaultParams()).Run(mustPreprocess(t, ledger))
	for _, r := range account {
		assert.GreaterOrEqual(t, r.PredictedInflow, 0.0)
		assert.GreaterOrEqual(t, r.PredictedOutflow, 0.0)
	}
}

func TestSingleObservationStillFillsHorizon(t *testing.T) {
	ledger := []models.CashflowRecord{
		{Date: day(2024, 6, 5), AccountID: "LONE", Inflow: 300, Outflow: 120, Balance: 50},
	}
	account, _ := NewBaseline(DefaultParams()).Run(mustPreprocess(t, ledger))
	require.Len(t, account, 60)
	for _, r := range account {
		// every weekday bucket save one is unobserved; all fall back to the
		// single available mean
		assert.InDelta(t, 300, r.PredictedInflow, 1e-9)
		assert.InDelta(t, 120, r.PredictedOutflow, 1e-9)
	}
}

func TestBankForecastReconcilesAccountSums(t *testing.T) {
	// both accounts end on the same date so their horizons align exactly
	ledger := append(
		constantLedger("A", day(2024, 6, 1), 14, 500, 100),
		constantLedger("B", day(2024, 6, 1), 14, 700, 200)...,
	)
	account, bank := NewBaseline(DefaultParams()).Run(mustPreprocess(t, ledger))

	sums := map[time.Time]float64{}
	for _, r := range account {
		sums[r.Date] += r.PredictedOutflow
	}
	require.Len(t, bank, 60)
	for _, b := range bank {
		assert.InDelta(t, sums[b.Date], b.PredictedOutflow, 1e-9)
		assert.InDelta(t, 300, b.PredictedOutflow, 1e-9)
	}
}

func TestStaggeredLastDatesLeaveBankDatesSparse(t *testing.T) {
	ledger := append(
		constantLedger("A", day(2024, 6, 1), 5, 100, 100),
		constantLedger("B", day(2024, 6, 1), 10, 100, 100)...,
	)
	p := DefaultParams()
	p.Horizon = 5
	_, bank := NewBaseline(p).Run(mustPreprocess(t, ledger))

	// A forecasts 06-06..06-10, B forecasts 06-11..06-15: no overlap, and no
	// zero-filled rows in between
	require.Len(t, bank, 10)
	for _, b := range bank {
		assert.InDelta(t, 100, b.PredictedOutflow, 1e-9)
	}
}

func TestSeasonalBlendWeighting(t *testing.T) {
	// two Mondays with inflow 700, rolling window covers both: roll=700,
	// Monday seasonal=700; an unobserved weekday must fall back to roll
	ledger := []models.CashflowRecord{
		{Date: day(2024, 6, 3), AccountID: "A", Inflow: 600, Outflow: 100, Balance: 0},
		{Date: day(2024, 6, 10), AccountID: "A", Inflow: 800, Outflow: 300, Balance: 0},
	}
	p := Params{Horizon: 7, RollingWindow: 14, Alpha: 0.7, Workers: 1}
	account, _ := NewBaseline(p).Run(mustPreprocess(t, ledger))
	require.Len(t, account, 7)

	for _, r := range account {
		if r.Date.Weekday() == time.Monday {
			// seasonal Monday mean equals the overall mean here
			assert.InDelta(t, 700, r.PredictedInflow, 1e-9)
		} else {
			// fallback: 0.7*700 + 0.3*700
			assert.InDelta(t, 700, r.PredictedInflow, 1e-9)
			assert.InDelta(t, 200, r.PredictedOutflow, 1e-9)
		}
	}
}

func TestShortHistoryUsesAllObservations(t *testing.T) {
	// fewer rows than the rolling window is not an error
	entries := mustPreprocess(t, constantLedger("A", day(2024, 6, 1), 3, 90, 30))
	account, _ := NewBaseline(DefaultParams()).Run(entries)
	require.Len(t, account, 60)
	assert.InDelta(t, 90, account[0].PredictedInflow, 1e-9)
}
