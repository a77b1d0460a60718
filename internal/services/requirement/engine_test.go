package requirement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CashRadar/internal/domain/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSteadyAccountScenario(t *testing.T) {
	// the canonical steady account: inflow 1000, outflow 800, balance 5000,
	// zero volatility, structural inflow equal to the constant inflow
	forecasts := []models.AccountForecastRecord{
		{Date: day(2024, 7, 1), AccountID: "A", PredictedInflow: 1000, PredictedOutflow: 800, Model: models.ModelBaseline},
	}
	metrics := []models.AccountBehaviorMetrics{{AccountID: "A", AvgOutflow: 800, OutflowVolatility: 0}}
	structural := []models.StructuralCashEstimate{{AccountID: "A", StructuralInflow: 1000}}
	balances := models.BalanceSnapshot{"A": 5000}

	account, bank := NewEngine(DefaultParams()).Run(forecasts, metrics, structural, balances)
	require.Len(t, account, 1)

	r := account[0]
	assert.InDelta(t, 0, r.SafetyBuffer, 1e-9)
	assert.InDelta(t, 120, r.StressBuffer, 1e-9)
	assert.InDelta(t, 1000, r.ReliableInflow, 1e-9)
	assert.InDelta(t, -80, r.RequiredCash, 1e-9)
	assert.InDelta(t, -5080, r.FundingGap, 1e-9)
	assert.InDelta(t, 5080, r.IdleCash, 1e-9)
	assert.Equal(t, models.ActionInvestSurplus, r.Action)

	require.Len(t, bank, 1)
	assert.Equal(t, models.BankActionExcessLiquidity, bank[0].Action)
	assert.InDelta(t, -5080, bank[0].FundingGap, 1e-9)
}

func TestShortfallRaisesFunds(t *testing.T) {
	forecasts := []models.AccountForecastRecord{
		{Date: day(2024, 7, 1), AccountID: "A", PredictedOutflow: 1000},
	}
	metrics := []models.AccountBehaviorMetrics{{AccountID: "A", OutflowVolatility: 100}}
	account, bank := NewEngine(DefaultParams()).Run(forecasts, metrics, nil, models.BalanceSnapshot{"A": 200})

	r := account[0]
	// 1000 + 165 + 150 - 0 = 1315 required vs 200 balance
	assert.InDelta(t, 165, r.SafetyBuffer, 1e-9)
	assert.InDelta(t, 150, r.StressBuffer, 1e-9)
	assert.InDelta(t, 1315, r.RequiredCash, 1e-9)
	assert.InDelta(t, 1115, r.FundingGap, 1e-9)
	assert.Equal(t, 0.0, r.IdleCash)
	assert.Equal(t, models.ActionRaiseFunds, r.Action)
	assert.Equal(t, models.BankActionFundingRequired, bank[0].Action)
}

func TestActionPartitionIsExhaustive(t *testing.T) {
	forecasts := []models.AccountForecastRecord{
		{Date: day(2024, 7, 1), AccountID: "GAP", PredictedOutflow: 500},
		{Date: day(2024, 7, 1), AccountID: "FLAT", PredictedOutflow: 0},
		{Date: day(2024, 7, 1), AccountID: "IDLE", PredictedOutflow: 100},
	}
	balances := models.BalanceSnapshot{"FLAT": 0, "IDLE": 10000}
	account, _ := NewEngine(DefaultParams()).Run(forecasts, nil, nil, balances)

	for _, r := range account {
		if r.FundingGap > 0 {
			assert.Equal(t, models.ActionRaiseFunds, r.Action, r.AccountID)
			assert.Equal(t, 0.0, r.IdleCash, r.AccountID)
		} else {
			assert.Equal(t, models.ActionInvestSurplus, r.Action, r.AccountID)
			assert.InDelta(t, -r.FundingGap, r.IdleCash, 1e-9, r.AccountID)
		}
	}
	// gap exactly 0 lands on the surplus branch
	assert.Equal(t, models.ActionInvestSurplus, account[1].Action)
}

func TestMissingJoinsFillZero(t *testing.T) {
	forecasts := []models.AccountForecastRecord{
		{Date: day(2024, 7, 1), AccountID: "GHOST", PredictedOutflow: 100},
	}
	account, _ := NewEngine(DefaultParams()).Run(forecasts, nil, nil, nil)
	require.Len(t, account, 1)

	r := account[0]
	assert.Equal(t, 0.0, r.SafetyBuffer)
	assert.Equal(t, 0.0, r.ReliableInflow)
	assert.Equal(t, 0.0, r.Balance)
	assert.InDelta(t, 115, r.RequiredCash, 1e-9)
}

func TestBankAggregationSumsByDate(t *testing.T) {
	forecasts := []models.AccountForecastRecord{
		{Date: day(2024, 7, 1), AccountID: "A", PredictedInflow: 10, PredictedOutflow: 100},
		{Date: day(2024, 7, 1), AccountID: "B", PredictedInflow: 20, PredictedOutflow: 200},
		{Date: day(2024, 7, 2), AccountID: "A", PredictedInflow: 30, PredictedOutflow: 300},
	}
	_, bank := NewEngine(DefaultParams()).Run(forecasts, nil, nil, nil)
	require.Len(t, bank, 2)

	assert.Equal(t, day(2024, 7, 1), bank[0].Date)
	assert.InDelta(t, 300, bank[0].PredictedOutflow, 1e-9)
	assert.InDelta(t, 30, bank[0].PredictedInflow, 1e-9)
	assert.Equal(t, day(2024, 7, 2), bank[1].Date)
	assert.InDelta(t, 300, bank[1].PredictedOutflow, 1e-9)
}

func TestNegativeRequiredCashIsValid(t *testing.T) {
	forecasts := []models.AccountForecastRecord{
		{Date: day(2024, 7, 1), AccountID: "A", PredictedOutflow: 100},
	}
	structural := []models.StructuralCashEstimate{{AccountID: "A", StructuralInflow: 500}}
	account, _ := NewEngine(DefaultParams()).Run(forecasts, nil, structural, nil)

	assert.InDelta(t, -385, account[0].RequiredCash, 1e-9)
	assert.Equal(t, models.ActionInvestSurplus, account[0].Action)
}

func TestClassifyFundingRisk(t *testing.T) {
	assert.Equal(t, models.RiskHigh, ClassifyFundingRisk(-1, 100))
	assert.Equal(t, models.RiskMedium, ClassifyFundingRisk(250, 100))
	assert.Equal(t, models.RiskLow, ClassifyFundingRisk(300, 100))
	assert.Equal(t, models.RiskLow, ClassifyFundingRisk(0, 0))
}
