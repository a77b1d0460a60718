package requirement

import (
	"sort"
	"time"

	"CashRadar/internal/domain/models"
)

// Params configures the buffers.
type Params struct {
	StressPct        float64 // fraction of predicted outflow held as stress buffer
	ConfidenceFactor float64 // multiplier on outflow volatility for the safety buffer
}

// DefaultParams returns the documented defaults.
func DefaultParams() Params {
	return Params{StressPct: 0.15, ConfidenceFactor: 1.65}
}

func (p Params) sanitized() Params {
	def := DefaultParams()
	if p.StressPct < 0 {
		p.StressPct = def.StressPct
	}
	if p.ConfidenceFactor < 0 {
		p.ConfidenceFactor = def.ConfidenceFactor
	}
	return p
}

// Engine reconciles forecasted cash need against current liquidity and
// account risk. Pure function of its inputs; no hidden state.
type Engine struct {
	params Params
}

func NewEngine(p Params) *Engine {
	return &Engine{params: p.sanitized()}
}

// Run left-joins the forecast rows to behavior metrics, structural estimates
// and balances on AccountID. A forecasted account missing from any side
// contributes 0 for the missing figures rather than failing; callers that
// need strict matching must check upstream.
func (e *Engine) Run(
	forecasts []models.AccountForecastRecord,
	metrics []models.AccountBehaviorMetrics,
	structural []models.StructuralCashEstimate,
	balances models.BalanceSnapshot,
) ([]models.CashRequirementRecord, []models.BankRequirementRecord) {
	volByAcc := make(map[string]float64, len(metrics))
	for _, m := range metrics {
		volByAcc[m.AccountID] = m.OutflowVolatility
	}
	structByAcc := make(map[string]float64, len(structural))
	for _, s := range structural {
		structByAcc[s.AccountID] = s.StructuralInflow
	}

	account := make([]models.CashRequirementRecord, 0, len(forecasts))
	for _, f := range forecasts {
		// missing joins resolve to the zero value by map semantics
		vol := volByAcc[f.AccountID]
		reliable := structByAcc[f.AccountID]
		balance := balances[f.AccountID]

		safety := vol * e.params.ConfidenceFactor
		stress := f.PredictedOutflow * e.params.StressPct
		required := f.PredictedOutflow + safety + stress - reliable
		gap := required - balance

		idle := 0.0
		action := models.ActionRaiseFunds
		if gap <= 0 {
			idle = -gap
			action = models.ActionInvestSurplus
		}

		account = append(account, models.CashRequirementRecord{
			Date:             f.Date,
			AccountID:        f.AccountID,
			PredictedInflow:  f.PredictedInflow,
			PredictedOutflow: f.PredictedOutflow,
			SafetyBuffer:     safety,
			StressBuffer:     stress,
			ReliableInflow:   reliable,
			RequiredCash:     required,
			Balance:          balance,
			FundingGap:       gap,
			IdleCash:         idle,
			Action:           action,
		})
	}

	return account, aggregateBank(account)
}

// aggregateBank sums the numeric fields per date and reclassifies with the
// bank-scope action vocabulary.
func aggregateBank(account []models.CashRequirementRecord) []models.BankRequirementRecord {
	byDate := make(map[time.Time]*models.BankRequirementRecord)
	for _, r := range account {
		agg, ok := byDate[r.Date]
		if !ok {
			agg = &models.BankRequirementRecord{Date: r.Date}
			byDate[r.Date] = agg
		}
		agg.PredictedInflow += r.PredictedInflow
		agg.PredictedOutflow += r.PredictedOutflow
		agg.RequiredCash += r.RequiredCash
		agg.FundingGap += r.FundingGap
		agg.IdleCash += r.IdleCash
	}

	out := make([]models.BankRequirementRecord, 0, len(byDate))
	for _, agg := range byDate {
		if agg.FundingGap > 0 {
			agg.Action = models.BankActionFundingRequired
		} else {
			agg.Action = models.BankActionExcessLiquidity
		}
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// ClassifyFundingRisk grades an account's current standing: High when the
// balance is negative, Medium when it covers less than three days of average
// outflow, Low otherwise.
func ClassifyFundingRisk(balance, avgOutflow float64) models.FundingRisk {
	switch {
	case balance < 0:
		return models.RiskHigh
	case balance < avgOutflow*3:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
