package usecase

import (
	"time"

	"CashRadar/internal/domain/models"
	domrepo "CashRadar/internal/domain/repository"
	"CashRadar/internal/services/present"
	"CashRadar/internal/services/requirement"
	xhttp "CashRadar/pkg/http"
	"CashRadar/pkg/util"
)

// bandZ is the quantile multiplier of the forecast confidence band.
const bandZ = 1.65

// SnapshotViews renders read-side projections of the latest snapshot.
// All projections work on copies; the stored snapshot is never mutated.
type SnapshotViews struct {
	store domrepo.SnapshotStore
}

func NewSnapshotViews(store domrepo.SnapshotStore) *SnapshotViews {
	return &SnapshotViews{store: store}
}

func (v *SnapshotViews) latest() (*models.Snapshot, error) {
	snap, ok := v.store.Latest()
	if !ok {
		return nil, xhttp.NotFoundError("no ledger analyzed yet; upload one via POST /api/ledger")
	}
	return snap, nil
}

// ForecastView is the forecast endpoint payload. Monetary figures are scaled
// to the requested display unit.
type ForecastView struct {
	GeneratedAt time.Time
	Unit        string
	Account     []models.AccountForecastRecord
	Bank        []models.BankForecastBand
}

// Forecast filters the stored forecast to the requested account, window and
// horizon, decorates the bank rows with bands and applies the display unit.
func (v *SnapshotViews) Forecast(req *models.ForecastRequest) (*ForecastView, error) {
	snap, err := v.latest()
	if err != nil {
		return nil, err
	}

	rng, err := parseRange(req.From, req.To)
	if err != nil {
		return nil, err
	}
	unit := present.UnitByName(req.Unit)

	account := limitPerAccount(
		present.FilterAccountForecast(snap.AccountForecast, rng, req.AccountID),
		req.Horizon,
	)
	bank := present.FilterBankForecast(snap.BankForecast, rng)
	if len(bank) > req.Horizon {
		bank = bank[:req.Horizon]
	}
	bands := present.WithBands(bank, snap.OutflowSigma, bandZ, req.StressPct)

	return &ForecastView{
		GeneratedAt: snap.GeneratedAt,
		Unit:        unit.Name,
		Account:     scaleAccountForecast(account, unit),
		Bank:        scaleBands(bands, unit),
	}, nil
}

// BehaviorView is the behavior endpoint payload.
type BehaviorView struct {
	GeneratedAt time.Time
	Report      models.BehaviorReport
}

// Behavior returns the behavior report, narrowed to one account when
// account_id is set. Bank-wide tables are omitted in the narrowed form.
func (v *SnapshotViews) Behavior(req *models.BehaviorRequest) (*BehaviorView, error) {
	snap, err := v.latest()
	if err != nil {
		return nil, err
	}

	report := snap.Behavior
	if req.AccountID != "" {
		report = narrowReport(report, req.AccountID)
		if len(report.AccountMetrics) == 0 {
			return nil, xhttp.NotFoundErrorf("account %q not present in the ledger", req.AccountID)
		}
	}
	return &BehaviorView{GeneratedAt: snap.GeneratedAt, Report: report}, nil
}

// RequirementView is the requirement endpoint payload.
type RequirementView struct {
	GeneratedAt      time.Time
	StressPct        float64
	ConfidenceFactor float64
	Account          []models.CashRequirementRecord
	Bank             []models.BankRequirementRecord
}

// Requirement recomputes the cash requirement on the stored forecast with
// the caller's stress and confidence parameters. The stored tables keep the
// configured defaults; this projection is throwaway.
func (v *SnapshotViews) Requirement(req *models.RequirementRequest) (*RequirementView, error) {
	snap, err := v.latest()
	if err != nil {
		return nil, err
	}

	rng, err := parseRange(req.From, req.To)
	if err != nil {
		return nil, err
	}

	eng := requirement.NewEngine(requirement.Params{
		StressPct:        req.StressPct,
		ConfidenceFactor: req.ConfidenceFactor,
	})
	account, bank := eng.Run(
		snap.AccountForecast,
		snap.Behavior.AccountMetrics,
		snap.Behavior.StructuralCash,
		snap.Balances,
	)

	return &RequirementView{
		GeneratedAt:      snap.GeneratedAt,
		StressPct:        req.StressPct,
		ConfidenceFactor: req.ConfidenceFactor,
		Account:          filterRequirement(account, rng),
		Bank:             filterBankRequirement(bank, rng),
	}, nil
}

// AccountRisk classifies one account's current standing.
type AccountRisk struct {
	AccountID  string
	Balance    float64
	AvgOutflow float64
	Risk       models.FundingRisk
}

// SummaryView is the bank overview payload.
type SummaryView struct {
	GeneratedAt       time.Time
	Unit              string
	AvgDailyInflow    float64
	AvgDailyOutflow   float64
	NetPosition       float64
	OutflowVolatility float64
	TotalFundingGap   float64
	TotalIdleCash     float64
	PeakFundingGap    float64
	ExecutiveSummary  string
	AccountRisks      []AccountRisk
}

// Summary condenses the snapshot into the executive bank overview.
func (v *SnapshotViews) Summary(req *models.SummaryRequest) (*SummaryView, error) {
	snap, err := v.latest()
	if err != nil {
		return nil, err
	}

	rng, err := parseRange(req.From, req.To)
	if err != nil {
		return nil, err
	}
	unit := present.UnitByName(req.Unit)

	var totalGap, totalIdle, peakGap float64
	for _, b := range filterBankRequirement(snap.BankRequirement, rng) {
		if b.FundingGap > 0 {
			totalGap += b.FundingGap
		}
		totalIdle += b.IdleCash
		if b.FundingGap > peakGap {
			peakGap = b.FundingGap
		}
	}

	risks := make([]AccountRisk, 0, len(snap.Behavior.AccountMetrics))
	for _, m := range snap.Behavior.AccountMetrics {
		bal := snap.Balances[m.AccountID]
		risks = append(risks, AccountRisk{
			AccountID:  m.AccountID,
			Balance:    unit.Apply(bal),
			AvgOutflow: unit.Apply(m.AvgOutflow),
			Risk:       requirement.ClassifyFundingRisk(bal, m.AvgOutflow),
		})
	}

	bs := snap.Behavior.BankSummary
	return &SummaryView{
		GeneratedAt:       snap.GeneratedAt,
		Unit:              unit.Name,
		AvgDailyInflow:    unit.Apply(bs.AvgDailyInflow),
		AvgDailyOutflow:   unit.Apply(bs.AvgDailyOutflow),
		NetPosition:       unit.Apply(bs.NetPosition),
		OutflowVolatility: unit.Apply(bs.OutflowVolatility),
		TotalFundingGap:   unit.Apply(totalGap),
		TotalIdleCash:     unit.Apply(totalIdle),
		PeakFundingGap:    unit.Apply(peakGap),
		ExecutiveSummary:  present.ExecutiveSummary(bs.NetPosition, req.StressPct),
		AccountRisks:      risks,
	}, nil
}

func parseRange(from, to string) (present.DateRange, error) {
	var rng present.DateRange
	if from != "" {
		t, ok := util.ParseLedgerDate(from)
		if !ok {
			return rng, xhttp.BadRequestErrorf("invalid from date %q", from)
		}
		rng.From = t
	}
	if to != "" {
		t, ok := util.ParseLedgerDate(to)
		if !ok {
			return rng, xhttp.BadRequestErrorf("invalid to date %q", to)
		}
		rng.To = t
	}
	return rng, nil
}

// limitPerAccount keeps the first n rows of each account. Rows arrive sorted
// by (AccountID, Date), so the kept rows are the earliest horizon days.
func limitPerAccount(recs []models.AccountForecastRecord, n int) []models.AccountForecastRecord {
	out := make([]models.AccountForecastRecord, 0, len(recs))
	count := map[string]int{}
	for _, r := range recs {
		if count[r.AccountID] >= n {
			continue
		}
		count[r.AccountID]++
		out = append(out, r)
	}
	return out
}

func narrowReport(r models.BehaviorReport, accountID string) models.BehaviorReport {
	out := models.BehaviorReport{
		DayOfWeekPattern: r.DayOfWeekPattern,
		MonthEndPattern:  r.MonthEndPattern,
	}
	for _, m := range r.AccountMetrics {
		if m.AccountID == accountID {
			out.AccountMetrics = append(out.AccountMetrics, m)
		}
	}
	for _, s := range r.StructuralCash {
		if s.AccountID == accountID {
			out.StructuralCash = append(out.StructuralCash, s)
		}
	}
	return out
}

func filterRequirement(recs []models.CashRequirementRecord, rng present.DateRange) []models.CashRequirementRecord {
	out := make([]models.CashRequirementRecord, 0, len(recs))
	for _, r := range recs {
		if rng.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out
}

func filterBankRequirement(recs []models.BankRequirementRecord, rng present.DateRange) []models.BankRequirementRecord {
	out := make([]models.BankRequirementRecord, 0, len(recs))
	for _, r := range recs {
		if rng.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out
}

func scaleAccountForecast(recs []models.AccountForecastRecord, u present.Unit) []models.AccountForecastRecord {
	out := make([]models.AccountForecastRecord, len(recs))
	for i, r := range recs {
		r.PredictedInflow = u.Apply(r.PredictedInflow)
		r.PredictedOutflow = u.Apply(r.PredictedOutflow)
		out[i] = r
	}
	return out
}

func scaleBands(recs []models.BankForecastBand, u present.Unit) []models.BankForecastBand {
	out := make([]models.BankForecastBand, len(recs))
	for i, r := range recs {
		r.PredictedInflow = u.Apply(r.PredictedInflow)
		r.PredictedOutflow = u.Apply(r.PredictedOutflow)
		r.UpperBound = u.Apply(r.UpperBound)
		r.LowerBound = u.Apply(r.LowerBound)
		r.StressOutflow = u.Apply(r.StressOutflow)
		out[i] = r
	}
	return out
}
