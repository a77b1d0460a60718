package behavior

import (
	"sort"
	"sync"
	"time"

	"CashRadar/internal/domain/models"
	"CashRadar/internal/services/stats"
)

// Params configures the behavior engine.
type Params struct {
	StructuralQuantile float64 // inflow quantile treated as structural
}

// DefaultParams returns the documented defaults.
func DefaultParams() Params {
	return Params{StructuralQuantile: 0.25}
}

func (p Params) sanitized() Params {
	if p.StructuralQuantile <= 0 || p.StructuralQuantile >= 1 {
		p.StructuralQuantile = DefaultParams().StructuralQuantile
	}
	return p
}

// Engine characterizes historical cash behavior per account and bank-wide.
// It never reads forecast output; every figure derives from the preprocessed
// ledger alone.
type Engine struct {
	params Params
}

func NewEngine(p Params) *Engine {
	return &Engine{params: p.sanitized()}
}

// Run executes the four independent sub-computations concurrently and bundles
// the results. Each writes a distinct report field, so no locking is needed.
func (e *Engine) Run(entries []models.LedgerEntry) models.BehaviorReport {
	var report models.BehaviorReport
	var wg sync.WaitGroup

	wg.Add(4)
	go func() {
		defer wg.Done()
		report.AccountMetrics = e.AccountMetrics(entries)
	}()
	go func() {
		defer wg.Done()
		report.StructuralCash = e.StructuralCash(entries)
	}()
	go func() {
		defer wg.Done()
		report.DayOfWeekPattern, report.MonthEndPattern = e.Seasonality(entries)
	}()
	go func() {
		defer wg.Done()
		report.BankDaily, report.BankSummary = e.BankSummary(entries)
	}()
	wg.Wait()

	return report
}

// AccountMetrics computes per-account stability and volatility figures.
// Convention for undefined CV (zero average outflow, or a single
// observation where the sample std-dev itself is undefined): CV is reported
// as 0 and StabilityScore as 0. A defined CV always yields a score in (0, 1].
func (e *Engine) AccountMetrics(entries []models.LedgerEntry) []models.AccountBehaviorMetrics {
	out := make([]models.AccountBehaviorMetrics, 0)
	forEachAccount(entries, func(id string, acc []models.LedgerEntry) {
		inflows := column(acc, func(e models.LedgerEntry) float64 { return e.Inflow })
		outflows := column(acc, func(e models.LedgerEntry) float64 { return e.Outflow })

		avgIn := stats.Mean(inflows)
		avgOut := stats.Mean(outflows)
		stdOut := stats.SampleStdDev(outflows)

		cv := 0.0
		stability := 0.0
		if avgOut > 0 && len(acc) >= 2 {
			cv = stdOut / avgOut
			stability = 1 / (1 + cv)
		}

		out = append(out, models.AccountBehaviorMetrics{
			AccountID:         id,
			AvgInflow:         avgIn,
			AvgOutflow:        avgOut,
			NetFlow:           avgIn - avgOut,
			OutflowVolatility: stdOut,
			OutflowCV:         cv,
			StabilityScore:    stability,
		})
	})
	return out
}

// StructuralCash estimates the reliably recurring inflow per account as a
// low quantile of history (linear interpolation between order statistics).
func (e *Engine) StructuralCash(entries []models.LedgerEntry) []models.StructuralCashEstimate {
	out := make([]models.StructuralCashEstimate, 0)
	forEachAccount(entries, func(id string, acc []models.LedgerEntry) {
		inflows := column(acc, func(e models.LedgerEntry) float64 { return e.Inflow })

		structural := stats.Quantile(inflows, e.params.StructuralQuantile)
		mean := stats.Mean(inflows)

		volatile := mean - structural
		if volatile < 0 {
			volatile = 0
		}
		ratio := 0.0
		if mean > 0 {
			ratio = structural / mean
		}

		out = append(out, models.StructuralCashEstimate{
			AccountID:        id,
			StructuralInflow: structural,
			VolatileInflow:   volatile,
			StructuralRatio:  ratio,
		})
	})
	return out
}

// Seasonality groups the full ledger by weekday and by month-end flag,
// returning mean flows per group. Only observed groups appear; the two
// tables stay independent.
func (e *Engine) Seasonality(entries []models.LedgerEntry) ([]models.DayOfWeekPattern, []models.MonthEndPattern) {
	var dowIn, dowOut [7]float64
	var dowCount [7]int
	var meIn, meOut [2]float64
	var meCount [2]int

	for _, e := range entries {
		dowIn[e.DayOfWeek] += e.Inflow
		dowOut[e.DayOfWeek] += e.Outflow
		dowCount[e.DayOfWeek]++

		idx := 0
		if e.IsMonthEnd {
			idx = 1
		}
		meIn[idx] += e.Inflow
		meOut[idx] += e.Outflow
		meCount[idx]++
	}

	dow := make([]models.DayOfWeekPattern, 0, 7)
	for d := 0; d < 7; d++ {
		if dowCount[d] == 0 {
			continue
		}
		dow = append(dow, models.DayOfWeekPattern{
			DayOfWeek:  d,
			AvgInflow:  dowIn[d] / float64(dowCount[d]),
			AvgOutflow: dowOut[d] / float64(dowCount[d]),
		})
	}

	monthEnd := make([]models.MonthEndPattern, 0, 2)
	for idx := 0; idx < 2; idx++ {
		if meCount[idx] == 0 {
			continue
		}
		monthEnd = append(monthEnd, models.MonthEndPattern{
			IsMonthEnd: idx == 1,
			AvgInflow:  meIn[idx] / float64(meCount[idx]),
			AvgOutflow: meOut[idx] / float64(meCount[idx]),
		})
	}
	return dow, monthEnd
}

// BankSummary aggregates all accounts by date and summarizes the daily
// bank-wide series.
func (e *Engine) BankSummary(entries []models.LedgerEntry) ([]models.BankDailyRecord, models.BankSummary) {
	byDate := make(map[time.Time]*models.BankDailyRecord)
	for _, e := range entries {
		agg, ok := byDate[e.Date]
		if !ok {
			agg = &models.BankDailyRecord{Date: e.Date}
			byDate[e.Date] = agg
		}
		agg.Inflow += e.Inflow
		agg.Outflow += e.Outflow
		agg.NetCash += e.NetCash
	}

	daily := make([]models.BankDailyRecord, 0, len(byDate))
	for _, agg := range byDate {
		daily = append(daily, *agg)
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date.Before(daily[j].Date) })

	inflows := column2(daily, func(r models.BankDailyRecord) float64 { return r.Inflow })
	outflows := column2(daily, func(r models.BankDailyRecord) float64 { return r.Outflow })
	nets := column2(daily, func(r models.BankDailyRecord) float64 { return r.NetCash })

	return daily, models.BankSummary{
		AvgDailyInflow:    stats.Mean(inflows),
		AvgDailyOutflow:   stats.Mean(outflows),
		NetPosition:       stats.Mean(nets),
		OutflowVolatility: stats.SampleStdDev(outflows),
	}
}

// forEachAccount walks preprocessed (sorted) entries one account run at a
// time, in account order.
func forEachAccount(entries []models.LedgerEntry, fn func(id string, acc []models.LedgerEntry)) {
	for i := 0; i < len(entries); {
		j := i
		for j < len(entries) && entries[j].AccountID == entries[i].AccountID {
			j++
		}
		fn(entries[i].AccountID, entries[i:j])
		i = j
	}
}

func column(entries []models.LedgerEntry, get func(models.LedgerEntry) float64) []float64 {
	out := make([]float64, len(entries))
	for i, e := range entries {
		out[i] = get(e)
	}
	return out
}

func column2(recs []models.BankDailyRecord, get func(models.BankDailyRecord) float64) []float64 {
	out := make([]float64, len(recs))
	for i, r := range recs {
		out[i] = get(r)
	}
	return out
}
