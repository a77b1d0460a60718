package forecast

import (
	"sort"
	"sync"
	"time"

	"CashRadar/internal/domain/models"
	"CashRadar/internal/services/preprocess"
	"CashRadar/internal/services/stats"
)

// Params configures the baseline model. Zero or negative values fall back to
// the documented defaults so a partially filled struct stays usable.
type Params struct {
	Horizon       int     // forecast length in calendar days
	RollingWindow int     // observations feeding the rolling mean
	Alpha         float64 // blend weight: alpha*rolling + (1-alpha)*seasonal
	Workers       int     // parallel account workers
}

// DefaultParams returns the documented model defaults.
func DefaultParams() Params {
	return Params{Horizon: 60, RollingWindow: 14, Alpha: 0.7, Workers: 4}
}

func (p Params) sanitized() Params {
	def := DefaultParams()
	if p.Horizon <= 0 {
		p.Horizon = def.Horizon
	}
	if p.RollingWindow <= 0 {
		p.RollingWindow = def.RollingWindow
	}
	if p.Alpha < 0 || p.Alpha > 1 {
		p.Alpha = def.Alpha
	}
	if p.Workers <= 0 {
		p.Workers = def.Workers
	}
	return p
}

// Baseline produces a short-horizon per-account forecast by blending a
// recent rolling mean with a day-of-week seasonal mean. No iterative model
// fitting; the blend is a closed-form weighted average.
type Baseline struct {
	params Params
}

func NewBaseline(p Params) *Baseline {
	return &Baseline{params: p.sanitized()}
}

type accountSeries struct {
	id      string
	entries []models.LedgerEntry
}

// Run forecasts every account in the preprocessed ledger and aggregates the
// bank-level view. Per-account work fans out across a bounded worker pool;
// each worker writes only its own result slot, so the merge is a plain
// concatenation in account order and repeated runs are bit-identical.
func (b *Baseline) Run(entries []models.LedgerEntry) ([]models.AccountForecastRecord, []models.BankForecastRecord) {
	series := groupByAccount(entries)
	results := make([][]models.AccountForecastRecord, len(series))

	jobs := make(chan int)
	var wg sync.WaitGroup
	workers := b.params.Workers
	if workers > len(series) && len(series) > 0 {
		workers = len(series)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = b.forecastAccount(series[i])
			}
		}()
	}
	for i := range series {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var account []models.AccountForecastRecord
	for _, rs := range results {
		account = append(account, rs...)
	}
	return account, aggregateBank(account)
}

// forecastAccount projects one account over the configured horizon. An
// account with a single observation still yields a full horizon: every
// seasonal bucket falls back to the rolling mean, which degrades to the mean
// of whatever history exists.
func (b *Baseline) forecastAccount(s accountSeries) []models.AccountForecastRecord {
	inflows := make([]float64, len(s.entries))
	outflows := make([]float64, len(s.entries))
	for i, e := range s.entries {
		inflows[i] = e.Inflow
		outflows[i] = e.Outflow
	}

	rollIn := stats.TailMean(inflows, b.params.RollingWindow)
	rollOut := stats.TailMean(outflows, b.params.RollingWindow)

	var dowInSum, dowOutSum [7]float64
	var dowCount [7]int
	for _, e := range s.entries {
		dowInSum[e.DayOfWeek] += e.Inflow
		dowOutSum[e.DayOfWeek] += e.Outflow
		dowCount[e.DayOfWeek]++
	}

	lastDate := s.entries[len(s.entries)-1].Date
	alpha := b.params.Alpha

	out := make([]models.AccountForecastRecord, 0, b.params.Horizon)
	for h := 1; h <= b.params.Horizon; h++ {
		date := lastDate.AddDate(0, 0, h)
		dow := preprocess.MondayIndex(date)

		seasonalIn, seasonalOut := rollIn, rollOut
		if dowCount[dow] > 0 {
			seasonalIn = dowInSum[dow] / float64(dowCount[dow])
			seasonalOut = dowOutSum[dow] / float64(dowCount[dow])
		}

		out = append(out, models.AccountForecastRecord{
			Date:             date,
			AccountID:        s.id,
			PredictedInflow:  clampZero(alpha*rollIn + (1-alpha)*seasonalIn),
			PredictedOutflow: clampZero(alpha*rollOut + (1-alpha)*seasonalOut),
			Model:            models.ModelBaseline,
		})
	}
	return out
}

// aggregateBank sums account predictions per date. Dates with no
// contributing account are simply absent.
func aggregateBank(account []models.AccountForecastRecord) []models.BankForecastRecord {
	byDate := make(map[time.Time]*models.BankForecastRecord)
	for _, r := range account {
		agg, ok := byDate[r.Date]
		if !ok {
			agg = &models.BankForecastRecord{Date: r.Date, Model: models.ModelBaselineBank}
			byDate[r.Date] = agg
		}
		agg.PredictedInflow += r.PredictedInflow
		agg.PredictedOutflow += r.PredictedOutflow
	}

	out := make([]models.BankForecastRecord, 0, len(byDate))
	for _, agg := range byDate {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// groupByAccount splits preprocessed (sorted) entries into per-account runs,
// preserving account order.
func groupByAccount(entries []models.LedgerEntry) []accountSeries {
	var out []accountSeries
	for i := 0; i < len(entries); {
		j := i
		for j < len(entries) && entries[j].AccountID == entries[i].AccountID {
			j++
		}
		out = append(out, accountSeries{id: entries[i].AccountID, entries: entries[i:j]})
		i = j
	}
	return out
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
