package present

import (
	"time"

	"CashRadar/internal/domain/models"
)

// Unit is a display-only monetary divisor. It never touches the engines;
// scaling happens on already-computed tables.
type Unit struct {
	Name    string
	Divisor float64
	Label   string
}

var units = map[string]Unit{
	"INR":      {Name: "INR", Divisor: 1, Label: "₹"},
	"Lakhs":    {Name: "Lakhs", Divisor: 100_000, Label: "₹ Lakhs"},
	"Millions": {Name: "Millions", Divisor: 1_000_000, Label: "₹ Millions"},
}

// UnitByName resolves a display unit; unknown names fall back to INR.
func UnitByName(name string) Unit {
	if u, ok := units[name]; ok {
		return u
	}
	return units["INR"]
}

// Apply scales a monetary magnitude for display.
func (u Unit) Apply(v float64) float64 {
	return v / u.Divisor
}

// DateRange is an inclusive calendar filter. Zero bounds are open.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

// FilterEntries returns the history rows falling inside the range. An empty
// result is the caller's "no data" condition, not an error.
func FilterEntries(entries []models.LedgerEntry, r DateRange) []models.LedgerEntry {
	out := make([]models.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if r.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// FilterAccountForecast returns forecast rows inside the range, optionally
// restricted to one account (empty accountID keeps all).
func FilterAccountForecast(recs []models.AccountForecastRecord, r DateRange, accountID string) []models.AccountForecastRecord {
	out := make([]models.AccountForecastRecord, 0, len(recs))
	for _, rec := range recs {
		if accountID != "" && rec.AccountID != accountID {
			continue
		}
		if r.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	return out
}

// FilterBankForecast returns bank forecast rows inside the range.
func FilterBankForecast(recs []models.BankForecastRecord, r DateRange) []models.BankForecastRecord {
	out := make([]models.BankForecastRecord, 0, len(recs))
	for _, rec := range recs {
		if r.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	return out
}

// WithBands decorates bank forecast rows with the confidence band and the
// charting stress overlay. sigma is the historical outflow std-dev over the
// analysis window, z the quantile multiplier. stressPct is a whole
// percentage (10 means +10%) and is independent of the requirement engine's
// stress buffer.
func WithBands(recs []models.BankForecastRecord, sigma, z, stressPct float64) []models.BankForecastBand {
	out := make([]models.BankForecastBand, 0, len(recs))
	for _, rec := range recs {
		out = append(out, models.BankForecastBand{
			BankForecastRecord: rec,
			UpperBound:         rec.PredictedOutflow + z*sigma,
			LowerBound:         rec.PredictedOutflow - z*sigma,
			StressOutflow:      rec.PredictedOutflow * (1 + stressPct/100),
		})
	}
	return out
}

// ExecutiveSummary renders the standing advisory copy for the bank overview.
func ExecutiveSummary(netPosition, stressPct float64) string {
	switch {
	case netPosition > 0 && stressPct < 10:
		return "Liquidity conditions are healthy. Forecasted cashflows indicate surplus " +
			"availability, supporting investment or redeployment decisions."
	case stressPct >= 20:
		return "Stress scenarios indicate elevated funding risk. Additional liquidity buffers " +
			"or proactive funding actions are recommended."
	default:
		return "Liquidity conditions are stable but warrant close monitoring, particularly " +
			"under adverse outflow scenarios."
	}
}
