package models

import "time"

// Model tags stamped on forecast rows.
const (
	ModelBaseline     = "BASELINE"
	ModelBaselineBank = "BASELINE_BANK"
)

// AccountForecastRecord is one predicted account-day. Dates are strictly
// after the account's last observed date; predictions are clamped to >= 0
// at construction.
type AccountForecastRecord struct {
	Date             time.Time
	AccountID        string
	PredictedInflow  float64
	PredictedOutflow float64
	Model            string
}

// BankForecastRecord is the sum of account predictions sharing a date.
type BankForecastRecord struct {
	Date             time.Time
	PredictedInflow  float64
	PredictedOutflow float64
	Model            string
}

// BankForecastBand decorates a bank forecast row with a one-sided confidence
// band around predicted outflow and the charting stress overlay. Produced by
// the presentation helpers, never consumed by the engines.
type BankForecastBand struct {
	BankForecastRecord
	UpperBound    float64
	LowerBound    float64
	StressOutflow float64
}
