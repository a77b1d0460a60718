package preprocess

import (
	"fmt"
	"math"
	"sort"
	"time"

	"CashRadar/internal/domain/models"
)

// SchemaError reports a ledger row that violates the input schema. The row
// index refers to the caller's slice before sorting.
type SchemaError struct {
	Row    int
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("ledger schema: row %d field %s: %s", e.Row, e.Field, e.Reason)
}

// MondayIndex maps a date to the weekday convention used throughout the
// pipeline: 0=Monday .. 6=Sunday.
func MondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// MonthEndDay is the first day-of-month considered "month end".
const MonthEndDay = 25

// Run validates the raw ledger and returns it sorted by (AccountID, Date
// ascending) with derived calendar features and net cash. The input slice is
// never mutated; the returned entries are an owned copy.
func Run(ledger []models.CashflowRecord) ([]models.LedgerEntry, error) {
	entries := make([]models.LedgerEntry, 0, len(ledger))
	for i, rec := range ledger {
		if err := validate(i, rec); err != nil {
			return nil, err
		}
		day := time.Date(rec.Date.Year(), rec.Date.Month(), rec.Date.Day(), 0, 0, 0, 0, time.UTC)
		rec.Date = day
		entries = append(entries, models.LedgerEntry{
			CashflowRecord: rec,
			DayOfWeek:      MondayIndex(day),
			DayOfMonth:     day.Day(),
			IsMonthEnd:     day.Day() >= MonthEndDay,
			NetCash:        rec.Inflow - rec.Outflow,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].AccountID != entries[j].AccountID {
			return entries[i].AccountID < entries[j].AccountID
		}
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries, nil
}

func validate(row int, rec models.CashflowRecord) error {
	if rec.AccountID == "" {
		return &SchemaError{Row: row, Field: "Account_ID", Reason: "missing"}
	}
	if rec.Date.IsZero() {
		return &SchemaError{Row: row, Field: "Date", Reason: "missing or unparseable"}
	}
	if math.IsNaN(rec.Inflow) || rec.Inflow < 0 {
		return &SchemaError{Row: row, Field: "Inflow_INR", Reason: "must be a non-negative amount"}
	}
	if math.IsNaN(rec.Outflow) || rec.Outflow < 0 {
		return &SchemaError{Row: row, Field: "Outflow_INR", Reason: "must be a non-negative amount"}
	}
	if math.IsNaN(rec.Balance) {
		return &SchemaError{Row: row, Field: "Balance_INR", Reason: "must be a number"}
	}
	return nil
}

// LatestBalances derives the current balance snapshot: the balance on each
// account's most recent observed date. Expects preprocessed (sorted) entries.
func LatestBalances(entries []models.LedgerEntry) models.BalanceSnapshot {
	out := make(models.BalanceSnapshot)
	for _, e := range entries {
		out[e.AccountID] = e.Balance
	}
	return out
}
