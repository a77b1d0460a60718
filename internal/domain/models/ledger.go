package models

import "time"

// CashflowRecord is one observed account-day from the input ledger.
// Balance is the observed end-of-day balance, not derived from the flows.
type CashflowRecord struct {
	Date      time.Time
	AccountID string
	Inflow    float64
	Outflow   float64
	Balance   float64
}

// LedgerEntry is a CashflowRecord enriched with calendar features by the
// preprocessor. DayOfWeek uses 0=Monday..6=Sunday, matching the ledger
// convention the seasonal profiles are keyed on.
type LedgerEntry struct {
	CashflowRecord
	DayOfWeek  int
	DayOfMonth int
	IsMonthEnd bool
	NetCash    float64
}

// BalanceSnapshot maps AccountID to the most recently observed balance.
type BalanceSnapshot map[string]float64
