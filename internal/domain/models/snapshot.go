package models

import "time"

// Snapshot is the immutable result of one full pipeline run. Consumers must
// treat every table as read-only; a new run produces a new snapshot rather
// than mutating this one.
type Snapshot struct {
	GeneratedAt time.Time

	History  []LedgerEntry
	Balances BalanceSnapshot

	AccountForecast []AccountForecastRecord
	BankForecast    []BankForecastRecord

	Behavior BehaviorReport

	AccountRequirement []CashRequirementRecord
	BankRequirement    []BankRequirementRecord

	// OutflowSigma is the sample std-dev of historical outflow across the
	// whole ledger, feeding the presentation confidence band.
	OutflowSigma float64
}
