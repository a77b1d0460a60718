package models

import "time"

// AccountBehaviorMetrics characterizes one account's historical cash behavior.
// OutflowVolatility is the sample standard deviation (n-1 denominator) of
// daily outflow, 0 when fewer than two observations exist. OutflowCV is
// undefined when AvgOutflow is 0 or fewer than two observations exist; the
// undefined case is reported as 0 with StabilityScore 0. For a defined CV,
// StabilityScore = 1/(1+CV) and lies in (0, 1].
type AccountBehaviorMetrics struct {
	AccountID         string
	AvgInflow         float64
	AvgOutflow        float64
	NetFlow           float64
	OutflowVolatility float64
	OutflowCV         float64
	StabilityScore    float64
}

// StructuralCashEstimate splits an account's inflow into a reliably recurring
// part (a low quantile of history) and the volatile remainder.
type StructuralCashEstimate struct {
	AccountID        string
	StructuralInflow float64
	VolatileInflow   float64
	StructuralRatio  float64
}

// DayOfWeekPattern is the mean inflow/outflow observed on one weekday
// (0=Monday..6=Sunday) across the full ledger.
type DayOfWeekPattern struct {
	DayOfWeek  int
	AvgInflow  float64
	AvgOutflow float64
}

// MonthEndPattern is the mean inflow/outflow for month-end days
// (day of month >= 25) versus the rest of the month.
type MonthEndPattern struct {
	IsMonthEnd bool
	AvgInflow  float64
	AvgOutflow float64
}

// BankDailyRecord is the bank-wide sum of flows for one calendar day.
type BankDailyRecord struct {
	Date    time.Time
	Inflow  float64
	Outflow float64
	NetCash float64
}

// BankSummary aggregates the daily bank series. OutflowVolatility is the
// sample std-dev of the daily aggregate outflow.
type BankSummary struct {
	AvgDailyInflow    float64
	AvgDailyOutflow   float64
	NetPosition       float64
	OutflowVolatility float64
}

// BehaviorReport bundles the four independent behavior sub-computations.
type BehaviorReport struct {
	AccountMetrics   []AccountBehaviorMetrics
	StructuralCash   []StructuralCashEstimate
	DayOfWeekPattern []DayOfWeekPattern
	MonthEndPattern  []MonthEndPattern
	BankDaily        []BankDailyRecord
	BankSummary      BankSummary
}
