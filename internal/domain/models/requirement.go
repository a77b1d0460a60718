package models

import "time"

// Account-level and bank-level action signals are intentionally distinct
// vocabularies; the sign of the funding gap fully determines the label.
const (
	ActionRaiseFunds    = "RAISE_FUNDS"
	ActionInvestSurplus = "INVEST_SURPLUS"

	BankActionFundingRequired = "BANK_FUNDING_REQUIRED"
	BankActionExcessLiquidity = "BANK_HAS_EXCESS_LIQUIDITY"
)

// CashRequirementRecord reconciles one forecasted account-day against the
// account's risk profile and current balance. RequiredCash may be negative
// when reliable inflow exceeds predicted outflow plus buffers; that is the
// surplus branch, not an error.
type CashRequirementRecord struct {
	Date             time.Time
	AccountID        string
	PredictedInflow  float64
	PredictedOutflow float64
	SafetyBuffer     float64
	StressBuffer     float64
	ReliableInflow   float64
	RequiredCash     float64
	Balance          float64
	FundingGap       float64
	IdleCash         float64
	Action           string
}

// BankRequirementRecord sums the account requirement rows per date and
// reclassifies with bank-scope actions.
type BankRequirementRecord struct {
	Date             time.Time
	PredictedInflow  float64
	PredictedOutflow float64
	RequiredCash     float64
	FundingGap       float64
	IdleCash         float64
	Action           string
}

// FundingRisk classifies an account's current standing from its latest
// balance relative to average outflow.
type FundingRisk string

const (
	RiskLow    FundingRisk = "Low"
	RiskMedium FundingRisk = "Medium"
	RiskHigh   FundingRisk = "High"
)
