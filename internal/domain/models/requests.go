package models

// Requests for the liquidity HTTP endpoints.

type ForecastRequest struct {
	Horizon   int     `query:"horizon" json:"horizon" default:"60" validate:"gte=1,lte=366"`
	AccountID string  `query:"account_id" json:"account_id"`
	From      string  `query:"from" json:"from"`
	To        string  `query:"to" json:"to"`
	Unit      string  `query:"unit" json:"unit" default:"INR" validate:"oneof=INR Lakhs Millions"`
	StressPct float64 `query:"stress_pct" json:"stress_pct" default:"10" validate:"gte=0,lte=100"`
}

type BehaviorRequest struct {
	AccountID string `query:"account_id" json:"account_id"`
}

type RequirementRequest struct {
	StressPct        float64 `query:"stress_pct" json:"stress_pct" default:"0.15" validate:"gte=0,lte=1"`
	ConfidenceFactor float64 `query:"confidence_factor" json:"confidence_factor" default:"1.65" validate:"gte=0,lte=10"`
	From             string  `query:"from" json:"from"`
	To               string  `query:"to" json:"to"`
}

type SummaryRequest struct {
	Unit      string  `query:"unit" json:"unit" default:"INR" validate:"oneof=INR Lakhs Millions"`
	StressPct float64 `query:"stress_pct" json:"stress_pct" default:"10" validate:"gte=0,lte=100"`
	From      string  `query:"from" json:"from"`
	To        string  `query:"to" json:"to"`
}
