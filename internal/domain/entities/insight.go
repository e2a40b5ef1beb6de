package entities

import (
	"github.com/shopspring/decimal"
)

// RiskTier is a coarse categorical risk assessment derived from a Record.
type RiskTier string

const (
	RiskLow    RiskTier = "Low"
	RiskMedium RiskTier = "Medium"
	RiskHigh   RiskTier = "High"
)

// Rank orders tiers so monotonicity can be checked numerically.
func (t RiskTier) Rank() int {
	switch t {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	}
	return -1
}

// CoverageComparison compares estimated out-of-pocket costs between the
// government scheme and private insurance tiers for a predicted cost.
type CoverageComparison struct {
	GovtCoverage    decimal.Decimal `json:"govt_coverage"`
	GovtOutOfPocket decimal.Decimal `json:"govt_out_of_pocket"`
	PrivateBase     decimal.Decimal `json:"private_base"`
	PrivatePremium  decimal.Decimal `json:"private_premium"`
	Recommendation  string          `json:"recommendation"`
}

// AccidentEstimate is an accident/injury cost estimate. The breakdown
// entries sum exactly to Total.
type AccidentEstimate struct {
	Total     decimal.Decimal `json:"total"`
	Breakdown []CostItem      `json:"breakdown"`
}

// CostItem is one category line in an accident cost breakdown.
type CostItem struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// Scheme is a government healthcare scheme matched against a profile.
type Scheme struct {
	Name        string   `json:"name"`
	Eligibility string   `json:"eligibility"`
	Coverage    string   `json:"coverage"`
	Benefits    []string `json:"benefits"`
	Application string   `json:"application"`
	Priority    string   `json:"priority"`
}
