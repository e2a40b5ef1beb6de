package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carecost/predictor/internal/domain/entities"
	apperrors "github.com/carecost/predictor/pkg/errors"
)

// Government coverage caps out at a fixed ceiling; private plans price
// proportionally to the predicted cost.
var (
	govtCoverageRate   = decimal.NewFromFloat(0.60)
	govtCoverageCap    = decimal.NewFromInt(5000)
	privateBaseRate    = decimal.NewFromFloat(0.85)
	privatePremiumRate = decimal.NewFromFloat(1.10)
)

// Accident category base costs, scaled by severity and profile factors.
var accidentTypeBase = map[string]decimal.Decimal{
	"car_accident":     decimal.NewFromInt(15000),
	"fall":             decimal.NewFromInt(8000),
	"sports_injury":    decimal.NewFromInt(10000),
	"workplace_injury": decimal.NewFromInt(12000),
	"other":            decimal.NewFromInt(7000),
}

var severityMultipliers = map[string]decimal.Decimal{
	"minor":    decimal.NewFromFloat(0.5),
	"moderate": decimal.NewFromInt(1),
	"severe":   decimal.NewFromInt(2),
	"critical": decimal.NewFromFloat(3.5),
}

var (
	hospitalAdmission = decimal.NewFromInt(5000)
	hospitalPerDay    = decimal.NewFromInt(1500)
	surgeryCost       = decimal.NewFromInt(25000)
	recoveryPerDay    = decimal.NewFromInt(100)
)

// AccidentParams describe an accident/injury scenario.
type AccidentParams struct {
	AccidentType    string `json:"accident_type"`
	Severity        string `json:"severity"`
	Hospitalization bool   `json:"hospitalization"`
	Surgery         bool   `json:"surgery"`
	RecoveryDays    int    `json:"recovery_days"`
}

// InsightService computes derived metrics from a record. Every method is a
// pure function of its inputs; none touches the fitted model.
type InsightService struct{}

// NewInsightService creates an insight service.
func NewInsightService() *InsightService {
	return &InsightService{}
}

// RiskLevel assigns a coarse risk tier. The thresholds are a policy
// choice, but the tier never decreases as age or BMI grow or when the
// smoker flag turns on.
func (s *InsightService) RiskLevel(rec entities.Record) entities.RiskTier {
	elevated := rec.IsSmoker() || rec.BMI > 30
	switch {
	case elevated && rec.Age > 45:
		return entities.RiskHigh
	case elevated:
		return entities.RiskMedium
	default:
		return entities.RiskLow
	}
}

// CompareCoverage estimates out-of-pocket costs under the government
// scheme and private plans, and recommends the cheaper option. A tie
// breaks toward the government scheme.
func (s *InsightService) CompareCoverage(predictedCost float64) entities.CoverageComparison {
	cost := decimal.NewFromFloat(predictedCost)

	coverage := decimal.Min(cost.Mul(govtCoverageRate), govtCoverageCap).Round(2)
	outOfPocket := cost.Sub(coverage).Round(2)
	privateBase := cost.Mul(privateBaseRate).Round(2)
	privatePremium := cost.Mul(privatePremiumRate).Round(2)

	recommendation := "government"
	if outOfPocket.GreaterThan(privateBase) {
		recommendation = "private"
	}

	return entities.CoverageComparison{
		GovtCoverage:    coverage,
		GovtOutOfPocket: outOfPocket,
		PrivateBase:     privateBase,
		PrivatePremium:  privatePremium,
		Recommendation:  recommendation,
	}
}

// AccidentCost estimates the additional insurance cost of an accident or
// injury. Category amounts are scaled by the scenario severity and by a
// profile factor derived from age and BMI; the breakdown sums exactly to
// the total.
func (s *InsightService) AccidentCost(rec entities.Record, params AccidentParams) (entities.AccidentEstimate, error) {
	if params.AccidentType == "" {
		params.AccidentType = "other"
	}
	if params.Severity == "" {
		params.Severity = "moderate"
	}

	base, ok := accidentTypeBase[params.AccidentType]
	if !ok {
		return entities.AccidentEstimate{}, apperrors.NewValidationError(fmt.Sprintf("unknown accident type %q", params.AccidentType))
	}
	severity, ok := severityMultipliers[params.Severity]
	if !ok {
		return entities.AccidentEstimate{}, apperrors.NewValidationError(fmt.Sprintf("unknown severity %q", params.Severity))
	}
	if params.RecoveryDays < 0 {
		return entities.AccidentEstimate{}, apperrors.NewValidationError(fmt.Sprintf("recovery days must not be negative, got %d", params.RecoveryDays))
	}

	profile := profileFactor(rec)
	days := decimal.NewFromInt(int64(params.RecoveryDays))

	var breakdown []entities.CostItem
	add := func(category string, amount decimal.Decimal) {
		breakdown = append(breakdown, entities.CostItem{
			Category: category,
			Amount:   amount.Mul(profile).Round(2),
		})
	}

	add("base_treatment", base.Mul(severity))
	if params.Hospitalization {
		add("hospitalization", hospitalAdmission.Add(days.Mul(hospitalPerDay)))
	}
	if params.Surgery {
		add("surgery", surgeryCost)
	}
	add("recovery_medication", days.Mul(recoveryPerDay))

	total := decimal.Zero
	for _, item := range breakdown {
		total = total.Add(item.Amount)
	}

	return entities.AccidentEstimate{Total: total, Breakdown: breakdown}, nil
}

// profileFactor scales accident costs by age and BMI. Strictly
// non-decreasing in both.
func profileFactor(rec entities.Record) decimal.Decimal {
	factor := decimal.NewFromInt(1)

	switch {
	case rec.Age >= 60:
		factor = factor.Add(decimal.NewFromFloat(0.30))
	case rec.Age >= 45:
		factor = factor.Add(decimal.NewFromFloat(0.20))
	case rec.Age >= 30:
		factor = factor.Add(decimal.NewFromFloat(0.10))
	}

	switch {
	case rec.BMI > 35:
		factor = factor.Add(decimal.NewFromFloat(0.25))
	case rec.BMI > 30:
		factor = factor.Add(decimal.NewFromFloat(0.15))
	case rec.BMI > 25:
		factor = factor.Add(decimal.NewFromFloat(0.05))
	}

	return factor
}

// RecommendSchemes matches the profile and predicted cost against the
// static scheme eligibility table. High priority schemes sort first; the
// first entry is the primary recommendation.
func (s *InsightService) RecommendSchemes(rec entities.Record, predictedCost float64) []entities.Scheme {
	var high, medium []entities.Scheme
	for _, rule := range schemeRules {
		if !rule.matches(rec, predictedCost) {
			continue
		}
		if rule.scheme.Priority == "High" {
			high = append(high, rule.scheme)
		} else {
			medium = append(medium, rule.scheme)
		}
	}
	return append(high, medium...)
}

// PrimaryScheme returns the name of the top recommended scheme.
func (s *InsightService) PrimaryScheme(rec entities.Record, predictedCost float64) string {
	schemes := s.RecommendSchemes(rec, predictedCost)
	if len(schemes) == 0 {
		return ""
	}
	return schemes[0].Name
}

// Recommendations produces the advisory lines used in reports.
func (s *InsightService) Recommendations(rec entities.Record, risk entities.RiskTier, comparison entities.CoverageComparison) []string {
	var recs []string

	if rec.IsSmoker() {
		recs = append(recs, "Consider quitting smoking to reduce insurance costs substantially")
	}
	if rec.BMI > 30 {
		recs = append(recs, "A weight management program could help reduce your BMI and lower premiums")
	}
	if risk == entities.RiskHigh {
		recs = append(recs,
			"Explore comprehensive insurance options to ensure adequate coverage",
			"Consider both government subsidies and private insurance plans")
	}
	if comparison.Recommendation == "government" {
		recs = append(recs, "Government healthcare scheme may be more economical for your profile")
	} else {
		recs = append(recs, "Private insurance might offer better value with comprehensive coverage")
	}
	if len(recs) == 1 {
		recs = append(recs, "Your insurance profile is healthy. Review insurance options annually for the best rates")
	}

	return recs
}
