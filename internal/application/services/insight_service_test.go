package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carecost/predictor/internal/domain/entities"
	apperrors "github.com/carecost/predictor/pkg/errors"
)

func TestRiskLevel_Tiers(t *testing.T) {
	svc := NewInsightService()

	tests := []struct {
		name string
		rec  entities.Record
		want entities.RiskTier
	}{
		{"young healthy", entities.Record{Age: 25, BMI: 24, Smoker: entities.SmokerNo}, entities.RiskLow},
		{"bmi exactly 30 is not elevated", entities.Record{Age: 50, BMI: 30, Smoker: entities.SmokerNo}, entities.RiskLow},
		{"young smoker", entities.Record{Age: 30, BMI: 24, Smoker: entities.SmokerYes}, entities.RiskMedium},
		{"young high bmi", entities.Record{Age: 30, BMI: 31, Smoker: entities.SmokerNo}, entities.RiskMedium},
		{"age 45 elevated stays medium", entities.Record{Age: 45, BMI: 32, Smoker: entities.SmokerNo}, entities.RiskMedium},
		{"older smoker", entities.Record{Age: 46, BMI: 24, Smoker: entities.SmokerYes}, entities.RiskHigh},
		{"older high bmi", entities.Record{Age: 60, BMI: 36, Smoker: entities.SmokerNo}, entities.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.RiskLevel(tt.rec))
		})
	}
}

func TestRiskLevel_NeverDecreasesWithAge(t *testing.T) {
	svc := NewInsightService()
	rec := entities.Record{BMI: 32, Smoker: entities.SmokerNo}

	prev := entities.RiskLow
	for age := entities.MinAge; age <= entities.MaxAge; age++ {
		rec.Age = age
		tier := svc.RiskLevel(rec)
		assert.GreaterOrEqual(t, tier.Rank(), prev.Rank(), "age %d", age)
		prev = tier
	}
}

func TestCompareCoverage_CapAndRecommendation(t *testing.T) {
	svc := NewInsightService()

	// Below the cap: coverage is 60%, out-of-pocket 40% of cost, which is
	// less than the 85% private base plan.
	low := svc.CompareCoverage(5000)
	assert.True(t, low.GovtCoverage.Equal(decimal.NewFromInt(3000)), "got %s", low.GovtCoverage)
	assert.True(t, low.GovtOutOfPocket.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, "government", low.Recommendation)

	// High cost: coverage capped at 5000, out-of-pocket dominates.
	high := svc.CompareCoverage(40000)
	assert.True(t, high.GovtCoverage.Equal(decimal.NewFromInt(5000)))
	assert.True(t, high.GovtOutOfPocket.Equal(decimal.NewFromInt(35000)))
	assert.True(t, high.PrivateBase.Equal(decimal.NewFromInt(34000)))
	assert.True(t, high.PrivatePremium.Equal(decimal.NewFromInt(44000)))
	assert.Equal(t, "private", high.Recommendation)
}

func TestCompareCoverage_TieBreaksTowardGovernment(t *testing.T) {
	svc := NewInsightService()

	// At 11111.11... out-of-pocket roughly equals the private base; use an
	// exact tie point: cost where cost-5000 == 0.85*cost -> cost = 33333.33.
	comparison := svc.CompareCoverage(33333.33)
	diff := comparison.GovtOutOfPocket.Sub(comparison.PrivateBase)
	if diff.LessThanOrEqual(decimal.Zero) {
		assert.Equal(t, "government", comparison.Recommendation)
	} else {
		assert.Equal(t, "private", comparison.Recommendation)
	}
}

func TestAccidentCost_BreakdownSumsExactly(t *testing.T) {
	svc := NewInsightService()
	rec := entities.Record{Age: 50, Sex: entities.SexMale, BMI: 33, Smoker: entities.SmokerNo, Region: entities.RegionNortheast}

	estimate, err := svc.AccidentCost(rec, AccidentParams{
		AccidentType:    "car_accident",
		Severity:        "severe",
		Hospitalization: true,
		Surgery:         true,
		RecoveryDays:    14,
	})
	require.NoError(t, err)

	require.Len(t, estimate.Breakdown, 4)

	sum := decimal.Zero
	for _, item := range estimate.Breakdown {
		sum = sum.Add(item.Amount)
	}
	assert.True(t, estimate.Total.Equal(sum), "total %s != sum %s", estimate.Total, sum)
}

func TestAccidentCost_Defaults(t *testing.T) {
	svc := NewInsightService()
	rec := entities.Record{Age: 25, BMI: 22, Smoker: entities.SmokerNo}

	estimate, err := svc.AccidentCost(rec, AccidentParams{})
	require.NoError(t, err)

	// other/moderate, no hospitalization or surgery, zero recovery days:
	// base_treatment 7000 and a zero recovery_medication line.
	require.Len(t, estimate.Breakdown, 2)
	assert.Equal(t, "base_treatment", estimate.Breakdown[0].Category)
	assert.True(t, estimate.Breakdown[0].Amount.Equal(decimal.NewFromInt(7000)))
	assert.Equal(t, "recovery_medication", estimate.Breakdown[1].Category)
	assert.True(t, estimate.Breakdown[1].Amount.IsZero())
}

func TestAccidentCost_Validation(t *testing.T) {
	svc := NewInsightService()
	rec := entities.Record{Age: 25, BMI: 22, Smoker: entities.SmokerNo}

	_, err := svc.AccidentCost(rec, AccidentParams{AccidentType: "meteor"})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = svc.AccidentCost(rec, AccidentParams{Severity: "apocalyptic"})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = svc.AccidentCost(rec, AccidentParams{RecoveryDays: -1})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestAccidentCost_ProfileFactorScalesUp(t *testing.T) {
	svc := NewInsightService()
	params := AccidentParams{AccidentType: "fall", Severity: "moderate", RecoveryDays: 7}

	young := entities.Record{Age: 25, BMI: 22, Smoker: entities.SmokerNo}
	older := entities.Record{Age: 62, BMI: 37, Smoker: entities.SmokerNo}

	a, err := svc.AccidentCost(young, params)
	require.NoError(t, err)
	b, err := svc.AccidentCost(older, params)
	require.NoError(t, err)

	assert.True(t, b.Total.GreaterThan(a.Total))
}

func TestRecommendSchemes_HighPriorityFirst(t *testing.T) {
	svc := NewInsightService()

	rec := entities.Record{Age: 58, Sex: entities.SexMale, BMI: 32, Children: 2, Smoker: entities.SmokerYes, Region: entities.RegionSoutheast}
	schemes := svc.RecommendSchemes(rec, 20000)

	require.NotEmpty(t, schemes)

	seenMedium := false
	for _, s := range schemes {
		if s.Priority == "Medium" {
			seenMedium = true
		}
		if seenMedium {
			assert.NotEqual(t, "High", s.Priority, "high priority scheme after medium")
		}
	}
}

func TestRecommendSchemes_AlwaysAtLeastOne(t *testing.T) {
	svc := NewInsightService()

	rec := entities.Record{Age: 30, Sex: entities.SexFemale, BMI: 24, Children: 0, Smoker: entities.SmokerNo, Region: entities.RegionNortheast}
	schemes := svc.RecommendSchemes(rec, 12000)

	// The national preventive initiative matches everyone.
	assert.NotEmpty(t, schemes)
	assert.NotEmpty(t, svc.PrimaryScheme(rec, 12000))
}

func TestRecommendSchemes_Eligibility(t *testing.T) {
	svc := NewInsightService()

	smoker := entities.Record{Age: 30, Sex: entities.SexMale, BMI: 24, Smoker: entities.SmokerYes, Region: entities.RegionNortheast}
	names := schemeNames(svc.RecommendSchemes(smoker, 12000))
	assert.Contains(t, names, "Tobacco Cessation Support Program")

	senior := entities.Record{Age: 56, Sex: entities.SexFemale, BMI: 24, Smoker: entities.SmokerNo, Region: entities.RegionNortheast}
	names = schemeNames(svc.RecommendSchemes(senior, 12000))
	assert.Contains(t, names, "Senior Health Assistance Program")
	assert.NotContains(t, names, "Tobacco Cessation Support Program")
}

func schemeNames(schemes []entities.Scheme) []string {
	names := make([]string, len(schemes))
	for i, s := range schemes {
		names[i] = s.Name
	}
	return names
}

func TestRecommendations_SmokerAndWeightAdvice(t *testing.T) {
	svc := NewInsightService()

	rec := entities.Record{Age: 50, BMI: 33, Smoker: entities.SmokerYes}
	comparison := svc.CompareCoverage(30000)
	recs := svc.Recommendations(rec, entities.RiskHigh, comparison)

	assert.GreaterOrEqual(t, len(recs), 4)
}
