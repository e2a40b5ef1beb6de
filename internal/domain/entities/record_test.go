package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validTestRecord() Record {
	return Record{Age: 30, Sex: SexFemale, BMI: 24.5, Children: 1, Smoker: SmokerNo, Region: RegionNorthwest}
}

func TestRecord_ValidateBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Record)
		valid  bool
	}{
		{"baseline", func(r *Record) {}, true},
		{"age at minimum", func(r *Record) { r.Age = MinAge }, true},
		{"age at maximum", func(r *Record) { r.Age = MaxAge }, true},
		{"age below minimum", func(r *Record) { r.Age = MinAge - 1 }, false},
		{"age above maximum", func(r *Record) { r.Age = MaxAge + 1 }, false},
		{"bmi at minimum", func(r *Record) { r.BMI = MinBMI }, true},
		{"bmi at maximum", func(r *Record) { r.BMI = MaxBMI }, true},
		{"bmi below minimum", func(r *Record) { r.BMI = MinBMI - 0.1 }, false},
		{"bmi above maximum", func(r *Record) { r.BMI = MaxBMI + 0.1 }, false},
		{"children at maximum", func(r *Record) { r.Children = MaxChildren }, true},
		{"children above maximum", func(r *Record) { r.Children = MaxChildren + 1 }, false},
		{"negative children", func(r *Record) { r.Children = -1 }, false},
		{"unknown sex", func(r *Record) { r.Sex = "other" }, false},
		{"unknown smoker", func(r *Record) { r.Smoker = "occasionally" }, false},
		{"unknown region", func(r *Record) { r.Region = "midwest" }, false},
		{"empty categories", func(r *Record) { r.Sex, r.Smoker, r.Region = "", "", "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validTestRecord()
			tt.mutate(&rec)
			err := rec.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRiskTier_Rank(t *testing.T) {
	assert.Less(t, RiskLow.Rank(), RiskMedium.Rank())
	assert.Less(t, RiskMedium.Rank(), RiskHigh.Rank())
	assert.Equal(t, -1, RiskTier("bogus").Rank())
}
