package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carecost/predictor/internal/domain/entities"
	apperrors "github.com/carecost/predictor/pkg/errors"
)

func TestEncoder_Transform(t *testing.T) {
	enc := NewEncoder()

	rec := entities.Record{
		Age:      45,
		Sex:      entities.SexMale,
		BMI:      31.5,
		Children: 2,
		Smoker:   entities.SmokerYes,
		Region:   entities.RegionSoutheast,
	}

	features, err := enc.Transform(rec)
	require.NoError(t, err)
	assert.Equal(t, []float64{45, 1, 31.5, 2, 1, 2}, features)
}

func TestEncoder_StableAcrossInstances(t *testing.T) {
	rec := entities.Record{Age: 30, Sex: entities.SexFemale, BMI: 22, Children: 0, Smoker: entities.SmokerNo, Region: entities.RegionSouthwest}

	a, err := NewEncoder().Transform(rec)
	require.NoError(t, err)
	b, err := NewEncoder().Transform(rec)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestEncoder_UnknownCategory(t *testing.T) {
	enc := NewEncoder()

	tests := []struct {
		name string
		rec  entities.Record
	}{
		{"sex", entities.Record{Age: 30, Sex: "other", BMI: 25, Smoker: entities.SmokerNo, Region: entities.RegionNortheast}},
		{"smoker", entities.Record{Age: 30, Sex: entities.SexMale, BMI: 25, Smoker: "sometimes", Region: entities.RegionNortheast}},
		{"region", entities.Record{Age: 30, Sex: entities.SexMale, BMI: 25, Smoker: entities.SmokerNo, Region: "midwest"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := enc.Transform(tt.rec)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		})
	}
}

func TestEncoder_FeatureNamesMatchVectorLayout(t *testing.T) {
	enc := NewEncoder()

	features, err := enc.Transform(entities.Record{Age: 20, Sex: entities.SexFemale, BMI: 20, Smoker: entities.SmokerNo, Region: entities.RegionNortheast})
	require.NoError(t, err)
	assert.Len(t, features, len(enc.FeatureNames()))
}
