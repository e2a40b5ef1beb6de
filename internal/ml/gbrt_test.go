package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/carecost/predictor/pkg/errors"
)

func TestNewGradientBooster_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  BoostConfig
	}{
		{"zero rounds", BoostConfig{Rounds: 0, LearningRate: 0.1}},
		{"negative rounds", BoostConfig{Rounds: -5, LearningRate: 0.1}},
		{"zero learning rate", BoostConfig{Rounds: 50, LearningRate: 0}},
		{"learning rate above one", BoostConfig{Rounds: 50, LearningRate: 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGradientBooster(tt.cfg)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable))
		})
	}
}

func TestGradientBooster_FitsSimpleSignal(t *testing.T) {
	// y = 10x on a single feature; boosting should get close.
	features := make([][]float64, 100)
	targets := make([]float64, 100)
	for i := range features {
		features[i] = []float64{float64(i)}
		targets[i] = float64(i) * 10
	}

	booster, err := NewGradientBooster(BoostConfig{Rounds: 50, LearningRate: 0.2, Seed: 1})
	require.NoError(t, err)
	require.NoError(t, booster.Fit(features, targets))

	pred := booster.Predict([]float64{50})
	assert.InDelta(t, 500, pred, 100)

	assert.Equal(t, "gradient_boosting", booster.Name())
}

func TestForest_FitsSimpleSignal(t *testing.T) {
	features := make([][]float64, 100)
	targets := make([]float64, 100)
	for i := range features {
		features[i] = []float64{float64(i)}
		targets[i] = float64(i) * 10
	}

	forest := NewForest(ForestConfig{NumTrees: 20, MaxDepth: 8, Seed: 1})
	require.NoError(t, forest.Fit(features, targets))

	pred := forest.Predict([]float64{50})
	assert.InDelta(t, 500, pred, 100)

	assert.Equal(t, "random_forest", forest.Name())
}

func TestForest_DeterministicForSeed(t *testing.T) {
	features := make([][]float64, 80)
	targets := make([]float64, 80)
	for i := range features {
		features[i] = []float64{float64(i % 10), float64(i / 10)}
		targets[i] = float64(i%10)*3 + float64(i/10)*7
	}

	a := NewForest(ForestConfig{NumTrees: 10, MaxDepth: 6, Seed: 9})
	require.NoError(t, a.Fit(features, targets))
	b := NewForest(ForestConfig{NumTrees: 10, MaxDepth: 6, Seed: 9})
	require.NoError(t, b.Fit(features, targets))

	probe := []float64{4, 3}
	assert.Equal(t, a.Predict(probe), b.Predict(probe))
}
