package ml

import (
	"encoding/gob"
	"math"
)

// Estimator is the capability shared by every regression model: fit on
// encoded feature matrices, predict a charge for one encoded record.
// Callers never depend on which concrete estimator is behind it.
type Estimator interface {
	Fit(features [][]float64, targets []float64) error
	Predict(features []float64) float64
	Name() string
}

func init() {
	// Concrete estimators travel inside a gob-encoded artifact.
	gob.Register(&Forest{})
	gob.Register(&GradientBooster{})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
