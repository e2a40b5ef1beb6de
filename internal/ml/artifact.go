package ml

import (
	"time"

	"github.com/carecost/predictor/internal/domain/entities"
)

// Artifact is the persisted unit of a completed training run: the winning
// estimator, the encoder it was fit with, and its held-out scores. Created
// once and read-only thereafter.
type Artifact struct {
	Model        Estimator
	ModelType    string
	Encoder      *Encoder
	FeatureNames []string
	TrainScore   float64
	TestScore    float64
	ForestScore  float64
	BoostScore   float64 // zero when the boosted estimator was unavailable
	SampleCount  int
	TrainedAt    time.Time
}

// Predict encodes a record and returns the estimated annual charge,
// rounded to cents and never negative.
func (a *Artifact) Predict(rec entities.Record) (float64, error) {
	features, err := a.Encoder.Transform(rec)
	if err != nil {
		return 0, err
	}
	cost := a.Model.Predict(features)
	if cost < 0 {
		cost = 0
	}
	return round2(cost), nil
}

// Info summarizes the artifact for API consumers.
func (a *Artifact) Info() entities.ModelInfo {
	return entities.ModelInfo{
		ModelType:    a.ModelType,
		TrainScore:   a.TrainScore,
		TestScore:    a.TestScore,
		FeatureNames: a.FeatureNames,
		SampleCount:  a.SampleCount,
		TrainedAt:    a.TrainedAt,
	}
}
