package ml

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"github.com/carecost/predictor/internal/domain/entities"
	"github.com/carecost/predictor/internal/evaluation"
)

// TrainerConfig configures a training run.
type TrainerConfig struct {
	Seed            uint64
	TestFraction    float64
	Forest          ForestConfig
	Boost           BoostConfig
	BoostingEnabled bool
}

// Trainer fits candidate estimators on an encoded dataset and keeps the one
// with the better held-out score. The boosted candidate is a capability:
// when it cannot be constructed the forest serves alone, with no change in
// the external contract.
type Trainer struct {
	cfg TrainerConfig
}

// NewTrainer creates a trainer.
func NewTrainer(cfg TrainerConfig) *Trainer {
	if cfg.TestFraction <= 0 || cfg.TestFraction >= 1 {
		cfg.TestFraction = 0.2
	}
	return &Trainer{cfg: cfg}
}

// Train encodes records, performs a deterministic held-out split, fits the
// candidates and returns the winning artifact.
func (t *Trainer) Train(records []entities.Record) (*Artifact, error) {
	if len(records) < 10 {
		return nil, fmt.Errorf("trainer: need at least 10 records, got %d", len(records))
	}

	encoder := NewEncoder()
	features, targets, err := encoder.TransformAll(records)
	if err != nil {
		return nil, fmt.Errorf("trainer: encoding dataset: %w", err)
	}

	trainX, trainY, testX, testY := split(features, targets, t.cfg.TestFraction, t.cfg.Seed)

	forest := NewForest(t.cfg.Forest)
	if err := forest.Fit(trainX, trainY); err != nil {
		return nil, fmt.Errorf("trainer: fitting forest: %w", err)
	}
	forestScore := scoreOn(forest, testX, testY)

	var (
		best      Estimator = forest
		bestScore           = forestScore
	)
	boostScore := 0.0

	if t.cfg.BoostingEnabled {
		booster, err := NewGradientBooster(t.cfg.Boost)
		if err != nil {
			log.Warn().Err(err).Msg("gradient boosting unavailable, continuing with random forest")
		} else if err := booster.Fit(trainX, trainY); err != nil {
			log.Warn().Err(err).Msg("gradient boosting fit failed, continuing with random forest")
		} else {
			boostScore = scoreOn(booster, testX, testY)
			if boostScore > bestScore {
				best = booster
				bestScore = boostScore
			}
		}
	}

	artifact := &Artifact{
		Model:        best,
		ModelType:    best.Name(),
		Encoder:      encoder,
		FeatureNames: encoder.FeatureNames(),
		TrainScore:   scoreOn(best, trainX, trainY),
		TestScore:    bestScore,
		ForestScore:  forestScore,
		BoostScore:   boostScore,
		SampleCount:  len(records),
		TrainedAt:    time.Now().UTC(),
	}

	log.Info().
		Str("model_type", artifact.ModelType).
		Float64("train_score", artifact.TrainScore).
		Float64("test_score", artifact.TestScore).
		Int("samples", artifact.SampleCount).
		Msg("model training complete")

	return artifact, nil
}

func scoreOn(est Estimator, features [][]float64, targets []float64) float64 {
	predicted := make([]float64, len(features))
	for i, row := range features {
		predicted[i] = est.Predict(row)
	}
	return evaluation.RSquared(predicted, targets)
}

// split shuffles deterministically and carves off the test fraction.
func split(features [][]float64, targets []float64, testFraction float64, seed uint64) ([][]float64, []float64, [][]float64, []float64) {
	n := len(features)
	perm := rand.New(rand.NewSource(seed)).Perm(n)

	testSize := int(float64(n) * testFraction)
	if testSize < 1 {
		testSize = 1
	}
	trainSize := n - testSize

	trainX := make([][]float64, 0, trainSize)
	trainY := make([]float64, 0, trainSize)
	testX := make([][]float64, 0, testSize)
	testY := make([]float64, 0, testSize)

	for i, j := range perm {
		if i < trainSize {
			trainX = append(trainX, features[j])
			trainY = append(trainY, targets[j])
		} else {
			testX = append(testX, features[j])
			testY = append(testY, targets[j])
		}
	}

	return trainX, trainY, testX, testY
}
