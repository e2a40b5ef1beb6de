package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/carecost/predictor/internal/adapters/storage"
	"github.com/carecost/predictor/internal/domain/entities"
	"github.com/carecost/predictor/internal/domain/providers"
	"github.com/carecost/predictor/internal/domain/repositories"
	"github.com/carecost/predictor/internal/infrastructure/observability"
	"github.com/carecost/predictor/internal/ml"
	apperrors "github.com/carecost/predictor/pkg/errors"
)

const predictionCacheTTLSeconds = 3600

// referenceProfile anchors factor-impact analysis: a 30 year old male
// non-smoker with BMI 25, no children, in the northeast.
var referenceProfile = entities.Record{
	Age:      30,
	Sex:      entities.SexMale,
	BMI:      25,
	Children: 0,
	Smoker:   entities.SmokerNo,
	Region:   entities.RegionNortheast,
}

// PredictionService owns the model lifecycle and inference path. The
// artifact is created lazily on first use (load from disk, else generate a
// dataset, train and save) and is read-only afterwards.
type PredictionService struct {
	trainer     *ml.Trainer
	generator   *ml.Generator
	sampleCount int
	models      *storage.ModelStore
	datasets    *storage.DatasetStore
	history     repositories.HistoryRepository
	insights    *InsightService
	cache       providers.CacheProvider
	metrics     *observability.Metrics

	mu       sync.Mutex
	artifact *ml.Artifact
}

// NewPredictionService creates a prediction service. cache and metrics may
// be nil; the service degrades gracefully without them.
func NewPredictionService(
	trainer *ml.Trainer,
	generator *ml.Generator,
	sampleCount int,
	models *storage.ModelStore,
	datasets *storage.DatasetStore,
	history repositories.HistoryRepository,
	insights *InsightService,
	cache providers.CacheProvider,
	metrics *observability.Metrics,
) *PredictionService {
	return &PredictionService{
		trainer:     trainer,
		generator:   generator,
		sampleCount: sampleCount,
		models:      models,
		datasets:    datasets,
		history:     history,
		insights:    insights,
		cache:       cache,
		metrics:     metrics,
	}
}

// Artifact returns the fitted model, loading or training it on first use.
func (s *PredictionService) Artifact(ctx context.Context) (*ml.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.artifact != nil {
		return s.artifact, nil
	}

	artifact, err := s.models.Load()
	if err == nil {
		log.Info().Str("model_type", artifact.ModelType).Str("path", s.models.Path()).Msg("model artifact loaded")
		s.artifact = artifact
		return artifact, nil
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, err
	}

	records, err := s.trainingRecords()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	artifact, err = s.trainer.Train(records)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		observability.RecordTraining(ctx, s.metrics, artifact.ModelType, time.Since(start))
	}

	if err := s.models.Save(artifact); err != nil {
		return nil, err
	}

	s.artifact = artifact
	return artifact, nil
}

func (s *PredictionService) trainingRecords() ([]entities.Record, error) {
	records, err := s.datasets.Load()
	if err == nil {
		return records, nil
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, err
	}

	log.Info().Int("samples", s.sampleCount).Msg("dataset missing, generating synthetic records")
	records = s.generator.Generate(s.sampleCount)
	if err := s.datasets.Save(records); err != nil {
		return nil, err
	}
	return records, nil
}

// Predict validates the record, runs inference and appends the result to
// the in-memory history. Invalid input is rejected before the model is
// touched.
func (s *PredictionService) Predict(ctx context.Context, rec entities.Record, userID string) (*entities.Prediction, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	rec.Charges = 0

	prediction, err := s.cachedPredict(ctx, rec)
	if err != nil {
		return nil, err
	}

	entry := &entities.HistoryEntry{
		ID:            uuid.NewString(),
		UserID:        userID,
		Record:        rec,
		PredictedCost: prediction.PredictedCost,
		RiskLevel:     prediction.RiskLevel,
		Timestamp:     prediction.CreatedAt,
	}
	if err := s.history.Append(ctx, entry); err != nil {
		log.Warn().Err(err).Msg("failed to append prediction history")
	}

	if s.metrics != nil {
		observability.RecordPrediction(ctx, s.metrics, prediction.ModelType, prediction.PredictedCost)
	}

	return prediction, nil
}

func (s *PredictionService) cachedPredict(ctx context.Context, rec entities.Record) (*entities.Prediction, error) {
	key := predictionCacheKey(rec)

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil {
			var cached entities.Prediction
			if err := json.Unmarshal(raw, &cached); err == nil {
				if s.metrics != nil {
					observability.RecordCacheHit(ctx, s.metrics, "prediction")
				}
				cached.CreatedAt = time.Now().UTC()
				return &cached, nil
			}
		}
		if s.metrics != nil {
			observability.RecordCacheMiss(ctx, s.metrics, "prediction")
		}
	}

	artifact, err := s.Artifact(ctx)
	if err != nil {
		return nil, err
	}

	cost, err := artifact.Predict(rec)
	if err != nil {
		return nil, err
	}

	prediction := &entities.Prediction{
		Record:         rec,
		PredictedCost:  cost,
		MonthlyPremium: math.Round(cost/12*100) / 100,
		RiskLevel:      s.insights.RiskLevel(rec),
		ModelType:      artifact.ModelType,
		CreatedAt:      time.Now().UTC(),
	}

	if s.cache != nil {
		if raw, err := json.Marshal(prediction); err == nil {
			if err := s.cache.Set(ctx, key, raw, predictionCacheTTLSeconds); err != nil {
				log.Warn().Err(err).Msg("failed to cache prediction")
			}
		}
	}

	return prediction, nil
}

func predictionCacheKey(rec entities.Record) string {
	return fmt.Sprintf("prediction:%d:%s:%.2f:%d:%s:%s",
		rec.Age, rec.Sex, rec.BMI, rec.Children, rec.Smoker, rec.Region)
}

// WhatIf predicts a baseline and a modified scenario and reports the
// difference. Neither prediction enters history.
func (s *PredictionService) WhatIf(ctx context.Context, baseline, scenario entities.Record) (*entities.WhatIfResult, error) {
	if err := baseline.Validate(); err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("baseline: %v", err))
	}
	if err := scenario.Validate(); err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("scenario: %v", err))
	}

	basePred, err := s.cachedPredict(ctx, baseline)
	if err != nil {
		return nil, err
	}
	scenarioPred, err := s.cachedPredict(ctx, scenario)
	if err != nil {
		return nil, err
	}

	return &entities.WhatIfResult{
		BaselineCost: basePred.PredictedCost,
		ScenarioCost: scenarioPred.PredictedCost,
		Difference:   math.Round((scenarioPred.PredictedCost-basePred.PredictedCost)*100) / 100,
		Changes:      describeChanges(baseline, scenario),
	}, nil
}

func describeChanges(baseline, scenario entities.Record) []string {
	var changes []string
	if baseline.Age != scenario.Age {
		changes = append(changes, fmt.Sprintf("age: %d -> %d", baseline.Age, scenario.Age))
	}
	if baseline.Sex != scenario.Sex {
		changes = append(changes, fmt.Sprintf("sex: %s -> %s", baseline.Sex, scenario.Sex))
	}
	if baseline.BMI != scenario.BMI {
		changes = append(changes, fmt.Sprintf("bmi: %.1f -> %.1f", baseline.BMI, scenario.BMI))
	}
	if baseline.Children != scenario.Children {
		changes = append(changes, fmt.Sprintf("children: %d -> %d", baseline.Children, scenario.Children))
	}
	if baseline.Smoker != scenario.Smoker {
		changes = append(changes, fmt.Sprintf("smoker: %s -> %s", baseline.Smoker, scenario.Smoker))
	}
	if baseline.Region != scenario.Region {
		changes = append(changes, fmt.Sprintf("region: %s -> %s", baseline.Region, scenario.Region))
	}
	return changes
}

// FactorImpacts measures how single-factor deviations from the reference
// profile move the predicted cost.
func (s *PredictionService) FactorImpacts(ctx context.Context) ([]entities.FactorImpact, error) {
	base, err := s.cachedPredict(ctx, referenceProfile)
	if err != nil {
		return nil, err
	}

	variants := []struct {
		name   string
		modify func(r *entities.Record)
	}{
		{"age_50", func(r *entities.Record) { r.Age = 50 }},
		{"bmi_35", func(r *entities.Record) { r.BMI = 35 }},
		{"smoker", func(r *entities.Record) { r.Smoker = entities.SmokerYes }},
		{"children_2", func(r *entities.Record) { r.Children = 2 }},
		{"region_southeast", func(r *entities.Record) { r.Region = entities.RegionSoutheast }},
	}

	impacts := make([]entities.FactorImpact, 0, len(variants))
	for _, v := range variants {
		rec := referenceProfile
		v.modify(&rec)

		pred, err := s.cachedPredict(ctx, rec)
		if err != nil {
			return nil, err
		}
		impacts = append(impacts, entities.FactorImpact{
			Factor: v.name,
			Impact: math.Round((pred.PredictedCost-base.PredictedCost)*100) / 100,
		})
	}

	return impacts, nil
}

// History returns a user's prediction history, oldest first.
func (s *PredictionService) History(ctx context.Context, userID string) ([]*entities.HistoryEntry, error) {
	return s.history.ListByUser(ctx, userID)
}

// HistoryEntry returns one history entry by ID.
func (s *PredictionService) HistoryEntry(ctx context.Context, id string) (*entities.HistoryEntry, error) {
	return s.history.GetByID(ctx, id)
}

// ClearHistory drops a user's prediction history.
func (s *PredictionService) ClearHistory(ctx context.Context, userID string) error {
	return s.history.Clear(ctx, userID)
}

// ModelInfo describes the loaded artifact, training it first if needed.
func (s *PredictionService) ModelInfo(ctx context.Context) (entities.ModelInfo, error) {
	artifact, err := s.Artifact(ctx)
	if err != nil {
		return entities.ModelInfo{}, err
	}
	return artifact.Info(), nil
}
