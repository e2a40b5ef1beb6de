package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/carecost/predictor/internal/adapters/storage"
	"github.com/carecost/predictor/internal/domain/entities"
	"github.com/carecost/predictor/internal/infrastructure/observability"
	"github.com/carecost/predictor/internal/ml"
	"github.com/carecost/predictor/pkg/config"
	apperrors "github.com/carecost/predictor/pkg/errors"
)

// Trains a model from the configured dataset (generating it when missing)
// and writes the artifact, replacing any existing one.
func main() {
	force := flag.Bool("force", false, "retrain even if an artifact already exists")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("carecost-train", cfg.Env)

	modelStore := storage.NewModelStore(cfg.Model.ArtifactPath)
	datasetStore := storage.NewDatasetStore(cfg.Model.DatasetPath)

	if modelStore.Exists() && !*force {
		log.Info().Str("path", modelStore.Path()).Msg("artifact already exists, use -force to retrain")
		return
	}

	records, err := loadOrGenerate(datasetStore, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare dataset")
	}

	trainer := ml.NewTrainer(ml.TrainerConfig{
		Seed: cfg.Model.Seed,
		Forest: ml.ForestConfig{
			NumTrees: cfg.Model.NumTrees,
			MaxDepth: cfg.Model.MaxDepth,
			Seed:     cfg.Model.Seed,
		},
		Boost: ml.BoostConfig{
			Rounds:       cfg.Model.BoostRounds,
			LearningRate: cfg.Model.LearningRate,
			Seed:         cfg.Model.Seed,
		},
		BoostingEnabled: cfg.Model.BoostingOn,
	})

	artifact, err := trainer.Train(records)
	if err != nil {
		log.Fatal().Err(err).Msg("training failed")
	}

	if err := modelStore.Save(artifact); err != nil {
		log.Fatal().Err(err).Msg("failed to save artifact")
	}

	log.Info().
		Str("model_type", artifact.ModelType).
		Float64("test_score", artifact.TestScore).
		Str("path", modelStore.Path()).
		Msg("artifact written")
}

func loadOrGenerate(store *storage.DatasetStore, cfg *config.Config) ([]entities.Record, error) {
	records, err := store.Load()
	if err == nil {
		log.Info().Int("records", len(records)).Msg("dataset loaded")
		return records, nil
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, err
	}

	log.Info().Int("samples", cfg.Model.SampleCount).Msg("generating synthetic dataset")
	records = ml.NewGenerator(cfg.Model.Seed).Generate(cfg.Model.SampleCount)
	if err := store.Save(records); err != nil {
		return nil, err
	}
	return records, nil
}
