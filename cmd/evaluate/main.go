package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/carecost/predictor/internal/adapters/storage"
	"github.com/carecost/predictor/internal/evaluation"
	"github.com/carecost/predictor/internal/infrastructure/observability"
	"github.com/carecost/predictor/pkg/config"
)

// Evaluates a trained artifact against golden scenarios and behavioral
// guardrails. Exits non-zero when a guardrail fails.
func main() {
	scenarioPath := flag.String("scenarios", "config/golden_scenarios.json", "path to golden scenarios")
	minTestR2 := flag.Float64("min-test-r2", 0.75, "minimum held-out R2")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("carecost-evaluate", cfg.Env)

	artifact, err := storage.NewModelStore(cfg.Model.ArtifactPath).Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load artifact, run the train command first")
	}

	scenarios, err := evaluation.LoadGoldenScenarios(*scenarioPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load golden scenarios")
	}
	if err := evaluation.ValidateGoldenScenarios(scenarios); err != nil {
		log.Fatal().Err(err).Msg("invalid golden scenarios")
	}

	guardrails := evaluation.NewGuardrails(evaluation.GuardrailConfig{
		MinTestR2: *minTestR2,
	})

	runner := evaluation.NewRunner(artifact, guardrails)
	summary, err := runner.Run(scenarios, artifact.TestScore)
	if err != nil {
		log.Fatal().Err(err).Msg("evaluation failed")
	}

	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))

	if !summary.GuardrailsPassed {
		os.Exit(1)
	}
}
