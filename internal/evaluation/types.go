package evaluation

import (
	"time"

	"github.com/carecost/predictor/internal/domain/entities"
)

// GoldenScenario is a labeled profile with the cost band the model is
// expected to place it in.
type GoldenScenario struct {
	ID         string          `json:"id"`
	Record     entities.Record `json:"record"`
	MinCost    float64         `json:"min_cost"`
	MaxCost    float64         `json:"max_cost"`
	Difficulty string          `json:"difficulty"` // easy, medium, hard
}

// ScenarioResult holds the evaluation outcome for a single scenario.
type ScenarioResult struct {
	ScenarioID    string
	PredictedCost float64
	InBand        bool
	Latency       time.Duration
}

// Summary holds aggregate outcomes across all scenarios and guardrails.
type Summary struct {
	TotalScenarios   int
	InBand           int
	BandPassRate     float64
	AvgLatency       time.Duration
	GuardrailResults []GuardrailResult
	GuardrailsPassed bool
	ByDifficulty     map[string]*DifficultySummary
}

// DifficultySummary holds band pass rates grouped by scenario difficulty.
type DifficultySummary struct {
	Count  int
	InBand int
}
