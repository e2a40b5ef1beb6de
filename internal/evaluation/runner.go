package evaluation

import (
	"time"
)

// Runner evaluates a fitted model against golden scenarios and guardrails.
type Runner struct {
	model      CostPredictor
	guardrails *Guardrails
}

func NewRunner(model CostPredictor, guardrails *Guardrails) *Runner {
	return &Runner{model: model, guardrails: guardrails}
}

// Run predicts every scenario, checks its cost band and applies the
// behavioral guardrails.
func (r *Runner) Run(scenarios []GoldenScenario, testR2 float64) (*Summary, error) {
	summary := &Summary{
		TotalScenarios: len(scenarios),
		ByDifficulty:   make(map[string]*DifficultySummary),
	}

	for _, sc := range scenarios {
		start := time.Now()
		cost, err := r.model.Predict(sc.Record)
		latency := time.Since(start)
		if err != nil {
			continue
		}

		result := ScenarioResult{
			ScenarioID:    sc.ID,
			PredictedCost: cost,
			InBand:        cost >= sc.MinCost && cost <= sc.MaxCost,
			Latency:       latency,
		}
		r.updateSummary(summary, sc, result)
	}

	if summary.TotalScenarios > 0 {
		summary.BandPassRate = float64(summary.InBand) / float64(summary.TotalScenarios)
		summary.AvgLatency /= time.Duration(summary.TotalScenarios)
	}

	summary.GuardrailResults = r.guardrails.Check(r.model, testR2)
	summary.GuardrailsPassed = AllPassed(summary.GuardrailResults)

	return summary, nil
}

func (r *Runner) updateSummary(s *Summary, sc GoldenScenario, res ScenarioResult) {
	if res.InBand {
		s.InBand++
	}
	s.AvgLatency += res.Latency

	if _, ok := s.ByDifficulty[sc.Difficulty]; !ok {
		s.ByDifficulty[sc.Difficulty] = &DifficultySummary{}
	}
	ds := s.ByDifficulty[sc.Difficulty]
	ds.Count++
	if res.InBand {
		ds.InBand++
	}
}
