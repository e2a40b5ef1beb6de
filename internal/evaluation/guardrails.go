package evaluation

import (
	"fmt"

	"github.com/carecost/predictor/internal/domain/entities"
)

// CostPredictor is the slice of the model the guardrails exercise.
type CostPredictor interface {
	Predict(rec entities.Record) (float64, error)
}

// GuardrailConfig bounds the behavioral checks a fitted model must pass
// before it is considered fit to serve.
type GuardrailConfig struct {
	MinSmokerUplift float64 // predicted smoker cost / non-smoker cost
	MinTestR2       float64
	MaxPrediction   float64 // sanity ceiling for any in-range profile
}

// GuardrailResult is the outcome of one named check.
type GuardrailResult struct {
	Name   string
	Passed bool
	Detail string
}

type Guardrails struct {
	config GuardrailConfig
}

func NewGuardrails(config GuardrailConfig) *Guardrails {
	if config.MinSmokerUplift <= 0 {
		config.MinSmokerUplift = 2.0
	}
	if config.MaxPrediction <= 0 {
		config.MaxPrediction = 200000
	}
	return &Guardrails{config: config}
}

// Check runs every behavioral guardrail against the model.
func (g *Guardrails) Check(model CostPredictor, testR2 float64) []GuardrailResult {
	results := []GuardrailResult{
		g.checkTestScore(testR2),
		g.checkSmokerUplift(model),
		g.checkAgeMonotonic(model),
		g.checkBMIMonotonic(model),
		g.checkNonNegative(model),
	}
	return results
}

// AllPassed reports whether every guardrail in the slice passed.
func AllPassed(results []GuardrailResult) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

func (g *Guardrails) checkTestScore(testR2 float64) GuardrailResult {
	return GuardrailResult{
		Name:   "test_r2",
		Passed: testR2 >= g.config.MinTestR2,
		Detail: fmt.Sprintf("test R2 %.4f, threshold %.4f", testR2, g.config.MinTestR2),
	}
}

func (g *Guardrails) checkSmokerUplift(model CostPredictor) GuardrailResult {
	base := entities.Record{Age: 40, Sex: entities.SexMale, BMI: 28, Children: 1, Smoker: entities.SmokerNo, Region: entities.RegionNortheast}
	smoker := base
	smoker.Smoker = entities.SmokerYes

	baseCost, err1 := model.Predict(base)
	smokerCost, err2 := model.Predict(smoker)
	if err1 != nil || err2 != nil || baseCost <= 0 {
		return GuardrailResult{Name: "smoker_uplift", Passed: false, Detail: "prediction failed"}
	}

	ratio := smokerCost / baseCost
	return GuardrailResult{
		Name:   "smoker_uplift",
		Passed: ratio >= g.config.MinSmokerUplift,
		Detail: fmt.Sprintf("uplift %.2fx, threshold %.2fx", ratio, g.config.MinSmokerUplift),
	}
}

func (g *Guardrails) checkAgeMonotonic(model CostPredictor) GuardrailResult {
	rec := entities.Record{Sex: entities.SexFemale, BMI: 26, Children: 0, Smoker: entities.SmokerNo, Region: entities.RegionNorthwest}

	prev := -1.0
	for _, age := range []int{20, 30, 40, 50, 60} {
		rec.Age = age
		cost, err := model.Predict(rec)
		if err != nil {
			return GuardrailResult{Name: "age_monotonic", Passed: false, Detail: "prediction failed"}
		}
		// Tree ensembles wobble a little; allow a small tolerance.
		if cost < prev*0.95 {
			return GuardrailResult{
				Name:   "age_monotonic",
				Passed: false,
				Detail: fmt.Sprintf("cost dropped from %.2f to %.2f at age %d", prev, cost, age),
			}
		}
		prev = cost
	}
	return GuardrailResult{Name: "age_monotonic", Passed: true, Detail: "cost non-decreasing across ages 20-60"}
}

func (g *Guardrails) checkBMIMonotonic(model CostPredictor) GuardrailResult {
	rec := entities.Record{Age: 35, Sex: entities.SexMale, Children: 0, Smoker: entities.SmokerNo, Region: entities.RegionNortheast}

	prev := -1.0
	for _, bmi := range []float64{20, 25, 30, 35, 40} {
		rec.BMI = bmi
		cost, err := model.Predict(rec)
		if err != nil {
			return GuardrailResult{Name: "bmi_monotonic", Passed: false, Detail: "prediction failed"}
		}
		if cost < prev*0.95 {
			return GuardrailResult{
				Name:   "bmi_monotonic",
				Passed: false,
				Detail: fmt.Sprintf("cost dropped from %.2f to %.2f at bmi %.0f", prev, cost, bmi),
			}
		}
		prev = cost
	}
	return GuardrailResult{Name: "bmi_monotonic", Passed: true, Detail: "cost non-decreasing across BMI 20-40"}
}

func (g *Guardrails) checkNonNegative(model CostPredictor) GuardrailResult {
	corners := []entities.Record{
		{Age: entities.MinAge, Sex: entities.SexFemale, BMI: entities.MinBMI, Children: 0, Smoker: entities.SmokerNo, Region: entities.RegionSouthwest},
		{Age: entities.MaxAge, Sex: entities.SexMale, BMI: entities.MaxBMI, Children: entities.MaxChildren, Smoker: entities.SmokerYes, Region: entities.RegionSoutheast},
	}

	for _, rec := range corners {
		cost, err := model.Predict(rec)
		if err != nil {
			return GuardrailResult{Name: "prediction_bounds", Passed: false, Detail: "prediction failed"}
		}
		if cost < 0 || cost > g.config.MaxPrediction {
			return GuardrailResult{
				Name:   "prediction_bounds",
				Passed: false,
				Detail: fmt.Sprintf("prediction %.2f outside [0, %.0f]", cost, g.config.MaxPrediction),
			}
		}
	}
	return GuardrailResult{Name: "prediction_bounds", Passed: true, Detail: "corner profiles within bounds"}
}
