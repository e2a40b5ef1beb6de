package evaluation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carecost/predictor/internal/domain/entities"
)

func writeScenarios(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadGoldenScenarios(t *testing.T) {
	path := writeScenarios(t, `[
		{"id": "s1", "record": {"age": 30, "sex": "male", "bmi": 25, "children": 0, "smoker": "no", "region": "northeast"}, "min_cost": 8000, "max_cost": 18000, "difficulty": "easy"}
	]`)

	scenarios, err := LoadGoldenScenarios(path)
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Equal(t, "s1", scenarios[0].ID)
	assert.Equal(t, 30, scenarios[0].Record.Age)

	assert.NoError(t, ValidateGoldenScenarios(scenarios))
}

func TestLoadGoldenScenarios_MissingFile(t *testing.T) {
	_, err := LoadGoldenScenarios(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadGoldenScenarios_BadJSON(t *testing.T) {
	path := writeScenarios(t, `{not json`)
	_, err := LoadGoldenScenarios(path)
	assert.Error(t, err)
}

func TestValidateGoldenScenarios(t *testing.T) {
	valid := GoldenScenario{
		ID:         "s1",
		Record:     entities.Record{Age: 30, Sex: entities.SexMale, BMI: 25, Smoker: entities.SmokerNo, Region: entities.RegionNortheast},
		MinCost:    1000,
		MaxCost:    2000,
		Difficulty: "easy",
	}

	tests := []struct {
		name   string
		mutate func(*GoldenScenario)
	}{
		{"missing id", func(s *GoldenScenario) { s.ID = "" }},
		{"invalid record", func(s *GoldenScenario) { s.Record.Age = 5 }},
		{"inverted band", func(s *GoldenScenario) { s.MinCost, s.MaxCost = 2000, 1000 }},
		{"negative min", func(s *GoldenScenario) { s.MinCost = -1 }},
		{"bad difficulty", func(s *GoldenScenario) { s.Difficulty = "impossible" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := valid
			tt.mutate(&sc)
			assert.Error(t, ValidateGoldenScenarios([]GoldenScenario{sc}))
		})
	}

	t.Run("duplicate id", func(t *testing.T) {
		assert.Error(t, ValidateGoldenScenarios([]GoldenScenario{valid, valid}))
	})

	t.Run("valid set", func(t *testing.T) {
		other := valid
		other.ID = "s2"
		assert.NoError(t, ValidateGoldenScenarios([]GoldenScenario{valid, other}))
	})
}
