package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadGoldenScenarios reads and parses a golden scenario set from a JSON file.
func LoadGoldenScenarios(path string) ([]GoldenScenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read golden scenarios file: %w", err)
	}

	var scenarios []GoldenScenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("failed to parse golden scenarios: %w", err)
	}

	return scenarios, nil
}

var validDifficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

// ValidateGoldenScenarios checks that all scenarios have required fields and
// sane cost bands.
func ValidateGoldenScenarios(scenarios []GoldenScenario) error {
	seen := make(map[string]struct{}, len(scenarios))

	for i, s := range scenarios {
		if s.ID == "" {
			return fmt.Errorf("scenario at index %d: missing id", i)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("scenario at index %d: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = struct{}{}

		if err := s.Record.Validate(); err != nil {
			return fmt.Errorf("scenario %q: %w", s.ID, err)
		}
		if s.MinCost < 0 || s.MaxCost <= s.MinCost {
			return fmt.Errorf("scenario %q: invalid cost band [%.2f, %.2f]", s.ID, s.MinCost, s.MaxCost)
		}
		if !validDifficulties[s.Difficulty] {
			return fmt.Errorf("scenario %q: invalid difficulty %q (must be easy/medium/hard)", s.ID, s.Difficulty)
		}
	}

	return nil
}
