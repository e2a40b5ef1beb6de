package entities

import (
	"fmt"

	apperrors "github.com/carecost/predictor/pkg/errors"
)

// Field bounds for a valid insurance record.
const (
	MinAge      = 18
	MaxAge      = 64
	MinBMI      = 15.0
	MaxBMI      = 55.0
	MinChildren = 0
	MaxChildren = 5
)

// Canonical category values. These are fixed up front so the encoder never
// sees a category it did not train on.
const (
	SexFemale = "female"
	SexMale   = "male"

	SmokerYes = "yes"
	SmokerNo  = "no"

	RegionNortheast = "northeast"
	RegionNorthwest = "northwest"
	RegionSoutheast = "southeast"
	RegionSouthwest = "southwest"
)

// Sexes returns the valid sex categories.
func Sexes() []string {
	return []string{SexFemale, SexMale}
}

// SmokerValues returns the valid smoker categories.
func SmokerValues() []string {
	return []string{SmokerNo, SmokerYes}
}

// Regions returns the valid region categories.
func Regions() []string {
	return []string{RegionNortheast, RegionNorthwest, RegionSoutheast, RegionSouthwest}
}

// Record represents one observation: a feature vector plus an optional
// target charge (present on generated and training records only).
type Record struct {
	Age      int     `json:"age" csv:"age"`
	Sex      string  `json:"sex" csv:"sex"`
	BMI      float64 `json:"bmi" csv:"bmi"`
	Children int     `json:"children" csv:"children"`
	Smoker   string  `json:"smoker" csv:"smoker"`
	Region   string  `json:"region" csv:"region"`
	Charges  float64 `json:"charges,omitempty" csv:"charges"`
}

// Validate checks that every field is inside its allowed range and that all
// categorical fields carry a known category. Boundary values (age 18/64,
// bmi exactly 30) are valid.
func (r *Record) Validate() error {
	if r.Age < MinAge || r.Age > MaxAge {
		return apperrors.NewValidationError(fmt.Sprintf("age must be between %d and %d, got %d", MinAge, MaxAge, r.Age))
	}
	if r.BMI < MinBMI || r.BMI > MaxBMI {
		return apperrors.NewValidationError(fmt.Sprintf("bmi must be between %.1f and %.1f, got %.2f", MinBMI, MaxBMI, r.BMI))
	}
	if r.Children < MinChildren || r.Children > MaxChildren {
		return apperrors.NewValidationError(fmt.Sprintf("children must be between %d and %d, got %d", MinChildren, MaxChildren, r.Children))
	}
	if !contains(Sexes(), r.Sex) {
		return apperrors.NewValidationError(fmt.Sprintf("unknown sex category %q", r.Sex))
	}
	if !contains(SmokerValues(), r.Smoker) {
		return apperrors.NewValidationError(fmt.Sprintf("unknown smoker category %q", r.Smoker))
	}
	if !contains(Regions(), r.Region) {
		return apperrors.NewValidationError(fmt.Sprintf("unknown region category %q", r.Region))
	}
	return nil
}

// IsSmoker reports whether the record is flagged as a smoker.
func (r *Record) IsSmoker() bool {
	return r.Smoker == SmokerYes
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
