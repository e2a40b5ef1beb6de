package ml

import (
	"fmt"

	"github.com/carecost/predictor/internal/domain/entities"
	apperrors "github.com/carecost/predictor/pkg/errors"
)

// Encoder maps categorical record fields to stable integer codes. The
// category tables are declared up front rather than fit from data, so the
// mapping is identical for training and inference and an unseen category
// is impossible for any record that passes validation.
type Encoder struct {
	SexCodes    map[string]float64
	SmokerCodes map[string]float64
	RegionCodes map[string]float64
}

// NewEncoder returns the canonical encoder.
func NewEncoder() *Encoder {
	return &Encoder{
		SexCodes: map[string]float64{
			entities.SexFemale: 0,
			entities.SexMale:   1,
		},
		SmokerCodes: map[string]float64{
			entities.SmokerNo:  0,
			entities.SmokerYes: 1,
		},
		RegionCodes: map[string]float64{
			entities.RegionNortheast: 0,
			entities.RegionNorthwest: 1,
			entities.RegionSoutheast: 2,
			entities.RegionSouthwest: 3,
		},
	}
}

// FeatureNames returns the feature vector layout, in order.
func (e *Encoder) FeatureNames() []string {
	return []string{"age", "sex", "bmi", "children", "smoker", "region"}
}

// Transform encodes one record into a feature vector.
func (e *Encoder) Transform(rec entities.Record) ([]float64, error) {
	sex, ok := e.SexCodes[rec.Sex]
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown sex category %q", rec.Sex))
	}
	smoker, ok := e.SmokerCodes[rec.Smoker]
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown smoker category %q", rec.Smoker))
	}
	region, ok := e.RegionCodes[rec.Region]
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown region category %q", rec.Region))
	}

	return []float64{
		float64(rec.Age),
		sex,
		rec.BMI,
		float64(rec.Children),
		smoker,
		region,
	}, nil
}

// TransformAll encodes a full dataset into a feature matrix and target
// vector.
func (e *Encoder) TransformAll(records []entities.Record) ([][]float64, []float64, error) {
	features := make([][]float64, 0, len(records))
	targets := make([]float64, 0, len(records))
	for i, rec := range records {
		row, err := e.Transform(rec)
		if err != nil {
			return nil, nil, fmt.Errorf("record %d: %w", i, err)
		}
		features = append(features, row)
		targets = append(targets, rec.Charges)
	}
	return features, targets, nil
}
