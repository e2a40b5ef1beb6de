package entities

import (
	"time"
)

// Prediction is the result of a single cost estimate.
type Prediction struct {
	Record         Record    `json:"record"`
	PredictedCost  float64   `json:"predicted_cost"`
	MonthlyPremium float64   `json:"monthly_premium"`
	RiskLevel      RiskTier  `json:"risk_level"`
	ModelType      string    `json:"model_type"`
	CreatedAt      time.Time `json:"created_at"`
}

// HistoryEntry is one append-only prediction history record. History lives
// in process memory for the lifetime of a session and is never persisted.
type HistoryEntry struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id,omitempty"`
	Record        Record    `json:"record"`
	PredictedCost float64   `json:"predicted_cost"`
	RiskLevel     RiskTier  `json:"risk_level"`
	Timestamp     time.Time `json:"timestamp"`
}

// WhatIfResult compares a baseline record against a modified scenario.
type WhatIfResult struct {
	BaselineCost float64  `json:"baseline_cost"`
	ScenarioCost float64  `json:"scenario_cost"`
	Difference   float64  `json:"difference"`
	Changes      []string `json:"changes"`
}

// FactorImpact quantifies how much one input factor moves the predicted
// cost away from a fixed reference profile.
type FactorImpact struct {
	Factor string  `json:"factor"`
	Impact float64 `json:"impact"`
}

// ModelInfo describes the currently loaded model artifact.
type ModelInfo struct {
	ModelType    string    `json:"model_type"`
	TrainScore   float64   `json:"train_score"`
	TestScore    float64   `json:"test_score"`
	FeatureNames []string  `json:"feature_names"`
	SampleCount  int       `json:"sample_count"`
	TrainedAt    time.Time `json:"trained_at"`
}
