package handlers

import (
	"net/http"

	"github.com/carecost/predictor/internal/api/middleware"
	"github.com/carecost/predictor/internal/application/services"
	"github.com/carecost/predictor/internal/domain/entities"
)

// PredictionHandler handles cost prediction requests
type PredictionHandler struct {
	predictions *services.PredictionService
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(predictions *services.PredictionService) *PredictionHandler {
	return &PredictionHandler{predictions: predictions}
}

// Predict handles POST /api/predictions
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var rec entities.Record
	if err := decodeJSON(r, &rec); err != nil {
		respondWithAppError(w, err)
		return
	}

	userID := middleware.UserIDFromContext(r.Context())

	prediction, err := h.predictions.Predict(r.Context(), rec, userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, prediction)
}

type whatIfRequest struct {
	Baseline entities.Record `json:"baseline"`
	Scenario entities.Record `json:"scenario"`
}

// WhatIf handles POST /api/predictions/whatif
func (h *PredictionHandler) WhatIf(w http.ResponseWriter, r *http.Request) {
	var req whatIfRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	result, err := h.predictions.WhatIf(r.Context(), req.Baseline, req.Scenario)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// Factors handles GET /api/predictions/factors
func (h *PredictionHandler) Factors(w http.ResponseWriter, r *http.Request) {
	impacts, err := h.predictions.FactorImpacts(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"factors": impacts,
		"count":   len(impacts),
	})
}

// History handles GET /api/predictions/history
func (h *PredictionHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	entries, err := h.predictions.History(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"history": entries,
		"count":   len(entries),
	})
}

// ClearHistory handles DELETE /api/predictions/history
func (h *PredictionHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	if err := h.predictions.ClearHistory(r.Context(), userID); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ModelInfo handles GET /api/model
func (h *PredictionHandler) ModelInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.predictions.ModelInfo(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, info)
}
