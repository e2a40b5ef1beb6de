package handlers

import (
	"net/http"

	"github.com/carecost/predictor/internal/application/services"
	"github.com/carecost/predictor/internal/domain/entities"
)

// InsightHandler handles derived metric requests
type InsightHandler struct {
	predictions *services.PredictionService
	insights    *services.InsightService
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(predictions *services.PredictionService, insights *services.InsightService) *InsightHandler {
	return &InsightHandler{predictions: predictions, insights: insights}
}

// Comparison handles POST /api/insights/comparison
func (h *InsightHandler) Comparison(w http.ResponseWriter, r *http.Request) {
	var rec entities.Record
	if err := decodeJSON(r, &rec); err != nil {
		respondWithAppError(w, err)
		return
	}

	prediction, err := h.predictions.Predict(r.Context(), rec, "")
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	comparison := h.insights.CompareCoverage(prediction.PredictedCost)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"predicted_cost": prediction.PredictedCost,
		"comparison":     comparison,
	})
}

type accidentRequest struct {
	Record   entities.Record         `json:"record"`
	Accident services.AccidentParams `json:"accident"`
}

// Accident handles POST /api/insights/accident
func (h *InsightHandler) Accident(w http.ResponseWriter, r *http.Request) {
	var req accidentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	if err := req.Record.Validate(); err != nil {
		respondWithAppError(w, err)
		return
	}

	estimate, err := h.insights.AccidentCost(req.Record, req.Accident)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, estimate)
}

// Schemes handles POST /api/insights/schemes
func (h *InsightHandler) Schemes(w http.ResponseWriter, r *http.Request) {
	var rec entities.Record
	if err := decodeJSON(r, &rec); err != nil {
		respondWithAppError(w, err)
		return
	}

	prediction, err := h.predictions.Predict(r.Context(), rec, "")
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	schemes := h.insights.RecommendSchemes(rec, prediction.PredictedCost)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"predicted_cost": prediction.PredictedCost,
		"schemes":        schemes,
		"count":          len(schemes),
		"primary":        h.insights.PrimaryScheme(rec, prediction.PredictedCost),
	})
}
