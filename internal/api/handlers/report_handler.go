package handlers

import (
	"net/http"
	"time"

	"github.com/carecost/predictor/internal/application/services"
	"github.com/carecost/predictor/internal/domain/entities"
)

// ReportHandler handles PDF report requests
type ReportHandler struct {
	reports *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Generate handles POST /api/reports
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var rec entities.Record
	if err := decodeJSON(r, &rec); err != nil {
		respondWithAppError(w, err)
		return
	}

	pdf, err := h.reports.Generate(r.Context(), rec)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	filename := "insurance-assessment-" + time.Now().UTC().Format("20060102-150405") + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		return
	}
}
