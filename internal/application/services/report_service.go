package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/carecost/predictor/internal/domain/entities"
	apperrors "github.com/carecost/predictor/pkg/errors"
)

// ReportService renders a cost assessment as a PDF document.
type ReportService struct {
	predictions *PredictionService
	insights    *InsightService
}

// NewReportService creates a report service.
func NewReportService(predictions *PredictionService, insights *InsightService) *ReportService {
	return &ReportService{predictions: predictions, insights: insights}
}

// Generate predicts the cost for the record and renders a full assessment
// report: profile, prediction, risk, coverage comparison, schemes and
// recommendations.
func (s *ReportService) Generate(ctx context.Context, rec entities.Record) ([]byte, error) {
	prediction, err := s.predictions.Predict(ctx, rec, "")
	if err != nil {
		return nil, err
	}

	comparison := s.insights.CompareCoverage(prediction.PredictedCost)
	schemes := s.insights.RecommendSchemes(rec, prediction.PredictedCost)
	recommendations := s.insights.Recommendations(rec, prediction.RiskLevel, comparison)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Medical Insurance Cost Assessment", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s", time.Now().UTC().Format("January 2, 2006 15:04 UTC")), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	sectionTitle(pdf, "Personal Profile")
	keyValue(pdf, "Age", fmt.Sprintf("%d years", rec.Age))
	keyValue(pdf, "Sex", titleCase(rec.Sex))
	keyValue(pdf, "BMI", fmt.Sprintf("%.1f", rec.BMI))
	keyValue(pdf, "Children", fmt.Sprintf("%d", rec.Children))
	keyValue(pdf, "Smoker", titleCase(rec.Smoker))
	keyValue(pdf, "Region", titleCase(rec.Region))
	pdf.Ln(4)

	sectionTitle(pdf, "Cost Prediction")
	keyValue(pdf, "Estimated Annual Cost", fmt.Sprintf("$%.2f", prediction.PredictedCost))
	keyValue(pdf, "Estimated Monthly Premium", fmt.Sprintf("$%.2f", prediction.MonthlyPremium))
	keyValue(pdf, "Risk Level", string(prediction.RiskLevel))
	keyValue(pdf, "Model", prediction.ModelType)
	pdf.Ln(4)

	sectionTitle(pdf, "Government vs Private Coverage")
	keyValue(pdf, "Government Coverage", fmt.Sprintf("$%s", comparison.GovtCoverage.StringFixed(2)))
	keyValue(pdf, "Government Out-of-Pocket", fmt.Sprintf("$%s", comparison.GovtOutOfPocket.StringFixed(2)))
	keyValue(pdf, "Private Base Plan", fmt.Sprintf("$%s", comparison.PrivateBase.StringFixed(2)))
	keyValue(pdf, "Private Premium Plan", fmt.Sprintf("$%s", comparison.PrivatePremium.StringFixed(2)))
	keyValue(pdf, "Recommended Option", titleCase(comparison.Recommendation))
	pdf.Ln(4)

	if len(schemes) > 0 {
		sectionTitle(pdf, "Eligible Healthcare Schemes")
		pdf.SetFont("Helvetica", "", 10)
		for i, scheme := range schemes {
			if i >= 5 {
				break
			}
			pdf.SetFont("Helvetica", "B", 10)
			pdf.MultiCell(0, 5, fmt.Sprintf("%d. %s (%s priority)", i+1, scheme.Name, strings.ToLower(scheme.Priority)), "", "L", false)
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, scheme.Coverage, "", "L", false)
			pdf.Ln(1)
		}
		pdf.Ln(3)
	}

	sectionTitle(pdf, "Recommendations")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range recommendations {
		pdf.MultiCell(0, 5, "- "+line, "", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.MultiCell(0, 4, "This report is an estimate based on a statistical model and does not constitute a quote or medical advice.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.NewInternalError("failed to render report", err)
	}
	return buf.Bytes(), nil
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetFillColor(235, 240, 250)
	pdf.CellFormat(0, 8, title, "", 1, "L", true, 0, "")
	pdf.Ln(2)
}

func keyValue(pdf *gofpdf.Fpdf, key, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(60, 6, key, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
