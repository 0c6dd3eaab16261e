// Package advisor fronts the generative-model client behind the /ai routes.
// Image-based flows degrade gracefully: an inference failure is logged and
// mapped to a neutral fallback result instead of an error, so the dashboard
// always has something to render.
package advisor

import (
	"context"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmflow/pkg/clients/anthropic"
)

// Service wraps the inference client with fallback handling.
type Service struct {
	client anthropic.Client
	logger *zap.Logger
}

// NewService wires an advisor service. client must not be nil; callers
// disable the /ai routes entirely when no inference key is configured.
func NewService(client anthropic.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, logger: logger}
}

// AnalyzeLivestockHealth analyzes one camera frame of livestock.
func (s *Service) AnalyzeLivestockHealth(ctx context.Context, imageDataURI, animalType string) anthropic.LivestockHealthReport {
	report, err := s.client.AnalyzeLivestockHealth(ctx, imageDataURI, animalType)
	if err != nil {
		s.logger.Warn("livestock health analysis failed", zap.Error(err))
		return anthropic.LivestockHealthReport{
			HealthAnalysis: []anthropic.HealthObservation{},
			GeneralAdvice:  "The AI model could not process the request. Please try again with a clearer image.",
		}
	}
	return report
}

// DiagnosePlantHealth diagnoses a plant from a photo.
func (s *Service) DiagnosePlantHealth(ctx context.Context, photoDataURI, description string) anthropic.PlantDiagnosis {
	diagnosis, err := s.client.DiagnosePlantHealth(ctx, photoDataURI, description)
	if err != nil {
		s.logger.Warn("plant diagnosis failed", zap.Error(err))
		return anthropic.PlantDiagnosis{
			PlantType:       "Unknown",
			Diagnosis:       "The AI model could not process the request.",
			Recommendations: "Please try again with a different image or description. If the problem persists, the model may be temporarily unavailable.",
		}
	}
	return diagnosis
}

// SuggestCrops suggests crops for the photographed soil and season.
func (s *Service) SuggestCrops(ctx context.Context, soilPhotoDataURI, currentMonth, waterNotes string) anthropic.CropSuggestions {
	suggestions, err := s.client.SuggestCrops(ctx, soilPhotoDataURI, currentMonth, waterNotes)
	if err != nil {
		s.logger.Warn("crop suggestion failed", zap.Error(err))
		return anthropic.CropSuggestions{
			Suggestions:  []anthropic.CropSuggestion{},
			SoilAnalysis: "The AI model could not process the request. Please try again with a different image or description.",
		}
	}
	return suggestions
}

// AnalyzeInvoice extracts structured expense data from an invoice image.
func (s *Service) AnalyzeInvoice(ctx context.Context, invoiceImageURI string) anthropic.InvoiceAnalysis {
	analysis, err := s.client.AnalyzeInvoice(ctx, invoiceImageURI)
	if err != nil {
		s.logger.Warn("invoice analysis failed", zap.Error(err))
		return anthropic.InvoiceAnalysis{
			Category: "Other",
			Items:    []anthropic.InvoiceItem{},
			Summary:  "The AI model could not process the request. Please try again with a clearer image.",
		}
	}
	return analysis
}

// SpendingForecast forecasts spending against a budget. Text-only flow;
// failures propagate to the handler.
func (s *Service) SpendingForecast(ctx context.Context, resourceUsage, plannedActivities string, budget float64) (anthropic.SpendingForecastResult, error) {
	return s.client.SpendingForecast(ctx, resourceUsage, plannedActivities, budget)
}

// ResourceUsageInsights reports on resource consumption over a period.
// Text-only flow; failures propagate to the handler.
func (s *Service) ResourceUsageInsights(ctx context.Context, farmID, startDate, endDate string) (anthropic.ResourceInsights, error) {
	return s.client.ResourceUsageInsights(ctx, farmID, startDate, endDate)
}
