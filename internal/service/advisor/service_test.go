package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmflow/pkg/clients/anthropic"
)

type clientStub struct {
	err       error
	livestock anthropic.LivestockHealthReport
	plant     anthropic.PlantDiagnosis
	crops     anthropic.CropSuggestions
	forecast  anthropic.SpendingForecastResult
	invoice   anthropic.InvoiceAnalysis
	insights  anthropic.ResourceInsights
}

func (c *clientStub) AnalyzeLivestockHealth(context.Context, string, string) (anthropic.LivestockHealthReport, error) {
	return c.livestock, c.err
}

func (c *clientStub) DiagnosePlantHealth(context.Context, string, string) (anthropic.PlantDiagnosis, error) {
	return c.plant, c.err
}

func (c *clientStub) SuggestCrops(context.Context, string, string, string) (anthropic.CropSuggestions, error) {
	return c.crops, c.err
}

func (c *clientStub) SpendingForecast(context.Context, string, string, float64) (anthropic.SpendingForecastResult, error) {
	return c.forecast, c.err
}

func (c *clientStub) AnalyzeInvoice(context.Context, string) (anthropic.InvoiceAnalysis, error) {
	return c.invoice, c.err
}

func (c *clientStub) ResourceUsageInsights(context.Context, string, string, string) (anthropic.ResourceInsights, error) {
	return c.insights, c.err
}

func TestAnalyzeLivestockHealthPassesThroughResult(t *testing.T) {
	stub := &clientStub{livestock: anthropic.LivestockHealthReport{
		AnimalCount:   3,
		GeneralAdvice: "Deworm before the wet season.",
	}}
	svc := NewService(stub, zap.NewNop())

	report := svc.AnalyzeLivestockHealth(context.Background(), "data:image/jpeg;base64,AQID", "Cow")
	assert.Equal(t, 3, report.AnimalCount)
	assert.Equal(t, "Deworm before the wet season.", report.GeneralAdvice)
}

func TestAnalyzeLivestockHealthFallsBackOnError(t *testing.T) {
	svc := NewService(&clientStub{err: errors.New("model overloaded")}, zap.NewNop())

	report := svc.AnalyzeLivestockHealth(context.Background(), "data:image/jpeg;base64,AQID", "Cow")
	assert.Equal(t, 0, report.AnimalCount)
	assert.NotNil(t, report.HealthAnalysis)
	assert.Empty(t, report.HealthAnalysis)
	assert.Contains(t, report.GeneralAdvice, "could not process the request")
}

func TestDiagnosePlantHealthFallsBackOnError(t *testing.T) {
	svc := NewService(&clientStub{err: errors.New("timeout")}, zap.NewNop())

	diagnosis := svc.DiagnosePlantHealth(context.Background(), "data:image/png;base64,AQID", "")
	assert.False(t, diagnosis.IsPlant)
	assert.Equal(t, "Unknown", diagnosis.PlantType)
	assert.Contains(t, diagnosis.Recommendations, "try again")
}

func TestSuggestCropsFallsBackOnError(t *testing.T) {
	svc := NewService(&clientStub{err: errors.New("timeout")}, zap.NewNop())

	suggestions := svc.SuggestCrops(context.Background(), "data:image/jpeg;base64,AQID", "July", "")
	assert.NotNil(t, suggestions.Suggestions)
	assert.Empty(t, suggestions.Suggestions)
	assert.Contains(t, suggestions.SoilAnalysis, "could not process the request")
}

func TestSpendingForecastPropagatesError(t *testing.T) {
	svc := NewService(&clientStub{err: errors.New("timeout")}, zap.NewNop())

	_, err := svc.SpendingForecast(context.Background(), "high water usage", "harvest wheat", 50000)
	require.Error(t, err)
}

func TestResourceUsageInsightsPropagatesError(t *testing.T) {
	svc := NewService(&clientStub{err: errors.New("timeout")}, zap.NewNop())

	_, err := svc.ResourceUsageInsights(context.Background(), "farm-1", "2024-06-01", "2024-07-01")
	require.Error(t, err)
}
