package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
	model      = "claude-3-haiku-20240307"
	maxTokens  = 1024
)

// Client defines the inference operations the advisor flows depend on.
type Client interface {
	AnalyzeLivestockHealth(ctx context.Context, imageDataURI, animalType string) (LivestockHealthReport, error)
	DiagnosePlantHealth(ctx context.Context, photoDataURI, description string) (PlantDiagnosis, error)
	SuggestCrops(ctx context.Context, soilPhotoDataURI, currentMonth, waterNotes string) (CropSuggestions, error)
	SpendingForecast(ctx context.Context, resourceUsage, plannedActivities string, budget float64) (SpendingForecastResult, error)
	AnalyzeInvoice(ctx context.Context, invoiceImageURI string) (InvoiceAnalysis, error)
	ResourceUsageInsights(ctx context.Context, farmID, startDate, endDate string) (ResourceInsights, error)
}

// HealthObservation is one finding about an animal or the group.
type HealthObservation struct {
	Observation    string `json:"observation"`
	Recommendation string `json:"recommendation"`
	Urgency        string `json:"urgency"`
}

// LivestockHealthReport is the structured result of a camera-frame analysis.
type LivestockHealthReport struct {
	AnimalCount       int                 `json:"animalCount"`
	HealthAnalysis    []HealthObservation `json:"healthAnalysis"`
	GeneralAdvice     string              `json:"generalAdvice"`
	VisualDescription string              `json:"visualDescription,omitempty"`
	SuggestedID       string              `json:"suggestedId,omitempty"`
}

// PlantDiagnosis is the structured result of a plant photo diagnosis.
type PlantDiagnosis struct {
	IsPlant         bool   `json:"isPlant"`
	PlantType       string `json:"plantType"`
	IsHealthy       bool   `json:"isHealthy"`
	Diagnosis       string `json:"diagnosis"`
	Recommendations string `json:"recommendations"`
}

// CropSuggestion is one recommended crop for the analyzed soil.
type CropSuggestion struct {
	Name                string `json:"name"`
	Type                string `json:"type"`
	Reasoning           string `json:"reasoning"`
	EstimatedGrowthDays int    `json:"estimatedGrowthDays"`
	WateringNeeds       string `json:"wateringNeeds"`
}

// CropSuggestions pairs the suggestions with the soil analysis behind them.
type CropSuggestions struct {
	Suggestions  []CropSuggestion `json:"suggestions"`
	SoilAnalysis string           `json:"soilAnalysis"`
}

// SpendingForecastResult is the structured financial forecast.
type SpendingForecastResult struct {
	ForecastedSpending float64 `json:"forecastedSpending"`
	IsWithinBudget     bool    `json:"isWithinBudget"`
	Recommendations    string  `json:"recommendations"`
}

// InvoiceItem is one extracted invoice line.
type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// InvoiceAnalysis is the structured extraction from an invoice image.
type InvoiceAnalysis struct {
	Vendor      string        `json:"vendor,omitempty"`
	Date        string        `json:"date,omitempty"`
	TotalAmount float64       `json:"totalAmount"`
	Category    string        `json:"category"`
	Items       []InvoiceItem `json:"items"`
	Summary     string        `json:"summary"`
}

// ResourceInsights summarizes resource management over a period.
type ResourceInsights struct {
	Insights          string `json:"insights"`
	OverallAssessment string `json:"overallAssessment"`
}

type anthropicClient struct {
	httpClient *resty.Client
}

// NewClient creates a configured Anthropic client.
func NewClient(apiKey string) Client {
	client := resty.New().
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(30 * time.Second)

	return &anthropicClient{httpClient: client}
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (c *anthropicClient) AnalyzeLivestockHealth(ctx context.Context, imageDataURI, animalType string) (LivestockHealthReport, error) {
	system := fmt.Sprintf(`You are an expert veterinarian and livestock management AI analyzing a camera-feed image of %s animals.

Tasks:
1. Count the animals visible in the image ("animalCount").
2. Examine them for signs of injury, disease or unusual behavior (limping, isolation, lethargy, physical abnormalities). For each finding add an entry to "healthAnalysis" with "observation", an actionable "recommendation" and an "urgency" of "High", "Medium" or "Low".
3. Provide proactive "generalAdvice" for the herd or flock: medicine, supplements, vaccinations, deworming or mating readiness given the animal type and seasonal risks.
4. If one animal is clearly in the foreground, add a one-sentence "visualDescription" covering color, markings and apparent breed.
5. Derive a "suggestedId": a 3-letter abbreviation of the animal type, a 3-letter abbreviation of its main characteristics and a number, e.g. COW-BNW-01.

Respond with ONLY a JSON object with keys: animalCount, healthAnalysis, generalAdvice, visualDescription, suggestedId.`, animalType)

	blocks, err := withImage(imageDataURI, "Image to analyze:")
	if err != nil {
		return LivestockHealthReport{}, err
	}

	var out LivestockHealthReport
	if err := c.completeJSON(ctx, system, blocks, &out); err != nil {
		return LivestockHealthReport{}, err
	}
	return out, nil
}

func (c *anthropicClient) DiagnosePlantHealth(ctx context.Context, photoDataURI, description string) (PlantDiagnosis, error) {
	system := `You are an expert botanist and plant pathologist diagnosing a plant from a photo and an optional description.

Identify the plant, determine whether it is healthy, and give a detailed diagnosis naming any disease, pest or nutrient deficiency. Then provide actionable "recommendations" covering watering advice, soil adjustments and pest or disease control.

Respond with ONLY a JSON object with keys: isPlant (boolean), plantType, isHealthy (boolean), diagnosis, recommendations.`

	prompt := "Photo to analyze:"
	if description != "" {
		prompt = fmt.Sprintf("Description: %s\nPhoto to analyze:", description)
	}
	blocks, err := withImage(photoDataURI, prompt)
	if err != nil {
		return PlantDiagnosis{}, err
	}

	var out PlantDiagnosis
	if err := c.completeJSON(ctx, system, blocks, &out); err != nil {
		return PlantDiagnosis{}, err
	}
	return out, nil
}

func (c *anthropicClient) SuggestCrops(ctx context.Context, soilPhotoDataURI, currentMonth, waterNotes string) (CropSuggestions, error) {
	system := `You are an expert agronomist specializing in Indian agriculture. Analyze the soil image and the stated planting month to suggest suitable crops.

First give a brief "soilAnalysis" of the likely soil type (sandy, clay, loam) and quality. Then, considering the Indian cropping seasons (Kharif, Rabi, Zaid) and water availability, list up to three "suggestions", each with "name", "type" (Vegetable, Paddy, Pulse, Fruit or Other), "reasoning", "estimatedGrowthDays" (integer) and "wateringNeeds".

Respond with ONLY a JSON object with keys: suggestions, soilAnalysis.`

	prompt := fmt.Sprintf("Planting month in India: %s", currentMonth)
	if waterNotes != "" {
		prompt += fmt.Sprintf("\nWater availability: %s", waterNotes)
	}
	blocks, err := withImage(soilPhotoDataURI, prompt+"\nSoil photo:")
	if err != nil {
		return CropSuggestions{}, err
	}

	var out CropSuggestions
	if err := c.completeJSON(ctx, system, blocks, &out); err != nil {
		return CropSuggestions{}, err
	}
	return out, nil
}

func (c *anthropicClient) SpendingForecast(ctx context.Context, resourceUsage, plannedActivities string, budget float64) (SpendingForecastResult, error) {
	system := `You are an expert farm financial advisor. From the current resource usage, the planned activities and the allotted budget, forecast spending for the coming period and recommend adjustments.

Respond with ONLY a JSON object with keys: forecastedSpending (number), isWithinBudget (boolean), recommendations.`

	blocks := []contentBlock{{
		Type: "text",
		Text: fmt.Sprintf("Current resource usage: %s\nPlanned activities: %s\nBudget: %.2f", resourceUsage, plannedActivities, budget),
	}}

	var out SpendingForecastResult
	if err := c.completeJSON(ctx, system, blocks, &out); err != nil {
		return SpendingForecastResult{}, err
	}
	return out, nil
}

func (c *anthropicClient) AnalyzeInvoice(ctx context.Context, invoiceImageURI string) (InvoiceAnalysis, error) {
	system := `You are an expert financial assistant with OCR capabilities for agricultural businesses. Extract from the invoice image: the "vendor" name, the transaction "date" (YYYY-MM-DD), every line item ("items", each with description, quantity, unitPrice, total), the final "totalAmount", the most likely expense "category" (Seeds, Fertilizers, Feeds, Labor, Machinery, Utilities, Livestock Purchase or Other), and a one-sentence "summary".

Respond with ONLY a JSON object with keys: vendor, date, totalAmount, category, items, summary.`

	blocks, err := withImage(invoiceImageURI, "Invoice to analyze:")
	if err != nil {
		return InvoiceAnalysis{}, err
	}

	var out InvoiceAnalysis
	if err := c.completeJSON(ctx, system, blocks, &out); err != nil {
		return InvoiceAnalysis{}, err
	}
	return out, nil
}

func (c *anthropicClient) ResourceUsageInsights(ctx context.Context, farmID, startDate, endDate string) (ResourceInsights, error) {
	system := `You are an expert in agricultural resource management. Analyze historical fertilizer and water consumption for the farm and period given, and provide optimization insights.

Respond with ONLY a JSON object with keys: insights, overallAssessment.`

	blocks := []contentBlock{{
		Type: "text",
		Text: fmt.Sprintf("Farm ID: %s\nStart date: %s\nEnd date: %s", farmID, startDate, endDate),
	}}

	var out ResourceInsights
	if err := c.completeJSON(ctx, system, blocks, &out); err != nil {
		return ResourceInsights{}, err
	}
	return out, nil
}

// completeJSON sends one user turn plus a prefilled "{" assistant turn to
// force a JSON object response, then decodes it into out.
func (c *anthropicClient) completeJSON(ctx context.Context, system string, blocks []contentBlock, out any) error {
	reqBody := messageRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    system,
		Messages: []message{
			{Role: "user", Content: blocks},
			{Role: "assistant", Content: "{"},
		},
	}

	var respBody messageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(apiURL)

	if err != nil {
		return fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("anthropic api error: %s", resp.String())
	}
	if len(respBody.Content) == 0 {
		return fmt.Errorf("empty response from ai")
	}

	// Reconstruct the full JSON since we prefilled the opening brace.
	responseText := strings.TrimSpace("{" + respBody.Content[0].Text)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	if err := json.Unmarshal([]byte(responseText), out); err != nil {
		return fmt.Errorf("failed to unmarshal ai response: %w. Response was: %s", err, responseText)
	}
	return nil
}

// withImage turns a data URI ("data:image/jpeg;base64,<data>") into an image
// content block preceded by a text block.
func withImage(dataURI, prompt string) ([]contentBlock, error) {
	mediaType, data, err := parseDataURI(dataURI)
	if err != nil {
		return nil, err
	}
	return []contentBlock{
		{Type: "text", Text: prompt},
		{Type: "image", Source: &imageSource{Type: "base64", MediaType: mediaType, Data: data}},
	}, nil
}

func parseDataURI(dataURI string) (mediaType, data string, err error) {
	if !strings.HasPrefix(dataURI, "data:") {
		return "", "", fmt.Errorf("image must be a base64 data URI")
	}
	rest := strings.TrimPrefix(dataURI, "data:")
	head, payload, found := strings.Cut(rest, ",")
	if !found || !strings.HasSuffix(head, ";base64") {
		return "", "", fmt.Errorf("image must be a base64 data URI")
	}
	return strings.TrimSuffix(head, ";base64"), payload, nil
}
