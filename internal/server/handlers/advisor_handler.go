package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmflow/internal/service/advisor"
)

// AdvisorHandler serves the /ai analysis routes. When the inference provider
// is not configured svc is nil and every route answers 503.
type AdvisorHandler struct {
	svc    *advisor.Service
	logger *zap.Logger
}

// NewAdvisorHandler constructs the HTTP handler adapter for the AI flows.
func NewAdvisorHandler(svc *advisor.Service, logger *zap.Logger) *AdvisorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdvisorHandler{svc: svc, logger: logger}
}

func (h *AdvisorHandler) disabled(c *gin.Context) bool {
	if h.svc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "ai advisor disabled"})
		return true
	}
	return false
}

type livestockHealthRequest struct {
	ImageDataURI string `json:"imageDataUri" binding:"required"`
	AnimalType   string `json:"animalType" binding:"required"`
}

// LivestockHealth analyzes one camera frame of livestock.
func (h *AdvisorHandler) LivestockHealth(c *gin.Context) {
	if h.disabled(c) {
		return
	}

	var req livestockHealthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "imageDataUri and animalType are required"})
		return
	}

	c.JSON(http.StatusOK, h.svc.AnalyzeLivestockHealth(c.Request.Context(), req.ImageDataURI, req.AnimalType))
}

type diagnosePlantRequest struct {
	PhotoDataURI string `json:"photoDataUri" binding:"required"`
	Description  string `json:"description"`
}

// DiagnosePlant diagnoses a plant from a photo.
func (h *AdvisorHandler) DiagnosePlant(c *gin.Context) {
	if h.disabled(c) {
		return
	}

	var req diagnosePlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "photoDataUri is required"})
		return
	}

	c.JSON(http.StatusOK, h.svc.DiagnosePlantHealth(c.Request.Context(), req.PhotoDataURI, req.Description))
}

type suggestCropsRequest struct {
	SoilPhotoDataURI   string `json:"soilPhotoDataUri" binding:"required"`
	CurrentMonth       string `json:"currentMonth" binding:"required"`
	WaterResourceNotes string `json:"waterResourceNotes"`
}

// SuggestCrops suggests crops for the photographed soil and season.
func (h *AdvisorHandler) SuggestCrops(c *gin.Context) {
	if h.disabled(c) {
		return
	}

	var req suggestCropsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "soilPhotoDataUri and currentMonth are required"})
		return
	}

	c.JSON(http.StatusOK, h.svc.SuggestCrops(c.Request.Context(), req.SoilPhotoDataURI, req.CurrentMonth, req.WaterResourceNotes))
}

type spendingForecastRequest struct {
	CurrentResourceUsage string  `json:"currentResourceUsage" binding:"required"`
	PlannedActivities    string  `json:"plannedActivities" binding:"required"`
	Budget               float64 `json:"budget" binding:"required"`
}

// SpendingForecast forecasts spending against a budget.
func (h *AdvisorHandler) SpendingForecast(c *gin.Context) {
	if h.disabled(c) {
		return
	}

	var req spendingForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "currentResourceUsage, plannedActivities and budget are required"})
		return
	}

	forecast, err := h.svc.SpendingForecast(c.Request.Context(), req.CurrentResourceUsage, req.PlannedActivities, req.Budget)
	if err != nil {
		h.logger.Error("spending forecast failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"message": "Forecast unavailable"})
		return
	}

	c.JSON(http.StatusOK, forecast)
}

type analyzeInvoiceRequest struct {
	InvoiceImageURI string `json:"invoiceImageUri" binding:"required"`
}

// AnalyzeInvoice extracts structured expense data from an invoice image.
func (h *AdvisorHandler) AnalyzeInvoice(c *gin.Context) {
	if h.disabled(c) {
		return
	}

	var req analyzeInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invoiceImageUri is required"})
		return
	}

	c.JSON(http.StatusOK, h.svc.AnalyzeInvoice(c.Request.Context(), req.InvoiceImageURI))
}

type resourceInsightsRequest struct {
	FarmID    string `json:"farmId" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

// ResourceInsights reports on resource consumption over a period.
func (h *AdvisorHandler) ResourceInsights(c *gin.Context) {
	if h.disabled(c) {
		return
	}

	var req resourceInsightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "farmId, startDate and endDate are required"})
		return
	}

	insights, err := h.svc.ResourceUsageInsights(c.Request.Context(), req.FarmID, req.StartDate, req.EndDate)
	if err != nil {
		h.logger.Error("resource insights failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"message": "Insights unavailable"})
		return
	}

	c.JSON(http.StatusOK, insights)
}
