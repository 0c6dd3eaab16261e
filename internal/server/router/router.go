package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmflow/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(tables *handlers.TablesHandler, backup *handlers.BackupHandler, advisor *handlers.AdvisorHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/tables/:table", tables.List)
	r.POST("/tables/:table", tables.Create)
	r.PUT("/tables/livestock/:id", tables.UpdateAnimal)
	r.DELETE("/tables/livestock/:id", tables.DeleteAnimal)

	r.GET("/backup", backup.Backup)
	r.GET("/backup-history", backup.History)
	r.POST("/restore", backup.Restore)

	ai := r.Group("/ai")
	ai.POST("/livestock-health", advisor.LivestockHealth)
	ai.POST("/diagnose-plant", advisor.DiagnosePlant)
	ai.POST("/suggest-crops", advisor.SuggestCrops)
	ai.POST("/spending-forecast", advisor.SpendingForecast)
	ai.POST("/analyze-invoice", advisor.AnalyzeInvoice)
	ai.POST("/resource-insights", advisor.ResourceInsights)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
