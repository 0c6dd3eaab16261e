package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmflow/internal/service/records"
	"github.com/mamadbah2/farmflow/internal/storage"
)

// TablesHandler serves the generic table CRUD routes.
type TablesHandler struct {
	svc    *records.Service
	logger *zap.Logger
}

// NewTablesHandler constructs the HTTP handler adapter for table operations.
func NewTablesHandler(svc *records.Service, logger *zap.Logger) *TablesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TablesHandler{svc: svc, logger: logger}
}

// List returns the full record array of one table, newest first where the
// table defines a recency field.
func (h *TablesHandler) List(c *gin.Context) {
	table, ok := storage.Lookup(c.Param("table"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Unknown table"})
		return
	}

	recordsList, err := h.svc.List(c.Request.Context(), table)
	if err != nil {
		h.logger.Error("failed listing table", zap.String("table", string(table)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read table"})
		return
	}

	c.JSON(http.StatusOK, recordsList)
}

// Create stores one new record in the table.
func (h *TablesHandler) Create(c *gin.Context) {
	table, ok := storage.Lookup(c.Param("table"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Unknown table"})
		return
	}

	var body storage.Record
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	stored, err := h.svc.Create(c.Request.Context(), table, body)
	if err != nil {
		var validationErr *records.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Message})
			return
		}
		h.logger.Error("failed creating record", zap.String("table", string(table)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to store record"})
		return
	}

	c.JSON(http.StatusCreated, stored)
}

// UpdateAnimal merges the request body into the livestock record with the
// given id.
func (h *TablesHandler) UpdateAnimal(c *gin.Context) {
	var patch storage.Record
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), storage.TableLivestock, c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Animal not found"})
			return
		}
		h.logger.Error("failed updating animal", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update record"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteAnimal removes the livestock record with the given id.
func (h *TablesHandler) DeleteAnimal(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), storage.TableLivestock, c.Param("id")); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Animal not found"})
			return
		}
		h.logger.Error("failed deleting animal", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Animal sold and removed"})
}
