package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmflow/internal/service/backup"
	"github.com/mamadbah2/farmflow/internal/service/records"
	"github.com/mamadbah2/farmflow/internal/storage"
)

// maxBundleSize caps uploaded restore bundles at 32 MiB.
const maxBundleSize = 32 << 20

// BackupHandler serves the backup, backup-history and restore routes.
type BackupHandler struct {
	backupSvc  *backup.Service
	recordsSvc *records.Service
	operator   string
	logger     *zap.Logger
}

// NewBackupHandler constructs the HTTP handler adapter for backup flows.
// operator is the attribution recorded with each backup; there is no
// authentication layer to derive it from.
func NewBackupHandler(backupSvc *backup.Service, recordsSvc *records.Service, operator string, logger *zap.Logger) *BackupHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupHandler{
		backupSvc:  backupSvc,
		recordsSvc: recordsSvc,
		operator:   operator,
		logger:     logger,
	}
}

// Backup assembles a full snapshot and returns it as a downloadable JSON
// document.
func (h *BackupHandler) Backup(c *gin.Context) {
	doc, fileName, err := h.backupSvc.CreateBackup(c.Request.Context(), h.operator)
	if err != nil {
		h.logger.Error("failed creating backup", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create backup"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.JSON(http.StatusOK, doc)
}

// History returns the backup log, most recent first.
func (h *BackupHandler) History(c *gin.Context) {
	entries, err := h.recordsSvc.List(c.Request.Context(), storage.TableBackupHistory)
	if err != nil {
		h.logger.Error("failed listing backup history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read backup history"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// Restore overwrites the tables from an uploaded backup bundle (multipart
// file field "backup").
func (h *BackupHandler) Restore(c *gin.Context) {
	fileHeader, err := c.FormFile("backup")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No backup file uploaded."})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("failed opening uploaded bundle", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read uploaded file"})
		return
	}
	defer func() { _ = file.Close() }()

	bundle, err := io.ReadAll(io.LimitReader(file, maxBundleSize))
	if err != nil {
		h.logger.Error("failed reading uploaded bundle", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read uploaded file"})
		return
	}

	restored, err := h.backupSvc.Restore(c.Request.Context(), bundle)
	if err != nil {
		var restoreErr *backup.RestoreError
		if errors.As(err, &restoreErr) {
			h.logger.Error("restore failed", zap.Strings("restoredTables", restored), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": restoreErr.Error()})
			return
		}
		h.logger.Error("restore failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An unknown error occurred during restore."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Restore successful."})
}
