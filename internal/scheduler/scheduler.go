package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmflow/internal/config"
	"github.com/mamadbah2/farmflow/internal/repository/mongodb"
	"github.com/mamadbah2/farmflow/internal/service/backup"
	"github.com/mamadbah2/farmflow/internal/service/records"
	"github.com/mamadbah2/farmflow/internal/service/reporting"
	"github.com/mamadbah2/farmflow/internal/storage"
)

// Scheduler manages the background jobs: nightly auto-backup, daily farm
// report archival and the harvest-ready alert scan.
type Scheduler struct {
	cron         *cron.Cron
	backupSvc    *backup.Service
	recordsSvc   *records.Service
	reportingSvc *reporting.Service
	reportsRepo  mongodb.Repository
	store        *storage.Store
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. reportsRepo may be nil when
// MongoDB is not configured; the report job is skipped in that case.
func NewScheduler(cfg config.Config, backupSvc *backup.Service, recordsSvc *records.Service, reportingSvc *reporting.Service, reportsRepo mongodb.Repository, store *storage.Store, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to local", zap.String("timezone", cfg.Scheduler.Timezone), zap.Error(err))
		loc = time.Local
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		backupSvc:    backupSvc,
		recordsSvc:   recordsSvc,
		reportingSvc: reportingSvc,
		reportsRepo:  reportsRepo,
		store:        store,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	if _, err := s.cron.AddFunc(s.cfg.Scheduler.BackupSchedule, s.runAutoBackup); err != nil {
		s.logger.Error("failed to schedule auto backup", zap.Error(err))
	}
	if _, err := s.cron.AddFunc(s.cfg.Scheduler.AlertSchedule, s.runHarvestAlertScan); err != nil {
		s.logger.Error("failed to schedule harvest alert scan", zap.Error(err))
	}
	if s.reportsRepo != nil {
		if _, err := s.cron.AddFunc(s.cfg.Scheduler.ReportSchedule, s.runDailyReport); err != nil {
			s.logger.Error("failed to schedule daily report", zap.Error(err))
		}
	}

	s.cron.Start()
}

// Stop stops the cron loop.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runAutoBackup() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	doc, fileName, err := s.backupSvc.CreateBackup(ctx, "scheduler")
	if err != nil {
		s.logger.Error("auto backup failed", zap.Error(err))
		return
	}

	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		s.logger.Error("auto backup encode failed", zap.Error(err))
		return
	}

	if err := os.MkdirAll(s.cfg.Backup.Directory, 0o755); err != nil {
		s.logger.Error("auto backup directory unavailable", zap.Error(err))
		return
	}

	target := filepath.Join(s.cfg.Backup.Directory, fileName)
	if err := os.WriteFile(target, content, 0o644); err != nil {
		s.logger.Error("auto backup write failed", zap.String("file", target), zap.Error(err))
		return
	}

	s.logger.Info("auto backup written", zap.String("file", target))
}

func (s *Scheduler) runDailyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := s.reportingSvc.ComputeDailyReport(ctx, time.Now())
	if err != nil {
		s.logger.Error("failed to compute daily report", zap.Error(err))
		return
	}

	if err := s.reportsRepo.SaveDailyFarmReport(ctx, report); err != nil {
		s.logger.Error("failed to archive daily report", zap.Error(err))
		return
	}

	s.logger.Info("daily report archived", zap.Time("date", report.Date))
}

// runHarvestAlertScan raises one Crops alert per crop whose expected harvest
// date has passed and that is not yet marked harvested. An identical unread
// alert suppresses a new one.
func (s *Scheduler) runHarvestAlertScan() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	crops, err := s.store.ReadTable(storage.TableCrops)
	if err != nil {
		s.logger.Error("harvest alert scan failed reading crops", zap.Error(err))
		return
	}
	alerts, err := s.store.ReadTable(storage.TableAlerts)
	if err != nil {
		s.logger.Error("harvest alert scan failed reading alerts", zap.Error(err))
		return
	}

	today := time.Now().UTC().Format("2006-01-02")
	for _, crop := range crops {
		status, _ := crop["status"].(string)
		expected, _ := crop["expectedHarvest"].(string)
		name, _ := crop["name"].(string)
		field, _ := crop["field"].(string)
		if status == "Harvested" || expected == "" || expected > today {
			continue
		}

		message := fmt.Sprintf("%s in %s field is now ready for harvest.", name, field)
		if hasUnreadAlert(alerts, message) {
			continue
		}

		alert := storage.Record{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"module":    "Crops",
			"message":   message,
			"read":      false,
			"link":      "/dashboard/crops",
		}
		if _, err := s.recordsSvc.Create(ctx, storage.TableAlerts, alert); err != nil {
			s.logger.Error("failed to raise harvest alert", zap.String("crop", name), zap.Error(err))
			continue
		}
		s.logger.Info("harvest alert raised", zap.String("crop", name))
	}
}

func hasUnreadAlert(alerts []storage.Record, message string) bool {
	for _, alert := range alerts {
		read, _ := alert["read"].(bool)
		if !read && alert["message"] == message {
			return true
		}
	}
	return false
}
