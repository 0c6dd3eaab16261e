package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmflow/internal/config"
	"github.com/mamadbah2/farmflow/internal/repository/mongodb"
	"github.com/mamadbah2/farmflow/internal/repository/sheets"
	"github.com/mamadbah2/farmflow/internal/scheduler"
	"github.com/mamadbah2/farmflow/internal/server/handlers"
	"github.com/mamadbah2/farmflow/internal/server/router"
	advisorsvc "github.com/mamadbah2/farmflow/internal/service/advisor"
	backupsvc "github.com/mamadbah2/farmflow/internal/service/backup"
	recordsvc "github.com/mamadbah2/farmflow/internal/service/records"
	reportingsvc "github.com/mamadbah2/farmflow/internal/service/reporting"
	"github.com/mamadbah2/farmflow/internal/storage"
	"github.com/mamadbah2/farmflow/pkg/clients/anthropic"
	"github.com/mamadbah2/farmflow/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := storage.New(storage.Config{DataDirectory: cfg.Storage.DataDirectory}, baseLogger.Named("storage"))
	if err != nil {
		baseLogger.Fatal("failed to init record store", zap.Error(err))
	}

	var ledger recordsvc.Ledger
	if cfg.Sheets.LedgerSheetID != "" {
		sheetLedger, err := sheets.NewGoogleSheetLedger(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets ledger", zap.Error(err))
		}
		ledger = sheetLedger
		baseLogger.Info("transaction ledger mirror enabled")
	} else {
		baseLogger.Warn("ledger sheet not configured, transaction mirroring disabled")
	}

	var reportsRepo mongodb.Repository
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		reportsRepo = mongoRepo
		baseLogger.Info("daily report archive enabled")
	} else {
		baseLogger.Warn("mongodb not configured, daily report archival disabled")
	}

	recordsSvc := recordsvc.NewService(store, ledger, baseLogger.Named("svc.records"))
	backupSvc := backupsvc.NewService(store, baseLogger.Named("svc.backup"))
	reportingSvc := reportingsvc.NewService(store, baseLogger.Named("svc.reporting"))

	var advisorSvc *advisorsvc.Service
	if cfg.AI.AnthropicKey != "" {
		aiClient := anthropic.NewClient(cfg.AI.AnthropicKey)
		advisorSvc = advisorsvc.NewService(aiClient, baseLogger.Named("svc.advisor"))
		baseLogger.Info("anthropic ai advisor enabled")
	} else {
		baseLogger.Warn("anthropic api key missing, ai advisor disabled")
	}

	tablesHandler := handlers.NewTablesHandler(recordsSvc, baseLogger.Named("handlers.tables"))
	backupHandler := handlers.NewBackupHandler(backupSvc, recordsSvc, cfg.Backup.Operator, baseLogger.Named("handlers.backup"))
	advisorHandler := handlers.NewAdvisorHandler(advisorSvc, baseLogger.Named("handlers.advisor"))
	engine := router.New(tablesHandler, backupHandler, advisorHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, backupSvc, recordsSvc, reportingSvc, reportsRepo, store, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
