package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Backup    BackupConfig
	Scheduler SchedulerConfig
	AI        AIConfig
	MongoDB   MongoDBConfig
	Sheets    SheetsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// StorageConfig locates the flat-file table directory.
type StorageConfig struct {
	DataDirectory string
}

// BackupConfig controls backup output and attribution.
type BackupConfig struct {
	Directory string
	Operator  string
}

// SchedulerConfig holds the cron expressions for the background jobs.
type SchedulerConfig struct {
	BackupSchedule string
	ReportSchedule string
	AlertSchedule  string
	Timezone       string
}

// AIConfig holds settings for the inference provider.
type AIConfig struct {
	AnthropicKey string
}

// MongoDBConfig holds settings for the daily report archive.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SheetsConfig holds settings for the transaction ledger mirror.
type SheetsConfig struct {
	CredentialsPath string
	LedgerSheetID   string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from
		// the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Storage: StorageConfig{
			DataDirectory: getenvWithDefault("DATA_DIR", "./data"),
		},
		Backup: BackupConfig{
			Directory: getenvWithDefault("BACKUP_DIR", "./backups"),
			Operator:  getenvWithDefault("BACKUP_OPERATOR", "Alice Farmer"),
		},
		Scheduler: SchedulerConfig{
			BackupSchedule: getenvWithDefault("BACKUP_CRON_SCHEDULE", "0 2 * * *"),
			ReportSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
			AlertSchedule:  getenvWithDefault("ALERT_CRON_SCHEDULE", "0 6 * * *"),
			Timezone:       getenvWithDefault("TIMEZONE", "UTC"),
		},
		AI: AIConfig{
			AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "farmflow"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			LedgerSheetID:   os.Getenv("GOOGLE_SHEET_LEDGER_ID"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated. The AI,
// MongoDB and Sheets sections are optional; the subsystems they configure
// disable themselves when unset.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}
	if c.Storage.DataDirectory == "" {
		return errors.New("DATA_DIR must be provided")
	}
	if c.Backup.Directory == "" {
		return errors.New("BACKUP_DIR must be provided")
	}
	if c.Backup.Operator == "" {
		return errors.New("BACKUP_OPERATOR must not be empty")
	}

	switch {
	case c.Scheduler.BackupSchedule == "":
		return errors.New("BACKUP_CRON_SCHEDULE must be provided")
	case c.Scheduler.ReportSchedule == "":
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	case c.Scheduler.AlertSchedule == "":
		return errors.New("ALERT_CRON_SCHEDULE must be provided")
	case c.Scheduler.Timezone == "":
		return errors.New("TIMEZONE must be provided")
	}

	if c.Sheets.CredentialsPath != "" && c.Sheets.LedgerSheetID == "" {
		return errors.New("GOOGLE_SHEET_LEDGER_ID must be provided when sheets credentials are set")
	}
	if c.Sheets.LedgerSheetID != "" && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when a ledger sheet is set")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
