package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_PORT", "DATA_DIR", "BACKUP_DIR", "BACKUP_OPERATOR",
		"BACKUP_CRON_SCHEDULE", "REPORT_CRON_SCHEDULE", "ALERT_CRON_SCHEDULE", "TIMEZONE",
		"ANTHROPIC_API_KEY", "MONGODB_URI", "MONGODB_DB_NAME",
		"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_LEDGER_ID",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load("does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "./data", cfg.Storage.DataDirectory)
	assert.Equal(t, "./backups", cfg.Backup.Directory)
	assert.Equal(t, "Alice Farmer", cfg.Backup.Operator)
	assert.Equal(t, "0 2 * * *", cfg.Scheduler.BackupSchedule)
	assert.Equal(t, "0 20 * * *", cfg.Scheduler.ReportSchedule)
	assert.Equal(t, "0 6 * * *", cfg.Scheduler.AlertSchedule)
	assert.Equal(t, "UTC", cfg.Scheduler.Timezone)
	assert.Equal(t, "farmflow", cfg.MongoDB.DBName)
	assert.Empty(t, cfg.AI.AnthropicKey)
	assert.Empty(t, cfg.MongoDB.URI)
	assert.Empty(t, cfg.Sheets.CredentialsPath)
	assert.Empty(t, cfg.Sheets.LedgerSheetID)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DATA_DIR", "/var/lib/farmflow")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/etc/farmflow/sheets.json")
	t.Setenv("GOOGLE_SHEET_LEDGER_ID", "sheet-123")

	cfg, err := Load("does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/var/lib/farmflow", cfg.Storage.DataDirectory)
	assert.Equal(t, "sk-test", cfg.AI.AnthropicKey)
	assert.Equal(t, "sheet-123", cfg.Sheets.LedgerSheetID)
}

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: "8080"},
		Storage: StorageConfig{DataDirectory: "./data"},
		Backup:  BackupConfig{Directory: "./backups", Operator: "Alice Farmer"},
		Scheduler: SchedulerConfig{
			BackupSchedule: "0 2 * * *",
			ReportSchedule: "0 20 * * *",
			AlertSchedule:  "0 6 * * *",
			Timezone:       "UTC",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing port", func(c *Config) { c.Server.Port = "" }, "APP_PORT"},
		{"missing data dir", func(c *Config) { c.Storage.DataDirectory = "" }, "DATA_DIR"},
		{"missing backup dir", func(c *Config) { c.Backup.Directory = "" }, "BACKUP_DIR"},
		{"missing operator", func(c *Config) { c.Backup.Operator = "" }, "BACKUP_OPERATOR"},
		{"missing backup schedule", func(c *Config) { c.Scheduler.BackupSchedule = "" }, "BACKUP_CRON_SCHEDULE"},
		{"missing timezone", func(c *Config) { c.Scheduler.Timezone = "" }, "TIMEZONE"},
		{"credentials without sheet", func(c *Config) { c.Sheets.CredentialsPath = "/tmp/creds.json" }, "GOOGLE_SHEET_LEDGER_ID"},
		{"sheet without credentials", func(c *Config) { c.Sheets.LedgerSheetID = "sheet-123" }, "GOOGLE_SHEETS_CREDENTIALS_PATH"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
