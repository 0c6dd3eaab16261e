package models

// BackupFormatVersion tags every bundle so future readers can branch on it.
const BackupFormatVersion = "1.0.0"

// BackupMetadata describes the snapshot carried under the _backupMetadata key.
type BackupMetadata struct {
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
	Version   string `json:"version"`
}

// BackupHistoryEntry records one completed backup in the backup-history table.
type BackupHistoryEntry struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
	FileName  string `json:"fileName"`
}
