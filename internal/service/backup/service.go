// Package backup assembles full-table snapshots and restores them.
//
// A backup bundle is one JSON document: a _backupMetadata object plus one
// entry per table, keyed by the table's file-name stem (kebab-case) and
// holding the raw record array. Restore accepts bundles in that shape and
// additionally tolerates values still wrapped in their in-file form
// ({"eggLogs": [...]}), which older exporters produced.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmflow/internal/domain/models"
	"github.com/mamadbah2/farmflow/internal/storage"
)

// RestoreError wraps any failure during restore: malformed upload, parse
// failure or table write failure. Tables written before the failing key are
// not rolled back.
type RestoreError struct {
	Message string
	Cause   error
}

func (e *RestoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *RestoreError) Unwrap() error {
	return e.Cause
}

// Document is a fully assembled backup bundle ready for serialization.
type Document map[string]any

// Service implements backup assembly and restore execution.
type Service struct {
	store  *storage.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a backup service around the record store.
func NewService(store *storage.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// CreateBackup snapshots every table into one bundle tagged with metadata
// and returns it together with its suggested download file name. Recording
// the backup-history entry is a best-effort side effect: when it fails the
// bundle is still returned.
func (s *Service) CreateBackup(ctx context.Context, operator string) (Document, string, error) {
	timestamp := s.now().UTC().Format(time.RFC3339)
	fileName := fmt.Sprintf("farmflow-backup-%s.json", timestamp)

	doc := Document{
		"_backupMetadata": models.BackupMetadata{
			Timestamp: timestamp,
			User:      operator,
			Version:   models.BackupFormatVersion,
		},
	}

	for _, table := range storage.KnownTables() {
		if table == storage.TableBackupHistory {
			// Enumerated but excluded from the payload; the history table is
			// rebuilt from its own entries, not from bundles.
			continue
		}
		records, err := s.store.ReadTable(table)
		if err != nil {
			return nil, "", fmt.Errorf("snapshot table %s: %w", table, err)
		}
		doc[string(table)] = records
	}

	entry := models.BackupHistoryEntry{
		ID:        fmt.Sprintf("BKP-%d", s.now().UnixMilli()),
		Timestamp: timestamp,
		User:      operator,
		FileName:  fileName,
	}
	// Newest entry sits first in the history file.
	if err := s.store.PrependRecord(storage.TableBackupHistory, toRecord(entry)); err != nil {
		s.logger.Error("failed to record backup history entry",
			zap.String("backupId", entry.ID), zap.Error(err))
	}

	return doc, fileName, nil
}

// Restore overwrites every known table present in the uploaded bundle.
// Unknown top-level keys are skipped. The operation aborts on the first
// parse or write failure without rolling back tables already written; the
// returned slice names the tables restored so far in both cases.
func (s *Service) Restore(ctx context.Context, bundle []byte) ([]string, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(bundle, &doc); err != nil {
		return nil, &RestoreError{Message: "invalid backup document", Cause: err}
	}
	delete(doc, "_backupMetadata")

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	restored := make([]string, 0, len(keys))
	for _, key := range keys {
		table, ok := storage.Lookup(key)
		if !ok {
			s.logger.Warn("skipping unknown key in backup bundle", zap.String("key", key))
			continue
		}

		records, err := decodeBundleValue(table, doc[key])
		if err != nil {
			return restored, &RestoreError{
				Message: fmt.Sprintf("invalid data for table %s", table),
				Cause:   err,
			}
		}

		if err := s.store.WriteTable(table, records); err != nil {
			return restored, &RestoreError{
				Message: fmt.Sprintf("failed writing table %s", table),
				Cause:   err,
			}
		}
		restored = append(restored, string(table))
	}

	s.logger.Info("restore completed", zap.Strings("tables", restored))
	return restored, nil
}

// decodeBundleValue accepts either a bare record array or an object nesting
// the array under the table's wrapper key.
func decodeBundleValue(table storage.Table, raw json.RawMessage) ([]storage.Record, error) {
	var records []storage.Record
	if err := json.Unmarshal(raw, &records); err == nil {
		return records, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("parse value: %w", err)
	}
	inner, ok := wrapped[table.WrapperKey()]
	if !ok {
		return nil, fmt.Errorf("wrapper key %q missing", table.WrapperKey())
	}
	if err := json.Unmarshal(inner, &records); err != nil {
		return nil, fmt.Errorf("parse wrapped records: %w", err)
	}
	return records, nil
}

func toRecord(v any) storage.Record {
	raw, err := json.Marshal(v)
	if err != nil {
		return storage.Record{}
	}
	var rec storage.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return storage.Record{}
	}
	return rec
}
