package records

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

// ValidationError indicates a create request missing required fields. It is
// surfaced to the caller as a 400 with a human-readable message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Ledger mirrors created transactions into an external sheet. Mirroring is
// best effort; a failure never reaches the caller.
type Ledger interface {
	AppendTransaction(ctx context.Context, tx models.Transaction) error
}

// Service implements the table operations behind the /tables routes,
// including the derived transaction written for sold harvests.
type Service struct {
	store  *storage.Store
	ledger Ledger
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a records service. ledger may be nil when no sheet is
// configured.
func NewService(store *storage.Store, ledger Ledger, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		ledger: ledger,
		logger: logger,
		now:    time.Now,
	}
}

// idPrefixes drive generated ids of the form <PREFIX>-<unix millis>. Users
// and recent-activities carry numeric ids and are handled by nextNumericID.
var idPrefixes = map[storage.Table]string{
	storage.TableCrops:         "CROP",
	storage.TableFields:        "FLD",
	storage.TableLivestock:     "ANIM",
	storage.TableEggLogs:       "LOG",
	storage.TableHarvests:      "HARV",
	storage.TableTransactions:  "TXN",
	storage.TableAlerts:        "ALERT",
	storage.TableBackupHistory: "BKP",
}

// createdAtTables name the tables whose entity carries a server-stamped
// creation timestamp. Transactions stamp theirs in createTransaction.
var createdAtTables = map[storage.Table]bool{
	storage.TableEggLogs: true,
}

// recencyFields name the field a table's listing is sorted on, newest first.
// Tables absent here are returned in stored order.
var recencyFields = map[storage.Table]string{
	storage.TableEggLogs:       "date",
	storage.TableHarvests:      "date",
	storage.TableTransactions:  "date",
	storage.TableAlerts:        "timestamp",
	storage.TableBackupHistory: "timestamp",
}

// List returns the table's records, sorted on its recency field where the
// table defines one.
func (s *Service) List(ctx context.Context, table storage.Table) ([]storage.Record, error) {
	records, err := s.store.ReadTable(table)
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", table, err)
	}

	if field, ok := recencyFields[table]; ok {
		sort.SliceStable(records, func(i, j int) bool {
			return recordTime(records[i], field).After(recordTime(records[j], field))
		})
	}

	return records, nil
}

// Create stores a new record, assigning an id (unless the caller provided
// one, e.g. livestock registered under an AI-suggested tag) and a createdAt
// where the entity defines one. Harvest creation additionally runs the
// derived-transaction trigger.
func (s *Service) Create(ctx context.Context, table storage.Table, body storage.Record) (storage.Record, error) {
	if body == nil {
		body = storage.Record{}
	}

	switch table {
	case storage.TableHarvests:
		return s.createHarvest(ctx, body)
	case storage.TableTransactions:
		return s.createTransaction(ctx, body)
	case storage.TableUsers, storage.TableRecentActivities:
		return s.createNumbered(table, body)
	default:
		return s.createPlain(table, body)
	}
}

// Update shallow-merges patch into the record with the given id.
func (s *Service) Update(ctx context.Context, table storage.Table, id string, patch storage.Record) (storage.Record, error) {
	delete(patch, "id")
	return s.store.UpdateRecord(table, id, patch)
}

// Delete removes the record with the given id.
func (s *Service) Delete(ctx context.Context, table storage.Table, id string) error {
	return s.store.DeleteRecord(table, id)
}

func (s *Service) createPlain(table storage.Table, body storage.Record) (storage.Record, error) {
	if body["id"] == nil || body["id"] == "" {
		body["id"] = s.generateID(table)
	}
	if createdAtTables[table] {
		body["createdAt"] = s.now().UTC().Format(time.RFC3339)
	}
	if err := s.store.AppendRecord(table, body); err != nil {
		return nil, fmt.Errorf("append to %s: %w", table, err)
	}
	return body, nil
}

func (s *Service) createNumbered(table storage.Table, body storage.Record) (storage.Record, error) {
	stored, err := s.store.AppendRecordFunc(table, func(records []storage.Record) storage.Record {
		next := 1
		for _, rec := range records {
			if n, ok := rec["id"].(float64); ok && int(n) >= next {
				next = int(n) + 1
			}
		}
		body["id"] = next
		return body
	})
	if err != nil {
		return nil, fmt.Errorf("append to %s: %w", table, err)
	}
	return stored, nil
}

func (s *Service) createTransaction(ctx context.Context, body storage.Record) (storage.Record, error) {
	body["id"] = s.generateID(storage.TableTransactions)
	body["createdAt"] = s.now().UTC().Format(time.RFC3339)

	if err := s.store.AppendRecord(storage.TableTransactions, body); err != nil {
		return nil, fmt.Errorf("append transaction: %w", err)
	}

	s.mirrorToLedger(ctx, body)
	return body, nil
}

type harvestInput struct {
	Date         string  `json:"date"`
	Item         string  `json:"item"`
	Type         string  `json:"type"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	Notes        string  `json:"notes"`
	Sold         bool    `json:"sold"`
	PricePerUnit float64 `json:"pricePerUnit"`
}

func (s *Service) createHarvest(ctx context.Context, body storage.Record) (storage.Record, error) {
	var input harvestInput
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode harvest body: %w", err)
	}
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, &ValidationError{Message: "Invalid harvest payload"}
	}

	if input.Item == "" || input.Quantity == 0 || input.Unit == "" || input.Date == "" {
		return nil, &ValidationError{Message: "Missing required fields"}
	}
	if input.Sold && input.PricePerUnit <= 0 {
		return nil, &ValidationError{Message: "Valid pricePerUnit is required for sold items"}
	}

	harvest := models.HarvestLog{
		ID:       s.generateID(storage.TableHarvests),
		Date:     input.Date,
		Item:     input.Item,
		Type:     input.Type,
		Quantity: input.Quantity,
		Unit:     input.Unit,
		Notes:    input.Notes,
		Sold:     input.Sold,
	}
	if input.Sold {
		harvest.SaleDetails = &models.SaleDetails{
			PricePerUnit: input.PricePerUnit,
			TotalRevenue: input.Quantity * input.PricePerUnit,
		}
	}

	stored := toRecord(harvest)
	if err := s.store.AppendRecord(storage.TableHarvests, stored); err != nil {
		return nil, fmt.Errorf("append harvest: %w", err)
	}

	if harvest.Sold {
		// Second, non-atomic write: when it fails the harvest record stays
		// in place without its paired transaction.
		tx := models.Transaction{
			ID:          s.generateID(storage.TableTransactions),
			Category:    "Livestock Sale",
			Amount:      harvest.SaleDetails.TotalRevenue,
			Date:        harvest.Date,
			Description: fmt.Sprintf("Sale of %v %s of %s", harvest.Quantity, harvest.Unit, harvest.Item),
			Type:        models.TransactionRevenue,
			CreatedAt:   s.now().UTC().Format(time.RFC3339),
		}
		if err := s.store.AppendRecord(storage.TableTransactions, toRecord(tx)); err != nil {
			s.logger.Error("failed to append derived sale transaction",
				zap.String("harvestId", harvest.ID), zap.Error(err))
		} else {
			s.mirrorToLedger(ctx, toRecord(tx))
		}
	}

	return stored, nil
}

func (s *Service) mirrorToLedger(ctx context.Context, rec storage.Record) {
	if s.ledger == nil {
		return
	}

	var tx models.Transaction
	raw, err := json.Marshal(rec)
	if err == nil {
		err = json.Unmarshal(raw, &tx)
	}
	if err != nil {
		s.logger.Warn("skipping ledger mirror for malformed transaction", zap.Error(err))
		return
	}

	if err := s.ledger.AppendTransaction(ctx, tx); err != nil {
		s.logger.Warn("ledger mirror failed", zap.String("transactionId", tx.ID), zap.Error(err))
	}
}

func (s *Service) generateID(table storage.Table) string {
	return fmt.Sprintf("%s-%d", idPrefixes[table], s.now().UnixMilli())
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

// recordTime parses a record's recency field. Values are either full RFC3339
// timestamps or bare dates.
func recordTime(rec storage.Record, field string) time.Time {
	str, _ := rec[field].(string)
	if str == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, str); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", str); err == nil {
		return t
	}
	return time.Time{}
}
