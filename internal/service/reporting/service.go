package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmflow/internal/domain/models"
	"github.com/mamadbah2/farmflow/internal/storage"
)

const dateLayout = "2006-01-02"

// Service aggregates the day's activity across tables into one report.
type Service struct {
	store  *storage.Store
	logger *zap.Logger
}

// NewService wires a reporting service.
func NewService(store *storage.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// ComputeDailyReport builds the aggregated snapshot for the given day.
func (s *Service) ComputeDailyReport(ctx context.Context, day time.Time) (models.DailyFarmReport, error) {
	dayKey := day.UTC().Format(dateLayout)

	report := models.DailyFarmReport{
		Date:      day.UTC().Truncate(24 * time.Hour),
		CreatedAt: time.Now().UTC(),
	}

	eggLogs, err := s.store.ReadTable(storage.TableEggLogs)
	if err != nil {
		return models.DailyFarmReport{}, fmt.Errorf("read egg logs: %w", err)
	}
	for _, rec := range eggLogs {
		if !onDay(rec, "date", dayKey) {
			continue
		}
		if qty, ok := rec["quantity"].(float64); ok {
			report.EggsCollected += int(qty)
		}
	}

	transactions, err := s.store.ReadTable(storage.TableTransactions)
	if err != nil {
		return models.DailyFarmReport{}, fmt.Errorf("read transactions: %w", err)
	}
	for _, rec := range transactions {
		if !onDay(rec, "date", dayKey) {
			continue
		}
		amount, _ := rec["amount"].(float64)
		switch rec["type"] {
		case models.TransactionRevenue:
			report.Revenue += amount
		case models.TransactionExpense:
			report.Expenses += amount
		}
	}
	report.Profit = report.Revenue - report.Expenses

	livestock, err := s.store.ReadTable(storage.TableLivestock)
	if err != nil {
		return models.DailyFarmReport{}, fmt.Errorf("read livestock: %w", err)
	}
	report.LivestockCount = len(livestock)

	alerts, err := s.store.ReadTable(storage.TableAlerts)
	if err != nil {
		return models.DailyFarmReport{}, fmt.Errorf("read alerts: %w", err)
	}
	for _, rec := range alerts {
		if read, ok := rec["read"].(bool); ok && !read {
			report.OpenAlerts++
		}
	}

	return report, nil
}

// onDay reports whether the record's date field falls on the given day.
// Stored dates are either bare dates or full RFC3339 timestamps, so the
// comparison uses the date prefix.
func onDay(rec storage.Record, field, dayKey string) bool {
	str, _ := rec[field].(string)
	return strings.HasPrefix(str, dayKey)
}
