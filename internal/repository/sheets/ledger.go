package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/farmflow/internal/config"
	"github.com/mamadbah2/farmflow/internal/domain/models"
)

const ledgerRange = "Transactions!A:F"

// Ledger mirrors transactions into an external spreadsheet.
type Ledger interface {
	AppendTransaction(ctx context.Context, tx models.Transaction) error
}

// GoogleSheetLedger implements the Ledger interface using the official
// Google Sheets API.
type GoogleSheetLedger struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetLedger builds a Google Sheets backed ledger instance.
func NewGoogleSheetLedger(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetLedger, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetLedger{
		service:       service,
		spreadsheetID: cfg.LedgerSheetID,
		logger:        logger,
	}, nil
}

// AppendTransaction appends one ledger row for the transaction.
func (l *GoogleSheetLedger) AppendTransaction(ctx context.Context, tx models.Transaction) error {
	row := []interface{}{tx.ID, tx.Date, tx.Category, tx.Type, tx.Amount, tx.Description}
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{row}}

	call := l.service.Spreadsheets.Values.Append(l.spreadsheetID, ledgerRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append ledger row for %s: %w", tx.ID, err)
	}

	l.logger.Debug("transaction mirrored to ledger", zap.String("transactionId", tx.ID))
	return nil
}
