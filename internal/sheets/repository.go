// Package sheets is the Google Sheets adapter. The spreadsheet is the
// only durable store the application has; everything read here is raw
// positional cells, typed decoding happens in the ledger package.
package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/ndtien/khovt/internal/config"
)

// Repository defines the spreadsheet operations the services need.
type Repository interface {
	ReadRange(ctx context.Context, sheetRange string) ([][]string, error)
	AppendRows(ctx context.Context, sheetName string, rows [][]string) error
}

// GoogleSheetRepository implements Repository with the official Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Sheets-backed repository using the
// service-account credentials file from the configuration.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsScope)}
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	service, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// ReadRange fetches a rectangular range and flattens every cell to a
// string. Cells the API returns as nil become empty strings, keeping
// positional indices stable for the decoder.
func (r *GoogleSheetRepository) ReadRange(ctx context.Context, sheetRange string) ([][]string, error) {
	if sheetRange == "" {
		return nil, fmt.Errorf("sheetRange must not be empty")
	}

	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", sheetRange, err)
	}

	table := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			if cell == nil {
				cells = append(cells, "")
				continue
			}
			cells = append(cells, fmt.Sprint(cell))
		}
		table = append(table, cells)
	}

	r.logger.Debug("range fetched", zap.String("range", sheetRange), zap.Int("rows", len(table)))
	return table, nil
}

// AppendRows appends the given rows after the last data row of the sheet.
func (r *GoogleSheetRepository) AppendRows(ctx context.Context, sheetName string, rows [][]string) error {
	if sheetName == "" {
		return fmt.Errorf("sheetName must not be empty")
	}
	if len(rows) == 0 {
		return nil
	}

	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}
		values = append(values, cells)
	}

	payload := &sheetsapi.ValueRange{Values: values}
	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheetName, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append %d rows into sheet %s: %w", len(rows), sheetName, err)
	}

	r.logger.Debug("rows appended", zap.String("sheet", sheetName), zap.Int("count", len(rows)))
	return nil
}
