// Package sheets implements the Google Sheets row-append sink.
package sheets

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/sink"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/config"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const sinkName = "sheets"

// notProvided fills optional columns so downstream spreadsheet formulas
// never see blank cells.
const notProvided = "N/A"

// Sink appends quote rows to a configured spreadsheet range.
type Sink struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
}

// New builds a Sink from base64-encoded service account credentials.
func New(ctx context.Context, cfg config.SheetsConfig) (*Sink, error) {
	credentials, err := base64.StdEncoding.DecodeString(cfg.GetSheetsCredentialsBase64())
	if err != nil {
		return nil, fmt.Errorf("decode sheets credentials: %w", err)
	}

	service, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentials),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("init sheets client: %w", err)
	}

	return &Sink{
		service:       service,
		spreadsheetID: cfg.GetSpreadsheetID(),
		sheetName:     cfg.GetSheetName(),
	}, nil
}

// Name identifies the sink in persistence outcomes.
func (s *Sink) Name() string { return sinkName }

// Write appends one row. The column order (A:M) is a contract with the
// downstream spreadsheet consumers and must not change:
// timestamp, name, email, phone, company, product, quantity, unit,
// message, location, required_date, notes, status.
func (s *Sink) Write(ctx context.Context, record quote.Record) (sink.WriteResult, error) {
	row := Row(record)

	// Sheet names with spaces must be quoted in A1 notation.
	_, err := s.service.Spreadsheets.Values.
		Append(s.spreadsheetID, "'"+s.sheetName+"'!A:M", &sheets.ValueRange{
			Values: [][]interface{}{row},
		}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return sink.WriteResult{}, fmt.Errorf("append quote row: %w", err)
	}

	return sink.WriteResult{}, nil
}

// Row converts a record into the frozen spreadsheet column layout.
func Row(record quote.Record) []interface{} {
	return []interface{}{
		record.DisplayTime,
		record.Name,
		record.Email,
		record.Phone,
		record.Company,
		record.Product,
		orNA(record.Quantity),
		orNA(record.Unit),
		orNA(record.Message),
		orNA(record.Location),
		orNA(record.RequiredDate),
		orNA(record.Notes),
		displayStatus(record.Status),
	}
}

func orNA(value string) string {
	if value == "" {
		return notProvided
	}
	return value
}

// displayStatus renders the lifecycle state the way the sheet has always
// shown it ("Pending", not "pending").
func displayStatus(status quote.Status) string {
	s := string(status)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var _ sink.Sink = (*Sink)(nil)
