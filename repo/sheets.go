package repo

import (
	"SurveyBot/catalog"
	"SurveyBot/model"
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsConfig locates the spreadsheet the survey rows are appended to.
type SheetsConfig struct {
	SpreadsheetID   string
	Range           string // sheet name or A1 range, e.g. "Sheet1"
	CredentialsFile string
	CredentialsJSON []byte
}

// SheetsSink appends finished survey rows to a Google Sheets spreadsheet.
type SheetsSink struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
	appendRange   string
	headerRange   string
	columns       []model.Column
	header        []any
	logger        zerolog.Logger

	mu          sync.Mutex
	headerReady bool
}

// NewSheetsSink builds a sink writing rows in the column order of cat.
func NewSheetsSink(ctx context.Context, cfg SheetsConfig, cat *catalog.Catalog, logger zerolog.Logger, opts ...option.ClientOption) (*SheetsSink, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("sheets: spreadsheet id not set")
	}
	if cfg.Range == "" {
		cfg.Range = "Sheet1"
	}

	base := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	switch {
	case cfg.CredentialsFile != "":
		base = append(base, option.WithCredentialsFile(cfg.CredentialsFile))
	case len(cfg.CredentialsJSON) > 0:
		base = append(base, option.WithCredentialsJSON(cfg.CredentialsJSON))
	}

	srv, err := sheets.NewService(ctx, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}

	return &SheetsSink{
		values:        srv.Spreadsheets.Values,
		spreadsheetID: cfg.SpreadsheetID,
		appendRange:   cfg.Range,
		headerRange:   headerRangeFor(cfg.Range),
		columns:       cat.Columns(),
		header:        cat.Header(),
		logger:        logger.With().Str("component", "sheets").Logger(),
	}, nil
}

// a1Range matches a cell range without a sheet name: "B2", "A1:K", "A:K",
// "2:5". Sheet names such as "Sheet1" have more than three letters.
var a1Range = regexp.MustCompile(`^(\$?[A-Za-z]{1,3}\$?[0-9]*|\$?[0-9]+)(:(\$?[A-Za-z]{1,3}\$?[0-9]*|\$?[0-9]+))?$`)

// headerRangeFor returns the first cell of the sheet appendRange targets. A
// range without a sheet name refers to the first sheet.
func headerRangeFor(appendRange string) string {
	sheetName, _, found := strings.Cut(appendRange, "!")
	if !found && a1Range.MatchString(appendRange) {
		return "A1:A1"
	}
	return sheetName + "!A1:A1"
}

// Export appends the record as one row. The first export of the process
// writes the header row first when the sheet is still empty.
func (s *SheetsSink) Export(ctx context.Context, record *model.ResponseRecord) error {
	if err := s.ensureHeader(ctx); err != nil {
		return err
	}
	if err := s.appendRow(ctx, record.Row(s.columns)); err != nil {
		return fmt.Errorf("%w: error appending row for user %d: %w", model.ErrSinkUnavailable, record.UserID, err)
	}
	return nil
}

func (s *SheetsSink) ensureHeader(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.headerReady {
		return nil
	}

	resp, err := s.values.Get(s.spreadsheetID, s.headerRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: error reading sheet: %w", model.ErrSinkUnavailable, err)
	}
	if len(resp.Values) == 0 {
		if err := s.appendRow(ctx, s.header); err != nil {
			return fmt.Errorf("%w: error writing header: %w", model.ErrSinkUnavailable, err)
		}
		s.logger.Info().Str("spreadsheet", s.spreadsheetID).Msg("header row written")
	}
	s.headerReady = true
	return nil
}

func (s *SheetsSink) appendRow(ctx context.Context, row []any) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := s.values.Append(s.spreadsheetID, s.appendRange, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}
