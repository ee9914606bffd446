// Package sheets appends form submissions to a Google Sheets document for
// back-office review. The spreadsheet is the only durable trace a submission
// leaves; the service itself keeps no state.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/tingnect/event-api/internal/config"
	"github.com/tingnect/event-api/internal/form"
)

const spreadsheetScope = "https://www.googleapis.com/auth/spreadsheets"

// Recorder appends rows to named tabs of one spreadsheet, creating tabs and
// header rows on first use. A Recorder with no configured credentials is
// disabled and every Append is skipped by the pipeline.
type Recorder struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// New builds a Recorder authenticated as the configured service account.
// When opts are given they replace the service-account transport entirely;
// tests use this with option.WithEndpoint and option.WithoutAuthentication.
func New(ctx context.Context, cfg config.SheetsConfig, opts ...option.ClientOption) (*Recorder, error) {
	if !cfg.Enabled() {
		return &Recorder{}, nil
	}

	if len(opts) == 0 {
		jwtCfg := &jwt.Config{
			Email: cfg.ServiceAccountEmail,
			// Keys arrive through env vars with literal \n sequences.
			PrivateKey: []byte(strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")),
			Scopes:     []string{spreadsheetScope},
			TokenURL:   google.JWTTokenURL,
		}
		opts = []option.ClientOption{option.WithHTTPClient(jwtCfg.Client(ctx))}
	}

	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Recorder{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

func (r *Recorder) Enabled() bool {
	return r.svc != nil
}

// Append writes one row to the tab named by row.Sheet. The tab is created if
// absent, and the header row is written first if the tab has no data yet.
func (r *Recorder) Append(ctx context.Context, row form.SheetRow) error {
	if err := r.ensureSheet(ctx, row.Sheet); err != nil {
		return err
	}

	empty, err := r.sheetEmpty(ctx, row.Sheet)
	if err != nil {
		return err
	}
	if empty {
		if err := r.writeHeader(ctx, row.Sheet, row.Header); err != nil {
			return err
		}
	}

	values := &sheetsapi.ValueRange{Values: [][]interface{}{asRow(row.Values)}}
	_, err = r.svc.Spreadsheets.Values.
		Append(r.spreadsheetID, row.Sheet+"!A1", values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row to %s: %w", row.Sheet, err)
	}
	return nil
}

// ensureSheet creates the named tab if the spreadsheet does not have it.
func (r *Recorder) ensureSheet(ctx context.Context, title string) error {
	doc, err := r.svc.Spreadsheets.Get(r.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("load spreadsheet: %w", err)
	}
	for _, sheet := range doc.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return nil
		}
	}

	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{Title: title},
			},
		}},
	}
	if _, err := r.svc.Spreadsheets.BatchUpdate(r.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("create sheet %s: %w", title, err)
	}
	return nil
}

// sheetEmpty reports whether the tab has no data at all, which is when the
// header row still needs to be written.
func (r *Recorder) sheetEmpty(ctx context.Context, title string) (bool, error) {
	resp, err := r.svc.Spreadsheets.Values.
		Get(r.spreadsheetID, title+"!A1:A1").
		Context(ctx).
		Do()
	if err != nil {
		return false, fmt.Errorf("read sheet %s: %w", title, err)
	}
	return len(resp.Values) == 0, nil
}

func (r *Recorder) writeHeader(ctx context.Context, title string, header []string) error {
	values := &sheetsapi.ValueRange{Values: [][]interface{}{asRow(header)}}
	_, err := r.svc.Spreadsheets.Values.
		Update(r.spreadsheetID, title+"!A1", values).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write header to %s: %w", title, err)
	}
	return nil
}

func asRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
