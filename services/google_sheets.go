// services/google_sheets.go
package services

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// googleSpreadsheet adapts the Sheets v4 API to the Spreadsheet interface.
// Authentication uses a service-account credentials file, same as the
// dashboard tooling.
type googleSpreadsheet struct {
	svc           *sheets.Service
	spreadsheetID string
}

// OpenGoogleSheet opens the spreadsheet identified by spreadsheetID using the
// given service-account credentials file.
func OpenGoogleSheet(ctx context.Context, credentialsFile, spreadsheetID string) (Spreadsheet, error) {
	if _, err := os.Stat(credentialsFile); err != nil {
		return nil, fmt.Errorf("credentials file not found: %s", credentialsFile)
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	// Probe the document so a bad ID or missing share fails here, not on the
	// first request.
	if _, err := svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet %s: %w", spreadsheetID, err)
	}

	return &googleSpreadsheet{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (g *googleSpreadsheet) Worksheet(name string) (Worksheet, error) {
	return &googleWorksheet{svc: g.svc, spreadsheetID: g.spreadsheetID, name: name}, nil
}

type googleWorksheet struct {
	svc           *sheets.Service
	spreadsheetID string
	name          string
}

func (w *googleWorksheet) Rows() ([][]string, error) {
	resp, err := w.svc.Spreadsheets.Values.Get(w.spreadsheetID, w.name).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %s: %w", w.name, err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (w *googleWorksheet) AppendRow(row []string) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{toInterfaceRow(row)}}
	_, err := w.svc.Spreadsheets.Values.Append(w.spreadsheetID, w.name, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to worksheet %s: %w", w.name, err)
	}
	return nil
}

func (w *googleWorksheet) UpdateCell(row, col int, value string) error {
	cellRange := fmt.Sprintf("%s!%s%d", w.name, columnLetter(col), row)
	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := w.svc.Spreadsheets.Values.Update(w.spreadsheetID, cellRange, vr).
		ValueInputOption("USER_ENTERED").
		Do()
	if err != nil {
		return fmt.Errorf("failed to update cell %s: %w", cellRange, err)
	}
	return nil
}

func (w *googleWorksheet) Clear() error {
	_, err := w.svc.Spreadsheets.Values.Clear(w.spreadsheetID, w.name, &sheets.ClearValuesRequest{}).Do()
	if err != nil {
		return fmt.Errorf("failed to clear worksheet %s: %w", w.name, err)
	}
	return nil
}

func (w *googleWorksheet) Update(rows [][]string) error {
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		values = append(values, toInterfaceRow(row))
	}
	vr := &sheets.ValueRange{Values: values}
	_, err := w.svc.Spreadsheets.Values.Update(w.spreadsheetID, w.name+"!A1", vr).
		ValueInputOption("USER_ENTERED").
		Do()
	if err != nil {
		return fmt.Errorf("failed to rewrite worksheet %s: %w", w.name, err)
	}
	return nil
}

func toInterfaceRow(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, cell := range row {
		out[i] = cell
	}
	return out
}

// columnLetter converts a 1-indexed column number to its A1 letter. The two
// worksheets here never go past column Z.
func columnLetter(col int) string {
	letters := ""
	for col > 0 {
		col--
		letters = string(rune('A'+col%26)) + letters
		col /= 26
	}
	return letters
}
