// services/spreadsheet.go
package services

import "errors"

// Sentinel errors of the record store. Handlers map ErrNotFound to 404 and
// ErrStoreUnavailable to 500; the two are never conflated in return values.
var (
	ErrNotFound         = errors.New("no matching record found")
	ErrStoreUnavailable = errors.New("sheet store unavailable")
)

// Worksheet is one named tab of the backing spreadsheet. Rows are 1-indexed
// the way the sheet UI counts them, header row included.
type Worksheet interface {
	// Rows returns every row of the worksheet, header first. Short rows are
	// allowed; missing trailing cells read as empty strings.
	Rows() ([][]string, error)

	// AppendRow adds one row after the last non-empty row.
	AppendRow(row []string) error

	// UpdateCell overwrites a single cell. row and col are 1-indexed.
	UpdateCell(row, col int, value string) error

	// Clear removes all values, header included.
	Clear() error

	// Update bulk-writes rows starting at A1.
	Update(rows [][]string) error
}

// Spreadsheet is the backing document: a set of named worksheets.
type Spreadsheet interface {
	Worksheet(name string) (Worksheet, error)
}

// Opener establishes the session with the backing store. It is called lazily
// and re-called after failures; a successful result is cached by the client.
type Opener func() (Spreadsheet, error)
