// services/memory.go
package services

import (
	"fmt"
	"sync"
)

// MemorySpreadsheet is an in-process Spreadsheet used when no Google
// credentials are configured (local development) and by the test suite.
// Nothing is persisted across restarts.
type MemorySpreadsheet struct {
	mu   sync.Mutex
	tabs map[string]*memoryWorksheet
}

// NewMemorySpreadsheet creates a spreadsheet seeded with the given tabs.
// Each tab's rows normally start with its header row.
func NewMemorySpreadsheet(tabs map[string][][]string) *MemorySpreadsheet {
	s := &MemorySpreadsheet{tabs: make(map[string]*memoryWorksheet)}
	for name, rows := range tabs {
		ws := &memoryWorksheet{mu: &s.mu}
		for _, row := range rows {
			ws.rows = append(ws.rows, append([]string(nil), row...))
		}
		s.tabs[name] = ws
	}
	return s
}

func (s *MemorySpreadsheet) Worksheet(name string) (Worksheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.tabs[name]
	if !ok {
		return nil, fmt.Errorf("worksheet not found: %s", name)
	}
	return ws, nil
}

type memoryWorksheet struct {
	mu   *sync.Mutex
	rows [][]string
}

func (w *memoryWorksheet) Rows() ([][]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([][]string, len(w.rows))
	for i, row := range w.rows {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

func (w *memoryWorksheet) AppendRow(row []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rows = append(w.rows, append([]string(nil), row...))
	return nil
}

func (w *memoryWorksheet) UpdateCell(row, col int, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if row < 1 || row > len(w.rows) {
		return fmt.Errorf("row %d out of range", row)
	}
	r := w.rows[row-1]
	for len(r) < col {
		r = append(r, "")
	}
	r[col-1] = value
	w.rows[row-1] = r
	return nil
}

func (w *memoryWorksheet) Clear() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rows = nil
	return nil
}

func (w *memoryWorksheet) Update(rows [][]string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, row := range rows {
		if i < len(w.rows) {
			w.rows[i] = append([]string(nil), row...)
		} else {
			w.rows = append(w.rows, append([]string(nil), row...))
		}
	}
	return nil
}
