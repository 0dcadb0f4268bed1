// Package store provides RowStore implementations.
package store

import (
	"context"
	"sync"

	"github.com/khatawala/khatabot/ledger"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory is an in-memory RowStore. It holds the raw string table exactly
// as an external sheet would, data rows under an implicit header, so
// string-exact delete matching behaves the same as in production.
type Memory struct {
	mu      sync.RWMutex
	records [][]string // data rows only, append order
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) ReadAll(_ context.Context) ([]ledger.Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := make([]ledger.Row, len(m.records))
	for i, rec := range m.records {
		rows[i] = ledger.RowFromRecord(rec)
	}
	return rows, nil
}

func (m *Memory) ReadAllRaw(_ context.Context) ([][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	raw := make([][]string, 0, len(m.records)+1)
	raw = append(raw, ledger.Header())
	for _, rec := range m.records {
		raw = append(raw, append([]string(nil), rec...))
	}
	return raw, nil
}

func (m *Memory) Append(_ context.Context, row ledger.Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records, row.Record())
	return nil
}

// ReplaceAll swaps the whole table under the write lock, so readers see
// either the old table or the new one, never a mix.
func (m *Memory) ReplaceAll(_ context.Context, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := make([][]string, 0, len(rows))
	for i, rec := range rows {
		if i == 0 {
			continue // header
		}
		records = append(records, append([]string(nil), rec...))
	}
	m.records = records
	return nil
}

// Len returns the number of data rows. Test helper.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
