/*
Package sqlite provides a SQLite-backed implementation of ledger.RowStore.

PURPOSE:
  Persistent row storage for deployments that do not sit on an external
  spreadsheet. The table mirrors the sheet shape: four string-valued
  cells per row under a fixed header, with an explicit position column
  carrying append order.

STORE ORDER:
  Append order is load-bearing for reconciliation (first row for a
  customer is the principal). Every read orders by position; every append
  takes the next position under the write lock.

CELL FIDELITY:
  amount, entry_date and recorded_at are stored as TEXT exactly as
  written. Delete matching is string-exact, so "0300" and "300" must stay
  distinct, and rows rewritten via ReplaceAll must round-trip untouched.

ATOMIC REWRITE:
  ReplaceAll runs DELETE + re-INSERT inside one SQL transaction, so a
  concurrent reader sees the old table or the new one, never a mix.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/khata.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - ledger/store.go: interface definition
  - ledger/store/memory.go: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/khatawala/khatabot/ledger"
)

// Store implements ledger.RowStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive across calls
	// and matches SQLite's single-writer model.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS ledger_rows (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		customer_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		entry_date TEXT NOT NULL,
		recorded_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_ledger_rows_position
		ON ledger_rows(position);
	CREATE INDEX IF NOT EXISTS idx_ledger_rows_customer
		ON ledger_rows(customer_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ROWSTORE IMPLEMENTATION
// =============================================================================

// ReadAll returns every data row in append order.
func (s *Store) ReadAll(ctx context.Context) ([]ledger.Row, error) {
	raw, err := s.readRecords(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]ledger.Row, len(raw))
	for i, rec := range raw {
		rows[i] = ledger.RowFromRecord(rec)
	}
	return rows, nil
}

// ReadAllRaw returns the header plus every data row's stored cells.
func (s *Store) ReadAllRaw(ctx context.Context) ([][]string, error) {
	raw, err := s.readRecords(ctx)
	if err != nil {
		return nil, err
	}
	return append([][]string{ledger.Header()}, raw...), nil
}

func (s *Store) readRecords(ctx context.Context) ([][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT customer_id, amount, entry_date, recorded_at
		FROM ledger_rows
		ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	var records [][]string
	for rows.Next() {
		rec := make([]string, 4)
		if err := rows.Scan(&rec[0], &rec[1], &rec[2], &rec[3]); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Append adds one row at the end of the table.
func (s *Store) Append(ctx context.Context, row ledger.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := row.Record()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ledger_rows (id, position, customer_id, amount, entry_date, recorded_at)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM ledger_rows), ?, ?, ?, ?)`,
		uuid.New().String(), rec[0], rec[1], rec[2], rec[3])
	if err != nil {
		return fmt.Errorf("insert row: %w", err)
	}
	return nil
}

// ReplaceAll swaps the whole table in one transaction. rows includes the
// header, which is dropped; positions are reassigned in the given order.
func (s *Store) ReplaceAll(ctx context.Context, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rewrite: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_rows`); err != nil {
		return fmt.Errorf("clear rows: %w", err)
	}

	position := 0
	for i, rec := range rows {
		if i == 0 {
			continue // header
		}
		cells := make([]string, 4)
		copy(cells, rec)
		position++
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO ledger_rows (id, position, customer_id, amount, entry_date, recorded_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), position, cells[0], cells[1], cells[2], cells[3]); err != nil {
			return fmt.Errorf("rewrite row %d: %w", position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rewrite: %w", err)
	}
	return nil
}
