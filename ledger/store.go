/*
store.go - Row store contract

PURPOSE:
  The ledger does not own storage. It speaks to an external, shared,
  persistent table (a spreadsheet in production, SQLite or memory here)
  through this minimal interface.

CONTRACT:
  - Append order is preserved and observable: ReadAll/ReadAllRaw return
    rows in the order they were appended. The positional principal rule
    depends on this.
  - ReplaceAll swaps the entire table in one step. Readers must never
    observe a partially rewritten table; implementations use a single
    transaction (SQLite) or a single locked swap (memory).
  - All operations honor context deadlines. Callers bound each call with
    a 5-10s timeout.

IMPLEMENTATIONS:
  - store/sqlite: persistent, WAL-mode SQLite
  - ledger/store: in-memory, for tests and dev

SEE ALSO:
  - service.go: the only mutator of the store
*/
package ledger

import "context"

// RowStore is the external table holding ledger rows.
type RowStore interface {
	// ReadAll returns every data row (header excluded), in append order.
	ReadAll(ctx context.Context) ([]Row, error)

	// ReadAllRaw returns the raw table including the header row, each row
	// as its stored string cells, in append order. Delete operations work
	// on this form so string-exact matching is preserved (leading zeros,
	// unwritten formats).
	ReadAllRaw(ctx context.Context) ([][]string, error)

	// Append adds one row at the end of the table.
	Append(ctx context.Context, row Row) error

	// ReplaceAll atomically replaces the whole table, header included.
	ReplaceAll(ctx context.Context, rows [][]string) error
}
