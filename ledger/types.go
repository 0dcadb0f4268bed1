/*
Package ledger provides the core khata (credit book) domain: persisted
rows, the row-store contract, and balance reconciliation.

KEY CONCEPTS IN THIS FILE (types.go):
  - Row: one persisted ledger record (customer, amount, entry date, audit time)
  - CustomerSummary: derived balance view for one customer
  - Record conversion: rows travel to/from the row store as plain string
    records under a fixed header

POSITIONAL CONVENTION:
  Rows for a customer, taken in store (append) order, are interpreted as:
    row 0      -> principal: the amount given out
    rows 1..N  -> payments: amounts repaid
  There is no explicit kind column; store order is load-bearing. Storage
  backends must be append-only and must never reorder rows.

AMOUNT SEMANTICS:
  Amounts are whole-rupee integers. Sums use int64 so long payment
  histories cannot truncate. Customer IDs are opaque strings compared
  after trimming only - "007" and "7" are different customers.

SEE ALSO:
  - reconcile.go: Summarize, the positional balance rule
  - store.go: RowStore interface
  - service.go: Save/Delete operations on top of the store
*/
package ledger

import (
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// ROW - One persisted ledger record
// =============================================================================

// EntryDateLayout is the day-month-year form used for entry dates,
// e.g. "15-01-2026".
const EntryDateLayout = "02-01-2006"

// RecordedAtLayout is the wall-clock audit timestamp format stored in the
// fourth column.
const RecordedAtLayout = "02-01-2006 15:04:05"

// Row is a single ledger record. Rows are created by Save, never updated
// in place, and removed only by the delete operations.
type Row struct {
	CustomerID string
	Amount     int64
	EntryDate  string // EntryDateLayout
	RecordedAt time.Time
}

// Header returns the canonical header record of the backing table.
func Header() []string {
	return []string{"customer_id", "amount", "date", "recorded_at"}
}

// Record converts the row to the 4-column string form used by the store.
func (r Row) Record() []string {
	return []string{
		r.CustomerID,
		strconv.FormatInt(r.Amount, 10),
		r.EntryDate,
		r.RecordedAt.Format(RecordedAtLayout),
	}
}

// RowFromRecord parses a raw store record into a Row. Short records are
// padded with zero values; a non-numeric amount cell reads as zero rather
// than failing the whole table (the external sheet is shared and may hold
// rows this service did not write).
func RowFromRecord(rec []string) Row {
	var row Row
	if len(rec) > 0 {
		row.CustomerID = rec[0]
	}
	if len(rec) > 1 {
		if n, err := strconv.ParseInt(strings.TrimSpace(rec[1]), 10, 64); err == nil {
			row.Amount = n
		}
	}
	if len(rec) > 2 {
		row.EntryDate = rec[2]
	}
	if len(rec) > 3 {
		if t, err := time.Parse(RecordedAtLayout, rec[3]); err == nil {
			row.RecordedAt = t
		}
	}
	return row
}

// =============================================================================
// CUSTOMER SUMMARY - Derived, never persisted
// =============================================================================

// CustomerSummary is the reconciled view of one customer's rows.
type CustomerSummary struct {
	CustomerID string
	TotalGiven int64 // principal: amount of the first row
	TotalPaid  int64 // sum of all subsequent rows
	Balance    int64 // TotalGiven - TotalPaid; may be negative
	Payments   []Row // rows 1..N in store order
}
