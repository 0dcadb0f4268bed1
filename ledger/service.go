/*
service.go - Ledger operations over the row store

PURPOSE:
  The single mutator of the row store. Save appends; DeleteOne and
  DeleteAll rewrite the table after filtering; Summary reads and
  reconciles.

CONCURRENCY:
  The external store exposes no transaction primitive, and delete is a
  read-all -> filter -> rewrite sequence. A concurrent Save interleaved
  between the read and the rewrite would be silently dropped. All
  mutating operations therefore serialize behind one mutex. Reads do not
  take the mutex: the store is shared with external writers anyway, so a
  read can never be more than a snapshot.

TIMEOUTS:
  Every store call is bounded; a wedged store fails the command instead
  of hanging the webhook.

SEE ALSO:
  - store.go: RowStore contract
  - reconcile.go: Summarize
*/
package ledger

import (
	"context"
	"strings"
	"sync"
	"time"
)

// storeCallTimeout bounds each outbound call to the row store.
const storeCallTimeout = 10 * time.Second

// Service executes ledger operations against a RowStore, serializing
// mutations.
type Service struct {
	store RowStore

	mu sync.Mutex // guards Save/DeleteOne/DeleteAll

	// Now is the clock used for audit timestamps. Overridable in tests.
	Now func() time.Time
}

// NewService creates a Service on top of the given store.
func NewService(store RowStore) *Service {
	return &Service{store: store, Now: time.Now}
}

// =============================================================================
// SAVE
// =============================================================================

// Save appends one validated row. The caller (command parser) has already
// checked amount > 0 and the entry date format; Save records the current
// wall-clock time as the audit timestamp and returns the stored row.
func (s *Service) Save(ctx context.Context, customerID string, amount int64, entryDate string) (Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := Row{
		CustomerID: strings.TrimSpace(customerID),
		Amount:     amount,
		EntryDate:  entryDate,
		RecordedAt: s.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, storeCallTimeout)
	defer cancel()
	if err := s.store.Append(ctx, row); err != nil {
		return Row{}, storeErr("append row", err)
	}
	return row, nil
}

// =============================================================================
// SUMMARY
// =============================================================================

// Summary reads all rows and reconciles those belonging to customerID.
// Returns *NotFoundError when the customer has no rows.
func (s *Service) Summary(ctx context.Context, customerID string) (CustomerSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, storeCallTimeout)
	defer cancel()

	rows, err := s.store.ReadAll(ctx)
	if err != nil {
		return CustomerSummary{}, storeErr("read rows", err)
	}
	return Summarize(rows, customerID)
}

// =============================================================================
// DELETE
// =============================================================================

// DeleteAll removes every row whose customer cell equals the trimmed
// target exactly, and returns the number removed (possibly zero). The
// table is rewritten only when at least one row matched.
func (s *Service) DeleteAll(ctx context.Context, customerID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := strings.TrimSpace(customerID)

	ctx, cancel := context.WithTimeout(ctx, storeCallTimeout)
	defer cancel()

	raw, err := s.store.ReadAllRaw(ctx)
	if err != nil {
		return 0, storeErr("read rows", err)
	}
	if len(raw) == 0 {
		return 0, ErrEmptySheet
	}

	kept := [][]string{raw[0]} // header survives
	deleted := 0
	for _, rec := range raw[1:] {
		if len(rec) > 0 && rec[0] == target {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}

	if deleted == 0 {
		return 0, nil
	}
	if err := s.store.ReplaceAll(ctx, kept); err != nil {
		return 0, storeErr("rewrite rows", err)
	}
	return deleted, nil
}

// DeleteOne removes the first row (in store order) whose customer, amount
// and date cells all equal the given strings exactly. Matching is on the
// raw stored strings, so "0300" does not match "300". At most one row is
// removed; a second identical call returns ErrNotFound.
func (s *Service) DeleteOne(ctx context.Context, customerID, amount, entryDate string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, storeCallTimeout)
	defer cancel()

	raw, err := s.store.ReadAllRaw(ctx)
	if err != nil {
		return storeErr("read rows", err)
	}
	if len(raw) == 0 {
		return ErrEmptySheet
	}

	kept := [][]string{raw[0]}
	deleted := false
	for _, rec := range raw[1:] {
		if !deleted && len(rec) >= 3 &&
			rec[0] == customerID && rec[1] == amount && rec[2] == entryDate {
			deleted = true
			continue
		}
		kept = append(kept, rec)
	}

	if !deleted {
		return ErrNotFound
	}
	if err := s.store.ReplaceAll(ctx, kept); err != nil {
		return storeErr("rewrite rows", err)
	}
	return nil
}
