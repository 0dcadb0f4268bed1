/*
errors.go - Centralized error types for the ledger domain

ERROR CATEGORIES:
  1. Lookup errors - requested customer/entry has no matching rows
  2. Store errors  - the external row store failed (network/auth/quota)

Store failures are wrapped with %w so callers can unwrap the transport
error while still matching ErrStoreUnavailable.

SEE ALSO:
  - service.go: Uses these errors
  - bot package: maps them to user-facing replies
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is returned when no row matches the requested customer
	// or the requested (customer, amount, date) entry.
	ErrNotFound = errors.New("no matching records")

	// ErrEmptySheet is returned by delete operations when the backing
	// table has no rows at all (not even data under the header).
	ErrEmptySheet = errors.New("no records found in sheet")

	// ErrStoreUnavailable is returned when a row store read or write
	// fails. The underlying cause is wrapped.
	ErrStoreUnavailable = errors.New("row store unavailable")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// NotFoundError reports which customer had no rows.
type NotFoundError struct {
	CustomerID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no records found for customer %s", e.CustomerID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// storeErr wraps a transport failure so errors.Is(err, ErrStoreUnavailable)
// holds while the cause stays reachable via Unwrap.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

// IsNotFound returns true if the error indicates a missing customer or entry.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
