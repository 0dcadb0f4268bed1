/*
reconcile.go - Balance reconciliation

PURPOSE:
  Reduces the unordered pile of rows the store hands back into one
  CustomerSummary, applying the positional rule: first row is the
  principal, every later row is a payment.

ORDERING:
  Store order is append order and is normally trusted as-is. When every
  matching row carries a recorded_at audit timestamp, rows are
  stable-sorted ascending by it first - a tiebreak for tables that were
  rebuilt by hand in the external sheet. The sort is stable so rows with
  equal timestamps keep their store order.

SEE ALSO:
  - types.go: Row, CustomerSummary
  - service.go: Summary, the store-reading caller
*/
package ledger

import (
	"sort"
	"strings"
)

// Summarize filters rows by trimmed-exact customer ID and reduces them to
// a CustomerSummary. Returns *NotFoundError when no row matches.
//
// Matching is string equality after trimming both sides. No numeric
// normalization: "007" never matches "7".
func Summarize(rows []Row, customerID string) (CustomerSummary, error) {
	target := strings.TrimSpace(customerID)

	var matched []Row
	for _, r := range rows {
		if strings.TrimSpace(r.CustomerID) == target {
			matched = append(matched, r)
		}
	}
	if len(matched) == 0 {
		return CustomerSummary{}, &NotFoundError{CustomerID: target}
	}

	if allRecorded(matched) {
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].RecordedAt.Before(matched[j].RecordedAt)
		})
	}

	summary := CustomerSummary{
		CustomerID: target,
		TotalGiven: matched[0].Amount,
	}
	for _, p := range matched[1:] {
		summary.TotalPaid += p.Amount
		summary.Payments = append(summary.Payments, p)
	}
	summary.Balance = summary.TotalGiven - summary.TotalPaid
	return summary, nil
}

// allRecorded reports whether every row has an audit timestamp. Rows
// written by other tools may have an empty fourth cell; a partial set of
// timestamps cannot produce a total order, so sorting is skipped.
func allRecorded(rows []Row) bool {
	for _, r := range rows {
		if r.RecordedAt.IsZero() {
			return false
		}
	}
	return true
}
