package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(id string, amount int64, date string) Row {
	return Row{CustomerID: id, Amount: amount, EntryDate: date}
}

// =============================================================================
// POSITIONAL RULE
// =============================================================================

func TestSummarize_FirstRowIsPrincipal(t *testing.T) {
	rows := []Row{
		row("132", 500, "10-01-2026"),
		row("132", 300, "15-01-2026"),
		row("132", 100, "20-01-2026"),
	}

	s, err := Summarize(rows, "132")
	require.NoError(t, err)

	assert.Equal(t, int64(500), s.TotalGiven)
	assert.Equal(t, int64(400), s.TotalPaid)
	assert.Equal(t, int64(100), s.Balance)
	require.Len(t, s.Payments, 2)
	assert.Equal(t, "15-01-2026", s.Payments[0].EntryDate)
	assert.Equal(t, "20-01-2026", s.Payments[1].EntryDate)
}

func TestSummarize_SingleRow_NoPayments(t *testing.T) {
	s, err := Summarize([]Row{row("132", 500, "10-01-2026")}, "132")
	require.NoError(t, err)

	assert.Equal(t, int64(500), s.TotalGiven)
	assert.Equal(t, int64(0), s.TotalPaid)
	assert.Equal(t, int64(500), s.Balance)
	assert.Empty(t, s.Payments)
}

func TestSummarize_BalanceMayGoNegative(t *testing.T) {
	// Overpayment is not clamped.
	rows := []Row{
		row("132", 500, "10-01-2026"),
		row("132", 700, "15-01-2026"),
	}

	s, err := Summarize(rows, "132")
	require.NoError(t, err)
	assert.Equal(t, int64(-200), s.Balance)
}

// =============================================================================
// MATCHING
// =============================================================================

func TestSummarize_TrimOnlyMatching(t *testing.T) {
	rows := []Row{
		row("  132  ", 500, "10-01-2026"),
		row("1320", 999, "10-01-2026"),
	}

	s, err := Summarize(rows, " 132 ")
	require.NoError(t, err)
	assert.Equal(t, int64(500), s.TotalGiven)
	assert.Empty(t, s.Payments, "1320 must not match 132")
}

func TestSummarize_LeadingZerosAreDistinct(t *testing.T) {
	rows := []Row{row("7", 500, "10-01-2026")}

	_, err := Summarize(rows, "007")
	assert.True(t, IsNotFound(err), "007 must not match 7")
}

func TestSummarize_NotFound(t *testing.T) {
	_, err := Summarize(nil, "132")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var nferr *NotFoundError
	require.ErrorAs(t, err, &nferr)
	assert.Equal(t, "132", nferr.CustomerID)
}

func TestSummarize_IgnoresOtherCustomers(t *testing.T) {
	rows := []Row{
		row("7", 1000, "01-01-2026"),
		row("132", 500, "10-01-2026"),
		row("7", 200, "12-01-2026"),
		row("132", 300, "15-01-2026"),
	}

	s, err := Summarize(rows, "132")
	require.NoError(t, err)
	assert.Equal(t, int64(500), s.TotalGiven)
	assert.Equal(t, int64(300), s.TotalPaid)
}

// =============================================================================
// AUDIT TIMESTAMP TIEBREAK
// =============================================================================

func TestSummarize_SortsByRecordedAtWhenFullyPresent(t *testing.T) {
	// The table was rebuilt out of order, but every row carries its audit
	// timestamp: the earliest recorded row becomes the principal.
	base := time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)
	rows := []Row{
		{CustomerID: "132", Amount: 300, EntryDate: "15-01-2026", RecordedAt: base.Add(48 * time.Hour)},
		{CustomerID: "132", Amount: 500, EntryDate: "10-01-2026", RecordedAt: base},
	}

	s, err := Summarize(rows, "132")
	require.NoError(t, err)
	assert.Equal(t, int64(500), s.TotalGiven)
	assert.Equal(t, int64(300), s.TotalPaid)
}

func TestSummarize_KeepsStoreOrderWhenTimestampsPartial(t *testing.T) {
	// A row without a timestamp (written by another tool) disables the
	// sort; store order governs.
	rows := []Row{
		{CustomerID: "132", Amount: 300, EntryDate: "15-01-2026"},
		{CustomerID: "132", Amount: 500, EntryDate: "10-01-2026",
			RecordedAt: time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)},
	}

	s, err := Summarize(rows, "132")
	require.NoError(t, err)
	assert.Equal(t, int64(300), s.TotalGiven, "first stored row stays principal")
}
