package ledger

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AnnotatedEntry is a ledger entry carrying the customer's cumulative
// outstanding balance as of (and including) that entry.
type AnnotatedEntry struct {
	Entry
	Outstanding decimal.Decimal
}

// BalanceCalculator reconstructs a customer's running balance from an
// unordered snapshot of that customer's entries. No stored running total
// exists; the walk is the source of truth.
//
// The snapshot is sorted once and every entry's outstanding value is memoized
// on construction, so answering "outstanding as of entry X" is O(1) per row.
// Recomputing from the same snapshot always yields the same values.
type BalanceCalculator struct {
	entries     []Entry
	outstanding map[uuid.UUID]decimal.Decimal
	final       decimal.Decimal
	log         *zap.Logger
}

// NewBalanceCalculator builds a calculator over a snapshot of one customer's
// entries. The slice is copied; callers may keep mutating theirs.
func NewBalanceCalculator(entries []Entry, log *zap.Logger) *BalanceCalculator {
	if log == nil {
		log = zap.NewNop()
	}

	snapshot := make([]Entry, len(entries))
	copy(snapshot, entries)
	SortChronological(snapshot)

	c := &BalanceCalculator{
		entries:     snapshot,
		outstanding: make(map[uuid.UUID]decimal.Decimal, len(snapshot)),
		log:         log,
	}
	c.walk()
	return c
}

// walk computes the running balance over the sorted snapshot. Each step is
// rounded to 2 decimal places so drift over many small amounts cannot
// accumulate past the displayed precision.
func (c *BalanceCalculator) walk() {
	running := decimal.Zero
	for i := range c.entries {
		e := &c.entries[i]
		if e.TransactionDate.IsZero() {
			// One bad row never aborts the whole computation.
			c.log.Warn("ledger entry has no transaction date, excluded from running balance",
				zap.String("entry_id", e.ID.String()),
				zap.String("customer_id", e.CustomerID.String()),
			)
			c.outstanding[e.ID] = running
			continue
		}
		running = running.Add(e.SignedAmount()).Round(2)
		c.outstanding[e.ID] = running
	}
	c.final = running
}

// Annotated returns the snapshot in canonical chronological order with each
// entry's outstanding balance filled in.
func (c *BalanceCalculator) Annotated() []AnnotatedEntry {
	out := make([]AnnotatedEntry, len(c.entries))
	for i, e := range c.entries {
		out[i] = AnnotatedEntry{Entry: e, Outstanding: c.outstanding[e.ID]}
	}
	return out
}

// OutstandingFor returns the memoized outstanding balance as of the entry
// with the given ID. The second result is false when the entry is not in the
// snapshot.
func (c *BalanceCalculator) OutstandingFor(id uuid.UUID) (decimal.Decimal, bool) {
	v, ok := c.outstanding[id]
	return v, ok
}

// FinalBalance returns the outstanding balance after the last chronological
// entry. It equals sum of sales minus sum of payments over the snapshot.
func (c *BalanceCalculator) FinalBalance() decimal.Decimal {
	return c.final
}

// SortChronological sorts entries into the canonical chronological order:
// transaction date, then creation timestamp, then the store-assigned sequence
// for entries created within the same timestamp granularity.
func SortChronological(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return ChronologicalLess(&entries[i], &entries[j])
	})
}

// ChronologicalLess reports whether a precedes b in canonical order
func ChronologicalLess(a, b *Entry) bool {
	if !a.TransactionDate.Equal(b.TransactionDate) {
		return a.TransactionDate.Before(b.TransactionDate)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.Seq < b.Seq
}
