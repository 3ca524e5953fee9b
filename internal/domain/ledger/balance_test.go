package ledger

import (
	"testing"
	"time"

	"github.com/distribev/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(customerID uuid.UUID, txType TransactionType, date time.Time, createdAt time.Time, seq int64, amount string) Entry {
	return Entry{
		BaseEntity: shared.BaseEntity{
			ID:        uuid.New(),
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		CustomerID:      customerID,
		TransactionType: txType,
		TransactionDate: date,
		Amount:          decimal.RequireFromString(amount),
		Seq:             seq,
	}
}

func TestBalanceCalculator_RunningBalance(t *testing.T) {
	customerID := uuid.New()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	sale1 := testEntry(customerID, TransactionTypeSale, base, base, 1, "1000")
	payment := testEntry(customerID, TransactionTypePayment, base.AddDate(0, 0, 5), base.AddDate(0, 0, 5), 2, "600")
	sale2 := testEntry(customerID, TransactionTypeSale, base.AddDate(0, 0, 10), base.AddDate(0, 0, 10), 3, "900")

	// Deliberately out of order: the calculator must sort the snapshot.
	calc := NewBalanceCalculator([]Entry{sale2, payment, sale1}, nil)

	annotated := calc.Annotated()
	require.Len(t, annotated, 3)

	assert.Equal(t, sale1.ID, annotated[0].ID)
	assert.True(t, annotated[0].Outstanding.Equal(decimal.NewFromInt(1000)))

	assert.Equal(t, payment.ID, annotated[1].ID)
	assert.True(t, annotated[1].Outstanding.Equal(decimal.NewFromInt(400)))

	assert.Equal(t, sale2.ID, annotated[2].ID)
	assert.True(t, annotated[2].Outstanding.Equal(decimal.NewFromInt(1300)))

	assert.True(t, calc.FinalBalance().Equal(decimal.NewFromInt(1300)))
}

func TestBalanceCalculator_RoundsEachStep(t *testing.T) {
	customerID := uuid.New()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	entries := []Entry{
		testEntry(customerID, TransactionTypeSale, base, base, 1, "10.005"),
		testEntry(customerID, TransactionTypeSale, base.AddDate(0, 0, 1), base.AddDate(0, 0, 1), 2, "10.005"),
	}

	calc := NewBalanceCalculator(entries, nil)
	annotated := calc.Annotated()

	// Each step rounds to cents before the next is applied.
	assert.Equal(t, "10.01", annotated[0].Outstanding.StringFixed(2))
	assert.Equal(t, "20.02", annotated[1].Outstanding.StringFixed(2))
}

func TestBalanceCalculator_TieBreakOrder(t *testing.T) {
	customerID := uuid.New()
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	// Same transaction date and creation timestamp; seq decides.
	first := testEntry(customerID, TransactionTypeSale, date, createdAt, 10, "100")
	second := testEntry(customerID, TransactionTypePayment, date, createdAt, 11, "30")

	calc := NewBalanceCalculator([]Entry{second, first}, nil)
	annotated := calc.Annotated()

	require.Len(t, annotated, 2)
	assert.Equal(t, first.ID, annotated[0].ID)
	assert.True(t, annotated[0].Outstanding.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, second.ID, annotated[1].ID)
	assert.True(t, annotated[1].Outstanding.Equal(decimal.NewFromInt(70)))
}

func TestBalanceCalculator_Memoization(t *testing.T) {
	customerID := uuid.New()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	entries := []Entry{
		testEntry(customerID, TransactionTypeSale, base, base, 1, "250.50"),
		testEntry(customerID, TransactionTypePayment, base.AddDate(0, 0, 1), base.AddDate(0, 0, 1), 2, "100.25"),
	}

	calc := NewBalanceCalculator(entries, nil)

	v1, ok := calc.OutstandingFor(entries[1].ID)
	require.True(t, ok)
	v2, ok := calc.OutstandingFor(entries[1].ID)
	require.True(t, ok)
	assert.True(t, v1.Equal(v2))
	assert.Equal(t, "150.25", v1.StringFixed(2))

	// A fresh calculator over the same snapshot yields the same values.
	again := NewBalanceCalculator(entries, nil)
	v3, ok := again.OutstandingFor(entries[1].ID)
	require.True(t, ok)
	assert.True(t, v1.Equal(v3))

	_, ok = calc.OutstandingFor(uuid.New())
	assert.False(t, ok)
}

func TestBalanceCalculator_DatelessEntryExcluded(t *testing.T) {
	customerID := uuid.New()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	good := testEntry(customerID, TransactionTypeSale, base.AddDate(0, 0, 2), base.AddDate(0, 0, 2), 2, "500")
	bad := testEntry(customerID, TransactionTypeSale, time.Time{}, base, 1, "999")

	calc := NewBalanceCalculator([]Entry{good, bad}, nil)

	// The dateless row keeps the running value at the point it was skipped
	// and contributes nothing.
	outstanding, ok := calc.OutstandingFor(bad.ID)
	require.True(t, ok)
	assert.True(t, outstanding.Equal(decimal.Zero))
	assert.True(t, calc.FinalBalance().Equal(decimal.NewFromInt(500)))
}

func TestBalanceCalculator_FinalBalanceEqualsNetOfSnapshot(t *testing.T) {
	customerID := uuid.New()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	amounts := []struct {
		txType TransactionType
		amount string
	}{
		{TransactionTypeSale, "120.10"},
		{TransactionTypePayment, "20.10"},
		{TransactionTypeSale, "75.25"},
		{TransactionTypePayment, "100.00"},
		{TransactionTypeSale, "44.75"},
	}

	entries := make([]Entry, 0, len(amounts))
	expected := decimal.Zero
	for i, a := range amounts {
		e := testEntry(customerID, a.txType, base.AddDate(0, 0, i), base.AddDate(0, 0, i), int64(i+1), a.amount)
		entries = append(entries, e)
		expected = expected.Add(e.SignedAmount())
	}

	calc := NewBalanceCalculator(entries, nil)
	assert.True(t, calc.FinalBalance().Equal(expected))
}

func TestBalanceCalculator_DoesNotMutateInput(t *testing.T) {
	customerID := uuid.New()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	later := testEntry(customerID, TransactionTypeSale, base.AddDate(0, 0, 5), base.AddDate(0, 0, 5), 2, "200")
	earlier := testEntry(customerID, TransactionTypeSale, base, base, 1, "100")
	input := []Entry{later, earlier}

	NewBalanceCalculator(input, nil)

	assert.Equal(t, later.ID, input[0].ID)
	assert.Equal(t, earlier.ID, input[1].ID)
}

func TestSortChronological(t *testing.T) {
	customerID := uuid.New()
	d1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	a := testEntry(customerID, TransactionTypeSale, d2, created, 5, "1")
	b := testEntry(customerID, TransactionTypeSale, d1, created, 9, "1")
	c := testEntry(customerID, TransactionTypeSale, d2, created.Add(-time.Hour), 7, "1")
	d := testEntry(customerID, TransactionTypeSale, d2, created, 4, "1")

	entries := []Entry{a, b, c, d}
	SortChronological(entries)

	// Date first, then creation time, then seq.
	assert.Equal(t, b.ID, entries[0].ID)
	assert.Equal(t, c.ID, entries[1].ID)
	assert.Equal(t, d.ID, entries[2].ID)
	assert.Equal(t, a.ID, entries[3].ID)
}
