package ledger

import (
	"time"

	"github.com/distribev/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of a ledger entry
type TransactionType string

const (
	// TransactionTypeSale represents goods billed to a customer
	TransactionTypeSale TransactionType = "SALE"
	// TransactionTypePayment represents money received from a customer
	TransactionTypePayment TransactionType = "PAYMENT"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeSale, TransactionTypePayment:
		return true
	}
	return false
}

// Entry represents one sale or payment against a customer. Entries carry no
// stored running total; the outstanding balance is derived at read time.
//
// Seq is a store-assigned monotonic sequence used as the final tie-break when
// entries share the same transaction date and creation timestamp. It replaces
// comparisons on opaque ids, which do not reflect insertion order.
type Entry struct {
	shared.BaseEntity
	CustomerID      uuid.UUID
	TransactionType TransactionType
	TransactionDate time.Time
	Amount          decimal.Decimal
	Quantity        int // cases sold, sales only
	SKU             string
	Description     string
	Seq             int64
}

// NewSaleEntry creates a sale ledger entry
func NewSaleEntry(customerID uuid.UUID, date time.Time, amount decimal.Decimal, quantity int, sku, description string) (*Entry, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("customer is required")
	}
	if date.IsZero() {
		return nil, shared.NewValidationError("transaction date is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewValidationError("amount cannot be negative")
	}
	if sku == "" {
		return nil, shared.NewValidationError("sku is required for a sale")
	}
	if quantity <= 0 {
		return nil, shared.NewValidationError("quantity must be positive for a sale")
	}

	return &Entry{
		BaseEntity:      shared.NewBaseEntity(),
		CustomerID:      customerID,
		TransactionType: TransactionTypeSale,
		TransactionDate: date,
		Amount:          amount,
		Quantity:        quantity,
		SKU:             sku,
		Description:     description,
	}, nil
}

// NewPaymentEntry creates a payment ledger entry
func NewPaymentEntry(customerID uuid.UUID, date time.Time, amount decimal.Decimal, description string) (*Entry, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("customer is required")
	}
	if date.IsZero() {
		return nil, shared.NewValidationError("transaction date is required")
	}
	if amount.IsNegative() {
		return nil, shared.NewValidationError("amount cannot be negative")
	}

	return &Entry{
		BaseEntity:      shared.NewBaseEntity(),
		CustomerID:      customerID,
		TransactionType: TransactionTypePayment,
		TransactionDate: date,
		Amount:          amount,
		Description:     description,
	}, nil
}

// IsSale returns true for sale entries
func (e *Entry) IsSale() bool {
	return e.TransactionType == TransactionTypeSale
}

// SignedAmount returns the amount's effect on the customer's outstanding
// balance: positive for sales, negative for payments.
func (e *Entry) SignedAmount() decimal.Decimal {
	if e.TransactionType == TransactionTypePayment {
		return e.Amount.Neg()
	}
	return e.Amount
}

// SiblingKey returns the natural composite key that locates this sale's
// derived records when no source_sale_id is stored.
func (e *Entry) SiblingKey() SiblingKey {
	return SiblingKey{
		CustomerID:      e.CustomerID,
		TransactionDate: e.TransactionDate,
		SKU:             e.SKU,
	}
}

// SiblingKey is the natural composite key matching derived records to their
// originating sale. It is not unique: two sales can share customer, date and
// SKU, which is why derived records also carry an explicit source_sale_id.
type SiblingKey struct {
	CustomerID      uuid.UUID
	TransactionDate time.Time
	SKU             string
}
