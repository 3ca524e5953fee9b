package ledger

import (
	"fmt"
	"time"

	"github.com/distribev/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransportExpenseGroup is the fixed expense group of transport records
const TransportExpenseGroup = "Client Sale Transport"

// TransportEntry is the logistics-cost record derived from a sale. The amount
// is fixed at zero for now: transport is tracked but not yet priced in this
// flow.
type TransportEntry struct {
	shared.BaseEntity
	SourceSaleID uuid.UUID
	ClientID     uuid.UUID
	ExpenseGroup string
	ExpenseDate  time.Time
	Amount       decimal.Decimal
	Description  string
}

// NewTransportEntry creates a transport record for a sale
func NewTransportEntry(sale *Entry, customerName, branch string) (*TransportEntry, error) {
	if sale == nil || !sale.IsSale() {
		return nil, shared.NewValidationError("transport entries derive from sales only")
	}
	if sale.TransactionDate.IsZero() {
		return nil, shared.NewValidationError("transaction date is required for a transport entry")
	}

	return &TransportEntry{
		BaseEntity:   shared.NewBaseEntity(),
		SourceSaleID: sale.ID,
		ClientID:     sale.CustomerID,
		ExpenseGroup: TransportExpenseGroup,
		ExpenseDate:  sale.TransactionDate,
		Amount:       decimal.Zero,
		Description:  fmt.Sprintf("%s-%s Transport", customerName, branch),
	}, nil
}

// TransportKey is the natural composite key matching a transport record to
// its originating sale when no source_sale_id is stored.
type TransportKey struct {
	ClientID    uuid.UUID
	ExpenseDate time.Time
}

// Key returns the natural key of the originating sale
func (t *TransportEntry) Key() TransportKey {
	return TransportKey{
		ClientID:    t.ClientID,
		ExpenseDate: t.ExpenseDate,
	}
}
