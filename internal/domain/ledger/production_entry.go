package ledger

import (
	"time"

	"github.com/distribev/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductionEntryType is the fixed transaction type of production-cost records
const ProductionEntryType = "PRODUCTION"

// ProductionEntry is the production-cost record derived from a sale. The
// amount is quantity times the resolved unit production cost.
//
// SourceSaleID is the explicit link back to the originating sale. The natural
// key fields (customer, date, sku) are kept both for reporting and so legacy
// rows written before the link existed can still be matched.
type ProductionEntry struct {
	shared.BaseEntity
	SourceSaleID    uuid.UUID
	CustomerID      uuid.UUID
	SKU             string
	Quantity        int
	TransactionDate time.Time
	Amount          decimal.Decimal
	// CustomerName is denormalized for human debugging, not a reference.
	CustomerName string
}

// NewProductionEntry creates a production-cost record for a sale
func NewProductionEntry(sale *Entry, amount decimal.Decimal, customerName string) (*ProductionEntry, error) {
	if sale == nil || !sale.IsSale() {
		return nil, shared.NewValidationError("production entries derive from sales only")
	}
	if sale.TransactionDate.IsZero() {
		return nil, shared.NewValidationError("transaction date is required for a production entry")
	}
	if amount.IsNegative() {
		return nil, shared.NewValidationError("production amount cannot be negative")
	}

	return &ProductionEntry{
		BaseEntity:      shared.NewBaseEntity(),
		SourceSaleID:    sale.ID,
		CustomerID:      sale.CustomerID,
		SKU:             sale.SKU,
		Quantity:        sale.Quantity,
		TransactionDate: sale.TransactionDate,
		Amount:          amount,
		CustomerName:    customerName,
	}, nil
}

// SiblingKey returns the natural key of the originating sale
func (p *ProductionEntry) SiblingKey() SiblingKey {
	return SiblingKey{
		CustomerID:      p.CustomerID,
		TransactionDate: p.TransactionDate,
		SKU:             p.SKU,
	}
}
