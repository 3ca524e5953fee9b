package ledger

import (
	"time"

	"github.com/distribev/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PricingQuote is one known production unit cost for a SKU. Multiple quotes
// can exist per SKU over time; cost resolution takes the most recently dated
// one regardless of the sale's own date.
type PricingQuote struct {
	shared.BaseEntity
	SKU         string
	CostPerCase decimal.Decimal
	PricingDate time.Time
}

// NewPricingQuote creates a pricing quote
func NewPricingQuote(sku string, costPerCase decimal.Decimal, pricingDate time.Time) (*PricingQuote, error) {
	if sku == "" {
		return nil, shared.NewValidationError("sku is required")
	}
	if costPerCase.IsNegative() {
		return nil, shared.NewValidationError("cost per case cannot be negative")
	}
	if pricingDate.IsZero() {
		return nil, shared.NewValidationError("pricing date is required")
	}

	return &PricingQuote{
		BaseEntity:  shared.NewBaseEntity(),
		SKU:         sku,
		CostPerCase: costPerCase,
		PricingDate: pricingDate,
	}, nil
}
