package sales

import (
	"context"
	"errors"

	"github.com/distribev/backend/internal/domain/ledger"
	"github.com/distribev/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var fallbackCostRatio = decimal.NewFromFloat(0.5)

// PricingResolver resolves the production unit cost to use for a sale.
type PricingResolver struct {
	quotes ledger.QuoteRepository
}

// NewPricingResolver creates a new PricingResolver
func NewPricingResolver(quotes ledger.QuoteRepository) *PricingResolver {
	return &PricingResolver{quotes: quotes}
}

// UnitCost returns the production cost per case for the given SKU.
//
// The most recently dated quote wins, regardless of whether its date precedes
// or follows the sale's own date. When no quote exists the cost falls back to
// half of the billed unit price, (saleAmount / quantity) * 0.5, a legacy
// heuristic kept for behavioral compatibility. The fallback needs a positive
// quantity; without one the call fails rather than persisting a non-finite
// amount downstream.
func (r *PricingResolver) UnitCost(ctx context.Context, sku string, saleAmount decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if sku == "" {
		return decimal.Zero, shared.NewValidationError("sku is required to resolve a unit cost")
	}

	quote, err := r.quotes.LatestBySKU(ctx, sku)
	if err == nil {
		return quote.CostPerCase, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return decimal.Zero, shared.NewPersistenceError("pricing lookup", err)
	}

	if quantity <= 0 {
		return decimal.Zero, shared.NewValidationError("quantity required for cost fallback")
	}
	unitPrice := saleAmount.Div(decimal.NewFromInt(int64(quantity)))
	return unitPrice.Mul(fallbackCostRatio), nil
}
