package sales

import (
	"context"
	"time"

	"github.com/distribev/backend/internal/domain/ledger"
	"github.com/distribev/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// QuoteService manages the pricing table the resolver reads from
type QuoteService struct {
	quotes ledger.QuoteRepository
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(quotes ledger.QuoteRepository) *QuoteService {
	return &QuoteService{quotes: quotes}
}

// QuoteResponse represents a pricing quote in service responses
type QuoteResponse struct {
	ID          string  `json:"id"`
	SKU         string  `json:"sku"`
	CostPerCase float64 `json:"cost_per_case"`
	PricingDate string  `json:"pricing_date"`
}

// RecordQuote stores a new unit-cost quote for a SKU
func (s *QuoteService) RecordQuote(ctx context.Context, sku string, costPerCase decimal.Decimal, pricingDate time.Time) (*QuoteResponse, error) {
	quote, err := ledger.NewPricingQuote(sku, costPerCase, pricingDate)
	if err != nil {
		return nil, err
	}
	if err := s.quotes.Save(ctx, quote); err != nil {
		return nil, shared.NewPersistenceError("quote create", err)
	}
	resp := toQuoteResponse(quote)
	return &resp, nil
}

// ListQuotes returns all quotes for a SKU, newest first
func (s *QuoteService) ListQuotes(ctx context.Context, sku string) ([]QuoteResponse, error) {
	if sku == "" {
		return nil, shared.NewValidationError("sku is required")
	}
	quotes, err := s.quotes.ListBySKU(ctx, sku)
	if err != nil {
		return nil, shared.NewPersistenceError("quote list", err)
	}
	out := make([]QuoteResponse, len(quotes))
	for i := range quotes {
		out[i] = toQuoteResponse(&quotes[i])
	}
	return out, nil
}

func toQuoteResponse(q *ledger.PricingQuote) QuoteResponse {
	cost, _ := q.CostPerCase.Float64()
	return QuoteResponse{
		ID:          q.ID.String(),
		SKU:         q.SKU,
		CostPerCase: cost,
		PricingDate: q.PricingDate.Format("2006-01-02"),
	}
}
