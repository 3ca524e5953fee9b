package persistence

import (
	"context"
	"errors"

	"github.com/distribev/backend/internal/domain/ledger"
	"github.com/distribev/backend/internal/domain/shared"
	"github.com/distribev/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPricingQuoteRepository implements ledger.QuoteRepository using GORM
type GormPricingQuoteRepository struct {
	db *gorm.DB
}

// NewGormPricingQuoteRepository creates a new GormPricingQuoteRepository
func NewGormPricingQuoteRepository(db *gorm.DB) *GormPricingQuoteRepository {
	return &GormPricingQuoteRepository{db: db}
}

// LatestBySKU returns the most recently dated quote for a SKU. Recency is by
// pricing date alone, not relative to any sale date.
func (r *GormPricingQuoteRepository) LatestBySKU(ctx context.Context, sku string) (*ledger.PricingQuote, error) {
	var model models.PricingQuoteModel
	if err := r.db.WithContext(ctx).
		Where("sku = ?", sku).
		Order("pricing_date DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListBySKU returns all quotes for a SKU, newest first
func (r *GormPricingQuoteRepository) ListBySKU(ctx context.Context, sku string) ([]ledger.PricingQuote, error) {
	var quoteModels []models.PricingQuoteModel
	if err := r.db.WithContext(ctx).
		Where("sku = ?", sku).
		Order("pricing_date DESC").
		Find(&quoteModels).Error; err != nil {
		return nil, err
	}

	quotes := make([]ledger.PricingQuote, len(quoteModels))
	for i := range quoteModels {
		quotes[i] = *quoteModels[i].ToDomain()
	}
	return quotes, nil
}

// Save creates or updates a quote
func (r *GormPricingQuoteRepository) Save(ctx context.Context, quote *ledger.PricingQuote) error {
	model := models.PricingQuoteModelFromDomain(quote)
	return r.db.WithContext(ctx).Save(model).Error
}
