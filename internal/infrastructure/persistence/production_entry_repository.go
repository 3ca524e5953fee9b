package persistence

import (
	"context"
	"errors"

	"github.com/distribev/backend/internal/domain/ledger"
	"github.com/distribev/backend/internal/domain/shared"
	"github.com/distribev/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductionEntryRepository implements ledger.ProductionEntryRepository using GORM
type GormProductionEntryRepository struct {
	db *gorm.DB
}

// NewGormProductionEntryRepository creates a new GormProductionEntryRepository
func NewGormProductionEntryRepository(db *gorm.DB) *GormProductionEntryRepository {
	return &GormProductionEntryRepository{db: db}
}

// FindBySourceSaleID finds the production record linked to a sale
func (r *GormProductionEntryRepository) FindBySourceSaleID(ctx context.Context, saleID uuid.UUID) (*ledger.ProductionEntry, error) {
	var model models.ProductionEntryModel
	if err := r.db.WithContext(ctx).
		Where("source_sale_id = ?", saleID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNaturalKey returns every production record matching the natural
// composite key. The key is not unique; callers must handle zero or many
// matches.
func (r *GormProductionEntryRepository) FindByNaturalKey(ctx context.Context, key ledger.SiblingKey) ([]ledger.ProductionEntry, error) {
	var entryModels []models.ProductionEntryModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND transaction_date = ? AND sku = ? AND transaction_type = ?",
			key.CustomerID, key.TransactionDate, key.SKU, ledger.ProductionEntryType).
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]ledger.ProductionEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = *entryModels[i].ToDomain()
	}
	return entries, nil
}

// Save creates or updates a production record
func (r *GormProductionEntryRepository) Save(ctx context.Context, entry *ledger.ProductionEntry) error {
	model := models.ProductionEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a production record by ID
func (r *GormProductionEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ProductionEntryModel{}, "id = ?", id).Error
}
