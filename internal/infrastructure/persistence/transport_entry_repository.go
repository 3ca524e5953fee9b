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

// GormTransportEntryRepository implements ledger.TransportEntryRepository using GORM
type GormTransportEntryRepository struct {
	db *gorm.DB
}

// NewGormTransportEntryRepository creates a new GormTransportEntryRepository
func NewGormTransportEntryRepository(db *gorm.DB) *GormTransportEntryRepository {
	return &GormTransportEntryRepository{db: db}
}

// FindBySourceSaleID finds the transport record linked to a sale
func (r *GormTransportEntryRepository) FindBySourceSaleID(ctx context.Context, saleID uuid.UUID) (*ledger.TransportEntry, error) {
	var model models.TransportEntryModel
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

// FindByKey returns every transport record matching the natural key within
// the fixed expense group.
func (r *GormTransportEntryRepository) FindByKey(ctx context.Context, key ledger.TransportKey) ([]ledger.TransportEntry, error) {
	var entryModels []models.TransportEntryModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ? AND expense_date = ? AND expense_group = ?",
			key.ClientID, key.ExpenseDate, ledger.TransportExpenseGroup).
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]ledger.TransportEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = *entryModels[i].ToDomain()
	}
	return entries, nil
}

// Save creates or updates a transport record
func (r *GormTransportEntryRepository) Save(ctx context.Context, entry *ledger.TransportEntry) error {
	model := models.TransportEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a transport record by ID
func (r *GormTransportEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.TransportEntryModel{}, "id = ?", id).Error
}
