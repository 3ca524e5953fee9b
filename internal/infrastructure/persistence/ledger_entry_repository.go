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

// GormLedgerEntryRepository implements ledger.EntryRepository using GORM
type GormLedgerEntryRepository struct {
	db *gorm.DB
}

// NewGormLedgerEntryRepository creates a new GormLedgerEntryRepository
func NewGormLedgerEntryRepository(db *gorm.DB) *GormLedgerEntryRepository {
	return &GormLedgerEntryRepository{db: db}
}

// chronologicalOrder is the canonical ordering for ledger entry queries
const chronologicalOrder = "transaction_date ASC, created_at ASC, seq ASC"

// CreateWithDerived inserts a sale and its two derived records in a single
// transaction. A failure on any insert rolls back the others, so a partial
// sale can never be observed.
func (r *GormLedgerEntryRepository) CreateWithDerived(ctx context.Context, entry *ledger.Entry, production *ledger.ProductionEntry, transport *ledger.TransportEntry) error {
	entryModel := models.LedgerEntryModelFromDomain(entry)
	productionModel := models.ProductionEntryModelFromDomain(production)
	transportModel := models.TransportEntryModelFromDomain(transport)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entryModel).Error; err != nil {
			return err
		}
		if err := tx.Create(productionModel).Error; err != nil {
			return err
		}
		return tx.Create(transportModel).Error
	})
	if err != nil {
		return err
	}

	entry.Seq = entryModel.Seq
	return nil
}

// Create inserts a single ledger entry
func (r *GormLedgerEntryRepository) Create(ctx context.Context, entry *ledger.Entry) error {
	model := models.LedgerEntryModelFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	entry.Seq = model.Seq
	return nil
}

// FindByID finds a ledger entry by its ID
func (r *GormLedgerEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	var model models.LedgerEntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer returns all entries for a customer in canonical chronological order
func (r *GormLedgerEntryRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]ledger.Entry, error) {
	var entryModels []models.LedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order(chronologicalOrder).
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

// List returns entries matching the filter in canonical chronological order
func (r *GormLedgerEntryRepository) List(ctx context.Context, filter ledger.EntryFilter) ([]ledger.Entry, error) {
	query := r.db.WithContext(ctx).Model(&models.LedgerEntryModel{})

	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.TransactionType != nil {
		query = query.Where("transaction_type = ?", filter.TransactionType.String())
	}
	if filter.SKU != nil {
		query = query.Where("sku = ?", *filter.SKU)
	}
	if filter.DateFrom != nil {
		query = query.Where("transaction_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("transaction_date <= ?", *filter.DateTo)
	}

	var entryModels []models.LedgerEntryModel
	if err := query.Order(chronologicalOrder).Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

// Save persists changes to an existing entry
func (r *GormLedgerEntryRepository) Save(ctx context.Context, entry *ledger.Entry) error {
	model := models.LedgerEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an entry by ID. Deletion is physical; entries are never
// soft-deleted.
func (r *GormLedgerEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LedgerEntryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainEntries(entryModels []models.LedgerEntryModel) []ledger.Entry {
	entries := make([]ledger.Entry, len(entryModels))
	for i := range entryModels {
		entries[i] = *entryModels[i].ToDomain()
	}
	return entries
}
