package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EntryFilter contains filter options for listing ledger entries
type EntryFilter struct {
	CustomerID      *uuid.UUID
	TransactionType *TransactionType
	SKU             *string
	DateFrom        *time.Time
	DateTo          *time.Time
}

// EntryRepository defines the interface for ledger entry persistence.
//
// CreateWithDerived inserts a sale and its two derived records inside a
// single store transaction: either all three land or none do. The store
// assigns the entry's seq on insert.
type EntryRepository interface {
	CreateWithDerived(ctx context.Context, entry *Entry, production *ProductionEntry, transport *TransportEntry) error

	// Create inserts a single entry (payments have no derived records)
	Create(ctx context.Context, entry *Entry) error

	// FindByID finds a ledger entry by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Entry, error)

	// FindByCustomer returns all entries for a customer in canonical
	// chronological order: transaction_date, created_at, seq ascending.
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]Entry, error)

	// List returns entries matching the filter in canonical chronological order
	List(ctx context.Context, filter EntryFilter) ([]Entry, error)

	// Save persists changes to an existing entry
	Save(ctx context.Context, entry *Entry) error

	// Delete removes an entry by ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductionEntryRepository defines the interface for production-cost records
type ProductionEntryRepository interface {
	// FindBySourceSaleID finds the production record linked to a sale
	FindBySourceSaleID(ctx context.Context, saleID uuid.UUID) (*ProductionEntry, error)

	// FindByNaturalKey returns every production record matching the natural
	// composite key. More than one match means the key is ambiguous.
	FindByNaturalKey(ctx context.Context, key SiblingKey) ([]ProductionEntry, error)

	// Save creates or updates a production record
	Save(ctx context.Context, entry *ProductionEntry) error

	// Delete removes a production record by ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransportEntryRepository defines the interface for transport-cost records
type TransportEntryRepository interface {
	// FindBySourceSaleID finds the transport record linked to a sale
	FindBySourceSaleID(ctx context.Context, saleID uuid.UUID) (*TransportEntry, error)

	// FindByKey returns every transport record matching the natural key
	// within the fixed expense group.
	FindByKey(ctx context.Context, key TransportKey) ([]TransportEntry, error)

	// Save creates or updates a transport record
	Save(ctx context.Context, entry *TransportEntry) error

	// Delete removes a transport record by ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// QuoteRepository defines the interface for pricing quote persistence
type QuoteRepository interface {
	// LatestBySKU returns the most recently dated quote for a SKU, or
	// shared.ErrNotFound when the SKU has no quotes.
	LatestBySKU(ctx context.Context, sku string) (*PricingQuote, error)

	// ListBySKU returns all quotes for a SKU, newest first
	ListBySKU(ctx context.Context, sku string) ([]PricingQuote, error)

	// Save creates or updates a quote
	Save(ctx context.Context, quote *PricingQuote) error
}
