package partner

import (
	"context"

	"github.com/distribev/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerFilter contains filter options for listing customers. Search,
// sort and paging ride on the shared query filter.
type CustomerFilter struct {
	shared.Filter
	Status *CustomerStatus
	Branch *string
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByName finds a customer by exact display name
	FindByName(ctx context.Context, name string) (*Customer, error)

	// List lists customers with filtering and returns the total count
	List(ctx context.Context, filter CustomerFilter) ([]Customer, int64, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Delete removes a customer by ID
	Delete(ctx context.Context, id uuid.UUID) error
}
