package partner

import (
	"context"

	"github.com/distribev/backend/internal/domain/partner"
	"github.com/distribev/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerService handles customer registry operations
type CustomerService struct {
	customers partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customers partner.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

// CreateCustomerInput carries the fields for registering a customer
type CreateCustomerInput struct {
	Name         string
	Branch       string
	ContactName  string
	ContactPhone string
	Address      string
}

// UpdateCustomerInput carries optional replacement fields for a customer
type UpdateCustomerInput struct {
	Branch       *string
	ContactName  *string
	ContactPhone *string
	Address      *string
	Status       *partner.CustomerStatus
}

// CreateCustomer registers a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*CustomerResponse, error) {
	if existing, err := s.customers.FindByName(ctx, input.Name); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	customer, err := partner.NewCustomer(input.Name, input.Branch)
	if err != nil {
		return nil, err
	}
	customer.ContactName = input.ContactName
	customer.ContactPhone = input.ContactPhone
	customer.Address = input.Address

	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, shared.NewPersistenceError("customer create", err)
	}

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// GetCustomer returns a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// ListCustomers lists customers with filtering
func (s *CustomerService) ListCustomers(ctx context.Context, filter partner.CustomerFilter) (shared.Paginated[CustomerResponse], error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	customers, total, err := s.customers.List(ctx, filter)
	if err != nil {
		return shared.Paginated[CustomerResponse]{}, shared.NewPersistenceError("customer list", err)
	}

	items := make([]CustomerResponse, len(customers))
	for i := range customers {
		items[i] = ToCustomerResponse(&customers[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// UpdateCustomer applies new field values to a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input UpdateCustomerInput) (*CustomerResponse, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Branch != nil {
		if *input.Branch == "" {
			return nil, shared.NewValidationError("customer branch is required")
		}
		customer.Branch = *input.Branch
	}
	if input.ContactName != nil {
		customer.ContactName = *input.ContactName
	}
	if input.ContactPhone != nil {
		customer.ContactPhone = *input.ContactPhone
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, shared.NewValidationError("invalid customer status")
		}
		customer.Status = *input.Status
	}

	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, shared.NewPersistenceError("customer update", err)
	}

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// DeleteCustomer removes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customers.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.customers.Delete(ctx, id); err != nil {
		return shared.NewPersistenceError("customer delete", err)
	}
	return nil
}
