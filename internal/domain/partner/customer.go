package partner

import (
	"strings"

	"github.com/distribev/backend/internal/domain/shared"
)

// CustomerStatus represents the lifecycle status of a customer
type CustomerStatus string

const (
	// CustomerStatusActive represents a customer that can place orders
	CustomerStatusActive CustomerStatus = "ACTIVE"
	// CustomerStatusInactive represents a customer that no longer trades with us
	CustomerStatusInactive CustomerStatus = "INACTIVE"
)

// String returns the string representation of CustomerStatus
func (s CustomerStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is valid
func (s CustomerStatus) IsValid() bool {
	switch s {
	case CustomerStatusActive, CustomerStatusInactive:
		return true
	}
	return false
}

// Customer represents a dealer the distributor sells to. The display name and
// branch are copied into derived ledger records, so they are required.
type Customer struct {
	shared.BaseEntity
	Name         string
	Branch       string
	ContactName  string
	ContactPhone string
	Address      string
	Status       CustomerStatus
}

// NewCustomer creates a new customer
func NewCustomer(name, branch string) (*Customer, error) {
	name = strings.TrimSpace(name)
	branch = strings.TrimSpace(branch)
	if name == "" {
		return nil, shared.NewValidationError("customer name is required")
	}
	if branch == "" {
		return nil, shared.NewValidationError("customer branch is required")
	}

	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Branch:     branch,
		Status:     CustomerStatusActive,
	}, nil
}

// DisplayName returns the name used in derived-record descriptions
func (c *Customer) DisplayName() string {
	return c.Name
}

// Deactivate marks the customer as inactive
func (c *Customer) Deactivate() {
	c.Status = CustomerStatusInactive
}

// Activate marks the customer as active
func (c *Customer) Activate() {
	c.Status = CustomerStatusActive
}

// IsActive returns true if the customer can place orders
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}
