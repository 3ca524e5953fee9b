package partner

import (
	"time"

	"github.com/distribev/backend/internal/domain/partner"
)

// CustomerResponse represents a customer in service responses
type CustomerResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Branch       string `json:"branch"`
	ContactName  string `json:"contact_name,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
	Address      string `json:"address,omitempty"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// ToCustomerResponse converts a domain customer to a response
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Branch:       c.Branch,
		ContactName:  c.ContactName,
		ContactPhone: c.ContactPhone,
		Address:      c.Address,
		Status:       c.Status.String(),
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    c.UpdatedAt.Format(time.RFC3339),
	}
}
