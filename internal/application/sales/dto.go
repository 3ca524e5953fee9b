package sales

import (
	"time"

	"github.com/distribev/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSaleInput carries the fields needed to record a sale
type CreateSaleInput struct {
	CustomerID      uuid.UUID
	SKU             string
	Quantity        int
	Amount          decimal.Decimal
	TransactionDate time.Time
	Description     string
}

// CreatePaymentInput carries the fields needed to record a payment
type CreatePaymentInput struct {
	CustomerID      uuid.UUID
	Amount          decimal.Decimal
	TransactionDate time.Time
	Description     string
}

// UpdateSaleInput carries optional replacement fields for a sale. Nil fields
// are left unchanged.
type UpdateSaleInput struct {
	TransactionDate *time.Time
	Amount          *decimal.Decimal
	Quantity        *int
	SKU             *string
	Description     *string
}

// EntryResponse represents a ledger entry in service responses
type EntryResponse struct {
	ID              string  `json:"id"`
	CustomerID      string  `json:"customer_id"`
	TransactionType string  `json:"transaction_type"`
	TransactionDate string  `json:"transaction_date"`
	Amount          float64 `json:"amount"`
	Quantity        int     `json:"quantity,omitempty"`
	SKU             string  `json:"sku,omitempty"`
	Description     string  `json:"description,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// ToEntryResponse converts a domain entry to a response
func ToEntryResponse(e *ledger.Entry) EntryResponse {
	amount, _ := e.Amount.Float64()
	return EntryResponse{
		ID:              e.ID.String(),
		CustomerID:      e.CustomerID.String(),
		TransactionType: e.TransactionType.String(),
		TransactionDate: e.TransactionDate.Format("2006-01-02"),
		Amount:          amount,
		Quantity:        e.Quantity,
		SKU:             e.SKU,
		Description:     e.Description,
		CreatedAt:       e.CreatedAt.Format(time.RFC3339),
	}
}

// AnnotatedRow is one balance-annotated transaction prepared for display.
// It joins the ledger entry with the customer's display fields and the
// derived outstanding balance.
type AnnotatedRow struct {
	ID              uuid.UUID       `json:"id"`
	CustomerID      uuid.UUID       `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	Branch          string          `json:"branch"`
	TransactionType string          `json:"transaction_type"`
	TransactionDate time.Time       `json:"transaction_date"`
	Amount          decimal.Decimal `json:"amount"`
	Quantity        int             `json:"quantity,omitempty"`
	SKU             string          `json:"sku,omitempty"`
	Description     string          `json:"description,omitempty"`
	Outstanding     decimal.Decimal `json:"outstanding"`
	CreatedAt       time.Time       `json:"created_at"`
}
