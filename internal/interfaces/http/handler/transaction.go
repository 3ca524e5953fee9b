package handler

import (
	"time"

	salesapp "github.com/distribev/backend/internal/application/sales"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// TransactionHandler handles ledger transaction API endpoints
type TransactionHandler struct {
	BaseHandler
	salesService *salesapp.Service
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(salesService *salesapp.Service) *TransactionHandler {
	return &TransactionHandler{
		salesService: salesService,
	}
}

// CreateSaleRequest represents a request to record a sale
// @Description Request body for recording a sale transaction
type CreateSaleRequest struct {
	CustomerID      string  `json:"customer_id" binding:"required,uuid" example:"7b0f4a9e-4a3f-4a57-9c2e-6f4f5b2d9b01"`
	SKU             string  `json:"sku" binding:"required,min=1,max=100" example:"COLA-24CAN"`
	Quantity        int     `json:"quantity" binding:"required,gt=0" example:"40"`
	Amount          float64 `json:"amount" binding:"required,gt=0" example:"4800.00"`
	TransactionDate string  `json:"transaction_date" binding:"required" example:"2026-03-15"`
	Description     string  `json:"description" binding:"max=500" example:"March delivery"`
}

// CreatePaymentRequest represents a request to record a payment
// @Description Request body for recording a payment transaction
type CreatePaymentRequest struct {
	CustomerID      string  `json:"customer_id" binding:"required,uuid" example:"7b0f4a9e-4a3f-4a57-9c2e-6f4f5b2d9b01"`
	Amount          float64 `json:"amount" binding:"required,gt=0" example:"600.00"`
	TransactionDate string  `json:"transaction_date" binding:"required" example:"2026-03-20"`
	Description     string  `json:"description" binding:"max=500" example:"Bank transfer"`
}

// UpdateSaleRequest represents a request to update a sale transaction
// @Description Request body for updating a sale. Omitted fields are left unchanged.
type UpdateSaleRequest struct {
	TransactionDate *string  `json:"transaction_date" example:"2026-03-16"`
	Amount          *float64 `json:"amount" binding:"omitempty,gt=0" example:"5200.00"`
	Quantity        *int     `json:"quantity" binding:"omitempty,gt=0" example:"44"`
	SKU             *string  `json:"sku" binding:"omitempty,min=1,max=100" example:"COLA-24CAN"`
	Description     *string  `json:"description" binding:"omitempty,max=500" example:"Corrected delivery"`
}

// ListTransactionsRequest represents the query parameters of the transaction
// list endpoint. Repeatable parameters select set-membership filters.
type ListTransactionsRequest struct {
	CustomerID string   `form:"customer_id" binding:"omitempty,uuid"`
	Search     string   `form:"search"`
	SortBy     string   `form:"sort_by"`
	SortDir    string   `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
	Customers  []string `form:"customer"`
	Branches   []string `form:"branch"`
	SKUs       []string `form:"sku"`
	Types      []string `form:"type"`
	Date       string   `form:"date"`
	Amount     *float64 `form:"amount"`
	Page       int      `form:"page" binding:"omitempty,min=1"`
	PageSize   int      `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CreateSale godoc
// @ID           createSale
// @Summary      Record a sale
// @Description  Record a sale transaction together with its derived production and transport records
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        request body CreateSaleRequest true "Sale creation request"
// @Success      201 {object} APIResponse[salesapp.EntryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /ledger/sales [post]
func (h *TransactionHandler) CreateSale(c *gin.Context) {
	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}
	txDate, err := time.Parse(dateLayout, req.TransactionDate)
	if err != nil {
		h.BadRequest(c, "Invalid transaction date, expected YYYY-MM-DD")
		return
	}

	resp, err := h.salesService.CreateSale(c.Request.Context(), salesapp.CreateSaleInput{
		CustomerID:      customerID,
		SKU:             req.SKU,
		Quantity:        req.Quantity,
		Amount:          decimal.NewFromFloat(req.Amount),
		TransactionDate: txDate,
		Description:     req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// CreatePayment godoc
// @ID           createPayment
// @Summary      Record a payment
// @Description  Record a customer payment against the ledger
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        request body CreatePaymentRequest true "Payment creation request"
// @Success      201 {object} APIResponse[salesapp.EntryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /ledger/payments [post]
func (h *TransactionHandler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}
	txDate, err := time.Parse(dateLayout, req.TransactionDate)
	if err != nil {
		h.BadRequest(c, "Invalid transaction date, expected YYYY-MM-DD")
		return
	}

	resp, err := h.salesService.CreatePayment(c.Request.Context(), salesapp.CreatePaymentInput{
		CustomerID:      customerID,
		Amount:          decimal.NewFromFloat(req.Amount),
		TransactionDate: txDate,
		Description:     req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Update godoc
// @ID           updateTransaction
// @Summary      Update a sale transaction
// @Description  Update a sale and synchronize its derived production and transport records. Sibling failures surface as warnings, not errors.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id path string true "Transaction ID"
// @Param        request body UpdateSaleRequest true "Fields to update"
// @Success      200 {object} APIResponse[shared.SyncReport]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /ledger/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	var req UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := salesapp.UpdateSaleInput{
		Quantity:    req.Quantity,
		SKU:         req.SKU,
		Description: req.Description,
	}
	if req.TransactionDate != nil {
		txDate, err := time.Parse(dateLayout, *req.TransactionDate)
		if err != nil {
			h.BadRequest(c, "Invalid transaction date, expected YYYY-MM-DD")
			return
		}
		input.TransactionDate = &txDate
	}
	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		input.Amount = &amount
	}

	report, err := h.salesService.UpdateSale(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// Delete godoc
// @ID           deleteTransaction
// @Summary      Delete a transaction
// @Description  Delete a transaction. For sales, derived production and transport records are removed first; their failures surface as warnings.
// @Tags         transactions
// @Produce      json
// @Param        id path string true "Transaction ID"
// @Success      200 {object} APIResponse[shared.SyncReport]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /ledger/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	report, err := h.salesService.DeleteTransaction(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// List godoc
// @ID           listTransactions
// @Summary      List transactions with running balances
// @Description  List balance-annotated transactions with free-text search, per-column filters, single-column sort and pagination
// @Tags         transactions
// @Produce      json
// @Param        customer_id query string false "Restrict to one customer"
// @Param        search query string false "Case-insensitive substring over all displayed columns"
// @Param        sort_by query string false "Sort column" Enums(customer, branch, sku, transaction_type, transaction_date, amount, quantity, outstanding)
// @Param        sort_dir query string false "Sort direction" Enums(asc, desc)
// @Param        customer query []string false "Filter by customer name (repeatable)"
// @Param        branch query []string false "Filter by branch (repeatable)"
// @Param        sku query []string false "Filter by SKU (repeatable)"
// @Param        type query []string false "Filter by transaction type (repeatable)"
// @Param        date query string false "Filter by transaction date (YYYY-MM-DD)"
// @Param        amount query number false "Filter by exact amount"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[salesapp.Page]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /ledger/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	var req ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var customerID *uuid.UUID
	if req.CustomerID != "" {
		id, err := uuid.Parse(req.CustomerID)
		if err != nil {
			h.BadRequest(c, "Invalid customer ID")
			return
		}
		customerID = &id
	}

	state := salesapp.ListState{
		Search: req.Search,
		Filters: salesapp.ColumnFilters{
			Customers: req.Customers,
			Branches:  req.Branches,
			SKUs:      req.SKUs,
			Types:     req.Types,
		},
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.Date != "" {
		date, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			h.BadRequest(c, "Invalid date filter, expected YYYY-MM-DD")
			return
		}
		state.Filters.Date = &date
	}
	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		state.Filters.Amount = &amount
	}
	if req.SortBy != "" {
		state.Sort = &salesapp.SortSpec{
			Column:     req.SortBy,
			Descending: req.SortDir != "asc",
		}
	}

	rows, err := h.salesService.ListWithBalances(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, salesapp.ApplyListState(rows, state))
}

// RegisterRoutes registers transaction routes
func (h *TransactionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ledger := rg.Group("/ledger")
	{
		ledger.POST("/sales", h.CreateSale)
		ledger.POST("/payments", h.CreatePayment)
		ledger.GET("/transactions", h.List)
		ledger.PUT("/transactions/:id", h.Update)
		ledger.DELETE("/transactions/:id", h.Delete)
	}
}
