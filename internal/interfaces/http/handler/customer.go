package handler

import (
	partnerapp "github.com/distribev/backend/internal/application/partner"
	"github.com/distribev/backend/internal/domain/partner"
	"github.com/distribev/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CustomerHandler handles customer registry API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// CreateCustomerRequest represents a request to register a customer
// @Description Request body for registering a new customer
type CreateCustomerRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=200" example:"Horizon Beverages"`
	Branch       string `json:"branch" binding:"required,min=1,max=100" example:"Nakuru"`
	ContactName  string `json:"contact_name" binding:"max=100" example:"Alex Otieno"`
	ContactPhone string `json:"contact_phone" binding:"max=50" example:"+254700000000"`
	Address      string `json:"address" binding:"max=500" example:"12 Market Rd"`
}

// UpdateCustomerRequest represents a request to update a customer
// @Description Request body for updating a customer. Omitted fields are left unchanged.
type UpdateCustomerRequest struct {
	Branch       *string `json:"branch" binding:"omitempty,min=1,max=100" example:"Eldoret"`
	ContactName  *string `json:"contact_name" binding:"omitempty,max=100" example:"Grace Wanjiru"`
	ContactPhone *string `json:"contact_phone" binding:"omitempty,max=50" example:"+254711111111"`
	Address      *string `json:"address" binding:"omitempty,max=500" example:"8 Depot Lane"`
	Status       *string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE" example:"INACTIVE"`
}

// ListCustomersRequest represents the query parameters of the customer list
type ListCustomersRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	Branch   string `form:"branch"`
	Search   string `form:"search"`
	SortBy   string `form:"sort_by"`
	SortDir  string `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Create godoc
// @ID           createCustomer
// @Summary      Register a customer
// @Description  Register a new customer in the partner registry
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body CreateCustomerRequest true "Customer registration request"
// @Success      201 {object} APIResponse[partnerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /partner/customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.customerService.CreateCustomer(c.Request.Context(), partnerapp.CreateCustomerInput{
		Name:         req.Name,
		Branch:       req.Branch,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get godoc
// @ID           getCustomer
// @Summary      Get a customer
// @Description  Get a customer by ID
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID"
// @Success      200 {object} APIResponse[partnerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /partner/customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	resp, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @ID           listCustomers
// @Summary      List customers
// @Description  List customers with filtering, search and pagination
// @Tags         customers
// @Produce      json
// @Param        status query string false "Filter by status" Enums(ACTIVE, INACTIVE)
// @Param        branch query string false "Filter by branch"
// @Param        search query string false "Search in name, branch and contact name"
// @Param        sort_by query string false "Sort field"
// @Param        sort_dir query string false "Sort direction" Enums(asc, desc)
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]partnerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /partner/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	var req ListCustomersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := partner.CustomerFilter{Filter: shared.DefaultFilter()}
	filter.Search = req.Search
	if req.SortBy != "" {
		filter.OrderBy = req.SortBy
	}
	if req.SortDir != "" {
		filter.OrderDir = req.SortDir
	}
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.Status != "" {
		status := partner.CustomerStatus(req.Status)
		filter.Status = &status
	}
	if req.Branch != "" {
		filter.Branch = &req.Branch
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
// @ID           updateCustomer
// @Summary      Update a customer
// @Description  Update customer contact details, branch or status
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id path string true "Customer ID"
// @Param        request body UpdateCustomerRequest true "Fields to update"
// @Success      200 {object} APIResponse[partnerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /partner/customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := partnerapp.UpdateCustomerInput{
		Branch:       req.Branch,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
	}
	if req.Status != nil {
		status := partner.CustomerStatus(*req.Status)
		input.Status = &status
	}

	resp, err := h.customerService.UpdateCustomer(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteCustomer
// @Summary      Delete a customer
// @Description  Remove a customer from the registry
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /partner/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers customer routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/partner/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.List)
		customers.GET("/:id", h.Get)
		customers.PUT("/:id", h.Update)
		customers.DELETE("/:id", h.Delete)
	}
}
