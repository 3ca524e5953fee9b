package handler

import (
	"time"

	salesapp "github.com/distribev/backend/internal/application/sales"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// QuoteHandler handles pricing quote API endpoints
type QuoteHandler struct {
	BaseHandler
	quoteService *salesapp.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quoteService *salesapp.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
	}
}

// RecordQuoteRequest represents a request to record a pricing quote
// @Description Request body for recording a per-case cost quote for a SKU
type RecordQuoteRequest struct {
	SKU         string  `json:"sku" binding:"required,min=1,max=100" example:"COLA-24CAN"`
	CostPerCase float64 `json:"cost_per_case" binding:"required,gt=0" example:"110.00"`
	PricingDate string  `json:"pricing_date" binding:"required" example:"2026-03-01"`
}

// Record godoc
// @ID           recordQuote
// @Summary      Record a pricing quote
// @Description  Record a per-case cost quote used to derive production amounts for sales
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        request body RecordQuoteRequest true "Quote request"
// @Success      201 {object} APIResponse[salesapp.QuoteResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /pricing/quotes [post]
func (h *QuoteHandler) Record(c *gin.Context) {
	var req RecordQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	pricingDate, err := time.Parse(dateLayout, req.PricingDate)
	if err != nil {
		h.BadRequest(c, "Invalid pricing date, expected YYYY-MM-DD")
		return
	}

	resp, err := h.quoteService.RecordQuote(c.Request.Context(), req.SKU, decimal.NewFromFloat(req.CostPerCase), pricingDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List godoc
// @ID           listQuotes
// @Summary      List pricing quotes for a SKU
// @Description  List recorded quotes for a SKU, most recent first
// @Tags         quotes
// @Produce      json
// @Param        sku query string true "SKU"
// @Success      200 {object} APIResponse[[]salesapp.QuoteResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /pricing/quotes [get]
func (h *QuoteHandler) List(c *gin.Context) {
	sku := c.Query("sku")
	if sku == "" {
		h.BadRequest(c, "sku query parameter is required")
		return
	}

	quotes, err := h.quoteService.ListQuotes(c.Request.Context(), sku)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quotes)
}

// RegisterRoutes registers quote routes
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/pricing/quotes")
	{
		quotes.POST("", h.Record)
		quotes.GET("", h.List)
	}
}
