package handler

import (
	"github.com/gin-gonic/gin"

	apppricing "github.com/raamdecor/storefront/internal/application/pricing"
)

// PricingHandler serves price quote requests
type PricingHandler struct {
	BaseHandler
	quotes *apppricing.QuoteService
}

// NewPricingHandler creates a new PricingHandler
func NewPricingHandler(quotes *apppricing.QuoteService) *PricingHandler {
	return &PricingHandler{quotes: quotes}
}

// RegisterRoutes registers pricing routes
func (h *PricingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	pricing := rg.Group("/pricing")
	{
		pricing.POST("/quote", h.Quote)
	}
}

// quoteRequest is the quote request body. Width and height must be present
// and numeric; range checks happen against the product's matrix afterwards.
type quoteRequest struct {
	ProductID string   `json:"product_id" binding:"required"`
	Width     *float64 `json:"width" binding:"required"`
	Height    *float64 `json:"height" binding:"required"`
}

// Quote resolves a made-to-measure price
// POST /api/v1/pricing/quote
func (h *PricingHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "width and height must be numbers and product_id is required")
		return
	}

	resp, err := h.quotes.Quote(c.Request.Context(), apppricing.QuoteRequest{
		ProductID: req.ProductID,
		Width:     *req.Width,
		Height:    *req.Height,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
