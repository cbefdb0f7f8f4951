package handler

import (
	"github.com/gin-gonic/gin"

	appcheckout "github.com/raamdecor/storefront/internal/application/checkout"
)

// CheckoutHandler serves checkout and order verification routes
type CheckoutHandler struct {
	BaseHandler
	checkout *appcheckout.Service
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkout *appcheckout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	checkout := rg.Group("/checkout")
	{
		checkout.POST("", h.Checkout)
		checkout.GET("/verify", h.Verify)
	}
}

// Checkout submits the cart as a draft order
// POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	cartID := c.GetHeader(CartIDHeader)
	if cartID == "" {
		h.BadRequest(c, "X-Cart-ID header is required")
		return
	}

	result, err := h.checkout.Checkout(c.Request.Context(), cartID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// verifyResponse reports whether an order exists in a valid state
type verifyResponse struct {
	OrderID string `json:"order_id"`
	Valid   bool   `json:"valid"`
	Cleared bool   `json:"cleared,omitempty"`
}

// Verify checks an order id against the platform. With confirm=true and a
// cart id, an affirmatively verified order also clears the cart; anything
// less than affirmative leaves the cart alone.
// GET /api/v1/checkout/verify?order_id=&confirm=
func (h *CheckoutHandler) Verify(c *gin.Context) {
	orderID := c.Query("order_id")
	if orderID == "" {
		h.BadRequest(c, "order_id is required")
		return
	}

	resp := verifyResponse{OrderID: orderID}

	cartID := c.GetHeader(CartIDHeader)
	if c.Query("confirm") == "true" && cartID != "" {
		resp.Cleared = h.checkout.ConfirmAndClear(c.Request.Context(), cartID, orderID)
		resp.Valid = resp.Cleared
	} else {
		resp.Valid = h.checkout.VerifyOrder(c.Request.Context(), orderID)
	}
	h.Success(c, resp)
}
