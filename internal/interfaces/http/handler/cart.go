package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcart "github.com/raamdecor/storefront/internal/application/cart"
)

// CartIDHeader carries the shopper's cart session id. The server mints one
// on the first cart request and echoes it on every response; the client is
// expected to send it back on subsequent requests.
const CartIDHeader = "X-Cart-ID"

// CartHandler serves cart routes
type CartHandler struct {
	BaseHandler
	carts *appcart.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts *appcart.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Get)
		cart.DELETE("", h.Clear)
		cart.POST("/items", h.AddItem)
		cart.POST("/samples", h.AddSample)
		cart.PUT("/items/:id/quantity", h.UpdateQuantity)
		cart.DELETE("/items/:id", h.RemoveItem)
	}
}

// cartID resolves the cart session id, minting a fresh one when the client
// has none yet. The id is always echoed back in the response header.
func (h *CartHandler) cartID(c *gin.Context) string {
	id := c.GetHeader(CartIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Header(CartIDHeader, id)
	return id
}

// Get returns the current cart
// GET /api/v1/cart
func (h *CartHandler) Get(c *gin.Context) {
	view, err := h.carts.Get(c.Request.Context(), h.cartID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// addItemRequest adds one configured unit. Width and height are pointers so
// a missing or non-numeric value fails binding instead of defaulting to 0.
type addItemRequest struct {
	ProductID string   `json:"product_id" binding:"required"`
	Width     *float64 `json:"width" binding:"required"`
	Height    *float64 `json:"height" binding:"required"`
}

// AddItem adds a configured product to the cart
// POST /api/v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "width and height must be numbers and product_id is required")
		return
	}

	view, err := h.carts.AddItem(c.Request.Context(), h.cartID(c), appcart.AddItemRequest{
		ProductID: req.ProductID,
		Width:     *req.Width,
		Height:    *req.Height,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

type addSampleRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// AddSample adds a swatch sample to the cart
// POST /api/v1/cart/samples
func (h *CartHandler) AddSample(c *gin.Context) {
	var req addSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "product_id is required")
		return
	}

	view, err := h.carts.AddSample(c.Request.Context(), h.cartID(c), req.ProductID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

type updateQuantityRequest struct {
	Quantity *int64 `json:"quantity" binding:"required"`
}

// UpdateQuantity sets a line item's quantity
// PUT /api/v1/cart/items/:id/quantity
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "quantity must be a number")
		return
	}

	view, err := h.carts.UpdateQuantity(c.Request.Context(), h.cartID(c), c.Param("id"), *req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// RemoveItem removes a line item
// DELETE /api/v1/cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	view, err := h.carts.RemoveItem(c.Request.Context(), h.cartID(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Clear empties the cart
// DELETE /api/v1/cart
func (h *CartHandler) Clear(c *gin.Context) {
	view, err := h.carts.Clear(c.Request.Context(), h.cartID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}
