package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/raamdecor/storefront/internal/application/catalog"
)

// CatalogHandler serves read-only product catalog routes
type CatalogHandler struct {
	BaseHandler
	products *appcatalog.ProductService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(products *appcatalog.ProductService) *CatalogHandler {
	return &CatalogHandler{products: products}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	catalog := rg.Group("/catalog")
	{
		catalog.GET("/products", h.List)
		catalog.GET("/products/:id", h.Get)
	}
}

// List returns catalog products, optionally filtered by category
// GET /api/v1/catalog/products?category=&subcategory=
func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.products.List(c.Request.Context(),
		c.Query("category"), c.Query("subcategory"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Get returns one product by id or slug
// GET /api/v1/catalog/products/:id
func (h *CatalogHandler) Get(c *gin.Context) {
	product, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}
