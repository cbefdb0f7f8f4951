package catalog

import (
	"context"
	"strings"

	"github.com/raamdecor/storefront/internal/domain/shared"
)

// ProductDetail is a single label/value attribute shown on a product page
type ProductDetail struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Product is a catalog entry for a made-to-measure product. The catalog is
// static per deployment: products are loaded from configuration at startup
// and never created or destroyed at runtime.
type Product struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Description string `json:"description"`

	// PricingMatrixPath references the product's pricing matrix file,
	// relative to the configured pricing data directory.
	PricingMatrixPath string `json:"pricingMatrixPath"`

	// External commerce identifiers used when building draft orders.
	ShopifyProductID string `json:"shopifyProductId"`
	ShopifyVariantID string `json:"shopifyVariantId"`

	// SamplePriceMinorUnits is the fixed price of a swatch sample of this
	// product, in minor units. Zero means samples are not offered.
	SamplePriceMinorUnits int64 `json:"samplePriceMinorUnits"`

	Details []ProductDetail `json:"details,omitempty"`
}

// OffersSamples returns true if a swatch sample can be ordered
func (p *Product) OffersSamples() bool {
	return p.SamplePriceMinorUnits > 0
}

// Validate checks the invariants every catalog entry must satisfy. A product
// that fails validation is rejected at load time; the core never fabricates
// defaults for a broken entry.
func (p *Product) Validate() error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return shared.NewDomainError("INVALID_PRODUCT", "Product id cannot be empty")
	case strings.TrimSpace(p.Slug) == "":
		return shared.NewDomainError("INVALID_PRODUCT", "Product slug cannot be empty")
	case strings.TrimSpace(p.Name) == "":
		return shared.NewDomainError("INVALID_PRODUCT", "Product name cannot be empty")
	case strings.TrimSpace(p.Category) == "":
		return shared.NewDomainError("INVALID_PRODUCT", "Product category cannot be empty")
	case strings.TrimSpace(p.PricingMatrixPath) == "":
		return shared.NewDomainError("INVALID_PRODUCT", "Product pricing matrix path cannot be empty")
	case p.SamplePriceMinorUnits < 0:
		return shared.NewDomainError("INVALID_PRODUCT", "Sample price cannot be negative")
	}
	return nil
}

// Store resolves catalog entries. Every lookup resolves to exactly one
// product or reports shared.ErrNotFound; lookups never substitute defaults.
type Store interface {
	ByID(ctx context.Context, id string) (*Product, error)
	BySlug(ctx context.Context, slug string) (*Product, error)
	All(ctx context.Context) ([]Product, error)
	ByCategory(ctx context.Context, category, subcategory string) ([]Product, error)
}
