package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProduct() Product {
	return Product{
		ID:                    "rollerblind-white",
		Slug:                  "white-rollerblind",
		Name:                  "White Rollerblind",
		Category:              "rollerblinds",
		Description:           "Made-to-measure white rollerblind",
		PricingMatrixPath:     "rollerblind-white.json",
		ShopifyProductID:      "gid://shopify/Product/123",
		ShopifyVariantID:      "gid://shopify/ProductVariant/456",
		SamplePriceMinorUnits: 250,
	}
}

func TestProductValidate(t *testing.T) {
	t.Run("accepts a complete product", func(t *testing.T) {
		p := validProduct()
		require.NoError(t, p.Validate())
		assert.True(t, p.OffersSamples())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*Product)
		}{
			{"empty id", func(p *Product) { p.ID = "" }},
			{"blank slug", func(p *Product) { p.Slug = "   " }},
			{"empty name", func(p *Product) { p.Name = "" }},
			{"empty category", func(p *Product) { p.Category = "" }},
			{"empty matrix path", func(p *Product) { p.PricingMatrixPath = "" }},
			{"negative sample price", func(p *Product) { p.SamplePriceMinorUnits = -1 }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				p := validProduct()
				tt.mutate(&p)
				require.Error(t, p.Validate())
			})
		}
	})

	t.Run("product without sample price offers no samples", func(t *testing.T) {
		p := validProduct()
		p.SamplePriceMinorUnits = 0
		require.NoError(t, p.Validate())
		assert.False(t, p.OffersSamples())
	})
}
