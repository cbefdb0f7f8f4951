package pricing

import (
	"context"

	"github.com/raamdecor/storefront/internal/domain/catalog"
	"github.com/raamdecor/storefront/internal/domain/pricing"
)

// MatrixSource resolves a product's pricing matrix by its catalog path
type MatrixSource interface {
	Matrix(path string) (*pricing.Matrix, error)
}

// QuoteService resolves a made-to-measure price for entered dimensions
type QuoteService struct {
	products catalog.Store
	matrices MatrixSource
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(products catalog.Store, matrices MatrixSource) *QuoteService {
	return &QuoteService{
		products: products,
		matrices: matrices,
	}
}

// QuoteRequest carries the product and the dimensions as entered
type QuoteRequest struct {
	ProductID string  `json:"product_id"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

// QuoteResponse is the resolved price plus a display rendering
type QuoteResponse struct {
	ProductID      string  `json:"product_id"`
	PriceFormatted string  `json:"price_formatted"`
	pricing.Quote
}

// Quote validates the dimensions against the product's matrix and resolves
// the price. Validation errors and bounds errors pass through untranslated;
// the HTTP layer maps them to their status codes.
func (s *QuoteService) Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	product, err := s.products.ByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	matrix, err := s.matrices.Matrix(product.PricingMatrixPath)
	if err != nil {
		return nil, err
	}

	input := pricing.DimensionInput{Width: req.Width, Height: req.Height}
	if err := pricing.ValidateDimensions(input, matrix); err != nil {
		return nil, err
	}

	quote, err := pricing.Resolve(matrix, req.Width, req.Height)
	if err != nil {
		return nil, err
	}

	return &QuoteResponse{
		ProductID:      product.ID,
		PriceFormatted: pricing.FormatMinorUnits(quote.PriceMinorUnits),
		Quote:          *quote,
	}, nil
}
