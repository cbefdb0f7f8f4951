package catalog

import (
	"context"
	"errors"

	"github.com/raamdecor/storefront/internal/domain/catalog"
	"github.com/raamdecor/storefront/internal/domain/shared"
)

// ProductService exposes read-only catalog lookups
type ProductService struct {
	store catalog.Store
}

// NewProductService creates a new ProductService
func NewProductService(store catalog.Store) *ProductService {
	return &ProductService{store: store}
}

// List returns the catalog, optionally filtered by category and subcategory
func (s *ProductService) List(ctx context.Context, category, subcategory string) ([]catalog.Product, error) {
	if category == "" {
		return s.store.All(ctx)
	}
	return s.store.ByCategory(ctx, category, subcategory)
}

// Get resolves a product by id, falling back to slug lookup so both
// /products/roller-white and /products/<internal id> work.
func (s *ProductService) Get(ctx context.Context, idOrSlug string) (*catalog.Product, error) {
	product, err := s.store.ByID(ctx, idOrSlug)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	return s.store.BySlug(ctx, idOrSlug)
}
