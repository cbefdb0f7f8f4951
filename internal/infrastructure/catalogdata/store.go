package catalogdata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/raamdecor/storefront/internal/domain/catalog"
	"github.com/raamdecor/storefront/internal/domain/shared"
)

// catalogFile is the on-disk shape of the product catalog
type catalogFile struct {
	Version     string            `json:"version"`
	LastUpdated string            `json:"lastUpdated"`
	Products    []catalog.Product `json:"products"`
}

// FileStore is a catalog.Store backed by a products.json file loaded once at
// startup. The catalog is static per deployment; products are never created
// or destroyed at runtime.
type FileStore struct {
	products []catalog.Product
	byID     map[string]int
	bySlug   map[string]int
}

// NewFileStore loads and validates the catalog at path
func NewFileStore(path string) (*FileStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	if len(file.Products) == 0 {
		return nil, fmt.Errorf("catalog %s contains no products", path)
	}

	store := &FileStore{
		products: file.Products,
		byID:     make(map[string]int, len(file.Products)),
		bySlug:   make(map[string]int, len(file.Products)),
	}
	for i, p := range file.Products {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("catalog %s product %q: %w", path, p.ID, err)
		}
		if _, dup := store.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog %s has duplicate product id %q", path, p.ID)
		}
		if _, dup := store.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("catalog %s has duplicate product slug %q", path, p.Slug)
		}
		store.byID[p.ID] = i
		store.bySlug[p.Slug] = i
	}
	return store, nil
}

// ByID resolves a product by its id
func (s *FileStore) ByID(ctx context.Context, id string) (*catalog.Product, error) {
	if i, ok := s.byID[id]; ok {
		p := s.products[i]
		return &p, nil
	}
	return nil, fmt.Errorf("product %q: %w", id, shared.ErrNotFound)
}

// BySlug resolves a product by its URL slug
func (s *FileStore) BySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	if i, ok := s.bySlug[slug]; ok {
		p := s.products[i]
		return &p, nil
	}
	return nil, fmt.Errorf("product slug %q: %w", slug, shared.ErrNotFound)
}

// All returns every product in catalog order
func (s *FileStore) All(ctx context.Context) ([]catalog.Product, error) {
	products := make([]catalog.Product, len(s.products))
	copy(products, s.products)
	return products, nil
}

// ByCategory returns products in the category, optionally narrowed by
// subcategory. An unknown category yields an empty list, not an error.
func (s *FileStore) ByCategory(ctx context.Context, category, subcategory string) ([]catalog.Product, error) {
	var products []catalog.Product
	for _, p := range s.products {
		if !strings.EqualFold(p.Category, category) {
			continue
		}
		if subcategory != "" && !strings.EqualFold(p.Subcategory, subcategory) {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}
