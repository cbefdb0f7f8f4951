package catalogdata

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raamdecor/storefront/internal/domain/shared"
)

const testCatalog = `{
	"version": "2026-08",
	"lastUpdated": "2026-08-15",
	"products": [
		{
			"id": "roller-white",
			"slug": "roller-blind-white",
			"name": "Roller Blind White",
			"category": "roller",
			"subcategory": "blackout",
			"description": "Plain white blackout roller blind.",
			"pricingMatrixPath": "roller-white.json",
			"samplePriceMinorUnits": 199
		},
		{
			"id": "roller-grey",
			"slug": "roller-blind-grey",
			"name": "Roller Blind Grey",
			"category": "roller",
			"subcategory": "translucent",
			"description": "Light-filtering grey roller blind.",
			"pricingMatrixPath": "roller-grey.json"
		},
		{
			"id": "wood-oak",
			"slug": "wooden-blind-oak",
			"name": "Wooden Blind Oak",
			"category": "wooden",
			"description": "50mm oak slats.",
			"pricingMatrixPath": "wood-oak.json"
		}
	]
}`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewFileStore(t *testing.T) {
	t.Run("loads a valid catalog", func(t *testing.T) {
		store, err := NewFileStore(writeCatalog(t, testCatalog))
		require.NoError(t, err)

		all, err := store.All(context.Background())
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := NewFileStore(writeCatalog(t, `{"products": [`))
		assert.Error(t, err)
	})

	t.Run("empty catalog rejected", func(t *testing.T) {
		_, err := NewFileStore(writeCatalog(t, `{"products": []}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no products")
	})

	t.Run("invalid product rejected", func(t *testing.T) {
		_, err := NewFileStore(writeCatalog(t, `{"products": [
			{"id": "x", "slug": "x", "name": "X", "category": "roller", "pricingMatrixPath": ""}
		]}`))
		assert.Error(t, err)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		_, err := NewFileStore(writeCatalog(t, `{"products": [
			{"id": "x", "slug": "a", "name": "A", "category": "roller", "pricingMatrixPath": "a.json"},
			{"id": "x", "slug": "b", "name": "B", "category": "roller", "pricingMatrixPath": "b.json"}
		]}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate product id")
	})

	t.Run("duplicate slug rejected", func(t *testing.T) {
		_, err := NewFileStore(writeCatalog(t, `{"products": [
			{"id": "a", "slug": "x", "name": "A", "category": "roller", "pricingMatrixPath": "a.json"},
			{"id": "b", "slug": "x", "name": "B", "category": "roller", "pricingMatrixPath": "b.json"}
		]}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate product slug")
	})
}

func TestFileStoreLookups(t *testing.T) {
	store, err := NewFileStore(writeCatalog(t, testCatalog))
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("by id", func(t *testing.T) {
		p, err := store.ByID(ctx, "roller-white")
		require.NoError(t, err)
		assert.Equal(t, "Roller Blind White", p.Name)
		assert.True(t, p.OffersSamples())
	})

	t.Run("by id not found", func(t *testing.T) {
		_, err := store.ByID(ctx, "nope")
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("by slug", func(t *testing.T) {
		p, err := store.BySlug(ctx, "wooden-blind-oak")
		require.NoError(t, err)
		assert.Equal(t, "wood-oak", p.ID)
		assert.False(t, p.OffersSamples())
	})

	t.Run("by slug not found", func(t *testing.T) {
		_, err := store.BySlug(ctx, "nope")
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("returned product is a copy", func(t *testing.T) {
		p, err := store.ByID(ctx, "roller-white")
		require.NoError(t, err)
		p.Name = "mutated"

		again, err := store.ByID(ctx, "roller-white")
		require.NoError(t, err)
		assert.Equal(t, "Roller Blind White", again.Name)
	})
}

func TestFileStoreByCategory(t *testing.T) {
	store, err := NewFileStore(writeCatalog(t, testCatalog))
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("category match is case insensitive", func(t *testing.T) {
		products, err := store.ByCategory(ctx, "Roller", "")
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("subcategory narrows", func(t *testing.T) {
		products, err := store.ByCategory(ctx, "roller", "blackout")
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "roller-white", products[0].ID)
	})

	t.Run("unknown category yields empty list", func(t *testing.T) {
		products, err := store.ByCategory(ctx, "vertical", "")
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}
