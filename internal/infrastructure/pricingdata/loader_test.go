package pricingdata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raamdecor/storefront/internal/domain/shared"
)

const matrixJSON = `{
  "version": "1.0",
  "currency": "EUR",
  "priceUnit": "cents",
  "dimensions": {
    "width": {"min": 10, "max": 30, "step": 10, "unit": "cm"},
    "height": {"min": 10, "max": 20, "step": 10, "unit": "cm"}
  },
  "matrix": [[100, 200], [300, 400], [500, 600]]
}`

func newTestLoader(t *testing.T) (*Loader, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blind.json"), []byte(matrixJSON), 0644))
	loader, err := NewLoader(dir)
	require.NoError(t, err)
	return loader, dir
}

func TestLoaderMatrix(t *testing.T) {
	loader, _ := newTestLoader(t)

	t.Run("loads and validates a matrix file", func(t *testing.T) {
		m, err := loader.Matrix("blind.json")
		require.NoError(t, err)
		assert.Equal(t, "1.0", m.Version)
		assert.Equal(t, int64(400), m.Cells[1][1])
	})

	t.Run("serves repeated loads from cache", func(t *testing.T) {
		first, err := loader.Matrix("blind.json")
		require.NoError(t, err)
		second, err := loader.Matrix("blind.json")
		require.NoError(t, err)
		assert.Same(t, first, second)
	})

	t.Run("missing file is not found", func(t *testing.T) {
		_, err := loader.Matrix("missing.json")
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("malformed json is a hard failure", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{oops"), 0644))
		loader, err := NewLoader(dir)
		require.NoError(t, err)

		_, err = loader.Matrix("bad.json")
		require.Error(t, err)
	})

	t.Run("structurally invalid matrix is a hard failure", func(t *testing.T) {
		dir := t.TempDir()
		ragged := `{"version":"1","currency":"EUR","priceUnit":"cents",
			"dimensions":{"width":{"min":10,"max":20,"step":10,"unit":"cm"},
			"height":{"min":10,"max":20,"step":10,"unit":"cm"}},
			"matrix":[[100,200],[300]]}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "ragged.json"), []byte(ragged), 0644))
		loader, err := NewLoader(dir)
		require.NoError(t, err)

		_, err = loader.Matrix("ragged.json")
		require.Error(t, err)
	})

	t.Run("rejects path escape", func(t *testing.T) {
		_, err := loader.Matrix("../../etc/passwd")
		require.Error(t, err)
	})
}

func TestNewLoader(t *testing.T) {
	t.Run("rejects missing directory", func(t *testing.T) {
		_, err := NewLoader("/does/not/exist")
		require.Error(t, err)
	})
}
