package pricingdata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/raamdecor/storefront/internal/domain/pricing"
	"github.com/raamdecor/storefront/internal/domain/shared"
)

// Loader reads per-product pricing matrices from JSON files under a base
// directory. Matrices are parsed and validated once, then served read-only
// from an in-memory cache; they are never mutated at runtime. A missing or
// malformed file is a hard failure for that product's pricing - there is no
// default price.
type Loader struct {
	dir string

	mu    sync.RWMutex
	cache map[string]*pricing.Matrix
}

// NewLoader creates a loader rooted at dir
func NewLoader(dir string) (*Loader, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("pricing data directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("pricing data path %s is not a directory", dir)
	}
	return &Loader{
		dir:   dir,
		cache: make(map[string]*pricing.Matrix),
	}, nil
}

// Matrix returns the validated pricing matrix stored at matrixPath, relative
// to the loader's base directory.
func (l *Loader) Matrix(matrixPath string) (*pricing.Matrix, error) {
	l.mu.RLock()
	if m, ok := l.cache[matrixPath]; ok {
		l.mu.RUnlock()
		return m, nil
	}
	l.mu.RUnlock()

	fullPath, err := l.resolvePath(matrixPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("pricing matrix not found: %s: %w", matrixPath, shared.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read pricing matrix %s: %w", matrixPath, err)
	}

	var m pricing.Matrix
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse pricing matrix %s: %w", matrixPath, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pricing matrix %s: %w", matrixPath, err)
	}

	l.mu.Lock()
	l.cache[matrixPath] = &m
	l.mu.Unlock()
	return &m, nil
}

// resolvePath joins matrixPath onto the base directory, rejecting paths that
// would escape it.
func (l *Loader) resolvePath(matrixPath string) (string, error) {
	cleaned := filepath.Clean("/" + matrixPath)
	full := filepath.Join(l.dir, cleaned)
	if !strings.HasPrefix(full, filepath.Clean(l.dir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid pricing matrix path: %s", matrixPath)
	}
	return full, nil
}
