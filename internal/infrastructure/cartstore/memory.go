package cartstore

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/raamdecor/storefront/internal/domain/cart"
)

// MemoryStore implements cart.Store with an in-process map. Suitable for
// development and testing; state does not survive a restart.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
	retention time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewMemoryStore creates an in-memory cart store
func NewMemoryStore(retention time.Duration, logger *zap.Logger) *MemoryStore {
	if retention <= 0 {
		retention = cart.DefaultRetention
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryStore{
		snapshots: make(map[string][]byte),
		retention: retention,
		logger:    logger,
		now:       time.Now,
	}
}

// Load returns the cart for the id, or nil if absent or discarded
func (s *MemoryStore) Load(ctx context.Context, cartID string) (*cart.Cart, error) {
	s.mu.RLock()
	data, ok := s.snapshots[cartID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	c, reason := cart.DecodeSnapshot(data, s.now(), s.retention)
	if reason != cart.DiscardNone {
		s.logger.Info("discarding stored cart",
			zap.String("cart_id", cartID),
			zap.String("reason", string(reason)))
		s.mu.Lock()
		delete(s.snapshots, cartID)
		s.mu.Unlock()
		return nil, nil
	}
	return c, nil
}

// Save persists a full snapshot of the cart
func (s *MemoryStore) Save(ctx context.Context, cartID string, c *cart.Cart) error {
	data, err := cart.EncodeSnapshot(c, s.now())
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snapshots[cartID] = data
	s.mu.Unlock()
	return nil
}

// Delete removes any persisted snapshot for the id
func (s *MemoryStore) Delete(ctx context.Context, cartID string) error {
	s.mu.Lock()
	delete(s.snapshots, cartID)
	s.mu.Unlock()
	return nil
}

var _ cart.Store = (*MemoryStore)(nil)
