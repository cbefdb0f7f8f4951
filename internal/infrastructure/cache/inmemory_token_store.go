package cache

import (
	"context"
	"sync"
	"time"

	"github.com/raamdecor/storefront/internal/domain/shared"
)

// entry represents a marked token with expiration
type entry struct {
	expiresAt time.Time
}

// InMemoryTokenStore implements shared.TokenStore using an in-memory map.
// Suitable for single-instance deployments and testing.
type InMemoryTokenStore struct {
	mu        sync.RWMutex
	entries   map[string]entry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryTokenStore creates a new in-memory token store.
// It starts a background goroutine to clean up expired entries.
func NewInMemoryTokenStore() *InMemoryTokenStore {
	store := &InMemoryTokenStore{
		entries:  make(map[string]entry),
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// MarkInFlight marks a checkout token as in flight with a TTL.
// Returns true if the token was newly marked, false if a submission
// with the same token is already in flight.
func (s *InMemoryTokenStore) MarkInFlight(ctx context.Context, token string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, exists := s.entries[token]; exists {
		if time.Now().Before(e.expiresAt) {
			return false, nil
		}
		// expired entry, overwrite
	}

	s.entries[token] = entry{
		expiresAt: time.Now().Add(ttl),
	}

	return true, nil
}

// Release removes a token so the attempt can be resubmitted
func (s *InMemoryTokenStore) Release(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemoryTokenStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (s *InMemoryTokenStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemoryTokenStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for token, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, token)
		}
	}
}

// Size returns the number of entries in the store (for testing/monitoring)
func (s *InMemoryTokenStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Ensure InMemoryTokenStore implements TokenStore
var _ shared.TokenStore = (*InMemoryTokenStore)(nil)
