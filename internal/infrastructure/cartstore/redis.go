package cartstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/raamdecor/storefront/internal/domain/cart"
)

// RedisStore implements cart.Store on Redis. Snapshots are stored under a
// key prefix with a server-side TTL matching the retention window; the lazy
// version and timestamp checks on load still apply, so a snapshot written by
// an older deployment is discarded even if Redis has not evicted it yet.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	retention time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewRedisStore creates a Redis-backed cart store and verifies the connection
func NewRedisStore(addr, password string, db int, retention time.Duration, logger *zap.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStoreWithClient(client, retention, logger), nil
}

// NewRedisStoreWithClient creates a store with an existing Redis client
func NewRedisStoreWithClient(client *redis.Client, retention time.Duration, logger *zap.Logger) *RedisStore {
	if retention <= 0 {
		retention = cart.DefaultRetention
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{
		client:    client,
		keyPrefix: "cart:snapshot:",
		retention: retention,
		logger:    logger,
		now:       time.Now,
	}
}

// Load returns the cart for the id, or nil if absent or discarded
func (s *RedisStore) Load(ctx context.Context, cartID string) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, s.keyPrefix+cartID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart %s: %w", cartID, err)
	}

	c, reason := cart.DecodeSnapshot(data, s.now(), s.retention)
	if reason != cart.DiscardNone {
		s.logger.Info("discarding stored cart",
			zap.String("cart_id", cartID),
			zap.String("reason", string(reason)))
		if err := s.client.Del(ctx, s.keyPrefix+cartID).Err(); err != nil {
			s.logger.Warn("failed to delete discarded cart",
				zap.String("cart_id", cartID), zap.Error(err))
		}
		return nil, nil
	}
	return c, nil
}

// Save persists a full snapshot of the cart with the retention TTL
func (s *RedisStore) Save(ctx context.Context, cartID string, c *cart.Cart) error {
	data, err := cart.EncodeSnapshot(c, s.now())
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.keyPrefix+cartID, data, s.retention).Err(); err != nil {
		return fmt.Errorf("failed to save cart %s: %w", cartID, err)
	}
	return nil
}

// Delete removes any persisted snapshot for the id
func (s *RedisStore) Delete(ctx context.Context, cartID string) error {
	if err := s.client.Del(ctx, s.keyPrefix+cartID).Err(); err != nil {
		return fmt.Errorf("failed to delete cart %s: %w", cartID, err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ cart.Store = (*RedisStore)(nil)
