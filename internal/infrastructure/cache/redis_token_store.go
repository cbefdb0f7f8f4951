package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/raamdecor/storefront/internal/domain/shared"
)

// RedisTokenStore implements shared.TokenStore using Redis.
// This is suitable for distributed deployments where multiple instances
// need to share in-flight checkout state.
type RedisTokenStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisTokenStore creates a Redis-backed token store and verifies
// the connection.
func NewRedisTokenStore(addr, password string, db int) (*RedisTokenStore, error) {
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

	return &RedisTokenStore{
		client:    client,
		keyPrefix: "checkout:token:",
	}, nil
}

// NewRedisTokenStoreWithClient creates a store with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisTokenStoreWithClient(client *redis.Client, keyPrefix string) *RedisTokenStore {
	if keyPrefix == "" {
		keyPrefix = "checkout:token:"
	}
	return &RedisTokenStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// MarkInFlight marks a checkout token as in flight with a TTL.
// Uses SETNX so that only one submission per token wins.
func (s *RedisTokenStore) MarkInFlight(ctx context.Context, token string, ttl time.Duration) (bool, error) {
	key := s.keyPrefix + token

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark checkout token: %w", err)
	}

	return ok, nil
}

// Release removes a token so the attempt can be resubmitted
func (s *RedisTokenStore) Release(ctx context.Context, token string) error {
	key := s.keyPrefix + token
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to release checkout token: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisTokenStore) Close() error {
	return s.client.Close()
}

// Ensure RedisTokenStore implements TokenStore
var _ shared.TokenStore = (*RedisTokenStore)(nil)
