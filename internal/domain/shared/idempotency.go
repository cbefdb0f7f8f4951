package shared

import (
	"context"
	"time"
)

// TokenStore records checkout attempt tokens so a retried or double-clicked
// submission cannot create two draft orders for the same cart.
type TokenStore interface {
	// MarkInFlight records a token with a TTL.
	// Returns true if the token was newly recorded, false if it was already present.
	MarkInFlight(ctx context.Context, token string, ttl time.Duration) (bool, error)

	// Release removes a token so the cart can be submitted again.
	Release(ctx context.Context, token string) error

	// Close closes the store and releases resources
	Close() error
}

// TokenConfig holds configuration for checkout token handling
type TokenConfig struct {
	// TTL is the time-to-live for in-flight tokens. After this duration a
	// stuck token no longer blocks resubmission.
	TTL time.Duration

	// Enabled determines whether duplicate-submission protection is enabled
	Enabled bool
}

// DefaultTokenConfig returns the default token configuration
func DefaultTokenConfig() TokenConfig {
	return TokenConfig{
		TTL:     10 * time.Minute,
		Enabled: true,
	}
}
