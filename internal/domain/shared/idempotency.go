package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers which client-supplied keys already produced a
// resource so that a retried request does not create a second one.
type IdempotencyStore interface {
	// Reserve claims key for ttl. It returns false if the key is already
	// claimed or bound.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Bind records the id of the resource created under key.
	Bind(ctx context.Context, key, resourceID string, ttl time.Duration) error

	// Lookup returns the bound resource id. An empty id with found=true means
	// the key is reserved but the original request has not finished.
	Lookup(ctx context.Context, key string) (resourceID string, found bool, err error)

	// Release drops a reservation after a failed request.
	Release(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is how long a key stays bound to the resource it produced
	TTL time.Duration

	// Enabled determines whether idempotency checking is enabled
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
