package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers already-seen idempotency keys so that logically
// identical submissions can be short-circuited before hitting the database.
// The store is advisory: the database unique constraint remains the source
// of truth for deduplication.
type IdempotencyStore interface {
	// MarkProcessed marks a key as seen with a TTL.
	// Returns true if the key was newly marked, false if it was already present.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks whether a key has already been seen
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is the time-to-live for seen keys. After this duration the fast
	// path forgets the key; the database constraint still applies.
	TTL time.Duration

	// Enabled determines whether the fast-path check is enabled
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
