package providers

import (
	"context"
)

// CacheProvider is the port for the byte cache backing geocode results and
// bootcamp lookups. A cache miss is reported as an error from Get; callers
// fall through to the source of truth.
type CacheProvider interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with expiration
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error
}
