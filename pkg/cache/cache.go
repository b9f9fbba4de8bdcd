// Package cache stores encoded packing plans keyed by request content.
//
// Planning is deterministic: the same request and options always yield the
// same containers, so a plan can be served from cache whenever the request
// hash and the plan-affecting options match. Four backends are provided:
//
//   - [NullCache]: disables caching
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for API deployments
//   - [MongoCache]: document store with a TTL index
//
// Keys are built by a [Keyer]; wrap it in a [ScopedKeyer] to isolate tenants.
package cache

import (
	"context"
	"time"
)

// TTLPlan is how long a computed plan stays cached.
const TTLPlan = 24 * time.Hour

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get returns (nil, false, nil) on a miss. A zero ttl stores the entry
// without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
