package cache

import (
	"context"
	"time"
)

// NullCache disables plan caching: every lookup misses and writes are
// dropped. It is what [Open] returns for [BackendNone] and what the CLI falls
// back to when the configured backend cannot be reached.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }
