// Package cache stores augmented documents keyed by their inputs.
//
// The CLI uses a [FileCache] under the user cache directory; the HTTP
// server can share results between instances through a [RedisCache].
// A [NullCache] disables caching. Keys come from a [Keyer] so that every
// backend agrees on what identifies a run.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TTLScene is how long an augmented document stays cached.
const TTLScene = 7 * 24 * time.Hour

// NullCache never stores anything; every Get misses. It backs --no-cache
// and servers without Redis.
type NullCache struct{}

func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error { return nil }
func (NullCache) Close() error { return nil }
