// Package cache is the best-effort key/value layer in front of the relational
// store. A miss is reported as found == false, never as an error.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Cache is a key/value cache. Callers treat every error as soft and fall back
// to the relational store.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set stores value under key. A ttl of zero keeps the key until evicted.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// RecordEvent appends member to the sorted set at key with the given score
	// and refreshes the set's expiry.
	RecordEvent(ctx context.Context, key, member string, score float64, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close() error
}

// Nop is the cache used when caching is disabled. Every read misses.
type Nop struct{}

var _ Cache = Nop{}

func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Nop) Delete(context.Context, ...string) error { return nil }
func (Nop) RecordEvent(context.Context, string, string, float64, time.Duration) error { return nil }
func (Nop) Ping(context.Context) error { return nil }
func (Nop) Close() error { return nil }

// Unavailable stands in for a configured cache that could not be reached at
// startup. Reads miss and writes are dropped, while Ping keeps returning Err
// so health checks report the outage.
type Unavailable struct {
	Err error
}

var _ Cache = Unavailable{}

func (Unavailable) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Unavailable) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Unavailable) Delete(context.Context, ...string) error { return nil }
func (Unavailable) RecordEvent(context.Context, string, string, float64, time.Duration) error {
	return nil
}
func (u Unavailable) Ping(context.Context) error { return u.Err }
func (Unavailable) Close() error { return nil }

// GetJSON decodes the value under key into dst.
func GetJSON(ctx context.Context, c Cache, key string, dst any) (bool, error) {
	b, found, err := c.Get(ctx, key)
	if err != nil || !found {
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return c.Set(ctx, key, b, ttl)
}

// ReadThrough returns the cached value under key, or calls load on a miss and
// writes the result back with ttl. Cache failures are logged and bypassed;
// only load errors are returned.
func ReadThrough[T any](ctx context.Context, c Cache, logger zerolog.Logger, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var cached T
	found, err := GetJSON(ctx, c, key, &cached)
	if err != nil {
		logger.Warn().Err(err).Str("event", "cache_read_failed").Str("key", key).Msg("cache bypassed")
	}
	if found {
		return cached, nil
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	if err := SetJSON(ctx, c, key, v, ttl); err != nil {
		logger.Warn().Err(err).Str("event", "cache_write_failed").Str("key", key).Msg("cache bypassed")
	}
	return v, nil
}
