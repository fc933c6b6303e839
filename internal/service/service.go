// Package service implements the song aggregation use cases on top of the
// repositories and the cache.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"songapi/internal/cache"
)

// SongKey is the cache key of a song's detail view.
func SongKey(id int64) string {
	return fmt.Sprintf("song:%d", id)
}

// evict drops keys from the cache. Failures are logged; the next read
// repopulates or the TTL expires the entry.
func evict(ctx context.Context, c cache.Cache, logger zerolog.Logger, keys ...string) {
	if err := c.Delete(ctx, keys...); err != nil {
		logger.Warn().Err(err).Str("event", "cache_evict_failed").Strs("keys", keys).Msg("cache bypassed")
	}
}

func orNow(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}
