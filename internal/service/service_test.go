package service

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"songapi/internal/cache"
)

func newTestCache(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := cache.NewRedisFromClient(redis.NewClient(&redis.Options{
		Addr:        mr.Addr(),
		PoolSize:    4,
		PoolTimeout: time.Second,
	}))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}
