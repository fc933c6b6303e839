package database

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
)

// Gate bounds concurrent use of a connection pool. Callers beyond capacity
// queue until a slot frees, the acquire timeout elapses, or their context ends;
// the latter two fail with ErrPoolExhausted.
type Gate struct {
	sem      *semaphore.Weighted
	capacity int64
	timeout  time.Duration
	inUse    atomic.Int64
	waiting  atomic.Int64
}

// NewGate returns a gate admitting capacity concurrent holders. A capacity
// below one is treated as one.
func NewGate(capacity int, acquireTimeout time.Duration) *Gate {
	if capacity < 1 {
		capacity = 1
	}
	return &Gate{
		sem:      semaphore.NewWeighted(int64(capacity)),
		capacity: int64(capacity),
		timeout:  acquireTimeout,
	}
}

// Acquire takes a slot. The returned release func is idempotent.
func (g *Gate) Acquire(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !g.sem.TryAcquire(1) {
		g.waiting.Add(1)
		waitCtx := ctx
		if g.timeout > 0 {
			var cancel context.CancelFunc
			waitCtx, cancel = context.WithTimeout(ctx, g.timeout)
			defer cancel()
		}
		err := g.sem.Acquire(waitCtx, 1)
		g.waiting.Add(-1)
		if err != nil {
			return nil, fmt.Errorf("%w: waited for a free slot of %d: %v", ErrPoolExhausted, g.capacity, err)
		}
	}
	g.inUse.Add(1)

	var once sync.Once
	return func() {
		once.Do(func() {
			g.inUse.Add(-1)
			g.sem.Release(1)
		})
	}, nil
}

// Stats reports the gate's current occupancy.
func (g *Gate) Stats() PoolStats {
	return PoolStats{
		Capacity: g.capacity,
		InUse:    g.inUse.Load(),
		Waiting:  g.waiting.Load(),
	}
}
