package cache

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Instrumented decorates a Cache with cache_operations_total{op,result}.
type Instrumented struct {
	next Cache
	ops  *prometheus.CounterVec
}

var _ Cache = (*Instrumented)(nil)

func NewInstrumented(next Cache, reg prometheus.Registerer) (*Instrumented, error) {
	c := &Instrumented{
		next: next,
		ops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_operations_total",
				Help: "Cache operations by outcome.",
			},
			[]string{"op", "result"},
		),
	}
	if err := reg.Register(c.ops); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Instrumented) observe(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.ops.WithLabelValues(op, result).Inc()
}

func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, found, err := c.next.Get(ctx, key)
	switch {
	case err != nil:
		c.ops.WithLabelValues("get", "error").Inc()
	case found:
		c.ops.WithLabelValues("get", "hit").Inc()
	default:
		c.ops.WithLabelValues("get", "miss").Inc()
	}
	return b, found, err
}

func (c *Instrumented) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := c.next.Set(ctx, key, value, ttl)
	c.observe("set", err)
	return err
}

func (c *Instrumented) Delete(ctx context.Context, keys ...string) error {
	err := c.next.Delete(ctx, keys...)
	c.observe("delete", err)
	return err
}

func (c *Instrumented) RecordEvent(ctx context.Context, key, member string, score float64, ttl time.Duration) error {
	err := c.next.RecordEvent(ctx, key, member, score, ttl)
	c.observe("record_event", err)
	return err
}

func (c *Instrumented) Ping(ctx context.Context) error { return c.next.Ping(ctx) }

func (c *Instrumented) Close() error { return c.next.Close() }
