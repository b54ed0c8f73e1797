package cache

import (
	"context"
	"time"

	"github.com/deckgrid/deckgrid/pkg/observability"
)

// instrumented reports hits, misses, and writes to the registered
// observability cache hooks. keyType labels the artifact class ("layout",
// "label") so backends can split their metrics.
type instrumented struct {
	inner   Cache
	keyType string
}

// WithHooks wraps a cache so its operations emit observability events.
func WithHooks(inner Cache, keyType string) Cache {
	return &instrumented{inner: inner, keyType: keyType}
}

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.inner.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, c.keyType)
		} else {
			observability.Cache().OnCacheMiss(ctx, c.keyType)
		}
	}
	return data, hit, err
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.inner.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, c.keyType, len(data))
	}
	return err
}

func (c *instrumented) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

func (c *instrumented) Close() error {
	return c.inner.Close()
}

var _ Cache = (*instrumented)(nil)
