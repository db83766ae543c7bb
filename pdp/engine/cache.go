package engine

import (
	"context"
	"sync"
	"time"
)

// FetchFunc loads a fresh value from the backing store.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// TTLCache holds one process-wide value refreshed lazily on first use after
// expiry. Refresh is not coordinated: concurrent observers of an expired
// value may each fetch and overwrite, which is harmless since every fetch
// reads the same source of truth. The mutex only keeps the overwrite itself
// race-free.
type TTLCache[T any] struct {
	mu        sync.RWMutex
	value     T
	fetchedAt time.Time
	ttl       time.Duration
	fetch     FetchFunc[T]
}

func NewTTLCache[T any](ttl time.Duration, fetch FetchFunc[T]) *TTLCache[T] {
	return &TTLCache[T]{ttl: ttl, fetch: fetch}
}

// GetOrRefresh returns the cached value, fetching first when the cache is
// empty or expired. A failed refresh returns the error; stale data is
// served only within the TTL window.
func (c *TTLCache[T]) GetOrRefresh(ctx context.Context) (T, error) {
	c.mu.RLock()
	if !c.fetchedAt.IsZero() && time.Since(c.fetchedAt) < c.ttl {
		value := c.value
		c.mu.RUnlock()
		return value, nil
	}
	c.mu.RUnlock()

	value, err := c.fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.mu.Lock()
	c.value = value
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	return value, nil
}
