package service

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// QueryCache is the process-wide result cache: key to (value, fetched-at)
// with a per-call TTL checked only on access. A singleflight group collapses
// concurrent computations for the same key so identical dashboard queries
// never trigger duplicate remote fetches. Entries are never expired
// proactively; memory is bounded by the number of distinct query shapes.
type QueryCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	group   singleflight.Group
	now     func() time.Time
}

type cacheEntry struct {
	value     interface{}
	fetchedAt time.Time
}

// NewQueryCache constructs an empty cache using the wall clock.
func NewQueryCache() *QueryCache {
	return &QueryCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// GetOrCompute returns the live cached value for key, or invokes producer,
// stores its result, and returns it. The boolean reports whether the value
// was served without running producer for this caller, either from a live
// entry or from another caller's in-flight computation. A producer failure,
// including context cancellation mid-fetch, reaches every caller sharing
// the flight and is never cached.
func (c *QueryCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, producer func(ctx context.Context) (interface{}, error)) (interface{}, bool, error) {
	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && c.now().Sub(entry.fetchedAt) < ttl {
		c.mu.Unlock()
		return entry.value, true, nil
	}
	c.mu.Unlock()

	ch := c.group.DoChan(key, func() (interface{}, error) {
		value, err := producer(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = cacheEntry{value: value, fetchedAt: c.now()}
		c.mu.Unlock()
		return value, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, false, res.Err
		}
		return res.Val, res.Shared, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// Invalidate drops the entry for key, if any.
func (c *QueryCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
