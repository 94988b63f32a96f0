package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueryCache(now *time.Time) *QueryCache {
	cache := NewQueryCache()
	cache.now = func() time.Time { return *now }
	return cache
}

func TestQueryCacheMissThenHit(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := newTestQueryCache(&now)
	calls := 0
	producer := func(context.Context) (interface{}, error) {
		calls++
		return "payload", nil
	}

	value, hit, err := cache.GetOrCompute(context.Background(), "k", time.Minute, producer)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "payload", value)
	assert.Equal(t, 1, calls)

	value, hit, err = cache.GetOrCompute(context.Background(), "k", time.Minute, producer)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "payload", value)
	assert.Equal(t, 1, calls)
}

func TestQueryCacheExpiryTriggersRecompute(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := newTestQueryCache(&now)
	calls := 0
	producer := func(context.Context) (interface{}, error) {
		calls++
		return calls, nil
	}

	_, _, err := cache.GetOrCompute(context.Background(), "k", time.Minute, producer)
	require.NoError(t, err)

	now = now.Add(59 * time.Second)
	value, hit, err := cache.GetOrCompute(context.Background(), "k", time.Minute, producer)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, value)

	now = now.Add(2 * time.Second)
	value, hit, err = cache.GetOrCompute(context.Background(), "k", time.Minute, producer)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, value)
	assert.Equal(t, 2, calls)
}

func TestQueryCacheDistinctKeysAreIndependent(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := newTestQueryCache(&now)

	a, _, err := cache.GetOrCompute(context.Background(), "a", time.Minute, func(context.Context) (interface{}, error) {
		return "A", nil
	})
	require.NoError(t, err)
	b, _, err := cache.GetOrCompute(context.Background(), "b", time.Minute, func(context.Context) (interface{}, error) {
		return "B", nil
	})
	require.NoError(t, err)

	assert.Equal(t, "A", a)
	assert.Equal(t, "B", b)
}

func TestQueryCacheErrorNotCached(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := newTestQueryCache(&now)
	boom := errors.New("fetch failed")
	calls := 0

	_, _, err := cache.GetOrCompute(context.Background(), "k", time.Minute, func(context.Context) (interface{}, error) {
		calls++
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	value, hit, err := cache.GetOrCompute(context.Background(), "k", time.Minute, func(context.Context) (interface{}, error) {
		calls++
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "recovered", value)
	assert.Equal(t, 2, calls)
}

func TestQueryCacheCoalescesConcurrentCalls(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := newTestQueryCache(&now)

	var calls int32
	release := make(chan struct{})
	producer := func(context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "shared", nil
	}

	const waiters = 8
	var wg sync.WaitGroup
	results := make([]interface{}, waiters)
	hits := make([]bool, waiters)
	errs := make([]error, waiters)
	started := make(chan struct{}, waiters)

	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			started <- struct{}{}
			results[i], hits[i], errs[i] = cache.GetOrCompute(context.Background(), "k", time.Minute, producer)
		}(i)
	}
	for i := 0; i < waiters; i++ {
		<-started
	}
	// give the goroutines time to reach the cache before releasing
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for i := 0; i < waiters; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "shared", results[i])
		assert.True(t, hits[i])
	}
}

func TestQueryCacheWaiterRespectsContext(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := newTestQueryCache(&now)

	release := make(chan struct{})
	entered := make(chan struct{})
	go func() {
		_, _, _ = cache.GetOrCompute(context.Background(), "k", time.Minute, func(context.Context) (interface{}, error) {
			close(entered)
			<-release
			return "late", nil
		})
	}()
	// wait for the leader's producer to start before joining the flight
	<-entered

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := cache.GetOrCompute(ctx, "k", time.Minute, func(context.Context) (interface{}, error) {
		return "unused", nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	close(release)
}

func TestQueryCacheInvalidate(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := newTestQueryCache(&now)
	calls := 0
	producer := func(context.Context) (interface{}, error) {
		calls++
		return calls, nil
	}

	_, _, err := cache.GetOrCompute(context.Background(), "k", time.Minute, producer)
	require.NoError(t, err)
	cache.Invalidate("k")

	_, hit, err := cache.GetOrCompute(context.Background(), "k", time.Minute, producer)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, calls)
}
