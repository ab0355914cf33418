package cache_test

import (
	"github.com/stretchr/testify/assert"
	"lookescolar-server/internal/cache"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestTTLCache_ExpiresAfterTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	c := cache.NewTTLCache[string, int](5*time.Minute, clock)

	c.Set("tenant-1", 42)

	value, ok := c.Get("tenant-1")
	assert.True(t, ok)
	assert.Equal(t, 42, value)

	clock.Advance(4*time.Minute + 59*time.Second)
	_, ok = c.Get("tenant-1")
	assert.True(t, ok, "stale read within ttl is expected")

	clock.Advance(time.Second)
	value, ok = c.Get("tenant-1")
	assert.False(t, ok)
	assert.Zero(t, value)
}

func TestTTLCache_SetRefreshesExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	c := cache.NewTTLCache[string, string](time.Minute, clock)

	c.Set("k", "v1")
	clock.Advance(50 * time.Second)
	c.Set("k", "v2")
	clock.Advance(50 * time.Second)

	value, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v2", value)
}

func TestTTLCache_Invalidate(t *testing.T) {
	c := cache.NewTTLCache[string, int](time.Hour, nil)

	c.Set("a", 1)
	c.Invalidate("a")
	c.Invalidate("missing")

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestTTLCache_Purge(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	c := cache.NewTTLCache[int, int](time.Minute, clock)

	c.Set(1, 1)
	clock.Advance(30 * time.Second)
	c.Set(2, 2)
	clock.Advance(31 * time.Second)

	assert.Equal(t, 1, c.Purge())
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get(2)
	assert.True(t, ok)
}

func TestTTLCache_ConcurrentAccess(t *testing.T) {
	c := cache.NewTTLCache[int, int](time.Minute, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set(j, n)
				c.Get(j)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, c.Len())
}
