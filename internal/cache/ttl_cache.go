package cache

import (
	"sync"
	"time"
)

// Clock : источник времени, подменяется в тестах
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock : реальное время
var SystemClock Clock = systemClock{}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache : кэш в памяти процесса. Значение живёт ttl с момента записи,
// устаревшее чтение в пределах ttl допустимо.
type TTLCache[K comparable, V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	clock   Clock
	entries map[K]entry[V]
}

func NewTTLCache[K comparable, V any](ttl time.Duration, clock Clock) *TTLCache[K, V] {
	if clock == nil {
		clock = SystemClock
	}
	return &TTLCache[K, V]{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[K]entry[V]),
	}
}

func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !c.clock.Now().Before(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, expiresAt: c.clock.Now().Add(c.ttl)}
}

func (c *TTLCache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Purge : удаляет просроченные записи, возвращает сколько удалено
func (c *TTLCache[K, V]) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	removed := 0
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
