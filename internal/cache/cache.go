// Package cache содержит потокобезопасный кэш с временем жизни записей и ограничением размера.
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value  T
	expiry time.Time
}

// Cache хранит значения по ключу до истечения TTL. При заполнении вытесняется запись,
// срок которой истекает раньше остальных.
type Cache[T any] struct {
	mu         sync.RWMutex
	entries    map[string]entry[T]
	clone      func(T) T
	maxEntries int
	now        func() time.Time
}

// New создаёт кэш. clone может быть nil; maxEntries <= 0 снимает ограничение размера.
func New[T any](clone func(T) T, maxEntries int) *Cache[T] {
	return &Cache[T]{
		entries:    make(map[string]entry[T]),
		clone:      clone,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get возвращает копию значения, если запись есть и не истекла.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	if c.now().After(e.expiry) {
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && cur.expiry.Equal(e.expiry) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		var zero T
		return zero, false
	}
	return c.cloneValue(e.value), true
}

// Set сохраняет значение на время ttl.
func (c *Cache[T]) Set(key string, value T, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evict(now)
	}
	c.entries[key] = entry[T]{value: c.cloneValue(value), expiry: now.Add(ttl)}
}

// Delete удаляет запись.
func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len возвращает число записей, включая ещё не удалённые истёкшие.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evict удаляет истёкшие записи, а если их нет, запись с ближайшим сроком.
func (c *Cache[T]) evict(now time.Time) {
	var (
		oldestKey string
		oldest    time.Time
	)
	for k, e := range c.entries {
		if now.After(e.expiry) {
			delete(c.entries, k)
			continue
		}
		if oldestKey == "" || e.expiry.Before(oldest) {
			oldestKey, oldest = k, e.expiry
		}
	}
	if len(c.entries) >= c.maxEntries && oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func (c *Cache[T]) cloneValue(value T) T {
	if c.clone == nil {
		return value
	}
	return c.clone(value)
}
