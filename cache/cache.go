// Package cache provides the derived-view cache: a key/value store with
// per-entry TTL and explicit purge, used to memoize expensive read views.
// Two backends exist: a process-local in-memory cache and a shared Redis
// cache for multi-instance deployments.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// ViewCache is the contract read views and the invalidation coordinator
// program against.
type ViewCache interface {
	// GetOrCompute returns the cached value for key if an unexpired entry
	// exists; otherwise it invokes produce, stores the result under key
	// with the given TTL, and returns it.
	GetOrCompute(ctx context.Context, key string, ttl time.Duration, produce func() ([]byte, error)) ([]byte, error)
	// Purge removes an entry immediately regardless of TTL. Purging a
	// missing key is a no-op.
	Purge(ctx context.Context, key string) error
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryViewCache is a mutex-guarded in-memory ViewCache. Concurrent
// misses on the same key are coalesced through singleflight, so a
// producer runs at most once per miss window. The entry count is
// bounded; when full, the entry closest to expiry is evicted.
type MemoryViewCache struct {
	mu       sync.Mutex
	entries  map[string]memoryEntry
	capacity int
	group    singleflight.Group
	now      func() time.Time

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewMemoryViewCache returns a MemoryViewCache holding at most capacity
// entries.
func NewMemoryViewCache(capacity int) *MemoryViewCache {
	if capacity <= 0 {
		capacity = 1024
	}
	return &MemoryViewCache{
		entries:  make(map[string]memoryEntry, capacity),
		capacity: capacity,
		now:      time.Now,
	}
}

func (c *MemoryViewCache) lookup(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (c *MemoryViewCache) store(key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.capacity {
		c.evictSoonest()
	}
	c.entries[key] = memoryEntry{value: value, expiresAt: c.now().Add(ttl)}
}

// evictSoonest drops the entry with the earliest expiry. Must be called
// with mu held.
func (c *MemoryViewCache) evictSoonest() {
	var victim string
	var soonest time.Time
	for k, e := range c.entries {
		if victim == "" || e.expiresAt.Before(soonest) {
			victim = k
			soonest = e.expiresAt
		}
	}
	if victim != "" {
		delete(c.entries, victim)
	}
}

// GetOrCompute implements ViewCache.
func (c *MemoryViewCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, produce func() ([]byte, error)) ([]byte, error) {
	if v, ok := c.lookup(key); ok {
		c.hits.Add(1)
		return v, nil
	}
	c.misses.Add(1)

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Another caller may have filled the entry while we waited.
		if v, ok := c.lookup(key); ok {
			return v, nil
		}
		value, err := produce()
		if err != nil {
			return nil, err
		}
		c.store(key, value, ttl)
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Purge implements ViewCache.
func (c *MemoryViewCache) Purge(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	c.group.Forget(key)
	return nil
}

// Sweep removes expired entries and returns how many were dropped.
func (c *MemoryViewCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	dropped := 0
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			dropped++
		}
	}
	return dropped
}

// StartJanitor sweeps expired entries every interval until ctx is done.
func (c *MemoryViewCache) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Sweep()
			}
		}
	}()
}

// Len returns the current number of entries, expired or not.
func (c *MemoryViewCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats holds hit/miss counters.
type Stats struct {
	Size   int    `json:"size"`
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

// Stats returns a snapshot of the cache counters.
func (c *MemoryViewCache) Stats() Stats {
	return Stats{
		Size:   c.Len(),
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}
