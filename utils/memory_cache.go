package utils

import (
	"context"
	"sync"
	"time"
)

// memoryEntry is a cached value with its expiry time.
type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache implements Cache with a mutex-guarded in-process map. It is
// the fallback backend when Redis is absent or unhealthy, and is sufficient
// on its own for single-shot batch runs.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	maxSize int
}

// NewMemoryCache creates a memory cache holding at most maxSize entries.
// cleanInterval controls how often expired entries are swept; a
// non-positive interval disables the sweeper, which batch runs do not need.
func NewMemoryCache(maxSize int, cleanInterval time.Duration) *MemoryCache {
	mc := &MemoryCache{
		entries: make(map[string]memoryEntry),
		maxSize: maxSize,
	}
	if cleanInterval > 0 {
		go mc.sweep(cleanInterval)
	}
	return mc
}

// Get retrieves a value; expired entries are dropped on access.
func (mc *MemoryCache) Get(ctx context.Context, key string) (CacheResult, error) {
	mc.mu.RLock()
	entry, ok := mc.entries[key]
	mc.mu.RUnlock()

	if !ok {
		return CacheResult{Found: false}, nil
	}
	if time.Now().After(entry.expiresAt) {
		mc.mu.Lock()
		delete(mc.entries, key)
		mc.mu.Unlock()
		return CacheResult{Found: false}, nil
	}
	return CacheResult{Data: entry.value, Found: true}, nil
}

// Set stores a value. When the cache is full, expired entries are evicted
// first; if it is still full the write is silently dropped rather than
// growing without bound.
func (mc *MemoryCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if _, exists := mc.entries[key]; !exists && len(mc.entries) >= mc.maxSize {
		mc.evictExpiredLocked()
		if len(mc.entries) >= mc.maxSize {
			return nil
		}
	}

	mc.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(expiration)}
	return nil
}

// IsHealthy always reports true; process memory cannot go away.
func (mc *MemoryCache) IsHealthy() bool {
	return true
}

func (mc *MemoryCache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		mc.mu.Lock()
		mc.evictExpiredLocked()
		mc.mu.Unlock()
	}
}

func (mc *MemoryCache) evictExpiredLocked() {
	now := time.Now()
	for key, entry := range mc.entries {
		if now.After(entry.expiresAt) {
			delete(mc.entries, key)
		}
	}
}
