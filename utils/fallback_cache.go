package utils

import (
	"context"
	"time"
)

// FallbackCache composes a primary and a fallback Cache. Reads try the
// primary while it is healthy; writes go to both so a primary outage does
// not lose entries that the fallback can still serve.
type FallbackCache struct {
	primary  Cache
	fallback Cache
}

// NewFallbackCache creates a cache that prefers primary and degrades to
// fallback.
func NewFallbackCache(primary, fallback Cache) *FallbackCache {
	return &FallbackCache{primary: primary, fallback: fallback}
}

// Get reads from the primary cache when healthy, otherwise from the
// fallback. A primary error also degrades to the fallback.
func (fc *FallbackCache) Get(ctx context.Context, key string) (CacheResult, error) {
	if fc.primary.IsHealthy() {
		if result, err := fc.primary.Get(ctx, key); err == nil {
			return result, nil
		}
	}
	return fc.fallback.Get(ctx, key)
}

// Set writes to both caches. The primary error wins when both fail.
func (fc *FallbackCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	var primaryErr error
	if fc.primary.IsHealthy() {
		primaryErr = fc.primary.Set(ctx, key, value, expiration)
	}
	fallbackErr := fc.fallback.Set(ctx, key, value, expiration)
	if primaryErr != nil {
		return primaryErr
	}
	return fallbackErr
}

// IsHealthy reports true when either backend is usable.
func (fc *FallbackCache) IsHealthy() bool {
	return fc.primary.IsHealthy() || fc.fallback.IsHealthy()
}

// IsPrimaryHealthy reports the health of the primary backend alone; the
// readiness endpoint uses it to distinguish Redis from memory-only operation.
func (fc *FallbackCache) IsPrimaryHealthy() bool {
	return fc.primary.IsHealthy()
}
