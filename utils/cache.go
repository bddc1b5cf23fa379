// Package utils provides the cache layer shared by the zone directory and
// the serve-mode result cache, plus small HTTP response helpers.
package utils

import (
	"context"
	"time"
)

// CacheResult represents the outcome of a cache lookup. A miss is not an
// error; Found distinguishes the two.
type CacheResult struct {
	Data  string
	Found bool
}

// Cache defines the operations the rest of the application needs from a
// cache backend.
type Cache interface {
	Get(ctx context.Context, key string) (CacheResult, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	IsHealthy() bool
}
