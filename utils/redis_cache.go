package utils

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisProbeInterval is the minimum time between health probes of a Redis
// backend that was last seen unhealthy.
const redisProbeInterval = 30 * time.Second

// RedisCache implements Cache on top of a Redis client. Health is probed
// lazily: a failed operation marks the backend unhealthy, and a Ping is
// retried at most once per probe interval so an absent Redis does not add a
// connection attempt to every lookup.
type RedisCache struct {
	client *redis.Client

	mu        sync.Mutex
	healthy   bool
	lastProbe time.Time
}

// NewRedisCache creates a Redis-backed cache and performs an initial probe.
func NewRedisCache(client *redis.Client) *RedisCache {
	rc := &RedisCache{client: client}
	rc.probe()
	return rc
}

// Get retrieves a value from Redis. A redis.Nil reply is a plain miss.
func (rc *RedisCache) Get(ctx context.Context, key string) (CacheResult, error) {
	if !rc.IsHealthy() {
		return CacheResult{Found: false}, nil
	}

	value, err := rc.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		log.Printf("Serving cached result from Redis for key: %s\n", key)
		return CacheResult{Data: value, Found: true}, nil
	case err == redis.Nil:
		return CacheResult{Found: false}, nil
	default:
		rc.markUnhealthy()
		return CacheResult{Found: false}, err
	}
}

// Set stores a value in Redis; writes are skipped while unhealthy.
func (rc *RedisCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if !rc.IsHealthy() {
		return nil
	}
	if err := rc.client.Set(ctx, key, value, expiration).Err(); err != nil {
		rc.markUnhealthy()
		return err
	}
	return nil
}

// IsHealthy reports whether Redis is reachable, re-probing a down backend at
// most once per probe interval.
func (rc *RedisCache) IsHealthy() bool {
	rc.mu.Lock()
	healthy := rc.healthy
	stale := !healthy && time.Since(rc.lastProbe) > redisProbeInterval
	rc.mu.Unlock()

	if stale {
		return rc.probe()
	}
	return healthy
}

func (rc *RedisCache) probe() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := rc.client.Ping(ctx).Err()

	rc.mu.Lock()
	rc.healthy = err == nil
	rc.lastProbe = time.Now()
	healthy := rc.healthy
	rc.mu.Unlock()
	return healthy
}

func (rc *RedisCache) markUnhealthy() {
	rc.mu.Lock()
	rc.healthy = false
	rc.lastProbe = time.Now()
	rc.mu.Unlock()
}
