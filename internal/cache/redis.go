// Package cache provides a Redis-backed cache for per-tenant pricing
// configuration snapshots. Entries are short-lived; admin writes delete
// the affected keys.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how stale a cached tenant snapshot may get even if an
// invalidation is lost.
const DefaultTTL = 2 * time.Minute

// ErrMiss is returned when a key is absent.
var ErrMiss = errors.New("cache miss")

// Cache represents a Redis cache implementation
type Cache struct {
	client *redis.Client
}

// NewCache creates a new Redis cache instance
func NewCache(addr, password string, db int) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}

// Client exposes the underlying connection for health checks.
func (c *Cache) Client() *redis.Client {
	return c.client
}

// Set sets a key-value pair in the cache
func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return c.client.Set(ctx, key, data, expiration).Err()
}

// Get retrieves a value from the cache. Returns ErrMiss when the key is
// absent.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return fmt.Errorf("failed to get key: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}

	return nil
}

// Delete removes keys from the cache
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// RulesKey is the cache key for a tenant's rule set of one kind.
func RulesKey(tenantID, kind string) string {
	return fmt.Sprintf("rules:%s:%s", tenantID, kind)
}

// DepositConfigKey is the cache key for a tenant's deposit config.
func DepositConfigKey(tenantID string) string {
	return fmt.Sprintf("depcfg:%s", tenantID)
}

// CapacityKey is the cache key for one suite-type capacity record.
func CapacityKey(tenantID, suiteType string) string {
	return fmt.Sprintf("cap:%s:%s", tenantID, suiteType)
}
