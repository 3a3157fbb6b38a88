package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheNotAvailable is returned when no redis client is configured.
// Callers fall back to the database; the cache is never authoritative.
var ErrCacheNotAvailable = errors.New("cache not available")

// CacheHelper provides common caching operations for repositories.
type CacheHelper struct {
	client *redis.Client
	prefix string
}

func NewCacheHelper(client *redis.Client, prefix string) *CacheHelper {
	return &CacheHelper{
		client: client,
		prefix: prefix,
	}
}

// CacheConfig defines cache TTL and key prefix for one data class.
type CacheConfig struct {
	TTL    time.Duration
	Prefix string
}

var (
	// Users are read on every authenticated request.
	UserCacheConfig = CacheConfig{
		TTL:    5 * time.Minute,
		Prefix: "user:",
	}

	// Internship listings change rarely relative to how often they render.
	InternshipCacheConfig = CacheConfig{
		TTL:    5 * time.Minute,
		Prefix: "internship:",
	}
)

func (c *CacheHelper) key(key string) string {
	return fmt.Sprintf("%s%s", c.prefix, key)
}

// Get retrieves and unmarshals data from cache.
func (c *CacheHelper) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return ErrCacheNotAvailable
	}

	data, err := c.client.Get(ctx, c.key(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheNotAvailable
		}
		return fmt.Errorf("cache get failed: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("cache unmarshal failed: %w", err)
	}
	return nil
}

// Set marshals and stores data in cache with the given TTL.
func (c *CacheHelper) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return ErrCacheNotAvailable
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}
	return c.client.Set(ctx, c.key(key), data, ttl).Err()
}

// Delete removes keys from the cache.
func (c *CacheHelper) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	return c.client.Del(ctx, full...).Err()
}

// DeletePattern removes every key matching the pattern. Used for
// invalidating listing caches after a write.
func (c *CacheHelper) DeletePattern(ctx context.Context, pattern string) error {
	if c.client == nil {
		return nil
	}

	iter := c.client.Scan(ctx, 0, c.key(pattern), 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan failed: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// CacheOrExecute returns the cached value for key, or runs fetch, caches its
// result and writes it into dest. Cache errors degrade to a plain fetch.
func (c *CacheHelper) CacheOrExecute(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetch func() (interface{}, error)) error {
	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	}

	value, err := fetch()
	if err != nil {
		return err
	}

	// Best effort; a failed cache write must not fail the read.
	_ = c.Set(ctx, key, value, ttl)

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal fetched value: %w", err)
	}
	return json.Unmarshal(data, dest)
}

// CacheManager groups the per-data-class helpers.
type CacheManager struct {
	User       *CacheHelper
	Internship *CacheHelper
}

func NewCacheManager(client *redis.Client) *CacheManager {
	return &CacheManager{
		User:       NewCacheHelper(client, UserCacheConfig.Prefix),
		Internship: NewCacheHelper(client, InternshipCacheConfig.Prefix),
	}
}
