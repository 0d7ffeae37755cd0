package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key layout for cached aggregates.
const (
	KeyPlayerSummaries = "gully:players:summaries"
	KeyTeamAnalytics   = "gully:team:analytics"
	KeyMatchResults    = "gully:matches:results"

	// DefaultTTL bounds staleness between ingest runs.
	DefaultTTL = 15 * time.Minute
)

// RedisCache holds computed aggregates between ingest runs
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache connection
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
	}, nil
}

// Close closes the Redis connection
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Client returns the underlying Redis client
func (rc *RedisCache) Client() *redis.Client {
	return rc.client
}

// HealthCheck pings Redis to verify connection
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// SetJSON marshals a value and stores it under key with the default TTL
func (rc *RedisCache) SetJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling cache value for %s: %w", key, err)
	}
	return rc.client.Set(ctx, key, data, DefaultTTL).Err()
}

// GetJSON fetches and unmarshals a cached value into dest. The bool reports
// whether the key was present.
func (rc *RedisCache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := rc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("unmarshaling cache value for %s: %w", key, err)
	}
	return true, nil
}

// Delete removes keys
func (rc *RedisCache) Delete(ctx context.Context, keys ...string) error {
	return rc.client.Del(ctx, keys...).Err()
}

// Invalidate drops every cached aggregate, forcing recomputation
func (rc *RedisCache) Invalidate(ctx context.Context) error {
	return rc.Delete(ctx, KeyPlayerSummaries, KeyTeamAnalytics, KeyMatchResults)
}
