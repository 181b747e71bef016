package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"

	"fleet-routing-engine/internal/domain"
)

// RedisGeocodeCache is a Redis-backed cache mapping addresses to
// coordinates, sitting in front of SQLGeocodeCache/SqliteGeocodeCache.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

func geocodeKey(address string) string {
	return fmt.Sprintf("geo:%x", xxhash.Sum64String(address))
}

func (c *RedisGeocodeCache) GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	out := make(map[string]domain.Coordinates, len(addresses))
	if len(addresses) == 0 {
		return out, nil
	}

	keys := make([]string, len(addresses))
	for i, a := range addresses {
		keys[i] = geocodeKey(a)
	}

	vals, err := c.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis geocode cache: mget: %w", err)
	}

	for i, v := range vals {
		if v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		var coord domain.Coordinates
		if err := json.Unmarshal([]byte(s), &coord); err != nil {
			continue
		}
		out[addresses[i]] = coord
	}

	return out, nil
}

func (c *RedisGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if len(results) == 0 {
		return nil
	}

	pipe := c.Client.Pipeline()
	for addr, coord := range results {
		payload, err := json.Marshal(coord)
		if err != nil {
			return fmt.Errorf("redis geocode cache: marshal %q: %w", addr, err)
		}
		pipe.Set(ctx, geocodeKey(addr), payload, c.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis geocode cache: pipeline exec: %w", err)
	}

	return nil
}
