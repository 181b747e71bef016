package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"

	"fleet-routing-engine/internal/ports"
)

// RedisDistanceCache is a Redis-backed cache for origin->destination
// distance results. It sits in front of SQLDistanceCache/SqliteDistanceCache
// as a fast, TTL-bounded layer so repeated plans against the same address
// book avoid both the external ORS call and the durable-store round trip.
type RedisDistanceCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisDistanceCache(client *redis.Client, ttl time.Duration) *RedisDistanceCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisDistanceCache{Client: client, TTL: ttl}
}

// distanceKey hashes the origin/destination pair with xxhash rather than
// storing the raw address text as the Redis key, keeping keys short and
// independent of address length.
func distanceKey(origin, destination string) string {
	h := xxhash.New()
	_, _ = h.WriteString(origin)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(destination)
	return fmt.Sprintf("dist:%x", h.Sum64())
}

func (c *RedisDistanceCache) GetMany(ctx context.Context, origin string, destinations []string) (map[string]ports.DistanceResult, error) {
	out := make(map[string]ports.DistanceResult, len(destinations))
	if len(destinations) == 0 {
		return out, nil
	}

	keys := make([]string, len(destinations))
	for i, d := range destinations {
		keys[i] = distanceKey(origin, d)
	}

	vals, err := c.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis distance cache: mget: %w", err)
	}

	for i, v := range vals {
		if v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		var r ports.DistanceResult
		if err := json.Unmarshal([]byte(s), &r); err != nil {
			continue
		}
		out[destinations[i]] = r
	}

	return out, nil
}

func (c *RedisDistanceCache) PutMany(ctx context.Context, origin string, results map[string]ports.DistanceResult) error {
	if len(results) == 0 {
		return nil
	}

	pipe := c.Client.Pipeline()
	for dest, r := range results {
		payload, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("redis distance cache: marshal %q: %w", dest, err)
		}
		pipe.Set(ctx, distanceKey(origin, dest), payload, c.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis distance cache: pipeline exec: %w", err)
	}

	return nil
}
