package cache

import (
	"context"
	"fmt"

	"fleet-routing-engine/internal/domain"
	"fleet-routing-engine/internal/ports"
)

// DistanceCache is the storage contract ORSDistanceProvider depends on for
// origin->destination distance results. SQLDistanceCache, SqliteDistanceCache
// and LayeredDistanceCache all satisfy it.
type DistanceCache interface {
	GetMany(ctx context.Context, origin string, destinations []string) (map[string]ports.DistanceResult, error)
	PutMany(ctx context.Context, origin string, results map[string]ports.DistanceResult) error
}

// GeocodeCache is the storage contract ORSDistanceProvider depends on for
// address->coordinate lookups. SQLGeocodeCache, SqliteGeocodeCache and
// LayeredGeocodeCache all satisfy it.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}

// LayeredDistanceCache checks a fast Redis cache before falling back to a
// durable store, backfilling Redis on a durable-store hit so subsequent
// lookups avoid the round trip entirely.
type LayeredDistanceCache struct {
	Fast    *RedisDistanceCache
	Durable DistanceCache
}

func NewLayeredDistanceCache(fast *RedisDistanceCache, durable DistanceCache) *LayeredDistanceCache {
	return &LayeredDistanceCache{Fast: fast, Durable: durable}
}

func (c *LayeredDistanceCache) GetMany(ctx context.Context, origin string, destinations []string) (map[string]ports.DistanceResult, error) {
	out, err := c.Fast.GetMany(ctx, origin, destinations)
	if err != nil {
		return nil, fmt.Errorf("layered distance cache: redis get: %w", err)
	}

	missing := make([]string, 0, len(destinations))
	for _, d := range destinations {
		if _, ok := out[d]; !ok {
			missing = append(missing, d)
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	fromDurable, err := c.Durable.GetMany(ctx, origin, missing)
	if err != nil {
		return nil, fmt.Errorf("layered distance cache: durable get: %w", err)
	}
	if len(fromDurable) > 0 {
		if err := c.Fast.PutMany(ctx, origin, fromDurable); err != nil {
			return nil, fmt.Errorf("layered distance cache: redis backfill: %w", err)
		}
	}

	for d, r := range fromDurable {
		out[d] = r
	}
	return out, nil
}

func (c *LayeredDistanceCache) PutMany(ctx context.Context, origin string, results map[string]ports.DistanceResult) error {
	if err := c.Durable.PutMany(ctx, origin, results); err != nil {
		return fmt.Errorf("layered distance cache: durable put: %w", err)
	}
	if err := c.Fast.PutMany(ctx, origin, results); err != nil {
		return fmt.Errorf("layered distance cache: redis put: %w", err)
	}
	return nil
}

// LayeredGeocodeCache is LayeredDistanceCache's counterpart for address ->
// coordinate lookups.
type LayeredGeocodeCache struct {
	Fast    *RedisGeocodeCache
	Durable GeocodeCache
}

func NewLayeredGeocodeCache(fast *RedisGeocodeCache, durable GeocodeCache) *LayeredGeocodeCache {
	return &LayeredGeocodeCache{Fast: fast, Durable: durable}
}

func (c *LayeredGeocodeCache) GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	out, err := c.Fast.GetMany(ctx, addresses)
	if err != nil {
		return nil, fmt.Errorf("layered geocode cache: redis get: %w", err)
	}

	missing := make([]string, 0, len(addresses))
	for _, a := range addresses {
		if _, ok := out[a]; !ok {
			missing = append(missing, a)
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	fromDurable, err := c.Durable.GetMany(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("layered geocode cache: durable get: %w", err)
	}
	if len(fromDurable) > 0 {
		if err := c.Fast.PutMany(ctx, fromDurable); err != nil {
			return nil, fmt.Errorf("layered geocode cache: redis backfill: %w", err)
		}
	}

	for a, coord := range fromDurable {
		out[a] = coord
	}
	return out, nil
}

func (c *LayeredGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if err := c.Durable.PutMany(ctx, results); err != nil {
		return fmt.Errorf("layered geocode cache: durable put: %w", err)
	}
	if err := c.Fast.PutMany(ctx, results); err != nil {
		return fmt.Errorf("layered geocode cache: redis put: %w", err)
	}
	return nil
}
