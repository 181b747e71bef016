package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-routing-engine/internal/domain"
	"fleet-routing-engine/internal/ports"
)

// fakeDurableDistanceCache is an in-memory stand-in for SQLDistanceCache/
// SqliteDistanceCache, letting layering behavior be tested without a real
// database.
type fakeDurableDistanceCache struct {
	gets int
	data map[string]map[string]ports.DistanceResult
}

func newFakeDurableDistanceCache() *fakeDurableDistanceCache {
	return &fakeDurableDistanceCache{data: map[string]map[string]ports.DistanceResult{}}
}

func (f *fakeDurableDistanceCache) GetMany(ctx context.Context, origin string, destinations []string) (map[string]ports.DistanceResult, error) {
	f.gets++
	out := map[string]ports.DistanceResult{}
	for _, d := range destinations {
		if r, ok := f.data[origin][d]; ok {
			out[d] = r
		}
	}
	return out, nil
}

func (f *fakeDurableDistanceCache) PutMany(ctx context.Context, origin string, results map[string]ports.DistanceResult) error {
	if f.data[origin] == nil {
		f.data[origin] = map[string]ports.DistanceResult{}
	}
	for d, r := range results {
		f.data[origin][d] = r
	}
	return nil
}

type fakeDurableGeocodeCache struct {
	gets int
	data map[string]domain.Coordinates
}

func newFakeDurableGeocodeCache() *fakeDurableGeocodeCache {
	return &fakeDurableGeocodeCache{data: map[string]domain.Coordinates{}}
}

func (f *fakeDurableGeocodeCache) GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	f.gets++
	out := map[string]domain.Coordinates{}
	for _, a := range addresses {
		if c, ok := f.data[a]; ok {
			out[a] = c
		}
	}
	return out, nil
}

func (f *fakeDurableGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	for a, c := range results {
		f.data[a] = c
	}
	return nil
}

func TestLayeredDistanceCacheFallsBackAndBackfills(t *testing.T) {
	ctx := context.Background()
	fast := NewRedisDistanceCache(newTestRedisClient(t), time.Minute)
	durable := newFakeDurableDistanceCache()
	layered := NewLayeredDistanceCache(fast, durable)

	require.NoError(t, durable.PutMany(ctx, "HUB", map[string]ports.DistanceResult{
		"A": {DistanceMeters: 1000, DurationSeconds: 300},
	}))

	hits, err := layered.GetMany(ctx, "HUB", []string{"A"})
	require.NoError(t, err)
	assert.Equal(t, ports.DistanceResult{DistanceMeters: 1000, DurationSeconds: 300}, hits["A"])
	assert.Equal(t, 1, durable.gets)

	// Second lookup should be served from the Redis backfill, not the durable store.
	hits, err = layered.GetMany(ctx, "HUB", []string{"A"})
	require.NoError(t, err)
	assert.Equal(t, ports.DistanceResult{DistanceMeters: 1000, DurationSeconds: 300}, hits["A"])
	assert.Equal(t, 1, durable.gets)
}

func TestLayeredDistanceCachePutWritesBothLayers(t *testing.T) {
	ctx := context.Background()
	fast := NewRedisDistanceCache(newTestRedisClient(t), time.Minute)
	durable := newFakeDurableDistanceCache()
	layered := NewLayeredDistanceCache(fast, durable)

	require.NoError(t, layered.PutMany(ctx, "HUB", map[string]ports.DistanceResult{
		"A": {DistanceMeters: 500, DurationSeconds: 120},
	}))

	fastHits, err := fast.GetMany(ctx, "HUB", []string{"A"})
	require.NoError(t, err)
	assert.Contains(t, fastHits, "A")

	durableHits, err := durable.GetMany(ctx, "HUB", []string{"A"})
	require.NoError(t, err)
	assert.Contains(t, durableHits, "A")
}

func TestLayeredGeocodeCacheFallsBackAndBackfills(t *testing.T) {
	ctx := context.Background()
	fast := NewRedisGeocodeCache(newTestRedisClient(t), time.Minute)
	durable := newFakeDurableGeocodeCache()
	layered := NewLayeredGeocodeCache(fast, durable)

	addr := "1901 W Madison St, Phoenix, AZ"
	require.NoError(t, durable.PutMany(ctx, map[string]domain.Coordinates{
		addr: {Lon: -112.098, Lat: 33.4506},
	}))

	hits, err := layered.GetMany(ctx, []string{addr})
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lon: -112.098, Lat: 33.4506}, hits[addr])
	assert.Equal(t, 1, durable.gets)

	hits, err = layered.GetMany(ctx, []string{addr})
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lon: -112.098, Lat: 33.4506}, hits[addr])
	assert.Equal(t, 1, durable.gets)
}
