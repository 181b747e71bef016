package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-routing-engine/internal/ports"
)

// pairwiseProvider answers GetDistance only, exercising BuildMatrices'
// fallback path for providers that don't implement DistanceMatrixProvider.
type pairwiseProvider struct {
	costs map[[2]string]ports.DistanceResult
	err   error
}

func (p *pairwiseProvider) GetDistance(ctx context.Context, origin, destination string) (ports.DistanceResult, error) {
	if p.err != nil {
		return ports.DistanceResult{}, p.err
	}
	return p.costs[[2]string{origin, destination}], nil
}

// batchProvider answers GetDistances too, exercising the preferred
// DistanceMatrixProvider path.
type batchProvider struct {
	pairwiseProvider
	batchCalls int
}

func (p *batchProvider) GetDistances(ctx context.Context, origin string, destinations []string) (map[string]ports.DistanceResult, error) {
	p.batchCalls++
	out := make(map[string]ports.DistanceResult, len(destinations))
	for _, d := range destinations {
		out[d] = p.costs[[2]string{origin, d}]
	}
	return out, nil
}

func TestBuildMatricesEmptyAddresses(t *testing.T) {
	m, err := BuildMatrices(context.Background(), &pairwiseProvider{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Duration.Size())
}

func TestBuildMatricesPairwiseFallback(t *testing.T) {
	addrs := []string{"A", "B", "C"}
	p := &pairwiseProvider{costs: map[[2]string]ports.DistanceResult{
		{"A", "B"}: {DistanceMeters: 100, DurationSeconds: 10},
		{"A", "C"}: {DistanceMeters: 200, DurationSeconds: 20},
		{"B", "A"}: {DistanceMeters: 100, DurationSeconds: 10},
		{"B", "C"}: {DistanceMeters: 300, DurationSeconds: 30},
		{"C", "A"}: {DistanceMeters: 200, DurationSeconds: 20},
		{"C", "B"}: {DistanceMeters: 300, DurationSeconds: 30},
	}}

	m, err := BuildMatrices(context.Background(), p, addrs)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Duration.Size())
	assert.Equal(t, 10, m.Duration.Cost(0, 1))
	assert.Equal(t, 100, m.MetersAt(0, 1))
	assert.Equal(t, 30, m.Duration.Cost(1, 2))
	assert.Equal(t, 300, m.MetersAt(1, 2))
}

func TestBuildMatricesPrefersBatchProvider(t *testing.T) {
	addrs := []string{"A", "B"}
	p := &batchProvider{pairwiseProvider: pairwiseProvider{costs: map[[2]string]ports.DistanceResult{
		{"A", "B"}: {DistanceMeters: 50, DurationSeconds: 5},
		{"B", "A"}: {DistanceMeters: 50, DurationSeconds: 5},
	}}}

	m, err := BuildMatrices(context.Background(), p, addrs)
	require.NoError(t, err)
	assert.Equal(t, 5, m.Duration.Cost(0, 1))
	assert.Equal(t, 2, p.batchCalls)
}

func TestBuildMatricesPropagatesError(t *testing.T) {
	p := &pairwiseProvider{err: errors.New("boom")}
	_, err := BuildMatrices(context.Background(), p, []string{"A", "B"})
	assert.Error(t, err)
}
