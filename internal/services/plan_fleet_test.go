package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-routing-engine/internal/domain"
	"fleet-routing-engine/internal/ports"
	"fleet-routing-engine/internal/vrp/model"
	"fleet-routing-engine/internal/vrp/solve"
)

type fakeJobRepo struct {
	jobs []*domain.Job
	err  error
}

func (f *fakeJobRepo) ListJobs(ctx context.Context) ([]*domain.Job, error) {
	return f.jobs, f.err
}

type fakeVehicleRepo struct {
	vehicles []*domain.Vehicle
	err      error
}

func (f *fakeVehicleRepo) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	return f.vehicles, f.err
}

// gridProvider returns a fixed per-pair duration/distance so tests stay
// deterministic regardless of fan-out order.
type gridProvider struct{}

func (gridProvider) GetDistance(ctx context.Context, origin, destination string) (ports.DistanceResult, error) {
	return ports.DistanceResult{DistanceMeters: 1000, DurationSeconds: 600}, nil
}

func TestPlanFleetNoJobsReturnsNil(t *testing.T) {
	plans, err := PlanFleet(context.Background(), &fakeJobRepo{}, &fakeVehicleRepo{vehicles: []*domain.Vehicle{{VehicleID: 1}}}, gridProvider{}, PlanFleetRequest{})
	require.NoError(t, err)
	assert.Nil(t, plans)
}

func TestPlanFleetBuildsRoutePlans(t *testing.T) {
	jobs := []*domain.Job{
		{JobID: 1, Destination: "A", Delivery: model.Amount{1}, TWs: []model.TimeWindow{{Start: 0, End: 36000}}},
		{JobID: 2, Destination: "B", Delivery: model.Amount{1}, TWs: []model.TimeWindow{{Start: 0, End: 36000}}},
	}
	vehicles := []*domain.Vehicle{
		{VehicleID: 1, StartAddress: "HUB", EndAddress: "HUB", Capacity: model.Amount{5}, TW: model.TimeWindow{Start: 0, End: 36000}},
	}

	horizon := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	plans, err := PlanFleet(context.Background(), &fakeJobRepo{jobs: jobs}, &fakeVehicleRepo{vehicles: vehicles}, gridProvider{}, PlanFleetRequest{
		Variant:      solve.CVRP,
		HorizonStart: horizon,
	})
	require.NoError(t, err)
	require.Len(t, plans, 1)

	plan := plans[0]
	assert.Equal(t, 1, plan.VehicleID)
	assert.Equal(t, horizon, plan.DepartAt)
	assert.Len(t, plan.Stops, 2)
	assert.Positive(t, plan.TotalDistanceMeters)
	for _, stop := range plan.Stops {
		assert.True(t, stop.ArriveAt.After(horizon) || stop.ArriveAt.Equal(horizon))
	}
}

func TestCollectAddressesDeduplicatesAndOrders(t *testing.T) {
	jobs := []*domain.Job{
		{JobID: 1, Destination: "A"},
		{JobID: 2, Destination: "B"},
	}
	vehicles := []*domain.Vehicle{
		{VehicleID: 1, StartAddress: "HUB", EndAddress: "A"},
	}

	addrs, index := collectAddresses(jobs, vehicles)
	assert.Equal(t, []string{"A", "B", "HUB"}, addrs)
	assert.Equal(t, 0, index["A"])
	assert.Equal(t, 1, index["B"])
	assert.Equal(t, 2, index["HUB"])
}
