package solve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-routing-engine/internal/vrp/model"
	"fleet-routing-engine/internal/vrp/search"
)

func threeJobInstance(t *testing.T) *model.ProblemInstance {
	t.Helper()
	entries := []int{
		0, 1, 1, 1,
		1, 0, 9, 1,
		1, 9, 0, 1,
		1, 5, 1, 0,
	}
	m, err := model.NewMatrix(4, entries)
	require.NoError(t, err)

	jobs := []model.Job{
		{ID: 1, Index: 1, Delivery: model.Amount{1}, TWs: []model.TimeWindow{{Start: 0, End: 1000}}},
		{ID: 2, Index: 2, Delivery: model.Amount{1}, TWs: []model.TimeWindow{{Start: 0, End: 1000}}},
		{ID: 3, Index: 3, Delivery: model.Amount{1}, TWs: []model.TimeWindow{{Start: 0, End: 1000}}},
	}
	start, end := 0, 0
	vehicles := []model.Vehicle{{ID: 0, Start: &start, End: &end, Capacity: model.Amount{10}}}
	inst, err := model.NewProblemInstance(jobs, vehicles, m)
	require.NoError(t, err)
	return &inst
}

func TestSolveReturnsImprovedRoute(t *testing.T) {
	inst := threeJobInstance(t)

	sol, err := Solve(context.Background(), inst, CVRP, search.Unrestricted)
	require.NoError(t, err)

	require.Len(t, sol.Routes, 1)
	r := sol.Routes[0]
	assert.Equal(t, 0, r.VehicleID)
	assert.ElementsMatch(t, []int{1, 2, 3}, r.JobIDs)
	assert.Equal(t, 4, r.TotalCost)
	assert.Equal(t, sol.TotalCost, r.TotalCost)
	assert.Equal(t, model.Amount{3}, r.Load)
}

func TestSolveConcurrentlyRunsIndependentDescents(t *testing.T) {
	inst1 := threeJobInstance(t)
	inst2 := threeJobInstance(t)

	sols, err := SolveConcurrently(context.Background(), []*model.ProblemInstance{inst1, inst2}, CVRP, search.Unrestricted)
	require.NoError(t, err)
	require.Len(t, sols, 2)
	assert.Equal(t, sols[0].TotalCost, sols[1].TotalCost)
}

func TestSolvePropagatesConstructionFailure(t *testing.T) {
	entries := []int{0, 1, 1, 0}
	m, err := model.NewMatrix(2, entries)
	require.NoError(t, err)
	jobs := []model.Job{{ID: 1, Index: 1, Delivery: model.Amount{5}, TWs: []model.TimeWindow{{Start: 0, End: 1000}}}}
	s0, e0 := 0, 0
	vehicles := []model.Vehicle{{ID: 0, Start: &s0, End: &e0, Capacity: model.Amount{1}}}
	inst, err := model.NewProblemInstance(jobs, vehicles, m)
	require.NoError(t, err)

	_, err = Solve(context.Background(), &inst, CVRP, search.Unrestricted)
	assert.Error(t, err)
}
