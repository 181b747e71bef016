package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-routing-engine/internal/vrp/model"
	"fleet-routing-engine/internal/vrp/route"
	"fleet-routing-engine/internal/vrp/state"
)

// threeJobInstance has one vehicle and three jobs where the best
// neighborhood move swaps the middle and last jobs:
// depot-A-B-C-depot costs 12, depot-A-C-B-depot costs 4, and every other
// permutation costs more than 4.
func threeJobInstance(t *testing.T) model.ProblemInstance {
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
		{ID: 1, Index: 1, TWs: []model.TimeWindow{{Start: 0, End: 1000}}},
		{ID: 2, Index: 2, TWs: []model.TimeWindow{{Start: 0, End: 1000}}},
		{ID: 3, Index: 3, TWs: []model.TimeWindow{{Start: 0, End: 1000}}},
	}
	start, end := 0, 0
	vehicles := []model.Vehicle{{ID: 0, Start: &start, End: &end, Capacity: model.Amount{10}}}
	inst, err := model.NewProblemInstance(jobs, vehicles, m)
	require.NoError(t, err)
	return inst
}

func TestDescendReachesLocalOptimum(t *testing.T) {
	inst := threeJobInstance(t)
	slots := map[int]route.Slot{0: route.NewRawSlot(route.NewRaw(0, []int{0, 1, 2}))}
	arena := state.NewArena(&inst)
	arena.Rebuild(0, slots[0])

	stats, err := Descend(context.Background(), &inst, slots, arena, Unrestricted)
	require.NoError(t, err)
	assert.Greater(t, stats.Iterations, 0)
	assert.Equal(t, 8, stats.TotalGain)
	assert.Equal(t, []int{0, 2, 1}, slots[0].Jobs())

	// A second pass from the optimum finds nothing further to improve.
	stats2, err := Descend(context.Background(), &inst, slots, arena, Unrestricted)
	require.NoError(t, err)
	assert.Equal(t, 0, stats2.Iterations)
}

func TestDescendRespectsCanceledContext(t *testing.T) {
	inst := threeJobInstance(t)
	slots := map[int]route.Slot{0: route.NewRawSlot(route.NewRaw(0, []int{0, 1, 2}))}
	arena := state.NewArena(&inst)
	arena.Rebuild(0, slots[0])

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Descend(ctx, &inst, slots, arena, Unrestricted)
	assert.Error(t, err)
}

func twoVehicleInstance(t *testing.T) model.ProblemInstance {
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
		{ID: 1, Index: 1, TWs: []model.TimeWindow{{Start: 0, End: 1000}}},
		{ID: 2, Index: 2, TWs: []model.TimeWindow{{Start: 0, End: 1000}}},
		{ID: 3, Index: 3, TWs: []model.TimeWindow{{Start: 0, End: 1000}}},
	}
	s0, e0 := 0, 0
	vehicles := []model.Vehicle{
		{ID: 0, Start: &s0, End: &e0, Capacity: model.Amount{10}},
		{ID: 1, Start: &s0, End: &e0, Capacity: model.Amount{10}},
	}
	inst, err := model.NewProblemInstance(jobs, vehicles, m)
	require.NoError(t, err)
	return inst
}

func TestEnumerateGeneratesInterAndIntraMoves(t *testing.T) {
	inst := twoVehicleInstance(t)
	slots := map[int]route.Slot{
		0: route.NewRawSlot(route.NewRaw(0, []int{0, 1})),
		1: route.NewRawSlot(route.NewRaw(1, []int{2})),
	}

	moves := enumerate(&inst, slots, Unrestricted)
	assert.NotEmpty(t, moves)

	var sawInter, sawIntra bool
	for _, m := range moves {
		if m.Kind.IsIntra() {
			sawIntra = true
		} else if m.SourceVehicle != m.TargetVehicle {
			sawInter = true
		}
	}
	assert.True(t, sawInter)
	assert.True(t, sawIntra)
}
