package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-routing-engine/internal/vrp/model"
	"fleet-routing-engine/internal/vrp/route"
)

func buildInstance(t *testing.T) model.ProblemInstance {
	t.Helper()
	entries := []int{
		0, 5, 5, 5,
		5, 0, 2, 2,
		5, 2, 0, 2,
		5, 2, 2, 0,
	}
	m, err := model.NewMatrix(4, entries)
	require.NoError(t, err)

	jobs := make([]model.Job, 0, 3)
	for idx := 1; idx <= 3; idx++ {
		jobs = append(jobs, model.Job{
			ID:       idx,
			Index:    idx,
			Delivery: model.Amount{1},
			TWs:      []model.TimeWindow{{Start: 0, End: 1000}},
		})
	}
	start, end := 0, 0
	vehicles := []model.Vehicle{{ID: 0, Start: &start, End: &end, Capacity: model.Amount{10}}}

	inst, err := model.NewProblemInstance(jobs, vehicles, m)
	require.NoError(t, err)
	return inst
}

func TestArenaRebuildComputesSurroundCosts(t *testing.T) {
	inst := buildInstance(t)
	slot := route.NewRawSlot(route.NewRaw(0, []int{0, 1, 2}))

	arena := NewArena(&inst)
	arena.Rebuild(0, slot)
	c := arena.Cache(0)

	require.Equal(t, 3, c.Size())
	assert.Equal(t, model.Amount{1}, c.FwdAmounts(0))
	assert.Equal(t, model.Amount{3}, c.FwdAmounts(2))

	assert.Equal(t, 7, c.EdgeAroundNode(0))
	assert.Equal(t, 4, c.EdgeAroundNode(1))
	assert.Equal(t, 7, c.EdgeAroundNode(2))

	assert.Equal(t, 7, c.EdgeAroundEdge(0))
	assert.Equal(t, 7, c.EdgeAroundEdge(1))
}

func TestArenaRebuildReusesBuffersAcrossShrink(t *testing.T) {
	inst := buildInstance(t)
	slot := route.NewRawSlot(route.NewRaw(0, []int{0, 1, 2}))

	arena := NewArena(&inst)
	arena.Rebuild(0, slot)
	before := arena.Cache(0)

	shorter := route.NewRawSlot(route.NewRaw(0, []int{0}))
	arena.Rebuild(0, shorter)
	after := arena.Cache(0)

	assert.Same(t, before, after)
	assert.Equal(t, 1, after.Size())
}

func TestArenaRebuildEmptyRoute(t *testing.T) {
	inst := buildInstance(t)
	slot := route.NewRawSlot(route.NewRaw(0, nil))

	arena := NewArena(&inst)
	arena.Rebuild(0, slot)

	assert.Equal(t, 0, arena.Cache(0).Size())
}
