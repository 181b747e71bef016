package construct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-routing-engine/internal/vrp/model"
)

func twoVehicleCapacitated(t *testing.T, capacity int) model.ProblemInstance {
	t.Helper()
	entries := []int{
		0, 1, 1,
		1, 0, 2,
		1, 2, 0,
	}
	m, err := model.NewMatrix(3, entries)
	require.NoError(t, err)

	jobs := []model.Job{
		{ID: 1, Index: 1, Delivery: model.Amount{1}, TWs: []model.TimeWindow{{Start: 0, End: 1000}}},
		{ID: 2, Index: 2, Delivery: model.Amount{1}, TWs: []model.TimeWindow{{Start: 0, End: 1000}}},
	}
	s0, e0 := 0, 0
	vehicles := []model.Vehicle{
		{ID: 0, Start: &s0, End: &e0, Capacity: model.Amount{capacity}, TW: model.TimeWindow{Start: 0, End: 1000}},
		{ID: 1, Start: &s0, End: &e0, Capacity: model.Amount{capacity}, TW: model.TimeWindow{Start: 0, End: 1000}},
	}
	inst, err := model.NewProblemInstance(jobs, vehicles, m)
	require.NoError(t, err)
	return inst
}

func TestBuildAssignsAllJobsWhenCapacityAllows(t *testing.T) {
	inst := twoVehicleCapacitated(t, 10)
	slots, err := Build(&inst, false)
	require.NoError(t, err)

	total := 0
	for v := range inst.Vehicles {
		total += slots[v].Size()
	}
	assert.Equal(t, 2, total)
}

func TestBuildSpreadsJobsAcrossVehiclesUnderTightCapacity(t *testing.T) {
	inst := twoVehicleCapacitated(t, 1)
	slots, err := Build(&inst, false)
	require.NoError(t, err)

	assert.Equal(t, 1, slots[0].Size())
	assert.Equal(t, 1, slots[1].Size())
}

func TestBuildReportsUnassignableJob(t *testing.T) {
	entries := []int{0, 1, 1, 0}
	m, err := model.NewMatrix(2, entries)
	require.NoError(t, err)

	jobs := []model.Job{
		{ID: 1, Index: 1, Delivery: model.Amount{5}, TWs: []model.TimeWindow{{Start: 0, End: 1000}}},
	}
	s0, e0 := 0, 0
	vehicles := []model.Vehicle{{ID: 0, Start: &s0, End: &e0, Capacity: model.Amount{1}}}
	inst, err := model.NewProblemInstance(jobs, vehicles, m)
	require.NoError(t, err)

	_, err = Build(&inst, false)
	require.Error(t, err)
	var uaErr *UnassignableError
	require.ErrorAs(t, err, &uaErr)
	assert.Equal(t, 1, uaErr.JobID)
}

func TestBuildUsesTWRoutesWhenRequested(t *testing.T) {
	inst := twoVehicleCapacitated(t, 10)
	slots, err := Build(&inst, true)
	require.NoError(t, err)

	_, ok := slots[0].TW()
	assert.True(t, ok)
}
