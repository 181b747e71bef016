package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-routing-engine/internal/vrp/model"
)

// fixture builds a 4-node instance (depot=0, jobs at 1,2,3) with one vehicle
// starting and ending at the depot, wide time windows and the given capacity.
func fixture(t *testing.T, jobTWs map[int]model.TimeWindow, capacity int) model.ProblemInstance {
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
		tw := model.TimeWindow{Start: 0, End: 1000}
		if custom, ok := jobTWs[idx]; ok {
			tw = custom
		}
		jobs = append(jobs, model.Job{
			ID:       idx,
			Index:    idx,
			Service:  5,
			Delivery: model.Amount{1},
			TWs:      []model.TimeWindow{tw},
		})
	}

	start, end := 0, 0
	vehicles := []model.Vehicle{{
		ID:       0,
		Start:    &start,
		End:      &end,
		Capacity: model.Amount{capacity},
		TW:       model.TimeWindow{Start: 0, End: 1000},
	}}

	inst, err := model.NewProblemInstance(jobs, vehicles, m)
	require.NoError(t, err)
	return inst
}

func TestNewTWRebuildsCaches(t *testing.T) {
	inst := fixture(t, nil, 10)
	tw, err := NewTW(&inst, 0, []int{0, 1, 2})
	require.NoError(t, err)

	assert.Equal(t, 3, tw.Size())
	assert.Equal(t, 5, tw.Earliest(0))
	assert.Equal(t, 12, tw.Earliest(1))
	assert.Equal(t, model.Amount{1}, tw.Load(0))
	assert.Equal(t, model.Amount{3}, tw.TotalLoad())
}

func TestNewTWFailsWhenWindowUnreachable(t *testing.T) {
	inst := fixture(t, map[int]model.TimeWindow{1: {Start: 0, End: 1}}, 10)
	_, err := NewTW(&inst, 0, []int{0})
	require.Error(t, err)
	assert.IsType(t, &InvariantError{}, err)
}

func TestIsValidAdditionForTWAndCapacity(t *testing.T) {
	inst := fixture(t, nil, 2)
	tw, err := NewTW(&inst, 0, []int{0})
	require.NoError(t, err)

	assert.True(t, tw.IsValidAdditionForTW([]int{1}, 1))
	assert.True(t, tw.IsValidAdditionForCapacity([]int{1}))
	assert.False(t, tw.IsValidAdditionForCapacity([]int{1, 2}))
}

func TestIsValidRemoval(t *testing.T) {
	inst := fixture(t, nil, 10)
	tw, err := NewTW(&inst, 0, []int{0, 1, 2})
	require.NoError(t, err)

	assert.True(t, tw.IsValidRemoval(1, 1))
}

func TestAddRemoveReplaceMutateAndRebuild(t *testing.T) {
	inst := fixture(t, nil, 10)
	tw, err := NewTW(&inst, 0, []int{0})
	require.NoError(t, err)

	require.NoError(t, tw.Add([]int{1}, 1))
	assert.Equal(t, []int{0, 1}, tw.Jobs())

	require.NoError(t, tw.Replace(1, 1, []int{2}))
	assert.Equal(t, []int{0, 2}, tw.Jobs())

	require.NoError(t, tw.Remove(1, 1))
	assert.Equal(t, []int{0}, tw.Jobs())
}

func TestTWCloneIsIndependent(t *testing.T) {
	inst := fixture(t, nil, 10)
	tw, err := NewTW(&inst, 0, []int{0, 1})
	require.NoError(t, err)

	c := tw.Clone()
	require.NoError(t, c.Remove(1, 1))

	assert.Equal(t, []int{0, 1}, tw.Jobs())
	assert.Equal(t, []int{0}, c.Jobs())
}
