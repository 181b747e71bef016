package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountArithmetic(t *testing.T) {
	a := Amount{1, 2}
	b := Amount{3, 4, 5}

	assert.Equal(t, Amount{4, 6, 5}, Add(a, b))
	assert.Equal(t, Amount{-2, -2, -5}, Sub(a, b))
	assert.True(t, LessEq(a, b))
	assert.False(t, LessEq(b, a))
}

func TestAmountCloneIsIndependent(t *testing.T) {
	a := Amount{1, 2, 3}
	c := a.Clone()
	c[0] = 99
	assert.Equal(t, 1, a[0])
}

func TestTimeWindowContains(t *testing.T) {
	tw := TimeWindow{Start: 10, End: 20}
	assert.True(t, tw.Contains(10))
	assert.True(t, tw.Contains(20))
	assert.False(t, tw.Contains(9))
	assert.False(t, tw.Contains(21))
}

func mustMatrix(t *testing.T, n int, entries []int) Matrix {
	t.Helper()
	m, err := NewMatrix(n, entries)
	require.NoError(t, err)
	return m
}

func TestNewMatrixRejectsBadShape(t *testing.T) {
	_, err := NewMatrix(2, []int{1, 2, 3})
	assert.Error(t, err)

	_, err = NewMatrix(-1, nil)
	assert.Error(t, err)

	_, err = NewMatrix(1, []int{-5})
	assert.Error(t, err)
}

func TestMatrixCostIsAsymmetricCapable(t *testing.T) {
	m := mustMatrix(t, 2, []int{0, 3, 7, 0})
	assert.Equal(t, 3, m.Cost(0, 1))
	assert.Equal(t, 7, m.Cost(1, 0))
}

func simpleJob(id, index int) Job {
	return Job{
		ID:      id,
		Index:   index,
		Service: 0,
		TWs:     []TimeWindow{{Start: 0, End: 1000}},
	}
}

func TestNewProblemInstanceValidatesMatrixSize(t *testing.T) {
	jobs := []Job{simpleJob(1, 5)}
	vehicles := []Vehicle{{ID: 0, Capacity: Amount{10}}}
	m := mustMatrix(t, 2, []int{0, 0, 0, 0})

	_, err := NewProblemInstance(jobs, vehicles, m)
	require.Error(t, err)
	assert.IsType(t, &ValidationError{}, err)
}

func TestNewProblemInstanceValidatesTimeWindows(t *testing.T) {
	jobs := []Job{{ID: 1, Index: 0, TWs: nil}}
	vehicles := []Vehicle{{ID: 0, Capacity: Amount{10}}}
	m := mustMatrix(t, 1, []int{0})

	_, err := NewProblemInstance(jobs, vehicles, m)
	require.Error(t, err)
}

func TestNewProblemInstanceRejectsUnservableJob(t *testing.T) {
	jobs := []Job{
		{ID: 1, Index: 0, Skills: map[int]struct{}{7: {}}, TWs: []TimeWindow{{Start: 0, End: 100}}},
	}
	vehicles := []Vehicle{{ID: 0, Capacity: Amount{10}}}
	m := mustMatrix(t, 1, []int{0})

	_, err := NewProblemInstance(jobs, vehicles, m)
	require.Error(t, err)
}

func TestVehicleOKWithJobRespectsSkills(t *testing.T) {
	jobs := []Job{
		simpleJob(1, 0),
		{ID: 2, Index: 1, Skills: map[int]struct{}{9: {}}, TWs: []TimeWindow{{Start: 0, End: 100}}},
	}
	vehicles := []Vehicle{
		{ID: 0, Capacity: Amount{10}},
		{ID: 1, Capacity: Amount{10}, Skills: map[int]struct{}{9: {}}},
	}
	m := mustMatrix(t, 2, []int{0, 1, 1, 0})

	inst, err := NewProblemInstance(jobs, vehicles, m)
	require.NoError(t, err)

	assert.True(t, inst.VehicleOKWithJob(0, 0))
	assert.False(t, inst.VehicleOKWithJob(0, 1))
	assert.True(t, inst.VehicleOKWithJob(1, 1))
}

func TestVehicleStartEndOptional(t *testing.T) {
	v := Vehicle{ID: 0}
	assert.False(t, v.HasStart())
	assert.False(t, v.HasEnd())

	start := 3
	v.Start = &start
	assert.True(t, v.HasStart())
	assert.Equal(t, 3, v.StartIndex())
}
