package operator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-routing-engine/internal/vrp/model"
	"fleet-routing-engine/internal/vrp/route"
	"fleet-routing-engine/internal/vrp/state"
)

func twoVehicleInstance(t *testing.T) model.ProblemInstance {
	t.Helper()
	// depot=0, A=1, B=2. A<->B is deliberately expensive so relocating B
	// off A's vehicle and onto its own empty vehicle is a large net win.
	entries := []int{
		0, 1, 1,
		1, 0, 100,
		1, 100, 0,
	}
	m, err := model.NewMatrix(3, entries)
	require.NoError(t, err)

	jobs := []model.Job{
		{ID: 1, Index: 1, Delivery: model.Amount{1}, TWs: []model.TimeWindow{{Start: 0, End: 1000}}},
		{ID: 2, Index: 2, Delivery: model.Amount{1}, TWs: []model.TimeWindow{{Start: 0, End: 1000}}},
	}
	d0, d1 := 0, 0
	vehicles := []model.Vehicle{
		{ID: 0, Start: &d0, End: &d0, Capacity: model.Amount{10}},
		{ID: 1, Start: &d1, End: &d1, Capacity: model.Amount{10}},
	}
	inst, err := model.NewProblemInstance(jobs, vehicles, m)
	require.NoError(t, err)
	return inst
}

func TestRelocateGainValidApply(t *testing.T) {
	inst := twoVehicleInstance(t)
	slots := map[int]route.Slot{
		0: route.NewRawSlot(route.NewRaw(0, []int{0, 1})),
		1: route.NewRawSlot(route.NewRaw(1, nil)),
	}
	arena := state.NewArena(&inst)
	arena.Rebuild(0, slots[0])
	arena.Rebuild(1, slots[1])

	val := CapacityValidator{Inst: &inst}
	m := New(Relocate, val, 0, 1, 1, 1, 0, 0)

	gain := m.ComputeGain(&inst, arena, slots)
	assert.Equal(t, 98, gain)
	require.True(t, m.IsValid(&inst, slots))

	require.NoError(t, m.Apply(slots))
	assert.Equal(t, []int{0}, slots[0].Jobs())
	assert.Equal(t, []int{1}, slots[1].Jobs())

	for _, v := range m.UpdateCandidates() {
		assert.Contains(t, []int{0, 1}, v)
	}
}

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

func TestIntraTwoOptGainMatchesRouteCostDelta(t *testing.T) {
	inst := threeJobInstance(t)
	slot := route.NewRawSlot(route.NewRaw(0, []int{0, 1, 2}))
	arena := state.NewArena(&inst)
	arena.Rebuild(0, slot)

	val := CapacityValidator{Inst: &inst}
	m := New(IntraTwoOpt, val, 0, 1, 2, 0, 0, 0)

	gain := m.ComputeGain(&inst, arena, map[int]route.Slot{0: slot})
	assert.Equal(t, 8, gain)
	assert.True(t, m.IsValid(&inst, map[int]route.Slot{0: slot}))

	require.NoError(t, m.Apply(map[int]route.Slot{0: slot}))
	assert.Equal(t, []int{0, 2, 1}, slot.Jobs())
}

// adjacentSwapInstance builds a single-vehicle, four-job route whose middle
// pair has an asymmetric cost (cheap one way, expensive the other), so
// swapping them in place changes total route cost.
func adjacentSwapInstance(t *testing.T) model.ProblemInstance {
	t.Helper()
	entries := []int{
		0, 3, 3, 3, 3,
		3, 0, 3, 3, 3,
		3, 3, 0, 9, 3,
		3, 3, 1, 0, 3,
		3, 3, 3, 3, 0,
	}
	m, err := model.NewMatrix(5, entries)
	require.NoError(t, err)

	jobs := []model.Job{
		{ID: 1, Index: 1, TWs: []model.TimeWindow{{Start: 0, End: 1000}}},
		{ID: 2, Index: 2, TWs: []model.TimeWindow{{Start: 0, End: 1000}}},
		{ID: 3, Index: 3, TWs: []model.TimeWindow{{Start: 0, End: 1000}}},
		{ID: 4, Index: 4, TWs: []model.TimeWindow{{Start: 0, End: 1000}}},
	}
	start, end := 0, 0
	vehicles := []model.Vehicle{{ID: 0, Start: &start, End: &end, Capacity: model.Amount{10}}}
	inst, err := model.NewProblemInstance(jobs, vehicles, m)
	require.NoError(t, err)
	return inst
}

// routeTotalCost sums the full route cost from the vehicle's start through
// every job to its end, independently of any cached or incremental gain
// machinery.
func routeTotalCost(inst *model.ProblemInstance, slot route.Slot) int {
	v := inst.Vehicles[slot.Vehicle()]
	total := 0
	prev, hasPrev := v.StartIndex(), v.HasStart()
	for k := 0; k < slot.Size(); k++ {
		cur := inst.Jobs[slot.At(k)].Index
		if hasPrev {
			total += inst.M.Cost(prev, cur)
		}
		prev, hasPrev = cur, true
	}
	if hasPrev && v.HasEnd() {
		total += inst.M.Cost(prev, v.EndIndex())
	}
	return total
}

func TestIntraExchangeAdjacentGainMatchesMeasuredDelta(t *testing.T) {
	inst := adjacentSwapInstance(t)
	slot := route.NewRawSlot(route.NewRaw(0, []int{0, 1, 2, 3}))
	arena := state.NewArena(&inst)
	arena.Rebuild(0, slot)

	before := routeTotalCost(&inst, slot)

	val := CapacityValidator{Inst: &inst}
	m := New(IntraExchange, val, 0, 1, 1, 0, 2, 2)

	gain := m.ComputeGain(&inst, arena, map[int]route.Slot{0: slot})
	require.True(t, m.IsValid(&inst, map[int]route.Slot{0: slot}))
	require.NoError(t, m.Apply(map[int]route.Slot{0: slot}))

	after := routeTotalCost(&inst, slot)
	assert.Equal(t, before-after, gain)
	assert.Equal(t, 8, gain)
}

// twTightWindowInstance builds a single-vehicle, three-job TW route where
// the middle job's window is only reachable under the route's original
// order: the job-2/job-3 leg is far cheaper reversed than forward, making a
// reversal attractive on cost alone, but reversing delays arrival at job 2
// past its window.
func twTightWindowInstance(t *testing.T) model.ProblemInstance {
	t.Helper()
	entries := []int{
		0, 5, 5, 5,
		5, 0, 2, 2,
		5, 2, 0, 9,
		5, 2, 1, 0,
	}
	m, err := model.NewMatrix(4, entries)
	require.NoError(t, err)

	jobs := []model.Job{
		{ID: 1, Index: 1, Service: 5, Delivery: model.Amount{1}, TWs: []model.TimeWindow{{Start: 0, End: 1000}}},
		{ID: 2, Index: 2, Service: 5, Delivery: model.Amount{1}, TWs: []model.TimeWindow{{Start: 0, End: 12}}},
		{ID: 3, Index: 3, Service: 5, Delivery: model.Amount{1}, TWs: []model.TimeWindow{{Start: 0, End: 1000}}},
	}
	start, end := 0, 0
	vehicles := []model.Vehicle{{
		ID:       0,
		Start:    &start,
		End:      &end,
		Capacity: model.Amount{10},
		TW:       model.TimeWindow{Start: 0, End: 1000},
	}}
	inst, err := model.NewProblemInstance(jobs, vehicles, m)
	require.NoError(t, err)
	return inst
}

func TestIntraTwoOptRejectsTWInfeasibleReversal(t *testing.T) {
	inst := twTightWindowInstance(t)
	tw, err := route.NewTW(&inst, 0, []int{0, 1, 2})
	require.NoError(t, err)
	slot := route.NewTWSlot(tw)
	arena := state.NewArena(&inst)
	arena.Rebuild(0, slot)

	val := TWValidator{}
	m := New(IntraTwoOpt, val, 0, 1, 2, 0, 0, 0)

	gain := m.ComputeGain(&inst, arena, map[int]route.Slot{0: slot})
	require.Greater(t, gain, 0, "reversal must look attractive on cost alone for the TW probe to matter")
	assert.False(t, m.IsValid(&inst, map[int]route.Slot{0: slot}))
}

func TestKindPriorityOrdersInterBeforeIntra(t *testing.T) {
	assert.Less(t, Exchange.Priority(), IntraExchange.Priority())
	assert.False(t, Exchange.IsIntra())
	assert.True(t, IntraTwoOpt.IsIntra())
}

func TestCapacityValidatorRejectsOverCapacityAddition(t *testing.T) {
	inst := twoVehicleInstance(t)
	slot := route.NewRawSlot(route.NewRaw(0, []int{0}))
	val := CapacityValidator{Inst: &inst}
	inst.Vehicles[0].Capacity = model.Amount{1}

	assert.False(t, val.ValidateAddition(slot, []int{1}, 1))
}

func TestTWValidatorRejectsRawSlot(t *testing.T) {
	slot := route.NewRawSlot(route.NewRaw(0, nil))
	val := TWValidator{}
	assert.False(t, val.ValidateAddition(slot, []int{0}, 0))
	assert.False(t, val.ValidateRemoval(slot, 0, 0))
	assert.False(t, val.ValidateReplacement(slot, 0, 0, []int{0}))
}
