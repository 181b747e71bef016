// Package construct provides the initial-assignment heuristic that seeds
// the local-search descent: a deterministic cheapest-insertion loop in
// the style of the nearest-neighbor greedy construction it replaces,
// generalized from a single route to a fleet under skill, capacity and
// (optionally) time-window constraints.
package construct

import (
	"fleet-routing-engine/internal/vrp/model"
	"fleet-routing-engine/internal/vrp/route"
)

// Build assigns every job in inst to some vehicle's route, taking the jobs
// in input order and placing each at the vehicle/position with the lowest
// insertion cost among those still feasible for it; a job already placed
// is not moved again. useTW selects whether routes are built as TW routes
// (VRPTW) or Raw routes (CVRP).
func Build(inst *model.ProblemInstance, useTW bool) (map[int]route.Slot, error) {
	slots := make(map[int]route.Slot, len(inst.Vehicles))
	for v := range inst.Vehicles {
		if useTW {
			tw, err := route.NewTW(inst, v, nil)
			if err != nil {
				return nil, err
			}
			slots[v] = route.NewTWSlot(tw)
		} else {
			slots[v] = route.NewRawSlot(route.NewRaw(v, nil))
		}
	}

	for ji := range inst.Jobs {
		best := bestInsertion(inst, slots, ji, useTW)
		if best == nil {
			return nil, &UnassignableError{JobID: inst.Jobs[ji].ID}
		}
		if err := slots[best.vehicle].Add([]int{ji}, best.position); err != nil {
			return nil, err
		}
	}
	return slots, nil
}

type insertionPoint struct {
	vehicle, position, cost int
}

// bestInsertion scans every skill-compatible vehicle and every insertion
// position, deterministically preferring the lowest cost and, on ties,
// the lowest vehicle index then the lowest position — the same
// tie-breaking discipline the nearest-neighbor construction it replaces
// used for destination selection.
func bestInsertion(inst *model.ProblemInstance, slots map[int]route.Slot, ji int, useTW bool) *insertionPoint {
	var best *insertionPoint
	for v := 0; v < len(inst.Vehicles); v++ {
		if !inst.VehicleOKWithJob(v, ji) {
			continue
		}
		slot := slots[v]
		for k := 0; k <= slot.Size(); k++ {
			if !feasible(inst, slot, ji, k, useTW) {
				continue
			}
			cost := insertionCostAt(inst, slot, ji, k)
			if best == nil || cost < best.cost {
				best = &insertionPoint{vehicle: v, position: k, cost: cost}
			}
		}
	}
	return best
}

func feasible(inst *model.ProblemInstance, slot route.Slot, ji, k int, useTW bool) bool {
	if useTW {
		tw, ok := slot.TW()
		if !ok {
			return false
		}
		return tw.IsValidAdditionForCapacity([]int{ji}) && tw.IsValidAdditionForTW([]int{ji}, k)
	}
	total := model.Add(slot.TotalLoad(inst), inst.Jobs[ji].Delivery)
	return model.LessEq(total, inst.Vehicles[slot.Vehicle()].Capacity)
}

func boundaryBefore(inst *model.ProblemInstance, slot route.Slot, k int) (idx int, ok bool) {
	if k == 0 {
		v := inst.Vehicles[slot.Vehicle()]
		if v.HasStart() {
			return v.StartIndex(), true
		}
		return 0, false
	}
	return inst.Jobs[slot.At(k-1)].Index, true
}

func boundaryAt(inst *model.ProblemInstance, slot route.Slot, k int) (idx int, ok bool) {
	if k == slot.Size() {
		v := inst.Vehicles[slot.Vehicle()]
		if v.HasEnd() {
			return v.EndIndex(), true
		}
		return 0, false
	}
	return inst.Jobs[slot.At(k)].Index, true
}

// insertionCostAt is the added cost of inserting job ji before position k:
// the two new edges minus the one edge they replace, when both
// boundaries exist.
func insertionCostAt(inst *model.ProblemInstance, slot route.Slot, ji, k int) int {
	jIdx := inst.Jobs[ji].Index
	before, hasBefore := boundaryBefore(inst, slot, k)
	after, hasAfter := boundaryAt(inst, slot, k)

	c := 0
	if hasBefore {
		c += inst.M.Cost(before, jIdx)
	}
	if hasAfter {
		c += inst.M.Cost(jIdx, after)
	}
	if hasBefore && hasAfter {
		c -= inst.M.Cost(before, after)
	}
	return c
}
