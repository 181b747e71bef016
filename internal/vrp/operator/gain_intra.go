package operator

import (
	"fleet-routing-engine/internal/vrp/model"
	"fleet-routing-engine/internal/vrp/route"
	"fleet-routing-engine/internal/vrp/state"
)

// The intra-route kinds reuse their inter-route counterpart's gain
// formula with the same slot passed for both sides: the surround/fragment
// geometry helpers only ever look at one position range at a time, so two
// canonically-ordered ranges within the same route compose exactly as if
// they belonged to two different routes, provided neither range reads the
// other's jobs as its neighbours. Touching ranges are the exception:
// gainExchange and gainMixedExchange price that case directly, and the
// Driver does not enumerate it for IntraRelocate, IntraOrOpt or
// IntraCrossExchange.

func gainIntraExchange(inst *model.ProblemInstance, arena *state.Arena, slot route.Slot, m *Move) int {
	return gainExchange(inst, arena, slot, slot, m)
}

func gainIntraCrossExchange(inst *model.ProblemInstance, arena *state.Arena, slot route.Slot, m *Move) int {
	return gainCrossExchange(inst, arena, slot, slot, m)
}

func gainIntraMixedExchange(inst *model.ProblemInstance, arena *state.Arena, slot route.Slot, m *Move) int {
	return gainMixedExchange(inst, arena, slot, slot, m)
}

func gainIntraRelocate(inst *model.ProblemInstance, arena *state.Arena, slot route.Slot, m *Move) int {
	return gainRelocate(inst, arena, slot, slot, m)
}

func gainIntraOrOpt(inst *model.ProblemInstance, arena *state.Arena, slot route.Slot, m *Move) int {
	return gainOrOpt(inst, arena, slot, slot, m)
}

// gainIntraTwoOpt reverses the contiguous range [SourceFirst, SourceLast].
// Unlike the other kinds this is not O(1): every edge strictly inside the
// reversed range changes direction, so on an asymmetric matrix its cost
// changes too (reverse_edge_cost = M[a][b] - M[b][a]). The cost is O(range
// length), bounded by the exploration level the Driver uses to restrict
// candidate ranges, and degenerates to the two boundary edges alone when
// the matrix is symmetric.
func gainIntraTwoOpt(inst *model.ProblemInstance, arena *state.Arena, slot route.Slot, m *Move) int {
	first, last := m.SourceFirst, m.SourceLast

	internalDelta := 0
	for k := first; k < last; k++ {
		a, b := jobIdx(inst, slot.At(k)), jobIdx(inst, slot.At(k+1))
		internalDelta += edgeCost(inst, a, b) - edgeCost(inst, b, a)
	}

	before, hasBefore := boundaryBefore(inst, slot, first)
	after, hasAfter := boundaryAt(inst, slot, last+1)
	pFirst, pLast := jobIdx(inst, slot.At(first)), jobIdx(inst, slot.At(last))

	boundaryOld, boundaryNew := 0, 0
	if hasBefore {
		boundaryOld += edgeCost(inst, before, pFirst)
		boundaryNew += edgeCost(inst, before, pLast)
	}
	if hasAfter {
		boundaryOld += edgeCost(inst, pLast, after)
		boundaryNew += edgeCost(inst, pFirst, after)
	}

	return internalDelta + (boundaryOld - boundaryNew)
}
