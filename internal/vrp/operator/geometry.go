package operator

import (
	"fleet-routing-engine/internal/vrp/model"
	"fleet-routing-engine/internal/vrp/route"
)

// boundaryBefore returns the matrix index immediately preceding route
// position k (the vehicle's start if k == 0), and whether it exists at
// all (a start-less vehicle contributes no edge at the head of its
// route).
func boundaryBefore(inst *model.ProblemInstance, slot route.Slot, k int) (idx int, ok bool) {
	if k == 0 {
		v := inst.Vehicles[slot.Vehicle()]
		if v.HasStart() {
			return v.StartIndex(), true
		}
		return 0, false
	}
	return jobIdx(inst, slot.At(k-1)), true
}

// boundaryAt returns the matrix index currently occupying position k (the
// vehicle's end if k equals the route's size).
func boundaryAt(inst *model.ProblemInstance, slot route.Slot, k int) (idx int, ok bool) {
	if k == slot.Size() {
		v := inst.Vehicles[slot.Vehicle()]
		if v.HasEnd() {
			return v.EndIndex(), true
		}
		return 0, false
	}
	return jobIdx(inst, slot.At(k)), true
}

// insertionCost returns the net added cost of splicing a fragment whose
// endpoints are firstIdx/lastIdx immediately before position k: the two
// new edges minus the edge (before k, at k) that the splice breaks, when
// both boundaries exist.
func insertionCost(inst *model.ProblemInstance, slot route.Slot, k, firstIdx, lastIdx int) int {
	before, hasBefore := boundaryBefore(inst, slot, k)
	after, hasAfter := boundaryAt(inst, slot, k)
	c := 0
	if hasBefore {
		c += edgeCost(inst, before, firstIdx)
	}
	if hasAfter {
		c += edgeCost(inst, lastIdx, after)
	}
	if hasBefore && hasAfter {
		c -= edgeCost(inst, before, after)
	}
	return c
}

// nodeSurroundWith returns the cost of entering and leaving position k if
// its content were newMatrixIdx, using the route's CURRENT neighbors at
// k-1 and k+1 (i.e. a same-position content substitution, not a removal).
func nodeSurroundWith(inst *model.ProblemInstance, slot route.Slot, k, newMatrixIdx int) int {
	before, hasBefore := boundaryBefore(inst, slot, k)
	after, hasAfter := boundaryAt(inst, slot, k+1)
	c := 0
	if hasBefore {
		c += edgeCost(inst, before, newMatrixIdx)
	}
	if hasAfter {
		c += edgeCost(inst, newMatrixIdx, after)
	}
	return c
}

// edgeSurroundWith is nodeSurroundWith's generalization to an arbitrary
// contiguous block [first, last] being replaced in place by a fragment
// whose endpoints are firstIdx/lastIdx.
func edgeSurroundWith(inst *model.ProblemInstance, slot route.Slot, first, last, firstIdx, lastIdx int) int {
	before, hasBefore := boundaryBefore(inst, slot, first)
	after, hasAfter := boundaryAt(inst, slot, last+1)
	c := 0
	if hasBefore {
		c += edgeCost(inst, before, firstIdx)
	}
	if hasAfter {
		c += edgeCost(inst, lastIdx, after)
	}
	return c
}

// removalClosure returns the cost of the edge that would directly join
// whatever precedes first to whatever follows last, once [first, last] is
// removed. Zero if either boundary is absent.
func removalClosure(inst *model.ProblemInstance, slot route.Slot, first, last int) int {
	before, hasBefore := boundaryBefore(inst, slot, first)
	after, hasAfter := boundaryAt(inst, slot, last+1)
	if hasBefore && hasAfter {
		return edgeCost(inst, before, after)
	}
	return 0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// sequenceCost sums the edge costs of consecutive elements of seq, plus
// the boundary edges to before/after when they exist. It is the direct,
// no-caching way to price a contiguous block of positions as a whole --
// needed whenever a move's two fragments sit directly next to each other,
// since each fragment's independently cached surround would otherwise
// double-count the edge between them.
func sequenceCost(inst *model.ProblemInstance, before int, hasBefore bool, seq []int, after int, hasAfter bool) int {
	c := 0
	if hasBefore {
		c += edgeCost(inst, before, seq[0])
	}
	for i := 0; i+1 < len(seq); i++ {
		c += edgeCost(inst, seq[i], seq[i+1])
	}
	if hasAfter {
		c += edgeCost(inst, seq[len(seq)-1], after)
	}
	return c
}
