package operator

import (
	"fleet-routing-engine/internal/vrp/model"
	"fleet-routing-engine/internal/vrp/route"
	"fleet-routing-engine/internal/vrp/state"
)

// gainExchange swaps the single jobs at src[SourceFirst] and
// tgt[TargetFirst]. Neither side has an orientation choice; single nodes
// have no internal fragment cost.
//
// When both positions are in the same route and directly adjacent, the
// edge between them is shared by both nodes' cached surrounds: computing
// each side independently double-counts it on the "old" side and reads a
// stale (not-yet-swapped) neighbor on the "new" side. That case is priced
// directly instead, as the one three-edge block the swap actually touches.
func gainExchange(inst *model.ProblemInstance, arena *state.Arena, src, tgt route.Slot, m *Move) int {
	if src.Vehicle() == tgt.Vehicle() {
		lo, hi := m.SourceFirst, m.TargetFirst
		if lo > hi {
			lo, hi = hi, lo
		}
		if hi == lo+1 {
			return adjacentExchangeGain(inst, src, lo, hi)
		}
	}

	cacheSrc := arena.Cache(src.Vehicle())
	cacheTgt := arena.Cache(tgt.Vehicle())
	oldSrc := cacheSrc.EdgeAroundNode(m.SourceFirst)
	oldTgt := cacheTgt.EdgeAroundNode(m.TargetFirst)
	newSrc := nodeSurroundWith(inst, src, m.SourceFirst, jobIdx(inst, tgt.At(m.TargetFirst)))
	newTgt := nodeSurroundWith(inst, tgt, m.TargetFirst, jobIdx(inst, src.At(m.SourceFirst)))
	return (oldSrc + oldTgt) - (newSrc + newTgt)
}

// adjacentExchangeGain prices swapping the two adjacent positions lo,
// lo+1 (lo+1 == hi) within the same route as the single block [before, a,
// b, after] becoming [before, b, a, after].
func adjacentExchangeGain(inst *model.ProblemInstance, slot route.Slot, lo, hi int) int {
	before, hasBefore := boundaryBefore(inst, slot, lo)
	after, hasAfter := boundaryAt(inst, slot, hi+1)
	a, b := jobIdx(inst, slot.At(lo)), jobIdx(inst, slot.At(hi))

	oldCost := sequenceCost(inst, before, hasBefore, []int{a, b}, after, hasAfter)
	newCost := sequenceCost(inst, before, hasBefore, []int{b, a}, after, hasAfter)
	return oldCost - newCost
}

// gainCrossExchange swaps edge (SourceFirst, SourceLast) in src with edge
// (TargetFirst, TargetLast) in tgt, each fragment independently
// reversible. Per-side local gain is maximized over orientation, then the
// two maxima are summed.
func gainCrossExchange(inst *model.ProblemInstance, arena *state.Arena, src, tgt route.Slot, m *Move) int {
	cacheSrc := arena.Cache(src.Vehicle())
	cacheTgt := arena.Cache(tgt.Vehicle())

	srcJobs := src.Jobs()[m.SourceFirst : m.SourceLast+1]
	tgtJobs := tgt.Jobs()[m.TargetFirst : m.TargetLast+1]
	s0, s1 := jobIdx(inst, srcJobs[0]), jobIdx(inst, srcJobs[len(srcJobs)-1])
	t0, t1 := jobIdx(inst, tgtJobs[0]), jobIdx(inst, tgtJobs[len(tgtJobs)-1])

	oldFragSrc := edgeCost(inst, s0, s1)
	oldFragTgt := edgeCost(inst, t0, t1)
	oldSurroundSrc := cacheSrc.EdgeAroundEdge(m.SourceFirst)
	oldSurroundTgt := cacheTgt.EdgeAroundEdge(m.TargetFirst)

	srcNormal := (oldFragSrc + oldSurroundSrc) - (edgeCost(inst, t0, t1) + edgeSurroundWith(inst, src, m.SourceFirst, m.SourceLast, t0, t1))
	srcReversed := (oldFragSrc + oldSurroundSrc) - (edgeCost(inst, t1, t0) + edgeSurroundWith(inst, src, m.SourceFirst, m.SourceLast, t1, t0))
	tgtNormal := (oldFragTgt + oldSurroundTgt) - (edgeCost(inst, s0, s1) + edgeSurroundWith(inst, tgt, m.TargetFirst, m.TargetLast, s0, s1))
	tgtReversed := (oldFragTgt + oldSurroundTgt) - (edgeCost(inst, s1, s0) + edgeSurroundWith(inst, tgt, m.TargetFirst, m.TargetLast, s1, s0))

	m.ReverseTarget = srcReversed > srcNormal
	m.ReverseSource = tgtReversed > tgtNormal

	return maxInt(srcNormal, srcReversed) + maxInt(tgtNormal, tgtReversed)
}

// gainMixedExchange swaps the single job at src[SourceFirst] with the edge
// (TargetFirst, TargetLast) in tgt. Only the edge placed into src's slot
// has an orientation choice.
//
// As with gainExchange, a same-route adjacent case (the single job sits
// directly against the edge, no gap) is priced directly as one contiguous
// block: the cached per-fragment surrounds would otherwise double-count
// the shared edge.
func gainMixedExchange(inst *model.ProblemInstance, arena *state.Arena, src, tgt route.Slot, m *Move) int {
	srcJob := jobIdx(inst, src.At(m.SourceFirst))
	tgtJobs := tgt.Jobs()[m.TargetFirst : m.TargetLast+1]
	t0, t1 := jobIdx(inst, tgtJobs[0]), jobIdx(inst, tgtJobs[len(tgtJobs)-1])

	if src.Vehicle() == tgt.Vehicle() {
		switch {
		case m.TargetFirst == m.SourceFirst+1:
			return adjacentMixedExchangeGain(inst, src, m, m.SourceFirst, m.TargetLast, srcJob, t0, t1, true)
		case m.SourceFirst == m.TargetLast+1:
			return adjacentMixedExchangeGain(inst, src, m, m.TargetFirst, m.SourceFirst, srcJob, t0, t1, false)
		}
	}

	cacheSrc := arena.Cache(src.Vehicle())
	cacheTgt := arena.Cache(tgt.Vehicle())

	oldSurroundSrc := cacheSrc.EdgeAroundNode(m.SourceFirst)
	oldFragTgt := edgeCost(inst, t0, t1)
	oldSurroundTgt := cacheTgt.EdgeAroundEdge(m.TargetFirst)

	gainSrcNormal := oldSurroundSrc - (edgeCost(inst, t0, t1) + edgeSurroundWith(inst, src, m.SourceFirst, m.SourceFirst, t0, t1))
	gainSrcReversed := oldSurroundSrc - (edgeCost(inst, t1, t0) + edgeSurroundWith(inst, src, m.SourceFirst, m.SourceFirst, t1, t0))
	gainTgt := (oldFragTgt + oldSurroundTgt) - edgeSurroundWith(inst, tgt, m.TargetFirst, m.TargetLast, srcJob, srcJob)

	m.ReverseTarget = gainSrcReversed > gainSrcNormal
	return maxInt(gainSrcNormal, gainSrcReversed) + gainTgt
}

// adjacentMixedExchangeGain prices a MixedExchange where the single job
// and the target edge form one contiguous block within the same route:
// blockStart/blockEnd are the block's rank bounds, and jobBeforeEdge
// records whether the single job (a) originally preceded the edge
// (t0, t1) or followed it.
func adjacentMixedExchangeGain(inst *model.ProblemInstance, slot route.Slot, m *Move, blockStart, blockEnd, a, t0, t1 int, jobBeforeEdge bool) int {
	before, hasBefore := boundaryBefore(inst, slot, blockStart)
	after, hasAfter := boundaryAt(inst, slot, blockEnd+1)

	var oldSeq, normalSeq, reversedSeq []int
	if jobBeforeEdge {
		oldSeq = []int{a, t0, t1}
		normalSeq = []int{t0, t1, a}
		reversedSeq = []int{t1, t0, a}
	} else {
		oldSeq = []int{t0, t1, a}
		normalSeq = []int{a, t0, t1}
		reversedSeq = []int{a, t1, t0}
	}

	oldCost := sequenceCost(inst, before, hasBefore, oldSeq, after, hasAfter)
	gainNormal := oldCost - sequenceCost(inst, before, hasBefore, normalSeq, after, hasAfter)
	gainReversed := oldCost - sequenceCost(inst, before, hasBefore, reversedSeq, after, hasAfter)

	m.ReverseTarget = gainReversed > gainNormal
	return maxInt(gainNormal, gainReversed)
}

// gainRelocate moves the single job at src[SourceFirst] to insertion index
// TargetFirst in tgt.
func gainRelocate(inst *model.ProblemInstance, arena *state.Arena, src, tgt route.Slot, m *Move) int {
	cacheSrc := arena.Cache(src.Vehicle())
	removalGain := cacheSrc.EdgeAroundNode(m.SourceFirst) - removalClosure(inst, src, m.SourceFirst, m.SourceFirst)
	job := jobIdx(inst, src.At(m.SourceFirst))
	insCost := insertionCost(inst, tgt, m.TargetFirst, job, job)
	return removalGain - insCost
}

// gainOrOpt moves the edge (SourceFirst, SourceLast) to insertion index
// TargetFirst in tgt, with the relocated fragment independently
// reversible.
func gainOrOpt(inst *model.ProblemInstance, arena *state.Arena, src, tgt route.Slot, m *Move) int {
	cacheSrc := arena.Cache(src.Vehicle())
	srcJobs := src.Jobs()[m.SourceFirst : m.SourceLast+1]
	e0, e1 := jobIdx(inst, srcJobs[0]), jobIdx(inst, srcJobs[len(srcJobs)-1])

	oldFrag := edgeCost(inst, e0, e1)
	removalGain := (oldFrag + cacheSrc.EdgeAroundEdge(m.SourceFirst)) - removalClosure(inst, src, m.SourceFirst, m.SourceLast)

	insNormal := edgeCost(inst, e0, e1) + insertionCost(inst, tgt, m.TargetFirst, e0, e1)
	insReversed := edgeCost(inst, e1, e0) + insertionCost(inst, tgt, m.TargetFirst, e1, e0)

	if insReversed < insNormal {
		m.Reversed = true
		return removalGain - insReversed
	}
	m.Reversed = false
	return removalGain - insNormal
}

// gainTwoOpt recombines src's prefix [0, SourceFirst) with tgt's suffix
// [TargetFirst, end) and vice versa. Internal edges of each kept fragment
// are unaffected; only the two junction edges and the two
// vehicle-end-reattachment edges (when the moved tail is non-empty and
// reaches the route's end) change.
func gainTwoOpt(inst *model.ProblemInstance, src, tgt route.Slot, m *Move) int {
	sr, tr := m.SourceFirst, m.TargetFirst

	prevS, hasPrevS := boundaryBefore(inst, src, sr)
	prevT, hasPrevT := boundaryBefore(inst, tgt, tr)
	sAtSr, hasSAtSr := boundaryAt(inst, src, sr)
	tAtTr, hasTAtTr := boundaryAt(inst, tgt, tr)

	junctionOld, junctionNew := 0, 0
	if hasPrevS && hasSAtSr {
		junctionOld += edgeCost(inst, prevS, sAtSr)
	}
	if hasPrevT && hasTAtTr {
		junctionOld += edgeCost(inst, prevT, tAtTr)
	}
	// Each head continues into the other route's tail or, when that tail
	// is empty, straight into its own vehicle's end.
	sNext, hasSNext := tAtTr, hasTAtTr
	if tr == tgt.Size() {
		sNext, hasSNext = boundaryAt(inst, src, src.Size())
	}
	tNext, hasTNext := sAtSr, hasSAtSr
	if sr == src.Size() {
		tNext, hasTNext = boundaryAt(inst, tgt, tgt.Size())
	}
	if hasPrevS && hasSNext {
		junctionNew += edgeCost(inst, prevS, sNext)
	}
	if hasPrevT && hasTNext {
		junctionNew += edgeCost(inst, prevT, tNext)
	}

	sVehicle := inst.Vehicles[src.Vehicle()]
	tVehicle := inst.Vehicles[tgt.Vehicle()]
	endOld, endNew := 0, 0
	if lastT, hasLastT := lastJobIdx(inst, tgt); hasLastT && tr <= tgt.Size()-1 {
		if tVehicle.HasEnd() {
			endOld += edgeCost(inst, lastT, tVehicle.EndIndex())
		}
		if sVehicle.HasEnd() {
			endNew += edgeCost(inst, lastT, sVehicle.EndIndex())
		}
	}
	if lastS, hasLastS := lastJobIdx(inst, src); hasLastS && sr <= src.Size()-1 {
		if sVehicle.HasEnd() {
			endOld += edgeCost(inst, lastS, sVehicle.EndIndex())
		}
		if tVehicle.HasEnd() {
			endNew += edgeCost(inst, lastS, tVehicle.EndIndex())
		}
	}

	return (junctionOld + endOld) - (junctionNew + endNew)
}

// gainReverseTwoOpt recombines src's prefix A = src[0, SourceFirst) with
// the reverse of tgt's prefix C = tgt[0, TargetFirst), and the reverse of
// src's suffix B = src[SourceFirst, end) with tgt's suffix D =
// tgt[TargetFirst, end).
func gainReverseTwoOpt(inst *model.ProblemInstance, src, tgt route.Slot, m *Move) int {
	sr, tr := m.SourceFirst, m.TargetFirst

	lastA, hasLastA := boundaryBefore(inst, src, sr)
	firstB, hasFirstB := boundaryAt(inst, src, sr)
	lastC, hasLastC := boundaryBefore(inst, tgt, tr)
	firstD, hasFirstD := boundaryAt(inst, tgt, tr)

	junctionOld, junctionNew := 0, 0
	if hasLastA && hasFirstB {
		junctionOld += edgeCost(inst, lastA, firstB)
	}
	if hasLastC && hasFirstD {
		junctionOld += edgeCost(inst, lastC, firstD)
	}
	if hasLastA && hasLastC {
		junctionNew += edgeCost(inst, lastA, lastC)
	}
	if hasFirstB && hasFirstD {
		junctionNew += edgeCost(inst, firstB, firstD)
	}

	sVehicle := inst.Vehicles[src.Vehicle()]
	tVehicle := inst.Vehicles[tgt.Vehicle()]
	endOld, endNew := 0, 0
	if hasFirstD == false {
		// D is empty: reverse(B) now ends the T route, reattaching to T's end.
		if lastB, hasLastB := lastJobIdx(inst, src); hasLastB {
			if sVehicle.HasEnd() {
				endOld += edgeCost(inst, lastB, sVehicle.EndIndex())
			}
			if tVehicle.HasEnd() {
				endNew += edgeCost(inst, firstB, tVehicle.EndIndex())
			}
		}
	}
	if hasLastA == false {
		// A is empty: reverse(C) now starts the S route; C's own first job
		// (tgt's At(0)) reattaches to S's start instead of T's.
		if firstC, hasFirstC := boundaryAt(inst, tgt, 0); hasFirstC {
			if tVehicle.HasStart() {
				endOld += edgeCost(inst, tVehicle.StartIndex(), firstC)
			}
			if sVehicle.HasStart() {
				endNew += edgeCost(inst, sVehicle.StartIndex(), lastC)
			}
		}
	}

	return (junctionOld + endOld) - (junctionNew + endNew)
}

func lastJobIdx(inst *model.ProblemInstance, slot route.Slot) (idx int, ok bool) {
	n := slot.Size()
	if n == 0 {
		return 0, false
	}
	return jobIdx(inst, slot.At(n-1)), true
}
