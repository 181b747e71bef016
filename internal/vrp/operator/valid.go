package operator

import "fleet-routing-engine/internal/vrp/route"

// Each validXxx function below assumes skillsOK has already been checked
// by Move.IsValid where relevant, and consults the Move's Validator for
// capacity/TW feasibility of each side independently — always in terms of
// the ORIGINAL, not-yet-mutated routes, since these are pure probes.

func validExchange(m *Move, src, tgt route.Slot) bool {
	return m.Validator.ValidateReplacement(src, m.SourceFirst, m.SourceFirst, []int{tgt.At(m.TargetFirst)}) &&
		m.Validator.ValidateReplacement(tgt, m.TargetFirst, m.TargetFirst, []int{src.At(m.SourceFirst)})
}

func validCrossExchange(m *Move, src, tgt route.Slot) bool {
	srcFrag := orient(tgt.Jobs()[m.TargetFirst:m.TargetLast+1], m.ReverseTarget)
	tgtFrag := orient(src.Jobs()[m.SourceFirst:m.SourceLast+1], m.ReverseSource)
	return m.Validator.ValidateReplacement(src, m.SourceFirst, m.SourceLast, srcFrag) &&
		m.Validator.ValidateReplacement(tgt, m.TargetFirst, m.TargetLast, tgtFrag)
}

func validMixedExchange(m *Move, src, tgt route.Slot) bool {
	srcFrag := orient(tgt.Jobs()[m.TargetFirst:m.TargetLast+1], m.ReverseTarget)
	return m.Validator.ValidateReplacement(src, m.SourceFirst, m.SourceFirst, srcFrag) &&
		m.Validator.ValidateReplacement(tgt, m.TargetFirst, m.TargetLast, []int{src.At(m.SourceFirst)})
}

func validRelocate(m *Move, src, tgt route.Slot) bool {
	return m.Validator.ValidateRemoval(src, m.SourceFirst, m.SourceFirst) &&
		m.Validator.ValidateAddition(tgt, []int{src.At(m.SourceFirst)}, m.TargetFirst)
}

func validOrOpt(m *Move, src, tgt route.Slot) bool {
	frag := orient(src.Jobs()[m.SourceFirst:m.SourceLast+1], m.Reversed)
	return m.Validator.ValidateRemoval(src, m.SourceFirst, m.SourceLast) &&
		m.Validator.ValidateAddition(tgt, frag, m.TargetFirst)
}

func validTwoOpt(m *Move, src, tgt route.Slot) bool {
	// Capacity/TW feasibility of the two recombined routes as wholes is
	// checked by treating each side's moved tail as a remove-then-add
	// against the other route; both sides must independently pass.
	srcTail := src.Jobs()[m.SourceFirst:]
	tgtTail := tgt.Jobs()[m.TargetFirst:]
	return m.Validator.ValidateReplacement(src, m.SourceFirst, src.Size()-1, tgtTail) &&
		m.Validator.ValidateReplacement(tgt, m.TargetFirst, tgt.Size()-1, srcTail)
}

func validReverseTwoOpt(m *Move, src, tgt route.Slot) bool {
	srcTail := reversedCopy(src.Jobs()[m.SourceFirst:])
	tgtHead := reversedCopy(tgt.Jobs()[:m.TargetFirst])
	return m.Validator.ValidateReplacement(src, m.SourceFirst, src.Size()-1, tgtHead) &&
		m.Validator.ValidateReplacement(tgt, 0, m.TargetFirst-1, srcTail)
}

func validIntraExchange(m *Move, slot route.Slot) bool {
	return m.Validator.ValidateReplacement(slot, m.SourceFirst, m.SourceFirst, []int{slot.At(m.TargetFirst)}) &&
		m.Validator.ValidateReplacement(slot, m.TargetFirst, m.TargetFirst, []int{slot.At(m.SourceFirst)})
}

func validIntraCrossExchange(m *Move, slot route.Slot) bool {
	srcFrag := orient(slot.Jobs()[m.TargetFirst:m.TargetLast+1], m.ReverseTarget)
	tgtFrag := orient(slot.Jobs()[m.SourceFirst:m.SourceLast+1], m.ReverseSource)
	return m.Validator.ValidateReplacement(slot, m.SourceFirst, m.SourceLast, srcFrag) &&
		m.Validator.ValidateReplacement(slot, m.TargetFirst, m.TargetLast, tgtFrag)
}

func validIntraMixedExchange(m *Move, slot route.Slot) bool {
	srcFrag := orient(slot.Jobs()[m.TargetFirst:m.TargetLast+1], m.ReverseTarget)
	return m.Validator.ValidateReplacement(slot, m.SourceFirst, m.SourceFirst, srcFrag) &&
		m.Validator.ValidateReplacement(slot, m.TargetFirst, m.TargetLast, []int{slot.At(m.SourceFirst)})
}

func validIntraRelocate(m *Move, slot route.Slot) bool {
	return m.Validator.ValidateRemoval(slot, m.SourceFirst, m.SourceFirst) &&
		m.Validator.ValidateAddition(slot, []int{slot.At(m.SourceFirst)}, m.TargetFirst)
}

func validIntraOrOpt(m *Move, slot route.Slot) bool {
	frag := orient(slot.Jobs()[m.SourceFirst:m.SourceLast+1], m.Reversed)
	return m.Validator.ValidateRemoval(slot, m.SourceFirst, m.SourceLast) &&
		m.Validator.ValidateAddition(slot, frag, m.TargetFirst)
}

// validIntraTwoOpt probes the reversed fragment [SourceFirst, SourceLast]
// against the route it's reversed in place. Capacity never changes under a
// pure reversal, so CapacityValidator's ValidateReplacement trivially
// passes, but a TW route can still reject it: reversing changes every
// arrival time inside and after the fragment.
func validIntraTwoOpt(m *Move, slot route.Slot) bool {
	frag := reversedCopy(slot.Jobs()[m.SourceFirst : m.SourceLast+1])
	return m.Validator.ValidateReplacement(slot, m.SourceFirst, m.SourceLast, frag)
}

func orient(jobs []int, reversed bool) []int {
	if !reversed {
		return append([]int{}, jobs...)
	}
	return reversedCopy(jobs)
}

func reversedCopy(jobs []int) []int {
	out := make([]int, len(jobs))
	for i, j := range jobs {
		out[len(jobs)-1-i] = j
	}
	return out
}
