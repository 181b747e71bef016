package operator

import "fleet-routing-engine/internal/vrp/route"

// spliceReplace replaces [first, last] with frag, treating first > last
// (an empty range, e.g. a tail that has nothing left in it) as a pure
// insertion at first rather than an error.
func spliceReplace(slot route.Slot, first, last int, frag []int) error {
	if first > last {
		return slot.Add(frag, first)
	}
	return slot.Replace(first, last, frag)
}

func applyExchange(m *Move, src, tgt route.Slot) error {
	srcJob, tgtJob := src.At(m.SourceFirst), tgt.At(m.TargetFirst)
	if err := src.Replace(m.SourceFirst, m.SourceFirst, []int{tgtJob}); err != nil {
		return err
	}
	return tgt.Replace(m.TargetFirst, m.TargetFirst, []int{srcJob})
}

func applyCrossExchange(m *Move, src, tgt route.Slot) error {
	srcFrag := orient(tgt.Jobs()[m.TargetFirst:m.TargetLast+1], m.ReverseTarget)
	tgtFrag := orient(src.Jobs()[m.SourceFirst:m.SourceLast+1], m.ReverseSource)
	if err := src.Replace(m.SourceFirst, m.SourceLast, srcFrag); err != nil {
		return err
	}
	return tgt.Replace(m.TargetFirst, m.TargetLast, tgtFrag)
}

func applyMixedExchange(m *Move, src, tgt route.Slot) error {
	srcFrag := orient(tgt.Jobs()[m.TargetFirst:m.TargetLast+1], m.ReverseTarget)
	tgtFrag := []int{src.At(m.SourceFirst)}
	if err := src.Replace(m.SourceFirst, m.SourceFirst, srcFrag); err != nil {
		return err
	}
	return tgt.Replace(m.TargetFirst, m.TargetLast, tgtFrag)
}

func applyRelocate(m *Move, src, tgt route.Slot) error {
	job := src.At(m.SourceFirst)
	if err := src.Remove(m.SourceFirst, m.SourceFirst); err != nil {
		return err
	}
	return tgt.Add([]int{job}, m.TargetFirst)
}

func applyOrOpt(m *Move, src, tgt route.Slot) error {
	frag := orient(src.Jobs()[m.SourceFirst:m.SourceLast+1], m.Reversed)
	if err := src.Remove(m.SourceFirst, m.SourceLast); err != nil {
		return err
	}
	return tgt.Add(frag, m.TargetFirst)
}

func applyTwoOpt(m *Move, src, tgt route.Slot) error {
	srcTail := append([]int{}, src.Jobs()[m.SourceFirst:]...)
	tgtTail := append([]int{}, tgt.Jobs()[m.TargetFirst:]...)
	if err := spliceReplace(src, m.SourceFirst, src.Size()-1, tgtTail); err != nil {
		return err
	}
	return spliceReplace(tgt, m.TargetFirst, tgt.Size()-1, srcTail)
}

func applyReverseTwoOpt(m *Move, src, tgt route.Slot) error {
	newSrcTail := reversedCopy(tgt.Jobs()[:m.TargetFirst])
	newTgtHead := reversedCopy(src.Jobs()[m.SourceFirst:])
	if err := spliceReplace(src, m.SourceFirst, src.Size()-1, newSrcTail); err != nil {
		return err
	}
	return spliceReplace(tgt, 0, m.TargetFirst-1, newTgtHead)
}
