package operator

import "fleet-routing-engine/internal/vrp/route"

// The intra-route apply functions mutate a single slot twice. Most kinds
// swap equal-length fragments or adjust the second index relative to the
// first, so either order of application is safe. IntraMixedExchange is the
// exception — its two fragments have different lengths — so construction
// requires SourceFirst < TargetFirst for that kind specifically, and its
// apply replaces the higher-rank (edge) fragment first.

func applyIntraExchange(m *Move, slot route.Slot) error {
	a, b := slot.At(m.SourceFirst), slot.At(m.TargetFirst)
	if err := slot.Replace(m.SourceFirst, m.SourceFirst, []int{b}); err != nil {
		return err
	}
	return slot.Replace(m.TargetFirst, m.TargetFirst, []int{a})
}

func applyIntraCrossExchange(m *Move, slot route.Slot) error {
	srcFrag := orient(slot.Jobs()[m.TargetFirst:m.TargetLast+1], m.ReverseTarget)
	tgtFrag := orient(slot.Jobs()[m.SourceFirst:m.SourceLast+1], m.ReverseSource)
	if err := slot.Replace(m.TargetFirst, m.TargetLast, tgtFrag); err != nil {
		return err
	}
	return slot.Replace(m.SourceFirst, m.SourceLast, srcFrag)
}

func applyIntraMixedExchange(m *Move, slot route.Slot) error {
	srcFrag := orient(slot.Jobs()[m.TargetFirst:m.TargetLast+1], m.ReverseTarget)
	tgtFrag := []int{slot.At(m.SourceFirst)}
	if err := slot.Replace(m.TargetFirst, m.TargetLast, tgtFrag); err != nil {
		return err
	}
	return slot.Replace(m.SourceFirst, m.SourceFirst, srcFrag)
}

func applyIntraRelocate(m *Move, slot route.Slot) error {
	job := slot.At(m.SourceFirst)
	if err := slot.Remove(m.SourceFirst, m.SourceFirst); err != nil {
		return err
	}
	insertAt := m.TargetFirst
	if insertAt > m.SourceFirst {
		insertAt--
	}
	return slot.Add([]int{job}, insertAt)
}

func applyIntraOrOpt(m *Move, slot route.Slot) error {
	frag := orient(slot.Jobs()[m.SourceFirst:m.SourceLast+1], m.Reversed)
	blockLen := m.SourceLast - m.SourceFirst + 1
	if err := slot.Remove(m.SourceFirst, m.SourceLast); err != nil {
		return err
	}
	insertAt := m.TargetFirst
	if insertAt > m.SourceLast {
		insertAt -= blockLen
	} else if insertAt > m.SourceFirst {
		insertAt = m.SourceFirst
	}
	return slot.Add(frag, insertAt)
}

func applyIntraTwoOpt(m *Move, slot route.Slot) error {
	return slot.Reverse(m.SourceFirst, m.SourceLast)
}
