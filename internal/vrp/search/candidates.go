package search

import (
	"fleet-routing-engine/internal/vrp/model"
	"fleet-routing-engine/internal/vrp/operator"
	"fleet-routing-engine/internal/vrp/route"
)

func validatorFor(inst *model.ProblemInstance, anySlot route.Slot) operator.Validator {
	if _, ok := anySlot.TW(); ok {
		return operator.TWValidator{}
	}
	return operator.CapacityValidator{Inst: inst}
}

// enumerate generates every candidate Move the Driver will try this pass,
// restricted by level. It does not compute gain or check validity — that
// happens in the Driver's selection loop, one candidate at a time, so gain
// computation always sees the current (not stale) Solution State.
func enumerate(inst *model.ProblemInstance, slots map[int]route.Slot, level Level) []*operator.Move {
	var out []*operator.Move

	for u := range slots {
		for v := range slots {
			if u == v {
				continue
			}
			out = append(out, interMoves(inst, slots[u], slots[v], u, v, level)...)
		}
		out = append(out, intraMoves(inst, slots[u], u, level)...)
	}
	return out
}

func interMoves(inst *model.ProblemInstance, src, tgt route.Slot, u, v int, level Level) []*operator.Move {
	var out []*operator.Move
	val := validatorFor(inst, src)

	for _, sr := range level.window(src.Size()) {
		for _, tr := range level.window(tgt.Size()) {
			out = append(out, operator.New(operator.Exchange, val, u, sr, sr, v, tr, tr))
		}
	}

	if src.Size() >= 2 && tgt.Size() >= 2 {
		for _, sr := range level.window(src.Size() - 1) {
			for _, tr := range level.window(tgt.Size() - 1) {
				out = append(out, operator.New(operator.CrossExchange, val, u, sr, sr+1, v, tr, tr+1))
			}
		}
	}

	if tgt.Size() >= 2 {
		for _, sr := range level.window(src.Size()) {
			for _, tr := range level.window(tgt.Size() - 1) {
				out = append(out, operator.New(operator.MixedExchange, val, u, sr, sr, v, tr, tr+1))
			}
		}
	}

	for _, sr := range level.window(src.Size() + 1) {
		for _, tr := range level.window(tgt.Size() + 1) {
			out = append(out, operator.New(operator.TwoOpt, val, u, sr, sr, v, tr, tr))
			out = append(out, operator.New(operator.ReverseTwoOpt, val, u, sr, sr, v, tr, tr))
		}
	}

	for _, sr := range level.window(src.Size()) {
		for _, tr := range level.window(tgt.Size() + 1) {
			out = append(out, operator.New(operator.Relocate, val, u, sr, sr, v, tr, tr))
		}
	}

	if src.Size() >= 2 {
		for _, sr := range level.window(src.Size() - 1) {
			for _, tr := range level.window(tgt.Size() + 1) {
				out = append(out, operator.New(operator.OrOpt, val, u, sr, sr+1, v, tr, tr))
			}
		}
	}

	return out
}

func intraMoves(inst *model.ProblemInstance, slot route.Slot, v int, level Level) []*operator.Move {
	var out []*operator.Move
	val := validatorFor(inst, slot)
	n := slot.Size()

	for _, sr := range level.window(n) {
		for _, tr := range level.window(n) {
			if sr >= tr {
				continue
			}
			out = append(out, operator.New(operator.IntraExchange, val, v, sr, sr, v, tr, tr))
			// Inserting sr directly before sr+1 leaves the route unchanged.
			if tr != sr+1 {
				out = append(out, operator.New(operator.IntraRelocate, val, v, sr, sr, v, tr, tr))
			}
			out = append(out, operator.New(operator.IntraRelocate, val, v, tr, tr, v, sr, sr))
		}
	}

	if n >= 4 {
		for _, sr := range level.window(n - 1) {
			for _, tr := range level.window(n - 1) {
				// Touching edges (tr == sr+2) would each read the other's
				// jobs as neighbours, so only separated edges are paired.
				if sr+2 >= tr {
					continue
				}
				out = append(out, operator.New(operator.IntraCrossExchange, val, v, sr, sr+1, v, tr, tr+1))
			}
		}
	}

	if n >= 3 {
		for _, sr := range level.window(n) {
			for _, tr := range level.window(n - 1) {
				if sr < tr {
					out = append(out, operator.New(operator.IntraMixedExchange, val, v, sr, sr, v, tr, tr+1))
				}
			}
		}
	}

	if n >= 2 {
		for _, sr := range level.window(n - 1) {
			for _, tr := range level.window(n + 1) {
				// sr+2 is directly after the block: the same place.
				if tr == sr || tr == sr+1 || tr == sr+2 {
					continue
				}
				out = append(out, operator.New(operator.IntraOrOpt, val, v, sr, sr+1, v, tr, tr))
			}
		}
	}

	for _, sr := range level.window(n) {
		for _, tr := range level.window(n) {
			if sr < tr {
				out = append(out, operator.New(operator.IntraTwoOpt, val, v, sr, tr, v, 0, 0))
			}
		}
	}

	return out
}
