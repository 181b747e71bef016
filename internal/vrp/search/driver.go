// Package search implements the outer descent loop: generate candidate
// moves, pick the best-gain valid one, apply it, invalidate the affected
// vehicles' caches, and repeat until no improving move remains.
package search

import (
	"context"

	"fleet-routing-engine/internal/vrp/model"
	"fleet-routing-engine/internal/vrp/operator"
	"fleet-routing-engine/internal/vrp/route"
	"fleet-routing-engine/internal/vrp/state"
)

// Stats summarizes one descent.
type Stats struct {
	Iterations int
	TotalGain  int
}

// moveKey orders candidates for deterministic tie-breaking: operator-class
// priority, then source vehicle, then target vehicle, then source rank,
// then target rank. Lower sorts first.
func moveKey(m *operator.Move) [5]int {
	return [5]int{m.Kind.Priority(), m.SourceVehicle, m.TargetVehicle, m.SourceFirst, m.TargetFirst}
}

func less(a, b [5]int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Descend runs the local-search loop over slots/arena in place until no
// positive-gain valid candidate exists or ctx is canceled. Cancellation is
// checked only at loop boundaries, matching the core's non-yielding
// per-move computations.
func Descend(ctx context.Context, inst *model.ProblemInstance, slots map[int]route.Slot, arena *state.Arena, level Level) (Stats, error) {
	var stats Stats
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		candidates := enumerate(inst, slots, level)

		var best *operator.Move
		var bestKey [5]int
		for _, cand := range candidates {
			gain := cand.ComputeGain(inst, arena, slots)
			if gain <= 0 {
				continue
			}
			if !cand.IsValid(inst, slots) {
				continue
			}
			key := moveKey(cand)
			if best == nil || gain > best.Gain() || (gain == best.Gain() && less(key, bestKey)) {
				best = cand
				bestKey = key
			}
		}

		if best == nil {
			return stats, nil
		}

		if err := best.Apply(slots); err != nil {
			return stats, err
		}
		for _, v := range best.UpdateCandidates() {
			arena.Rebuild(v, slots[v])
		}

		stats.Iterations++
		stats.TotalGain += best.Gain()
	}
}
