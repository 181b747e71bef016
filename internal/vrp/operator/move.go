// Package operator implements the move catalogue: thirteen neighborhoods,
// each following the construct / compute-gain / is-valid / apply lifecycle.
// A single Move type carries the data for every kind; behavior is
// dispatched on Kind plus the Validator supplied at construction, per the
// composition-over-inheritance redesign — there is deliberately no
// per-kind Go type and no interface method table.
package operator

import (
	"fmt"

	"fleet-routing-engine/internal/vrp/model"
	"fleet-routing-engine/internal/vrp/route"
	"fleet-routing-engine/internal/vrp/state"
)

// Move is one candidate neighborhood move: an operator kind applied to a
// specific pair of (vehicle, rank) locations. ComputeGain must be called
// before IsValid, and IsValid before Apply; Apply is only safe to call
// once, since it mutates routes: afterwards the Move's cached gain and
// ranks no longer describe them.
type Move struct {
	Kind Kind

	SourceVehicle int
	TargetVehicle int // equals SourceVehicle for intra-route kinds

	// Inclusive rank bounds of the fragment(s) this move touches.
	SourceFirst, SourceLast int
	TargetFirst, TargetLast int

	// ReverseSource/ReverseTarget record the chosen orientation for each
	// of up to two independently reversible fragments in two-fragment
	// kinds (CrossExchange, MixedExchange and their intra forms).
	ReverseSource bool
	ReverseTarget bool

	// Reversed records the chosen orientation for single-fragment kinds
	// that relocate one edge (OrOpt, IntraOrOpt).
	Reversed bool

	Validator Validator

	gain    int
	gainSet bool
}

// New constructs a Move. SourceLast/TargetLast should equal
// SourceFirst/TargetFirst for single-job fragments; TargetLast is ignored
// by insertion-point kinds (Relocate, OrOpt and their intra forms), where
// TargetFirst names the insertion index rather than a fragment bound.
func New(kind Kind, v Validator, sourceVehicle, sourceFirst, sourceLast, targetVehicle, targetFirst, targetLast int) *Move {
	return &Move{
		Kind:          kind,
		Validator:     v,
		SourceVehicle: sourceVehicle,
		SourceFirst:   sourceFirst,
		SourceLast:    sourceLast,
		TargetVehicle: targetVehicle,
		TargetFirst:   targetFirst,
		TargetLast:    targetLast,
	}
}

// Gain returns the cached gain computed by ComputeGain. Positive means
// improving.
func (m *Move) Gain() int {
	return m.gain
}

// ComputeGain populates stored_gain using only the cached surround costs
// in arena and direct matrix lookups for the contemplated fragment, per
// the gain identity: gain = (old fragment + old surround) − (new fragment
// + new surround). It never mutates a route.
func (m *Move) ComputeGain(inst *model.ProblemInstance, arena *state.Arena, slots map[int]route.Slot) int {
	m.gainSet = true
	src := slots[m.SourceVehicle]
	tgt := slots[m.TargetVehicle]
	switch m.Kind {
	case Exchange:
		m.gain = gainExchange(inst, arena, src, tgt, m)
	case CrossExchange:
		m.gain = gainCrossExchange(inst, arena, src, tgt, m)
	case MixedExchange:
		m.gain = gainMixedExchange(inst, arena, src, tgt, m)
	case TwoOpt:
		m.gain = gainTwoOpt(inst, src, tgt, m)
	case ReverseTwoOpt:
		m.gain = gainReverseTwoOpt(inst, src, tgt, m)
	case Relocate:
		m.gain = gainRelocate(inst, arena, src, tgt, m)
	case OrOpt:
		m.gain = gainOrOpt(inst, arena, src, tgt, m)
	case IntraExchange:
		m.gain = gainIntraExchange(inst, arena, src, m)
	case IntraCrossExchange:
		m.gain = gainIntraCrossExchange(inst, arena, src, m)
	case IntraMixedExchange:
		m.gain = gainIntraMixedExchange(inst, arena, src, m)
	case IntraRelocate:
		m.gain = gainIntraRelocate(inst, arena, src, m)
	case IntraOrOpt:
		m.gain = gainIntraOrOpt(inst, arena, src, m)
	case IntraTwoOpt:
		m.gain = gainIntraTwoOpt(inst, arena, src, m)
	}
	return m.gain
}

// IsValid checks every constraint: skills (for inter-route kinds), the
// Validator's capacity/TW rules on whichever route(s) the move touches.
// Callers should only invoke it once ComputeGain reported a positive gain.
func (m *Move) IsValid(inst *model.ProblemInstance, slots map[int]route.Slot) bool {
	if !m.gainSet || m.gain <= 0 {
		return false
	}
	src := slots[m.SourceVehicle]
	tgt := slots[m.TargetVehicle]

	if !m.Kind.IsIntra() && m.SourceVehicle != m.TargetVehicle {
		if !skillsOK(inst, m, src, tgt) {
			return false
		}
	}

	switch m.Kind {
	case Exchange:
		return validExchange(m, src, tgt)
	case CrossExchange:
		return validCrossExchange(m, src, tgt)
	case MixedExchange:
		return validMixedExchange(m, src, tgt)
	case TwoOpt:
		return validTwoOpt(m, src, tgt)
	case ReverseTwoOpt:
		return validReverseTwoOpt(m, src, tgt)
	case Relocate:
		return validRelocate(m, src, tgt)
	case OrOpt:
		return validOrOpt(m, src, tgt)
	case IntraExchange:
		return validIntraExchange(m, src)
	case IntraCrossExchange:
		return validIntraCrossExchange(m, src)
	case IntraMixedExchange:
		return validIntraMixedExchange(m, src)
	case IntraRelocate:
		return validIntraRelocate(m, src)
	case IntraOrOpt:
		return validIntraOrOpt(m, src)
	case IntraTwoOpt:
		return validIntraTwoOpt(m, src)
	}
	return false
}

// skillsOK checks that every job crossing from src's vehicle to tgt's (and
// vice versa, for symmetric kinds) is skill-compatible with its new
// vehicle.
func skillsOK(inst *model.ProblemInstance, m *Move, src, tgt route.Slot) bool {
	check := func(jobs []int, vehicle int) bool {
		for _, ji := range jobs {
			if !inst.VehicleOKWithJob(vehicle, ji) {
				return false
			}
		}
		return true
	}
	switch m.Kind {
	case Exchange:
		return check([]int{src.At(m.SourceFirst)}, tgt.Vehicle()) && check([]int{tgt.At(m.TargetFirst)}, src.Vehicle())
	case CrossExchange:
		return check(src.Jobs()[m.SourceFirst:m.SourceLast+1], tgt.Vehicle()) &&
			check(tgt.Jobs()[m.TargetFirst:m.TargetLast+1], src.Vehicle())
	case MixedExchange:
		return check([]int{src.At(m.SourceFirst)}, tgt.Vehicle()) &&
			check(tgt.Jobs()[m.TargetFirst:m.TargetLast+1], src.Vehicle())
	case TwoOpt:
		return check(src.Jobs()[m.SourceFirst:], tgt.Vehicle()) &&
			check(tgt.Jobs()[m.TargetFirst:], src.Vehicle())
	case ReverseTwoOpt:
		for k := m.SourceFirst; k < src.Size(); k++ {
			if !inst.VehicleOKWithJob(tgt.Vehicle(), src.At(k)) {
				return false
			}
		}
		for k := 0; k < m.TargetFirst; k++ {
			if !inst.VehicleOKWithJob(src.Vehicle(), tgt.At(k)) {
				return false
			}
		}
		return true
	case Relocate:
		return check([]int{src.At(m.SourceFirst)}, tgt.Vehicle())
	case OrOpt:
		return check(src.Jobs()[m.SourceFirst:m.SourceLast+1], tgt.Vehicle())
	}
	return true
}

// UpdateCandidates returns the vehicle indices whose Solution-State caches
// must be rebuilt after Apply.
func (m *Move) UpdateCandidates() []int {
	if m.SourceVehicle == m.TargetVehicle {
		return []int{m.SourceVehicle}
	}
	return []int{m.SourceVehicle, m.TargetVehicle}
}

// Apply mutates the affected route(s). It assumes ComputeGain and IsValid
// have already been called and returned a positive, valid gain.
func (m *Move) Apply(slots map[int]route.Slot) error {
	src := slots[m.SourceVehicle]
	tgt := slots[m.TargetVehicle]
	var err error
	switch m.Kind {
	case Exchange:
		err = applyExchange(m, src, tgt)
	case CrossExchange:
		err = applyCrossExchange(m, src, tgt)
	case MixedExchange:
		err = applyMixedExchange(m, src, tgt)
	case TwoOpt:
		err = applyTwoOpt(m, src, tgt)
	case ReverseTwoOpt:
		err = applyReverseTwoOpt(m, src, tgt)
	case Relocate:
		err = applyRelocate(m, src, tgt)
	case OrOpt:
		err = applyOrOpt(m, src, tgt)
	case IntraExchange:
		err = applyIntraExchange(m, src)
	case IntraCrossExchange:
		err = applyIntraCrossExchange(m, src)
	case IntraMixedExchange:
		err = applyIntraMixedExchange(m, src)
	case IntraRelocate:
		err = applyIntraRelocate(m, src)
	case IntraOrOpt:
		err = applyIntraOrOpt(m, src)
	case IntraTwoOpt:
		err = applyIntraTwoOpt(m, src)
	default:
		err = fmt.Errorf("operator: unknown kind %v", m.Kind)
	}
	return err
}

func edgeCost(inst *model.ProblemInstance, a, b int) int { return inst.M.Cost(a, b) }

func jobIdx(inst *model.ProblemInstance, ji int) int { return inst.Jobs[ji].Index }
