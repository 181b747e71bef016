package operator

import (
	"fleet-routing-engine/internal/vrp/model"
	"fleet-routing-engine/internal/vrp/route"
)

// Validator is the part of is_valid that varies between CVRP and VRPTW: a
// capacity-only move is always feasible once capacity holds, a time-window
// move must additionally be probed against the TW route's own machinery.
// Every Move holds exactly one Validator, chosen by the caller at
// construction time rather than by subclassing.
type Validator interface {
	ValidateAddition(slot route.Slot, jobs []int, k int) bool
	ValidateRemoval(slot route.Slot, first, last int) bool
	ValidateReplacement(slot route.Slot, first, last int, jobs []int) bool
}

// CapacityValidator is the CVRP flavor: it only ever consults capacity.
type CapacityValidator struct {
	Inst *model.ProblemInstance
}

func (v CapacityValidator) amount(jobs []int) model.Amount {
	var total model.Amount
	for _, ji := range jobs {
		total = model.Add(total, v.Inst.Jobs[ji].Delivery)
	}
	return total
}

func (v CapacityValidator) ValidateAddition(slot route.Slot, jobs []int, k int) bool {
	total := model.Add(slot.TotalLoad(v.Inst), v.amount(jobs))
	return model.LessEq(total, v.Inst.Vehicles[slot.Vehicle()].Capacity)
}

func (v CapacityValidator) ValidateRemoval(slot route.Slot, first, last int) bool {
	return true
}

func (v CapacityValidator) ValidateReplacement(slot route.Slot, first, last int, jobs []int) bool {
	removed := v.amount(slot.Jobs()[first : last+1])
	added := v.amount(jobs)
	total := model.Add(model.Sub(slot.TotalLoad(v.Inst), removed), added)
	return model.LessEq(total, v.Inst.Vehicles[slot.Vehicle()].Capacity)
}

// TWValidator is the VRPTW flavor: it delegates to the TW route's probe
// operations. It requires the slot it is asked to validate to actually
// hold a TW route; a Raw route under a TW validator is a construction
// error and always reports invalid.
type TWValidator struct{}

func (TWValidator) ValidateAddition(slot route.Slot, jobs []int, k int) bool {
	tw, ok := slot.TW()
	if !ok {
		return false
	}
	return tw.IsValidAdditionForCapacity(jobs) && tw.IsValidAdditionForTW(jobs, k)
}

func (TWValidator) ValidateRemoval(slot route.Slot, first, last int) bool {
	tw, ok := slot.TW()
	if !ok {
		return false
	}
	return tw.IsValidRemoval(first, last)
}

func (TWValidator) ValidateReplacement(slot route.Slot, first, last int, jobs []int) bool {
	tw, ok := slot.TW()
	if !ok {
		return false
	}
	return tw.IsValidReplacement(first, last, jobs)
}
