package route

import "fleet-routing-engine/internal/vrp/model"

// Kind distinguishes which concrete representation a Slot currently holds.
type Kind int

const (
	// KindRaw marks a capacity-only route with no time-window machinery.
	KindRaw Kind = iota
	// KindTW marks a time-window-aware route.
	KindTW
)

// Slot is a union of the two route representations, tagged by Kind. Search
// code that is representation-agnostic (iterating vehicles, reading
// Size/At/Jobs, and Slot's own mutators, which dispatch to either
// representation) goes through Slot; code that needs feasibility probes
// must call TW() and handle the KindRaw case explicitly, since Raw routes
// carry no probe methods at all.
//
// This mirrors the source system's choice to give VRPTW routes their own
// type rather than grafting time windows onto every CVRP route; the
// composition here is a union rather than inheritance, so a Slot never
// pays for caches it does not use.
type Slot struct {
	kind Kind
	raw  *Raw
	tw   *TW
}

// NewRawSlot wraps a Raw route in a Slot.
func NewRawSlot(r *Raw) Slot { return Slot{kind: KindRaw, raw: r} }

// NewTWSlot wraps a TW route in a Slot.
func NewTWSlot(t *TW) Slot { return Slot{kind: KindTW, tw: t} }

// Kind reports which representation this Slot holds.
func (s Slot) Kind() Kind { return s.kind }

// Raw returns the underlying Raw route and true, or nil/false if this Slot
// holds a TW route.
func (s Slot) Raw() (*Raw, bool) {
	if s.kind != KindRaw {
		return nil, false
	}
	return s.raw, true
}

// TW returns the underlying TW route and true, or nil/false if this Slot
// holds a Raw route.
func (s Slot) TW() (*TW, bool) {
	if s.kind != KindTW {
		return nil, false
	}
	return s.tw, true
}

// Vehicle returns the vehicle this route belongs to regardless of kind.
func (s Slot) Vehicle() int {
	if s.kind == KindRaw {
		return s.raw.Vehicle
	}
	return s.tw.Vehicle
}

// Size returns the job count regardless of kind.
func (s Slot) Size() int {
	if s.kind == KindRaw {
		return s.raw.Size()
	}
	return s.tw.Size()
}

// At returns the job rank at position k regardless of kind.
func (s Slot) At(k int) int {
	if s.kind == KindRaw {
		return s.raw.At(k)
	}
	return s.tw.At(k)
}

// Jobs returns the job-rank sequence regardless of kind. Callers must not
// mutate the returned slice.
func (s Slot) Jobs() []int {
	if s.kind == KindRaw {
		return s.raw.Jobs()
	}
	return s.tw.Jobs()
}

// Replace substitutes the inclusive range [first, last] with jobs,
// regardless of kind. Raw routes never fail; TW routes rebuild their
// caches and may return an InvariantError if the caller skipped probing.
func (s Slot) Replace(first, last int, jobs []int) error {
	if s.kind == KindRaw {
		s.raw.Remove(first, last-first+1)
		s.raw.Insert(first, jobs)
		return nil
	}
	return s.tw.Replace(first, last, jobs)
}

// Add inserts jobs immediately before position k, regardless of kind.
func (s Slot) Add(jobs []int, k int) error {
	if s.kind == KindRaw {
		s.raw.Insert(k, jobs)
		return nil
	}
	return s.tw.Add(jobs, k)
}

// Remove deletes the inclusive range [first, last], regardless of kind.
func (s Slot) Remove(first, last int) error {
	if s.kind == KindRaw {
		s.raw.Remove(first, last-first+1)
		return nil
	}
	return s.tw.Remove(first, last)
}

// Reverse reverses the sub-sequence [k1, k2] in place, regardless of kind.
func (s Slot) Reverse(k1, k2 int) error {
	if s.kind == KindRaw {
		s.raw.Reverse(k1, k2)
		return nil
	}
	return s.tw.Reverse(k1, k2)
}

// SwapOne exchanges the jobs at positions k1 and k2, regardless of kind.
func (s Slot) SwapOne(k1, k2 int) error {
	if s.kind == KindRaw {
		s.raw.Swap(k1, k2)
		return nil
	}
	return s.tw.Swap(k1, k2)
}

// TotalLoad returns the route's cumulative load regardless of kind. Raw
// routes do not cache it, so it is recomputed from the job list each call;
// callers on a hot path should prefer Solution State's cached totals
// instead.
func (s Slot) TotalLoad(inst *model.ProblemInstance) model.Amount {
	if s.kind == KindTW {
		return s.tw.TotalLoad()
	}
	var total model.Amount
	for _, ji := range s.raw.Jobs() {
		total = model.Add(total, inst.Jobs[ji].Delivery)
	}
	return total
}
