package route

import (
	"fleet-routing-engine/internal/vrp/model"
)

const unbounded = 1 << 30

// TW is a route augmented with the time-window feasibility machinery: an
// ordered sequence of job ranks plus earliest/latest/load/window-choice
// caches. It answers probe queries about a contemplated insertion, removal
// or replacement without mutating the sequence, and applies an edit by
// rebuilding the caches once the caller has already confirmed feasibility.
type TW struct {
	Vehicle int
	inst    *model.ProblemInstance

	jobs []int // job ranks, indices into inst.Jobs

	earliest []int
	latest   []int
	load     []model.Amount
	twRank   []int
}

// NewTW builds a TW route for vehicle from an initial job-rank sequence,
// performing a full cache rebuild. It fails with an InvariantError if the
// sequence is not actually feasible — callers are expected to only pass
// already-feasible sequences (e.g. from a construction heuristic).
func NewTW(inst *model.ProblemInstance, vehicle int, jobs []int) (*TW, error) {
	t := &TW{Vehicle: vehicle, inst: inst}
	t.jobs = append(t.jobs, jobs...)
	if err := t.rebuild(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *TW) vehicleModel() model.Vehicle { return t.inst.Vehicles[t.Vehicle] }

func (t *TW) job(rank int) model.Job { return t.inst.Jobs[t.jobs[rank]] }

// Size returns the number of jobs currently in the route.
func (t *TW) Size() int { return len(t.jobs) }

// At returns the job rank at position k.
func (t *TW) At(k int) int { return t.jobs[k] }

// Jobs returns the current route sequence. Callers must not mutate it.
func (t *TW) Jobs() []int { return t.jobs }

// Earliest returns the cached earliest feasible service start at position k.
func (t *TW) Earliest(k int) int { return t.earliest[k] }

// Latest returns the cached latest feasible service start at position k.
func (t *TW) Latest(k int) int { return t.latest[k] }

// Load returns the cached cumulative capacity load through position k.
func (t *TW) Load(k int) model.Amount { return t.load[k] }

// TotalLoad returns the route's total load, or the zero vector if empty.
func (t *TW) TotalLoad() model.Amount {
	if len(t.load) == 0 {
		return model.Amount{}
	}
	return t.load[len(t.load)-1]
}

// chooseWindow returns the index of the earliest time window of job that
// can still be used given an arrival time, and the resulting service start.
// ok is false if every window has already elapsed.
func chooseWindow(job model.Job, arrival int) (rank int, start int, ok bool) {
	for wi, tw := range job.TWs {
		if tw.End >= arrival {
			s := arrival
			if s < tw.Start {
				s = tw.Start
			}
			return wi, s, true
		}
	}
	return 0, 0, false
}

// rebuild recomputes earliest, latest, load and twRank from scratch. O(n).
func (t *TW) rebuild() error {
	n := len(t.jobs)
	t.earliest = make([]int, n)
	t.latest = make([]int, n)
	t.load = make([]model.Amount, n)
	t.twRank = make([]int, n)

	v := t.vehicleModel()

	// Forward pass: earliest arrival / service start, chosen window, load.
	clock := v.TW.Start
	prevIdx := -1
	if v.HasStart() {
		prevIdx = v.StartIndex()
	}
	var running model.Amount
	for k := 0; k < n; k++ {
		job := t.job(k)
		travel := 0
		if prevIdx >= 0 {
			travel = t.inst.M.Cost(prevIdx, job.Index)
		}
		arrival := clock + travel
		wi, start, ok := chooseWindow(job, arrival)
		if !ok {
			return newInvariantError(t.Vehicle, k, "no time window of job %d admits arrival %d", job.ID, arrival)
		}
		t.earliest[k] = start
		t.twRank[k] = wi
		running = model.Add(running, job.Delivery)
		t.load[k] = running
		clock = start + job.Service
		prevIdx = job.Index
	}
	if !model.LessEq(t.TotalLoad(), v.Capacity) {
		return newInvariantError(t.Vehicle, n-1, "total load %v exceeds capacity %v", t.TotalLoad(), v.Capacity)
	}

	// Backward pass: latest feasible service start.
	clock = v.TW.End
	if !v.HasEnd() {
		clock = unbounded
	}
	nextIdx := -1
	if v.HasEnd() {
		nextIdx = v.EndIndex()
	}
	for k := n - 1; k >= 0; k-- {
		job := t.job(k)
		travel := 0
		if nextIdx >= 0 {
			travel = t.inst.M.Cost(job.Index, nextIdx)
		}
		latestCompletion := clock - travel
		latestStart := latestCompletion - job.Service
		tw := job.TWs[t.twRank[k]]
		if tw.End < latestStart {
			latestStart = tw.End
		}
		if latestStart < t.earliest[k] {
			return newInvariantError(t.Vehicle, k, "earliest %d exceeds latest %d", t.earliest[k], latestStart)
		}
		t.latest[k] = latestStart
		clock = latestStart
		nextIdx = job.Index
	}

	return nil
}

// prefixArrival returns the clock time at which the route is free to start
// serving whatever comes after position k-1 (k==0 means "at the vehicle's
// own departure"), along with the matrix index to travel from.
func (t *TW) prefixArrival(k int) (clock int, fromIdx int, hasFrom bool) {
	if k == 0 {
		v := t.vehicleModel()
		if v.HasStart() {
			return v.TW.Start, v.StartIndex(), true
		}
		return v.TW.Start, 0, false
	}
	job := t.job(k - 1)
	return t.earliest[k-1] + job.Service, job.Index, true
}

// suffixDeadline returns the latest service-start bound position k must
// respect, along with the matrix index to travel to, given the route as it
// stands today (i.e. before any contemplated edit at or before k).
func (t *TW) suffixDeadline(k int) (deadline int, toIdx int, hasTo bool) {
	if k >= len(t.jobs) {
		v := t.vehicleModel()
		if v.HasEnd() {
			return v.TW.End, v.EndIndex(), true
		}
		return unbounded, 0, false
	}
	return t.latest[k], t.job(k).Index, true
}

// walkBlock simulates arriving at clock/fromIdx and serving jobIdxs (job
// ranks into inst.Jobs, not route positions) back to back, choosing the
// earliest usable window at each step. It returns the clock and matrix
// index after the last job, or ok=false if any job's windows are
// exhausted.
func (t *TW) walkBlock(clock, fromIdx int, hasFrom bool, jobIdxs []int) (outClock, outIdx int, ok bool) {
	cur := clock
	idx := fromIdx
	has := hasFrom
	for _, ji := range jobIdxs {
		job := t.inst.Jobs[ji]
		travel := 0
		if has {
			travel = t.inst.M.Cost(idx, job.Index)
		}
		arrival := cur + travel
		_, start, found := chooseWindow(job, arrival)
		if !found {
			return 0, 0, false
		}
		cur = start + job.Service
		idx = job.Index
		has = true
	}
	return cur, idx, true
}

// IsValidAdditionForTW probes whether the contiguous block jobIdxs can be
// inserted immediately before route position k (0 <= k <= Size()) without
// mutating the route.
func (t *TW) IsValidAdditionForTW(jobIdxs []int, k int) bool {
	clock, fromIdx, hasFrom := t.prefixArrival(k)
	outClock, outIdx, ok := t.walkBlock(clock, fromIdx, hasFrom, jobIdxs)
	if !ok {
		return false
	}
	deadline, toIdx, hasTo := t.suffixDeadline(k)
	if !hasTo {
		return true
	}
	arrival := outClock + t.inst.M.Cost(outIdx, toIdx)
	return arrival <= deadline
}

// IsValidAdditionForCapacity probes whether jobIdxs can be added to the
// route (at any position) without exceeding the vehicle's capacity.
func (t *TW) IsValidAdditionForCapacity(jobIdxs []int) bool {
	total := t.TotalLoad()
	for _, ji := range jobIdxs {
		total = model.Add(total, t.inst.Jobs[ji].Delivery)
	}
	return model.LessEq(total, t.vehicleModel().Capacity)
}

// IsValidRemoval probes whether removing the inclusive range [first, last]
// keeps the route TW-feasible. Capacity is never tightened by removal, so
// it is always valid on that front.
func (t *TW) IsValidRemoval(first, last int) bool {
	clock, fromIdx, hasFrom := t.prefixArrival(first)
	deadline, toIdx, hasTo := t.suffixDeadline(last + 1)
	if !hasTo {
		return true
	}
	arrival := clock
	if hasFrom {
		arrival = clock + t.inst.M.Cost(fromIdx, toIdx)
	}
	return arrival <= deadline
}

// IsValidReplacement probes whether the inclusive range [first, last] can be
// replaced, in one step, by the contiguous block jobIdxs.
func (t *TW) IsValidReplacement(first, last int, jobIdxs []int) bool {
	removed := model.Amount{}
	for k := first; k <= last; k++ {
		removed = model.Add(removed, t.job(k).Delivery)
	}
	added := model.Amount{}
	for _, ji := range jobIdxs {
		added = model.Add(added, t.inst.Jobs[ji].Delivery)
	}
	newTotal := model.Add(model.Sub(t.TotalLoad(), removed), added)
	if !model.LessEq(newTotal, t.vehicleModel().Capacity) {
		return false
	}

	clock, fromIdx, hasFrom := t.prefixArrival(first)
	outClock, outIdx, ok := t.walkBlock(clock, fromIdx, hasFrom, jobIdxs)
	if !ok {
		return false
	}
	deadline, toIdx, hasTo := t.suffixDeadline(last + 1)
	if !hasTo {
		return true
	}
	arrival := outClock + t.inst.M.Cost(outIdx, toIdx)
	return arrival <= deadline
}

// Add inserts jobIdxs immediately before position k and rebuilds the
// caches. The caller must have already confirmed feasibility via
// IsValidAdditionForTW/IsValidAdditionForCapacity.
func (t *TW) Add(jobIdxs []int, k int) error {
	t.jobs = append(t.jobs[:k], append(append([]int{}, jobIdxs...), t.jobs[k:]...)...)
	return t.rebuild()
}

// Remove deletes the inclusive range [first, last] and rebuilds the caches.
// The caller must have already confirmed feasibility via IsValidRemoval.
func (t *TW) Remove(first, last int) error {
	t.jobs = append(t.jobs[:first], t.jobs[last+1:]...)
	return t.rebuild()
}

// Replace substitutes the inclusive range [first, last] with jobIdxs and
// rebuilds the caches. The caller must have already confirmed feasibility
// via IsValidReplacement.
func (t *TW) Replace(first, last int, jobIdxs []int) error {
	tail := append([]int{}, t.jobs[last+1:]...)
	t.jobs = append(t.jobs[:first], jobIdxs...)
	t.jobs = append(t.jobs, tail...)
	return t.rebuild()
}

// Swap exchanges the job ranks at positions k1 and k2 and rebuilds caches.
// Provided for operator symmetry with Raw; TW-aware operators should prefer
// Replace/probe pairs so that infeasible swaps are rejected before mutation.
func (t *TW) Swap(k1, k2 int) error {
	t.jobs[k1], t.jobs[k2] = t.jobs[k2], t.jobs[k1]
	return t.rebuild()
}

// Reverse reverses the sub-sequence [k1, k2] in place and rebuilds caches.
func (t *TW) Reverse(k1, k2 int) error {
	for a, b := k1, k2; a < b; a, b = a+1, b-1 {
		t.jobs[a], t.jobs[b] = t.jobs[b], t.jobs[a]
	}
	return t.rebuild()
}

// Clone returns a deep copy of the route and its caches.
func (t *TW) Clone() *TW {
	c := &TW{
		Vehicle: t.Vehicle,
		inst:    t.inst,
		jobs:    append([]int{}, t.jobs...),
		earliest: append([]int{}, t.earliest...),
		latest:   append([]int{}, t.latest...),
		twRank:   append([]int{}, t.twRank...),
	}
	c.load = make([]model.Amount, len(t.load))
	for i, l := range t.load {
		c.load[i] = l.Clone()
	}
	return c
}
