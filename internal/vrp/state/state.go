// Package state implements the per-vehicle incremental-evaluation caches
// that make operator gain computation O(1) amortized: the forward
// cumulative capacity load and the edge-surround costs around every node
// and every edge of a route.
package state

import (
	"fleet-routing-engine/internal/vrp/model"
	"fleet-routing-engine/internal/vrp/route"
)

// VehicleCache holds the three cached arrays for one vehicle's route, sized
// to the route's current length. Buffers are reused across rebuilds
// (grown, never shrunk) so a descent does not churn the allocator on every
// accepted move.
type VehicleCache struct {
	fwdAmounts        []model.Amount
	edgeAroundNode    []int
	edgeAroundEdge    []int // edgeAroundEdge[k] covers edge (k, k+1); len == size-1
}

// FwdAmounts returns the cumulative load through position k.
func (c *VehicleCache) FwdAmounts(k int) model.Amount { return c.fwdAmounts[k] }

// EdgeAroundNode returns the cost of entering and leaving position k.
func (c *VehicleCache) EdgeAroundNode(k int) int { return c.edgeAroundNode[k] }

// EdgeAroundEdge returns the surround cost of edge (k, k+1), i.e. the cost
// of entering position k from its predecessor plus leaving position k+1 to
// its successor, excluding the edge (k, k+1) itself.
func (c *VehicleCache) EdgeAroundEdge(k int) int { return c.edgeAroundEdge[k] }

// Size returns the number of positions currently cached.
func (c *VehicleCache) Size() int { return len(c.fwdAmounts) }

// grow ensures the three slices have capacity for n entries without
// discarding the underlying arrays when n shrinks.
func (c *VehicleCache) grow(n int) {
	if cap(c.fwdAmounts) < n {
		c.fwdAmounts = make([]model.Amount, n, n*2+1)
	}
	c.fwdAmounts = c.fwdAmounts[:n]
	if cap(c.edgeAroundNode) < n {
		c.edgeAroundNode = make([]int, n, n*2+1)
	}
	c.edgeAroundNode = c.edgeAroundNode[:n]
	edges := n - 1
	if edges < 0 {
		edges = 0
	}
	if cap(c.edgeAroundEdge) < edges {
		c.edgeAroundEdge = make([]int, edges, edges*2+1)
	}
	c.edgeAroundEdge = c.edgeAroundEdge[:edges]
}

// Arena is the per-descent collection of VehicleCache buffers, one per
// vehicle, preallocated and reused across the whole descent's lifetime.
type Arena struct {
	inst    *model.ProblemInstance
	caches  []*VehicleCache
}

// NewArena allocates an Arena with one empty VehicleCache per vehicle in
// inst. Call Rebuild for every vehicle before reading any cache.
func NewArena(inst *model.ProblemInstance) *Arena {
	caches := make([]*VehicleCache, len(inst.Vehicles))
	for i := range caches {
		caches[i] = &VehicleCache{}
	}
	return &Arena{inst: inst, caches: caches}
}

// Cache returns the VehicleCache for vehicle v.
func (a *Arena) Cache(v int) *VehicleCache { return a.caches[v] }

// Rebuild recomputes all three arrays for vehicle v's route from scratch.
// O(|route|). Callers invoke this for exactly the vehicles named by an
// operator's update-candidates set after an accepted move.
func (a *Arena) Rebuild(v int, slot route.Slot) {
	c := a.caches[v]
	n := slot.Size()
	c.grow(n)
	if n == 0 {
		return
	}

	vehicle := a.inst.Vehicles[v]
	idx := func(k int) int { return a.inst.JobIndex(slot.At(k)) }

	prevIdx, hasPrev := 0, false
	if vehicle.HasStart() {
		prevIdx, hasPrev = vehicle.StartIndex(), true
	}

	var running model.Amount
	for k := 0; k < n; k++ {
		running = model.Add(running, a.inst.Jobs[slot.At(k)].Delivery)
		c.fwdAmounts[k] = running

		in := 0
		if hasPrev {
			in = a.inst.M.Cost(prevIdx, idx(k))
		}
		out := 0
		if k+1 < n {
			out = a.inst.M.Cost(idx(k), idx(k+1))
		} else if vehicle.HasEnd() {
			out = a.inst.M.Cost(idx(k), vehicle.EndIndex())
		}
		c.edgeAroundNode[k] = in + out

		prevIdx, hasPrev = idx(k), true
	}

	for k := 0; k < n-1; k++ {
		in := 0
		if k == 0 {
			if vehicle.HasStart() {
				in = a.inst.M.Cost(vehicle.StartIndex(), idx(0))
			}
		} else {
			in = a.inst.M.Cost(idx(k-1), idx(k))
		}
		out := 0
		if k+2 < n {
			out = a.inst.M.Cost(idx(k+1), idx(k+2))
		} else if vehicle.HasEnd() {
			out = a.inst.M.Cost(idx(k+1), vehicle.EndIndex())
		}
		c.edgeAroundEdge[k] = in + out
	}
}
