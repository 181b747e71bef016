// Package solve is the external interface: construct an initial
// assignment, descend, and report a Solution. It is the only package in
// internal/vrp that runs more than one descent at a time.
package solve

import (
	"context"

	"golang.org/x/sync/errgroup"

	"fleet-routing-engine/internal/vrp/construct"
	"fleet-routing-engine/internal/vrp/model"
	"fleet-routing-engine/internal/vrp/route"
	"fleet-routing-engine/internal/vrp/search"
	"fleet-routing-engine/internal/vrp/state"
)

// Variant selects which constraint set a descent enforces.
type Variant int

const (
	// CVRP enforces capacity and skills only.
	CVRP Variant = iota
	// VRPTW additionally enforces per-job and per-vehicle time windows.
	VRPTW
)

// RouteResult is one vehicle's finished route.
type RouteResult struct {
	VehicleID int
	JobIDs    []int
	// ArrivalOffsets[k] is the arrival time at JobIDs[k], in seconds
	// relative to the vehicle's TW.Start.
	ArrivalOffsets []int
	TotalCost      int
	TotalService   int
	TotalDuration  int
	TotalWaiting   int
	Load           model.Amount
}

// Solution is the descent's final report.
type Solution struct {
	Routes     []RouteResult
	TotalCost  int
	Iterations int
}

// Solve builds an initial assignment with the construction heuristic,
// descends until no improving move remains or ctx is canceled, and
// reports the resulting Solution. It is a pure function of inst, variant
// and level: no persisted state, no I/O.
func Solve(ctx context.Context, inst *model.ProblemInstance, variant Variant, level search.Level) (Solution, error) {
	slots, err := construct.Build(inst, variant == VRPTW)
	if err != nil {
		return Solution{}, err
	}

	arena := state.NewArena(inst)
	for v := range inst.Vehicles {
		arena.Rebuild(v, slots[v])
	}

	stats, err := search.Descend(ctx, inst, slots, arena, level)
	if err != nil {
		return Solution{}, err
	}

	return buildSolution(inst, slots, stats), nil
}

// SolveConcurrently runs one independent descent per instance, in
// parallel, each with its own private routes and Solution State — the
// Matrix and Problem Instance fields are read-shared, never mutated by a
// descent. The first descent's error (if any) cancels the others via ctx.
func SolveConcurrently(ctx context.Context, instances []*model.ProblemInstance, variant Variant, level search.Level) ([]Solution, error) {
	solutions := make([]Solution, len(instances))
	g, gctx := errgroup.WithContext(ctx)
	for i, inst := range instances {
		i, inst := i, inst
		g.Go(func() error {
			sol, err := Solve(gctx, inst, variant, level)
			if err != nil {
				return err
			}
			solutions[i] = sol
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return solutions, nil
}

func buildSolution(inst *model.ProblemInstance, slots map[int]route.Slot, stats search.Stats) Solution {
	sol := Solution{Routes: make([]RouteResult, 0, len(slots)), Iterations: stats.Iterations}
	for v := 0; v < len(inst.Vehicles); v++ {
		r := routeResult(inst, slots[v])
		sol.TotalCost += r.TotalCost
		sol.Routes = append(sol.Routes, r)
	}
	return sol
}

func routeResult(inst *model.ProblemInstance, slot route.Slot) RouteResult {
	vehicle := inst.Vehicles[slot.Vehicle()]
	jobs := slot.Jobs()

	jobIDs := make([]int, len(jobs))
	arrivals := make([]int, len(jobs))
	for i, ji := range jobs {
		jobIDs[i] = inst.Jobs[ji].ID
	}

	tw, isTW := slot.TW()

	cost, service, waiting := 0, 0, 0
	clock := vehicle.TW.Start
	prevIdx, hasPrev := 0, false
	if vehicle.HasStart() {
		prevIdx, hasPrev = vehicle.StartIndex(), true
	}

	for k, ji := range jobs {
		job := inst.Jobs[ji]
		travel := 0
		if hasPrev {
			travel = inst.M.Cost(prevIdx, job.Index)
		}
		cost += travel
		arrival := clock + travel
		arrivals[k] = arrival - vehicle.TW.Start

		start := arrival
		if isTW {
			start = tw.Earliest(k)
		}
		if start > arrival {
			waiting += start - arrival
		}
		service += job.Service
		clock = start + job.Service
		prevIdx, hasPrev = job.Index, true
	}

	if vehicle.HasEnd() {
		travel := 0
		if hasPrev {
			travel = inst.M.Cost(prevIdx, vehicle.EndIndex())
		}
		cost += travel
		clock += travel
	}

	return RouteResult{
		VehicleID:      vehicle.ID,
		JobIDs:         jobIDs,
		ArrivalOffsets: arrivals,
		TotalCost:      cost,
		TotalService:   service,
		TotalDuration:  clock - vehicle.TW.Start,
		TotalWaiting:   waiting,
		Load:           slot.TotalLoad(inst),
	}
}
