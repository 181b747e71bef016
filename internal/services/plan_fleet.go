package services

import (
	"context"
	"fmt"
	"time"

	"fleet-routing-engine/internal/domain"
	"fleet-routing-engine/internal/ports"
	"fleet-routing-engine/internal/vrp/model"
	"fleet-routing-engine/internal/vrp/search"
	"fleet-routing-engine/internal/vrp/solve"
)

// PlanFleetRequest carries the knobs a caller may override; the zero value
// runs a CVRP descent at exploration level 0, with the planning horizon
// anchored at the moment PlanFleet is called.
type PlanFleetRequest struct {
	Variant          solve.Variant
	ExplorationLevel int
	HorizonStart     time.Time
}

// PlanFleet loads jobs and vehicles from the repositories, builds a cost
// matrix over every address involved, runs a descent, and reports the
// result as domain-facing RoutePlans. This is the HTTP layer's single entry
// point into the solver: handlers never touch internal/vrp directly.
func PlanFleet(ctx context.Context, jobRepo ports.JobRepository, vehicleRepo ports.VehicleRepository, provider ports.DistanceProvider, req PlanFleetRequest) ([]*domain.RoutePlan, error) {
	jobs, err := jobRepo.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan fleet: list jobs: %w", err)
	}
	vehicles, err := vehicleRepo.ListVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan fleet: list vehicles: %w", err)
	}
	if len(jobs) == 0 || len(vehicles) == 0 {
		return nil, nil
	}

	horizonStart := req.HorizonStart
	if horizonStart.IsZero() {
		horizonStart = time.Now()
	}

	addresses, index := collectAddresses(jobs, vehicles)

	matrices, err := BuildMatrices(ctx, provider, addresses)
	if err != nil {
		return nil, fmt.Errorf("plan fleet: build matrices: %w", err)
	}

	modelJobs := make([]model.Job, len(jobs))
	for i, j := range jobs {
		modelJobs[i] = model.Job{
			ID:       j.JobID,
			Index:    index[j.Destination],
			Delivery: j.Delivery,
			Skills:   j.Skills,
			TWs:      j.TWs,
		}
	}

	modelVehicles := make([]model.Vehicle, len(vehicles))
	for i, v := range vehicles {
		mv := model.Vehicle{
			ID:       v.VehicleID,
			Capacity: v.Capacity,
			Skills:   v.Skills,
			TW:       v.TW,
		}
		if v.StartAddress != "" {
			start := index[v.StartAddress]
			mv.Start = &start
		}
		if v.EndAddress != "" {
			end := index[v.EndAddress]
			mv.End = &end
		}
		modelVehicles[i] = mv
	}

	inst, err := model.NewProblemInstance(modelJobs, modelVehicles, matrices.Duration)
	if err != nil {
		return nil, fmt.Errorf("plan fleet: build problem instance: %w", err)
	}

	sol, err := solve.Solve(ctx, &inst, req.Variant, search.Level(req.ExplorationLevel))
	if err != nil {
		return nil, fmt.Errorf("plan fleet: solve: %w", err)
	}

	destByJobID := make(map[int]string, len(jobs))
	for _, j := range jobs {
		destByJobID[j.JobID] = j.Destination
	}
	vehicleByID := make(map[int]*domain.Vehicle, len(vehicles))
	for _, v := range vehicles {
		vehicleByID[v.VehicleID] = v
	}

	plans := make([]*domain.RoutePlan, 0, len(sol.Routes))
	for _, r := range sol.Routes {
		plans = append(plans, buildRoutePlan(r, vehicleByID[r.VehicleID], destByJobID, index, matrices, horizonStart))
	}

	return plans, nil
}

// collectAddresses gathers every distinct address a job destination or
// vehicle start/end references, and returns a stable index assignment
// (matrix row/column) alongside the ordered address list BuildMatrices
// expects.
func collectAddresses(jobs []*domain.Job, vehicles []*domain.Vehicle) ([]string, map[string]int) {
	index := make(map[string]int)
	var addresses []string

	add := func(addr string) {
		if addr == "" {
			return
		}
		if _, ok := index[addr]; ok {
			return
		}
		index[addr] = len(addresses)
		addresses = append(addresses, addr)
	}

	for _, j := range jobs {
		add(j.Destination)
	}
	for _, v := range vehicles {
		add(v.StartAddress)
		add(v.EndAddress)
	}

	return addresses, index
}

func buildRoutePlan(r solve.RouteResult, vehicle *domain.Vehicle, destByJobID map[int]string, index map[string]int, matrices Matrices, horizonStart time.Time) *domain.RoutePlan {
	plan := &domain.RoutePlan{
		VehicleID:            r.VehicleID,
		TotalCost:            r.TotalCost,
		TotalDurationSeconds: r.TotalDuration,
		TotalWaitingSeconds:  r.TotalWaiting,
		Stops:                make([]domain.RouteStop, len(r.JobIDs)),
	}

	var twStart int
	if vehicle != nil {
		twStart = vehicle.TW.Start
	}
	plan.DepartAt = horizonStart.Add(time.Duration(twStart) * time.Second)

	prevIdx, hasPrev := -1, false
	if vehicle != nil && vehicle.StartAddress != "" {
		prevIdx, hasPrev = index[vehicle.StartAddress], true
	}

	for i, jobID := range r.JobIDs {
		dest := destByJobID[jobID]
		arriveSeconds := twStart + r.ArrivalOffsets[i]
		plan.Stops[i] = domain.RouteStop{
			Destination: dest,
			ArriveAt:    horizonStart.Add(time.Duration(arriveSeconds) * time.Second),
			JobIDs:      []int{jobID},
		}
		if di, ok := index[dest]; ok {
			if hasPrev {
				plan.TotalDistanceMeters += matrices.MetersAt(prevIdx, di)
			}
			prevIdx, hasPrev = di, true
		}
	}

	if vehicle != nil && vehicle.EndAddress != "" && hasPrev {
		endIdx := index[vehicle.EndAddress]
		plan.TotalDistanceMeters += matrices.MetersAt(prevIdx, endIdx)
	}

	return plan
}
