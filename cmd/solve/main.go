// cmd/solve reads a JSON problem instance from a file and writes the
// resulting solution as JSON to stdout. It is the file-based analogue of
// the HTTP service's POST /plans, for offline/batch use and for exercising
// the solver without standing up the rest of the stack.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"fleet-routing-engine/internal/platform/obs"
	"fleet-routing-engine/internal/vrp/model"
	"fleet-routing-engine/internal/vrp/search"
	"fleet-routing-engine/internal/vrp/solve"
)

// instanceFile is the on-disk shape of a problem instance: jobs, vehicles
// and a dense row-major cost matrix, all in plain JSON-friendly types.
// This is deliberately a thin, file-local struct rather than model.Job/
// model.Vehicle directly, since the wire representation of a skill set
// (a list) differs from the in-memory representation (a set).
type instanceFile struct {
	Jobs     []jobFile     `json:"jobs"`
	Vehicles []vehicleFile `json:"vehicles"`
	Matrix   []int         `json:"matrix"`
}

type jobFile struct {
	ID       int                `json:"id"`
	Index    int                `json:"index"`
	Service  int                `json:"service"`
	Delivery model.Amount       `json:"delivery"`
	Skills   []int              `json:"skills"`
	TWs      []model.TimeWindow `json:"time_windows"`
}

type vehicleFile struct {
	ID       int              `json:"id"`
	Start    *int             `json:"start"`
	End      *int             `json:"end"`
	Capacity model.Amount     `json:"capacity"`
	Skills   []int            `json:"skills"`
	TW       model.TimeWindow `json:"time_window"`
}

func main() {
	instPath := flag.String("instance", "", "path to a JSON problem instance file")
	variantFlag := flag.String("variant", "cvrp", `solve variant: "cvrp" or "vrptw"`)
	level := flag.Int("level", 0, "exploration level (0 = unrestricted)")
	flag.Parse()

	if *instPath == "" {
		fmt.Fprintln(os.Stderr, "solve: -instance is required")
		os.Exit(2)
	}

	variant, err := parseVariant(*variantFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "solve:", err)
		os.Exit(2)
	}

	inst, err := loadInstance(*instPath)
	if err != nil {
		obs.Log().Fatal().Err(err).Str("path", *instPath).Msg("load instance")
	}

	sol, err := solve.Solve(context.Background(), &inst, variant, search.Level(*level))
	if err != nil {
		obs.Log().Fatal().Err(err).Msg("solve")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sol); err != nil {
		obs.Log().Fatal().Err(err).Msg("encode solution")
	}
}

func parseVariant(s string) (solve.Variant, error) {
	switch s {
	case "cvrp":
		return solve.CVRP, nil
	case "vrptw":
		return solve.VRPTW, nil
	default:
		return 0, fmt.Errorf(`-variant must be "cvrp" or "vrptw", got %q`, s)
	}
}

func loadInstance(path string) (model.ProblemInstance, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.ProblemInstance{}, fmt.Errorf("read instance file: %w", err)
	}

	var f instanceFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return model.ProblemInstance{}, fmt.Errorf("parse instance file: %w", err)
	}

	n := 0
	for n*n < len(f.Matrix) {
		n++
	}
	m, err := model.NewMatrix(n, f.Matrix)
	if err != nil {
		return model.ProblemInstance{}, fmt.Errorf("build matrix: %w", err)
	}

	jobs := make([]model.Job, len(f.Jobs))
	for i, j := range f.Jobs {
		jobs[i] = model.Job{
			ID:       j.ID,
			Index:    j.Index,
			Service:  j.Service,
			Delivery: j.Delivery,
			Skills:   toSkillSet(j.Skills),
			TWs:      j.TWs,
		}
	}

	vehicles := make([]model.Vehicle, len(f.Vehicles))
	for i, v := range f.Vehicles {
		vehicles[i] = model.Vehicle{
			ID:       v.ID,
			Start:    v.Start,
			End:      v.End,
			Capacity: v.Capacity,
			Skills:   toSkillSet(v.Skills),
			TW:       v.TW,
		}
	}

	inst, err := model.NewProblemInstance(jobs, vehicles, m)
	if err != nil {
		return model.ProblemInstance{}, fmt.Errorf("build problem instance: %w", err)
	}

	return inst, nil
}

func toSkillSet(skills []int) map[int]struct{} {
	out := make(map[int]struct{}, len(skills))
	for _, s := range skills {
		out[s] = struct{}{}
	}
	return out
}
