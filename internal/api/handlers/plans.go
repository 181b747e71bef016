package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"fleet-routing-engine/internal/api/dto"
	"fleet-routing-engine/internal/platform/obs"
	"fleet-routing-engine/internal/ports"
	"fleet-routing-engine/internal/services"
	"fleet-routing-engine/internal/vrp/solve"
)

type PlanHandler struct {
	JobRepo     ports.JobRepository
	VehicleRepo ports.VehicleRepository
	Provider    ports.DistanceProvider
}

// Plan loads every job and vehicle from the repositories, builds a cost
// matrix over the distance provider, and runs a descent over the whole
// fleet. It coordinates repository access and solver invocation; the
// solver itself lives in internal/vrp.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	if r.Body != nil && r.ContentLength != 0 {
		dec := json.NewDecoder(r.Body)
		defer r.Body.Close()
		dec.DisallowUnknownFields()

		if err := dec.Decode(&req); err != nil && err != io.EOF {
			writeError(w, r, http.StatusBadRequest, "invalid json body")
			return
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
			return
		}
	}

	variant := solve.CVRP
	switch strings.ToLower(strings.TrimSpace(req.Variant)) {
	case "", "cvrp":
		variant = solve.CVRP
	case "vrptw":
		variant = solve.VRPTW
	default:
		writeError(w, r, http.StatusBadRequest, "variant must be \"cvrp\" or \"vrptw\"")
		return
	}

	if req.ExplorationLevel < 0 {
		writeError(w, r, http.StatusBadRequest, "exploration_level must be >= 0")
		return
	}

	svcReq := services.PlanFleetRequest{
		Variant:          variant,
		ExplorationLevel: req.ExplorationLevel,
	}

	plans, err := services.PlanFleet(r.Context(), h.JobRepo, h.VehicleRepo, h.Provider, svcReq)
	if err != nil {
		obs.Log().Error().Err(err).Msg("plan fleet failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPlanResponse{Plans: make([]dto.PlanResponse, 0, len(plans))}
	for _, p := range plans {
		stops := make([]dto.PlanStopResponse, 0, len(p.Stops))
		for _, s := range p.Stops {
			stops = append(stops, dto.PlanStopResponse{
				Destination: s.Destination,
				ArriveAt:    s.ArriveAt,
				JobIDs:      s.JobIDs,
			})
		}

		res.Plans = append(res.Plans, dto.PlanResponse{
			VehicleID:            p.VehicleID,
			DepartAt:             p.DepartAt,
			TotalCost:            p.TotalCost,
			TotalDistanceMeters:  p.TotalDistanceMeters,
			TotalDurationSeconds: p.TotalDurationSeconds,
			TotalWaitingSeconds:  p.TotalWaitingSeconds,
			Stops:                stops,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
