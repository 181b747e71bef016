package handlers

import (
	"net/http"

	"fleet-routing-engine/internal/api/dto"
	"fleet-routing-engine/internal/platform/obs"
	"fleet-routing-engine/internal/ports"
)

// VehicleHandler exposes read-only vehicle retrieval endpoints.
type VehicleHandler struct {
	Repo ports.VehicleRepository
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	vehicles, err := h.Repo.ListVehicles(r.Context())
	if err != nil {
		obs.Log().Error().Err(err).Msg("list vehicles failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListVehiclesResponse{Vehicles: make([]dto.VehicleResponse, 0, len(vehicles))}
	for _, v := range vehicles {
		res.Vehicles = append(res.Vehicles, dto.VehicleResponse{
			VehicleID:    v.VehicleID,
			StartAddress: v.StartAddress,
			EndAddress:   v.EndAddress,
			Capacity:     []int(v.Capacity),
			Skills:       skillList(v.Skills),
			TWStart:      v.TW.Start,
			TWEnd:        v.TW.End,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
