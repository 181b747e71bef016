package handlers

import (
	"net/http"

	"fleet-routing-engine/internal/api/dto"
	"fleet-routing-engine/internal/platform/obs"
	"fleet-routing-engine/internal/ports"
	"fleet-routing-engine/internal/vrp/model"
)

// JobHandler exposes read-only job retrieval endpoints.
type JobHandler struct {
	Repo ports.JobRepository
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	jobs, err := h.Repo.ListJobs(r.Context())
	if err != nil {
		obs.Log().Error().Err(err).Msg("list jobs failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListJobsResponse{Jobs: make([]dto.JobResponse, 0, len(jobs))}
	for _, j := range jobs {
		res.Jobs = append(res.Jobs, dto.JobResponse{
			JobID:       j.JobID,
			Destination: j.Destination,
			Delivery:    []int(j.Delivery),
			Skills:      skillList(j.Skills),
			TimeWindows: timeWindowPairs(j.TWs),
			LoadedAt:    j.LoadedAt,
			DeliveredAt: j.DeliveredAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func skillList(skills map[int]struct{}) []int {
	out := make([]int, 0, len(skills))
	for s := range skills {
		out = append(out, s)
	}
	return out
}

func timeWindowPairs(tws []model.TimeWindow) [][2]int {
	out := make([][2]int, len(tws))
	for i, tw := range tws {
		out[i] = [2]int{tw.Start, tw.End}
	}
	return out
}
