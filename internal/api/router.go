package api

import (
	"net/http"

	"fleet-routing-engine/internal/api/handlers"
	"fleet-routing-engine/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(jobRepo ports.JobRepository, vehicleRepo ports.VehicleRepository, provider ports.DistanceProvider) http.Handler {
	mux := http.NewServeMux()

	jobHandler := &handlers.JobHandler{Repo: jobRepo}
	vehicleHandler := &handlers.VehicleHandler{Repo: vehicleRepo}
	planHandler := &handlers.PlanHandler{
		JobRepo:     jobRepo,
		VehicleRepo: vehicleRepo,
		Provider:    provider,
	}

	handlers.RequestStats = stats.Snapshot
	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/jobs", jobHandler.List)
	mux.HandleFunc("/vehicles", vehicleHandler.List)
	mux.HandleFunc("/plans", planHandler.Plan)

	return requestIDMiddleware(loggingMiddleware(mux))
}
