package dto

import "time"

// PlanRequest carries the solver knobs a caller may override; jobs and
// vehicles are always read from the configured repositories, never from
// the request body, since solving always plans the whole fleet.
type PlanRequest struct {
	Variant          string `json:"variant"`
	ExplorationLevel int    `json:"exploration_level"`
}

type PlanStopResponse struct {
	Destination string    `json:"destination"`
	ArriveAt    time.Time `json:"arrive_at"`
	JobIDs      []int     `json:"job_ids"`
}

type PlanResponse struct {
	VehicleID            int                `json:"vehicle_id"`
	DepartAt             time.Time          `json:"depart_at"`
	TotalCost            int                `json:"total_cost"`
	TotalDistanceMeters  int                `json:"total_distance_meters"`
	TotalDurationSeconds int                `json:"total_duration_seconds"`
	TotalWaitingSeconds  int                `json:"total_waiting_seconds"`
	Stops                []PlanStopResponse `json:"stops"`
}

type ListPlanResponse struct {
	Plans []PlanResponse `json:"plans"`
}
