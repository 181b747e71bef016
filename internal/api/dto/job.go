package dto

import "time"

type JobResponse struct {
	JobID       int        `json:"job_id"`
	Destination string     `json:"destination"`
	Delivery    []int      `json:"delivery"`
	Skills      []int      `json:"skills"`
	TimeWindows [][2]int   `json:"time_windows"`
	LoadedAt    *time.Time `json:"loaded_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}

type ListJobsResponse struct {
	Jobs []JobResponse `json:"jobs"`
}
