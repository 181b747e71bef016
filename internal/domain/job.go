package domain

import (
	"time"

	"fleet-routing-engine/internal/vrp/model"
)

// Job is the persisted, address-oriented representation of a delivery unit.
// Repositories load Jobs by address; the planning service resolves every
// address to a matrix index before building the solver's model.Job.
// LoadedAt/DeliveredAt are passed through to the API response; no code in
// this repository sets them, so they stay nil.
type Job struct {
	JobID       int
	Destination string
	Delivery    model.Amount
	TWs         []model.TimeWindow
	Skills      map[int]struct{}
	LoadedAt    *time.Time
	DeliveredAt *time.Time
}
