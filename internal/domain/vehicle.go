package domain

import "fleet-routing-engine/internal/vrp/model"

// Vehicle is the persisted, address-oriented representation of a fleet
// vehicle. StartAddress/EndAddress are independently optional (either may
// be empty, meaning the vehicle has no fixed start/end) and are resolved to
// matrix indices by the planning service before building the solver's
// model.Vehicle.
type Vehicle struct {
	VehicleID    int
	StartAddress string
	EndAddress   string
	Capacity     model.Amount
	Skills       map[int]struct{}
	TW           model.TimeWindow
}
