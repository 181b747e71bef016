package domain

import "time"

// Represents a single stop in a delivery route.
// A RouteStop corresponds to arriving at a specific destination at a
// computed time, and delivering one or more jobs associated with that
// destination.
type RouteStop struct {
	Destination string
	ArriveAt    time.Time
	JobIDs      []int
}

// Represents the planned delivery route for a single vehicle.
// A RoutePlan is the output of the VRP engine and describes the ordered
// sequence of delivery stops, along with aggregate cost, distance, duration
// and waiting-time metrics. It is immutable planning data and contains no
// side effects.
type RoutePlan struct {
	VehicleID            int
	DepartAt             time.Time
	Stops                []RouteStop
	TotalCost            int
	TotalDistanceMeters  int
	TotalDurationSeconds int
	TotalWaitingSeconds  int
}
