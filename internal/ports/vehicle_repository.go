package ports

import (
	"context"

	"fleet-routing-engine/internal/domain"
)

// Port: a boundary for retrieving Vehicle entities from a data source.
type VehicleRepository interface {
	// Retrieve all vehicles available for routing.
	ListVehicles(ctx context.Context) ([]*domain.Vehicle, error)
}
