package ports

import (
	"context"

	"fleet-routing-engine/internal/domain"
)

// Port: a boundary for retrieving Job entities from a data source.
type JobRepository interface {
	// Retrieve all jobs available for routing.
	ListJobs(ctx context.Context) ([]*domain.Job, error)
}
