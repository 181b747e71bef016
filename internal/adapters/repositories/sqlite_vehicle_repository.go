package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"fleet-routing-engine/internal/domain"
	"fleet-routing-engine/internal/vrp/model"
)

// SQLite-backed implementation of the VehicleRepository port.
type SqliteVehicleRepository struct{ DB *sql.DB }

func NewSqliteVehicleRepository(db *sql.DB) *SqliteVehicleRepository {
	return &SqliteVehicleRepository{DB: db}
}

// Return all vehicles stored in the database.
func (s *SqliteVehicleRepository) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite vehicle repository: DB is nil")
	}

	query := `
	SELECT
		vehicle_id,
		start_address,
		end_address,
		capacity,
		skills,
		tw_start,
		tw_end
	FROM vehicles
	ORDER BY vehicle_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: query vehicles table: %w", err)
	}
	defer rows.Close()

	vehicles := make([]*domain.Vehicle, 0, 16)
	for rows.Next() {
		var (
			id                     int
			startAddr, endAddr     string
			capacityJSON, skillsJSON string
			twStart, twEnd         int
		)
		if err := rows.Scan(&id, &startAddr, &endAddr, &capacityJSON, &skillsJSON, &twStart, &twEnd); err != nil {
			return nil, fmt.Errorf("list vehicles: scan row: %w", err)
		}

		var capacity model.Amount
		if err := json.Unmarshal([]byte(capacityJSON), &capacity); err != nil {
			return nil, fmt.Errorf("list vehicles: vehicle_id=%d: unmarshal capacity: %w", id, err)
		}

		skills, err := decodeSkills(skillsJSON)
		if err != nil {
			return nil, fmt.Errorf("list vehicles: vehicle_id=%d: %w", id, err)
		}

		vehicles = append(vehicles, &domain.Vehicle{
			VehicleID:    id,
			StartAddress: startAddr,
			EndAddress:   endAddr,
			Capacity:     capacity,
			Skills:       skills,
			TW:           model.TimeWindow{Start: twStart, End: twEnd},
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: row iteration: %w", err)
	}

	return vehicles, nil
}
