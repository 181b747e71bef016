package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createJobsQuery := `
	CREATE TABLE IF NOT EXISTS jobs (
		job_id INTEGER PRIMARY KEY,
		destination TEXT NOT NULL,
		delivery TEXT NOT NULL,
		time_windows TEXT NOT NULL,
		skills TEXT NOT NULL
	);
	`

	createVehiclesQuery := `
	CREATE TABLE IF NOT EXISTS vehicles (
		vehicle_id INTEGER PRIMARY KEY,
		start_address TEXT NOT NULL,
		end_address TEXT NOT NULL,
		capacity TEXT NOT NULL,
		skills TEXT NOT NULL,
		tw_start INTEGER NOT NULL,
		tw_end INTEGER NOT NULL
	);
	`

	createDistanceCacheQuery := `
	CREATE TABLE IF NOT EXISTS distance_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        distance_meters INTEGER NOT NULL,
        duration_seconds INTEGER NOT NULL,
        PRIMARY KEY (origin, destination)
    );
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lon REAL NOT NULL,
        lat REAL NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_distance_cache_destination_origin
    ON distance_cache(destination, origin);
	`

	statements := []string{
		createJobsQuery,
		createVehiclesQuery,
		createDistanceCacheQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type JobSeed struct {
	JobID       int      `json:"job_id"`
	Destination string   `json:"destination"`
	Delivery    []int    `json:"delivery"`
	TimeWindows [][2]int `json:"time_windows"`
	Skills      []int    `json:"skills"`
}

type VehicleSeed struct {
	VehicleID    int    `json:"vehicle_id"`
	StartAddress string `json:"start_address"`
	EndAddress   string `json:"end_address"`
	Capacity     []int  `json:"capacity"`
	Skills       []int  `json:"skills"`
	TWStart      int    `json:"tw_start"`
	TWEnd        int    `json:"tw_end"`
}

type seedFile struct {
	Jobs     []JobSeed     `json:"jobs"`
	Vehicles []VehicleSeed `json:"vehicles"`
}

// Populate the database with job and vehicle data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed: read %q: %w", jsonPath, err)
	}

	var data seedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("seed: parse json: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := seedJobs(tx, data.Jobs); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if err := seedVehicles(tx, data.Vehicles); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}

func seedJobs(tx *sql.Tx, jobs []JobSeed) error {
	stmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO jobs (job_id, destination, delivery, time_windows, skills)
	VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed jobs: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, j := range jobs {
		if j.JobID <= 0 {
			return fmt.Errorf("seed jobs: invalid job_id at index %d: %d", i, j.JobID)
		}
		dest := strings.TrimSpace(j.Destination)
		if dest == "" {
			return fmt.Errorf("seed jobs: job_id=%d: destination cannot be empty", j.JobID)
		}

		delivery, err := json.Marshal(j.Delivery)
		if err != nil {
			return fmt.Errorf("seed jobs: job_id=%d: marshal delivery: %w", j.JobID, err)
		}
		tws, err := json.Marshal(j.TimeWindows)
		if err != nil {
			return fmt.Errorf("seed jobs: job_id=%d: marshal time_windows: %w", j.JobID, err)
		}
		skills, err := json.Marshal(j.Skills)
		if err != nil {
			return fmt.Errorf("seed jobs: job_id=%d: marshal skills: %w", j.JobID, err)
		}

		if _, err := stmt.Exec(j.JobID, dest, string(delivery), string(tws), string(skills)); err != nil {
			return fmt.Errorf("seed jobs: insert job_id=%d: %w", j.JobID, err)
		}
	}

	return nil
}

func seedVehicles(tx *sql.Tx, vehicles []VehicleSeed) error {
	stmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO vehicles (vehicle_id, start_address, end_address, capacity, skills, tw_start, tw_end)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed vehicles: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, v := range vehicles {
		if v.VehicleID <= 0 {
			return fmt.Errorf("seed vehicles: invalid vehicle_id at index %d: %d", i, v.VehicleID)
		}

		capacity, err := json.Marshal(v.Capacity)
		if err != nil {
			return fmt.Errorf("seed vehicles: vehicle_id=%d: marshal capacity: %w", v.VehicleID, err)
		}
		skills, err := json.Marshal(v.Skills)
		if err != nil {
			return fmt.Errorf("seed vehicles: vehicle_id=%d: marshal skills: %w", v.VehicleID, err)
		}

		if _, err := stmt.Exec(
			v.VehicleID, v.StartAddress, v.EndAddress, string(capacity), string(skills), v.TWStart, v.TWEnd,
		); err != nil {
			return fmt.Errorf("seed vehicles: insert vehicle_id=%d: %w", v.VehicleID, err)
		}
	}

	return nil
}
