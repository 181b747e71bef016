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

// SQLite-backed implementation of the JobRepository port.
type SqliteJobRepository struct{ DB *sql.DB }

func NewSqliteJobRepository(db *sql.DB) *SqliteJobRepository {
	return &SqliteJobRepository{DB: db}
}

// Return all jobs stored in the database.
func (s *SqliteJobRepository) ListJobs(ctx context.Context) ([]*domain.Job, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite job repository: DB is nil")
	}

	query := `
	SELECT
		job_id,
		destination,
		delivery,
		time_windows,
		skills
	FROM jobs
	ORDER BY job_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list jobs: query jobs table: %w", err)
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0, 64)
	for rows.Next() {
		var (
			id                               int
			dest                             string
			deliveryJSON, twJSON, skillsJSON string
		)
		if err := rows.Scan(&id, &dest, &deliveryJSON, &twJSON, &skillsJSON); err != nil {
			return nil, fmt.Errorf("list jobs: scan row: %w", err)
		}

		job, err := decodeJob(id, dest, deliveryJSON, twJSON, skillsJSON)
		if err != nil {
			return nil, fmt.Errorf("list jobs: decode job_id=%d: %w", id, err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list jobs: row iteration: %w", err)
	}

	return jobs, nil
}

func decodeJob(id int, dest, deliveryJSON, twJSON, skillsJSON string) (*domain.Job, error) {
	var delivery model.Amount
	if err := json.Unmarshal([]byte(deliveryJSON), &delivery); err != nil {
		return nil, fmt.Errorf("unmarshal delivery: %w", err)
	}

	var pairs [][2]int
	if err := json.Unmarshal([]byte(twJSON), &pairs); err != nil {
		return nil, fmt.Errorf("unmarshal time_windows: %w", err)
	}
	tws := make([]model.TimeWindow, len(pairs))
	for i, p := range pairs {
		tws[i] = model.TimeWindow{Start: p[0], End: p[1]}
	}

	skills, err := decodeSkills(skillsJSON)
	if err != nil {
		return nil, err
	}

	return &domain.Job{
		JobID:       id,
		Destination: dest,
		Delivery:    delivery,
		TWs:         tws,
		Skills:      skills,
	}, nil
}

func decodeSkills(skillsJSON string) (map[int]struct{}, error) {
	var skillList []int
	if err := json.Unmarshal([]byte(skillsJSON), &skillList); err != nil {
		return nil, fmt.Errorf("unmarshal skills: %w", err)
	}
	skills := make(map[int]struct{}, len(skillList))
	for _, sk := range skillList {
		skills[sk] = struct{}{}
	}
	return skills, nil
}
