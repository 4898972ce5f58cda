package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"wayfarer/models"

	"github.com/google/uuid"
)

// LoadProjects returns every stored project, most recently created first.
func (db *DB) LoadProjects(ctx context.Context) ([]models.TripProject, error) {
	start := time.Now()
	defer func() {
		log.Printf("LoadProjects: duration=%v", time.Since(start))
	}()

	query := `
		SELECT id, title, to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'),
			banner_url, itinerary, chats, created_at, updated_at
		FROM trip_projects
		ORDER BY created_seq DESC
	`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

// SaveProject inserts or replaces the project. The original creation order is kept.
func (db *DB) SaveProject(ctx context.Context, p models.TripProject) error {
	id, err := uuid.Parse(p.ID)
	if err != nil {
		return fmt.Errorf("invalid project id %q: %w", p.ID, err)
	}

	itinerary, chats, err := encodeNested(p)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO trip_projects (id, title, start_date, end_date, banner_url, itinerary, chats, created_at, updated_at)
		VALUES ($1, $2, $3::date, $4::date, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			banner_url = EXCLUDED.banner_url,
			itinerary = EXCLUDED.itinerary,
			chats = EXCLUDED.chats,
			updated_at = EXCLUDED.updated_at
	`

	_, err = db.Pool.Exec(ctx, query, id, p.Title, p.StartDate, p.EndDate, p.BannerURL,
		string(itinerary), string(chats), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

func (db *DB) DeleteProject(ctx context.Context, projectID string) error {
	id, err := uuid.Parse(projectID)
	if err != nil {
		return fmt.Errorf("invalid project id %q: %w", projectID, err)
	}

	result, err := db.Pool.Exec(ctx, `DELETE FROM trip_projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Printf("DeleteProject: %s was not stored", projectID)
		return nil
	}

	log.Printf("Deleted project: %s", projectID)
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (*models.TripProject, error) {
	var (
		project   models.TripProject
		id        uuid.UUID
		itinerary []byte
		chats     []byte
	)
	err := row.Scan(
		&id,
		&project.Title,
		&project.StartDate,
		&project.EndDate,
		&project.BannerURL,
		&itinerary,
		&chats,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	project.ID = id.String()
	if err := decodeNested(&project, itinerary, chats); err != nil {
		return nil, err
	}
	return &project, nil
}

type rowsScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

func scanProjects(rows rowsScanner) ([]models.TripProject, error) {
	projects := []models.TripProject{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}
