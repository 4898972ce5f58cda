package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"wayfarer/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pocketbase/dbx"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS trip_projects (
		created_seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		banner_url TEXT NOT NULL DEFAULT '',
		itinerary TEXT NOT NULL DEFAULT '[]',
		chats TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
`

// SQLite is a single-file persister for running without Postgres.
type SQLite struct {
	db *dbx.DB
}

type sqliteProject struct {
	ID        string `db:"id"`
	Title     string `db:"title"`
	StartDate string `db:"start_date"`
	EndDate   string `db:"end_date"`
	BannerURL string `db:"banner_url"`
	Itinerary string `db:"itinerary"`
	Chats     string `db:"chats"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := dbx.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if _, err := db.NewQuery(sqliteSchema).WithContext(ctx).Execute(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	log.Printf("SQLite database opened: %s", path)
	return &SQLite{db: db}, nil
}

func (s *SQLite) LoadProjects(ctx context.Context) ([]models.TripProject, error) {
	start := time.Now()
	defer func() {
		log.Printf("LoadProjects: duration=%v driver=sqlite", time.Since(start))
	}()

	var rows []sqliteProject
	err := s.db.Select("id", "title", "start_date", "end_date", "banner_url", "itinerary", "chats", "created_at", "updated_at").
		From("trip_projects").
		OrderBy("created_seq DESC").
		WithContext(ctx).
		All(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]models.TripProject, 0, len(rows))
	for _, row := range rows {
		p := models.TripProject{
			ID:        row.ID,
			Title:     row.Title,
			StartDate: row.StartDate,
			EndDate:   row.EndDate,
			BannerURL: row.BannerURL,
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339Nano, row.CreatedAt)
		p.UpdatedAt, _ = time.Parse(time.RFC3339Nano, row.UpdatedAt)
		if err := decodeNested(&p, []byte(row.Itinerary), []byte(row.Chats)); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (s *SQLite) SaveProject(ctx context.Context, p models.TripProject) error {
	itinerary, chats, err := encodeNested(p)
	if err != nil {
		return err
	}

	_, err = s.db.NewQuery(`
		INSERT INTO trip_projects (id, title, start_date, end_date, banner_url, itinerary, chats, created_at, updated_at)
		VALUES ({:id}, {:title}, {:start}, {:end}, {:banner}, {:itinerary}, {:chats}, {:created}, {:updated})
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			banner_url = excluded.banner_url,
			itinerary = excluded.itinerary,
			chats = excluded.chats,
			updated_at = excluded.updated_at
	`).Bind(dbx.Params{
		"id":        p.ID,
		"title":     p.Title,
		"start":     p.StartDate,
		"end":       p.EndDate,
		"banner":    p.BannerURL,
		"itinerary": string(itinerary),
		"chats":     string(chats),
		"created":   p.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated":   p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

func (s *SQLite) DeleteProject(ctx context.Context, id string) error {
	_, err := s.db.Delete("trip_projects", dbx.HashExp{"id": id}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	log.Printf("Deleted project: %s", id)
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
