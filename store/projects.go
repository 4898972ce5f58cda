package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"wayfarer/models"

	"github.com/samber/lo"
)

const (
	dateLayout = "2006-01-02"

	// MaxTripDays bounds the itinerary a single date range can generate.
	MaxTripDays = 366
)

// CreateOrUpdate saves a project from the dashboard form.
// Without an ID a new project with an empty itinerary is prepended to the list.
// With an ID the project's title and range are replaced and the itinerary is
// rebuilt, keeping items by day position rather than by date.
// Incomplete input changes nothing and returns ErrIncompleteProject.
func (s *Store) CreateOrUpdate(ctx context.Context, req models.SaveProjectRequest) (models.TripProject, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || req.StartDate == "" || req.EndDate == "" {
		return models.TripProject{}, ErrIncompleteProject
	}

	days, err := BuildItinerary(req.StartDate, req.EndDate, s.newID)
	if err != nil {
		return models.TripProject{}, err
	}

	if req.ID != "" {
		return s.mutate(ctx, req.ID, func(p *models.TripProject) error {
			p.Title = title
			p.StartDate = req.StartDate
			p.EndDate = req.EndDate
			p.Itinerary = retainItems(days, p.Itinerary)
			slog.Info("updated project", "id", p.ID, "title", p.Title, "days", len(p.Itinerary))
			return nil
		})
	}

	now := s.now().UTC()
	project := models.TripProject{
		ID:        s.newID(),
		Title:     title,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Itinerary: days,
		Chats:     []models.ChatSession{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.projects = append([]models.TripProject{project}, s.projects...)
	snapshot := cloneProject(project)
	s.persistMu.Lock()
	s.mu.Unlock()
	defer s.persistMu.Unlock()

	slog.Info("created project", "id", project.ID, "title", project.Title, "days", len(days))
	if err := s.save(ctx, snapshot); err != nil {
		return cloneProject(snapshot), err
	}
	return cloneProject(snapshot), nil
}

// Delete removes a project. Views showing it must handle the missing selection themselves.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	before := len(s.projects)
	s.projects = lo.Filter(s.projects, func(p models.TripProject, _ int) bool { return p.ID != id })
	if len(s.projects) == before {
		s.mu.Unlock()
		return ErrProjectNotFound
	}
	s.persistMu.Lock()
	s.mu.Unlock()
	defer s.persistMu.Unlock()

	slog.Info("deleted project", "id", id)
	if s.persister == nil {
		return nil
	}
	ctx, cancel := persistContext(ctx)
	defer cancel()
	if err := s.persister.DeleteProject(ctx, id); err != nil {
		return &PersistError{ProjectID: id, Err: err}
	}
	return nil
}

// Patch merges the non-nil fields of patch into the project.
func (s *Store) Patch(ctx context.Context, id string, patch models.ProjectPatch) (models.TripProject, error) {
	return s.mutate(ctx, id, func(p *models.TripProject) error {
		if patch.BannerURL != nil {
			p.BannerURL = *patch.BannerURL
		}
		if patch.Itinerary != nil {
			p.Itinerary = make([]models.DayPlan, len(patch.Itinerary))
			for i, day := range patch.Itinerary {
				p.Itinerary[i] = cloneDay(day)
			}
		}
		if patch.Chats != nil {
			p.Chats = make([]models.ChatSession, len(patch.Chats))
			for i, chat := range patch.Chats {
				p.Chats[i] = cloneChat(chat)
			}
		}
		return nil
	})
}

// ParseDate parses an ISO calendar date as midnight UTC, so stepping by days
// never crosses a timezone offset.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidDateRange, s)
	}
	return t, nil
}

// DayCount is the inclusive number of calendar days between start and end.
func DayCount(startDate, endDate string) (int, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return 0, err
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return 0, err
	}
	if end.Before(start) {
		return 0, fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidDateRange, endDate, startDate)
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

// BuildItinerary emits one empty DayPlan per calendar day from start to end inclusive.
func BuildItinerary(startDate, endDate string, newID func() string) ([]models.DayPlan, error) {
	count, err := DayCount(startDate, endDate)
	if err != nil {
		return nil, err
	}
	if count > MaxTripDays {
		return nil, fmt.Errorf("%w: %d days exceeds the %d day limit", ErrInvalidDateRange, count, MaxTripDays)
	}

	start, _ := ParseDate(startDate)
	end, _ := ParseDate(endDate)

	days := make([]models.DayPlan, 0, count)
	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		days = append(days, models.DayPlan{
			ID:    newID(),
			Date:  current.Format(dateLayout),
			Items: []models.TripItem{},
		})
	}
	return days, nil
}

// retainItems carries items over by position: day i of the new itinerary keeps
// the items of day i of the old one.
func retainItems(days, previous []models.DayPlan) []models.DayPlan {
	for i := range days {
		if i < len(previous) {
			days[i].Items = append([]models.TripItem{}, previous[i].Items...)
		}
	}
	return days
}

// SeedDemo adds the sample Tokyo trip when the store is empty.
func (s *Store) SeedDemo(ctx context.Context) error {
	s.mu.RLock()
	empty := len(s.projects) == 0
	s.mu.RUnlock()
	if !empty {
		return nil
	}

	project, err := s.CreateOrUpdate(ctx, models.SaveProjectRequest{
		Title:     "Tokyo, Japan",
		StartDate: "2025-12-17",
		EndDate:   "2025-12-31",
	})
	if err != nil {
		return fmt.Errorf("failed to seed demo project: %w", err)
	}

	firstDay := project.Itinerary[0]
	_, err = s.mutate(ctx, project.ID, func(p *models.TripProject) error {
		p.BannerURL = "https://images.unsplash.com/photo-1540959733332-eab4deabeeaf?auto=format&fit=crop&q=80&w=1000"
		p.Itinerary[0].Items = []models.TripItem{
			{ID: s.newID(), Time: "10:00", Activity: "Shibuya Crossing", Location: "Shibuya, Tokyo", Type: models.ItemSightseeing, Notes: "Famous intersection!"},
			{ID: s.newID(), Time: "12:30", Activity: "Ichiran Ramen", Location: "Shibuya, Tokyo", Type: models.ItemFood, BookingRef: "BK-12345"},
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to seed demo items: %w", err)
	}

	slog.Info("seeded demo project", "id", project.ID, "first_day", firstDay.Date)
	return nil
}
