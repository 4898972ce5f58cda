package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"wayfarer/models"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Persister is the durability boundary behind the in-memory project list.
// LoadProjects must return projects most recently created first.
type Persister interface {
	LoadProjects(ctx context.Context) ([]models.TripProject, error)
	SaveProject(ctx context.Context, project models.TripProject) error
	DeleteProject(ctx context.Context, id string) error
}

// Store owns the project list and every itinerary and chat session nested in it.
// All mutations are read-modify-write of one project under the write lock.
// Writes reach the persister in the order they were applied in memory.
type Store struct {
	mu        sync.RWMutex
	projects  []models.TripProject
	persister Persister
	persistMu sync.Mutex

	now   func() time.Time
	newID func() string
}

// New creates an empty store. A nil persister keeps everything in memory.
func New(persister Persister) *Store {
	return &Store{
		persister: persister,
		now:       time.Now,
		newID:     newID,
	}
}

// newID returns a random UUID v4. Ids are 122 random bits and are treated
// as unique without collision checks.
func newID() string {
	return uuid.NewString()
}

// Load replaces the in-memory list with the persister's contents.
func (s *Store) Load(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}

	start := time.Now()
	projects, err := s.persister.LoadProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	for i := range projects {
		if projects[i].Chats == nil {
			projects[i].Chats = []models.ChatSession{}
		}
	}

	s.mu.Lock()
	s.projects = projects
	s.mu.Unlock()

	slog.Info("loaded projects", "count", len(projects), "duration", time.Since(start))
	return nil
}

// List returns copies of all projects, most recently created first.
func (s *Store) List() []models.TripProject {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Map(s.projects, func(p models.TripProject, _ int) models.TripProject {
		return cloneProject(p)
	})
}

func (s *Store) Get(id string) (models.TripProject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, _, ok := lo.FindIndexOf(s.projects, func(p models.TripProject) bool { return p.ID == id })
	if !ok {
		return models.TripProject{}, ErrProjectNotFound
	}
	return cloneProject(p), nil
}

// mutate applies fn to a copy of the project and swaps it in only if fn succeeds,
// so a failing fn leaves no partial change behind.
func (s *Store) mutate(ctx context.Context, id string, fn func(p *models.TripProject) error) (models.TripProject, error) {
	s.mu.Lock()
	_, idx, ok := lo.FindIndexOf(s.projects, func(p models.TripProject) bool { return p.ID == id })
	if !ok {
		s.mu.Unlock()
		return models.TripProject{}, ErrProjectNotFound
	}

	updated := cloneProject(s.projects[idx])
	if err := fn(&updated); err != nil {
		s.mu.Unlock()
		return models.TripProject{}, err
	}
	updated.UpdatedAt = s.now().UTC()
	s.projects[idx] = updated

	snapshot := cloneProject(updated)
	s.persistMu.Lock()
	s.mu.Unlock()
	defer s.persistMu.Unlock()

	if err := s.save(ctx, snapshot); err != nil {
		return cloneProject(snapshot), err
	}
	return cloneProject(snapshot), nil
}

// PersistTimeout bounds a single write-through to the persister.
const PersistTimeout = 10 * time.Second

// persistContext detaches a write-through from the caller's cancellation.
// By the time it runs the change is already in memory, and abandoning the
// write would let the persisted copy drift from it.
func persistContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), PersistTimeout)
}

func (s *Store) save(ctx context.Context, p models.TripProject) error {
	if s.persister == nil {
		return nil
	}
	ctx, cancel := persistContext(ctx)
	defer cancel()
	if err := s.persister.SaveProject(ctx, p); err != nil {
		slog.Error("failed to persist project", "project_id", p.ID, "error", err)
		return &PersistError{ProjectID: p.ID, Err: err}
	}
	return nil
}

func cloneProject(p models.TripProject) models.TripProject {
	out := p
	out.Itinerary = make([]models.DayPlan, len(p.Itinerary))
	for i, day := range p.Itinerary {
		out.Itinerary[i] = cloneDay(day)
	}
	out.Chats = make([]models.ChatSession, len(p.Chats))
	for i, chat := range p.Chats {
		out.Chats[i] = cloneChat(chat)
	}
	return out
}

func cloneDay(d models.DayPlan) models.DayPlan {
	out := d
	out.Items = append(make([]models.TripItem, 0, len(d.Items)), d.Items...)
	return out
}

func cloneChat(c models.ChatSession) models.ChatSession {
	out := c
	out.Messages = make([]models.ChatMessage, len(c.Messages))
	for i, m := range c.Messages {
		out.Messages[i] = cloneMessage(m)
	}
	return out
}

func cloneMessage(m models.ChatMessage) models.ChatMessage {
	out := m
	out.Parts = make([]models.Part, len(m.Parts))
	for i, part := range m.Parts {
		out.Parts[i] = part
		if part.InlineData != nil {
			data := *part.InlineData
			out.Parts[i].InlineData = &data
		}
	}
	return out
}
