package workspace

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// DefaultIdleTTL is how long an untouched workspace is kept.
const DefaultIdleTTL = 24 * time.Hour

// Registry holds the live workspaces by id. Workspaces expire after a period
// without access.
type Registry struct {
	items     *gocache.Cache
	ttl       time.Duration
	projects  Projects
	assistant Assistant
}

func NewRegistry(projects Projects, assistant Assistant, ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	return &Registry{
		items:     gocache.New(ttl, ttl/4),
		ttl:       ttl,
		projects:  projects,
		assistant: assistant,
	}
}

// Create starts a new workspace on the dashboard.
func (r *Registry) Create() *Workspace {
	w := newWorkspace(uuid.NewString(), r.projects, r.assistant)
	r.items.Set(w.id, w, r.ttl)
	slog.Debug("workspace created", "id", w.id, "live", r.Count())
	return w
}

// Get returns the workspace and renews its expiry.
func (r *Registry) Get(id string) (*Workspace, error) {
	v, ok := r.items.Get(id)
	if !ok {
		return nil, ErrWorkspaceNotFound
	}
	w := v.(*Workspace)
	r.items.Set(id, w, r.ttl)
	return w, nil
}

// Delete drops a workspace, e.g. when its client closes.
func (r *Registry) Delete(id string) {
	r.items.Delete(id)
}

func (r *Registry) Count() int {
	return r.items.ItemCount()
}
