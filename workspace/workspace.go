// Package workspace holds per-client navigation state: which project is open,
// which tab and day are showing, and the assistant composer.
package workspace

import (
	"context"
	"errors"
	"sync"

	"wayfarer/gateway"
	"wayfarer/models"
	"wayfarer/store"
)

var (
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrNoProjectSelected = errors.New("no project selected")
	ErrNotInTrip         = errors.New("workspace is not viewing a trip")
	ErrInvalidTab        = errors.New("invalid tab")
	ErrInvalidDay        = errors.New("day index out of range")
	ErrInvalidModel      = errors.New("unsupported model")
	ErrComposerBusy      = errors.New("a message is already being sent")
)

// Projects is the slice of the project store a workspace reads and mutates.
type Projects interface {
	Get(id string) (models.TripProject, error)
	Chat(projectID, chatID string) (models.ChatSession, error)
	StartChat(ctx context.Context, projectID, model string, first models.ChatMessage) (models.ChatSession, error)
	AppendMessage(ctx context.Context, projectID, chatID string, msg models.ChatMessage) (models.ChatSession, error)
	DeleteChat(ctx context.Context, projectID, chatID string) error
}

// Assistant produces the model's reply to a chat turn. It never fails.
type Assistant interface {
	Chat(ctx context.Context, req gateway.ChatRequest) string
}

// Workspace is one client's view router. The project data itself lives in the
// store; a workspace only points into it.
type Workspace struct {
	id       string
	projects Projects

	mu          sync.Mutex
	view        models.View
	tab         models.Tab
	projectID   string
	activeDay   int
	chatID      string
	model       string
	mapLocation string

	composer *Composer
}

func newWorkspace(id string, projects Projects, assistant Assistant) *Workspace {
	w := &Workspace{
		id:       id,
		projects: projects,
		view:     models.ViewDashboard,
		tab:      models.TabPlanner,
		model:    gateway.ModelFlash,
	}
	w.composer = &Composer{workspace: w, assistant: assistant}
	return w
}

func (w *Workspace) ID() string {
	return w.id
}

func (w *Workspace) Composer() *Composer {
	return w.composer
}

// State returns a snapshot of the workspace. The open project may have changed
// since it was selected: the active day is clamped to its itinerary, and a
// chat session deleted through the project API is deselected.
func (w *Workspace) State() models.WorkspaceState {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.view == models.ViewTrip {
		if p, err := w.projects.Get(w.projectID); err == nil {
			w.clampActiveDay(len(p.Itinerary))
		}
		if w.chatID != "" {
			if _, err := w.projects.Chat(w.projectID, w.chatID); errors.Is(err, store.ErrChatNotFound) {
				w.chatID = ""
			}
		}
	}
	return w.snapshot()
}

// dropChat clears the selection if it still points at chatID of projectID.
func (w *Workspace) dropChat(projectID, chatID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.projectID == projectID && w.chatID == chatID {
		w.chatID = ""
	}
}

func (w *Workspace) snapshot() models.WorkspaceState {
	return models.WorkspaceState{
		ID:          w.id,
		View:        w.view,
		Tab:         w.tab,
		ProjectID:   w.projectID,
		ActiveDay:   w.activeDay,
		ChatID:      w.chatID,
		Model:       w.model,
		MapLocation: w.mapLocation,
		Sending:     w.composer.Sending(),
	}
}

// Open selects a project and enters its planner. Chat selection is per
// project, so it is cleared.
func (w *Workspace) Open(projectID string) (models.WorkspaceState, error) {
	if projectID == "" {
		return models.WorkspaceState{}, ErrNoProjectSelected
	}
	if _, err := w.projects.Get(projectID); err != nil {
		return models.WorkspaceState{}, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.view = models.ViewTrip
	w.tab = models.TabPlanner
	w.projectID = projectID
	w.activeDay = 0
	w.chatID = ""
	w.mapLocation = ""
	return w.snapshot(), nil
}

// Back returns to the dashboard. The project selection is dropped; no data changes.
func (w *Workspace) Back() models.WorkspaceState {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.view = models.ViewDashboard
	w.projectID = ""
	w.chatID = ""
	w.activeDay = 0
	w.mapLocation = ""
	return w.snapshot()
}

func (w *Workspace) SetTab(tab models.Tab) (models.WorkspaceState, error) {
	if !tab.Valid() {
		return models.WorkspaceState{}, ErrInvalidTab
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.view != models.ViewTrip {
		return models.WorkspaceState{}, ErrNotInTrip
	}
	w.tab = tab
	return w.snapshot(), nil
}

// SetActiveDay selects which day of the open itinerary the planner shows.
func (w *Workspace) SetActiveDay(index int) (models.WorkspaceState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.view != models.ViewTrip {
		return models.WorkspaceState{}, ErrNotInTrip
	}
	p, err := w.projects.Get(w.projectID)
	if err != nil {
		return models.WorkspaceState{}, err
	}
	if index < 0 || index >= len(p.Itinerary) {
		return models.WorkspaceState{}, ErrInvalidDay
	}
	w.activeDay = index
	return w.snapshot(), nil
}

// clampActiveDay resets the active day to 0 when it no longer fits in dayCount days.
func (w *Workspace) clampActiveDay(dayCount int) {
	if w.activeDay >= dayCount {
		w.activeDay = 0
	}
}

// ShowOnMap switches to the map tab centred on location.
func (w *Workspace) ShowOnMap(location string) (models.WorkspaceState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.view != models.ViewTrip {
		return models.WorkspaceState{}, ErrNotInTrip
	}
	w.mapLocation = location
	w.tab = models.TabMap
	return w.snapshot(), nil
}

// SelectChat makes chatID the active session. An empty id starts a new chat
// on the next send.
func (w *Workspace) SelectChat(chatID string) (models.WorkspaceState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.view != models.ViewTrip {
		return models.WorkspaceState{}, ErrNotInTrip
	}
	if chatID != "" {
		if _, err := w.projects.Chat(w.projectID, chatID); err != nil {
			return models.WorkspaceState{}, err
		}
	}
	w.chatID = chatID
	return w.snapshot(), nil
}

func (w *Workspace) SelectModel(model string) (models.WorkspaceState, error) {
	if model != gateway.ModelFlash && model != gateway.ModelPro {
		return models.WorkspaceState{}, ErrInvalidModel
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.model = model
	return w.snapshot(), nil
}

// DeleteChat removes a session of the open project and clears the selection
// when it pointed at that session.
func (w *Workspace) DeleteChat(ctx context.Context, chatID string) (models.WorkspaceState, error) {
	w.mu.Lock()
	if w.view != models.ViewTrip {
		w.mu.Unlock()
		return models.WorkspaceState{}, ErrNotInTrip
	}
	projectID := w.projectID
	w.mu.Unlock()

	err := w.projects.DeleteChat(ctx, projectID, chatID)
	if err != nil && !isPersistError(err) {
		return models.WorkspaceState{}, err
	}

	w.dropChat(projectID, chatID)
	return w.State(), err
}
