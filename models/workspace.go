package models

type View string

const (
	ViewDashboard View = "dashboard"
	ViewTrip      View = "trip"
)

// Tab is the trip workspace sub-state.
type Tab string

const (
	TabPlanner    Tab = "planner"
	TabMap        Tab = "map"
	TabTranslator Tab = "translator"
	TabCurrency   Tab = "currency"
	TabAI         Tab = "ai"
)

func (t Tab) Valid() bool {
	switch t {
	case TabPlanner, TabMap, TabTranslator, TabCurrency, TabAI:
		return true
	}
	return false
}

// WorkspaceState is a snapshot of one client's view router.
type WorkspaceState struct {
	ID          string `json:"id"`
	View        View   `json:"view"`
	Tab         Tab    `json:"tab"`
	ProjectID   string `json:"projectId,omitempty"`
	ActiveDay   int    `json:"activeDay"`
	ChatID      string `json:"chatId,omitempty"`
	Model       string `json:"model"`
	MapLocation string `json:"mapLocation,omitempty"`
	Sending     bool   `json:"sending"`
}

type OpenProjectRequest struct {
	ProjectID string `json:"projectId" binding:"required"`
}

type SetTabRequest struct {
	Tab Tab `json:"tab" binding:"required"`
}

type SetDayRequest struct {
	Index int `json:"index"`
}

type ShowOnMapRequest struct {
	Location string `json:"location" binding:"required"`
}

type SelectChatRequest struct {
	ChatID string `json:"chatId"`
}

type SelectModelRequest struct {
	Model string `json:"model" binding:"required"`
}
