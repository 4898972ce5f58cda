package models

import "time"

// ItemType classifies a TripItem for display.
type ItemType string

const (
	ItemFood        ItemType = "food"
	ItemTransport   ItemType = "transport"
	ItemSightseeing ItemType = "sightseeing"
	ItemHotel       ItemType = "hotel"
)

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	switch t {
	case ItemFood, ItemTransport, ItemSightseeing, ItemHotel:
		return true
	}
	return false
}

// TripProject is a single trip: a destination title, an inclusive date range,
// and the itinerary and chat history that belong exclusively to it.
// The itinerary always holds one DayPlan per calendar day of the range.
type TripProject struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	StartDate string        `json:"startDate"`
	EndDate   string        `json:"endDate"`
	Itinerary []DayPlan     `json:"itinerary"`
	BannerURL string        `json:"bannerUrl,omitempty"`
	Chats     []ChatSession `json:"chats"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// DayPlan is one calendar day. Items keep insertion order and are never
// sorted by their Time field.
type DayPlan struct {
	ID    string     `json:"id"`
	Date  string     `json:"date"`
	Items []TripItem `json:"items"`
}

type TripItem struct {
	ID         string   `json:"id"`
	Time       string   `json:"time"`
	Activity   string   `json:"activity"`
	Location   string   `json:"location"`
	Type       ItemType `json:"type"`
	BookingRef string   `json:"bookingRef,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	Completed  bool     `json:"completed"`
}

// SaveProjectRequest is the dashboard "save" payload. An empty ID creates a
// new project; otherwise the project with that ID is updated.
type SaveProjectRequest struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// ProjectPatch lists the fields nested features may merge into a project.
// Nil fields are left untouched. Identity and date range are not patchable.
type ProjectPatch struct {
	BannerURL *string       `json:"bannerUrl"`
	Itinerary []DayPlan     `json:"-"`
	Chats     []ChatSession `json:"-"`
}

// ItemPatch is a field-level update of a TripItem. Nil fields are left untouched.
type ItemPatch struct {
	Time       *string   `json:"time" binding:"omitempty,len=5"`
	Activity   *string   `json:"activity"`
	Location   *string   `json:"location"`
	Type       *ItemType `json:"type" binding:"omitempty,oneof=food transport sightseeing hotel"`
	BookingRef *string   `json:"bookingRef"`
	Notes      *string   `json:"notes"`
	Completed  *bool     `json:"completed"`
}

// ProjectsResponse is the dashboard listing.
type ProjectsResponse struct {
	Projects []TripProject `json:"projects"`
	Total    int           `json:"total"`
}
