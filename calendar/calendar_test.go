package calendar

import (
	"strings"
	"testing"
	"time"

	"wayfarer/models"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokyoTrip() models.TripProject {
	return models.TripProject{
		ID:    "p1",
		Title: "Tokyo Winter",
		Itinerary: []models.DayPlan{
			{
				ID:   "d1",
				Date: "2025-12-17",
				Items: []models.TripItem{
					{ID: "i1", Time: "10:00", Activity: "Shibuya Crossing", Location: "Shibuya", Type: models.ItemSightseeing},
					{ID: "i2", Time: "19:30", Activity: "Ichiran Ramen", Location: "Shinjuku", Type: models.ItemFood, BookingRef: "ABC123"},
				},
			},
			{ID: "d2", Date: "2025-12-18", Items: []models.TripItem{}},
			{
				ID:   "d3",
				Date: "2025-12-19",
				Items: []models.TripItem{
					{ID: "i3", Time: "", Activity: "Free day"},
				},
			},
		},
	}
}

func TestExport(t *testing.T) {
	out := Export(tokyoTrip(), time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))

	cal, err := ics.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 3)
	assert.Equal(t, "i1", events[0].Id())
	assert.Equal(t, "Shibuya Crossing", events[0].GetProperty(ics.ComponentPropertySummary).Value)
	assert.Equal(t, "Shinjuku", events[1].GetProperty(ics.ComponentPropertyLocation).Value)

	assert.Contains(t, out, "DTSTART:20251217T100000")
	assert.Contains(t, out, "DTEND:20251217T110000")
	assert.Contains(t, out, "DTSTART:20251217T193000")
	assert.Contains(t, out, "Booking: ABC123")
	assert.Contains(t, out, "X-WR-CALNAME:Tokyo Winter")
}

func TestExport_EmptyItinerary(t *testing.T) {
	out := Export(models.TripProject{Title: "Empty"}, time.Now())

	cal, err := ics.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	assert.Empty(t, cal.Events())
}

func TestDescription(t *testing.T) {
	tests := []struct {
		name string
		item models.TripItem
		want string
	}{
		{"empty", models.TripItem{}, ""},
		{"booking only", models.TripItem{BookingRef: "JR-1"}, "Booking: JR-1"},
		{"all fields", models.TripItem{BookingRef: "JR-1", Notes: "Car 7", Completed: true}, "Booking: JR-1\nCar 7\nDone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, description(tt.item))
		})
	}
}
