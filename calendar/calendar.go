// Package calendar exports a trip itinerary as an iCalendar feed.
package calendar

import (
	"strings"
	"time"

	"wayfarer/models"

	ics "github.com/arran4/golang-ical"
)

const (
	productID     = "-//wayfarer//itinerary//EN"
	floatingTime  = "20060102T150405"
	eventDuration = time.Hour
)

// Export renders every item of the project as an event. Items are written in
// floating local time, since the trip's timezone is not known.
func Export(p models.TripProject, stamp time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(p.Title)

	for _, day := range p.Itinerary {
		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			continue
		}
		for _, item := range day.Items {
			addItem(cal, date, item, stamp)
		}
	}
	return cal.Serialize()
}

func addItem(cal *ics.Calendar, date time.Time, item models.TripItem, stamp time.Time) {
	event := cal.AddEvent(item.ID)
	event.SetDtStampTime(stamp.UTC())
	event.SetSummary(item.Activity)
	if item.Location != "" {
		event.SetLocation(item.Location)
	}
	if item.Type != "" {
		event.AddProperty(ics.ComponentPropertyCategories, strings.ToUpper(string(item.Type)))
	}
	if desc := description(item); desc != "" {
		event.SetDescription(desc)
	}

	clock, err := time.Parse("15:04", item.Time)
	if err != nil {
		event.SetAllDayStartAt(date)
		event.SetAllDayEndAt(date.AddDate(0, 0, 1))
		return
	}
	start := date.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
	event.SetProperty(ics.ComponentPropertyDtStart, start.Format(floatingTime))
	event.SetProperty(ics.ComponentPropertyDtEnd, start.Add(eventDuration).Format(floatingTime))
}

func description(item models.TripItem) string {
	var lines []string
	if item.BookingRef != "" {
		lines = append(lines, "Booking: "+item.BookingRef)
	}
	if item.Notes != "" {
		lines = append(lines, item.Notes)
	}
	if item.Completed {
		lines = append(lines, "Done")
	}
	return strings.Join(lines, "\n")
}
