package store

import (
	"context"
	"time"

	"wayfarer/models"

	"github.com/samber/lo"
)

// Defaults for a freshly added activity.
const (
	DefaultItemTime     = "12:00"
	DefaultItemActivity = "New Activity"
)

// AddItem appends a default activity to the end of a day.
func (s *Store) AddItem(ctx context.Context, projectID, dayID string) (models.TripItem, error) {
	item := models.TripItem{
		ID:       s.newID(),
		Time:     DefaultItemTime,
		Activity: DefaultItemActivity,
		Type:     models.ItemSightseeing,
	}

	_, err := s.mutate(ctx, projectID, func(p *models.TripProject) error {
		day, err := findDay(p, dayID)
		if err != nil {
			return err
		}
		day.Items = append(day.Items, item)
		return nil
	})
	if err != nil {
		return models.TripItem{}, err
	}
	return item, nil
}

// UpdateItem merges patch into one item in place; its position never changes.
func (s *Store) UpdateItem(ctx context.Context, projectID, dayID, itemID string, patch models.ItemPatch) (models.TripItem, error) {
	if err := validateItemPatch(patch); err != nil {
		return models.TripItem{}, err
	}

	var updated models.TripItem
	_, err := s.mutate(ctx, projectID, func(p *models.TripProject) error {
		day, err := findDay(p, dayID)
		if err != nil {
			return err
		}
		_, idx, ok := lo.FindIndexOf(day.Items, func(it models.TripItem) bool { return it.ID == itemID })
		if !ok {
			return ErrItemNotFound
		}
		applyItemPatch(&day.Items[idx], patch)
		updated = day.Items[idx]
		return nil
	})
	if err != nil {
		return models.TripItem{}, err
	}
	return updated, nil
}

func (s *Store) DeleteItem(ctx context.Context, projectID, dayID, itemID string) error {
	_, err := s.mutate(ctx, projectID, func(p *models.TripProject) error {
		day, err := findDay(p, dayID)
		if err != nil {
			return err
		}
		remaining := lo.Filter(day.Items, func(it models.TripItem, _ int) bool { return it.ID != itemID })
		if len(remaining) == len(day.Items) {
			return ErrItemNotFound
		}
		day.Items = remaining
		return nil
	})
	return err
}

func findDay(p *models.TripProject, dayID string) (*models.DayPlan, error) {
	for i := range p.Itinerary {
		if p.Itinerary[i].ID == dayID {
			return &p.Itinerary[i], nil
		}
	}
	return nil, ErrDayNotFound
}

func validateItemPatch(patch models.ItemPatch) error {
	if patch.Time != nil {
		if _, err := time.Parse("15:04", *patch.Time); err != nil {
			return ErrInvalidItem
		}
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return ErrInvalidItem
	}
	return nil
}

func applyItemPatch(item *models.TripItem, patch models.ItemPatch) {
	if patch.Time != nil {
		item.Time = *patch.Time
	}
	if patch.Activity != nil {
		item.Activity = *patch.Activity
	}
	if patch.Location != nil {
		item.Location = *patch.Location
	}
	if patch.Type != nil {
		item.Type = *patch.Type
	}
	if patch.BookingRef != nil {
		item.BookingRef = *patch.BookingRef
	}
	if patch.Notes != nil {
		item.Notes = *patch.Notes
	}
	if patch.Completed != nil {
		item.Completed = *patch.Completed
	}
}
