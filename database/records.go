package database

import (
	"encoding/json"
	"fmt"

	"wayfarer/models"
)

// encodeNested serializes the itinerary and chat sessions for the JSON columns.
func encodeNested(p models.TripProject) (itinerary, chats []byte, err error) {
	days := p.Itinerary
	if days == nil {
		days = []models.DayPlan{}
	}
	itinerary, err = json.Marshal(days)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode itinerary: %w", err)
	}

	sessions := p.Chats
	if sessions == nil {
		sessions = []models.ChatSession{}
	}
	chats, err = json.Marshal(sessions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode chats: %w", err)
	}
	return itinerary, chats, nil
}

func decodeNested(p *models.TripProject, itinerary, chats []byte) error {
	p.Itinerary = []models.DayPlan{}
	p.Chats = []models.ChatSession{}
	if len(itinerary) > 0 {
		if err := json.Unmarshal(itinerary, &p.Itinerary); err != nil {
			return fmt.Errorf("failed to decode itinerary of %s: %w", p.ID, err)
		}
	}
	if len(chats) > 0 {
		if err := json.Unmarshal(chats, &p.Chats); err != nil {
			return fmt.Errorf("failed to decode chats of %s: %w", p.ID, err)
		}
	}
	return nil
}
