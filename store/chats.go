package store

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"wayfarer/models"

	"github.com/samber/lo"
)

const (
	chatTitleLength = 25

	ImageChatTitle = "Image Query"
	EmptyChatTitle = "New Chat"
)

// ChatTitle derives a session title from its first user message: the first 25
// characters of the text as sent, with "..." when truncated, or a placeholder
// when the message carries no text.
func ChatTitle(text string, hasImage bool) string {
	if strings.TrimSpace(text) == "" {
		if hasImage {
			return ImageChatTitle
		}
		return EmptyChatTitle
	}
	if utf8.RuneCountInString(text) > chatTitleLength {
		return string([]rune(text)[:chatTitleLength]) + "..."
	}
	return text
}

// NewUserMessage builds the composer's message from whichever of text and image are present.
func NewUserMessage(text string, image *models.InlineData, timestamp int64) (models.ChatMessage, error) {
	parts := []models.Part{}
	if strings.TrimSpace(text) != "" {
		parts = append(parts, models.Part{Text: text})
	}
	if image != nil && image.Data != "" {
		img := *image
		parts = append(parts, models.Part{InlineData: &img})
	}
	if len(parts) == 0 {
		return models.ChatMessage{}, ErrEmptyMessage
	}
	return models.ChatMessage{Role: models.RoleUser, Parts: parts, Timestamp: timestamp}, nil
}

func (s *Store) Chats(projectID string) ([]models.ChatSession, error) {
	p, err := s.Get(projectID)
	if err != nil {
		return nil, err
	}
	return p.Chats, nil
}

func (s *Store) Chat(projectID, chatID string) (models.ChatSession, error) {
	chats, err := s.Chats(projectID)
	if err != nil {
		return models.ChatSession{}, err
	}
	chat, ok := lo.Find(chats, func(c models.ChatSession) bool { return c.ID == chatID })
	if !ok {
		return models.ChatSession{}, ErrChatNotFound
	}
	return chat, nil
}

// StartChat creates a session seeded with first and prepends it, so the
// session list stays ordered most recently created first.
func (s *Store) StartChat(ctx context.Context, projectID, model string, first models.ChatMessage) (models.ChatSession, error) {
	var hasImage bool
	for _, part := range first.Parts {
		if part.InlineData != nil {
			hasImage = true
		}
	}

	session := models.ChatSession{
		ID:          s.newID(),
		Title:       ChatTitle(first.Text(), hasImage),
		Messages:    []models.ChatMessage{cloneMessage(first)},
		LastUpdated: s.now().UnixMilli(),
		Model:       model,
	}

	_, err := s.mutate(ctx, projectID, func(p *models.TripProject) error {
		p.Chats = append([]models.ChatSession{session}, p.Chats...)
		return nil
	})
	if err != nil {
		if errors.As(err, new(*PersistError)) {
			return cloneChat(session), err
		}
		return models.ChatSession{}, err
	}
	return cloneChat(session), nil
}

// AppendMessage adds msg to the end of a session and bumps its LastUpdated.
// On a PersistError the appended session is still returned.
func (s *Store) AppendMessage(ctx context.Context, projectID, chatID string, msg models.ChatMessage) (models.ChatSession, error) {
	var updated models.ChatSession
	_, err := s.mutate(ctx, projectID, func(p *models.TripProject) error {
		_, idx, ok := lo.FindIndexOf(p.Chats, func(c models.ChatSession) bool { return c.ID == chatID })
		if !ok {
			return ErrChatNotFound
		}
		p.Chats[idx].Messages = append(p.Chats[idx].Messages, cloneMessage(msg))
		p.Chats[idx].LastUpdated = s.now().UnixMilli()
		updated = cloneChat(p.Chats[idx])
		return nil
	})
	return updated, err
}

func (s *Store) DeleteChat(ctx context.Context, projectID, chatID string) error {
	_, err := s.mutate(ctx, projectID, func(p *models.TripProject) error {
		remaining := lo.Filter(p.Chats, func(c models.ChatSession, _ int) bool { return c.ID != chatID })
		if len(remaining) == len(p.Chats) {
			return ErrChatNotFound
		}
		p.Chats = remaining
		return nil
	})
	return err
}
