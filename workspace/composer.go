package workspace

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"wayfarer/gateway"
	"wayfarer/models"
	"wayfarer/store"
)

// Composer sends messages to the assistant on behalf of one workspace.
// Only one send may be in flight at a time.
type Composer struct {
	workspace *Workspace
	assistant Assistant
	busy      atomic.Bool
	now       func() time.Time
}

// SendResult is the outcome of one exchange. Discarded is set when the
// session or project disappeared while the assistant was replying.
type SendResult struct {
	Chat      models.ChatSession `json:"chat"`
	Reply     models.ChatMessage `json:"reply"`
	Discarded bool               `json:"discarded"`
}

func (c *Composer) Sending() bool {
	return c.busy.Load()
}

func (c *Composer) timestamp() int64 {
	if c.now != nil {
		return c.now().UnixMilli()
	}
	return time.Now().UnixMilli()
}

// Send records the user's message in the active session, starting a new
// session when none is selected, then appends the assistant's reply.
// The user's message is stored before the assistant is called.
func (c *Composer) Send(ctx context.Context, text string, image *models.InlineData) (SendResult, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return SendResult{}, ErrComposerBusy
	}
	defer c.busy.Store(false)

	w := c.workspace
	w.mu.Lock()
	if w.view != models.ViewTrip || w.projectID == "" {
		w.mu.Unlock()
		return SendResult{}, ErrNotInTrip
	}
	projectID, chatID, model := w.projectID, w.chatID, w.model
	w.mu.Unlock()

	msg, err := store.NewUserMessage(text, image, c.timestamp())
	if err != nil {
		return SendResult{}, err
	}

	var (
		session    models.ChatSession
		persistErr error
	)
	if chatID != "" {
		session, err = w.projects.AppendMessage(ctx, projectID, chatID, msg)
		if errors.Is(err, store.ErrChatNotFound) {
			// The selected session was deleted elsewhere; start a new one instead.
			w.dropChat(projectID, chatID)
			chatID = ""
		}
	}
	if chatID == "" {
		session, err = w.projects.StartChat(ctx, projectID, model, msg)
	}
	if err != nil {
		if !isPersistError(err) {
			return SendResult{}, err
		}
		persistErr = err
	}

	if chatID == "" {
		w.mu.Lock()
		if w.projectID == projectID && w.chatID == "" {
			w.chatID = session.ID
		}
		w.mu.Unlock()
	}

	history := session.Messages[:len(session.Messages)-1]
	var attached *models.InlineData
	for _, part := range msg.Parts {
		if part.InlineData != nil {
			attached = part.InlineData
		}
	}

	reply := c.assistant.Chat(ctx, gateway.ChatRequest{
		Message: msg.Text(),
		History: history,
		Model:   model,
		Image:   attached,
	})
	if strings.TrimSpace(reply) == "" {
		reply = gateway.EmptyReplyPlaceholder
	}

	answer := models.ChatMessage{
		Role:      models.RoleModel,
		Parts:     []models.Part{{Text: reply}},
		Timestamp: c.timestamp(),
	}

	// The reply belongs to the session even if the client has gone away.
	updated, err := w.projects.AppendMessage(context.WithoutCancel(ctx), projectID, session.ID, answer)
	switch {
	case errors.Is(err, store.ErrProjectNotFound), errors.Is(err, store.ErrChatNotFound):
		slog.Info("discarded assistant reply", "project_id", projectID, "chat_id", session.ID, "reason", err)
		return SendResult{Chat: session, Reply: answer, Discarded: true}, persistErr
	case err != nil && !isPersistError(err):
		return SendResult{}, err
	case err != nil:
		persistErr = err
	}

	return SendResult{Chat: updated, Reply: answer}, persistErr
}

func isPersistError(err error) bool {
	var pe *store.PersistError
	return errors.As(err, &pe)
}
