package models

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// InlineData carries binary content as base64 text, e.g. an attached photo.
type InlineData struct {
	MimeType string `json:"mimeType" binding:"required"`
	Data     string `json:"data" binding:"required"`
}

// Part is one piece of a message: either text or inline data.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

type ChatMessage struct {
	Role      Role   `json:"role"`
	Parts     []Part `json:"parts"`
	Timestamp int64  `json:"timestamp"`
}

// Text joins the text parts of the message.
func (m ChatMessage) Text() string {
	var out string
	for _, p := range m.Parts {
		out += p.Text
	}
	return out
}

// ChatSession is one conversation thread with the assistant, scoped to a project.
// LastUpdated is bumped on every append.
type ChatSession struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Messages    []ChatMessage `json:"messages"`
	LastUpdated int64         `json:"lastUpdated"`
	Model       string        `json:"model"`
}

// SendMessageRequest is the composer payload. At least one of Text or Image is required.
type SendMessageRequest struct {
	Text  string      `json:"text"`
	Image *InlineData `json:"image"`
}

type ChatsResponse struct {
	Chats []ChatSession `json:"chats"`
	Total int           `json:"total"`
}
