package store

import "errors"

var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrDayNotFound       = errors.New("day not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrChatNotFound      = errors.New("chat session not found")
	ErrIncompleteProject = errors.New("title, start date and end date are required")
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrInvalidItem       = errors.New("invalid item fields")
	ErrEmptyMessage      = errors.New("message needs text or an image")
)

// PersistError reports a mutation that was applied in memory but could not be
// written through to the persister.
type PersistError struct {
	ProjectID string
	Err       error
}

func (e *PersistError) Error() string {
	return "failed to persist project " + e.ProjectID + ": " + e.Err.Error()
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
