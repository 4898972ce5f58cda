package handlers

import (
	"errors"
	"log"
	"net/http"

	"wayfarer/currency"
	"wayfarer/maps"
	"wayfarer/media"
	"wayfarer/store"
	"wayfarer/workspace"

	"github.com/gin-gonic/gin"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var persistErr *store.PersistError
	switch {
	case errors.As(err, &persistErr):
		return http.StatusInternalServerError
	case errors.Is(err, store.ErrProjectNotFound),
		errors.Is(err, store.ErrDayNotFound),
		errors.Is(err, store.ErrItemNotFound),
		errors.Is(err, store.ErrChatNotFound),
		errors.Is(err, workspace.ErrWorkspaceNotFound):
		return http.StatusNotFound
	case errors.Is(err, workspace.ErrComposerBusy),
		errors.Is(err, workspace.ErrNotInTrip):
		return http.StatusConflict
	case errors.Is(err, store.ErrIncompleteProject),
		errors.Is(err, store.ErrInvalidDateRange),
		errors.Is(err, store.ErrInvalidItem),
		errors.Is(err, store.ErrEmptyMessage),
		errors.Is(err, workspace.ErrNoProjectSelected),
		errors.Is(err, workspace.ErrInvalidTab),
		errors.Is(err, workspace.ErrInvalidDay),
		errors.Is(err, workspace.ErrInvalidModel),
		errors.Is(err, currency.ErrUnsupportedCurrency),
		errors.Is(err, maps.ErrInvalidCoordinates),
		errors.Is(err, media.ErrInvalidImage):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(status, gin.H{"error": "failed to save changes", "details": err.Error()})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func bindError(c *gin.Context, err error) {
	log.Printf("Bind error: %v", err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
