// Package handler exposes the library store and search provider over HTTP.
// Handlers hold their collaborators explicitly; there are no package-level
// singletons.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gamebacklog/backend/internal/hub"
	"gamebacklog/backend/internal/library"
	"gamebacklog/backend/internal/models"
	"gamebacklog/backend/internal/search"
)

// Handler bundles the collaborators every route needs.
type Handler struct {
	Store    *library.Store
	Search   search.Provider
	Hub      *hub.Hub
	Log      *logrus.Logger
	Secret   string // JWT signing secret
	PassHash []byte // bcrypt hash of the owner password
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// respondError maps domain errors onto HTTP statuses: validation failures to
// 400, unknown ids to 404, anything else to 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	var notFoundErr *library.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	default:
		h.Log.WithError(err).Error("Unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// mutationResponse wraps a mutated game. A persist warning means the change
// is live in memory but may not survive a restart.
func (h *Handler) mutationResponse(game models.Game) gin.H {
	resp := gin.H{"game": game}
	if err := h.Store.LastSaveError(); err != nil {
		resp["persist_warning"] = "changes may not survive a restart"
	}
	return resp
}

// publish notifies connected clients of a library change.
func (h *Handler) publish(eventType string, payload interface{}) {
	if h.Hub != nil {
		h.Hub.Publish(hub.Event{Type: eventType, Payload: payload})
	}
}
