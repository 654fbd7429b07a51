package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"gamebacklog/backend/internal/hub"
)

// StreamEvents godoc
// @Summary      Subscribe to library change events
// @Description  Server-sent events: game.added, game.updated, game.deleted, goal.added and persist.warning.
// @Tags         events
// @Produce      text/event-stream
// @Security     BearerAuth
// @Router       /events [get]
func (h *Handler) StreamEvents(c *gin.Context) {
	client := make(hub.Client, 8)
	h.Hub.Subscribe(client)
	defer h.Hub.Unsubscribe(client)

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(msg))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
