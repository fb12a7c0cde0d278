package handler

import (
	"io"

	"linkfolio/backend/internal/hub"

	"github.com/gin-gonic/gin"
)

// StreamEvents godoc
// @Summary      Subscribe to notifications
// @Description  Opens a server-sent-events stream of the viewer's notifications (friend requests, comments, reactions).
// @Tags         events
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200
// @Failure      401  {object}  ErrorResponse
// @Router       /events [get]
func StreamEvents(c *gin.Context) {
	viewerID := currentUserID(c)

	client := make(hub.Client, 16)
	hub.GlobalHub.Subscribe(viewerID, client)
	defer hub.GlobalHub.Unsubscribe(viewerID, client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case message, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(message))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
