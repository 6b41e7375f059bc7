package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"nhooyr.io/websocket"

	"github.com/smartq/backend/internal/ws"
)

// Subscribe upgrades the connection and registers it as a viewer of the
// named service. The snapshot is sent inside Connect, before any concurrent
// mutation can broadcast to this viewer.
func (h *Handler) Subscribe(c *gin.Context) {
	svc, ok := h.lookupService(c)
	if !ok {
		return
	}
	role := ws.ParseRole(c.Query("role"))

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.Logger.Warn().Err(err).Str("queue", svc.Name()).Msg("websocket upgrade failed")
		return
	}

	viewer := ws.NewViewer(conn, role)
	// The connection outlives the request context once hijacked.
	ctx := context.Background()
	go viewer.Pump(ctx)

	svc.Connect(viewer)
	h.Logger.Info().Str("queue", svc.Name()).Str("viewer_id", viewer.ID).Str("role", string(role)).Msg("viewer connected")

	defer func() {
		svc.Disconnect(viewer)
		h.Logger.Info().Str("queue", svc.Name()).Str("viewer_id", viewer.ID).Msg("viewer disconnected")
	}()

	// Viewers do not speak in this protocol; the read loop only detects the
	// close.
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return
		}
	}
}
