package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gocomet/rides-api/pkg/logger"
	"github.com/gocomet/rides-api/pkg/websocket"
)

// HandleWebSocket handles GET /ws, streaming created rides to the caller
func (h *Handlers) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Warn("Failed to upgrade to WebSocket", logger.Err(err))
		return
	}

	client := websocket.NewClient(h.Hub, conn, h.Logger)
	if !h.Hub.Register(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
