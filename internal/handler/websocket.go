package handler

import (
	"github.com/labstack/echo/v4"

	ws "github.com/zizouhuweidi/trivia/internal/websocket"
)

// WebSocketHandler serves the question feed
type WebSocketHandler struct {
	hub *ws.Hub
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
	}
}

// HandleWebSocket upgrades the connection and subscribes it to question events
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	return h.hub.ServeWS(c.Response(), c.Request())
}
