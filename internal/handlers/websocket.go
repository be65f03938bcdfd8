package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"places-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler serves the place feed
type WebSocketHandler struct {
	hub *services.WSHub
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(hub *services.WSHub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
	}
}

// HandleWebSocket handles GET /ws
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	clientID := h.hub.Register(conn)
	defer h.hub.Unregister(clientID)

	log.Info().Str("client_id", clientID).Msg("WebSocket connection established")

	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error().Err(err).Str("client_id", clientID).Msg("WebSocket error")
			}
			return
		}

		var msg services.WSMessage
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			h.sendError(clientID, "Invalid message format")
			continue
		}

		h.handleMessage(clientID, msg)
	}
}

// handleMessage processes incoming WebSocket messages
func (h *WebSocketHandler) handleMessage(clientID string, msg services.WSMessage) {
	switch msg.Type {
	case services.MessagePing:
		if err := h.hub.SendToClient(clientID, services.WSMessage{
			Type:      services.MessagePong,
			Timestamp: time.Now().UnixMilli(),
		}); err != nil {
			log.Error().Err(err).Str("client_id", clientID).Msg("Failed to send pong")
		}
	default:
		h.sendError(clientID, "Unknown message type")
	}
}

// sendError sends an error message to a client
func (h *WebSocketHandler) sendError(clientID, message string) {
	err := h.hub.SendToClient(clientID, services.WSMessage{
		Type:    services.MessageError,
		Message: message,
	})
	if err != nil {
		log.Error().Err(err).Str("client_id", clientID).Msg("Failed to send error message")
	}
}
