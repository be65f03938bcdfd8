package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"places-backend/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	MessagePlaceCreated = "place_created"
	MessagePlaceUpdated = "place_updated"
	MessagePlaceDeleted = "place_deleted"
	MessagePing         = "ping"
	MessagePong         = "pong"
	MessageError        = "error"

	wsWriteTimeout = 10 * time.Second
)

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type      string        `json:"type"`
	Timestamp int64         `json:"timestamp,omitempty"`
	PlaceID   string        `json:"placeId,omitempty"`
	Place     *models.Place `json:"place,omitempty"`
	Message   string        `json:"message,omitempty"`
}

// EventPublisher receives place change events
type EventPublisher interface {
	Publish(message WSMessage)
}

type wsClient struct {
	conn *websocket.Conn
	// gorilla connections allow one concurrent writer
	writeMu sync.Mutex
}

func (c *wsClient) write(message WSMessage) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// WSHub manages WebSocket connections of the place feed
type WSHub struct {
	mu      sync.RWMutex
	clients map[string]*wsClient
}

// NewWSHub creates a new WebSocket hub
func NewWSHub() *WSHub {
	return &WSHub{
		clients: make(map[string]*wsClient),
	}
}

// Register registers a connection and returns its client ID
func (h *WSHub) Register(conn *websocket.Conn) string {
	clientID := uuid.New().String()

	h.mu.Lock()
	h.clients[clientID] = &wsClient{conn: conn}
	h.mu.Unlock()

	log.Info().Str("client_id", clientID).Msg("WebSocket connection registered")
	return clientID
}

// Unregister closes and removes a client connection
func (h *WSHub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client, exists := h.clients[clientID]; exists {
		client.conn.Close()
		delete(h.clients, clientID)
		log.Info().Str("client_id", clientID).Msg("WebSocket connection unregistered")
	}
}

// SendToClient sends a message to a specific client
func (h *WSHub) SendToClient(clientID string, message WSMessage) error {
	h.mu.RLock()
	client, exists := h.clients[clientID]
	h.mu.RUnlock()

	if !exists {
		return fmt.Errorf("client %s is not connected", clientID)
	}

	if err := client.write(message); err != nil {
		h.Unregister(clientID)
		return err
	}
	return nil
}

// Publish broadcasts a message to every connected client.
// Clients that fail to receive it are dropped.
func (h *WSHub) Publish(message WSMessage) {
	if message.Timestamp == 0 {
		message.Timestamp = time.Now().UnixMilli()
	}

	h.mu.RLock()
	clients := make(map[string]*wsClient, len(h.clients))
	for id, c := range h.clients {
		clients[id] = c
	}
	h.mu.RUnlock()

	for clientID, client := range clients {
		if err := client.write(message); err != nil {
			log.Error().
				Err(err).
				Str("client_id", clientID).
				Str("type", message.Type).
				Msg("Failed to publish message")
			h.Unregister(clientID)
		}
	}
}

// ClientCount returns the number of connected clients
func (h *WSHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client
func (h *WSHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for clientID, client := range h.clients {
		client.writeMu.Lock()
		_ = client.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second),
		)
		client.writeMu.Unlock()
		client.conn.Close()
		delete(h.clients, clientID)
	}
}
