package ws

import (
	"encoding/json"
	"sync"

	"points_platform/internal/logger"
)

// Event is the wire envelope for everything pushed to stream clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Hub fans chat and rain events out to every connected client. Slow
// clients get dropped rather than blocking the broadcast.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			h.mu.Unlock()
			logger.Debug("ws client registered", "user_id", c.UserID)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.Send)
			}
			h.mu.Unlock()
			logger.Debug("ws client unregistered", "user_id", c.UserID)

		case msg := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.Send <- msg:
				default:
					// send buffer full, drop the client
					go c.Close()
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastEvent marshals and queues an event for every client.
func (h *Hub) BroadcastEvent(eventType string, payload any) {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		logger.Error("ws event marshal failed", "type", eventType, "error", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logger.Warn("ws broadcast queue full, dropping event", "type", eventType)
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Unregister detaches a client; safe to call more than once.
func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
