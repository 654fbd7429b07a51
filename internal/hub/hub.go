package hub

import (
	"encoding/json"
	"sync"
)

// Event is a library change notification pushed to connected clients, so an
// open UI can re-render without polling and learn about persist warnings.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Client is a single SSE subscriber; the events handler drains it.
type Client chan []byte

// Hub fans library events out to all subscribed clients.
type Hub struct {
	clients map[Client]bool
	mu      sync.RWMutex
}

// New creates an empty Hub.
func New() *Hub {
	return &Hub{clients: make(map[Client]bool)}
}

// Subscribe registers a new client.
func (h *Hub) Subscribe(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = true
}

// Unsubscribe removes a client and closes its channel.
func (h *Hub) Unsubscribe(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client)
	}
}

// Publish sends an event to every subscriber. Slow clients are skipped
// rather than blocking the publisher.
func (h *Hub) Publish(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client <- data:
		default:
		}
	}
}
