package ws

import (
	"encoding/json"
	"sync"

	"farm_webapp/internal/logger"
)

// Event is a push notification sent to a connected player.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// Hub fans events out to every open connection of a user. A user can hold
// several connections (two tabs, phone plus desktop); each gets the event.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int64]map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.UserID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.UserID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.UserID]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.UserID)
	}
}

// NotifyUser sends the event to every connection of the user. Slow consumers
// whose send buffer is full are skipped, never blocked on.
func (h *Hub) NotifyUser(userID int64, ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		logger.Error("ws: marshal event", "type", ev.Type, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[userID] {
		select {
		case c.Send <- msg:
		default:
			logger.Warn("ws: dropping event, send buffer full", "user_id", userID, "type", ev.Type)
		}
	}
}

// Connected reports whether the user has at least one open connection.
func (h *Hub) Connected(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}
