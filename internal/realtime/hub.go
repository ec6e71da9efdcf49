package realtime

import (
	"encoding/json"
	"sync"

	"ecosync-hub/pkg/logger"

	"go.uber.org/zap"
)

// Event is the wire envelope for every server->client push.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// Hub is the presence channel registry: it maps each connected user to the
// set of their live connections. A user with several tabs or devices open has
// several clients under the same id, and a push fans out to all of them.
//
// Pushes are a latency optimization only. If the user is offline the push is
// silently dropped; the REST read path is the source of truth.
type Hub struct {
	clients map[uint]map[string]*Client
	mu      sync.RWMutex
	logger  *logger.Logger
}

func NewHub(l *logger.Logger) *Hub {
	return &Hub{
		clients: make(map[uint]map[string]*Client),
		logger:  l,
	}
}

// Join registers a connection under its user's room. Additive: joining the
// same user twice from two connections keeps both.
func (h *Hub) Join(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.userID] == nil {
		h.clients[client.userID] = make(map[string]*Client)
	}
	h.clients[client.userID][client.clientID] = client

	h.logger.Logger.Info("client connected",
		zap.Uint("user_id", client.userID),
		zap.String("client_id", client.clientID))
}

// Leave removes a connection. Called from the read pump on disconnect;
// leaving twice is harmless.
func (h *Hub) Leave(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	userClients, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := userClients[client.clientID]; !ok {
		return
	}
	delete(userClients, client.clientID)
	close(client.send)
	if len(userClients) == 0 {
		delete(h.clients, client.userID)
	}

	h.logger.Logger.Info("client disconnected",
		zap.Uint("user_id", client.userID),
		zap.String("client_id", client.clientID))
}

// Push delivers an event to every live connection of userID. Offline user or
// a full send buffer is not an error; partial delivery across a user's tabs
// is tolerated.
func (h *Hub) Push(userID uint, event string, payload interface{}) {
	data, err := json.Marshal(Event{Event: event, Data: payload})
	if err != nil {
		h.logger.Errorf("push marshal failed: %s", err.Error())
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[userID] {
		select {
		case client.send <- data:
		default:
			h.logger.Logger.Warn("client send buffer full, dropping event",
				zap.Uint("user_id", userID),
				zap.String("client_id", client.clientID),
				zap.String("event", event))
		}
	}
}

// ConnectionCount reports the number of live connections for a user.
func (h *Hub) ConnectionCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
