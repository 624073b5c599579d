package websocket

import (
	"context"
	"sync"

	"workout-generator-be/internal/pkg/logger"
)

// Hub fans exercise events out to every connected client. Cross-instance
// delivery happens upstream on the event bus, so the hub only knows about
// local connections.
type Hub struct {
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     log,
	}
}

// Run serves register and unregister requests until ctx is cancelled, then
// closes every remaining client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("HUB", "Client registered", map[string]interface{}{"client_id": client.ID.String(), "clients": total})

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				h.remove(client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Broadcast queues payload for every client. Clients whose buffer is full
// are dropped.
func (h *Hub) Broadcast(payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.Send <- payload:
		default:
			h.logger.Warn("HUB", "Client Send buffer full, dropping client", map[string]interface{}{"client_id": client.ID.String()})
			h.remove(client)
		}
	}
}

// ClientCount reports the number of live connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// remove must be called with mu held.
func (h *Hub) remove(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.Send)
}
