// Package websocket broadcasts operation progress to connected clients.
package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"tabula/internal/infrastructure"
	"tabula/internal/operations"
)

// Message types sent to clients.
const (
	TypeConnection        = "connection"
	TypeOperationProgress = "operation:progress"
)

// Message is the envelope for every frame sent to clients.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Hub maintains the set of active clients and fans messages out to
// them. All client bookkeeping happens on the Run goroutine.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	logger *slog.Logger

	mu      sync.Mutex
	running bool
	quit    chan struct{}
}

// NewHub creates a hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     infrastructure.WithComponent(logger, "websocket.hub"),
		quit:       make(chan struct{}),
	}
}

// Start launches the hub loop. Safe to call more than once.
func (h *Hub) Start() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		return
	}
	h.running = true
	go h.run()
}

// Shutdown stops the hub loop and disconnects all clients.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.running {
		return
	}
	h.running = false
	close(h.quit)
}

func (h *Hub) run() {
	for {
		select {
		case <-h.quit:
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.logger.Info("hub shut down")
			return

		case client := <-h.register:
			h.clients[client] = true
			h.logger.Info("client registered",
				slog.String("client_id", client.id),
				slog.Int("active_clients", len(h.clients)))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Info("client unregistered",
					slog.String("client_id", client.id),
					slog.Int("active_clients", len(h.clients)))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow client: drop it rather than block the hub.
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Broadcast sends a message envelope to every connected client.
func (h *Hub) Broadcast(msgType string, data interface{}) {
	payload, err := json.Marshal(Message{Type: msgType, Data: data})
	if err != nil {
		h.logger.Error("failed to marshal broadcast message",
			slog.String("type", msgType),
			slog.String("error", err.Error()))
		return
	}

	select {
	case h.broadcast <- payload:
	case <-h.quit:
	}
}

// RelayProgress forwards snapshots from the tracker to all clients
// until cancel is called. Run it in its own goroutine.
func (h *Hub) RelayProgress(tracker *operations.ProgressTracker) (cancel func()) {
	ch, unsubscribe := tracker.Subscribe()
	go func() {
		for snapshot := range ch {
			h.Broadcast(TypeOperationProgress, snapshot)
		}
	}()
	return unsubscribe
}
