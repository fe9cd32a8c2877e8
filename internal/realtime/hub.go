package realtime

import (
	"context"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Client is one websocket session of a user. A user may hold several.
type Client struct {
	ID     string
	UserID uuid.UUID
	Send   chan []byte
}

func NewClient(userID uuid.UUID) *Client {
	return &Client{
		ID:     uuid.NewString(),
		UserID: userID,
		Send:   make(chan []byte, 256),
	}
}

// Hub tracks live sessions per user and delivers to them without blocking.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Join makes client reachable through SendToUser. Sessions re-join after
// every reconnect.
func (h *Hub) Join(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// SendToUser queues payload on every session of userID and returns how many
// sessions took it. Full buffers are skipped.
func (h *Hub) SendToUser(userID uuid.UUID, payload []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for _, client := range h.clients {
		if client.UserID != userID {
			continue
		}
		select {
		case client.Send <- payload:
			delivered++
		default:
			log.WithFields(log.Fields{"user_id": userID, "client_id": client.ID}).Warn("send buffer full, dropping message")
		}
	}
	return delivered
}

// Reply queues payload on a single session if it is still joined.
func (h *Hub) Reply(client *Client, payload []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if _, ok := h.clients[client.ID]; !ok {
		return false
	}
	select {
	case client.Send <- payload:
		return true
	default:
		return false
	}
}

// Online counts the live sessions of userID.
func (h *Hub) Online(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, client := range h.clients {
		if client.UserID == userID {
			n++
		}
	}
	return n
}

// Run owns registration until ctx ends, then closes every session.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		h.mu.Lock()
		for id, client := range h.clients {
			close(client.Send)
			delete(h.clients, id)
		}
		h.mu.Unlock()
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			log.WithFields(log.Fields{"client_id": client.ID, "user_id": client.UserID}).Debug("client joined")

		case client := <-h.unregister:
			h.mu.Lock()
			if old, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(old.Send)
				log.WithField("client_id", client.ID).Debug("client left")
			}
			h.mu.Unlock()
		}
	}
}
