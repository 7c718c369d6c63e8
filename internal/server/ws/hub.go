package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/lafrite/friterie/internal/domain/model"
)

// Event is a message broadcast to connected dashboard clients.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// orderStatusPayload is the wire form of an order transition on the feed.
type orderStatusPayload struct {
	OrderID   string    `json:"orderId"`
	Status    string    `json:"status"`
	Total     int64     `json:"total"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Hub maintains the set of connected admin dashboard clients and broadcasts
// order lifecycle events to them.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.Mutex
}

// NewHub creates a Hub instance.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
	}
}

// Run processes hub events until ctx is cancelled. Run as a goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer, drop the connection.
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast queues an event for all connected clients. Non-blocking: when
// the hub queue is full the event is dropped, feed delivery is advisory.
func (h *Hub) Broadcast(event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
	}
}

// BroadcastOrderStatus publishes an order transition on the feed.
func (h *Hub) BroadcastOrderStatus(order *model.Order) {
	payload, err := json.Marshal(orderStatusPayload{
		OrderID:   order.ID,
		Status:    string(order.Status),
		Total:     order.Total,
		UpdatedAt: order.UpdatedAt,
	})
	if err != nil {
		return
	}
	h.Broadcast(Event{Type: "order_status", Payload: payload})
}
