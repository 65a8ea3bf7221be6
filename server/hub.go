package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Message is the envelope pushed to websocket clients.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub fans messages out to every connected websocket client.
type Hub struct {
	mu        sync.Mutex
	clients   map[*websocket.Conn]bool
	broadcast chan Message
	upgrader  websocket.Upgrader
}

// NewHub returns a hub; call Run in a goroutine to start delivery.
func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Message, 16),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Run delivers broadcast messages until the channel is closed. Clients
// that fail a write are dropped.
func (h *Hub) Run() {
	for msg := range h.broadcast {
		h.mu.Lock()
		for conn := range h.clients {
			if err := conn.WriteJSON(msg); err != nil {
				conn.Close()
				delete(h.clients, conn)
				websocketClients.Dec()
			}
		}
		h.mu.Unlock()
	}
}

// Close stops delivery and disconnects every client.
func (h *Hub) Close() {
	close(h.broadcast)
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
		websocketClients.Dec()
	}
}

// Broadcast queues a message for all clients. It never blocks: when the
// queue is full the message is dropped.
func (h *Hub) Broadcast(event string, data any) {
	select {
	case h.broadcast <- Message{Event: event, Data: data}:
	default:
		log.Printf("websocket broadcast queue full, dropping %q", event)
	}
}

// ServeWS upgrades the request and registers the client. The read loop
// only watches for disconnects; the dashboard is push only.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	welcome := Message{Event: "welcome", Data: "connected"}
	if err := conn.WriteJSON(welcome); err != nil {
		conn.Close()
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
	websocketClients.Inc()

	go func() {
		defer func() {
			h.mu.Lock()
			if h.clients[conn] {
				delete(h.clients, conn)
				websocketClients.Dec()
			}
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
