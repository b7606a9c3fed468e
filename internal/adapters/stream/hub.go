// Package stream pushes live tracking progress to websocket subscribers.
//
// The hub fans a JSON payload out to every connected client. Delivery is
// best-effort: a client whose send buffer is full is dropped rather than
// allowed to stall the broadcaster, which runs on the reducer's goroutine.
package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gigpulse/gigpulse/pkg/logger"
	"github.com/gigpulse/gigpulse/pkg/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API already runs behind the CORS middleware; the websocket
	// endpoint accepts any origin to match.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Hub tracks connected websocket clients and fans broadcasts out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}

	logger logger.Logger
}

// NewHub constructs an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		logger:  logger.Get().Named("stream"),
	}
}

// Broadcast marshals v and queues it to every connected client. Clients that
// cannot keep up are disconnected. Never blocks.
func (h *Hub) Broadcast(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		metrics.RecordErrorByComponent("stream", "marshal_failed")
		h.logger.Warn(context.Background(), "broadcast marshal failed", logger.Error(err))
		return
	}

	h.mu.RLock()
	var slow []*client
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		metrics.RecordErrorByComponent("stream", "slow_client_dropped")
		h.remove(c)
	}
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for _, c := range clients {
		close(c.send)
	}
}

// ServeHTTP upgrades the request to a websocket and registers the client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn(r.Context(), "websocket upgrade failed", logger.Error(err))
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.writePump()
	go c.readPump()
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
	}
	h.mu.Unlock()
	if ok {
		close(c.send)
	}
}

// client is one websocket subscriber. Reads are discarded; the stream is
// one-way.
type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func (c *client) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
