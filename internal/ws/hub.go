// Package ws pushes state snapshots to connected views over WebSocket.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"rms_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait       = 10 * time.Second
	broadcastBuffer = 64
)

// Hub keeps the set of live connections. Only Run writes to connections.
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan subscription
	unregister chan *websocket.Conn
	done       chan struct{}
	mu         sync.Mutex
	upgrader   websocket.Upgrader
}

// subscription carries the first message a new client should receive.
type subscription struct {
	conn    *websocket.Conn
	initial []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan subscription),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Run serves register, unregister and broadcast until ctx is done, then
// closes every connection.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for conn := range h.clients {
				_ = conn.Close()
				delete(h.clients, conn)
			}
			h.mu.Unlock()
			return

		case sub := <-h.register:
			h.mu.Lock()
			h.clients[sub.conn] = true
			h.mu.Unlock()
			if sub.initial != nil {
				h.write(sub.conn, sub.initial)
			}

		case conn := <-h.unregister:
			h.drop(conn)

		case msg := <-h.broadcast:
			h.mu.Lock()
			conns := make([]*websocket.Conn, 0, len(h.clients))
			for conn := range h.clients {
				conns = append(conns, conn)
			}
			h.mu.Unlock()
			for _, conn := range conns {
				h.write(conn, msg)
			}
		}
	}
}

// Broadcast queues v for every client. It never blocks the caller; when the
// queue is full the snapshot is dropped and the next one supersedes it.
func (h *Hub) Broadcast(v any) {
	msg, err := json.Marshal(v)
	if err != nil {
		utils.LogError(err, "ws: marshal broadcast")
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		utils.LogWarn("ws: broadcast queue full, snapshot dropped")
	}
}

// ClientCount returns the number of registered connections.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeWS upgrades the request and registers the connection. initial, when
// not nil, supplies the first message sent to the client.
func (h *Hub) ServeWS(c *gin.Context, initial func() any) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.LogError(err, "ws: upgrade failed")
		return
	}

	var first []byte
	if initial != nil {
		if first, err = json.Marshal(initial()); err != nil {
			utils.LogError(err, "ws: marshal initial snapshot")
			first = nil
		}
	}
	select {
	case h.register <- subscription{conn: conn, initial: first}:
	case <-h.done:
		_ = conn.Close()
		return
	}
	utils.LogDebug("ws: client connected", map[string]interface{}{"remote": c.ClientIP()})

	go h.readPump(conn)
}

// readPump discards client messages and unregisters on close.
func (h *Hub) readPump(conn *websocket.Conn) {
	defer func() {
		select {
		case h.unregister <- conn:
		case <-h.done:
		}
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) write(conn *websocket.Conn, msg []byte) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		utils.LogDebug("ws: write failed, dropping client", map[string]interface{}{"error": err.Error()})
		h.drop(conn)
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		_ = conn.Close()
	}
}
