// Package push tracks live websocket connections and delivers turn
// notifications to them by connection id.
package push

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// Event names sent to clients.
const (
	EventMove       = "move"
	EventRegistered = "registered"
)

// ErrConnectionGone means the connection id is unknown or the peer
// already went away. Callers treat it as non-fatal.
var ErrConnectionGone = errors.New("push: connection gone")

const writeTimeout = 5 * time.Second

type envelope struct {
	Event string `json:"event"`
}

type Hub struct {
	mu    sync.RWMutex
	conns map[string]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]*websocket.Conn)}
}

// Add registers a connection and returns its generated id.
func (h *Hub) Add(conn *websocket.Conn) string {
	id := uuid.NewString()
	h.mu.Lock()
	h.conns[id] = conn
	h.mu.Unlock()
	return id
}

// Remove drops a connection from the registry. It does not close the
// socket; the owning handler does that.
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	delete(h.conns, id)
	h.mu.Unlock()
}

// Push writes {"event": name} to the connection. A missing id or a
// failed write returns ErrConnectionGone and the id is dropped so
// later pushes fail fast.
func (h *Hub) Push(ctx context.Context, connID, event string) error {
	h.mu.RLock()
	conn, ok := h.conns[connID]
	h.mu.RUnlock()
	if !ok {
		return ErrConnectionGone
	}

	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := wsjson.Write(wctx, conn, envelope{Event: event}); err != nil {
		h.Remove(connID)
		return errors.Join(ErrConnectionGone, err)
	}
	return nil
}

// Len reports the number of registered connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
