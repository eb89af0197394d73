package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/aseeltahaa/smartspace/internal/infrastructure/events"
)

// Hub tracks the open websocket connections of the companion page and pushes
// bus events to all of them.
type Hub struct {
	mu     sync.RWMutex
	conns  map[string]*Connection
	logger *zap.Logger
}

// NewHub constructs an empty Hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		conns:  make(map[string]*Connection),
		logger: logger,
	}
}

// Attach registers and starts a connection
func (h *Hub) Attach(conn *Connection) {
	h.mu.Lock()
	h.conns[conn.ID] = conn
	h.mu.Unlock()

	conn.Start()
}

// Detach forgets a connection
func (h *Hub) Detach(conn *Connection) {
	h.mu.Lock()
	delete(h.conns, conn.ID)
	h.mu.Unlock()
}

// Count returns the number of attached connections
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Broadcast writes payload to every connection and reports how many accepted it
func (h *Hub) Broadcast(payload []byte) int {
	h.mu.RLock()
	targets := make([]*Connection, 0, len(h.conns))
	for _, c := range h.conns {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, c := range targets {
		if err := c.Send(payload); err == nil {
			delivered++
		} else {
			h.Detach(c)
		}
	}
	return delivered
}

// SendEvent encodes ev as a frame and writes it to one connection
func (h *Hub) SendEvent(conn *Connection, ev events.Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return conn.Send(b)
}

// Forward pushes events of the given topics from bus to every connection until
// ctx is cancelled.
func (h *Hub) Forward(ctx context.Context, bus *events.Bus, topics ...string) {
	ch, cancel := bus.Subscribe(topics...)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			b, err := json.Marshal(ev)
			if err != nil {
				if h.logger != nil {
					h.logger.Error("❌ Failed to encode event", zap.String("topic", ev.Topic), zap.Error(err))
				}
				continue
			}
			n := h.Broadcast(b)
			if h.logger != nil {
				h.logger.Debug("📣 Event pushed", zap.String("topic", ev.Topic), zap.Int("delivered", n))
			}
		}
	}
}

// Close terminates all connections
func (h *Hub) Close() {
	h.mu.Lock()
	conns := h.conns
	h.conns = make(map[string]*Connection)
	h.mu.Unlock()

	for _, c := range conns {
		c.Close(websocket.CloseGoingAway, "server shutdown")
	}
}
