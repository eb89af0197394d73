package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/aseeltahaa/smartspace/internal/infrastructure/events"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/realtime"
)

// Realtime upgrades browser connections and pushes unread-count and catalog
// events to them
type Realtime struct {
	hub      *realtime.Hub
	bus      *events.Bus
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewRealtime creates a websocket handler. An empty origin list accepts any
// origin.
func NewRealtime(hub *realtime.Hub, bus *events.Bus, allowedOrigins []string, logger *zap.Logger) *Realtime {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &Realtime{
		hub:    hub,
		bus:    bus,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowed) == 0 || allowed[origin]
			},
		},
	}
}

// Connect upgrades the request and blocks until the client goes away
// GET /v1/ws
func (h *Realtime) Connect(c echo.Context) error {
	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("⚠️ Websocket upgrade failed", zap.Error(err))
		}
		// Upgrade has already written the error response
		return nil
	}

	conn := realtime.NewConnection(string(currentUserID(c)), ws)
	h.hub.Attach(conn)
	defer h.hub.Detach(conn)

	for _, topic := range []string{events.TopicUnreadCount, events.TopicCatalogRevision} {
		if ev, ok := h.bus.Last(topic); ok {
			if err := h.hub.SendEvent(conn, ev); err != nil && h.logger != nil {
				h.logger.Warn("⚠️ Initial event not delivered", zap.String("topic", topic), zap.Error(err))
			}
		}
	}

	conn.ReadLoop()
	return nil
}
