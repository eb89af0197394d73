package realtime

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

var (
	errConnClosed     = errors.New("connection closed")
	errBufferExceeded = errors.New("connection buffer exceeded")
)

// Connection wraps a websocket and serialises outbound writes through a
// buffered channel. It is safe for concurrent use.
type Connection struct {
	ID     string
	UserID string

	ws    *websocket.Conn
	send    chan []byte
	started sync.Once
	once    sync.Once
	close   chan struct{}
}

// NewConnection constructs a Connection for the given user
func NewConnection(userID string, ws *websocket.Conn) *Connection {
	return &Connection{
		ID:     uuid.NewString(),
		UserID: userID,
		ws:     ws,
		send:   make(chan []byte, 32),
		close:  make(chan struct{}),
	}
}

// Start launches the write loop. Later calls are no-ops so a connection
// never has more than one writer.
func (c *Connection) Start() {
	c.started.Do(func() {
		go c.writeLoop()
	})
}

// Send enqueues payload. A client too slow to keep up is disconnected.
func (c *Connection) Send(payload []byte) error {
	select {
	case <-c.close:
		return errConnClosed
	default:
	}

	select {
	case <-c.close:
		return errConnClosed
	case c.send <- payload:
		return nil
	default:
		c.Close(websocket.CloseGoingAway, "send buffer full")
		return errBufferExceeded
	}
}

// Done is closed once the connection is closed
func (c *Connection) Done() <-chan struct{} {
	return c.close
}

// Close terminates the connection and stops the write loop
func (c *Connection) Close(code int, reason string) {
	c.once.Do(func() {
		close(c.close)
		_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(writeWait))
		_ = c.ws.Close()
	})
}

// ReadLoop consumes inbound frames until the peer goes away. The hub only
// pushes, so inbound payloads are discarded.
func (c *Connection) ReadLoop() {
	c.ws.SetReadLimit(512)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Connection) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.close:
			return
		case msg := <-c.send:
			if err := c.write(websocket.TextMessage, msg); err != nil {
				c.Close(websocket.CloseAbnormalClosure, "write failed")
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				c.Close(websocket.CloseAbnormalClosure, "ping failed")
				return
			}
		}
	}
}

func (c *Connection) write(messageType int, payload []byte) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(messageType, payload)
}
