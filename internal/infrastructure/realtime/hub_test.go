package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aseeltahaa/smartspace/internal/infrastructure/events"
)

func TestHubForwardsBusEvents(t *testing.T) {
	hub := NewHub(nil)
	bus := events.NewBus(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		conn := NewConnection("u1", ws)
		hub.Attach(conn)
		defer hub.Detach(conn)
		conn.ReadLoop()
	}))
	defer srv.Close()
	defer hub.Close()

	go hub.Forward(ctx, bus, events.TopicUnreadCount)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.Count() != 1 {
		t.Fatalf("connection not attached")
	}

	// Forward subscribes asynchronously; keep publishing until a frame arrives.
	got := make(chan events.Event, 1)
	go func() {
		_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, msg, err := client.ReadMessage()
		if err != nil {
			return
		}
		var ev events.Event
		if json.Unmarshal(msg, &ev) == nil {
			got <- ev
		}
	}()

	for i := 0; i < 40; i++ {
		bus.Publish(events.TopicUnreadCount, 7)
		select {
		case ev := <-got:
			if ev.Topic != events.TopicUnreadCount || ev.Payload.(float64) != 7 {
				t.Fatalf("frame = %+v", ev)
			}
			return
		case <-time.After(50 * time.Millisecond):
		}
	}
	t.Fatal("no frame received")
}

func TestConnectionStartTwiceKeepsOneWriter(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Close()

	attached := make(chan *Connection, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		conn := NewConnection("u1", ws)
		hub.Attach(conn)
		conn.Start()
		defer hub.Detach(conn)
		attached <- conn
		conn.ReadLoop()
	}))
	defer srv.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	var conn *Connection
	select {
	case conn = <-attached:
	case <-time.After(2 * time.Second):
		t.Fatal("connection not attached")
	}

	const burst = 16
	seq := 0
	for round := 0; round < 300; round++ {
		for i := 0; i < burst; i++ {
			if err := conn.Send([]byte(strconv.Itoa(seq + i))); err != nil {
				t.Fatalf("send: %v", err)
			}
		}
		for i := 0; i < burst; i++ {
			_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
			_, msg, err := client.ReadMessage()
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if string(msg) != strconv.Itoa(seq) {
				t.Fatalf("frame %s, want %d", msg, seq)
			}
			seq++
		}
	}
}
