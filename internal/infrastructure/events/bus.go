package events

import (
	"sync"
	"time"
)

// Topics published by the use cases
const (
	TopicUnreadCount     = "notifications.unread"
	TopicCatalogRevision = "catalog.revision"
)

// Event is one published value
type Event struct {
	Topic   string      `json:"type"`
	Payload interface{} `json:"data"`
	At      time.Time   `json:"at"`
}

// Bus is an in-process fan-out of topic events. Delivery is non-blocking: a
// subscriber whose buffer is full misses the event, but Last always reports
// the newest value of a topic.
type Bus struct {
	mu     sync.RWMutex
	subs   map[string]map[int]chan Event
	last   map[string]Event
	nextID int
	buffer int
}

// NewBus creates a bus whose subscriptions buffer up to buffer events
func NewBus(buffer int) *Bus {
	if buffer < 1 {
		buffer = 1
	}
	return &Bus{
		subs:   make(map[string]map[int]chan Event),
		last:   make(map[string]Event),
		buffer: buffer,
	}
}

// Publish records payload as the newest value of topic and fans it out
func (b *Bus) Publish(topic string, payload interface{}) {
	ev := Event{Topic: topic, Payload: payload, At: time.Now().UTC()}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.last[topic] = ev
	for _, ch := range b.subs[topic] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Last returns the newest event of topic, if any
func (b *Bus) Last(topic string) (Event, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ev, ok := b.last[topic]
	return ev, ok
}

// Subscribe returns a channel of events for the given topics and a cancel
// function that closes it.
func (b *Bus) Subscribe(topics ...string) (<-chan Event, func()) {
	ch := make(chan Event, b.buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	for _, t := range topics {
		if b.subs[t] == nil {
			b.subs[t] = make(map[int]chan Event)
		}
		b.subs[t][id] = ch
	}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			for _, t := range topics {
				delete(b.subs[t], id)
				if len(b.subs[t]) == 0 {
					delete(b.subs, t)
				}
			}
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}
