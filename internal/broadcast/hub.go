// Package broadcast implements the in-process fan-out channel that pushes
// enriched resource snapshots to connected listeners. The hub is an explicit
// dependency handed to every component that needs to notify listeners (the
// resource service after a quantity update, the snapshot scheduler after a
// firing) rather than ambient global state.
package broadcast

import (
	"sync"
	"time"
)

// Event names pushed over the channel.
const (
	EventWelcome = "welcome"
	EventInitial = "resources:initial"
	EventUpdate  = "resources:update"
)

// Event is one message delivered to every connected listener.
type Event struct {
	Name    string `json:"event"`
	Payload any    `json:"payload"`
}

// UpdatePayload is the body of a resources:update event: the full enriched
// resource list plus the timestamp of the change or scheduled firing.
type UpdatePayload struct {
	Resources any       `json:"resources"`
	Timestamp time.Time `json:"timestamp"`
}

// subscriberBuffer bounds each listener's queue. A listener that falls this
// far behind starts losing events; every update carries the full list, so a
// later event supersedes anything dropped.
const subscriberBuffer = 8

// Hub fans events out to all current subscribers. Safe for concurrent use.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a listener and returns its event channel together with
// an unsubscribe function. The unsubscribe function is idempotent and closes
// the channel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber without blocking: a listener
// whose buffer is full has the event dropped.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Len reports the number of connected listeners.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
