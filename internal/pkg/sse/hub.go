package sse

import (
	"sync"
)

// Event is a server-sent event pushed to live dashboard subscribers.
type Event struct {
	Event string
	Data  interface{}
}

// Hub broadcasts attendance events to every subscriber. Unlike a per-user
// inbox, presence changes are interesting to all connected dashboards, so
// there is a single subscriber set.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan Event]struct{}),
	}
}

// Subscribe registers a subscriber and returns its event channel and a
// cleanup function. The cleanup closes the channel; callers must stop
// reading after invoking it.
func (h *Hub) Subscribe() (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 16)
	h.subscribers[ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
	}

	return ch, cleanup
}

// Broadcast sends an event to all subscribers. Slow subscribers with a full
// channel are skipped rather than blocking the attendance write path.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of connected subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
