package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_BroadcastReachesAllSubscribers(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe()
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe()
	defer cleanup2()

	assert.Equal(t, 2, hub.SubscriberCount())

	hub.Broadcast(Event{Event: "presence_changed", Data: map[string]string{"user_id": "u1"}})

	e1 := <-ch1
	e2 := <-ch2
	assert.Equal(t, "presence_changed", e1.Event)
	assert.Equal(t, "presence_changed", e2.Event)
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe()
	cleanup()

	assert.Equal(t, 0, hub.SubscriberCount())

	// Second cleanup is a no-op, not a panic.
	cleanup()
}

func TestHub_FullSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe()
	defer cleanup()

	// Fill the buffered channel without draining.
	for i := 0; i < cap(ch)+5; i++ {
		hub.Broadcast(Event{Event: "ping"})
	}

	assert.Equal(t, cap(ch), len(ch))
}
