package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub()

	first, cleanupFirst := hub.Subscribe("user-1")
	defer cleanupFirst()
	second, cleanupSecond := hub.Subscribe("user-1")
	defer cleanupSecond()

	hub.Publish("user-1", Event{UserID: "user-1", Event: "ping"})

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "ping", (<-first).Event)
}

func TestPublishIsScopedToUser(t *testing.T) {
	hub := NewHub()

	other, cleanup := hub.Subscribe("user-2")
	defer cleanup()

	hub.Publish("user-1", Event{UserID: "user-1", Event: "ping"})
	assert.Len(t, other, 0)
}

func TestCleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("user-1")
	assert.Equal(t, 1, hub.SubscriberCount("user-1"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("user-1"))

	// publishing after cleanup must not panic
	hub.Publish("user-1", Event{UserID: "user-1", Event: "ping"})
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	for i := 0; i < cap(ch)+5; i++ {
		hub.Publish("user-1", Event{UserID: "user-1", Event: "ping"})
	}
	assert.Len(t, ch, cap(ch))
}
