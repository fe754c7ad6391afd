package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesTopicSubscribers(t *testing.T) {
	hub := NewHub(4)
	mine, cleanupMine := hub.Subscribe("e1")
	defer cleanupMine()
	other, cleanupOther := hub.Subscribe("e2")
	defer cleanupOther()

	hub.Publish(Event{Topic: "e1", Name: "attendance.clock_in", Data: "x"})

	require.Len(t, mine, 1)
	ev := <-mine
	assert.Equal(t, "attendance.clock_in", ev.Name)
	assert.Len(t, other, 0)
}

func TestHub_PublishToManyDeliversOnce(t *testing.T) {
	hub := NewHub(4)
	ch, cleanup := hub.Subscribe("e1", "reviewers")
	defer cleanup()

	hub.PublishToMany([]string{"e1", "reviewers"}, Event{Name: "n"})

	assert.Len(t, ch, 1)
	assert.Equal(t, 1, hub.TotalSubscribers())
	assert.Equal(t, 1, hub.SubscriberCount("reviewers"))
}

func TestHub_FullChannelDoesNotBlock(t *testing.T) {
	hub := NewHub(1)
	ch, cleanup := hub.Subscribe("e1")
	defer cleanup()

	hub.Publish(Event{Topic: "e1", Name: "a"})
	hub.Publish(Event{Topic: "e1", Name: "b"})

	assert.Len(t, ch, 1)
}

func TestHub_CleanupIsIdempotent(t *testing.T) {
	hub := NewHub(1)
	_, cleanup := hub.Subscribe("e1", "e2")

	cleanup()
	cleanup()

	assert.Equal(t, 0, hub.TotalSubscribers())
	assert.Equal(t, 0, hub.SubscriberCount("e1"))
}
