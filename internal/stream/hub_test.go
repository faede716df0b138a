package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscribeBroadcastUnsubscribe(t *testing.T) {
	hub := NewHub()

	ch := hub.Subscribe("post1")
	assert.Equal(t, 1, hub.Subscribers("post1"))

	hub.Broadcast("post1", Event{Type: EventCommentCreated, Payload: "hello"})

	frame := <-ch
	assert.Contains(t, string(frame), "event: comment")
	assert.Contains(t, string(frame), EventCommentCreated)

	hub.Unsubscribe("post1", ch)
	assert.Equal(t, 0, hub.Subscribers("post1"))
	_, open := <-ch
	assert.False(t, open)
}

func TestBroadcastIsScopedToPost(t *testing.T) {
	hub := NewHub()

	a := hub.Subscribe("postA")
	b := hub.Subscribe("postB")
	defer hub.Unsubscribe("postA", a)
	defer hub.Unsubscribe("postB", b)

	hub.Broadcast("postA", Event{Type: EventCommentCreated})

	assert.Len(t, a, 1)
	assert.Len(t, b, 0)
}

func TestSlowConsumerDoesNotBlock(t *testing.T) {
	hub := NewHub()

	ch := hub.Subscribe("post1")
	defer hub.Unsubscribe("post1", ch)

	// Overfill the buffer; extra broadcasts must drop, not deadlock.
	for i := 0; i < 50; i++ {
		hub.Broadcast("post1", Event{Type: EventCommentsDeleted})
	}
	assert.Equal(t, 16, len(ch))
}
