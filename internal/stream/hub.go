// Package stream fans comment events out to SSE subscribers, grouped by
// post. Events reach the hub from the comments change stream (inserts)
// and from the cascade delete path; viewers of a post see both without
// polling.
package stream

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
)

const (
	EventCommentCreated  = "comment_created"
	EventCommentsDeleted = "comments_deleted"
)

type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type Hub struct {
	mu sync.RWMutex
	// subscribers per post id (hex)
	subs map[string]map[chan []byte]bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan []byte]bool)}
}

// Subscribe registers a listener for one post's events. The returned
// channel is buffered; a subscriber that stops draining is dropped on
// the next broadcast instead of blocking everyone else.
func (h *Hub) Subscribe(postID string) chan []byte {
	ch := make(chan []byte, 16)
	h.mu.Lock()
	if h.subs[postID] == nil {
		h.subs[postID] = make(map[chan []byte]bool)
	}
	h.subs[postID][ch] = true
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(postID string, ch chan []byte) {
	h.mu.Lock()
	if set, ok := h.subs[postID]; ok {
		delete(set, ch)
		if len(set) == 0 {
			delete(h.subs, postID)
		}
	}
	h.mu.Unlock()
	close(ch)
}

// Broadcast sends an event to every subscriber of a post, formatted as
// an SSE frame.
func (h *Hub) Broadcast(postID string, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[stream] marshal event: %v", err)
		return
	}
	frame := []byte(fmt.Sprintf("event: comment\ndata: %s\n\n", data))

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[postID] {
		select {
		case ch <- frame:
		default:
			// Slow consumer; skip. It will be cleaned up when its
			// connection handler unsubscribes.
		}
	}
}

// Subscribers reports the current listener count for a post.
func (h *Hub) Subscribers(postID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[postID])
}
