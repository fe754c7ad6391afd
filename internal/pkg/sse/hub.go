package sse

import (
	"sync"
)

// Event is one server-sent event. Name becomes the "event:" line and Data is
// JSON-encoded into the "data:" line.
type Event struct {
	Topic string
	Name  string
	Data  interface{}
}

// Hub fans events out to subscribers grouped by topic. A topic is an
// employee id or a shared channel such as the reviewers feed.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
	bufferSize  int
}

func NewHub(bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = 16
	}
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
		bufferSize:  bufferSize,
	}
}

// Subscribe registers a channel on every topic and returns it with its cleanup function.
func (h *Hub) Subscribe(topics ...string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.bufferSize)
	for _, topic := range topics {
		if h.subscribers[topic] == nil {
			h.subscribers[topic] = make(map[chan Event]struct{})
		}
		h.subscribers[topic][ch] = struct{}{}
	}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			for _, topic := range topics {
				delete(h.subscribers[topic], ch)
				if len(h.subscribers[topic]) == 0 {
					delete(h.subscribers, topic)
				}
			}
			close(ch)
		})
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of its topic. Full channels are skipped.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[event.Topic] {
		select {
		case ch <- event:
		default:
		}
	}
}

// PublishToMany sends one event to several topics. A channel subscribed to
// more than one of them receives it once.
func (h *Hub) PublishToMany(topics []string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := make(map[chan Event]struct{})
	for _, topic := range topics {
		for ch := range h.subscribers[topic] {
			if _, ok := sent[ch]; ok {
				continue
			}
			sent[ch] = struct{}{}
			e := event
			e.Topic = topic
			select {
			case ch <- e:
			default:
			}
		}
	}
}

// SubscriberCount returns the number of active subscribers of a topic
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[topic])
}

// TotalSubscribers returns the number of distinct subscriber channels
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[chan Event]struct{})
	for _, subs := range h.subscribers {
		for ch := range subs {
			seen[ch] = struct{}{}
		}
	}
	return len(seen)
}
