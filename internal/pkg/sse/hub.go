package sse

import (
	"sync"
)

// Event is a single server-sent event destined for one recipient.
type Event struct {
	RecipientID string
	Name        string
	Payload     interface{}
}

// Hub is the in-process subscriber registry: recipient id -> set of live
// channels. It is owned by one long-lived service instance and injected
// where publishing is needed.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a live connection for recipientID and returns the
// event channel plus a cleanup function to call on disconnect. An empty
// recipient set is pruned from the registry on cleanup.
func (h *Hub) Subscribe(recipientID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[recipientID] == nil {
		h.subscribers[recipientID] = make(map[chan Event]struct{})
	}
	h.subscribers[recipientID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[recipientID], ch)
		close(ch)
		if len(h.subscribers[recipientID]) == 0 {
			delete(h.subscribers, recipientID)
		}
	}

	return ch, cleanup
}

// Publish delivers an event to every live subscriber of one recipient.
// Delivery is best-effort: a full channel is skipped rather than blocked on.
func (h *Hub) Publish(recipientID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[recipientID]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
				// slow consumer, drop
			}
		}
	}
}

// PublishToMany delivers an event to multiple recipients.
func (h *Hub) PublishToMany(recipientIDs []string, event Event) {
	for _, id := range recipientIDs {
		eventCopy := event
		eventCopy.RecipientID = id
		h.Publish(id, eventCopy)
	}
}

// SubscriberCount returns the number of live subscribers for a recipient.
func (h *Hub) SubscriberCount(recipientID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[recipientID]; ok {
		return len(subs)
	}
	return 0
}

// TotalSubscribers returns the number of live subscribers across all recipients.
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
