package operations

import "sync"

// subscriberBuffer bounds how many snapshots a slow subscriber can lag
// behind before updates are dropped for it.
const subscriberBuffer = 16

// ProgressTracker fans operation snapshots out to subscribers. Sends
// never block: a subscriber that falls behind misses intermediate
// snapshots, not the channel.
type ProgressTracker struct {
	mu          sync.Mutex
	subscribers map[chan OperationSnapshot]struct{}
}

// NewProgressTracker creates an empty tracker.
func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{
		subscribers: make(map[chan OperationSnapshot]struct{}),
	}
}

// Subscribe registers a new subscriber. The returned cancel function
// unregisters it and closes the channel.
func (t *ProgressTracker) Subscribe() (<-chan OperationSnapshot, func()) {
	ch := make(chan OperationSnapshot, subscriberBuffer)

	t.mu.Lock()
	t.subscribers[ch] = struct{}{}
	t.mu.Unlock()

	cancel := func() {
		t.mu.Lock()
		if _, ok := t.subscribers[ch]; ok {
			delete(t.subscribers, ch)
			close(ch)
		}
		t.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers a snapshot to every subscriber.
func (t *ProgressTracker) Publish(snapshot OperationSnapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for ch := range t.subscribers {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (t *ProgressTracker) SubscriberCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subscribers)
}
