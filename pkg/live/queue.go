package live

import "sync"

// PendingQueue holds messages waiting to be emitted by a TestFeed.
// It is safe for concurrent use.
type PendingQueue struct {
	mu    sync.Mutex
	items []string
}

func NewPendingQueue() *PendingQueue {
	return &PendingQueue{}
}

// Enqueue appends messages in order.
func (q *PendingQueue) Enqueue(msgs ...string) {
	q.mu.Lock()
	q.items = append(q.items, msgs...)
	q.mu.Unlock()
}

// DrainAll returns every queued message and empties the queue in one step,
// so a message is handed out at most once.
func (q *PendingQueue) DrainAll() []string {
	q.mu.Lock()
	items := q.items
	q.items = nil
	q.mu.Unlock()
	return items
}

func (q *PendingQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
