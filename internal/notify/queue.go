// Package notify holds the session's short-lived user messages.
//
// The queue is process-wide for the active session: handlers push into
// it from any goroutine and the UI polls read-only snapshots. Each
// notification expires on its own timer; there is no cap on queue
// depth, the 5 s TTL keeps it short for this workload.
package notify

import (
	"sync"
	"time"
)

// DefaultTTL is how long a notification stays visible unless
// dismissed earlier.
const DefaultTTL = 5000 * time.Millisecond

// Severity classifies a notification for display.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notification is one transient user-facing message.
type Notification struct {
	ID       int64     `json:"id"`
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
	PushedAt time.Time `json:"pushed_at"`
}

// Queue is a time-expiring notification queue.
// The zero value is not usable; call New.
type Queue struct {
	mu     sync.Mutex
	ttl    time.Duration
	nextID int64
	items  []Notification
	timers map[int64]*time.Timer
}

// New creates a queue whose notifications expire after ttl.
// A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{
		ttl:    ttl,
		nextID: time.Now().UnixMilli(),
		timers: make(map[int64]*time.Timer),
	}
}

// Push appends a notification and arms its expiry timer.
// It never blocks; the returned id can be used for early dismissal.
func (q *Queue) Push(message string, severity Severity) int64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	// Ids are monotonic even when two pushes land in the same
	// millisecond.
	q.nextID++
	id := q.nextID

	q.items = append(q.items, Notification{
		ID:       id,
		Message:  message,
		Severity: severity,
		PushedAt: time.Now(),
	})
	q.timers[id] = time.AfterFunc(q.ttl, func() {
		q.Dismiss(id)
	})
	return id
}

// Dismiss removes a notification before (or at) expiry. Dismissing an
// id that is already gone is a no-op, so the expiry timer and a manual
// dismissal can race safely: whichever runs first wins.
func (q *Queue) Dismiss(id int64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// Snapshot returns the live notifications, oldest first.
// The returned slice is the caller's to keep.
func (q *Queue) Snapshot() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Len reports the number of live notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
