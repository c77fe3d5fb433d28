package accesslog

import (
	"errors"
	"sync"
)

// ErrQueueClosed is returned by Send after Close. The server never closes
// the queue, so a handler seeing this is a logic error scoped to that one
// connection.
var ErrQueueClosed = errors.New("accesslog: queue closed")

// Queue is an unbounded multi-producer single-consumer FIFO of log events.
// Send never blocks, whatever the backlog; the trade of memory growth under
// extreme load for non-blocking producers is deliberate. Events are
// delivered to the single consumer strictly in arrival order, which may
// differ from wall-clock connection order when two handlers race to submit.
type Queue struct {
	mu     sync.Mutex
	events []Event
	closed bool
	// wake has capacity 1: a dropped token is fine because the consumer
	// drains the backlog before sleeping again.
	wake chan struct{}
}

// NewQueue returns an empty open queue.
func NewQueue() *Queue {
	return &Queue{wake: make(chan struct{}, 1)}
}

// Send appends one event. It never blocks.
func (q *Queue) Send(e Event) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	q.events = append(q.events, e)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return nil
}

// Recv blocks until an event is available and returns it, or returns false
// once the queue is closed and drained. Only the single consumer may call
// Recv.
func (q *Queue) Recv() (Event, bool) {
	for {
		q.mu.Lock()
		if len(q.events) > 0 {
			e := q.events[0]
			q.events = q.events[1:]
			q.mu.Unlock()
			return e, true
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return Event{}, false
		}
		<-q.wake
	}
}

// Close marks the queue closed. Pending events are still delivered. The
// server holds the send side for its whole lifetime and never calls this;
// it exists so tests can run the consumer to completion.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Len reports the current backlog.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
