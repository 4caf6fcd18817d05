package touch

import "sync/atomic"

// Queue is a bounded queue of touch events between one producer and one
// consumer. When full, the oldest event is dropped to make room; the producer
// never blocks.
type Queue struct {
	ch      chan Event
	dropped atomic.Uint64
}

// NewQueue returns a queue holding up to size events.
func NewQueue(size int) *Queue {
	return &Queue{ch: make(chan Event, max(size, 1))}
}

// Push an event, dropping the oldest one if the queue is full.
func (q *Queue) Push(e Event) {
	for {
		select {
		case q.ch <- e:
			return
		default:
		}
		select {
		case <-q.ch:
			q.dropped.Add(1)
		default:
		}
	}
}

// C returns the channel events are received from.
func (q *Queue) C() <-chan Event {
	return q.ch
}

// Drain appends all queued events to dst without blocking.
func (q *Queue) Drain(dst []Event) []Event {
	for {
		select {
		case e := <-q.ch:
			dst = append(dst, e)
		default:
			return dst
		}
	}
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	return len(q.ch)
}

// Dropped returns the number of events dropped so far.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
