package host

import (
	"sync/atomic"

	"github.com/rook-computer/pixelsky/internal/sky"
)

// Queue carries events from other goroutines (web handlers, key readers)
// into the frame loop without blocking the sender.
type Queue struct {
	ch     chan sky.Event
	closed atomic.Bool
}

func NewQueue(size int) *Queue {
	return &Queue{ch: make(chan sky.Event, max(size, 1))}
}

// Post queues ev. It returns false when the queue is full or closed.
func (q *Queue) Post(ev sky.Event) bool {
	if q.closed.Load() {
		return false
	}
	select {
	case q.ch <- ev:
		return true
	default:
		return false
	}
}

// Drain hands every queued event to fn, in order, without waiting for more.
func (q *Queue) Drain(fn func(sky.Event)) {
	for {
		select {
		case ev := <-q.ch:
			fn(ev)
		default:
			return
		}
	}
}

// Close rejects further posts. Already queued events can still be drained.
func (q *Queue) Close() { q.closed.Store(true) }

func (q *Queue) Cap() int { return cap(q.ch) }
