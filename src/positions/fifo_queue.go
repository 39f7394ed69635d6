package positions

import (
	log "github.com/sirupsen/logrus"
)

// FIFOQueue is an ordered queue owned by a single matching pass. It is not
// safe for concurrent use.
type FIFOQueue[T any] struct {
	caller string
	items  []T
}

func NewFIFOQueue[T any](caller string) *FIFOQueue[T] {
	return &FIFOQueue[T]{
		caller: caller,
		items:  make([]T, 0),
	}
}

func (q *FIFOQueue[T]) Enqueue(item T) {
	q.items = append(q.items, item)
	log.Tracef("%v (%p): Enqueued item: %v, count=%v", q.caller, q, item, len(q.items))
}

// Peek returns the oldest item without removing it.
func (q *FIFOQueue[T]) Peek() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}

	return q.items[0], true
}

func (q *FIFOQueue[T]) Dequeue() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		log.Tracef("%v (%p): Dequeue on empty queue", q.caller, q)
		return zero, false
	}

	item := q.items[0]

	var zero T
	q.items[0] = zero
	q.items = q.items[1:]

	log.Tracef("%v (%p): Dequeued item: %v, count=%v", q.caller, q, item, len(q.items))

	return item, true
}

func (q *FIFOQueue[T]) Len() int {
	return len(q.items)
}

// Items returns the queued items, oldest first. The slice must not be modified.
func (q *FIFOQueue[T]) Items() []T {
	return q.items
}
