// Package pqueue provides a binary max-heap whose ordering is supplied by
// the caller rather than by the element type.
package pqueue

import "container/heap"

// Higher reports whether a should leave the queue before b.
type Higher[T any] func(a, b T) bool

// Queue is a max-priority queue. Not safe for concurrent use.
type Queue[T any] struct {
	h items[T]
}

// New creates an empty queue ordered by higher.
func New[T any](higher Higher[T]) *Queue[T] {
	return &Queue[T]{h: items[T]{higher: higher}}
}

// Build creates a queue holding items in linear time. The slice is copied.
func Build[T any](items []T, higher Higher[T]) *Queue[T] {
	q := New[T](higher)
	q.h.data = make([]T, len(items))
	copy(q.h.data, items)
	heap.Init(&q.h)
	return q
}

// Push adds x.
func (q *Queue[T]) Push(x T) {
	heap.Push(&q.h, x)
}

// Pop removes and returns the highest element. ok is false when empty.
func (q *Queue[T]) Pop() (x T, ok bool) {
	if q.h.Len() == 0 {
		return x, false
	}
	return heap.Pop(&q.h).(T), true
}

// Peek returns the highest element without removing it.
func (q *Queue[T]) Peek() (x T, ok bool) {
	if q.h.Len() == 0 {
		return x, false
	}
	return q.h.data[0], true
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int { return q.h.Len() }

// Empty reports whether the queue holds nothing.
func (q *Queue[T]) Empty() bool { return q.h.Len() == 0 }

// items implements heap.Interface; Less is inverted through higher so the
// heap root is the maximum.
type items[T any] struct {
	data   []T
	higher Higher[T]
}

func (h items[T]) Len() int           { return len(h.data) }
func (h items[T]) Less(i, j int) bool { return h.higher(h.data[i], h.data[j]) }
func (h items[T]) Swap(i, j int)      { h.data[i], h.data[j] = h.data[j], h.data[i] }

func (h *items[T]) Push(x any) {
	h.data = append(h.data, x.(T))
}

func (h *items[T]) Pop() any {
	old := h.data
	n := len(old)
	x := old[n-1]
	var zero T
	old[n-1] = zero // avoid memory leak
	h.data = old[:n-1]
	return x
}
