// Package queue provides a lock-free multi-producer queue. The battle
// log feed uses it so finished games never block on the reader.
package queue

import (
	"runtime"
	"sync/atomic"
)

type Queue[T any] struct {
	head atomic.Pointer[node[T]]
	tail atomic.Pointer[node[T]]
}

type node[T any] struct {
	next    atomic.Pointer[node[T]]
	element T
}

func New[T any]() *Queue[T] {
	n := &node[T]{}
	q := &Queue[T]{}
	q.head.Store(n)
	q.tail.Store(n)
	return q
}

func (q *Queue[T]) Push(v T) {
	n := &node[T]{element: v}
	prev := q.head.Swap(n)
	prev.next.Store(n)
}

func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	for {
		tail := q.tail.Load()
		next := tail.next.Load()
		if tail != q.tail.Load() {
			runtime.Gosched()
			continue
		}

		if next == nil {
			return zero, false
		}

		if q.tail.CompareAndSwap(tail, next) {
			el := next.element
			next.element = zero
			return el, true
		}
		runtime.Gosched()
	}
}

// Poll returns the front element without removing it.
func (q *Queue[T]) Poll() (T, bool) {
	var zero T
	for {
		tail := q.tail.Load()
		next := tail.next.Load()
		if tail != q.tail.Load() {
			runtime.Gosched()
			continue
		}

		if next == nil {
			return zero, false
		}
		return next.element, true
	}
}

func (q *Queue[T]) Empty() bool {
	tail := q.tail.Load()
	return tail.next.Load() == nil
}

// Drain pops every queued element into a slice.
func (q *Queue[T]) Drain() []T {
	var out []T
	for {
		v, ok := q.Pop()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}
