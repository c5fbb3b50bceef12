// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package list is a generic doubly linked list supporting O(1) removal of
// any element, used for FIFO queues that also drop items out of order.
package list

type List[T any] struct {
	root Element[T] // sentinel; root.next is the front
	size int
}

type Element[T any] struct {
	prev, next *Element[T]
	list       *List[T]

	Value T
}

// Next returns the element behind [e], or nil at the back.
func (e *Element[T]) Next() *Element[T] {
	if e.list == nil || e.next == &e.list.root {
		return nil
	}
	return e.next
}

func (l *List[T]) lazyInit() {
	if l.root.next == nil {
		l.root.next = &l.root
		l.root.prev = &l.root
	}
}

// Front returns the oldest element, or nil when empty.
func (l *List[T]) Front() *Element[T] {
	if l.size == 0 {
		return nil
	}
	return l.root.next
}

// PushBack appends [v] and returns its element.
func (l *List[T]) PushBack(v T) *Element[T] {
	l.lazyInit()
	e := &Element[T]{Value: v, list: l}
	at := l.root.prev
	e.prev = at
	e.next = &l.root
	at.next = e
	l.root.prev = e
	l.size++
	return e
}

// Remove unlinks [e] if it belongs to [l] and returns its value.
func (l *List[T]) Remove(e *Element[T]) T {
	if e.list == l {
		e.prev.next = e.next
		e.next.prev = e.prev
		e.prev, e.next, e.list = nil, nil, nil
		l.size--
	}
	return e.Value
}

func (l *List[T]) Len() int {
	return l.size
}
