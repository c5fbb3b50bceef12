// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package eheap

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/heap"
)

// Item is anything identified by an ID that stops mattering after Expiry.
type Item interface {
	ID() ids.ID
	Expiry() int64
}

// ExpiryHeap tracks items by ID until their expiry passes. The VM uses it
// to remember accepted transactions for as long as a replay could still
// be valid. It is not safe for concurrent use.
type ExpiryHeap[T Item] struct {
	minHeap heap.Map[ids.ID, T]
}

func New[T Item]() *ExpiryHeap[T] {
	return &ExpiryHeap[T]{
		minHeap: heap.NewMap[ids.ID, T](func(a, b T) bool {
			return a.Expiry() < b.Expiry()
		}),
	}
}

// Add tracks [item]. Adding an ID twice keeps the latest item.
func (eh *ExpiryHeap[T]) Add(item T) {
	eh.minHeap.Push(item.ID(), item)
}

func (eh *ExpiryHeap[T]) Has(id ids.ID) bool {
	return eh.minHeap.Contains(id)
}

func (eh *ExpiryHeap[T]) Len() int {
	return eh.minHeap.Len()
}

// SetMin forgets every item expiring before [t] and returns them.
func (eh *ExpiryHeap[T]) SetMin(t int64) []T {
	removed := []T{}
	for {
		_, item, ok := eh.minHeap.Peek()
		if !ok || item.Expiry() >= t {
			return removed
		}
		eh.minHeap.Pop()
		removed = append(removed, item)
	}
}
