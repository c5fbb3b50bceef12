// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mempool

import (
	"context"
	"errors"
	"sync"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"

	"github.com/ava-labs/philosophersvm/internal/list"
)

var (
	ErrDuplicate = errors.New("already in mempool")
	ErrFull      = errors.New("mempool is full")
)

//go:generate go run go.uber.org/mock/mockgen -package=${GOPACKAGE}mock -destination=${GOPACKAGE}mock/item.go -mock_names=Item=MockItem . Item

type Item interface {
	ID() ids.ID
	Expiry() int64
}

// Mempool is a bounded FIFO queue of pending items. Items leave in the
// order they arrived.
type Mempool[T Item] struct {
	tracer trace.Tracer

	mu      sync.Mutex
	maxSize int
	queue   list.List[T]
	index   map[ids.ID]*list.Element[T]
}

func New[T Item](tracer trace.Tracer, maxSize int) *Mempool[T] {
	return &Mempool[T]{
		tracer:  tracer,
		maxSize: maxSize,
		index:   make(map[ids.ID]*list.Element[T], min(maxSize, 1_024)),
	}
}

// Add enqueues [item] behind every item already pending.
func (m *Mempool[T]) Add(ctx context.Context, item T) error {
	_, span := m.tracer.Start(ctx, "Mempool.Add")
	defer span.End()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.index[item.ID()]; ok {
		return ErrDuplicate
	}
	if m.queue.Len() >= m.maxSize {
		return ErrFull
	}
	m.index[item.ID()] = m.queue.PushBack(item)
	return nil
}

func (m *Mempool[T]) Has(ctx context.Context, id ids.ID) bool {
	_, span := m.tracer.Start(ctx, "Mempool.Has")
	defer span.End()

	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.index[id]
	return ok
}

func (m *Mempool[T]) Len(context.Context) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.queue.Len()
}

// PopN removes and returns up to [n] of the oldest items.
func (m *Mempool[T]) PopN(ctx context.Context, n int) []T {
	_, span := m.tracer.Start(ctx, "Mempool.PopN")
	defer span.End()

	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]T, 0, min(n, m.queue.Len()))
	for len(items) < n {
		e := m.queue.Front()
		if e == nil {
			break
		}
		items = append(items, m.remove(e))
	}
	return items
}

// SetMinTimestamp drops every item expiring before [t] and returns the
// dropped items.
func (m *Mempool[T]) SetMinTimestamp(ctx context.Context, t int64) []T {
	_, span := m.tracer.Start(ctx, "Mempool.SetMinTimestamp")
	defer span.End()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := []T{}
	for e := m.queue.Front(); e != nil; {
		next := e.Next()
		if e.Value.Expiry() < t {
			removed = append(removed, m.remove(e))
		}
		e = next
	}
	return removed
}

func (m *Mempool[T]) remove(e *list.Element[T]) T {
	item := m.queue.Remove(e)
	delete(m.index, item.ID())
	return item
}
