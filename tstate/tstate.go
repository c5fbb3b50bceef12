// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"

	"github.com/ava-labs/philosophersvm/state"
)

var _ state.Immutable = (*TState)(nil)

// TState holds the changes made by all committed transactions of a block
// on top of the persisted [state.Immutable]. Nothing reaches disk until
// [TState.WriteChanges] is called.
type TState struct {
	l           sync.RWMutex
	base        state.Immutable
	changedKeys map[string]maybe.Maybe[[]byte]
	ops         int
}

// New returns a new instance of TState.
//
// [changedSize] is an estimate of the number of keys that will be changed.
func New(base state.Immutable, changedSize int) *TState {
	return &TState{
		base:        base,
		changedKeys: make(map[string]maybe.Maybe[[]byte], changedSize),
	}
}

func (ts *TState) getChangedValue(_ context.Context, key string) ([]byte, bool, bool) {
	ts.l.RLock()
	defer ts.l.RUnlock()

	if v, ok := ts.changedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false
		}
		return v.Value(), true, true
	}
	return nil, false, false
}

// GetValue returns the latest committed value of [key].
func (ts *TState) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	if v, changed, exists := ts.getChangedValue(ctx, string(key)); changed {
		if !exists {
			return nil, database.ErrNotFound
		}
		return v, nil
	}
	return ts.base.GetValue(ctx, key)
}

// PendingChanges returns the number of keys changed by committed views.
func (ts *TState) PendingChanges() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return len(ts.changedKeys)
}

// OpIndex returns the number of operations committed to ts.
func (ts *TState) OpIndex() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return ts.ops
}

// WriteChanges flushes every changed key into [w].
//
// Once [WriteChanges] is called, [TState] should not be used
// again (as the bytes stored are consumed).
func (ts *TState) WriteChanges(w database.KeyValueWriterDeleter) error {
	ts.l.Lock()
	defer ts.l.Unlock()

	for k, v := range ts.changedKeys {
		if v.IsNothing() {
			if err := w.Delete([]byte(k)); err != nil {
				return err
			}
			continue
		}
		if err := w.Put([]byte(k), v.Value()); err != nil {
			return err
		}
	}
	return nil
}
