// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/philosophersvm/state"
)

var (
	key1 = []byte("key1")
	key2 = []byte("key2")
	key3 = []byte("key3")

	val1 = []byte("value1")
	val2 = []byte("value2")
	val3 = []byte("value3")
)

func newBase(t *testing.T) *memdb.Database {
	db := memdb.New()
	require.NoError(t, db.Put(key1, val1))
	return db
}

func TestGetValue(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	ts := New(state.NewReader(newBase(t)), 10)

	tsv := ts.NewView()
	v, err := tsv.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal(val1, v)

	_, err = tsv.GetValue(ctx, key2)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestInsertRemove(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	ts := New(state.NewReader(newBase(t)), 10)
	tsv := ts.NewView()

	require.NoError(tsv.Insert(ctx, key2, val2))
	v, err := tsv.GetValue(ctx, key2)
	require.NoError(err)
	require.Equal(val2, v)

	require.NoError(tsv.Remove(ctx, key1))
	_, err = tsv.GetValue(ctx, key1)
	require.ErrorIs(err, database.ErrNotFound)

	// removing a missing key is not recorded
	require.NoError(tsv.Remove(ctx, key3))
	require.Equal(2, tsv.OpIndex())
	require.Equal(2, tsv.PendingChanges())
}

func TestViewIsolation(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	ts := New(state.NewReader(newBase(t)), 10)

	a := ts.NewView()
	b := ts.NewView()
	require.NoError(a.Insert(ctx, key2, val2))

	_, err := b.GetValue(ctx, key2)
	require.ErrorIs(err, database.ErrNotFound)
	_, err = ts.GetValue(ctx, key2)
	require.ErrorIs(err, database.ErrNotFound)

	a.Commit()
	v, err := b.GetValue(ctx, key2)
	require.NoError(err)
	require.Equal(val2, v)
	require.Equal(1, ts.OpIndex())
}

func TestRollback(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	ts := New(state.NewReader(newBase(t)), 10)

	// committed by an earlier transaction
	prev := ts.NewView()
	require.NoError(prev.Insert(ctx, key3, val3))
	prev.Commit()

	tsv := ts.NewView()
	require.NoError(tsv.Insert(ctx, key1, val2))
	restore := tsv.OpIndex()
	require.NoError(tsv.Insert(ctx, key1, val3))
	require.NoError(tsv.Insert(ctx, key2, val2))
	require.NoError(tsv.Remove(ctx, key3))
	require.Equal(4, tsv.OpIndex())

	require.NoError(tsv.Rollback(ctx, restore))
	require.Equal(restore, tsv.OpIndex())

	v, err := tsv.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal(val2, v)
	_, err = tsv.GetValue(ctx, key2)
	require.ErrorIs(err, database.ErrNotFound)
	v, err = tsv.GetValue(ctx, key3)
	require.NoError(err)
	require.Equal(val3, v)

	require.NoError(tsv.Rollback(ctx, 0))
	v, err = tsv.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal(val1, v)
	require.Zero(tsv.PendingChanges())

	require.ErrorIs(tsv.Rollback(ctx, 5), ErrInvalidRestorePoint)
}

func TestRollbackRemoveThenInsert(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	ts := New(state.NewReader(newBase(t)), 10)
	tsv := ts.NewView()

	require.NoError(tsv.Remove(ctx, key1))
	require.NoError(tsv.Insert(ctx, key1, val2))
	require.NoError(tsv.Rollback(ctx, 1))

	_, err := tsv.GetValue(ctx, key1)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestWriteChanges(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := newBase(t)
	ts := New(state.NewReader(db), 10)

	tsv := ts.NewView()
	require.NoError(tsv.Remove(ctx, key1))
	require.NoError(tsv.Insert(ctx, key2, val2))
	tsv.Commit()

	discarded := ts.NewView()
	require.NoError(discarded.Insert(ctx, key3, val3))

	batch := db.NewBatch()
	require.NoError(ts.WriteChanges(batch))
	require.NoError(batch.Write())

	_, err := db.Get(key1)
	require.ErrorIs(err, database.ErrNotFound)
	v, err := db.Get(key2)
	require.NoError(err)
	require.Equal(val2, v)
	has, err := db.Has(key3)
	require.NoError(err)
	require.False(has)
}
