// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package eheap

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	id     ids.ID
	expiry int64
}

func (i *testItem) ID() ids.ID    { return i.id }
func (i *testItem) Expiry() int64 { return i.expiry }

func TestSetMin(t *testing.T) {
	require := require.New(t)

	eh := New[*testItem]()
	items := []*testItem{
		{id: ids.GenerateTestID(), expiry: 30},
		{id: ids.GenerateTestID(), expiry: 10},
		{id: ids.GenerateTestID(), expiry: 20},
	}
	for _, item := range items {
		eh.Add(item)
	}
	require.Equal(3, eh.Len())
	require.True(eh.Has(items[1].id))

	removed := eh.SetMin(21)
	require.Equal([]*testItem{items[1], items[2]}, removed)
	require.False(eh.Has(items[1].id))
	require.True(eh.Has(items[0].id))

	require.Empty(eh.SetMin(30))
	require.Equal(1, eh.Len())
}
