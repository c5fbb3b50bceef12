// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package list

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func values(l *List[int]) []int {
	out := []int{}
	for e := l.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value)
	}
	return out
}

func TestList(t *testing.T) {
	require := require.New(t)

	var l List[int]
	require.Nil(l.Front())
	require.Zero(l.Len())

	one := l.PushBack(1)
	two := l.PushBack(2)
	l.PushBack(3)
	require.Equal([]int{1, 2, 3}, values(&l))

	require.Equal(2, l.Remove(two))
	require.Equal([]int{1, 3}, values(&l))
	require.Equal(2, l.Len())

	// Removing twice is a no-op.
	l.Remove(two)
	require.Equal(2, l.Len())

	l.Remove(one)
	require.Equal(3, l.Front().Value)
	require.Nil(l.Front().Next())
}

func TestRemoveForeignElement(t *testing.T) {
	require := require.New(t)

	var a, b List[string]
	e := a.PushBack("x")
	b.PushBack("y")
	b.Remove(e)
	require.Equal(1, a.Len())
	require.Equal(1, b.Len())
}
