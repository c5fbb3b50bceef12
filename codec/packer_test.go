// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/philosophersvm/consts"
)

func TestPackerRoundTrip(t *testing.T) {
	require := require.New(t)
	id := ids.GenerateTestID()
	addr := CreateAddress(0, id)

	wp := NewWriter(64, consts.NetworkSizeLimit)
	wp.PackByte(7)
	wp.PackBool(true)
	wp.PackUint64(1337)
	wp.PackInt64(-5)
	wp.PackID(id)
	wp.PackAddress(addr)
	wp.PackString("Greatest Philosopher")
	wp.PackBytes([]byte{1, 2, 3})
	wp.PackUint64s([]uint64{4, 5})
	require.NoError(wp.Err())

	rp := NewReader(wp.Bytes(), consts.NetworkSizeLimit)
	require.Equal(byte(7), rp.UnpackByte())
	require.True(rp.UnpackBool())
	require.Equal(uint64(1337), rp.UnpackUint64(true))
	require.Equal(int64(-5), rp.UnpackInt64(true))
	var gotID ids.ID
	rp.UnpackID(true, &gotID)
	require.Equal(id, gotID)
	var gotAddr Address
	rp.UnpackAddress(&gotAddr)
	require.Equal(addr, gotAddr)
	require.Equal("Greatest Philosopher", rp.UnpackString(true))
	var b []byte
	rp.UnpackBytes(-1, true, &b)
	require.Equal([]byte{1, 2, 3}, b)
	require.Equal([]uint64{4, 5}, rp.UnpackUint64s(10))
	require.True(rp.Empty())
	require.NoError(rp.Err())
}

func TestPackerRequiredUnpack(t *testing.T) {
	require := require.New(t)

	wp := NewWriter(8, consts.NetworkSizeLimit)
	wp.PackUint64(0)
	rp := NewReader(wp.Bytes(), consts.NetworkSizeLimit)
	require.Zero(rp.UnpackUint64(true))
	require.ErrorIs(rp.Err(), ErrFieldNotPopulated)
}

func TestPackerEmptyAddress(t *testing.T) {
	require := require.New(t)

	wp := NewWriter(AddressLen, consts.NetworkSizeLimit)
	wp.PackAddress(EmptyAddress)
	rp := NewReader(wp.Bytes(), consts.NetworkSizeLimit)
	var a Address
	rp.UnpackAddress(&a)
	require.ErrorIs(rp.Err(), ErrFieldNotPopulated)
}

func TestPackerUint64sLimit(t *testing.T) {
	require := require.New(t)

	wp := NewWriter(64, consts.NetworkSizeLimit)
	wp.PackUint64s([]uint64{1, 2, 3})
	require.Equal(Uint64sLen([]uint64{1, 2, 3}), len(wp.Bytes()))

	rp := NewReader(wp.Bytes(), consts.NetworkSizeLimit)
	require.Nil(rp.UnpackUint64s(2))
	require.ErrorIs(rp.Err(), ErrTooManyItems)
}

func TestPackerShortRead(t *testing.T) {
	require := require.New(t)

	rp := NewReader([]byte{0x01}, consts.NetworkSizeLimit)
	rp.UnpackUint64(false)
	require.Error(rp.Err())
}
