// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/philosophersvm/consts"
)

type Blah interface {
	Marshaler
	Bark() string
}

type Blah1 struct{ V uint64 }

func (*Blah1) Bark() string        { return "blah1" }
func (*Blah1) GetTypeID() uint8    { return 0 }
func (*Blah1) Size() int           { return consts.Uint64Len }
func (b *Blah1) Marshal(p *Packer) { p.PackUint64(b.V) }

type Blah2 struct{}

func (*Blah2) Bark() string     { return "blah2" }
func (*Blah2) GetTypeID() uint8 { return 1 }
func (*Blah2) Size() int        { return 0 }
func (*Blah2) Marshal(*Packer)  {}

type Blah3 struct{}

func (*Blah3) Bark() string     { return "blah3" }
func (*Blah3) GetTypeID() uint8 { return 1 }
func (*Blah3) Size() int        { return 0 }
func (*Blah3) Marshal(*Packer)  {}

func unmarshalBlah1(p *Packer) (Blah, error) {
	return &Blah1{V: p.UnpackUint64(false)}, p.Err()
}

func unmarshalBlah2(*Packer) (Blah, error) {
	return &Blah2{}, nil
}

func TestTypeParser(t *testing.T) {
	tp := NewTypeParser[Blah]()

	t.Run("empty parser", func(t *testing.T) {
		require := require.New(t)
		index, f, ok := tp.LookupType(&Blah1{})
		require.False(ok)
		require.Zero(index)
		require.Nil(f)

		f, ok = tp.LookupIndex(0)
		require.False(ok)
		require.Nil(f)
	})

	t.Run("populated parser", func(t *testing.T) {
		require := require.New(t)
		require.NoError(tp.Register(&Blah1{}, unmarshalBlah1))
		require.NoError(tp.Register(&Blah2{}, unmarshalBlah2))

		index, f, ok := tp.LookupType(&Blah2{})
		require.True(ok)
		require.Equal(uint8(1), index)
		require.NotNil(f)
	})

	t.Run("duplicate item", func(t *testing.T) {
		require := require.New(t)
		require.ErrorIs(tp.Register(&Blah1{}, unmarshalBlah1), ErrDuplicateItem)
		require.ErrorIs(tp.Register(&Blah3{}, unmarshalBlah2), ErrDuplicateItem)
	})

	t.Run("typed round trip", func(t *testing.T) {
		require := require.New(t)
		raw, err := MarshalTyped(&Blah1{V: 42})
		require.NoError(err)

		out, err := tp.Unmarshal(NewReader(raw, consts.NetworkSizeLimit))
		require.NoError(err)
		require.Equal("blah1", out.Bark())
		require.Equal(uint64(42), out.(*Blah1).V)
	})

	t.Run("unknown type", func(t *testing.T) {
		require := require.New(t)
		_, err := tp.Unmarshal(NewReader([]byte{9}, consts.NetworkSizeLimit))
		require.ErrorIs(err, ErrUnknownType)
	})
}
