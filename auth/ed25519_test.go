// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/consts"
	"github.com/ava-labs/philosophersvm/crypto/ed25519"
)

func TestED25519SignVerify(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	key := NamedKey("Alice")
	factory := key.Factory()
	require.Equal(key.Address, factory.Address())
	require.Equal(ED25519ID, key.Address[0])

	msg := []byte("list philosopher 0")
	auth, err := factory.Sign(msg)
	require.NoError(err)
	require.Equal(key.Address, auth.Actor())
	require.NoError(auth.Verify(ctx, msg))
	require.ErrorIs(auth.Verify(ctx, []byte("other")), ed25519.ErrInvalidSignature)

	p := codec.NewWriter(auth.Size(), consts.NetworkSizeLimit)
	auth.Marshal(p)
	require.NoError(p.Err())
	require.Len(p.Bytes(), ED25519Size)

	parsed, err := UnmarshalED25519(codec.NewReader(p.Bytes(), consts.NetworkSizeLimit))
	require.NoError(err)
	require.Equal(auth.Actor(), parsed.Actor())
	require.NoError(parsed.Verify(ctx, msg))
}

func TestNamedKeysDiffer(t *testing.T) {
	require := require.New(t)
	require.Equal(NamedKey("Bob").Address, NamedKey("Bob").Address)
	require.NotEqual(NamedKey("Alice").Address, NamedKey("Bob").Address)
}

func TestED25519Batch(t *testing.T) {
	for _, count := range []int{1, 4, 9, 32} {
		require := require.New(t)
		b := NewED25519Batch(2, count)
		var verifies []func() error
		for i := 0; i < count; i++ {
			key, err := GeneratePrivateKey()
			require.NoError(err)
			msg := []byte{byte(i)}
			auth, err := key.Factory().Sign(msg)
			require.NoError(err)
			if f := b.Add(msg, auth); f != nil {
				verifies = append(verifies, f)
			}
		}
		verifies = append(verifies, b.Done()...)
		require.NotEmpty(verifies)
		for _, f := range verifies {
			require.NoError(f())
		}
	}
}

func TestED25519BatchInvalid(t *testing.T) {
	require := require.New(t)
	b := NewED25519Batch(1, 4)
	var verifies []func() error
	for i := 0; i < 4; i++ {
		key, err := GeneratePrivateKey()
		require.NoError(err)
		auth, err := key.Factory().Sign([]byte{byte(i)})
		require.NoError(err)
		msg := []byte{byte(i)}
		if i == 2 {
			msg = []byte("tampered")
		}
		if f := b.Add(msg, auth); f != nil {
			verifies = append(verifies, f)
		}
	}
	verifies = append(verifies, b.Done()...)
	require.Len(verifies, 1)
	require.ErrorIs(verifies[0](), ed25519.ErrInvalidSignature)
}
