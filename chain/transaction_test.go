// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain_test

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/philosophersvm/actions"
	"github.com/ava-labs/philosophersvm/auth"
	"github.com/ava-labs/philosophersvm/chain"
	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/registry"
	"github.com/ava-labs/philosophersvm/storage"
)

func signedTx(t *testing.T, key *auth.PrivateKey, chainID ids.ID, action chain.Action) *chain.Transaction {
	tx, err := chain.NewTx(&chain.Base{Timestamp: 10_000, ChainID: chainID}, action).
		Sign(key.Factory(), registry.Parser)
	require.NoError(t, err)
	return tx
}

func TestTransactionSignAndParse(t *testing.T) {
	require := require.New(t)

	key := auth.NamedKey("Alice")
	chainID := ids.GenerateTestID()
	tx := signedTx(t, key, chainID, &actions.CreateListing{ID: 3, Price: 111_000_000})

	require.Equal(key.Address, tx.Actor())
	require.Equal(int64(10_000), tx.Expiry())
	require.Len(tx.Bytes(), tx.Size())
	require.NoError(tx.Verify(context.Background()))

	parsed, err := chain.ParseTx(tx.Bytes(), registry.Parser)
	require.NoError(err)
	require.Equal(tx.ID(), parsed.ID())
	require.Equal(tx.Action, parsed.Action)
	require.Equal(chainID, parsed.Base.ChainID)
}

func TestTransactionNonceChangesID(t *testing.T) {
	require := require.New(t)

	key := auth.NamedKey("Alice")
	chainID := ids.GenerateTestID()
	sign := func(nonce uint64) *chain.Transaction {
		tx, err := chain.NewTx(
			&chain.Base{Timestamp: 10_000, ChainID: chainID, Nonce: nonce},
			&actions.SetupCollection{},
		).Sign(key.Factory(), registry.Parser)
		require.NoError(err)
		return tx
	}

	first, again, next := sign(1), sign(1), sign(2)
	require.Equal(first.ID(), again.ID())
	require.NotEqual(first.ID(), next.ID())

	parsed, err := chain.ParseTx(next.Bytes(), registry.Parser)
	require.NoError(err)
	require.Equal(uint64(2), parsed.Base.Nonce)
	require.NoError(parsed.Verify(context.Background()))
}

func TestTransactionTamperedSignature(t *testing.T) {
	require := require.New(t)

	tx := signedTx(t, auth.NamedKey("Alice"), ids.GenerateTestID(), &actions.SetupCollection{})
	raw := append([]byte{}, tx.Bytes()...)
	raw[len(raw)-1] ^= 0xff

	parsed, err := chain.ParseTx(raw, registry.Parser)
	require.NoError(err)
	require.NotEqual(tx.ID(), parsed.ID())
	require.ErrorIs(parsed.Verify(context.Background()), chain.ErrAuthFailed)
}

func TestParseTxExtraBytes(t *testing.T) {
	tx := signedTx(t, auth.NamedKey("Bob"), ids.GenerateTestID(), &actions.SetupStorefront{})
	_, err := chain.ParseTx(append(tx.Bytes(), 0), registry.Parser)
	require.ErrorIs(t, err, codec.ErrExtraBytes)
}

func TestBaseExecute(t *testing.T) {
	chainID := ids.GenerateTestID()
	rules := &ruleSet{chainID: chainID, window: 60_000}

	tests := []struct {
		name string
		base chain.Base
		now  int64
		err  error
	}{
		{name: "Valid", base: chain.Base{Timestamp: 10_000, ChainID: chainID}, now: 5_000},
		{name: "Misaligned", base: chain.Base{Timestamp: 10_001, ChainID: chainID}, now: 5_000, err: chain.ErrMisalignedTime},
		{name: "Expired", base: chain.Base{Timestamp: 10_000, ChainID: chainID}, now: 11_000, err: chain.ErrTimestampTooLate},
		{name: "TooFarAhead", base: chain.Base{Timestamp: 100_000, ChainID: chainID}, now: 5_000, err: chain.ErrTimestampTooEarly},
		{name: "WrongChain", base: chain.Base{Timestamp: 10_000, ChainID: ids.Empty}, now: 5_000, err: chain.ErrInvalidChainID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.base.Execute(chainID, rules, tt.now), tt.err)
		})
	}
}

func TestResultErr(t *testing.T) {
	require := require.New(t)

	require.NoError((&chain.Result{Success: true}).Err(registry.KnownErrors...))

	r := &chain.Result{Error: []byte("listing not found: 9")}
	err := r.Err(registry.KnownErrors...)
	require.ErrorIs(err, chain.ErrTxReverted)
	require.ErrorIs(err, storage.ErrListingNotFound)
	require.NotErrorIs(err, storage.ErrNotFound)

	r = &chain.Result{Error: []byte("philosopher not owned: philosopher not found: 0")}
	err = r.Err(registry.KnownErrors...)
	require.ErrorIs(err, storage.ErrNotOwned)
	require.NotErrorIs(err, storage.ErrNotFound)

	r = &chain.Result{Error: []byte("something else")}
	err = r.Err(registry.KnownErrors...)
	require.ErrorIs(err, chain.ErrTxReverted)
	require.NotErrorIs(err, storage.ErrListingNotFound)
}
