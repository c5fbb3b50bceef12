// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package scripts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/philosophersvm/chain/chaintest"
	"github.com/ava-labs/philosophersvm/storage"
)

func TestNames(t *testing.T) {
	require := require.New(t)

	names := Names()
	require.Len(names, 8)
	require.IsIncreasing(names)
	require.Contains(names, GetSupply)
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	alice := chaintest.NewAddress()
	bob := chaintest.NewAddress()

	store := chaintest.NewInMemoryStore()
	require.NoError(t, storage.SetupCollection(ctx, store, alice))
	require.NoError(t, storage.SetupStorefront(ctx, store, alice))
	require.NoError(t, storage.SetBalance(ctx, store, alice, 42))
	p, err := storage.Mint(ctx, store, alice, storage.Spinoza, storage.Rare, nil)
	require.NoError(t, err)
	l, err := storage.CreateListing(ctx, store, alice, p.ID, 7)
	require.NoError(t, err)

	tests := []struct {
		name     string
		script   string
		args     Args
		expected any
		err      error
	}{
		{name: "Balance", script: GetBalance, args: Args{alice.String()}, expected: uint64(42)},
		{name: "EmptyBalance", script: GetBalance, args: Args{bob.String()}, expected: uint64(0)},
		{name: "Supply", script: GetSupply, expected: uint64(1)},
		{name: "CollectionLength", script: GetCollectionLn, args: Args{alice.String()}, expected: 1},
		{name: "NoCollection", script: GetCollectionLn, args: Args{bob.String()}, err: storage.ErrNoCollection},
		{name: "CollectionIDs", script: GetCollectionID, args: Args{alice.String()}, expected: []uint64{0}},
		{name: "Philosopher", script: GetPhilosopher, args: Args{alice.String(), "0"}, expected: p},
		{name: "PhilosopherNotFound", script: GetPhilosopher, args: Args{alice.String(), "1337"}, err: storage.ErrNotFound},
		{name: "PhilosopherOtherOwner", script: GetPhilosopher, args: Args{bob.String(), "0"}, err: storage.ErrNotFound},
		{name: "ListingsLength", script: GetListingsLen, args: Args{alice.String()}, expected: 1},
		{name: "NoStorefront", script: GetListingsLen, args: Args{bob.String()}, err: storage.ErrNoStorefront},
		{name: "ListingIDs", script: GetListingIDs, args: Args{alice.String()}, expected: []uint64{l.ResourceID}},
		{name: "Listing", script: GetListing, args: Args{alice.String(), "1"}, expected: l},
		{name: "ListingNotFound", script: GetListing, args: Args{bob.String(), "1"}, err: storage.ErrListingNotFound},
		{name: "WrongArgCount", script: GetSupply, args: Args{"x"}, err: ErrInvalidArgs},
		{name: "BadAddress", script: GetBalance, args: Args{"0x1234"}, err: ErrInvalidArgs},
		{name: "BadID", script: GetPhilosopher, args: Args{alice.String(), "-1"}, err: ErrInvalidArgs},
		{name: "Unknown", script: "PhilosophersNFT/nope", err: ErrUnknownScript},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			v, err := Execute(ctx, store, tt.script, tt.args)
			require.ErrorIs(err, tt.err)
			if tt.err == nil {
				require.Equal(tt.expected, v)
			}
		})
	}
}
