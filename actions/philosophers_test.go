// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/philosophersvm/chain"
	"github.com/ava-labs/philosophersvm/chain/chaintest"
	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/state"
	"github.com/ava-labs/philosophersvm/storage"
)

type fixture struct {
	admin codec.Address
	alice codec.Address
	bob   codec.Address
	rules *chaintest.Rules
}

func newFixture() *fixture {
	admin := chaintest.NewAddress()
	return &fixture{
		admin: admin,
		alice: chaintest.NewAddress(),
		bob:   chaintest.NewAddress(),
		rules: &chaintest.Rules{Admin: admin},
	}
}

// state returns a store where every account in [collections] has a
// collection and every account in [storefronts] has a storefront.
func (f *fixture) state(t testing.TB, collections []codec.Address, storefronts []codec.Address) *chaintest.InMemoryStore {
	ctx := context.Background()
	store := chaintest.NewInMemoryStore()
	for _, addr := range collections {
		require.NoError(t, storage.SetupCollection(ctx, store, addr))
	}
	for _, addr := range storefronts {
		require.NoError(t, storage.SetupStorefront(ctx, store, addr))
	}
	return store
}

func (*fixture) mint(t testing.TB, mu state.Mutable, to codec.Address, royalties ...storage.Royalty) uint64 {
	p, err := storage.Mint(context.Background(), mu, to, storage.Socrates, storage.Common, royalties)
	require.NoError(t, err)
	return p.ID
}

func requireCount(ctx context.Context, t *testing.T, im state.Immutable, addr codec.Address, count int) {
	ids, err := storage.GetCollection(ctx, im, addr)
	require.NoError(t, err)
	require.Len(t, ids, count)
}

func TestSetupCollectionAction(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	tests := []chaintest.ActionTest{
		{
			Name:   "Setup",
			Action: &SetupCollection{},
			State:  f.state(t, nil, nil),
			Actor:  f.alice,
			ExpectedEvents: []chain.Event{
				&CollectionInitialized{Owner: f.alice},
			},
			Assertion: func(ctx context.Context, t *testing.T, st state.Mutable) {
				requireCount(ctx, t, st, f.alice, 0)
			},
		},
		{
			Name:        "AlreadyInitialized",
			Action:      &SetupCollection{},
			State:       f.state(t, []codec.Address{f.alice}, nil),
			Actor:       f.alice,
			ExpectedErr: storage.ErrAlreadyInitialized,
		},
	}

	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestMintPhilosopherAction(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	royalty := storage.Royalty{Cut: 5_000_000, Description: "artist", Beneficiary: f.bob}

	tests := []chaintest.ActionTest{
		{
			Name:        "NotAdmin",
			Action:      &MintPhilosopher{To: f.alice, Kind: storage.Socrates, Rarity: storage.Common},
			Rules:       f.rules,
			State:       f.state(t, []codec.Address{f.alice}, nil),
			Actor:       f.alice,
			ExpectedErr: ErrUnauthorized,
		},
		{
			Name:        "NoCollection",
			Action:      &MintPhilosopher{To: f.alice, Kind: storage.Socrates, Rarity: storage.Common},
			Rules:       f.rules,
			State:       f.state(t, nil, nil),
			Actor:       f.admin,
			ExpectedErr: storage.ErrNoCollection,
			Assertion: func(ctx context.Context, t *testing.T, st state.Mutable) {
				supply, err := storage.GetSupply(ctx, st)
				require.NoError(t, err)
				require.Zero(t, supply)
			},
		},
		{
			Name:        "InvalidKind",
			Action:      &MintPhilosopher{To: f.alice, Kind: 0, Rarity: storage.Common},
			Rules:       f.rules,
			State:       f.state(t, []codec.Address{f.alice}, nil),
			Actor:       f.admin,
			ExpectedErr: ErrInvalidKind,
		},
		{
			Name:        "InvalidRarity",
			Action:      &MintPhilosopher{To: f.alice, Kind: storage.Nietzsche, Rarity: 4},
			Rules:       f.rules,
			State:       f.state(t, []codec.Address{f.alice}, nil),
			Actor:       f.admin,
			ExpectedErr: ErrInvalidRarity,
		},
		{
			Name: "MismatchedRoyalties",
			Action: &MintPhilosopher{
				To:           f.alice,
				Kind:         storage.Spinoza,
				Rarity:       storage.Rare,
				Cuts:         []uint64{1},
				Descriptions: []string{"a", "b"},
			},
			Rules:       f.rules,
			State:       f.state(t, []codec.Address{f.alice}, nil),
			Actor:       f.admin,
			ExpectedErr: ErrInvalidRoyalty,
		},
		{
			Name: "RoyaltiesAboveWhole",
			Action: &MintPhilosopher{
				To:            f.alice,
				Kind:          storage.Spinoza,
				Rarity:        storage.Rare,
				Cuts:          []uint64{60_000_000, 40_000_001},
				Descriptions:  []string{"a", "b"},
				Beneficiaries: []codec.Address{f.bob, f.admin},
			},
			Rules:       f.rules,
			State:       f.state(t, []codec.Address{f.alice}, nil),
			Actor:       f.admin,
			ExpectedErr: ErrInvalidRoyalty,
		},
		{
			Name: "Mint",
			Action: &MintPhilosopher{
				To:            f.alice,
				Kind:          storage.Nietzsche,
				Rarity:        storage.Epic,
				Cuts:          []uint64{royalty.Cut},
				Descriptions:  []string{royalty.Description},
				Beneficiaries: []codec.Address{royalty.Beneficiary},
			},
			Rules: f.rules,
			State: f.state(t, []codec.Address{f.alice}, nil),
			Actor: f.admin,
			ExpectedEvents: []chain.Event{
				&Minted{ID: 0, Kind: storage.Nietzsche, Rarity: storage.Epic, To: f.alice},
			},
			Assertion: func(ctx context.Context, t *testing.T, st state.Mutable) {
				require := require.New(t)
				supply, err := storage.GetSupply(ctx, st)
				require.NoError(err)
				require.Equal(uint64(1), supply)
				requireCount(ctx, t, st, f.alice, 1)

				p, err := storage.GetOwnedPhilosopher(ctx, st, f.alice, 0)
				require.NoError(err)
				require.Equal(storage.Nietzsche, p.Kind)
				require.Equal([]storage.Royalty{royalty}, p.Royalties)
			},
		},
	}

	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestTransferPhilosopherAction(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	withItem := func(t *testing.T) *chaintest.InMemoryStore {
		store := f.state(t, []codec.Address{f.alice, f.bob}, nil)
		f.mint(t, store, f.alice)
		return store
	}
	listed := func(t *testing.T) *chaintest.InMemoryStore {
		store := f.state(t, []codec.Address{f.alice, f.bob}, []codec.Address{f.alice})
		id := f.mint(t, store, f.alice)
		_, err := storage.CreateListing(ctx, store, f.alice, id, 10)
		require.NoError(t, err)
		return store
	}

	tests := []chaintest.ActionTest{
		{
			Name:        "UnknownItem",
			Action:      &TransferPhilosopher{To: f.bob, ID: 1337},
			State:       withItem(t),
			Actor:       f.alice,
			ExpectedErr: storage.ErrNotFound,
			Assertion: func(ctx context.Context, t *testing.T, st state.Mutable) {
				requireCount(ctx, t, st, f.alice, 1)
				requireCount(ctx, t, st, f.bob, 0)
			},
		},
		{
			Name:        "NotOwner",
			Action:      &TransferPhilosopher{To: f.alice, ID: 0},
			State:       withItem(t),
			Actor:       f.bob,
			ExpectedErr: storage.ErrNotFound,
		},
		{
			Name:        "RecipientWithoutCollection",
			Action:      &TransferPhilosopher{To: f.admin, ID: 0},
			State:       withItem(t),
			Actor:       f.alice,
			ExpectedErr: storage.ErrNoCollection,
		},
		{
			Name:   "Transfer",
			Action: &TransferPhilosopher{To: f.bob, ID: 0},
			State:  withItem(t),
			Actor:  f.alice,
			ExpectedEvents: []chain.Event{
				&Transferred{ID: 0, From: f.alice, To: f.bob},
			},
			Assertion: func(ctx context.Context, t *testing.T, st state.Mutable) {
				requireCount(ctx, t, st, f.alice, 0)
				requireCount(ctx, t, st, f.bob, 1)
			},
		},
		{
			Name:   "TransferListed",
			Action: &TransferPhilosopher{To: f.bob, ID: 0},
			State:  listed(t),
			Actor:  f.alice,
			ExpectedEvents: []chain.Event{
				&Transferred{ID: 0, From: f.alice, To: f.bob},
				&ListingRemoved{Storefront: f.alice, ListingResourceID: 1},
			},
			Assertion: func(ctx context.Context, t *testing.T, st state.Mutable) {
				require := require.New(t)
				ids, err := storage.GetListingIDs(ctx, st, f.alice)
				require.NoError(err)
				require.Empty(ids)
				_, listed, err := storage.GetItemListing(ctx, st, 0)
				require.NoError(err)
				require.False(listed)
			},
		},
	}

	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestMintPhilosopherMarshal(t *testing.T) {
	require := require.New(t)

	mint := &MintPhilosopher{
		To:            chaintest.NewAddress(),
		Kind:          storage.Spinoza,
		Rarity:        storage.Rare,
		Cuts:          []uint64{1, 2},
		Descriptions:  []string{"creator", "curator"},
		Beneficiaries: []codec.Address{chaintest.NewAddress(), chaintest.NewAddress()},
	}
	p := codec.NewWriter(mint.Size(), mint.Size())
	mint.Marshal(p)
	require.NoError(p.Err())
	require.Len(p.Bytes(), mint.Size())

	parsed, err := UnmarshalMintPhilosopher(codec.NewReader(p.Bytes(), mint.Size()))
	require.NoError(err)
	require.Equal(mint, parsed)
}
