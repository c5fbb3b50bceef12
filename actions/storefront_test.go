// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/philosophersvm/chain"
	"github.com/ava-labs/philosophersvm/chain/chaintest"
	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/state"
	"github.com/ava-labs/philosophersvm/storage"
)

func requireListings(ctx context.Context, t *testing.T, im state.Immutable, addr codec.Address, count int) {
	ids, err := storage.GetListingIDs(ctx, im, addr)
	require.NoError(t, err)
	require.Len(t, ids, count)
}

func TestSetupStorefrontAction(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	tests := []chaintest.ActionTest{
		{
			Name:   "Setup",
			Action: &SetupStorefront{},
			State:  f.state(t, nil, nil),
			Actor:  f.alice,
			ExpectedEvents: []chain.Event{
				&StorefrontInitialized{Owner: f.alice},
			},
			Assertion: func(ctx context.Context, t *testing.T, st state.Mutable) {
				requireListings(ctx, t, st, f.alice, 0)
			},
		},
		{
			Name:        "AlreadyInitialized",
			Action:      &SetupStorefront{},
			State:       f.state(t, nil, []codec.Address{f.alice}),
			Actor:       f.alice,
			ExpectedErr: storage.ErrAlreadyInitialized,
		},
	}

	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestCreateListingAction(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	seller := func(t *testing.T) *chaintest.InMemoryStore {
		store := f.state(t, []codec.Address{f.alice, f.bob}, []codec.Address{f.alice})
		f.mint(t, store, f.alice)
		f.mint(t, store, f.bob)
		return store
	}
	alreadyListed := func(t *testing.T) *chaintest.InMemoryStore {
		store := seller(t)
		_, err := storage.CreateListing(ctx, store, f.alice, 0, 5)
		require.NoError(t, err)
		return store
	}

	tests := []chaintest.ActionTest{
		{
			Name:        "NoStorefront",
			Action:      &CreateListing{ID: 1, Price: 10},
			State:       seller(t),
			Actor:       f.bob,
			ExpectedErr: storage.ErrNoStorefront,
		},
		{
			Name:        "PriceTooHigh",
			Action:      &CreateListing{ID: 0, Price: MaxPrice + 1},
			State:       seller(t),
			Actor:       f.alice,
			ExpectedErr: ErrInvalidPrice,
		},
		{
			Name:        "NotOwned",
			Action:      &CreateListing{ID: 1, Price: 10},
			State:       seller(t),
			Actor:       f.alice,
			ExpectedErr: storage.ErrNotOwned,
			Assertion: func(ctx context.Context, t *testing.T, st state.Mutable) {
				requireListings(ctx, t, st, f.alice, 0)
			},
		},
		{
			Name:        "NeverMinted",
			Action:      &CreateListing{ID: 1337, Price: 10},
			State:       seller(t),
			Actor:       f.alice,
			ExpectedErr: storage.ErrNotOwned,
		},
		{
			Name:        "AlreadyListed",
			Action:      &CreateListing{ID: 0, Price: 10},
			State:       alreadyListed(t),
			Actor:       f.alice,
			ExpectedErr: storage.ErrAlreadyListed,
			Assertion: func(ctx context.Context, t *testing.T, st state.Mutable) {
				requireListings(ctx, t, st, f.alice, 1)
			},
		},
		{
			Name:   "Create",
			Action: &CreateListing{ID: 0, Price: 111_000_000},
			State:  seller(t),
			Actor:  f.alice,
			ExpectedEvents: []chain.Event{
				&ListingAvailable{
					Storefront:        f.alice,
					ListingResourceID: 1,
					NFTID:             0,
					Price:             111_000_000,
				},
			},
			Assertion: func(ctx context.Context, t *testing.T, st state.Mutable) {
				requireListings(ctx, t, st, f.alice, 1)
				requireCount(ctx, t, st, f.alice, 1)
			},
		},
	}

	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestPurchaseListingAction(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	creator := chaintest.NewAddress()
	curator := chaintest.NewAddress()

	// market has item 0 listed by alice at [price] and bob funded with [funds].
	market := func(t *testing.T, price uint64, funds uint64, royalties ...storage.Royalty) *chaintest.InMemoryStore {
		store := f.state(t, []codec.Address{f.alice, f.bob}, []codec.Address{f.alice})
		id := f.mint(t, store, f.alice, royalties...)
		_, err := storage.CreateListing(ctx, store, f.alice, id, price)
		require.NoError(t, err)
		if funds > 0 {
			require.NoError(t, storage.SetBalance(ctx, store, f.bob, funds))
		}
		return store
	}
	stale := func(t *testing.T) *chaintest.InMemoryStore {
		store := market(t, 10, 10)
		// Move the item without going through the action so the listing stays.
		_, err := storage.MovePhilosopher(ctx, store, f.alice, f.admin, 0)
		require.ErrorIs(t, err, storage.ErrNoCollection)
		require.NoError(t, storage.SetupCollection(ctx, store, f.admin))
		_, err = storage.MovePhilosopher(ctx, store, f.alice, f.admin, 0)
		require.NoError(t, err)
		return store
	}
	noBuyerCollection := func(t *testing.T) *chaintest.InMemoryStore {
		store := market(t, 10, 10)
		require.NoError(t, storage.SetBalance(ctx, store, f.admin, 10))
		return store
	}
	balance := func(ctx context.Context, t *testing.T, im state.Immutable, addr codec.Address) uint64 {
		bal, err := storage.GetBalance(ctx, im, addr)
		require.NoError(t, err)
		return bal
	}

	tests := []chaintest.ActionTest{
		{
			Name:        "UnknownListing",
			Action:      &PurchaseListing{ListingID: 9, Seller: f.alice},
			State:       market(t, 10, 10),
			Actor:       f.bob,
			ExpectedErr: storage.ErrListingNotFound,
		},
		{
			Name:        "WrongSeller",
			Action:      &PurchaseListing{ListingID: 1, Seller: f.bob},
			State:       market(t, 10, 10),
			Actor:       f.bob,
			ExpectedErr: storage.ErrListingNotFound,
		},
		{
			Name:        "BuyerWithoutCollection",
			Action:      &PurchaseListing{ListingID: 1, Seller: f.alice},
			State:       noBuyerCollection(t),
			Actor:       f.admin,
			ExpectedErr: storage.ErrNoCollection,
		},
		{
			Name:        "InsufficientFunds",
			Action:      &PurchaseListing{ListingID: 1, Seller: f.alice},
			State:       market(t, 10, 9),
			Actor:       f.bob,
			ExpectedErr: storage.ErrInsufficientFunds,
			Assertion: func(ctx context.Context, t *testing.T, st state.Mutable) {
				requireCount(ctx, t, st, f.bob, 0)
				requireListings(ctx, t, st, f.alice, 1)
			},
		},
		{
			Name:        "SellerNoLongerOwns",
			Action:      &PurchaseListing{ListingID: 1, Seller: f.alice},
			State:       stale(t),
			Actor:       f.bob,
			ExpectedErr: storage.ErrNotOwned,
		},
		{
			Name:   "Purchase",
			Action: &PurchaseListing{ListingID: 1, Seller: f.alice},
			State:  market(t, 111_000_000, 10_000_000_000),
			Actor:  f.bob,
			ExpectedEvents: []chain.Event{
				&ListingCompleted{
					Storefront:        f.alice,
					ListingResourceID: 1,
					NFTID:             0,
					Buyer:             f.bob,
					Price:             111_000_000,
				},
			},
			Assertion: func(ctx context.Context, t *testing.T, st state.Mutable) {
				require := require.New(t)
				requireCount(ctx, t, st, f.alice, 0)
				requireCount(ctx, t, st, f.bob, 1)
				requireListings(ctx, t, st, f.alice, 0)
				require.Equal(uint64(111_000_000), balance(ctx, t, st, f.alice))
				require.Equal(uint64(10_000_000_000-111_000_000), balance(ctx, t, st, f.bob))
			},
		},
		{
			Name:   "Free",
			Action: &PurchaseListing{ListingID: 1, Seller: f.alice},
			State:  market(t, 0, 0),
			Actor:  f.bob,
			ExpectedEvents: []chain.Event{
				&ListingCompleted{
					Storefront:        f.alice,
					ListingResourceID: 1,
					NFTID:             0,
					Buyer:             f.bob,
				},
			},
			Assertion: func(ctx context.Context, t *testing.T, st state.Mutable) {
				requireCount(ctx, t, st, f.bob, 1)
			},
		},
		{
			Name:   "Royalties",
			Action: &PurchaseListing{ListingID: 1, Seller: f.alice},
			State: market(
				t,
				1_000,
				1_000,
				storage.Royalty{Cut: 2_500_000, Description: "creator", Beneficiary: creator},
				storage.Royalty{Cut: 33_333_333, Description: "curator", Beneficiary: curator},
				storage.Royalty{Cut: 1, Description: "dust", Beneficiary: curator},
			),
			Actor: f.bob,
			ExpectedEvents: []chain.Event{
				&RoyaltyPaid{ListingResourceID: 1, Beneficiary: creator, Amount: 25, Description: "creator"},
				&RoyaltyPaid{ListingResourceID: 1, Beneficiary: curator, Amount: 333, Description: "curator"},
				&ListingCompleted{
					Storefront:        f.alice,
					ListingResourceID: 1,
					NFTID:             0,
					Buyer:             f.bob,
					Price:             1_000,
				},
			},
			Assertion: func(ctx context.Context, t *testing.T, st state.Mutable) {
				require := require.New(t)
				require.Equal(uint64(25), balance(ctx, t, st, creator))
				require.Equal(uint64(333), balance(ctx, t, st, curator))
				require.Equal(uint64(642), balance(ctx, t, st, f.alice))
				require.Zero(balance(ctx, t, st, f.bob))
			},
		},
	}

	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestRemoveListingAction(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	listed := func(t *testing.T) *chaintest.InMemoryStore {
		store := f.state(t, []codec.Address{f.alice}, []codec.Address{f.alice, f.bob})
		id := f.mint(t, store, f.alice)
		_, err := storage.CreateListing(ctx, store, f.alice, id, 10)
		require.NoError(t, err)
		return store
	}

	tests := []chaintest.ActionTest{
		{
			Name:        "UnknownListing",
			Action:      &RemoveListing{ListingID: 2},
			State:       listed(t),
			Actor:       f.alice,
			ExpectedErr: storage.ErrListingNotFound,
		},
		{
			Name:        "OtherStorefront",
			Action:      &RemoveListing{ListingID: 1},
			State:       listed(t),
			Actor:       f.bob,
			ExpectedErr: ErrUnauthorized,
			Assertion: func(ctx context.Context, t *testing.T, st state.Mutable) {
				requireListings(ctx, t, st, f.alice, 1)
			},
		},
		{
			Name:   "Remove",
			Action: &RemoveListing{ListingID: 1},
			State:  listed(t),
			Actor:  f.alice,
			ExpectedEvents: []chain.Event{
				&ListingRemoved{Storefront: f.alice, ListingResourceID: 1},
			},
			Assertion: func(ctx context.Context, t *testing.T, st state.Mutable) {
				requireListings(ctx, t, st, f.alice, 0)
				requireCount(ctx, t, st, f.alice, 1)
			},
		},
	}

	for _, tt := range tests {
		tt.Run(ctx, t)
	}
}

func TestRemoveListingTwice(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	f := newFixture()

	store := f.state(t, []codec.Address{f.alice}, []codec.Address{f.alice})
	id := f.mint(t, store, f.alice)
	_, err := storage.CreateListing(ctx, store, f.alice, id, 10)
	require.NoError(err)

	remove := &RemoveListing{ListingID: 1}
	_, err = remove.Execute(ctx, f.rules, store, 0, f.alice, ids.Empty)
	require.NoError(err)
	_, err = remove.Execute(ctx, f.rules, store, 0, f.alice, ids.Empty)
	require.ErrorIs(err, storage.ErrListingNotFound)

	// Listing ids are never reused.
	l, err := storage.CreateListing(ctx, store, f.alice, id, 10)
	require.NoError(err)
	require.Equal(uint64(2), l.ResourceID)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in    string
		price uint64
		err   error
	}{
		{in: "1.11", price: 111_000_000},
		{in: "100.0", price: 10_000_000_000},
		{in: "0", price: 0},
		{in: "-1.0", err: ErrInvalidPrice},
		{in: "abc", err: ErrInvalidPrice},
		{in: "10000000000.00000001", err: ErrInvalidPrice},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require := require.New(t)
			price, err := ParsePrice(tt.in)
			require.ErrorIs(err, tt.err)
			require.Equal(tt.price, price)
		})
	}
}

func BenchmarkPurchaseListing(b *testing.B) {
	ctx := context.Background()
	f := newFixture()
	creator := chaintest.NewAddress()

	bench := &chaintest.ActionBenchmark{
		Name:   "PurchaseWithRoyalty",
		Action: &PurchaseListing{ListingID: 1, Seller: f.alice},
		Rules:  f.rules,
		CreateState: func() state.Mutable {
			store := f.state(b, []codec.Address{f.alice, f.bob}, []codec.Address{f.alice})
			id := f.mint(b, store, f.alice, storage.Royalty{Cut: 5_000_000, Description: "creator", Beneficiary: creator})
			_, err := storage.CreateListing(ctx, store, f.alice, id, 111_000_000)
			require.NoError(b, err)
			require.NoError(b, storage.SetBalance(ctx, store, f.bob, 10_000_000_000))
			return store
		},
		Actor: f.bob,
		TxID:  ids.GenerateTestID(),
		Assertion: func(ctx context.Context, b *testing.B, st state.Mutable) {
			bought, err := storage.GetCollection(ctx, st, f.bob)
			require.NoError(b, err)
			require.Len(b, bought, 1)
		},
	}
	bench.Run(ctx, b)
}
