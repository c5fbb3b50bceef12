// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/philosophersvm/actions"
	"github.com/ava-labs/philosophersvm/auth"
	"github.com/ava-labs/philosophersvm/chain"
	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/storage"
)

var (
	Action *codec.TypeParser[chain.Action]
	Auth   *codec.TypeParser[chain.Auth]
	Event  *codec.TypeParser[chain.Event]

	// Parser bundles the three registries.
	Parser *chain.Registry

	// KnownErrors are the sentinels a reverted result can be mapped back
	// onto with [chain.Result.Err].
	KnownErrors = []error{
		storage.ErrInvalidBalance,
		storage.ErrInsufficientFunds,
		storage.ErrNoCollection,
		storage.ErrNoStorefront,
		storage.ErrAlreadyInitialized,
		storage.ErrNotFound,
		storage.ErrNotOwned,
		storage.ErrListingNotFound,
		storage.ErrAlreadyListed,
		storage.ErrCorruptRecord,
		actions.ErrUnauthorized,
		actions.ErrInvalidPrice,
		actions.ErrInvalidKind,
		actions.ErrInvalidRarity,
		actions.ErrInvalidRoyalty,
		actions.ErrOutputValueZero,
		actions.ErrOutputMemoTooLarge,
		codec.ErrTooManyItems,
	}
)

// Setup types
func init() {
	Action = codec.NewTypeParser[chain.Action]()
	Auth = codec.NewTypeParser[chain.Auth]()
	Event = codec.NewTypeParser[chain.Event]()

	errs := &wrappers.Errs{}
	errs.Add(
		// When registering new actions, ALWAYS make sure to append at the end.
		Action.Register(&actions.Transfer{}, actions.UnmarshalTransfer),
		Action.Register(&actions.MintTokens{}, actions.UnmarshalMintTokens),
		Action.Register(&actions.SetupCollection{}, actions.UnmarshalSetupCollection),
		Action.Register(&actions.MintPhilosopher{}, actions.UnmarshalMintPhilosopher),
		Action.Register(&actions.TransferPhilosopher{}, actions.UnmarshalTransferPhilosopher),
		Action.Register(&actions.SetupStorefront{}, actions.UnmarshalSetupStorefront),
		Action.Register(&actions.CreateListing{}, actions.UnmarshalCreateListing),
		Action.Register(&actions.PurchaseListing{}, actions.UnmarshalPurchaseListing),
		Action.Register(&actions.RemoveListing{}, actions.UnmarshalRemoveListing),

		// When registering new auth, ALWAYS make sure to append at the end.
		Auth.Register(&auth.ED25519{}, auth.UnmarshalED25519),

		Event.Register(&actions.TokensTransferred{}, actions.UnmarshalTokensTransferred),
		Event.Register(&actions.TokensMinted{}, actions.UnmarshalTokensMinted),
		Event.Register(&actions.CollectionInitialized{}, actions.UnmarshalCollectionInitialized),
		Event.Register(&actions.Minted{}, actions.UnmarshalMinted),
		Event.Register(&actions.Transferred{}, actions.UnmarshalTransferred),
		Event.Register(&actions.StorefrontInitialized{}, actions.UnmarshalStorefrontInitialized),
		Event.Register(&actions.ListingAvailable{}, actions.UnmarshalListingAvailable),
		Event.Register(&actions.ListingCompleted{}, actions.UnmarshalListingCompleted),
		Event.Register(&actions.ListingRemoved{}, actions.UnmarshalListingRemoved),
		Event.Register(&actions.RoyaltyPaid{}, actions.UnmarshalRoyaltyPaid),
	)
	if errs.Errored() {
		panic(errs.Err)
	}
	Parser = chain.NewRegistry(Action, Auth, Event)
}
