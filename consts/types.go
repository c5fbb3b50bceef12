// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	// Action TypeIDs
	TransferID            uint8 = 0
	MintTokensID          uint8 = 1
	SetupCollectionID     uint8 = 2
	MintPhilosopherID     uint8 = 3
	TransferPhilosopherID uint8 = 4
	SetupStorefrontID     uint8 = 5
	CreateListingID       uint8 = 6
	PurchaseListingID     uint8 = 7
	RemoveListingID       uint8 = 8

	// Event TypeIDs
	TokensTransferredID     uint8 = 0
	TokensMintedID          uint8 = 1
	CollectionInitializedID uint8 = 2
	MintedID                uint8 = 3
	TransferredID           uint8 = 4
	StorefrontInitializedID uint8 = 5
	ListingAvailableID      uint8 = 6
	ListingCompletedID      uint8 = 7
	ListingRemovedID        uint8 = 8
	RoyaltyPaidID           uint8 = 9

	// Auth TypeIDs
	ED25519ID uint8 = 0
)
