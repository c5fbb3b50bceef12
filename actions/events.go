// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"github.com/ava-labs/philosophersvm/chain"
	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/consts"
	"github.com/ava-labs/philosophersvm/storage"
)

var (
	_ chain.Event = (*TokensTransferred)(nil)
	_ chain.Event = (*TokensMinted)(nil)
	_ chain.Event = (*CollectionInitialized)(nil)
	_ chain.Event = (*Minted)(nil)
	_ chain.Event = (*Transferred)(nil)
	_ chain.Event = (*StorefrontInitialized)(nil)
	_ chain.Event = (*ListingAvailable)(nil)
	_ chain.Event = (*ListingCompleted)(nil)
	_ chain.Event = (*ListingRemoved)(nil)
	_ chain.Event = (*RoyaltyPaid)(nil)
)

type TokensTransferred struct {
	From   codec.Address `json:"from"`
	To     codec.Address `json:"to"`
	Amount uint64        `json:"amount"`
}

func (*TokensTransferred) GetTypeID() uint8 { return consts.TokensTransferredID }

func (*TokensTransferred) Size() int { return codec.AddressLen*2 + consts.Uint64Len }

func (e *TokensTransferred) Marshal(p *codec.Packer) {
	p.PackAddress(e.From)
	p.PackAddress(e.To)
	p.PackUint64(e.Amount)
}

func UnmarshalTokensTransferred(p *codec.Packer) (chain.Event, error) {
	var e TokensTransferred
	p.UnpackAddress(&e.From)
	p.UnpackAddress(&e.To)
	e.Amount = p.UnpackUint64(false)
	return &e, p.Err()
}

type TokensMinted struct {
	To     codec.Address `json:"to"`
	Amount uint64        `json:"amount"`
}

func (*TokensMinted) GetTypeID() uint8 { return consts.TokensMintedID }

func (*TokensMinted) Size() int { return codec.AddressLen + consts.Uint64Len }

func (e *TokensMinted) Marshal(p *codec.Packer) {
	p.PackAddress(e.To)
	p.PackUint64(e.Amount)
}

func UnmarshalTokensMinted(p *codec.Packer) (chain.Event, error) {
	var e TokensMinted
	p.UnpackAddress(&e.To)
	e.Amount = p.UnpackUint64(false)
	return &e, p.Err()
}

type CollectionInitialized struct {
	Owner codec.Address `json:"owner"`
}

func (*CollectionInitialized) GetTypeID() uint8 { return consts.CollectionInitializedID }

func (*CollectionInitialized) Size() int { return codec.AddressLen }

func (e *CollectionInitialized) Marshal(p *codec.Packer) { p.PackAddress(e.Owner) }

func UnmarshalCollectionInitialized(p *codec.Packer) (chain.Event, error) {
	var e CollectionInitialized
	p.UnpackAddress(&e.Owner)
	return &e, p.Err()
}

// Minted carries the id assigned to a new philosopher.
type Minted struct {
	ID     uint64         `json:"id"`
	Kind   storage.Kind   `json:"kind"`
	Rarity storage.Rarity `json:"rarity"`
	To     codec.Address  `json:"to"`
}

func (*Minted) GetTypeID() uint8 { return consts.MintedID }

func (*Minted) Size() int { return consts.Uint64Len + consts.Uint8Len*2 + codec.AddressLen }

func (e *Minted) Marshal(p *codec.Packer) {
	p.PackUint64(e.ID)
	p.PackByte(byte(e.Kind))
	p.PackByte(byte(e.Rarity))
	p.PackAddress(e.To)
}

func UnmarshalMinted(p *codec.Packer) (chain.Event, error) {
	var e Minted
	e.ID = p.UnpackUint64(false)
	e.Kind = storage.Kind(p.UnpackByte())
	e.Rarity = storage.Rarity(p.UnpackByte())
	p.UnpackAddress(&e.To)
	return &e, p.Err()
}

type Transferred struct {
	ID   uint64        `json:"id"`
	From codec.Address `json:"from"`
	To   codec.Address `json:"to"`
}

func (*Transferred) GetTypeID() uint8 { return consts.TransferredID }

func (*Transferred) Size() int { return consts.Uint64Len + codec.AddressLen*2 }

func (e *Transferred) Marshal(p *codec.Packer) {
	p.PackUint64(e.ID)
	p.PackAddress(e.From)
	p.PackAddress(e.To)
}

func UnmarshalTransferred(p *codec.Packer) (chain.Event, error) {
	var e Transferred
	e.ID = p.UnpackUint64(false)
	p.UnpackAddress(&e.From)
	p.UnpackAddress(&e.To)
	return &e, p.Err()
}

type StorefrontInitialized struct {
	Owner codec.Address `json:"owner"`
}

func (*StorefrontInitialized) GetTypeID() uint8 { return consts.StorefrontInitializedID }

func (*StorefrontInitialized) Size() int { return codec.AddressLen }

func (e *StorefrontInitialized) Marshal(p *codec.Packer) { p.PackAddress(e.Owner) }

func UnmarshalStorefrontInitialized(p *codec.Packer) (chain.Event, error) {
	var e StorefrontInitialized
	p.UnpackAddress(&e.Owner)
	return &e, p.Err()
}

// ListingAvailable is the only way a seller learns the resource id
// assigned to a new listing.
type ListingAvailable struct {
	Storefront        codec.Address `json:"storefrontAddress"`
	ListingResourceID uint64        `json:"listingResourceID"`
	NFTID             uint64        `json:"nftID"`
	Price             uint64        `json:"price"`
}

func (*ListingAvailable) GetTypeID() uint8 { return consts.ListingAvailableID }

func (*ListingAvailable) Size() int { return codec.AddressLen + consts.Uint64Len*3 }

func (e *ListingAvailable) Marshal(p *codec.Packer) {
	p.PackAddress(e.Storefront)
	p.PackUint64(e.ListingResourceID)
	p.PackUint64(e.NFTID)
	p.PackUint64(e.Price)
}

func UnmarshalListingAvailable(p *codec.Packer) (chain.Event, error) {
	var e ListingAvailable
	p.UnpackAddress(&e.Storefront)
	e.ListingResourceID = p.UnpackUint64(true)
	e.NFTID = p.UnpackUint64(false)
	e.Price = p.UnpackUint64(false)
	return &e, p.Err()
}

type ListingCompleted struct {
	Storefront        codec.Address `json:"storefrontAddress"`
	ListingResourceID uint64        `json:"listingResourceID"`
	NFTID             uint64        `json:"nftID"`
	Buyer             codec.Address `json:"buyer"`
	Price             uint64        `json:"price"`
}

func (*ListingCompleted) GetTypeID() uint8 { return consts.ListingCompletedID }

func (*ListingCompleted) Size() int { return codec.AddressLen*2 + consts.Uint64Len*3 }

func (e *ListingCompleted) Marshal(p *codec.Packer) {
	p.PackAddress(e.Storefront)
	p.PackUint64(e.ListingResourceID)
	p.PackUint64(e.NFTID)
	p.PackAddress(e.Buyer)
	p.PackUint64(e.Price)
}

func UnmarshalListingCompleted(p *codec.Packer) (chain.Event, error) {
	var e ListingCompleted
	p.UnpackAddress(&e.Storefront)
	e.ListingResourceID = p.UnpackUint64(true)
	e.NFTID = p.UnpackUint64(false)
	p.UnpackAddress(&e.Buyer)
	e.Price = p.UnpackUint64(false)
	return &e, p.Err()
}

type ListingRemoved struct {
	Storefront        codec.Address `json:"storefrontAddress"`
	ListingResourceID uint64        `json:"listingResourceID"`
}

func (*ListingRemoved) GetTypeID() uint8 { return consts.ListingRemovedID }

func (*ListingRemoved) Size() int { return codec.AddressLen + consts.Uint64Len }

func (e *ListingRemoved) Marshal(p *codec.Packer) {
	p.PackAddress(e.Storefront)
	p.PackUint64(e.ListingResourceID)
}

func UnmarshalListingRemoved(p *codec.Packer) (chain.Event, error) {
	var e ListingRemoved
	p.UnpackAddress(&e.Storefront)
	e.ListingResourceID = p.UnpackUint64(true)
	return &e, p.Err()
}

type RoyaltyPaid struct {
	ListingResourceID uint64        `json:"listingResourceID"`
	Beneficiary       codec.Address `json:"beneficiary"`
	Amount            uint64        `json:"amount"`
	Description       string        `json:"description"`
}

func (*RoyaltyPaid) GetTypeID() uint8 { return consts.RoyaltyPaidID }

func (e *RoyaltyPaid) Size() int {
	return consts.Uint64Len*2 + codec.AddressLen + codec.StringLen(e.Description)
}

func (e *RoyaltyPaid) Marshal(p *codec.Packer) {
	p.PackUint64(e.ListingResourceID)
	p.PackAddress(e.Beneficiary)
	p.PackUint64(e.Amount)
	p.PackString(e.Description)
}

func UnmarshalRoyaltyPaid(p *codec.Packer) (chain.Event, error) {
	var e RoyaltyPaid
	e.ListingResourceID = p.UnpackUint64(true)
	p.UnpackAddress(&e.Beneficiary)
	e.Amount = p.UnpackUint64(false)
	e.Description = p.UnpackString(false)
	return &e, p.Err()
}
