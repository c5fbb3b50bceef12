// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/consts"
	"github.com/ava-labs/philosophersvm/state"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// Listing is an active offer to sell one philosopher at a fixed price.
type Listing struct {
	ResourceID uint64        `json:"listingResourceID"`
	ItemID     uint64        `json:"nftID"`
	Price      uint64        `json:"price"`
	Seller     codec.Address `json:"seller"`
}

const listingSize = consts.Uint64Len*3 + codec.AddressLen

func (l *Listing) Marshal() ([]byte, error) {
	pk := codec.NewWriter(listingSize, consts.NetworkSizeLimit)
	pk.PackUint64(l.ResourceID)
	pk.PackUint64(l.ItemID)
	pk.PackUint64(l.Price)
	pk.PackAddress(l.Seller)
	return pk.Bytes(), pk.Err()
}

func UnmarshalListing(b []byte) (*Listing, error) {
	pk := codec.NewReader(b, listingSize)
	l := &Listing{
		ResourceID: pk.UnpackUint64(true),
		ItemID:     pk.UnpackUint64(false),
		Price:      pk.UnpackUint64(false),
	}
	pk.UnpackAddress(&l.Seller)
	if err := pk.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}
	return l, nil
}

// HasStorefront returns true once [SetupStorefront] ran for [addr].
func HasStorefront(ctx context.Context, im state.Immutable, addr codec.Address) (bool, error) {
	_, exists, err := getIDList(ctx, im, StorefrontKey(addr))
	return exists, err
}

// SetupStorefront creates an empty storefront for [addr].
func SetupStorefront(ctx context.Context, mu state.Mutable, addr codec.Address) error {
	exists, err := HasStorefront(ctx, mu, addr)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: storefront of %s", ErrAlreadyInitialized, addr)
	}
	return setIDList(ctx, mu, StorefrontKey(addr), []uint64{})
}

// GetListingIDs returns the active listing ids of [addr] in creation order.
func GetListingIDs(ctx context.Context, im state.Immutable, addr codec.Address) ([]uint64, error) {
	ids, exists, err := getIDList(ctx, im, StorefrontKey(addr))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNoStorefront, addr)
	}
	return ids, nil
}

// GetListing returns the active listing [id].
func GetListing(ctx context.Context, im state.Immutable, id uint64) (*Listing, error) {
	v, err := im.GetValue(ctx, ListingKey(id))
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrListingNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return UnmarshalListing(v)
}

// GetSellerListing returns listing [id] only if it is hosted by [seller].
func GetSellerListing(ctx context.Context, im state.Immutable, seller codec.Address, id uint64) (*Listing, error) {
	l, err := GetListing(ctx, im, id)
	if err != nil {
		return nil, err
	}
	if l.Seller != seller {
		return nil, fmt.Errorf("%w: %d in storefront of %s", ErrListingNotFound, id, seller)
	}
	return l, nil
}

// GetItemListing returns the active listing of [itemID], if any.
func GetItemListing(ctx context.Context, im state.Immutable, itemID uint64) (uint64, bool, error) {
	return innerGetUint64(im.GetValue(ctx, ItemListingKey(itemID)))
}

// CreateListing records a new listing for [itemID] in the storefront of
// [seller]. Listing ids come from their own counter starting at 1.
func CreateListing(
	ctx context.Context,
	mu state.Mutable,
	seller codec.Address,
	itemID uint64,
	price uint64,
) (*Listing, error) {
	ids, err := GetListingIDs(ctx, mu, seller)
	if err != nil {
		return nil, err
	}
	if _, err := GetOwnedPhilosopher(ctx, mu, seller, itemID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %d by %s", ErrNotOwned, itemID, seller)
		}
		return nil, err
	}
	active, listed, err := GetItemListing(ctx, mu, itemID)
	if err != nil {
		return nil, err
	}
	if listed {
		return nil, fmt.Errorf("%w: %d in listing %d", ErrAlreadyListed, itemID, active)
	}
	if len(ids) >= MaxCollectionSize {
		return nil, fmt.Errorf("%w: storefront of %s is full", codec.ErrTooManyItems, seller)
	}
	last, _, err := innerGetUint64(mu.GetValue(ctx, ListingCounterKey()))
	if err != nil {
		return nil, err
	}
	next, err := smath.Add64(last, 1)
	if err != nil {
		return nil, err
	}
	l := &Listing{
		ResourceID: next,
		ItemID:     itemID,
		Price:      price,
		Seller:     seller,
	}
	b, err := l.Marshal()
	if err != nil {
		return nil, err
	}
	if err := mu.Insert(ctx, ListingKey(next), b); err != nil {
		return nil, err
	}
	if err := setUint64(ctx, mu, ListingCounterKey(), next); err != nil {
		return nil, err
	}
	if err := setUint64(ctx, mu, ItemListingKey(itemID), next); err != nil {
		return nil, err
	}
	if err := setIDList(ctx, mu, StorefrontKey(seller), append(ids, next)); err != nil {
		return nil, err
	}
	return l, nil
}

// DeleteListing terminates [l]. Its id is never handed out again.
func DeleteListing(ctx context.Context, mu state.Mutable, l *Listing) error {
	ids, err := GetListingIDs(ctx, mu, l.Seller)
	if err != nil {
		return err
	}
	if i := slices.Index(ids, l.ResourceID); i >= 0 {
		if err := setIDList(ctx, mu, StorefrontKey(l.Seller), slices.Delete(ids, i, i+1)); err != nil {
			return err
		}
	}
	if err := mu.Remove(ctx, ItemListingKey(l.ItemID)); err != nil {
		return err
	}
	return mu.Remove(ctx, ListingKey(l.ResourceID))
}

// RoyaltyAmount is floor(price * cut / 100%).
func RoyaltyAmount(price uint64, cut uint64) uint64 {
	cut = min(cut, CutDenominator)
	return mulDiv(price, cut, CutDenominator)
}
