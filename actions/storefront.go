// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/philosophersvm/chain"
	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/consts"
	"github.com/ava-labs/philosophersvm/state"
	"github.com/ava-labs/philosophersvm/storage"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var (
	_ chain.Action = (*SetupStorefront)(nil)
	_ chain.Action = (*CreateListing)(nil)
	_ chain.Action = (*PurchaseListing)(nil)
	_ chain.Action = (*RemoveListing)(nil)
)

// SetupStorefront creates an empty storefront for the actor.
type SetupStorefront struct{}

func (*SetupStorefront) GetTypeID() uint8 {
	return consts.SetupStorefrontID
}

func (*SetupStorefront) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) ([]chain.Event, error) {
	if err := storage.SetupStorefront(ctx, mu, actor); err != nil {
		return nil, err
	}
	return []chain.Event{&StorefrontInitialized{Owner: actor}}, nil
}

func (*SetupStorefront) Size() int { return 0 }

func (*SetupStorefront) Marshal(*codec.Packer) {}

func UnmarshalSetupStorefront(p *codec.Packer) (chain.Action, error) {
	return &SetupStorefront{}, p.Err()
}

// CreateListing offers philosopher [ID] from the actor's collection for
// [Price]. The item stays in the collection until purchased.
type CreateListing struct {
	ID    uint64 `json:"id"`
	Price uint64 `json:"price"`
}

func (*CreateListing) GetTypeID() uint8 {
	return consts.CreateListingID
}

func (c *CreateListing) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) ([]chain.Event, error) {
	hasStorefront, err := storage.HasStorefront(ctx, mu, actor)
	if err != nil {
		return nil, err
	}
	if !hasStorefront {
		return nil, fmt.Errorf("%w: %s", storage.ErrNoStorefront, actor)
	}
	if c.Price > MaxPrice {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrInvalidPrice, c.Price, MaxPrice)
	}
	l, err := storage.CreateListing(ctx, mu, actor, c.ID, c.Price)
	if err != nil {
		return nil, err
	}
	return []chain.Event{&ListingAvailable{
		Storefront:        actor,
		ListingResourceID: l.ResourceID,
		NFTID:             l.ItemID,
		Price:             l.Price,
	}}, nil
}

func (*CreateListing) Size() int {
	return consts.Uint64Len * 2
}

func (c *CreateListing) Marshal(p *codec.Packer) {
	p.PackUint64(c.ID)
	p.PackUint64(c.Price)
}

func UnmarshalCreateListing(p *codec.Packer) (chain.Action, error) {
	var create CreateListing
	create.ID = p.UnpackUint64(false)
	create.Price = p.UnpackUint64(false)
	return &create, p.Err()
}

// PurchaseListing buys listing [ListingID] from the storefront of [Seller].
// Payment, royalties, the item transfer and the listing removal happen
// together or not at all.
type PurchaseListing struct {
	ListingID uint64        `json:"listingResourceID"`
	Seller    codec.Address `json:"seller"`
}

func (*PurchaseListing) GetTypeID() uint8 {
	return consts.PurchaseListingID
}

func (pl *PurchaseListing) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) ([]chain.Event, error) {
	l, err := storage.GetSellerListing(ctx, mu, pl.Seller, pl.ListingID)
	if err != nil {
		return nil, err
	}
	hasCollection, err := storage.HasCollection(ctx, mu, actor)
	if err != nil {
		return nil, err
	}
	if !hasCollection {
		return nil, fmt.Errorf("%w: %s", storage.ErrNoCollection, actor)
	}
	item, err := storage.GetOwnedPhilosopher(ctx, mu, l.Seller, l.ItemID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrNotOwned, err)
	}

	events := []chain.Event{}
	if l.Price > 0 {
		if _, err := storage.SubBalance(ctx, mu, actor, l.Price); err != nil {
			return nil, err
		}
		remainder := l.Price
		for _, royalty := range item.Royalties {
			amount := storage.RoyaltyAmount(l.Price, royalty.Cut)
			if amount == 0 {
				continue
			}
			remainder, err = smath.Sub(remainder, amount)
			if err != nil {
				return nil, fmt.Errorf("%w: royalties exceed price", ErrInvalidRoyalty)
			}
			if _, err := storage.AddBalance(ctx, mu, royalty.Beneficiary, amount); err != nil {
				return nil, err
			}
			events = append(events, &RoyaltyPaid{
				ListingResourceID: l.ResourceID,
				Beneficiary:       royalty.Beneficiary,
				Amount:            amount,
				Description:       royalty.Description,
			})
		}
		if remainder > 0 {
			if _, err := storage.AddBalance(ctx, mu, l.Seller, remainder); err != nil {
				return nil, err
			}
		}
	}
	if err := storage.DeleteListing(ctx, mu, l); err != nil {
		return nil, err
	}
	if _, err := storage.MovePhilosopher(ctx, mu, l.Seller, actor, l.ItemID); err != nil {
		return nil, err
	}
	return append(events, &ListingCompleted{
		Storefront:        l.Seller,
		ListingResourceID: l.ResourceID,
		NFTID:             l.ItemID,
		Buyer:             actor,
		Price:             l.Price,
	}), nil
}

func (*PurchaseListing) Size() int {
	return consts.Uint64Len + codec.AddressLen
}

func (pl *PurchaseListing) Marshal(p *codec.Packer) {
	p.PackUint64(pl.ListingID)
	p.PackAddress(pl.Seller)
}

func UnmarshalPurchaseListing(p *codec.Packer) (chain.Action, error) {
	var purchase PurchaseListing
	purchase.ListingID = p.UnpackUint64(false)
	p.UnpackAddress(&purchase.Seller)
	return &purchase, p.Err()
}

// RemoveListing cancels one of the actor's listings without moving the
// item or any funds.
type RemoveListing struct {
	ListingID uint64 `json:"listingResourceID"`
}

func (*RemoveListing) GetTypeID() uint8 {
	return consts.RemoveListingID
}

func (rl *RemoveListing) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) ([]chain.Event, error) {
	l, err := storage.GetListing(ctx, mu, rl.ListingID)
	if err != nil {
		return nil, err
	}
	if l.Seller != actor {
		return nil, fmt.Errorf("%w: listing %d belongs to %s", ErrUnauthorized, l.ResourceID, l.Seller)
	}
	if err := storage.DeleteListing(ctx, mu, l); err != nil {
		return nil, err
	}
	return []chain.Event{&ListingRemoved{Storefront: actor, ListingResourceID: l.ResourceID}}, nil
}

func (*RemoveListing) Size() int {
	return consts.Uint64Len
}

func (rl *RemoveListing) Marshal(p *codec.Packer) {
	p.PackUint64(rl.ListingID)
}

func UnmarshalRemoveListing(p *codec.Packer) (chain.Action, error) {
	var remove RemoveListing
	remove.ListingID = p.UnpackUint64(false)
	return &remove, p.Err()
}
