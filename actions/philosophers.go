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
	_ chain.Action = (*SetupCollection)(nil)
	_ chain.Action = (*MintPhilosopher)(nil)
	_ chain.Action = (*TransferPhilosopher)(nil)
)

// SetupCollection creates an empty philosopher collection for the actor.
type SetupCollection struct{}

func (*SetupCollection) GetTypeID() uint8 {
	return consts.SetupCollectionID
}

func (*SetupCollection) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) ([]chain.Event, error) {
	if err := storage.SetupCollection(ctx, mu, actor); err != nil {
		return nil, err
	}
	return []chain.Event{&CollectionInitialized{Owner: actor}}, nil
}

func (*SetupCollection) Size() int { return 0 }

func (*SetupCollection) Marshal(*codec.Packer) {}

func UnmarshalSetupCollection(p *codec.Packer) (chain.Action, error) {
	return &SetupCollection{}, p.Err()
}

// MintPhilosopher mints a new item into the collection of [To]. The three
// royalty slices are parallel: entry i of each describes one cut.
type MintPhilosopher struct {
	To            codec.Address   `json:"to"`
	Kind          storage.Kind    `json:"kind"`
	Rarity        storage.Rarity  `json:"rarity"`
	Cuts          []uint64        `json:"cuts"`
	Descriptions  []string        `json:"descriptions"`
	Beneficiaries []codec.Address `json:"beneficiaries"`
}

func (*MintPhilosopher) GetTypeID() uint8 {
	return consts.MintPhilosopherID
}

func (m *MintPhilosopher) royalties() ([]storage.Royalty, error) {
	if len(m.Cuts) != len(m.Descriptions) || len(m.Cuts) != len(m.Beneficiaries) {
		return nil, fmt.Errorf(
			"%w: %d cuts, %d descriptions, %d beneficiaries",
			ErrInvalidRoyalty,
			len(m.Cuts),
			len(m.Descriptions),
			len(m.Beneficiaries),
		)
	}
	if len(m.Cuts) > storage.MaxRoyalties {
		return nil, fmt.Errorf("%w: %d cuts exceeds %d", ErrInvalidRoyalty, len(m.Cuts), storage.MaxRoyalties)
	}
	var total uint64
	royalties := make([]storage.Royalty, 0, len(m.Cuts))
	for i, cut := range m.Cuts {
		var err error
		total, err = smath.Add64(total, cut)
		if err != nil || total > storage.CutDenominator {
			return nil, fmt.Errorf("%w: cuts exceed 100%%", ErrInvalidRoyalty)
		}
		if len(m.Descriptions[i]) > storage.MaxDescriptionLen {
			return nil, fmt.Errorf("%w: description %d is too long", ErrInvalidRoyalty, i)
		}
		royalties = append(royalties, storage.Royalty{
			Cut:         cut,
			Description: m.Descriptions[i],
			Beneficiary: m.Beneficiaries[i],
		})
	}
	return royalties, nil
}

func (m *MintPhilosopher) Execute(
	ctx context.Context,
	r chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) ([]chain.Event, error) {
	if actor != r.GetAdmin() {
		return nil, ErrUnauthorized
	}
	if !m.Kind.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, m.Kind)
	}
	if !m.Rarity.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRarity, m.Rarity)
	}
	royalties, err := m.royalties()
	if err != nil {
		return nil, err
	}
	p, err := storage.Mint(ctx, mu, m.To, m.Kind, m.Rarity, royalties)
	if err != nil {
		return nil, err
	}
	return []chain.Event{&Minted{ID: p.ID, Kind: p.Kind, Rarity: p.Rarity, To: m.To}}, nil
}

func (m *MintPhilosopher) Size() int {
	size := codec.AddressLen + consts.Uint8Len*2 + codec.Uint64sLen(m.Cuts) +
		consts.ByteLen + consts.ByteLen + len(m.Beneficiaries)*codec.AddressLen
	for _, d := range m.Descriptions {
		size += codec.StringLen(d)
	}
	return size
}

func (m *MintPhilosopher) Marshal(p *codec.Packer) {
	p.PackAddress(m.To)
	p.PackByte(byte(m.Kind))
	p.PackByte(byte(m.Rarity))
	p.PackUint64s(m.Cuts)
	p.PackByte(byte(len(m.Descriptions)))
	for _, d := range m.Descriptions {
		p.PackString(d)
	}
	p.PackByte(byte(len(m.Beneficiaries)))
	for _, b := range m.Beneficiaries {
		p.PackAddress(b)
	}
}

func UnmarshalMintPhilosopher(p *codec.Packer) (chain.Action, error) {
	var mint MintPhilosopher
	p.UnpackAddress(&mint.To)
	mint.Kind = storage.Kind(p.UnpackByte())
	mint.Rarity = storage.Rarity(p.UnpackByte())
	mint.Cuts = p.UnpackUint64s(storage.MaxRoyalties)
	descriptions := int(p.UnpackByte())
	if descriptions > storage.MaxRoyalties {
		return nil, fmt.Errorf("%w: %d descriptions", codec.ErrTooManyItems, descriptions)
	}
	mint.Descriptions = make([]string, 0, descriptions)
	for i := 0; i < descriptions; i++ {
		mint.Descriptions = append(mint.Descriptions, p.UnpackString(false))
	}
	beneficiaries := int(p.UnpackByte())
	if beneficiaries > storage.MaxRoyalties {
		return nil, fmt.Errorf("%w: %d beneficiaries", codec.ErrTooManyItems, beneficiaries)
	}
	mint.Beneficiaries = make([]codec.Address, beneficiaries)
	for i := range mint.Beneficiaries {
		p.UnpackAddress(&mint.Beneficiaries[i])
	}
	return &mint, p.Err()
}

// TransferPhilosopher moves item [ID] from the actor's collection to the
// collection of [To]. An active listing for the item is terminated.
type TransferPhilosopher struct {
	To codec.Address `json:"to"`
	ID uint64        `json:"id"`
}

func (*TransferPhilosopher) GetTypeID() uint8 {
	return consts.TransferPhilosopherID
}

func (t *TransferPhilosopher) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) ([]chain.Event, error) {
	if _, err := storage.MovePhilosopher(ctx, mu, actor, t.To, t.ID); err != nil {
		return nil, err
	}
	events := []chain.Event{&Transferred{ID: t.ID, From: actor, To: t.To}}
	removed, err := removeItemListing(ctx, mu, t.ID)
	if err != nil {
		return nil, err
	}
	if removed != nil {
		events = append(events, removed)
	}
	return events, nil
}

// removeItemListing terminates the active listing of [itemID], if any.
func removeItemListing(ctx context.Context, mu state.Mutable, itemID uint64) (*ListingRemoved, error) {
	listingID, listed, err := storage.GetItemListing(ctx, mu, itemID)
	if err != nil || !listed {
		return nil, err
	}
	l, err := storage.GetListing(ctx, mu, listingID)
	if err != nil {
		return nil, err
	}
	if err := storage.DeleteListing(ctx, mu, l); err != nil {
		return nil, err
	}
	return &ListingRemoved{Storefront: l.Seller, ListingResourceID: l.ResourceID}, nil
}

func (*TransferPhilosopher) Size() int {
	return codec.AddressLen + consts.Uint64Len
}

func (t *TransferPhilosopher) Marshal(p *codec.Packer) {
	p.PackAddress(t.To)
	p.PackUint64(t.ID)
}

func UnmarshalTransferPhilosopher(p *codec.Packer) (chain.Action, error) {
	var transfer TransferPhilosopher
	p.UnpackAddress(&transfer.To)
	transfer.ID = p.UnpackUint64(false)
	return &transfer, p.Err()
}
