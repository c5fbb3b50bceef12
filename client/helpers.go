// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"
	"errors"
	"strconv"

	"github.com/ava-labs/philosophersvm/actions"
	"github.com/ava-labs/philosophersvm/auth"
	"github.com/ava-labs/philosophersvm/chain"
	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/registry"
	"github.com/ava-labs/philosophersvm/scripts"
	"github.com/ava-labs/philosophersvm/storage"
)

func (cli *Client) SetupPhilosophersOnAccount(ctx context.Context, account *auth.PrivateKey) (*chain.Result, error) {
	return cli.Send(ctx, account, &actions.SetupCollection{})
}

// MintPhilosopher mints a new item to [recipient]. Only the registry admin
// may sign it.
func (cli *Client) MintPhilosopher(
	ctx context.Context,
	minter *auth.PrivateKey,
	recipient codec.Address,
	kind storage.Kind,
	rarity storage.Rarity,
	royalties []storage.Royalty,
) (*chain.Result, error) {
	action := &actions.MintPhilosopher{
		To:     recipient,
		Kind:   kind,
		Rarity: rarity,
	}
	for _, r := range royalties {
		action.Cuts = append(action.Cuts, r.Cut)
		action.Descriptions = append(action.Descriptions, r.Description)
		action.Beneficiaries = append(action.Beneficiaries, r.Beneficiary)
	}
	return cli.Send(ctx, minter, action)
}

func (cli *Client) TransferPhilosopher(
	ctx context.Context,
	sender *auth.PrivateKey,
	recipient codec.Address,
	itemID uint64,
) (*chain.Result, error) {
	return cli.Send(ctx, sender, &actions.TransferPhilosopher{To: recipient, ID: itemID})
}

func (cli *Client) GetPhilosophersSupply(ctx context.Context) (uint64, error) {
	var supply uint64
	err := cli.rpc.ExecuteScript(ctx, scripts.GetSupply, nil, &supply)
	return supply, err
}

func (cli *Client) GetPhilosopher(ctx context.Context, owner codec.Address, itemID uint64) (*storage.Philosopher, error) {
	p := new(storage.Philosopher)
	err := cli.rpc.ExecuteScript(
		ctx,
		scripts.GetPhilosopher,
		[]string{owner.String(), strconv.FormatUint(itemID, 10)},
		p,
	)
	return p, err
}

func (cli *Client) GetPhilosopherCount(ctx context.Context, owner codec.Address) (int, error) {
	var count int
	err := cli.rpc.ExecuteScript(ctx, scripts.GetCollectionLn, []string{owner.String()}, &count)
	return count, err
}

func (cli *Client) GetPhilosopherIDs(ctx context.Context, owner codec.Address) ([]uint64, error) {
	var ids []uint64
	err := cli.rpc.ExecuteScript(ctx, scripts.GetCollectionID, []string{owner.String()}, &ids)
	return ids, err
}

// SetupStorefrontOnAccount prepares [account] to both hold philosophers and
// sell them. An existing collection is kept.
func (cli *Client) SetupStorefrontOnAccount(ctx context.Context, account *auth.PrivateKey) (*chain.Result, error) {
	if _, err := cli.SetupPhilosophersOnAccount(ctx, account); err != nil &&
		!errors.Is(err, storage.ErrAlreadyInitialized) {
		return nil, err
	}
	return cli.Send(ctx, account, &actions.SetupStorefront{})
}

func (cli *Client) CreateListing(
	ctx context.Context,
	seller *auth.PrivateKey,
	itemID uint64,
	price uint64,
) (*chain.Result, error) {
	return cli.Send(ctx, seller, &actions.CreateListing{ID: itemID, Price: price})
}

func (cli *Client) PurchaseListing(
	ctx context.Context,
	buyer *auth.PrivateKey,
	listingID uint64,
	seller codec.Address,
) (*chain.Result, error) {
	return cli.Send(ctx, buyer, &actions.PurchaseListing{ListingID: listingID, Seller: seller})
}

func (cli *Client) RemoveListing(ctx context.Context, seller *auth.PrivateKey, listingID uint64) (*chain.Result, error) {
	return cli.Send(ctx, seller, &actions.RemoveListing{ListingID: listingID})
}

func (cli *Client) GetListingCount(ctx context.Context, owner codec.Address) (int, error) {
	var count int
	err := cli.rpc.ExecuteScript(ctx, scripts.GetListingsLen, []string{owner.String()}, &count)
	return count, err
}

func (cli *Client) GetListingIDs(ctx context.Context, seller codec.Address) ([]uint64, error) {
	var ids []uint64
	err := cli.rpc.ExecuteScript(ctx, scripts.GetListingIDs, []string{seller.String()}, &ids)
	return ids, err
}

func (cli *Client) GetListing(ctx context.Context, seller codec.Address, listingID uint64) (*storage.Listing, error) {
	l := new(storage.Listing)
	err := cli.rpc.ExecuteScript(
		ctx,
		scripts.GetListing,
		[]string{seller.String(), strconv.FormatUint(listingID, 10)},
		l,
	)
	return l, err
}

// MintTokens credits payment tokens to [to]. Only the registry admin may
// sign it.
func (cli *Client) MintTokens(ctx context.Context, minter *auth.PrivateKey, to codec.Address, amount uint64) (*chain.Result, error) {
	return cli.Send(ctx, minter, &actions.MintTokens{To: to, Value: amount})
}

func (cli *Client) GetBalance(ctx context.Context, owner codec.Address) (uint64, error) {
	var balance uint64
	err := cli.rpc.ExecuteScript(ctx, scripts.GetBalance, []string{owner.String()}, &balance)
	return balance, err
}

// ListingResourceID returns the id announced by the ListingAvailable event
// of [result].
func ListingResourceID(result *chain.Result) (uint64, error) {
	events, err := result.ParseEvents(registry.Parser)
	if err != nil {
		return 0, err
	}
	for _, event := range events {
		if available, ok := event.(*actions.ListingAvailable); ok {
			return available.ListingResourceID, nil
		}
	}
	return 0, ErrNoListingEvent
}
