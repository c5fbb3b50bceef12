// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package scripts holds the read-only queries clients run against the last
// committed state. A script never mutates state.
package scripts

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"golang.org/x/exp/maps"

	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/state"
	"github.com/ava-labs/philosophersvm/storage"
)

const (
	GetBalance      = "FungibleToken/get_balance"
	GetSupply       = "PhilosophersNFT/get_philosophers_supply"
	GetCollectionLn = "PhilosophersNFT/get_collection_length"
	GetCollectionID = "PhilosophersNFT/get_collection_ids"
	GetPhilosopher  = "PhilosophersNFT/get_philosopher"
	GetListingsLen  = "nftStorefront/get_listings_length"
	GetListingIDs   = "nftStorefront/get_listing_ids"
	GetListing      = "nftStorefront/get_listing"
)

var (
	ErrUnknownScript = errors.New("unknown script")
	ErrInvalidArgs   = errors.New("invalid script arguments")
)

// Script reads [im] and returns a JSON-encodable value.
type Script func(ctx context.Context, im state.Immutable, args Args) (any, error)

// Args are the positional string arguments of a script call.
type Args []string

func (a Args) expect(n int) error {
	if len(a) != n {
		return fmt.Errorf("%w: expected %d, got %d", ErrInvalidArgs, n, len(a))
	}
	return nil
}

func (a Args) Address(i int) (codec.Address, error) {
	addr, err := codec.ParseAddress(a[i])
	if err != nil {
		return codec.EmptyAddress, fmt.Errorf("%w: argument %d: %w", ErrInvalidArgs, i, err)
	}
	return addr, nil
}

func (a Args) Uint64(i int) (uint64, error) {
	v, err := strconv.ParseUint(a[i], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: argument %d: %w", ErrInvalidArgs, i, err)
	}
	return v, nil
}

var registry = map[string]Script{
	GetBalance:      getBalance,
	GetSupply:       getSupply,
	GetCollectionLn: getCollectionLength,
	GetCollectionID: getCollectionIDs,
	GetPhilosopher:  getPhilosopher,
	GetListingsLen:  getListingsLength,
	GetListingIDs:   getListingIDs,
	GetListing:      getListing,
}

// Names returns every registered script name, sorted.
func Names() []string {
	names := maps.Keys(registry)
	slices.Sort(names)
	return names
}

// Execute runs the script called [name].
func Execute(ctx context.Context, im state.Immutable, name string, args Args) (any, error) {
	script, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScript, name)
	}
	return script(ctx, im, args)
}

// accountArg validates a single-address argument list.
func accountArg(args Args) (codec.Address, error) {
	if err := args.expect(1); err != nil {
		return codec.EmptyAddress, err
	}
	return args.Address(0)
}

func getBalance(ctx context.Context, im state.Immutable, args Args) (any, error) {
	addr, err := accountArg(args)
	if err != nil {
		return nil, err
	}
	return storage.GetBalance(ctx, im, addr)
}

func getSupply(ctx context.Context, im state.Immutable, args Args) (any, error) {
	if err := args.expect(0); err != nil {
		return nil, err
	}
	return storage.GetSupply(ctx, im)
}

func getCollectionLength(ctx context.Context, im state.Immutable, args Args) (any, error) {
	addr, err := accountArg(args)
	if err != nil {
		return nil, err
	}
	ids, err := storage.GetCollection(ctx, im, addr)
	if err != nil {
		return nil, err
	}
	return len(ids), nil
}

func getCollectionIDs(ctx context.Context, im state.Immutable, args Args) (any, error) {
	addr, err := accountArg(args)
	if err != nil {
		return nil, err
	}
	return storage.GetCollection(ctx, im, addr)
}

func getPhilosopher(ctx context.Context, im state.Immutable, args Args) (any, error) {
	if err := args.expect(2); err != nil {
		return nil, err
	}
	addr, err := args.Address(0)
	if err != nil {
		return nil, err
	}
	id, err := args.Uint64(1)
	if err != nil {
		return nil, err
	}
	return storage.GetOwnedPhilosopher(ctx, im, addr, id)
}

func getListingsLength(ctx context.Context, im state.Immutable, args Args) (any, error) {
	addr, err := accountArg(args)
	if err != nil {
		return nil, err
	}
	ids, err := storage.GetListingIDs(ctx, im, addr)
	if err != nil {
		return nil, err
	}
	return len(ids), nil
}

func getListingIDs(ctx context.Context, im state.Immutable, args Args) (any, error) {
	addr, err := accountArg(args)
	if err != nil {
		return nil, err
	}
	return storage.GetListingIDs(ctx, im, addr)
}

func getListing(ctx context.Context, im state.Immutable, args Args) (any, error) {
	if err := args.expect(2); err != nil {
		return nil, err
	}
	addr, err := args.Address(0)
	if err != nil {
		return nil, err
	}
	id, err := args.Uint64(1)
	if err != nil {
		return nil, err
	}
	return storage.GetSellerListing(ctx, im, addr, id)
}
