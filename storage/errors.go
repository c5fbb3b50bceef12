// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrInvalidBalance     = errors.New("invalid balance")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrNoCollection       = errors.New("no collection")
	ErrNoStorefront       = errors.New("no storefront")
	ErrAlreadyInitialized = errors.New("already initialized")
	ErrNotFound           = errors.New("philosopher not found")
	ErrNotOwned           = errors.New("philosopher not owned")
	ErrListingNotFound    = errors.New("listing not found")
	ErrAlreadyListed      = errors.New("philosopher already listed")
	ErrCorruptRecord      = errors.New("corrupt record")
)
