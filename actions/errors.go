// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrInvalidKind        = errors.New("invalid philosopher kind")
	ErrInvalidRarity      = errors.New("invalid rarity")
	ErrInvalidRoyalty     = errors.New("invalid royalty")
	ErrOutputValueZero    = errors.New("value is zero")
	ErrOutputMemoTooLarge = errors.New("memo is too large")
)
