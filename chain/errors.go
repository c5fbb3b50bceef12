// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	// Parsing errors
	ErrInvalidObject  = errors.New("invalid object")
	ErrMisalignedTime = errors.New("misaligned time")
	ErrInvalidActor   = errors.New("invalid actor")
	ErrNoTxs          = errors.New("no transactions")
	ErrTooManyTxs     = errors.New("too many transactions")

	// Tx verification errors
	ErrInvalidChainID    = errors.New("invalid chain id")
	ErrTimestampTooLate  = errors.New("timestamp too late")
	ErrTimestampTooEarly = errors.New("timestamp too early")
	ErrAuthFailed        = errors.New("auth failed")

	// Execution errors
	ErrTxReverted     = errors.New("transaction reverted")
	ErrTooManyEvents  = errors.New("too many events")
	ErrInvalidResults = errors.New("invalid results")
)
