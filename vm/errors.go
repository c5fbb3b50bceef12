// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import "errors"

var (
	ErrNotReady      = errors.New("not ready")
	ErrStopped       = errors.New("vm stopped")
	ErrDuplicateTx   = errors.New("duplicate transaction")
	ErrTxNotFound    = errors.New("transaction not found")
	ErrTxExpired     = errors.New("transaction expired before inclusion")
	ErrBlockNotFound = errors.New("block not found")
	ErrBlockFailed   = errors.New("block could not be committed")
)
