// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import "errors"

var (
	ErrInvalidPrivateKey = errors.New("invalid private key")
	ErrInvalidSeed       = errors.New("invalid seed")
	ErrInvalidSignature  = errors.New("invalid signature")
)
