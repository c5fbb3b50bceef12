// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/state"
)

type Rules interface {
	GetChainID() ids.ID
	GetValidityWindow() int64 // in milliseconds
	GetMaxBlockTxs() int

	// GetAdmin returns the principal allowed to mint philosophers and
	// tokens.
	GetAdmin() codec.Address
}

// Action is the state transition carried by a transaction.
type Action interface {
	codec.Marshaler

	// Execute applies the action to [mu] on behalf of [actor]. Any error
	// reverts every change made by the action. On success, the returned
	// events are recorded in order in the transaction [Result].
	//
	// [txID] is the ID of the enclosing transaction.
	Execute(
		ctx context.Context,
		r Rules,
		mu state.Mutable,
		timestamp int64,
		actor codec.Address,
		txID ids.ID,
	) ([]Event, error)
}

// Event is a structured record emitted by a successful action.
type Event interface {
	codec.Marshaler
}

type Auth interface {
	codec.Marshaler

	// Verify is run concurrently during transaction submission and should not
	// access state.
	Verify(ctx context.Context, msg []byte) error

	// Actor is the account executing the [Action].
	Actor() codec.Address
}

type AuthFactory interface {
	// Sign is used by helpers, auth object should store internally to be
	// ready for marshaling
	Sign(msg []byte) (Auth, error)
	Address() codec.Address
}

// AuthBatchVerifier verifies the signatures of many transactions at once.
type AuthBatchVerifier interface {
	Add(msg []byte, auth Auth) func() error
	Done() []func() error
}

type Parser interface {
	ActionRegistry() *codec.TypeParser[Action]
	AuthRegistry() *codec.TypeParser[Auth]
	EventRegistry() *codec.TypeParser[Event]
}
