// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package client signs, submits and awaits philosophersvm transactions on
// behalf of named accounts.
package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/atomic"

	"github.com/ava-labs/philosophersvm/api/jsonrpc"
	"github.com/ava-labs/philosophersvm/auth"
	"github.com/ava-labs/philosophersvm/chain"
	"github.com/ava-labs/philosophersvm/registry"
	"github.com/ava-labs/philosophersvm/utils"
)

const DefaultWaitTimeout = 30 * time.Second

var ErrNoListingEvent = errors.New("result has no ListingAvailable event")

// Modifier adjusts the base of a transaction before it is signed.
type Modifier interface {
	Base(*chain.Base)
}

type Client struct {
	rpc *jsonrpc.JSONRPCClient

	waitTimeout    time.Duration
	validityWindow int64
	nonce          *atomic.Uint64
}

func New(uri string) *Client {
	return &Client{
		rpc:         jsonrpc.NewJSONRPCClient(uri),
		waitTimeout: DefaultWaitTimeout,
		nonce:       atomic.NewUint64(uint64(time.Now().UnixNano())),
	}
}

// RPC exposes the underlying JSON-RPC client.
func (cli *Client) RPC() *jsonrpc.JSONRPCClient {
	return cli.rpc
}

// SetWaitTimeout bounds how long [Client.Send] waits for inclusion.
func (cli *Client) SetWaitTimeout(timeout time.Duration) {
	cli.waitTimeout = timeout
}

func (cli *Client) window(ctx context.Context) (int64, error) {
	if cli.validityWindow > 0 {
		return cli.validityWindow, nil
	}
	g, err := cli.rpc.Genesis(ctx)
	if err != nil {
		return 0, err
	}
	cli.validityWindow = g.Rules.ValidityWindow
	return cli.validityWindow, nil
}

// GenerateTransaction signs [action] for [key] with the widest expiry the
// node accepts and returns a function that submits it and waits for its
// result.
func (cli *Client) GenerateTransaction(
	ctx context.Context,
	action chain.Action,
	key *auth.PrivateKey,
	modifiers ...Modifier,
) (func(context.Context) (*chain.Result, error), *chain.Transaction, error) {
	chainID, _, err := cli.rpc.Network(ctx)
	if err != nil {
		return nil, nil, err
	}
	window, err := cli.window(ctx)
	if err != nil {
		return nil, nil, err
	}
	base := &chain.Base{
		Timestamp: utils.UnixRMilli(-1, window),
		ChainID:   chainID,
		Nonce:     cli.nonce.Inc(),
	}
	for _, m := range modifiers {
		m.Base(base)
	}

	tx, err := chain.NewTx(base, action).Sign(key.Factory(), registry.Parser)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to sign transaction", err)
	}
	return func(ictx context.Context) (*chain.Result, error) {
		if _, err := cli.rpc.SubmitTx(ictx, tx.Bytes()); err != nil {
			return nil, err
		}
		record, err := cli.rpc.WaitTx(ictx, tx.ID(), cli.waitTimeout)
		if err != nil {
			return nil, err
		}
		return record.Result, record.Result.Err(registry.KnownErrors...)
	}, tx, nil
}

// Send signs [action] for [key], submits it and waits for its result. A
// reverted transaction returns its result together with a
// [*chain.RevertError].
func (cli *Client) Send(ctx context.Context, key *auth.PrivateKey, action chain.Action) (*chain.Result, error) {
	submit, _, err := cli.GenerateTransaction(ctx, action, key)
	if err != nil {
		return nil, err
	}
	return submit(ctx)
}
