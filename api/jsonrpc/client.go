// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/rpc"

	"github.com/ava-labs/philosophersvm/api"
	"github.com/ava-labs/philosophersvm/chain"
	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/genesis"
	"github.com/ava-labs/philosophersvm/registry"
	"github.com/ava-labs/philosophersvm/scripts"
	"github.com/ava-labs/philosophersvm/vm"
)

// remoteErrors are recovered from the message of a failed call so callers
// can use [errors.Is] across the RPC boundary. Script failures surface the
// ledger sentinels of [registry.KnownErrors].
var remoteErrors = append([]error{
	vm.ErrTxNotFound,
	vm.ErrTxExpired,
	vm.ErrDuplicateTx,
	vm.ErrNotReady,
	vm.ErrStopped,
	chain.ErrAuthFailed,
	chain.ErrInvalidChainID,
	chain.ErrTimestampTooLate,
	chain.ErrTimestampTooEarly,
	chain.ErrMisalignedTime,
	scripts.ErrUnknownScript,
	scripts.ErrInvalidArgs,
	context.DeadlineExceeded,
}, registry.KnownErrors...)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	for _, known := range remoteErrors {
		if strings.Contains(msg, known.Error()) {
			return fmt.Errorf("%w: %w", known, err)
		}
	}
	return err
}

type JSONRPCClient struct {
	requester rpc.EndpointRequester

	chainID ids.ID
	admin   codec.Address
}

func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += Endpoint
	return &JSONRPCClient{requester: rpc.NewEndpointRequester(uri)}
}

func (cli *JSONRPCClient) send(ctx context.Context, method string, args any, reply any) error {
	if args == nil {
		args = struct{}{}
	}
	return mapError(cli.requester.SendRequest(ctx, api.Name+"."+method, args, reply))
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.send(ctx, "ping", nil, resp)
	return resp.Success, err
}

// Network returns the chain ID and the registry admin. The answer is
// cached after the first call.
func (cli *JSONRPCClient) Network(ctx context.Context) (ids.ID, codec.Address, error) {
	if cli.chainID != ids.Empty {
		return cli.chainID, cli.admin, nil
	}
	resp := new(NetworkReply)
	if err := cli.send(ctx, "network", nil, resp); err != nil {
		return ids.Empty, codec.EmptyAddress, err
	}
	cli.chainID = resp.ChainID
	cli.admin = resp.Admin
	return resp.ChainID, resp.Admin, nil
}

func (cli *JSONRPCClient) Genesis(ctx context.Context) (*genesis.Genesis, error) {
	resp := new(GenesisReply)
	err := cli.send(ctx, "genesis", nil, resp)
	return resp.Genesis, err
}

func (cli *JSONRPCClient) Accepted(ctx context.Context) (ids.ID, uint64, int64, error) {
	resp := new(LastAcceptedReply)
	err := cli.send(ctx, "lastAccepted", nil, resp)
	return resp.BlockID, resp.Height, resp.Timestamp, err
}

func (cli *JSONRPCClient) SubmitTx(ctx context.Context, tx []byte) (ids.ID, error) {
	resp := new(SubmitTxReply)
	err := cli.send(ctx, "submitTx", &SubmitTxArgs{Tx: tx}, resp)
	return resp.TxID, err
}

func (cli *JSONRPCClient) txRecord(txID ids.ID, resp *TxReply) (*vm.TxRecord, error) {
	result, err := chain.ParseResult(resp.Result)
	if err != nil {
		return nil, err
	}
	return &vm.TxRecord{
		TxID:      txID,
		Height:    resp.Height,
		Timestamp: resp.Timestamp,
		Result:    result,
	}, nil
}

// GetTx returns the committed record of [txID] or an error wrapping
// [vm.ErrTxNotFound].
func (cli *JSONRPCClient) GetTx(ctx context.Context, txID ids.ID) (*vm.TxRecord, error) {
	resp := new(TxReply)
	if err := cli.send(ctx, "getTx", &TxArgs{TxID: txID}, resp); err != nil {
		return nil, err
	}
	return cli.txRecord(txID, resp)
}

// WaitTx blocks on the node for at most [timeout] until [txID] is
// committed.
func (cli *JSONRPCClient) WaitTx(ctx context.Context, txID ids.ID, timeout time.Duration) (*vm.TxRecord, error) {
	resp := new(TxReply)
	if err := cli.send(ctx, "waitTx", &TxArgs{TxID: txID, Timeout: timeout}, resp); err != nil {
		return nil, err
	}
	return cli.txRecord(txID, resp)
}

// ExecuteScript runs [name] on the node and decodes its value into [out].
func (cli *JSONRPCClient) ExecuteScript(ctx context.Context, name string, args []string, out any) error {
	resp := new(ExecuteScriptReply)
	if err := cli.send(ctx, "executeScript", &ExecuteScriptArgs{Name: name, Args: args}, resp); err != nil {
		return err
	}
	return json.Unmarshal(resp.Value, out)
}

func (cli *JSONRPCClient) Scripts(ctx context.Context) ([]string, error) {
	resp := new(ScriptsReply)
	err := cli.send(ctx, "scripts", nil, resp)
	return resp.Names, err
}

// ReadState returns the committed raw values of [keys]. A missing key
// yields an empty value and [database.ErrNotFound].
func (cli *JSONRPCClient) ReadState(ctx context.Context, keys [][]byte) ([][]byte, []error, error) {
	args := &ReadStateArgs{Keys: make([]codec.Bytes, len(keys))}
	for i, key := range keys {
		args.Keys[i] = key
	}
	resp := new(ReadStateReply)
	if err := cli.send(ctx, "readState", args, resp); err != nil {
		return nil, nil, err
	}
	values := make([][]byte, len(resp.Values))
	errs := make([]error, len(resp.Errors))
	for i, value := range resp.Values {
		values[i] = value
	}
	for i, msg := range resp.Errors {
		switch msg {
		case "":
		case database.ErrNotFound.Error():
			errs[i] = database.ErrNotFound
		default:
			errs[i] = mapError(errors.New(msg))
		}
	}
	return values, errs, nil
}
