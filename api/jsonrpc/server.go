// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"go.uber.org/zap"

	"github.com/ava-labs/philosophersvm/api"
	"github.com/ava-labs/philosophersvm/chain"
	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/genesis"
	"github.com/ava-labs/philosophersvm/scripts"
	"github.com/ava-labs/philosophersvm/vm"
)

const (
	Endpoint = "/coreapi"

	// MaxWaitTimeout bounds how long a single waitTx call may block.
	MaxWaitTimeout = 5 * time.Minute
)

var _ api.HandlerFactory = (*JSONRPCServerFactory)(nil)

type JSONRPCServerFactory struct{}

func (JSONRPCServerFactory) New(vm api.VM) (api.Handler, error) {
	handler, err := api.NewJSONRPCHandler(api.Name, NewJSONRPCServer(vm))
	if err != nil {
		return api.Handler{}, err
	}
	return api.Handler{
		Path:    Endpoint,
		Handler: handler,
	}, nil
}

type JSONRPCServer struct {
	vm api.VM
}

func NewJSONRPCServer(vm api.VM) *JSONRPCServer {
	return &JSONRPCServer{vm: vm}
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) error {
	j.vm.Logger().Info("ping")
	reply.Success = true
	return nil
}

type NetworkReply struct {
	ChainID ids.ID        `json:"chainId"`
	Admin   codec.Address `json:"admin"`
}

func (j *JSONRPCServer) Network(_ *http.Request, _ *struct{}, reply *NetworkReply) error {
	reply.ChainID = j.vm.ChainID()
	reply.Admin = j.vm.Rules().GetAdmin()
	return nil
}

type GenesisReply struct {
	Genesis *genesis.Genesis `json:"genesis"`
}

func (j *JSONRPCServer) Genesis(_ *http.Request, _ *struct{}, reply *GenesisReply) error {
	reply.Genesis = j.vm.Genesis()
	return nil
}

type LastAcceptedReply struct {
	Height    uint64 `json:"height"`
	BlockID   ids.ID `json:"blockId"`
	Timestamp int64  `json:"timestamp"`
}

func (j *JSONRPCServer) LastAccepted(_ *http.Request, _ *struct{}, reply *LastAcceptedReply) error {
	blk := j.vm.LastAccepted()
	reply.Height = blk.Height
	reply.BlockID = blk.ID()
	reply.Timestamp = blk.Timestamp
	return nil
}

type SubmitTxArgs struct {
	Tx []byte `json:"tx"`
}

type SubmitTxReply struct {
	TxID ids.ID `json:"txId"`
}

func (j *JSONRPCServer) SubmitTx(req *http.Request, args *SubmitTxArgs, reply *SubmitTxReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.SubmitTx")
	defer span.End()

	tx, err := chain.ParseTx(args.Tx, j.vm.Parser())
	if err != nil {
		return fmt.Errorf("%w: unable to unmarshal on public service", err)
	}
	reply.TxID = tx.ID()
	if err := j.vm.Submit(ctx, []*chain.Transaction{tx})[0]; err != nil {
		j.vm.Logger().Debug("rejected transaction",
			zap.Stringer("txID", tx.ID()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

type TxArgs struct {
	TxID ids.ID `json:"txId"`
	// Timeout is only used by waitTx. Zero waits up to [MaxWaitTimeout].
	Timeout time.Duration `json:"timeout"`
}

type TxReply struct {
	Height    uint64      `json:"height"`
	Timestamp int64       `json:"timestamp"`
	Result    codec.Bytes `json:"result"`
}

func (r *TxReply) fill(record *vm.TxRecord) error {
	b, err := record.Result.Bytes()
	if err != nil {
		return err
	}
	r.Height = record.Height
	r.Timestamp = record.Timestamp
	r.Result = b
	return nil
}

func (j *JSONRPCServer) GetTx(req *http.Request, args *TxArgs, reply *TxReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.GetTx")
	defer span.End()

	record, err := j.vm.GetTransaction(ctx, args.TxID)
	if err != nil {
		return err
	}
	return reply.fill(record)
}

func (j *JSONRPCServer) WaitTx(req *http.Request, args *TxArgs, reply *TxReply) error {
	timeout := MaxWaitTimeout
	if args.Timeout > 0 {
		timeout = min(args.Timeout, MaxWaitTimeout)
	}
	ctx, cancel := context.WithTimeout(req.Context(), timeout)
	defer cancel()
	ctx, span := j.vm.Tracer().Start(ctx, "JSONRPCServer.WaitTx")
	defer span.End()

	record, err := j.vm.WaitForTransaction(ctx, args.TxID)
	if err != nil {
		return err
	}
	return reply.fill(record)
}

type ExecuteScriptArgs struct {
	Name string   `json:"name"`
	Args []string `json:"args"`
}

type ExecuteScriptReply struct {
	Value json.RawMessage `json:"value"`
}

func (j *JSONRPCServer) ExecuteScript(req *http.Request, args *ExecuteScriptArgs, reply *ExecuteScriptReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.ExecuteScript")
	defer span.End()

	value, err := j.vm.ExecuteScript(ctx, args.Name, args.Args)
	if err != nil {
		return err
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	reply.Value = b
	return nil
}

type ReadStateArgs struct {
	Keys []codec.Bytes `json:"keys"`
}

// ReadStateReply holds one value and one error message per key. A missing
// key has an empty value and a non-empty error.
type ReadStateReply struct {
	Values []codec.Bytes `json:"values"`
	Errors []string      `json:"errors"`
}

func (j *JSONRPCServer) ReadState(req *http.Request, args *ReadStateArgs, reply *ReadStateReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.ReadState")
	defer span.End()

	keys := make([][]byte, len(args.Keys))
	for i, key := range args.Keys {
		keys[i] = key
	}
	values, errs := j.vm.ReadState(ctx, keys)
	reply.Values = make([]codec.Bytes, len(values))
	reply.Errors = make([]string, len(errs))
	for i, value := range values {
		reply.Values[i] = value
		if errs[i] != nil {
			reply.Errors[i] = errs[i].Error()
		}
	}
	return nil
}

type ScriptsReply struct {
	Names []string `json:"names"`
}

func (*JSONRPCServer) Scripts(_ *http.Request, _ *struct{}, reply *ScriptsReply) error {
	reply.Names = scripts.Names()
	return nil
}
