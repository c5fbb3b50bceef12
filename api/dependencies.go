// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/philosophersvm/chain"
	"github.com/ava-labs/philosophersvm/event"
	"github.com/ava-labs/philosophersvm/genesis"
	"github.com/ava-labs/philosophersvm/scripts"
	"github.com/ava-labs/philosophersvm/vm"
)

//go:generate go run go.uber.org/mock/mockgen -package=${GOPACKAGE}mock -destination=${GOPACKAGE}mock/vm.go -mock_names=VM=MockVM . VM

var _ VM = (*vm.VM)(nil)

// VM is the surface of the ledger exposed over HTTP.
type VM interface {
	ChainID() ids.ID
	Genesis() *genesis.Genesis
	Rules() *genesis.Rules
	Parser() chain.Parser
	Logger() logging.Logger
	Tracer() trace.Tracer

	Submit(ctx context.Context, txs []*chain.Transaction) []error
	GetTransaction(ctx context.Context, txID ids.ID) (*vm.TxRecord, error)
	WaitForTransaction(ctx context.Context, txID ids.ID) (*vm.TxRecord, error)
	ExecuteScript(ctx context.Context, name string, args scripts.Args) (any, error)
	ReadState(ctx context.Context, keys [][]byte) ([][]byte, []error)
	LastAccepted() *chain.StatelessBlock
	GetBlock(height uint64) (*chain.ExecutedBlock, error)
	AddBlockSubscription(sub event.Subscription[*chain.ExecutedBlock])
}
