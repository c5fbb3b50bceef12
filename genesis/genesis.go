// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ava-labs/avalanchego/trace"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/state"
	"github.com/ava-labs/philosophersvm/storage"
	"github.com/ava-labs/philosophersvm/utils"

	safemath "github.com/ava-labs/avalanchego/utils/math"
)

var (
	ErrMissingAdmin  = errors.New("genesis admin is not set")
	ErrInvalidRules  = errors.New("invalid genesis rules")
	ErrDuplicateAddr = errors.New("duplicate allocation")
	ErrInvalidAlloc  = errors.New("allocation must be <address>:<balance>")
)

type CustomAllocation struct {
	Address codec.Address `json:"address"`
	Balance uint64        `json:"balance"`
}

// Genesis describes the initial ledger: who administers the registry, who
// starts with tokens and the rules blocks are built under.
type Genesis struct {
	Admin            codec.Address       `json:"admin"`
	CustomAllocation []*CustomAllocation `json:"customAllocation"`
	Rules            *Rules              `json:"initialRules"`
}

// ParseAllocation parses "<address>:<balance>" where balance is a decimal
// token amount such as "100.0".
func ParseAllocation(s string) (*CustomAllocation, error) {
	addr, bal, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAlloc, s)
	}
	address, err := codec.ParseAddress(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAlloc, err)
	}
	balance, err := utils.ParseBalance(bal)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAlloc, err)
	}
	return &CustomAllocation{Address: address, Balance: balance}, nil
}

func NewDefaultGenesis(admin codec.Address, customAllocations []*CustomAllocation) *Genesis {
	return &Genesis{
		Admin:            admin,
		CustomAllocation: customAllocations,
		Rules:            NewDefaultRules(),
	}
}

func (g *Genesis) Verify() error {
	if g.Admin == codec.EmptyAddress {
		return ErrMissingAdmin
	}
	if g.Rules == nil || g.Rules.ValidityWindow <= 0 || g.Rules.MaxBlockTxs <= 0 {
		return ErrInvalidRules
	}
	seen := make(map[codec.Address]struct{}, len(g.CustomAllocation))
	for _, alloc := range g.CustomAllocation {
		if _, ok := seen[alloc.Address]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateAddr, alloc.Address)
		}
		seen[alloc.Address] = struct{}{}
	}
	return nil
}

// InitializeState credits every allocation. It runs once, before the
// first block.
func (g *Genesis) InitializeState(ctx context.Context, tracer trace.Tracer, mu state.Mutable) error {
	ctx, span := tracer.Start(ctx, "Genesis.InitializeState")
	defer span.End()

	supply := uint64(0)
	for _, alloc := range g.CustomAllocation {
		var err error
		supply, err = safemath.Add64(supply, alloc.Balance)
		if err != nil {
			return err
		}
		if _, err := storage.AddBalance(ctx, mu, alloc.Address, alloc.Balance); err != nil {
			return fmt.Errorf("%w: addr=%s, bal=%d", err, alloc.Address, alloc.Balance)
		}
	}
	span.SetAttributes(attribute.Int64("supply", int64(supply)))
	return nil
}

// Load parses [genesisBytes] and derives the chain ID from them, so two
// ledgers started from different genesis files never accept each other's
// transactions.
func Load(genesisBytes []byte) (*Genesis, *Rules, error) {
	g := &Genesis{}
	if err := json.Unmarshal(genesisBytes, g); err != nil {
		return nil, nil, err
	}
	if err := g.Verify(); err != nil {
		return nil, nil, err
	}
	return g, NewRules(g.Rules, g.Admin, utils.ToID(genesisBytes)), nil
}
