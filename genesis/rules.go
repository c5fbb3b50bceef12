// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/philosophersvm/chain"
	"github.com/ava-labs/philosophersvm/codec"
)

var _ chain.Rules = (*Rules)(nil)

type Rules struct {
	// ValidityWindow is how far in the future (ms) a transaction may expire.
	ValidityWindow int64 `json:"validityWindow"`
	MaxBlockTxs    int   `json:"maxBlockTxs"`

	chainID ids.ID
	admin   codec.Address
}

func NewDefaultRules() *Rules {
	return &Rules{
		ValidityWindow: 60 * 1000,
		MaxBlockTxs:    1_024,
	}
}

// NewRules binds the parsed [r] to a chain and its admin.
func NewRules(r *Rules, admin codec.Address, chainID ids.ID) *Rules {
	return &Rules{
		ValidityWindow: r.ValidityWindow,
		MaxBlockTxs:    r.MaxBlockTxs,
		chainID:        chainID,
		admin:          admin,
	}
}

func (r *Rules) GetChainID() ids.ID {
	return r.chainID
}

func (r *Rules) GetValidityWindow() int64 {
	return r.ValidityWindow
}

func (r *Rules) GetMaxBlockTxs() int {
	return r.MaxBlockTxs
}

func (r *Rules) GetAdmin() codec.Address {
	return r.admin
}
