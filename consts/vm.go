// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/version"
)

const (
	Name   = "philosophersvm"
	Symbol = "PHIL"

	// Decimals is the fixed point precision of token amounts and prices:
	// 1.0 is represented as 100_000_000.
	Decimals = 8

	// AdminName is the account label the emulator uses for the minting
	// authority.
	AdminName = "PhilosophersAdmin"
)

var ID ids.ID

func init() {
	b := make([]byte, ids.IDLen)
	copy(b, []byte(Name))
	vmID, err := ids.ToID(b)
	if err != nil {
		panic(err)
	}
	ID = vmID
}

var Version = &version.Semantic{
	Major: 0,
	Minor: 1,
	Patch: 0,
}
