// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/philosophersvm/auth"
	"github.com/ava-labs/philosophersvm/chain/chaintest"
	"github.com/ava-labs/philosophersvm/storage"
	"github.com/ava-labs/philosophersvm/trace"
	"github.com/ava-labs/philosophersvm/utils"
)

func TestLoad(t *testing.T) {
	require := require.New(t)

	admin := auth.NamedKey("admin").Address
	bob := auth.NamedKey("Bob").Address
	g := NewDefaultGenesis(admin, []*CustomAllocation{{Address: bob, Balance: 10_000_000_000}})
	b, err := json.Marshal(g)
	require.NoError(err)

	loaded, rules, err := Load(b)
	require.NoError(err)
	require.Equal(g, loaded)
	require.Equal(admin, rules.GetAdmin())
	require.Equal(utils.ToID(b), rules.GetChainID())
	require.Equal(int64(60_000), rules.GetValidityWindow())

	store := chaintest.NewInMemoryStore()
	require.NoError(loaded.InitializeState(context.Background(), trace.Noop, store))
	bal, err := storage.GetBalance(context.Background(), store, bob)
	require.NoError(err)
	require.Equal(uint64(10_000_000_000), bal)
}

func TestVerify(t *testing.T) {
	admin := auth.NamedKey("admin").Address
	bob := auth.NamedKey("Bob").Address

	tests := []struct {
		name    string
		genesis *Genesis
		err     error
	}{
		{
			name:    "Valid",
			genesis: NewDefaultGenesis(chaintest.NewAddress(), nil),
		},
		{
			name:    "EmptyAdmin",
			genesis: &Genesis{Rules: NewDefaultRules()},
			err:     ErrMissingAdmin,
		},
		{
			name:    "NoRules",
			genesis: &Genesis{Admin: admin},
			err:     ErrInvalidRules,
		},
		{
			name: "DuplicateAllocation",
			genesis: NewDefaultGenesis(admin, []*CustomAllocation{
				{Address: bob, Balance: 1},
				{Address: bob, Balance: 2},
			}),
			err: ErrDuplicateAddr,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.genesis.Verify(), tt.err)
		})
	}
}

func TestParseAllocation(t *testing.T) {
	bob := auth.NamedKey("Bob").Address
	tests := []struct {
		name    string
		input   string
		want    *CustomAllocation
		wantErr error
	}{
		{
			name:  "decimal balance",
			input: bob.String() + ":100.0",
			want:  &CustomAllocation{Address: bob, Balance: 100_00000000},
		},
		{
			name:    "missing balance",
			input:   bob.String(),
			wantErr: ErrInvalidAlloc,
		},
		{
			name:    "bad address",
			input:   "bob:1",
			wantErr: ErrInvalidAlloc,
		},
		{
			name:    "bad balance",
			input:   bob.String() + ":-1",
			wantErr: ErrInvalidAlloc,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			alloc, err := ParseAllocation(tt.input)
			require.ErrorIs(err, tt.wantErr)
			require.Equal(tt.want, alloc)
		})
	}
}
