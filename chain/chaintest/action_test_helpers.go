// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chaintest

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/philosophersvm/chain"
	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/state"
)

var (
	_ state.Mutable = (*InMemoryStore)(nil)
	_ chain.Rules   = (*Rules)(nil)
)

// InMemoryStore is an in-memory implementation of `state.Mutable`
type InMemoryStore struct {
	Storage map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		Storage: make(map[string][]byte),
	}
}

func (i *InMemoryStore) GetValue(_ context.Context, key []byte) ([]byte, error) {
	val, ok := i.Storage[string(key)]
	if !ok {
		return nil, database.ErrNotFound
	}
	return val, nil
}

func (i *InMemoryStore) Insert(_ context.Context, key []byte, value []byte) error {
	i.Storage[string(key)] = value
	return nil
}

func (i *InMemoryStore) Remove(_ context.Context, key []byte) error {
	delete(i.Storage, string(key))
	return nil
}

// Rules is a fixed [chain.Rules] for tests.
type Rules struct {
	ChainID        ids.ID
	Admin          codec.Address
	ValidityWindow int64
	MaxBlockTxs    int
}

func (r *Rules) GetChainID() ids.ID       { return r.ChainID }
func (r *Rules) GetAdmin() codec.Address  { return r.Admin }
func (r *Rules) GetValidityWindow() int64 { return r.ValidityWindow }
func (r *Rules) GetMaxBlockTxs() int      { return r.MaxBlockTxs }

// ActionTest is a single parameterized test. It calls Execute on the action with the passed parameters
// and checks that all assertions pass.
type ActionTest struct {
	Name string

	Action chain.Action

	Rules     chain.Rules
	State     state.Mutable
	Timestamp int64
	Actor     codec.Address
	TxID      ids.ID

	ExpectedEvents []chain.Event
	ExpectedErr    error

	Assertion func(context.Context, *testing.T, state.Mutable)
}

// Run executes the [ActionTest] and make sure all assertions pass.
func (test *ActionTest) Run(ctx context.Context, t *testing.T) {
	t.Run(test.Name, func(t *testing.T) {
		require := require.New(t)

		events, err := test.Action.Execute(ctx, test.Rules, test.State, test.Timestamp, test.Actor, test.TxID)

		require.ErrorIs(err, test.ExpectedErr)
		if test.ExpectedErr == nil {
			require.Equal(test.ExpectedEvents, events)
		}

		if test.Assertion != nil {
			test.Assertion(ctx, t, test.State)
		}
	})
}

// ActionBenchmark is a parameterized benchmark. To avoid using shared state
// between runs, a new state is created for each iteration using
// [CreateState].
type ActionBenchmark struct {
	Name   string
	Action chain.Action

	Rules       chain.Rules
	CreateState func() state.Mutable
	Timestamp   int64
	Actor       codec.Address
	TxID        ids.ID

	Assertion func(context.Context, *testing.B, state.Mutable)
}

// Run executes the [ActionBenchmark] and make sure all the benchmark assertions pass.
func (test *ActionBenchmark) Run(ctx context.Context, b *testing.B) {
	require := require.New(b)

	states := make([]state.Mutable, b.N)
	for i := 0; i < b.N; i++ {
		states[i] = test.CreateState()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := test.Action.Execute(ctx, test.Rules, states[i], test.Timestamp, test.Actor, test.TxID)
		require.NoError(err)
	}

	b.StopTimer()
	if test.Assertion != nil {
		for i := 0; i < b.N; i++ {
			test.Assertion(ctx, b, states[i])
		}
	}
}

// NewAddress returns a random ed25519-typed address.
func NewAddress() codec.Address {
	return codec.CreateAddress(0, ids.GenerateTestID())
}
