// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/philosophersvm/actions"
	"github.com/ava-labs/philosophersvm/auth"
	"github.com/ava-labs/philosophersvm/chain"
	"github.com/ava-labs/philosophersvm/config"
	"github.com/ava-labs/philosophersvm/event"
	"github.com/ava-labs/philosophersvm/genesis"
	"github.com/ava-labs/philosophersvm/pebble"
	"github.com/ava-labs/philosophersvm/registry"
	"github.com/ava-labs/philosophersvm/scripts"
	"github.com/ava-labs/philosophersvm/state"
	"github.com/ava-labs/philosophersvm/storage"
	"github.com/ava-labs/philosophersvm/trace"
	"github.com/ava-labs/philosophersvm/utils"
)

var (
	admin = auth.NamedKey("Admin")
	alice = auth.NamedKey("Alice")
	bob   = auth.NamedKey("Bob")
)

func genesisBytes(t *testing.T) []byte {
	t.Helper()
	g := genesis.NewDefaultGenesis(admin.Address, []*genesis.CustomAllocation{
		{Address: admin.Address, Balance: 10_00000000},
	})
	b, err := json.Marshal(g)
	require.NoError(t, err)
	return b
}

// newTestVM returns a VM that accepts submissions but only builds blocks
// when the test calls [VM.BuildBlock].
func newTestVM(t *testing.T, db state.Database) *VM {
	t.Helper()
	vm, err := New(
		context.Background(),
		logging.NoLog{},
		trace.Noop,
		config.NewDefault(),
		db,
		genesisBytes(t),
	)
	require.NoError(t, err)
	vm.ready.Store(true)
	return vm
}

func (vm *VM) sign(t *testing.T, key *auth.PrivateKey, expiry int64, action chain.Action) *chain.Transaction {
	t.Helper()
	tx, err := chain.NewTx(
		&chain.Base{Timestamp: expiry, ChainID: vm.ChainID()},
		action,
	).Sign(key.Factory(), registry.Parser)
	require.NoError(t, err)
	return tx
}

func (vm *VM) newTx(t *testing.T, key *auth.PrivateKey, action chain.Action) *chain.Transaction {
	return vm.sign(t, key, utils.UnixRMilli(-1, vm.rules.GetValidityWindow()), action)
}

func submit(t *testing.T, vm *VM, txs ...*chain.Transaction) {
	t.Helper()
	for _, err := range vm.Submit(context.Background(), txs) {
		require.NoError(t, err)
	}
}

func TestGenesisInitialized(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	vm := newTestVM(t, memdb.New())
	require.Zero(vm.LastAccepted().Height)

	bal, err := vm.ExecuteScript(ctx, scripts.GetBalance, scripts.Args{admin.Address.String()})
	require.NoError(err)
	require.Equal(uint64(10_00000000), bal)

	blk, err := vm.GetBlock(0)
	require.NoError(err)
	require.Empty(blk.Block.Txs)

	_, err = vm.GetBlock(1)
	require.ErrorIs(err, ErrBlockNotFound)
}

func TestBuildBlockExecutesInOrder(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	vm := newTestVM(t, memdb.New())
	var streamed []*chain.ExecutedBlock
	vm.AddBlockSubscription(event.SubscriptionFunc[*chain.ExecutedBlock]{
		AcceptF: func(_ context.Context, blk *chain.ExecutedBlock) error {
			streamed = append(streamed, blk)
			return nil
		},
	})

	setup := vm.newTx(t, alice, &actions.SetupCollection{})
	mint := vm.newTx(t, admin, &actions.MintPhilosopher{
		To:     alice.Address,
		Kind:   storage.Socrates,
		Rarity: storage.Epic,
	})
	// Bob has no collection: reverts without touching state.
	bad := vm.newTx(t, alice, &actions.TransferPhilosopher{To: bob.Address, ID: 0})
	submit(t, vm, setup, mint, bad)

	blk, err := vm.BuildBlock(ctx)
	require.NoError(err)
	require.NotNil(blk)
	require.Equal(uint64(1), blk.Block.Height)
	require.Len(blk.Block.Txs, 3)
	require.Equal(setup.ID(), blk.Block.Txs[0].ID())
	require.Equal(bad.ID(), blk.Block.Txs[2].ID())
	require.Equal([]*chain.ExecutedBlock{blk}, streamed)
	require.Equal(blk.Block, vm.LastAccepted())

	record, err := vm.WaitForTransaction(ctx, mint.ID())
	require.NoError(err)
	require.True(record.Result.Success)
	require.Equal(uint64(1), record.Height)
	events, err := record.Result.ParseEvents(registry.Parser)
	require.NoError(err)
	require.Equal([]chain.Event{&actions.Minted{ID: 0, Kind: storage.Socrates, Rarity: storage.Epic, To: alice.Address}}, events)

	record, err = vm.GetTransaction(ctx, bad.ID())
	require.NoError(err)
	require.False(record.Result.Success)
	require.Empty(record.Result.Events)
	require.ErrorIs(record.Result.Err(registry.KnownErrors...), storage.ErrNoCollection)

	n, err := vm.ExecuteScript(ctx, scripts.GetCollectionLn, scripts.Args{alice.Address.String()})
	require.NoError(err)
	require.Equal(1, n)

	// Nothing left to build.
	blk, err = vm.BuildBlock(ctx)
	require.NoError(err)
	require.Nil(blk)
}

func TestSubmitRejects(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	vm := newTestVM(t, memdb.New())
	window := vm.rules.GetValidityWindow()

	valid := vm.newTx(t, alice, &actions.SetupCollection{})
	submit(t, vm, valid)
	require.ErrorIs(vm.Submit(ctx, []*chain.Transaction{valid})[0], ErrDuplicateTx)

	wrongChain, err := chain.NewTx(
		&chain.Base{Timestamp: utils.UnixRMilli(-1, window), ChainID: ids.GenerateTestID()},
		&actions.SetupCollection{},
	).Sign(bob.Factory(), registry.Parser)
	require.NoError(err)

	tampered := vm.newTx(t, bob, &actions.SetupCollection{})
	signed := vm.newTx(t, admin, &actions.SetupStorefront{})
	tampered.Auth = signed.Auth

	errs := vm.Submit(ctx, []*chain.Transaction{
		vm.sign(t, bob, utils.UnixRMilli(-1, -10_000), &actions.SetupCollection{}),
		vm.sign(t, bob, utils.UnixRMilli(-1, 2*window), &actions.SetupCollection{}),
		wrongChain,
		tampered,
		vm.newTx(t, bob, &actions.SetupStorefront{}),
	})
	require.ErrorIs(errs[0], chain.ErrTimestampTooLate)
	require.ErrorIs(errs[1], chain.ErrTimestampTooEarly)
	require.ErrorIs(errs[2], chain.ErrInvalidChainID)
	require.ErrorIs(errs[3], chain.ErrAuthFailed)
	require.NoError(errs[4])
	require.Equal(2, vm.mempool.Len(ctx))

	_, err = vm.BuildBlock(ctx)
	require.NoError(err)
	// Included transactions stay rejected until they expire.
	require.ErrorIs(vm.Submit(ctx, []*chain.Transaction{valid})[0], ErrDuplicateTx)

	vm.ready.Store(false)
	require.ErrorIs(vm.Submit(ctx, []*chain.Transaction{vm.newTx(t, bob, &actions.SetupCollection{})})[0], ErrNotReady)
}

func TestWaitForTransaction(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	vm := newTestVM(t, memdb.New())
	tx := vm.newTx(t, alice, &actions.SetupCollection{})

	_, err := vm.GetTransaction(ctx, tx.ID())
	require.ErrorIs(err, ErrTxNotFound)

	shortCtx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	_, err = vm.WaitForTransaction(shortCtx, tx.ID())
	require.ErrorIs(err, context.DeadlineExceeded)

	submit(t, vm, tx)
	done := make(chan *TxRecord)
	go func() {
		record, err := vm.WaitForTransaction(ctx, tx.ID())
		if err != nil {
			close(done)
			return
		}
		done <- record
	}()
	require.Eventually(func() bool {
		vm.waitersL.Lock()
		defer vm.waitersL.Unlock()
		return len(vm.waiters[tx.ID()]) == 1
	}, 5*time.Second, time.Millisecond)

	_, err = vm.BuildBlock(ctx)
	require.NoError(err)
	record := <-done
	require.NotNil(record)
	require.True(record.Result.Success)
}

func TestFailedBlockReleasesWaiters(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	db := memdb.New()
	vm := newTestVM(t, db)
	tx := vm.newTx(t, alice, &actions.SetupCollection{})
	submit(t, vm, tx)

	ch := make(chan error, 1)
	vm.waitersL.Lock()
	vm.waiters[tx.ID()] = append(vm.waiters[tx.ID()], ch)
	vm.waitersL.Unlock()

	// Every write to a closed database fails.
	require.NoError(db.Close())
	blk, err := vm.BuildBlock(ctx)
	require.Error(err)
	require.Nil(blk)

	select {
	case err := <-ch:
		require.ErrorIs(err, ErrBlockFailed)
	default:
		require.FailNow("waiter was not released")
	}
	require.Zero(vm.LastAccepted().Height)
}

func TestExpiredTransactionDropped(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	vm := newTestVM(t, memdb.New())
	// Bypass submission checks to queue an already expired transaction.
	tx := vm.sign(t, alice, utils.UnixRMilli(-1, -5_000), &actions.SetupCollection{})
	require.NoError(vm.mempool.Add(ctx, tx))

	errc := make(chan error)
	go func() {
		_, err := vm.WaitForTransaction(ctx, tx.ID())
		errc <- err
	}()
	require.Eventually(func() bool {
		vm.waitersL.Lock()
		defer vm.waitersL.Unlock()
		return len(vm.waiters[tx.ID()]) == 1
	}, 5*time.Second, time.Millisecond)

	blk, err := vm.BuildBlock(ctx)
	require.NoError(err)
	require.Nil(blk)
	require.ErrorIs(<-errc, ErrTxExpired)
	require.Zero(vm.mempool.Len(ctx))
}

func TestBuilderLoop(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	vm, err := New(ctx, logging.NoLog{}, trace.Noop, config.NewDefault(), memdb.New(), genesisBytes(t))
	require.NoError(err)
	vm.Start()

	tx := vm.newTx(t, admin, &actions.MintTokens{To: bob.Address, Value: 100_00000000})
	submit(t, vm, tx)

	waitCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	record, err := vm.WaitForTransaction(waitCtx, tx.ID())
	require.NoError(err)
	require.True(record.Result.Success)

	bal, err := vm.ExecuteScript(ctx, scripts.GetBalance, scripts.Args{bob.Address.String()})
	require.NoError(err)
	require.Equal(uint64(100_00000000), bal)

	require.NoError(vm.Shutdown(ctx))
	require.ErrorIs(vm.Submit(ctx, []*chain.Transaction{tx})[0], ErrNotReady)
}

func TestRestartFromDisk(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	dir := t.TempDir()
	db, _, err := pebble.New(dir, pebble.NewDefaultConfig())
	require.NoError(err)

	vm := newTestVM(t, db)
	tx := vm.newTx(t, alice, &actions.SetupCollection{})
	submit(t, vm, tx)
	blk, err := vm.BuildBlock(ctx)
	require.NoError(err)
	require.NoError(vm.Shutdown(ctx))

	db, _, err = pebble.New(dir, pebble.NewDefaultConfig())
	require.NoError(err)
	restarted := newTestVM(t, db)
	defer func() {
		require.NoError(restarted.Shutdown(ctx))
	}()

	require.Equal(blk.Block.ID(), restarted.LastAccepted().ID())
	record, err := restarted.GetTransaction(ctx, tx.ID())
	require.NoError(err)
	require.True(record.Result.Success)

	// Replay protection survives the restart.
	require.ErrorIs(restarted.Submit(ctx, []*chain.Transaction{tx})[0], ErrDuplicateTx)

	// Genesis allocations are not applied twice.
	bal, err := restarted.ExecuteScript(ctx, scripts.GetBalance, scripts.Args{admin.Address.String()})
	require.NoError(err)
	require.Equal(uint64(10_00000000), bal)
}
