// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/ava-labs/philosophersvm/chain"
	"github.com/ava-labs/philosophersvm/event"
	"github.com/ava-labs/philosophersvm/state"
	"github.com/ava-labs/philosophersvm/tstate"
)

// changesPerTx sizes the state diff of a block.
const changesPerTx = 8

func (vm *VM) signalBuild() {
	select {
	case vm.trigger <- struct{}{}:
	default:
	}
}

// buildLoop builds a block whenever a transaction arrives and on every
// tick, so expired transactions are eventually dropped.
func (vm *VM) buildLoop() {
	defer close(vm.done)

	t := time.NewTicker(vm.config.BlockBuildFrequency)
	defer t.Stop()
	for {
		select {
		case <-vm.stop:
			return
		case <-vm.trigger:
		case <-t.C:
		}
		if _, err := vm.BuildBlock(context.Background()); err != nil {
			vm.log.Error("unable to build block", zap.Error(err))
		}
	}
}

// BuildBlock drains up to [GetMaxBlockTxs] transactions from the mempool,
// executes them in order and commits the block. It returns nil when there
// was nothing to include.
func (vm *VM) BuildBlock(ctx context.Context) (*chain.ExecutedBlock, error) {
	ctx, span := vm.tracer.Start(ctx, "VM.BuildBlock")
	defer span.End()

	start := time.Now()
	blk, expired, dropped, err := vm.buildAndCommit(ctx)
	for _, tx := range expired {
		vm.notifyWaiters(tx.ID(), ErrTxExpired)
	}
	for _, tx := range dropped {
		vm.notifyWaiters(tx.ID(), fmt.Errorf("%w: %w", ErrBlockFailed, err))
	}
	if len(expired) > 0 {
		vm.metrics.txsExpired.Add(float64(len(expired)))
		vm.log.Debug("dropped expired transactions", zap.Int("count", len(expired)))
	}
	vm.metrics.mempoolSize.Set(float64(vm.mempool.Len(ctx)))
	if err != nil || blk == nil {
		return nil, err
	}
	vm.metrics.blockBuild.Observe(float64(time.Since(start)))
	span.SetAttributes(
		attribute.Int64("height", int64(blk.Block.Height)),
		attribute.Int("txs", len(blk.Block.Txs)),
	)

	vm.accepted(ctx, blk)
	return blk, nil
}

// buildAndCommit returns the block, the transactions that expired and, on
// failure, the transactions that were popped but could not be committed.
func (vm *VM) buildAndCommit(ctx context.Context) (
	*chain.ExecutedBlock,
	[]*chain.Transaction,
	[]*chain.Transaction,
	error,
) {
	vm.stateLock.Lock()
	defer vm.stateLock.Unlock()

	parent := vm.lastAccepted
	timestamp := max(time.Now().UnixMilli(), parent.Timestamp)

	expired := vm.mempool.SetMinTimestamp(ctx, timestamp)
	candidates := vm.mempool.PopN(ctx, vm.rules.GetMaxBlockTxs())
	txs := make([]*chain.Transaction, 0, len(candidates))
	for _, tx := range candidates {
		if err := tx.Base.Execute(vm.rules.GetChainID(), vm.rules, timestamp); err != nil {
			expired = append(expired, tx)
			continue
		}
		if vm.seen.Has(tx.ID()) {
			continue
		}
		txs = append(txs, tx)
	}
	if len(txs) == 0 {
		return nil, expired, nil, nil
	}
	fail := func(err error) (*chain.ExecutedBlock, []*chain.Transaction, []*chain.Transaction, error) {
		return nil, expired, txs, err
	}

	executeStart := time.Now()
	ts := tstate.New(state.NewReader(vm.db), len(txs)*changesPerTx)
	results, err := vm.processor.Execute(ctx, ts, timestamp, txs)
	if err != nil {
		return fail(err)
	}
	vm.metrics.blockExecute.Observe(float64(time.Since(executeStart)))

	block, err := chain.NewBlock(parent.ID(), parent.Height+1, timestamp, txs)
	if err != nil {
		return fail(err)
	}
	blk := &chain.ExecutedBlock{Block: block, Results: results}

	commitStart := time.Now()
	batch := vm.db.NewBatch()
	if err := ts.WriteChanges(batch); err != nil {
		return fail(err)
	}
	if err := writeBlock(batch, blk); err != nil {
		return fail(err)
	}
	if err := batch.Write(); err != nil {
		return fail(err)
	}
	vm.metrics.blockCommit.Observe(float64(time.Since(commitStart)))

	vm.lastAccepted = block
	for _, tx := range txs {
		vm.seen.Add(tx)
	}
	vm.seen.SetMin(timestamp)
	return blk, expired, nil, nil
}

// accepted updates metrics, releases waiters and notifies subscriptions
// once [blk] is durable.
func (vm *VM) accepted(ctx context.Context, blk *chain.ExecutedBlock) {
	reverted, events := 0, 0
	for i, tx := range blk.Block.Txs {
		result := blk.Results[i]
		if !result.Success {
			reverted++
		}
		events += len(result.Events)
		vm.notifyWaiters(tx.ID(), nil)
	}
	vm.metrics.blocksAccepted.Inc()
	vm.metrics.txsAccepted.Add(float64(len(blk.Block.Txs)))
	vm.metrics.txsReverted.Add(float64(reverted))
	vm.metrics.eventsEmitted.Add(float64(events))
	vm.metrics.height.Set(float64(blk.Block.Height))

	vm.subsL.RLock()
	err := event.NotifyAll(ctx, blk, vm.subs...)
	vm.subsL.RUnlock()
	if err != nil {
		vm.log.Error("block subscription failed",
			zap.Uint64("height", blk.Block.Height),
			zap.Error(err),
		)
	}

	vm.log.Debug("accepted block",
		zap.Uint64("height", blk.Block.Height),
		zap.Stringer("blkID", blk.Block.ID()),
		zap.Stringer("parent", blk.Block.Parent),
		zap.Int("txs", len(blk.Block.Txs)),
		zap.Int("reverted", reverted),
		zap.Int("events", events),
	)
}
