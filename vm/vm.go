// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/philosophersvm/auth"
	"github.com/ava-labs/philosophersvm/chain"
	"github.com/ava-labs/philosophersvm/config"
	"github.com/ava-labs/philosophersvm/event"
	"github.com/ava-labs/philosophersvm/genesis"
	"github.com/ava-labs/philosophersvm/internal/eheap"
	"github.com/ava-labs/philosophersvm/internal/mempool"
	"github.com/ava-labs/philosophersvm/registry"
	"github.com/ava-labs/philosophersvm/scripts"
	"github.com/ava-labs/philosophersvm/state"
	"github.com/ava-labs/philosophersvm/tstate"
)

// VM is a single node ledger. Transactions are queued in a FIFO mempool and
// executed one at a time by a block builder; every block is committed to
// [db] in one batch.
type VM struct {
	config *config.Config
	log    logging.Logger
	tracer trace.Tracer
	parser chain.Parser

	genesis   *genesis.Genesis
	rules     *genesis.Rules
	processor *chain.Processor

	metrics  *Metrics
	registry *prometheus.Registry

	mempool *mempool.Mempool[*chain.Transaction]
	// seen holds transactions included in recent blocks until they expire,
	// so a replay is rejected while it would still pass the expiry check.
	seen *eheap.ExpiryHeap[*chain.Transaction]

	// stateLock serializes block commits against script reads.
	stateLock    sync.RWMutex
	db           state.Database
	lastAccepted *chain.StatelessBlock

	waitersL sync.Mutex
	waiters  map[ids.ID][]chan error

	subsL sync.RWMutex
	subs  []event.Subscription[*chain.ExecutedBlock]

	ready   atomic.Bool
	running atomic.Bool
	trigger chan struct{}
	stop    chan struct{}
	done    chan struct{}
}

// New opens the ledger stored in [db], initializing it from [genesisBytes]
// when it is empty.
func New(
	ctx context.Context,
	log logging.Logger,
	tracer trace.Tracer,
	cfg *config.Config,
	db state.Database,
	genesisBytes []byte,
) (*VM, error) {
	g, rules, err := genesis.Load(genesisBytes)
	if err != nil {
		return nil, fmt.Errorf("unable to load genesis: %w", err)
	}
	r, metrics, err := newMetrics()
	if err != nil {
		return nil, err
	}
	vm := &VM{
		config:    cfg,
		log:       log,
		tracer:    tracer,
		parser:    registry.Parser,
		genesis:   g,
		rules:     rules,
		processor: chain.NewProcessor(tracer, log, rules),
		metrics:   metrics,
		registry:  r,
		mempool:   mempool.New[*chain.Transaction](tracer, cfg.MempoolSize),
		seen:      eheap.New[*chain.Transaction](),
		db:        db,
		waiters:   map[ids.ID][]chan error{},
		trigger:   make(chan struct{}, 1),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	if err := vm.initLastAccepted(ctx); err != nil {
		return nil, err
	}
	return vm, nil
}

func (vm *VM) initLastAccepted(ctx context.Context) error {
	ctx, span := vm.tracer.Start(ctx, "VM.initLastAccepted")
	defer span.End()

	height, ok, err := getLastAcceptedHeight(vm.db)
	if err != nil {
		return err
	}
	if !ok {
		return vm.initGenesis(ctx)
	}
	blk, err := getBlock(vm.db, height, vm.rules.GetMaxBlockTxs(), vm.parser)
	if err != nil {
		return err
	}
	vm.lastAccepted = blk.Block
	vm.metrics.height.Set(float64(height))

	// Rebuild replay protection from the blocks still inside the
	// validity window.
	minTimestamp := blk.Block.Timestamp - vm.rules.GetValidityWindow()
	for {
		for _, tx := range blk.Block.Txs {
			vm.seen.Add(tx)
		}
		if blk.Block.Height == 0 || blk.Block.Timestamp < minTimestamp {
			break
		}
		blk, err = getBlock(vm.db, blk.Block.Height-1, vm.rules.GetMaxBlockTxs(), vm.parser)
		if err != nil {
			return err
		}
	}
	vm.seen.SetMin(vm.lastAccepted.Timestamp)
	vm.log.Info("loaded last accepted block",
		zap.Uint64("height", vm.lastAccepted.Height),
		zap.Stringer("blkID", vm.lastAccepted.ID()),
		zap.Int("seen", vm.seen.Len()),
	)
	return nil
}

func (vm *VM) initGenesis(ctx context.Context) error {
	ts := tstate.New(state.NewReader(vm.db), len(vm.genesis.CustomAllocation))
	tsv := ts.NewView()
	if err := vm.genesis.InitializeState(ctx, vm.tracer, tsv); err != nil {
		return err
	}
	tsv.Commit()
	blk, err := chain.NewBlock(ids.Empty, 0, 0, nil)
	if err != nil {
		return err
	}
	batch := vm.db.NewBatch()
	if err := ts.WriteChanges(batch); err != nil {
		return err
	}
	if err := writeBlock(batch, &chain.ExecutedBlock{Block: blk, Results: []*chain.Result{}}); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	vm.lastAccepted = blk
	vm.log.Info("initialized genesis",
		zap.Stringer("chainID", vm.rules.GetChainID()),
		zap.Stringer("admin", vm.rules.GetAdmin()),
		zap.Int("allocations", len(vm.genesis.CustomAllocation)),
	)
	return nil
}

// Start launches the block builder.
func (vm *VM) Start() {
	vm.ready.Store(true)
	vm.running.Store(true)
	go vm.buildLoop()
	vm.log.Info("vm started",
		zap.Duration("buildFrequency", vm.config.BlockBuildFrequency),
		zap.Int("mempoolSize", vm.config.MempoolSize),
	)
}

// Shutdown stops the builder and releases every waiter. It then closes the
// subscriptions and the database.
func (vm *VM) Shutdown(context.Context) error {
	vm.ready.Store(false)
	if vm.running.CompareAndSwap(true, false) {
		close(vm.stop)
		<-vm.done
	}

	vm.waitersL.Lock()
	for txID, chs := range vm.waiters {
		for _, ch := range chs {
			select {
			case ch <- ErrStopped:
			default:
			}
		}
		delete(vm.waiters, txID)
	}
	vm.waitersL.Unlock()

	vm.subsL.RLock()
	subErr := event.CloseAll(vm.subs...)
	vm.subsL.RUnlock()

	vm.stateLock.Lock()
	defer vm.stateLock.Unlock()
	return errors.Join(subErr, vm.db.Close())
}

func (vm *VM) Logger() logging.Logger { return vm.log }

func (vm *VM) Tracer() trace.Tracer { return vm.tracer }

func (vm *VM) Parser() chain.Parser { return vm.parser }

func (vm *VM) Rules() *genesis.Rules { return vm.rules }

func (vm *VM) Genesis() *genesis.Genesis { return vm.genesis }

func (vm *VM) ChainID() ids.ID { return vm.rules.GetChainID() }

// Registry exposes the VM metrics for scraping.
func (vm *VM) Registry() *prometheus.Registry { return vm.registry }

// AddBlockSubscription registers [sub] to receive every block accepted
// from now on.
func (vm *VM) AddBlockSubscription(sub event.Subscription[*chain.ExecutedBlock]) {
	vm.subsL.Lock()
	defer vm.subsL.Unlock()

	vm.subs = append(vm.subs, sub)
}

// LastAccepted returns the most recently committed block.
func (vm *VM) LastAccepted() *chain.StatelessBlock {
	vm.stateLock.RLock()
	defer vm.stateLock.RUnlock()

	return vm.lastAccepted
}

// GetBlock returns the committed block at [height] with its results.
func (vm *VM) GetBlock(height uint64) (*chain.ExecutedBlock, error) {
	vm.stateLock.RLock()
	defer vm.stateLock.RUnlock()

	return getBlock(vm.db, height, vm.rules.GetMaxBlockTxs(), vm.parser)
}

// Submit verifies [txs] and queues those that pass. The returned errors
// are index-aligned with [txs].
func (vm *VM) Submit(ctx context.Context, txs []*chain.Transaction) []error {
	ctx, span := vm.tracer.Start(ctx, "VM.Submit")
	defer span.End()
	span.SetAttributes(attribute.Int("txs", len(txs)))
	vm.metrics.txsSubmitted.Add(float64(len(txs)))

	errs := make([]error, len(txs))
	if !vm.ready.Load() {
		for i := range errs {
			errs[i] = ErrNotReady
		}
		vm.metrics.txsRejected.Add(float64(len(txs)))
		return errs
	}

	now := time.Now().UnixMilli()
	candidates := make([]int, 0, len(txs))
	for i, tx := range txs {
		if err := tx.Base.Execute(vm.rules.GetChainID(), vm.rules, now); err != nil {
			errs[i] = err
			continue
		}
		if vm.mempool.Has(ctx, tx.ID()) || vm.isSeen(tx.ID()) {
			errs[i] = ErrDuplicateTx
			continue
		}
		candidates = append(candidates, i)
	}
	vm.verifyAuth(ctx, txs, candidates, errs)

	added := 0
	for _, i := range candidates {
		if errs[i] != nil {
			continue
		}
		if err := vm.mempool.Add(ctx, txs[i]); err != nil {
			errs[i] = err
			continue
		}
		added++
	}
	vm.metrics.txsRejected.Add(float64(len(txs) - added))
	vm.metrics.mempoolSize.Set(float64(vm.mempool.Len(ctx)))
	if added > 0 {
		vm.signalBuild()
	}
	return errs
}

// verifyAuth checks the signatures of txs[candidates] in batches across
// [config.AuthVerifyCores]. A failed batch is re-checked one transaction at
// a time so only the bad signatures are rejected.
func (vm *VM) verifyAuth(ctx context.Context, txs []*chain.Transaction, candidates []int, errs []error) {
	if len(candidates) == 0 {
		return
	}
	_, span := vm.tracer.Start(ctx, "VM.verifyAuth")
	defer span.End()

	batch := auth.NewED25519Batch(vm.config.AuthVerifyCores, len(candidates))
	verifiers := []func() error{}
	for _, i := range candidates {
		msg, err := txs[i].Digest()
		if err != nil {
			errs[i] = err
			continue
		}
		if _, ok := txs[i].Auth.(*auth.ED25519); !ok {
			errs[i] = txs[i].Verify(ctx)
			continue
		}
		if verify := batch.Add(msg, txs[i].Auth); verify != nil {
			verifiers = append(verifiers, verify)
		}
	}
	verifiers = append(verifiers, batch.Done()...)

	var g errgroup.Group
	for _, verify := range verifiers {
		g.Go(verify)
	}
	if err := g.Wait(); err == nil {
		return
	}
	for _, i := range candidates {
		if errs[i] == nil {
			errs[i] = txs[i].Verify(ctx)
		}
	}
}

func (vm *VM) isSeen(txID ids.ID) bool {
	vm.stateLock.RLock()
	defer vm.stateLock.RUnlock()

	return vm.seen.Has(txID)
}

// GetTransaction returns the committed record of [txID] or [ErrTxNotFound].
func (vm *VM) GetTransaction(ctx context.Context, txID ids.ID) (*TxRecord, error) {
	_, span := vm.tracer.Start(ctx, "VM.GetTransaction")
	defer span.End()

	vm.stateLock.RLock()
	defer vm.stateLock.RUnlock()

	return getTxRecord(vm.db, txID)
}

// WaitForTransaction blocks until [txID] is committed, dropped from the
// mempool after expiring, or [ctx] is done.
func (vm *VM) WaitForTransaction(ctx context.Context, txID ids.ID) (*TxRecord, error) {
	ctx, span := vm.tracer.Start(ctx, "VM.WaitForTransaction")
	defer span.End()

	ch := make(chan error, 1)
	vm.waitersL.Lock()
	vm.waiters[txID] = append(vm.waiters[txID], ch)
	vm.waitersL.Unlock()
	defer vm.removeWaiter(txID, ch)

	// The transaction may have been committed before the waiter was
	// registered.
	if record, err := vm.GetTransaction(ctx, txID); !errors.Is(err, ErrTxNotFound) {
		return record, err
	}
	if !vm.mempool.Has(ctx, txID) && !vm.ready.Load() {
		return nil, ErrStopped
	}

	select {
	case err := <-ch:
		if err != nil {
			return nil, err
		}
		return vm.GetTransaction(ctx, txID)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (vm *VM) removeWaiter(txID ids.ID, ch chan error) {
	vm.waitersL.Lock()
	defer vm.waitersL.Unlock()

	chs := vm.waiters[txID]
	for i, c := range chs {
		if c == ch {
			chs = append(chs[:i], chs[i+1:]...)
			break
		}
	}
	if len(chs) == 0 {
		delete(vm.waiters, txID)
		return
	}
	vm.waiters[txID] = chs
}

func (vm *VM) notifyWaiters(txID ids.ID, err error) {
	vm.waitersL.Lock()
	defer vm.waitersL.Unlock()

	for _, ch := range vm.waiters[txID] {
		select {
		case ch <- err:
		default:
		}
	}
	delete(vm.waiters, txID)
}

// ExecuteScript runs the read-only script [name] against committed state.
func (vm *VM) ExecuteScript(ctx context.Context, name string, args scripts.Args) (any, error) {
	ctx, span := vm.tracer.Start(ctx, "VM.ExecuteScript")
	defer span.End()
	span.SetAttributes(attribute.String("script", name))

	start := time.Now()
	defer func() {
		vm.metrics.scriptExecute.Observe(float64(time.Since(start)))
	}()

	vm.stateLock.RLock()
	defer vm.stateLock.RUnlock()

	return scripts.Execute(ctx, state.NewReader(vm.db), name, args)
}

// ReadState returns the committed values of [keys].
func (vm *VM) ReadState(ctx context.Context, keys [][]byte) ([][]byte, []error) {
	vm.stateLock.RLock()
	defer vm.stateLock.RUnlock()

	im := state.NewReader(vm.db)
	values := make([][]byte, len(keys))
	errs := make([]error, len(keys))
	for i, key := range keys {
		values[i], errs[i] = im.GetValue(ctx, key)
	}
	return values, errs
}
