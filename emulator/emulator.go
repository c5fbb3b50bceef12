// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package emulator runs an in-process philosophersvm node backed by an
// in-memory database, for tests and local experimentation.
package emulator

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/philosophersvm/auth"
	"github.com/ava-labs/philosophersvm/client"
	"github.com/ava-labs/philosophersvm/config"
	"github.com/ava-labs/philosophersvm/consts"
	"github.com/ava-labs/philosophersvm/genesis"
	"github.com/ava-labs/philosophersvm/node"
)

const (
	readyTimeout = 10 * time.Second
	pollInterval = 10 * time.Millisecond
)

var ErrNotReady = errors.New("emulator did not become ready")

type Config struct {
	Log logging.Logger
	// Allocations are credited at genesis, keyed by account name.
	Allocations map[string]uint64
	// BlockBuildFrequency overrides the node default when positive.
	BlockBuildFrequency time.Duration
}

type Emulator struct {
	node   *node.Node
	client *client.Client
	admin  *auth.PrivateKey

	cancel context.CancelFunc
	g      *errgroup.Group
}

// Start boots a node on a free loopback port and waits until it answers.
func Start(ctx context.Context, cfg Config) (*Emulator, error) {
	log := cfg.Log
	if log == nil {
		log = logging.NoLog{}
	}
	admin := Account(consts.AdminName)

	nodeCfg := config.NewDefault()
	nodeCfg.ListenAddress = "127.0.0.1:0"
	nodeCfg.DatabaseBackend = config.MemDB
	nodeCfg.MetricsEnabled = false
	if cfg.BlockBuildFrequency > 0 {
		nodeCfg.BlockBuildFrequency = cfg.BlockBuildFrequency
	}

	allocations := make([]*genesis.CustomAllocation, 0, len(cfg.Allocations))
	for name, balance := range cfg.Allocations {
		allocations = append(allocations, &genesis.CustomAllocation{
			Address: Account(name).Address,
			Balance: balance,
		})
	}
	genesisBytes, err := json.Marshal(genesis.NewDefaultGenesis(admin.Address, allocations))
	if err != nil {
		return nil, err
	}

	n, err := node.New(ctx, log, nodeCfg, genesisBytes)
	if err != nil {
		return nil, err
	}
	rctx, cancel := context.WithCancel(context.Background())
	g := &errgroup.Group{}
	g.Go(func() error { return n.Run(rctx) })

	e := &Emulator{
		node:   n,
		client: client.New(n.URI()),
		admin:  admin,
		cancel: cancel,
		g:      g,
	}
	if err := e.waitReady(ctx); err != nil {
		return nil, errors.Join(err, e.Stop())
	}
	return e, nil
}

func (e *Emulator) waitReady(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		if ok, err := e.client.RPC().Ping(ctx); err == nil && ok {
			return nil
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return errors.Join(ErrNotReady, ctx.Err())
		}
	}
}

// Account derives the deterministic key of a named account such as
// "Alice" or "Bob".
func Account(name string) *auth.PrivateKey {
	return auth.NamedKey(name)
}

func (*Emulator) Account(name string) *auth.PrivateKey {
	return Account(name)
}

// Admin is the account allowed to mint philosophers and tokens.
func (e *Emulator) Admin() *auth.PrivateKey {
	return e.admin
}

func (e *Emulator) Client() *client.Client {
	return e.client
}

func (e *Emulator) URI() string {
	return e.node.URI()
}

func (e *Emulator) Node() *node.Node {
	return e.node
}

// Stop shuts the node down and waits for it to exit.
func (e *Emulator) Stop() error {
	e.cancel()
	return e.g.Wait()
}
