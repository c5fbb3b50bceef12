// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package node

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/philosophersvm/api"
	"github.com/ava-labs/philosophersvm/api/jsonrpc"
	"github.com/ava-labs/philosophersvm/api/ws"
	"github.com/ava-labs/philosophersvm/auth"
	"github.com/ava-labs/philosophersvm/config"
	"github.com/ava-labs/philosophersvm/crypto/ed25519"
	"github.com/ava-labs/philosophersvm/genesis"
	"github.com/ava-labs/philosophersvm/pebble"
	"github.com/ava-labs/philosophersvm/pubsub"
	"github.com/ava-labs/philosophersvm/server"
	"github.com/ava-labs/philosophersvm/state"
	ptrace "github.com/ava-labs/philosophersvm/trace"
	"github.com/ava-labs/philosophersvm/vm"
)

const (
	Name = "philosophersvm"

	BaseURL         = "/ext/bc/" + Name
	MetricsEndpoint = "/metrics"

	shutdownTimeout = 5 * time.Second
)

var ErrMissingAdmin = errors.New("adminKey or genesisFile is required")

// Node runs a [vm.VM] behind the HTTP API.
type Node struct {
	config *config.Config
	log    logging.Logger
	tracer trace.Tracer

	vm     *vm.VM
	server *server.Server
}

// New opens the database named by [cfg], loads the ledger and registers
// every API route. Nothing is served until [Node.Run].
func New(ctx context.Context, log logging.Logger, cfg *config.Config, genesisBytes []byte) (*Node, error) {
	tracer, err := ptrace.New(cfg.Trace)
	if err != nil {
		return nil, err
	}
	db, dbRegistry, err := openDatabase(cfg)
	if err != nil {
		return nil, err
	}
	v, err := vm.New(ctx, log, tracer, cfg, db, genesisBytes)
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}

	listener, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		return nil, errors.Join(err, v.Shutdown(ctx))
	}
	n := &Node{
		config: cfg,
		log:    log,
		tracer: tracer,
		vm:     v,
		server: server.New(
			BaseURL,
			log,
			listener,
			server.NewDefaultHTTPConfig(),
			cfg.AllowedOrigins,
			shutdownTimeout,
		),
	}

	wsConfig := pubsub.NewDefaultServerConfig()
	wsConfig.MaxPendingMessages = cfg.StreamingBacklogSize
	factories := []api.HandlerFactory{
		jsonrpc.JSONRPCServerFactory{},
		ws.WebSocketServerFactory{Config: wsConfig},
	}
	for _, factory := range factories {
		handler, err := factory.New(v)
		if err != nil {
			return nil, errors.Join(err, n.Shutdown(ctx))
		}
		if err := n.server.AddRoute(handler.Handler, handler.Path); err != nil {
			return nil, errors.Join(err, n.Shutdown(ctx))
		}
	}
	if cfg.MetricsEnabled {
		gatherers := prometheus.Gatherers{v.Registry()}
		if dbRegistry != nil {
			gatherers = append(gatherers, dbRegistry)
		}
		metrics := promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{})
		if err := n.server.AddRoute(metrics, MetricsEndpoint); err != nil {
			return nil, errors.Join(err, n.Shutdown(ctx))
		}
	}
	return n, nil
}

func openDatabase(cfg *config.Config) (state.Database, *prometheus.Registry, error) {
	switch cfg.DatabaseBackend {
	case config.PebbleDB:
		return pebble.New(cfg.DatabasePath, cfg.Pebble)
	case config.MemDB:
		return memdb.New(), nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrInvalidBackend, cfg.DatabaseBackend)
	}
}

func (n *Node) VM() *vm.VM { return n.vm }

// URI is the base address of the node's API.
func (n *Node) URI() string { return n.server.URI() }

// Run starts the builder and serves the API until [ctx] is done.
func (n *Node) Run(ctx context.Context) error {
	n.vm.Start()
	n.log.Info("node started",
		zap.String("uri", n.URI()),
		zap.Stringer("chainID", n.vm.ChainID()),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(n.server.Dispatch)
	g.Go(func() error {
		<-gctx.Done()
		return n.Shutdown(context.Background())
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Shutdown stops serving and closes the ledger.
func (n *Node) Shutdown(ctx context.Context) error {
	err := errors.Join(
		n.server.Shutdown(),
		n.vm.Shutdown(ctx),
		n.tracer.Close(),
	)
	n.log.Info("node stopped", zap.Error(err))
	return err
}

// LoadGenesis returns the genesis named by [cfg]. Without a genesis file a
// default genesis is administered by [config.AdminKey].
func LoadGenesis(cfg *config.Config) ([]byte, error) {
	if cfg.GenesisFile != "" {
		return os.ReadFile(cfg.GenesisFile)
	}
	if cfg.AdminKey == "" {
		return nil, ErrMissingAdmin
	}
	key, err := ed25519.HexToKey(cfg.AdminKey)
	if err != nil {
		return nil, err
	}
	admin := auth.NewPrivateKey(key)
	return json.Marshal(genesis.NewDefaultGenesis(admin.Address, nil))
}
