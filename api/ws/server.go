// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ws

import (
	"context"
	"sync"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/philosophersvm/api"
	"github.com/ava-labs/philosophersvm/chain"
	"github.com/ava-labs/philosophersvm/event"
	"github.com/ava-labs/philosophersvm/internal/eheap"
	"github.com/ava-labs/philosophersvm/pubsub"
)

const Endpoint = "/corews"

var _ api.HandlerFactory = (*WebSocketServerFactory)(nil)

// WebSocketServerFactory mounts a [WebSocketServer] and subscribes it to
// accepted blocks.
type WebSocketServerFactory struct {
	Config *pubsub.ServerConfig
}

func (w WebSocketServerFactory) New(vm api.VM) (api.Handler, error) {
	cfg := w.Config
	if cfg == nil {
		cfg = pubsub.NewDefaultServerConfig()
	}
	server, handler := NewWebSocketServer(vm, cfg)
	vm.AddBlockSubscription(event.SubscriptionFunc[*chain.ExecutedBlock]{
		AcceptF: server.AcceptBlock,
	})
	return api.Handler{
		Path:    Endpoint,
		Handler: handler,
	}, nil
}

// WebSocketServer streams accepted blocks to block listeners and the
// outcome of submitted transactions to whoever submitted them.
type WebSocketServer struct {
	vm  api.VM
	log logging.Logger

	s *pubsub.Server

	blockListeners *pubsub.Connections

	txL         sync.Mutex
	txListeners map[ids.ID]*pubsub.Connections
	// expiringTxs ensures every tx listener is eventually answered.
	expiringTxs *eheap.ExpiryHeap[*chain.Transaction]
}

func NewWebSocketServer(vm api.VM, cfg *pubsub.ServerConfig) (*WebSocketServer, *pubsub.Server) {
	w := &WebSocketServer{
		vm:             vm,
		log:            vm.Logger(),
		blockListeners: pubsub.NewConnections(),
		txListeners:    map[ids.ID]*pubsub.Connections{},
		expiringTxs:    eheap.New[*chain.Transaction](),
	}
	w.s = pubsub.New(w.log, cfg, w.MessageCallback())
	return w, w.s
}

func (w *WebSocketServer) AddTxListener(tx *chain.Transaction, c *pubsub.Connection) {
	w.txL.Lock()
	defer w.txL.Unlock()

	txID := tx.ID()
	connections, ok := w.txListeners[txID]
	if !ok {
		connections = pubsub.NewConnections()
		w.txListeners[txID] = connections
	}
	connections.Add(c)
	w.expiringTxs.Add(tx)
}

func (w *WebSocketServer) removeTxListener(txID ids.ID, c *pubsub.Connection) {
	w.txL.Lock()
	defer w.txL.Unlock()

	listeners, ok := w.txListeners[txID]
	if !ok {
		return
	}
	listeners.Remove(c)
	if listeners.Len() == 0 {
		delete(w.txListeners, txID)
	}
}

// setMinTx answers every listener of a transaction that expired before
// [t] with an empty result. Callers hold [txL].
func (w *WebSocketServer) setMinTx(t int64) error {
	expired := w.expiringTxs.SetMin(t)
	for _, tx := range expired {
		listeners, ok := w.txListeners[tx.ID()]
		if !ok {
			continue
		}
		msg, err := PackTxMessage(tx.ID(), nil)
		if err != nil {
			return err
		}
		w.s.Publish(msg, listeners)
		delete(w.txListeners, tx.ID())
	}
	if exp := len(expired); exp > 0 {
		w.log.Debug("expired listeners", zap.Int("count", exp))
	}
	return nil
}

func (w *WebSocketServer) AcceptBlock(_ context.Context, b *chain.ExecutedBlock) error {
	if w.blockListeners.Len() > 0 {
		msg, err := PackBlockMessage(b)
		if err != nil {
			return err
		}
		inactive := w.s.Publish(msg, w.blockListeners)
		for _, conn := range inactive {
			w.blockListeners.Remove(conn)
		}
	}

	w.txL.Lock()
	defer w.txL.Unlock()
	for i, tx := range b.Block.Txs {
		listeners, ok := w.txListeners[tx.ID()]
		if !ok {
			continue
		}
		msg, err := PackTxMessage(tx.ID(), b.Results[i])
		if err != nil {
			return err
		}
		// Inactive connections are dropped with the listener set.
		_ = w.s.Publish(msg, listeners)
		delete(w.txListeners, tx.ID())
	}
	return w.setMinTx(b.Block.Timestamp)
}

func (w *WebSocketServer) MessageCallback() pubsub.Callback {
	return func(msgBytes []byte, c *pubsub.Connection) {
		ctx, span := w.vm.Tracer().Start(context.Background(), "WebSocketServer.Callback")
		defer span.End()

		if len(msgBytes) == 0 {
			w.log.Error("failed to unmarshal msg",
				zap.Int("len", len(msgBytes)),
			)
			return
		}

		switch msgBytes[0] {
		case BlockMode:
			w.blockListeners.Add(c)
			w.log.Debug("added block listener")
		case TxMode:
			msgBytes = msgBytes[1:]
			tx, err := chain.ParseTx(msgBytes, w.vm.Parser())
			if err != nil {
				w.log.Error("failed to unmarshal tx",
					zap.Int("len", len(msgBytes)),
					zap.Error(err),
				)
				return
			}

			txID := tx.ID()
			w.AddTxListener(tx, c)
			if err := w.vm.Submit(ctx, []*chain.Transaction{tx})[0]; err != nil {
				w.removeTxListener(txID, c)
				w.log.Debug("failed to submit tx",
					zap.Stringer("txID", txID),
					zap.Error(err),
				)
				msg, perr := PackRejectMessage(txID, err)
				if perr != nil {
					w.log.Error("failed to pack reject message", zap.Error(perr))
					return
				}
				c.Send(msg)
				return
			}
			w.log.Debug("submitted tx", zap.Stringer("id", txID))
		default:
			w.log.Error("unexpected message type",
				zap.Int("len", len(msgBytes)),
				zap.Uint8("mode", msgBytes[0]),
			)
		}
	}
}
