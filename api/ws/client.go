// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ws

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gorilla/websocket"
	"go.uber.org/atomic"

	"github.com/ava-labs/philosophersvm/chain"
	"github.com/ava-labs/philosophersvm/pubsub"
)

const (
	// maxBlockTxs bounds the blocks a client is willing to decode.
	maxBlockTxs = 65_536

	writeDelay = 25 * time.Millisecond
)

type WebSocketClient struct {
	conn *websocket.Conn
	mb   *pubsub.MessageBuffer

	maxMessageSize int

	readStopped  chan struct{}
	writeStopped chan struct{}

	pendingBlocks chan []byte
	pendingTxs    chan []byte

	closing atomic.Bool
	closed  atomic.Bool
	errl         sync.Once
	err          atomic.Error
}

// NewWebSocketClient dials the node at [uri] (its http base address) and
// starts the read and write loops.
func NewWebSocketClient(uri string, handshakeTimeout time.Duration, pending int, maxSize int) (*WebSocketClient, error) {
	uri = strings.TrimSuffix(uri, "/")
	uri = strings.Replace(uri, "http", "ws", 1) + Endpoint
	dialer := &websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
		ReadBufferSize:   maxSize,
		WriteBufferSize:  maxSize,
	}
	conn, resp, err := dialer.Dial(uri, nil)
	if err != nil {
		return nil, err
	}
	_ = resp.Body.Close()

	c := &WebSocketClient{
		conn:           conn,
		mb:             pubsub.NewMessageBuffer(logging.NoLog{}, pending, maxSize, writeDelay),
		maxMessageSize: maxSize,
		readStopped:    make(chan struct{}),
		writeStopped:   make(chan struct{}),
		pendingBlocks:  make(chan []byte, pending),
		pendingTxs:     make(chan []byte, pending),
	}
	go c.readLoop()
	go c.writeLoop()
	return c, nil
}

func (c *WebSocketClient) setErr(err error) {
	c.errl.Do(func() {
		c.err.Store(err)
	})
}

func (c *WebSocketClient) readLoop() {
	defer close(c.readStopped)

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			c.setErr(err)
			return
		}
		msgs, err := pubsub.ParseBatchMessage(c.maxMessageSize, raw)
		if err != nil {
			c.setErr(err)
			return
		}
		for _, msg := range msgs {
			if len(msg) == 0 {
				continue
			}
			switch msg[0] {
			case BlockMode:
				c.pendingBlocks <- msg[1:]
			case TxMode, RejectMode:
				c.pendingTxs <- msg
			}
		}
	}
}

func (c *WebSocketClient) writeLoop() {
	defer close(c.writeStopped)

	for msg := range c.mb.Queue {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			c.setErr(err)
			return
		}
	}
	_ = c.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
}

func (c *WebSocketClient) stopErr() error {
	if err := c.err.Load(); err != nil {
		return fmt.Errorf("%w: %w", ErrClosed, err)
	}
	return ErrClosed
}

// RegisterBlocks subscribes to every block accepted from now on.
func (c *WebSocketClient) RegisterBlocks() error {
	if c.closed.Load() {
		return ErrClosed
	}
	return c.mb.Send([]byte{BlockMode})
}

// ListenBlock returns the next accepted block.
func (c *WebSocketClient) ListenBlock(ctx context.Context, parser chain.Parser) (*chain.ExecutedBlock, error) {
	select {
	case msg := <-c.pendingBlocks:
		return UnpackBlockMessage(msg, maxBlockTxs, parser)
	case <-c.readStopped:
		return nil, c.stopErr()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// RegisterTx submits [tx] through the stream. Its outcome is delivered to
// [ListenTx].
func (c *WebSocketClient) RegisterTx(tx *chain.Transaction) error {
	if c.closed.Load() {
		return ErrClosed
	}
	return c.mb.Send(append([]byte{TxMode}, tx.Bytes()...))
}

// ListenTx returns the outcome of the next transaction registered with
// [RegisterTx]. A transaction that expired returns [ErrExpired]; one the
// node refused returns [ErrRejected].
func (c *WebSocketClient) ListenTx(ctx context.Context) (ids.ID, *chain.Result, error) {
	select {
	case msg := <-c.pendingTxs:
		if msg[0] == RejectMode {
			txID, reason, err := UnpackRejectMessage(msg[1:])
			if err != nil {
				return ids.Empty, nil, err
			}
			return txID, nil, fmt.Errorf("%w: %s", ErrRejected, reason)
		}
		txID, result, err := UnpackTxMessage(msg[1:])
		if err != nil {
			return ids.Empty, nil, err
		}
		if result == nil {
			return txID, nil, ErrExpired
		}
		return txID, result, nil
	case <-c.readStopped:
		return ids.Empty, nil, c.stopErr()
	case <-ctx.Done():
		return ids.Empty, nil, ctx.Err()
	}
}

// Close flushes pending writes and closes the connection.
func (c *WebSocketClient) Close() error {
	if !c.closing.CompareAndSwap(false, true) {
		return ErrClosed
	}
	_ = c.mb.Close()
	<-c.writeStopped
	c.closed.Store(true)
	return c.conn.Close()
}
