// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/timer"
	"go.uber.org/zap"
)

// MessageBuffer groups messages sent within [timeout] of each other into a
// single batch frame on [Queue].
type MessageBuffer struct {
	Queue chan []byte

	l            sync.Mutex
	log          logging.Logger
	pending      [][]byte
	pendingSize  int
	maxSize      int
	timeout      time.Duration
	pendingTimer *timer.Timer
	closed       bool
}

func NewMessageBuffer(log logging.Logger, pending int, maxSize int, timeout time.Duration) *MessageBuffer {
	m := &MessageBuffer{
		Queue:   make(chan []byte, pending),
		log:     log,
		maxSize: maxSize,
		timeout: timeout,
	}
	m.pendingTimer = timer.NewTimer(func() {
		m.l.Lock()
		defer m.l.Unlock()

		if m.closed || len(m.pending) == 0 {
			return
		}
		m.flush()
	})
	go m.pendingTimer.Dispatch()
	return m
}

// Close flushes whatever is pending and closes [Queue].
func (m *MessageBuffer) Close() error {
	m.l.Lock()
	defer m.l.Unlock()

	if m.closed {
		return ErrClosed
	}
	if len(m.pending) > 0 {
		m.flush()
	}
	m.pendingTimer.Stop()
	m.closed = true
	close(m.Queue)
	return nil
}

func (m *MessageBuffer) flush() {
	select {
	case m.Queue <- CreateBatchMessage(m.pending):
	default:
		m.log.Debug("dropped pending messages", zap.Int("count", len(m.pending)))
	}
	m.pendingSize = 0
	m.pending = nil
}

func (m *MessageBuffer) Send(msg []byte) error {
	m.l.Lock()
	defer m.l.Unlock()

	if m.closed {
		return ErrClosed
	}
	l := len(msg)
	if l > m.maxSize {
		return ErrMessageTooLarge
	}
	if m.pendingSize+l > m.maxSize {
		m.pendingTimer.Cancel()
		m.flush()
	}
	m.pendingSize += l
	m.pending = append(m.pending, msg)
	if len(m.pending) == 1 {
		m.pendingTimer.SetTimeoutIn(m.timeout)
	}
	return nil
}
