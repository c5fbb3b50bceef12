// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import (
	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/consts"
)

// CreateBatchMessage packs [msgs] into a single websocket frame.
func CreateBatchMessage(msgs [][]byte) []byte {
	size := consts.IntLen
	for _, msg := range msgs {
		size += codec.BytesLen(msg)
	}
	p := codec.NewWriter(size, consts.MaxInt)
	p.PackInt(uint32(len(msgs)))
	for _, msg := range msgs {
		p.PackBytes(msg)
	}
	return p.Bytes()
}

// ParseBatchMessage splits a frame built by [CreateBatchMessage]. Each
// message may be at most [maxSize] bytes.
func ParseBatchMessage(maxSize int, msg []byte) ([][]byte, error) {
	p := codec.NewReader(msg, consts.MaxInt)
	count := p.UnpackInt(false)
	msgs := make([][]byte, 0, min(int(count), len(msg)))
	for i := uint32(0); i < count && p.Err() == nil; i++ {
		var next []byte
		p.UnpackBytes(maxSize, true, &next)
		msgs = append(msgs, next)
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, codec.ErrExtraBytes
	}
	return msgs, nil
}
