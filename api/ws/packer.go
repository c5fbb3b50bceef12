// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ws

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/philosophersvm/chain"
	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/consts"
)

const (
	BlockMode byte = 0
	TxMode    byte = 1
	// RejectMode reports a transaction the node refused to queue.
	RejectMode byte = 2
)

func PackBlockMessage(b *chain.ExecutedBlock) ([]byte, error) {
	bytes, err := b.Marshal()
	if err != nil {
		return nil, err
	}
	return append([]byte{BlockMode}, bytes...), nil
}

func UnpackBlockMessage(msg []byte, maxTxs int, parser chain.Parser) (*chain.ExecutedBlock, error) {
	return chain.UnmarshalExecutedBlock(msg, maxTxs, parser)
}

// PackTxMessage packs a txID and its result. A nil result indicates the tx
// expired before inclusion, the only failure reported to listeners.
func PackTxMessage(txID ids.ID, result *chain.Result) ([]byte, error) {
	size := consts.ByteLen + consts.IDLen + consts.BoolLen
	if result != nil {
		size += result.Size()
	}
	p := codec.NewWriter(size, consts.MaxInt)
	p.PackByte(TxMode)
	p.PackID(txID)
	p.PackBool(result != nil)
	if result != nil {
		result.Marshal(p)
	}
	return p.Bytes(), p.Err()
}

// UnpackTxMessage reverses [PackTxMessage] without the leading mode byte.
func UnpackTxMessage(msg []byte) (ids.ID, *chain.Result, error) {
	p := codec.NewReader(msg, consts.MaxInt)
	var txID ids.ID
	p.UnpackID(true, &txID)
	var result *chain.Result
	if p.UnpackBool() {
		r, err := chain.UnmarshalResult(p)
		if err != nil {
			return ids.Empty, nil, err
		}
		result = r
	}
	if err := p.Err(); err != nil {
		return ids.Empty, nil, err
	}
	if !p.Empty() {
		return ids.Empty, nil, chain.ErrInvalidObject
	}
	return txID, result, nil
}

func PackRejectMessage(txID ids.ID, err error) ([]byte, error) {
	msg := err.Error()
	p := codec.NewWriter(consts.ByteLen+consts.IDLen+codec.StringLen(msg), consts.MaxInt)
	p.PackByte(RejectMode)
	p.PackID(txID)
	p.PackString(msg)
	return p.Bytes(), p.Err()
}

// UnpackRejectMessage reverses [PackRejectMessage] without the leading mode
// byte.
func UnpackRejectMessage(msg []byte) (ids.ID, string, error) {
	p := codec.NewReader(msg, consts.MaxInt)
	var txID ids.ID
	p.UnpackID(true, &txID)
	reason := p.UnpackString(true)
	if err := p.Err(); err != nil {
		return ids.Empty, "", err
	}
	if !p.Empty() {
		return ids.Empty, "", chain.ErrInvalidObject
	}
	return txID, reason, nil
}
