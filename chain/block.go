// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/consts"
	"github.com/ava-labs/philosophersvm/utils"
)

// StatelessBlock is a totally ordered batch of transactions.
type StatelessBlock struct {
	Parent    ids.ID `json:"parent"`
	Height    uint64 `json:"height"`
	Timestamp int64  `json:"timestamp"`

	Txs []*Transaction `json:"txs"`

	bytes []byte
	id    ids.ID
}

func NewBlock(parent ids.ID, height uint64, timestamp int64, txs []*Transaction) (*StatelessBlock, error) {
	b := &StatelessBlock{
		Parent:    parent,
		Height:    height,
		Timestamp: timestamp,
		Txs:       txs,
	}
	if _, err := b.Marshal(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *StatelessBlock) ID() ids.ID { return b.id }

func (b *StatelessBlock) Bytes() []byte { return b.bytes }

func (b *StatelessBlock) Size() int {
	return consts.IDLen + consts.Uint64Len + consts.Int64Len + consts.IntLen + codec.CummSize(b.Txs)
}

func (b *StatelessBlock) Marshal() ([]byte, error) {
	if len(b.bytes) > 0 {
		return b.bytes, nil
	}
	p := codec.NewWriter(b.Size(), consts.MaxInt)
	p.PackID(b.Parent)
	p.PackUint64(b.Height)
	p.PackInt64(b.Timestamp)
	p.PackInt(uint32(len(b.Txs)))
	for _, tx := range b.Txs {
		if err := tx.Marshal(p); err != nil {
			return nil, err
		}
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	b.bytes = p.Bytes()
	b.id = utils.ToID(b.bytes)
	return b.bytes, nil
}

func UnmarshalBlock(raw []byte, maxTxs int, parser Parser) (*StatelessBlock, error) {
	var (
		p = codec.NewReader(raw, consts.MaxInt)
		b StatelessBlock
	)
	p.UnpackID(false, &b.Parent)
	b.Height = p.UnpackUint64(false)
	b.Timestamp = p.UnpackInt64(false)
	txs, err := UnmarshalTxs(p, maxTxs, parser)
	if err != nil {
		return nil, err
	}
	b.Txs = txs
	if !p.Empty() {
		return nil, fmt.Errorf("%w: remaining=%d", ErrInvalidObject, len(raw)-p.Offset())
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	b.bytes = raw
	b.id = utils.ToID(raw)
	return &b, nil
}

// ExecutedBlock is a block together with the results of its transactions.
type ExecutedBlock struct {
	Block   *StatelessBlock `json:"block"`
	Results []*Result       `json:"results"`
}

func (e *ExecutedBlock) Marshal() ([]byte, error) {
	blk, err := e.Block.Marshal()
	if err != nil {
		return nil, err
	}
	results, err := MarshalResults(e.Results)
	if err != nil {
		return nil, err
	}
	p := codec.NewWriter(codec.BytesLen(blk)+codec.BytesLen(results), consts.MaxInt)
	p.PackBytes(blk)
	p.PackBytes(results)
	return p.Bytes(), p.Err()
}

func UnmarshalExecutedBlock(raw []byte, maxTxs int, parser Parser) (*ExecutedBlock, error) {
	p := codec.NewReader(raw, consts.MaxInt)
	var blkBytes, resultBytes []byte
	p.UnpackBytes(-1, true, &blkBytes)
	p.UnpackBytes(-1, false, &resultBytes)
	if err := p.Err(); err != nil {
		return nil, err
	}
	blk, err := UnmarshalBlock(blkBytes, maxTxs, parser)
	if err != nil {
		return nil, err
	}
	results, err := UnmarshalResults(resultBytes)
	if err != nil {
		return nil, err
	}
	if len(results) != len(blk.Txs) {
		return nil, fmt.Errorf("%w: %d results for %d txs", ErrInvalidResults, len(results), len(blk.Txs))
	}
	return &ExecutedBlock{Block: blk, Results: results}, nil
}
