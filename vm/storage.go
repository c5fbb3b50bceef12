// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/philosophersvm/chain"
	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/consts"
	"github.com/ava-labs/philosophersvm/storage"
)

// TxRecord is the committed outcome of a transaction.
type TxRecord struct {
	TxID      ids.ID        `json:"txId"`
	Height    uint64        `json:"height"`
	Timestamp int64         `json:"timestamp"`
	Result    *chain.Result `json:"result"`
}

func (r *TxRecord) Marshal() ([]byte, error) {
	p := codec.NewWriter(consts.Uint64Len+consts.Int64Len+r.Result.Size(), consts.MaxInt)
	p.PackUint64(r.Height)
	p.PackInt64(r.Timestamp)
	r.Result.Marshal(p)
	return p.Bytes(), p.Err()
}

func UnmarshalTxRecord(txID ids.ID, b []byte) (*TxRecord, error) {
	p := codec.NewReader(b, consts.MaxInt)
	r := &TxRecord{TxID: txID}
	r.Height = p.UnpackUint64(false)
	r.Timestamp = p.UnpackInt64(false)
	result, err := chain.UnmarshalResult(p)
	if err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, chain.ErrInvalidObject
	}
	r.Result = result
	return r, nil
}

func getTxRecord(db database.KeyValueReader, txID ids.ID) (*TxRecord, error) {
	b, err := db.Get(storage.ResultKey(txID))
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrTxNotFound
	}
	if err != nil {
		return nil, err
	}
	return UnmarshalTxRecord(txID, b)
}

func getBlock(db database.KeyValueReader, height uint64, maxTxs int, parser chain.Parser) (*chain.ExecutedBlock, error) {
	b, err := db.Get(storage.BlockKey(height))
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: height=%d", ErrBlockNotFound, height)
	}
	if err != nil {
		return nil, err
	}
	return chain.UnmarshalExecutedBlock(b, maxTxs, parser)
}

func getLastAcceptedHeight(db database.KeyValueReader) (uint64, bool, error) {
	b, err := db.Get(storage.LastAcceptedKey())
	if errors.Is(err, database.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	height, err := database.ParseUInt64(b)
	return height, true, err
}

// writeBlock stages [blk], the record of each of its transactions and the
// new last accepted height in [w].
func writeBlock(w database.KeyValueWriter, blk *chain.ExecutedBlock) error {
	b, err := blk.Marshal()
	if err != nil {
		return err
	}
	if err := w.Put(storage.BlockKey(blk.Block.Height), b); err != nil {
		return err
	}
	for i, tx := range blk.Block.Txs {
		record := &TxRecord{
			TxID:      tx.ID(),
			Height:    blk.Block.Height,
			Timestamp: blk.Block.Timestamp,
			Result:    blk.Results[i],
		}
		rb, err := record.Marshal()
		if err != nil {
			return err
		}
		if err := w.Put(storage.ResultKey(tx.ID()), rb); err != nil {
			return err
		}
	}
	return w.Put(storage.LastAcceptedKey(), database.PackUInt64(blk.Block.Height))
}
