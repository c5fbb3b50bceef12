// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/consts"
	"github.com/ava-labs/philosophersvm/tstate"
	"github.com/ava-labs/philosophersvm/utils"
)

type Transaction struct {
	Base *Base `json:"base"`

	Action Action `json:"action"`
	Auth   Auth   `json:"auth"`

	digest []byte
	bytes  []byte
	size   int
	id     ids.ID
}

func NewTx(base *Base, action Action) *Transaction {
	return &Transaction{
		Base:   base,
		Action: action,
	}
}

// Digest is the message signed by [Auth].
func (t *Transaction) Digest() ([]byte, error) {
	if len(t.digest) > 0 {
		return t.digest, nil
	}
	size := t.Base.Size() + consts.ByteLen + t.Action.Size()
	p := codec.NewWriter(size, consts.NetworkSizeLimit)
	t.Base.Marshal(p)
	p.PackByte(t.Action.GetTypeID())
	t.Action.Marshal(p)
	return p.Bytes(), p.Err()
}

// Sign signs [t] with [factory] and returns the transaction reparsed from
// its bytes, so the result is identical to what the VM will see.
func (t *Transaction) Sign(factory AuthFactory, parser Parser) (*Transaction, error) {
	msg, err := t.Digest()
	if err != nil {
		return nil, err
	}
	auth, err := factory.Sign(msg)
	if err != nil {
		return nil, err
	}
	t.Auth = auth

	size := len(msg) + consts.ByteLen + t.Auth.Size()
	p := codec.NewWriter(size, consts.NetworkSizeLimit)
	if err := t.Marshal(p); err != nil {
		return nil, err
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	return ParseTx(p.Bytes(), parser)
}

func (t *Transaction) Bytes() []byte { return t.bytes }

func (t *Transaction) Size() int { return t.size }

func (t *Transaction) ID() ids.ID { return t.id }

func (t *Transaction) Expiry() int64 { return t.Base.Timestamp }

func (t *Transaction) Actor() codec.Address { return t.Auth.Actor() }

// Verify checks the signature of [t].
func (t *Transaction) Verify(ctx context.Context) error {
	msg, err := t.Digest()
	if err != nil {
		return err
	}
	if err := t.Auth.Verify(ctx, msg); err != nil {
		return fmt.Errorf("%w: %w", ErrAuthFailed, err)
	}
	return nil
}

// Execute runs the action of [t] inside [ts]. An action error is not
// returned: the view is rolled back to where it started and the error is
// recorded in the [Result]. Only failures of the ledger itself are
// returned as errors.
func (t *Transaction) Execute(
	ctx context.Context,
	r Rules,
	ts *tstate.TStateView,
	timestamp int64,
) (*Result, error) {
	start := ts.OpIndex()
	handleRevert := func(rerr error) (*Result, error) {
		if err := ts.Rollback(ctx, start); err != nil {
			return nil, err
		}
		return &Result{Success: false, Error: utils.ErrBytes(rerr), Events: [][]byte{}}, nil
	}

	events, err := t.Action.Execute(ctx, r, ts, timestamp, t.Auth.Actor(), t.id)
	if err != nil {
		return handleRevert(err)
	}
	if len(events) > MaxEvents {
		return handleRevert(fmt.Errorf("%w: %d", ErrTooManyEvents, len(events)))
	}
	encoded := make([][]byte, 0, len(events))
	for _, event := range events {
		b, err := codec.MarshalTyped(event)
		if err != nil {
			return handleRevert(err)
		}
		encoded = append(encoded, b)
	}
	return &Result{Success: true, Error: []byte{}, Events: encoded}, nil
}

func (t *Transaction) Marshal(p *codec.Packer) error {
	if len(t.bytes) > 0 {
		p.PackFixedBytes(t.bytes)
		return p.Err()
	}
	t.Base.Marshal(p)
	p.PackByte(t.Action.GetTypeID())
	t.Action.Marshal(p)
	p.PackByte(t.Auth.GetTypeID())
	t.Auth.Marshal(p)
	return p.Err()
}

func MarshalTxs(txs []*Transaction) ([]byte, error) {
	if len(txs) == 0 {
		return nil, ErrNoTxs
	}
	size := consts.IntLen + codec.CummSize(txs)
	p := codec.NewWriter(size, consts.MaxInt)
	p.PackInt(uint32(len(txs)))
	for _, tx := range txs {
		if err := tx.Marshal(p); err != nil {
			return nil, err
		}
	}
	return p.Bytes(), p.Err()
}

func UnmarshalTxs(p *codec.Packer, maxTxs int, parser Parser) ([]*Transaction, error) {
	txCount := int(p.UnpackInt(false))
	if txCount > maxTxs {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyTxs, txCount, maxTxs)
	}
	txs := make([]*Transaction, 0, txCount)
	for i := 0; i < txCount; i++ {
		tx, err := UnmarshalTx(p, parser)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, p.Err()
}

// ParseTx decodes a single transaction that spans all of [b].
func ParseTx(b []byte, parser Parser) (*Transaction, error) {
	p := codec.NewReader(b, consts.NetworkSizeLimit)
	tx, err := UnmarshalTx(p, parser)
	if err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidObject, codec.ErrExtraBytes)
	}
	return tx, nil
}

func UnmarshalTx(p *codec.Packer, parser Parser) (*Transaction, error) {
	start := p.Offset()
	base, err := UnmarshalBase(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal base", err)
	}
	action, err := parser.ActionRegistry().Unmarshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal action", err)
	}
	digest := p.Offset()
	authType := p.UnpackByte()
	unmarshalAuth, ok := parser.AuthRegistry().LookupIndex(authType)
	if !ok {
		return nil, fmt.Errorf("%w: %d is unknown auth type", ErrInvalidObject, authType)
	}
	auth, err := unmarshalAuth(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal auth", err)
	}
	if actorType := auth.Actor()[0]; actorType != authType {
		return nil, fmt.Errorf("%w: actorType (%d) did not match authType (%d)", ErrInvalidActor, actorType, authType)
	}
	if err := p.Err(); err != nil {
		return nil, err
	}

	var tx Transaction
	tx.Base = base
	tx.Action = action
	tx.Auth = auth
	codecBytes := p.Bytes()
	tx.digest = codecBytes[start:digest]
	tx.bytes = codecBytes[start:p.Offset()] // ensure errors handled before grabbing memory
	tx.size = len(tx.bytes)
	tx.id = utils.ToID(tx.bytes)
	return &tx, nil
}
