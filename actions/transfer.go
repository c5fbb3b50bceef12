// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/philosophersvm/chain"
	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/consts"
	"github.com/ava-labs/philosophersvm/state"
	"github.com/ava-labs/philosophersvm/storage"
)

const MaxMemoSize = 256

var _ chain.Action = (*Transfer)(nil)

type Transfer struct {
	// To is the recipient of the [Value].
	To codec.Address `json:"to"`

	// Amount are transferred to [To].
	Value uint64 `json:"value"`

	// Optional message to accompany transaction.
	Memo []byte `json:"memo"`
}

func (*Transfer) GetTypeID() uint8 {
	return consts.TransferID
}

func (t *Transfer) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) ([]chain.Event, error) {
	if t.Value == 0 {
		return nil, ErrOutputValueZero
	}
	if len(t.Memo) > MaxMemoSize {
		return nil, ErrOutputMemoTooLarge
	}
	if _, err := storage.SubBalance(ctx, mu, actor, t.Value); err != nil {
		return nil, err
	}
	if _, err := storage.AddBalance(ctx, mu, t.To, t.Value); err != nil {
		return nil, err
	}
	return []chain.Event{&TokensTransferred{From: actor, To: t.To, Amount: t.Value}}, nil
}

func (t *Transfer) Size() int {
	return codec.AddressLen + consts.Uint64Len + codec.BytesLen(t.Memo)
}

func (t *Transfer) Marshal(p *codec.Packer) {
	p.PackAddress(t.To)
	p.PackUint64(t.Value)
	p.PackBytes(t.Memo)
}

func UnmarshalTransfer(p *codec.Packer) (chain.Action, error) {
	var transfer Transfer
	p.UnpackAddress(&transfer.To)
	transfer.Value = p.UnpackUint64(true)
	p.UnpackBytes(MaxMemoSize, false, &transfer.Memo)
	return &transfer, p.Err()
}

var _ chain.Action = (*MintTokens)(nil)

// MintTokens credits new payment tokens to [To]. Only the admin may mint.
type MintTokens struct {
	To    codec.Address `json:"to"`
	Value uint64        `json:"value"`
}

func (*MintTokens) GetTypeID() uint8 {
	return consts.MintTokensID
}

func (m *MintTokens) Execute(
	ctx context.Context,
	r chain.Rules,
	mu state.Mutable,
	_ int64,
	actor codec.Address,
	_ ids.ID,
) ([]chain.Event, error) {
	if actor != r.GetAdmin() {
		return nil, ErrUnauthorized
	}
	if m.Value == 0 {
		return nil, ErrOutputValueZero
	}
	if _, err := storage.AddBalance(ctx, mu, m.To, m.Value); err != nil {
		return nil, err
	}
	return []chain.Event{&TokensMinted{To: m.To, Amount: m.Value}}, nil
}

func (*MintTokens) Size() int {
	return codec.AddressLen + consts.Uint64Len
}

func (m *MintTokens) Marshal(p *codec.Packer) {
	p.PackAddress(m.To)
	p.PackUint64(m.Value)
}

func UnmarshalMintTokens(p *codec.Packer) (chain.Action, error) {
	var mint MintTokens
	p.UnpackAddress(&mint.To)
	mint.Value = p.UnpackUint64(true)
	return &mint, p.Err()
}
