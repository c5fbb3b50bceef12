// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/crypto/ed25519"
)

// PrivateKey pairs a signing key with the address it controls.
type PrivateKey struct {
	Address codec.Address
	Bytes   ed25519.PrivateKey
}

// Factory returns the [ED25519Factory] signing for [p].
func (p *PrivateKey) Factory() *ED25519Factory {
	return NewED25519Factory(p.Bytes)
}

func GeneratePrivateKey() (*PrivateKey, error) {
	p, err := ed25519.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return NewPrivateKey(p), nil
}

func NewPrivateKey(p ed25519.PrivateKey) *PrivateKey {
	return &PrivateKey{
		Address: NewED25519Address(p.PublicKey()),
		Bytes:   p,
	}
}

// NamedKey derives the deterministic key of a named account such as
// "Alice" or the admin.
func NamedKey(name string) *PrivateKey {
	return NewPrivateKey(ed25519.PrivateKeyFromName(name))
}
