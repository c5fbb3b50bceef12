// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/consts"
	"github.com/ava-labs/philosophersvm/state"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

const (
	// MaxRoyalties bounds the number of royalty cuts stored per item.
	MaxRoyalties = 16
	// MaxDescriptionLen bounds a royalty description.
	MaxDescriptionLen = 256
	// MaxCollectionSize bounds the number of items held per account.
	MaxCollectionSize = 100_000

	// CutDenominator is 100% in royalty cut units (8 decimals).
	CutDenominator uint64 = 100_000_000
)

type Kind uint8

const (
	Socrates Kind = iota + 1
	Spinoza
	Nietzsche
)

var kindNames = map[Kind]string{
	Socrates:  "socrates",
	Spinoza:   "spinoza",
	Nietzsche: "nietzsche",
}

func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind accepts the lowercase kind name.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

type Rarity uint8

const (
	Common Rarity = iota + 1
	Rare
	Epic
)

var rarityNames = map[Rarity]string{
	Common: "common",
	Rare:   "rare",
	Epic:   "epic",
}

func (r Rarity) Valid() bool {
	_, ok := rarityNames[r]
	return ok
}

func (r Rarity) String() string {
	if s, ok := rarityNames[r]; ok {
		return s
	}
	return fmt.Sprintf("rarity(%d)", uint8(r))
}

// ParseRarity accepts the lowercase rarity name.
func ParseRarity(s string) (Rarity, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for r, name := range rarityNames {
		if name == s {
			return r, true
		}
	}
	return 0, false
}

// Royalty is a share of every sale of an item paid to [Beneficiary].
type Royalty struct {
	Cut         uint64        `json:"cut"`
	Description string        `json:"description"`
	Beneficiary codec.Address `json:"beneficiary"`
}

type Philosopher struct {
	ID        uint64        `json:"id"`
	Kind      Kind          `json:"kind"`
	Rarity    Rarity        `json:"rarity"`
	Owner     codec.Address `json:"owner"`
	Royalties []Royalty     `json:"royalties"`
}

func (p *Philosopher) Size() int {
	size := consts.Uint64Len + consts.Uint8Len*3 + codec.AddressLen
	for _, r := range p.Royalties {
		size += consts.Uint64Len + codec.StringLen(r.Description) + codec.AddressLen
	}
	return size
}

func (p *Philosopher) Marshal() ([]byte, error) {
	pk := codec.NewWriter(p.Size(), consts.NetworkSizeLimit)
	pk.PackUint64(p.ID)
	pk.PackByte(byte(p.Kind))
	pk.PackByte(byte(p.Rarity))
	pk.PackAddress(p.Owner)
	pk.PackByte(byte(len(p.Royalties)))
	for _, r := range p.Royalties {
		pk.PackUint64(r.Cut)
		pk.PackString(r.Description)
		pk.PackAddress(r.Beneficiary)
	}
	return pk.Bytes(), pk.Err()
}

func UnmarshalPhilosopher(b []byte) (*Philosopher, error) {
	pk := codec.NewReader(b, consts.NetworkSizeLimit)
	p := &Philosopher{
		ID:     pk.UnpackUint64(false),
		Kind:   Kind(pk.UnpackByte()),
		Rarity: Rarity(pk.UnpackByte()),
	}
	pk.UnpackAddress(&p.Owner)
	count := int(pk.UnpackByte())
	if count > MaxRoyalties {
		return nil, fmt.Errorf("%w: %d royalties", ErrCorruptRecord, count)
	}
	for i := 0; i < count; i++ {
		var r Royalty
		r.Cut = pk.UnpackUint64(false)
		r.Description = pk.UnpackString(false)
		pk.UnpackAddress(&r.Beneficiary)
		p.Royalties = append(p.Royalties, r)
	}
	if err := pk.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}
	if !pk.Empty() {
		return nil, fmt.Errorf("%w: %w", ErrCorruptRecord, codec.ErrExtraBytes)
	}
	return p, nil
}

func getIDList(ctx context.Context, im state.Immutable, key []byte) ([]uint64, bool, error) {
	v, err := im.GetValue(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	pk := codec.NewReader(v, consts.NetworkSizeLimit)
	ids := pk.UnpackUint64s(MaxCollectionSize)
	if err := pk.Err(); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}
	return ids, true, nil
}

func setIDList(ctx context.Context, mu state.Mutable, key []byte, ids []uint64) error {
	pk := codec.NewWriter(codec.Uint64sLen(ids), consts.NetworkSizeLimit)
	pk.PackUint64s(ids)
	if err := pk.Err(); err != nil {
		return err
	}
	return mu.Insert(ctx, key, pk.Bytes())
}

// HasCollection returns true once [SetupCollection] ran for [addr].
func HasCollection(ctx context.Context, im state.Immutable, addr codec.Address) (bool, error) {
	_, exists, err := getIDList(ctx, im, CollectionKey(addr))
	return exists, err
}

// SetupCollection creates an empty collection for [addr].
func SetupCollection(ctx context.Context, mu state.Mutable, addr codec.Address) error {
	exists, err := HasCollection(ctx, mu, addr)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: collection of %s", ErrAlreadyInitialized, addr)
	}
	return setIDList(ctx, mu, CollectionKey(addr), []uint64{})
}

// GetCollection returns the ids held by [addr] in deposit order.
func GetCollection(ctx context.Context, im state.Immutable, addr codec.Address) ([]uint64, error) {
	ids, exists, err := getIDList(ctx, im, CollectionKey(addr))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNoCollection, addr)
	}
	return ids, nil
}

// GetSupply returns the number of philosophers ever minted.
func GetSupply(ctx context.Context, im state.Immutable) (uint64, error) {
	supply, _, err := innerGetUint64(im.GetValue(ctx, SupplyKey()))
	return supply, err
}

// GetPhilosopher returns the item record regardless of its owner.
func GetPhilosopher(ctx context.Context, im state.Immutable, id uint64) (*Philosopher, error) {
	v, err := im.GetValue(ctx, PhilosopherKey(id))
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return UnmarshalPhilosopher(v)
}

// GetOwnedPhilosopher returns the item only if it is held by [owner].
func GetOwnedPhilosopher(ctx context.Context, im state.Immutable, owner codec.Address, id uint64) (*Philosopher, error) {
	p, err := GetPhilosopher(ctx, im, id)
	if err != nil {
		return nil, err
	}
	if p.Owner != owner {
		return nil, fmt.Errorf("%w: %d in collection of %s", ErrNotFound, id, owner)
	}
	return p, nil
}

func putPhilosopher(ctx context.Context, mu state.Mutable, p *Philosopher) error {
	b, err := p.Marshal()
	if err != nil {
		return err
	}
	return mu.Insert(ctx, PhilosopherKey(p.ID), b)
}

func deposit(ctx context.Context, mu state.Mutable, to codec.Address, id uint64) error {
	ids, err := GetCollection(ctx, mu, to)
	if err != nil {
		return err
	}
	if len(ids) >= MaxCollectionSize {
		return fmt.Errorf("%w: collection of %s is full", codec.ErrTooManyItems, to)
	}
	return setIDList(ctx, mu, CollectionKey(to), append(ids, id))
}

func withdraw(ctx context.Context, mu state.Mutable, from codec.Address, id uint64) error {
	ids, err := GetCollection(ctx, mu, from)
	if err != nil {
		return err
	}
	i := slices.Index(ids, id)
	if i < 0 {
		return fmt.Errorf("%w: %d in collection of %s", ErrNotFound, id, from)
	}
	return setIDList(ctx, mu, CollectionKey(from), slices.Delete(ids, i, i+1))
}

// Mint creates a new philosopher owned by [to]. The id is the supply
// before the mint, so ids start at 0 and are never reused.
func Mint(
	ctx context.Context,
	mu state.Mutable,
	to codec.Address,
	kind Kind,
	rarity Rarity,
	royalties []Royalty,
) (*Philosopher, error) {
	supply, err := GetSupply(ctx, mu)
	if err != nil {
		return nil, err
	}
	next, err := smath.Add64(supply, 1)
	if err != nil {
		return nil, err
	}
	p := &Philosopher{
		ID:        supply,
		Kind:      kind,
		Rarity:    rarity,
		Owner:     to,
		Royalties: royalties,
	}
	if err := deposit(ctx, mu, to, p.ID); err != nil {
		return nil, err
	}
	if err := putPhilosopher(ctx, mu, p); err != nil {
		return nil, err
	}
	if err := setUint64(ctx, mu, SupplyKey(), next); err != nil {
		return nil, err
	}
	return p, nil
}

// MovePhilosopher withdraws [id] from [from] and deposits it into [to].
// Callers run it inside a transaction view, so a failure after the
// withdraw is rolled back with the rest of the transaction.
func MovePhilosopher(
	ctx context.Context,
	mu state.Mutable,
	from codec.Address,
	to codec.Address,
	id uint64,
) (*Philosopher, error) {
	p, err := GetOwnedPhilosopher(ctx, mu, from, id)
	if err != nil {
		return nil, err
	}
	hasCollection, err := HasCollection(ctx, mu, to)
	if err != nil {
		return nil, err
	}
	if !hasCollection {
		return nil, fmt.Errorf("%w: %s", ErrNoCollection, to)
	}
	if err := withdraw(ctx, mu, from, id); err != nil {
		return nil, err
	}
	if err := deposit(ctx, mu, to, id); err != nil {
		return nil, err
	}
	p.Owner = to
	return p, putPhilosopher(ctx, mu, p)
}
