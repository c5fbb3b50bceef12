// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"encoding/binary"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/consts"
)

// State
//
// 0x0/ (balance)
//   -> [owner] => balance
// 0x1/ (collection)
//   -> [owner] => item ids
// 0x2/ (philosopher)
//   -> [id] => philosopher
// 0x3/ (supply) => total minted
// 0x4/ (storefront)
//   -> [owner] => listing ids
// 0x5/ (listing)
//   -> [listing id] => listing
// 0x6/ (next listing id)
// 0x7/ (item listing)
//   -> [item id] => listing id
//
// 0xf0/ (tx result)
// 0xf1/ (block)
// 0xf2/ (last accepted height)
const (
	balancePrefix byte = iota
	collectionPrefix
	philosopherPrefix
	supplyPrefix
	storefrontPrefix
	listingPrefix
	listingCounterPrefix
	itemListingPrefix
)

const (
	resultPrefix byte = 0xf0 + iota
	blockPrefix
	lastAcceptedPrefix
)

func addressKey(prefix byte, addr codec.Address) []byte {
	k := make([]byte, consts.ByteLen+codec.AddressLen)
	k[0] = prefix
	copy(k[1:], addr[:])
	return k
}

func uint64Key(prefix byte, v uint64) []byte {
	k := make([]byte, consts.ByteLen+consts.Uint64Len)
	k[0] = prefix
	binary.BigEndian.PutUint64(k[1:], v)
	return k
}

// [balancePrefix] + [address]
func BalanceKey(addr codec.Address) []byte {
	return addressKey(balancePrefix, addr)
}

// [collectionPrefix] + [address]
func CollectionKey(addr codec.Address) []byte {
	return addressKey(collectionPrefix, addr)
}

// [philosopherPrefix] + [id]
func PhilosopherKey(id uint64) []byte {
	return uint64Key(philosopherPrefix, id)
}

func SupplyKey() []byte {
	return []byte{supplyPrefix}
}

// [storefrontPrefix] + [address]
func StorefrontKey(addr codec.Address) []byte {
	return addressKey(storefrontPrefix, addr)
}

// [listingPrefix] + [listing id]
func ListingKey(id uint64) []byte {
	return uint64Key(listingPrefix, id)
}

func ListingCounterKey() []byte {
	return []byte{listingCounterPrefix}
}

// [itemListingPrefix] + [item id]
func ItemListingKey(itemID uint64) []byte {
	return uint64Key(itemListingPrefix, itemID)
}

// [resultPrefix] + [txID]
func ResultKey(txID ids.ID) []byte {
	k := make([]byte, consts.ByteLen+ids.IDLen)
	k[0] = resultPrefix
	copy(k[1:], txID[:])
	return k
}

// [blockPrefix] + [height]
func BlockKey(height uint64) []byte {
	return uint64Key(blockPrefix, height)
}

func LastAcceptedKey() []byte {
	return []byte{lastAcceptedPrefix}
}
