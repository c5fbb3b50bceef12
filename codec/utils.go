// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "github.com/ava-labs/philosophersvm/consts"

func BytesLen(msg []byte) int {
	return consts.IntLen + len(msg)
}

func StringLen(msg string) int {
	return consts.Uint16Len + len(msg)
}

// CummSize returns the total encoded size of [arr].
func CummSize[T interface{ Size() int }](arr []T) int {
	size := 0
	for _, item := range arr {
		size += item.Size()
	}
	return size
}

// MarshalTyped encodes [m] behind its type prefix.
func MarshalTyped(m Marshaler) ([]byte, error) {
	p := NewWriter(1+m.Size(), consts.NetworkSizeLimit)
	p.PackByte(m.GetTypeID())
	m.Marshal(p)
	return p.Bytes(), p.Err()
}
