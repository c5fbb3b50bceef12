// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

// Typed is implemented by every object that is serialized behind a
// one-byte type prefix (actions, auth, events).
type Typed interface {
	GetTypeID() uint8
}

// Marshaler is a [Typed] object that knows its encoded size and how to
// write itself into a [Packer].
type Marshaler interface {
	Typed
	Size() int
	Marshal(p *Packer)
}
