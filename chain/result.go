// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/ava-labs/philosophersvm/codec"
	"github.com/ava-labs/philosophersvm/consts"
)

// MaxEvents bounds the number of events a single action may emit.
const MaxEvents = 64

// Result is the outcome of an included transaction. A reverted transaction
// has [Success] unset, a non-empty [Error] and no events.
type Result struct {
	Success bool   `json:"success"`
	Error   []byte `json:"error"`

	// Events are type-prefixed encodings of [Event] in emission order.
	Events [][]byte `json:"events"`
}

func (r *Result) Size() int {
	size := consts.BoolLen + codec.BytesLen(r.Error) + consts.ByteLen
	for _, event := range r.Events {
		size += codec.BytesLen(event)
	}
	return size
}

func (r *Result) Marshal(p *codec.Packer) {
	p.PackBool(r.Success)
	p.PackBytes(r.Error)
	p.PackByte(uint8(len(r.Events)))
	for _, event := range r.Events {
		p.PackBytes(event)
	}
}

func (r *Result) Bytes() ([]byte, error) {
	p := codec.NewWriter(r.Size(), consts.MaxInt)
	r.Marshal(p)
	return p.Bytes(), p.Err()
}

func UnmarshalResult(p *codec.Packer) (*Result, error) {
	result := &Result{
		Success: p.UnpackBool(),
	}
	p.UnpackBytes(consts.MaxInt, false, &result.Error)
	numEvents := p.UnpackByte()
	if numEvents > MaxEvents {
		return nil, fmt.Errorf("%w: %d events", ErrTooManyEvents, numEvents)
	}
	events := make([][]byte, 0, numEvents)
	for i := uint8(0); i < numEvents; i++ {
		var event []byte
		p.UnpackBytes(consts.MaxInt, false, &event)
		events = append(events, event)
	}
	result.Events = events
	if !result.Success && len(result.Events) > 0 {
		return nil, fmt.Errorf("%w: reverted result with events", ErrInvalidResults)
	}
	return result, p.Err()
}

func ParseResult(b []byte) (*Result, error) {
	p := codec.NewReader(b, consts.MaxInt)
	r, err := UnmarshalResult(p)
	if err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, ErrInvalidObject
	}
	return r, nil
}

// ParseEvents decodes every event of [r] with [parser].
func (r *Result) ParseEvents(parser Parser) ([]Event, error) {
	events := make([]Event, 0, len(r.Events))
	for _, raw := range r.Events {
		event, err := parser.EventRegistry().Unmarshal(codec.NewReader(raw, consts.MaxInt))
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func MarshalResults(src []*Result) ([]byte, error) {
	size := consts.IntLen + codec.CummSize(src)
	p := codec.NewWriter(size, consts.MaxInt) // could be much larger than [NetworkSizeLimit]
	p.PackInt(uint32(len(src)))
	for _, result := range src {
		result.Marshal(p)
	}
	return p.Bytes(), p.Err()
}

func UnmarshalResults(src []byte) ([]*Result, error) {
	p := codec.NewReader(src, consts.MaxInt)
	items := p.UnpackInt(false)
	results := make([]*Result, 0, items)
	for i := uint32(0); i < items; i++ {
		result, err := UnmarshalResult(p)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	if !p.Empty() {
		return nil, ErrInvalidObject
	}
	return results, p.Err()
}
