// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "github.com/ava-labs/philosophersvm/codec"

var _ Parser = (*Registry)(nil)

// Registry is the [Parser] built from the three type registries.
type Registry struct {
	actionRegistry *codec.TypeParser[Action]
	authRegistry   *codec.TypeParser[Auth]
	eventRegistry  *codec.TypeParser[Event]
}

func NewRegistry(
	action *codec.TypeParser[Action],
	auth *codec.TypeParser[Auth],
	event *codec.TypeParser[Event],
) *Registry {
	return &Registry{
		actionRegistry: action,
		authRegistry:   auth,
		eventRegistry:  event,
	}
}

func (r *Registry) ActionRegistry() *codec.TypeParser[Action] {
	return r.actionRegistry
}

func (r *Registry) AuthRegistry() *codec.TypeParser[Auth] {
	return r.authRegistry
}

func (r *Registry) EventRegistry() *codec.TypeParser[Event] {
	return r.eventRegistry
}
