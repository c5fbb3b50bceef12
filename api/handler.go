// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"net/http"

	"github.com/ava-labs/avalanchego/utils/json"
	"github.com/gorilla/rpc/v2"
)

// Name is the JSON-RPC service name every method is registered under.
const Name = "philosophersvm"

// Handler is an HTTP handler mounted at [Path] on the node.
type Handler struct {
	Path    string
	Handler http.Handler
}

// HandlerFactory builds a [Handler] bound to [VM].
type HandlerFactory interface {
	New(vm VM) (Handler, error)
}

func NewJSONRPCHandler(name string, service any) (http.Handler, error) {
	server := rpc.NewServer()
	codec := json.NewCodec()
	server.RegisterCodec(codec, "application/json")
	server.RegisterCodec(codec, "application/json;charset=UTF-8")
	return server, server.RegisterService(service, name)
}
