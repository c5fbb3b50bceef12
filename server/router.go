// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
)

var errRouteExists = errors.New("route already exists")

// router serves routes that may be added after the server started.
type router struct {
	lock   sync.RWMutex
	router *mux.Router
	routes map[string]struct{}
}

func newRouter() *router {
	return &router{
		router: mux.NewRouter(),
		routes: make(map[string]struct{}),
	}
}

func (r *router) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	r.router.ServeHTTP(writer, request)
}

func (r *router) AddRouter(path string, handler http.Handler) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, exists := r.routes[path]; exists {
		return fmt.Errorf("%w: %s", errRouteExists, path)
	}
	r.routes[path] = struct{}{}
	r.router.Handle(path, handler)
	return nil
}

func (r *router) Routes() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	routes := make([]string, 0, len(r.routes))
	for route := range r.routes {
		routes = append(routes, route)
	}
	return routes
}
