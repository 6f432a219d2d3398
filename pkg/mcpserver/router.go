// Copyright 2025 Author(s) of sandtimer-mcp
// SPDX-License-Identifier: Apache-2.0

package mcpserver

import "context"

// MethodHandler handles a single JSON-RPC method call. A nil response means
// nothing is written back for the message, which is how notification-style
// calls are absorbed.
type MethodHandler func(ctx context.Context, req *Request) *Response

// Router maps JSON-RPC method names to their handler functions.
type Router struct {
	handlers map[string]MethodHandler
}

// NewRouter creates and returns a new, empty Router.
func NewRouter() *Router {
	return &Router{handlers: make(map[string]MethodHandler)}
}

// Register associates a handler with a method name. An existing handler for
// the same method is overwritten.
func (r *Router) Register(method string, handler MethodHandler) {
	r.handlers[method] = handler
}

// Handler retrieves the handler for a method name and whether one exists.
func (r *Router) Handler(method string) (MethodHandler, bool) {
	handler, ok := r.handlers[method]
	return handler, ok
}
