/*
 * Copyright 2025 Author(s) of sandtimer-mcp
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package tool defines the tool records the MCP server advertises and the
// registry that owns them, along with the built-in sand timer tools.
package tool

import "context"

// Handler executes a tool call with the already-validated arguments object
// and returns a short human readable confirmation string. Failures that
// should be reported to the caller are returned as *ExecutionError.
type Handler func(ctx context.Context, args map[string]any) (string, error)

// Tool describes a single invocable operation: its public metadata plus the
// handler that carries it out. InputSchema is a JSON-Schema-shaped object
// advertised verbatim through tools/list.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]any
	Handler     Handler
}

// Registry maps tool names to their definitions. It preserves registration
// order for listings and is mutated only at construction time by the single
// serving goroutine, so it needs no locking.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register inserts the tool, silently replacing any existing definition with
// the same name. A replaced tool keeps its original position in listings.
func (r *Registry) Register(t Tool) {
	if _, ok := r.tools[t.Name]; !ok {
		r.order = append(r.order, t.Name)
	}
	r.tools[t.Name] = t
}

// Get returns the tool registered under name, and whether it was found.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// List returns all registered tools in registration order.
func (r *Registry) List() []Tool {
	tools := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name])
	}
	return tools
}
