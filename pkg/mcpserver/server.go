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

// Package mcpserver implements the newline-delimited JSON-RPC protocol engine
// for a single MCP session served over a pair of byte streams.
package mcpserver

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/sandtimer/sandtimer-mcp/pkg/appconsts"
	"github.com/sandtimer/sandtimer-mcp/pkg/consts"
	"github.com/sandtimer/sandtimer-mcp/pkg/logging"
	"github.com/sandtimer/sandtimer-mcp/pkg/metrics"
	"github.com/sandtimer/sandtimer-mcp/pkg/tool"
)

// maxLineBytes bounds a single inbound JSON-RPC line.
const maxLineBytes = 1 << 20

// Server owns the protocol state of one MCP session: the tool registry, the
// initialized flag and the output writer. All inbound processing happens on
// the single goroutine running Serve, so no locking is needed beyond the
// writer's own mutex.
type Server struct {
	registry    *tool.Registry
	writer      *Writer
	router      *Router
	initialized bool
	log         *slog.Logger
}

// NewServer creates a protocol engine serving the given registry and writing
// responses to out. The registry is owned by the engine from this point on.
func NewServer(registry *tool.Registry, out io.Writer) *Server {
	s := &Server{
		registry: registry,
		writer:   NewWriter(out),
		router:   NewRouter(),
		log:      logging.GetLogger(),
	}

	s.router.Register(consts.MethodInitialize, s.handleInitialize)
	s.router.Register(consts.MethodToolsList, s.handleToolsList)
	s.router.Register(consts.MethodToolsCall, s.handleToolsCall)
	s.router.Register(consts.MethodPing, s.handlePing)
	s.router.Register(consts.MethodShutdown, s.handleShutdown)

	return s
}

// Serve reads newline-delimited JSON-RPC messages from in until end of input,
// processing each line fully (including any synchronous backend call) before
// reading the next. End of input is the only normal termination path; a
// canceled context stops the loop between lines.
func (s *Server) Serve(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	buf := make([]byte, maxLineBytes)
	scanner.Buffer(buf, maxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.HandleLine(ctx, scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// HandleLine processes one line of input and writes any resulting messages.
// Blank lines produce no output. The returned error reports output stream
// failures only; protocol-level problems are answered on the stream and never
// stop the session.
func (s *Server) HandleLine(ctx context.Context, line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	var value any
	if err := json.Unmarshal([]byte(trimmed), &value); err != nil {
		return s.writer.Write(NewErrorResponse(nil, CodeParseError, "Parse error"))
	}
	object, ok := value.(map[string]any)
	if !ok {
		return s.writer.Write(NewErrorResponse(nil, CodeInvalidRequest, "Invalid request"))
	}

	resp := s.handleMessage(ctx, object)
	if resp == nil {
		return nil
	}
	return s.writer.Write(resp)
}

// handleMessage routes a parsed object by method name. A nil return means the
// message is absorbed without a reply: peer responses, notifications, and
// requests whose handler has nothing to say for a missing id.
func (s *Server) handleMessage(ctx context.Context, object map[string]any) *Response {
	id := object["id"]
	rawMethod, ok := object["method"]
	if !ok || !truthy(rawMethod) {
		// A response or notification from the peer; this server issues no
		// requests of its own, so there is nothing to correlate it with.
		return nil
	}

	method, _ := rawMethod.(string)
	params, _ := object["params"].(map[string]any)
	if params == nil {
		params = map[string]any{}
	}
	req := &Request{ID: id, Method: method, Params: params}

	if handler, ok := s.router.Handler(method); ok {
		return handler(ctx, req)
	}
	if strings.HasPrefix(method, consts.NotificationPrefix) {
		return nil
	}
	if id != nil {
		return NewErrorResponse(id, CodeMethodNotFound, fmt.Sprintf("Method '%v' not found", rawMethod))
	}
	return nil
}

// handleInitialize negotiates the protocol version, marks the session
// initialized and arms the one-time ready notification so it directly follows
// whatever is written next. Repeated initialization re-arms and re-sends.
func (s *Server) handleInitialize(_ context.Context, req *Request) *Response {
	version := consts.ProtocolVersion
	if v, ok := req.Params["protocolVersion"].(string); ok && v != "" {
		version = v
	}
	s.initialized = true

	capabilities := map[string]any{
		"tools": map[string]any{"list": true, "call": true},
	}
	s.writer.Arm(&Notification{
		JSONRPC: "2.0",
		Method:  consts.NotificationServerReady,
		Params: map[string]any{
			"protocolVersion": version,
			"capabilities":    capabilities,
		},
	})
	s.log.Info("Session initialized", "protocolVersion", version)

	if req.ID == nil {
		return nil
	}
	return NewResponse(req.ID, map[string]any{
		"protocolVersion": version,
		"serverInfo": map[string]any{
			"name":    appconsts.Name,
			"version": appconsts.Version,
		},
		"capabilities": capabilities,
	})
}

// handleToolsList reports the public metadata of every registered tool in
// registration order.
func (s *Server) handleToolsList(_ context.Context, req *Request) *Response {
	if req.ID == nil {
		return nil
	}
	tools := make([]map[string]any, 0, len(s.registry.List()))
	for _, t := range s.registry.List() {
		tools = append(tools, map[string]any{
			"name":        t.Name,
			"description": t.Description,
			"inputSchema": t.InputSchema,
		})
	}
	return NewResponse(req.ID, map[string]any{"tools": tools})
}

// handleToolsCall validates and dispatches a tool invocation. A call without
// an id has no way of returning a result and is dropped outright.
func (s *Server) handleToolsCall(ctx context.Context, req *Request) *Response {
	if req.ID == nil {
		return nil
	}

	metrics.IncrCounter([]string{"tools", "call", "total"}, 1)
	defer metrics.MeasureSince([]string{"tools", "call", "latency"}, time.Now())

	text, err := s.callTool(ctx, req.Params)
	if err != nil {
		metrics.IncrCounter([]string{"tools", "call", "errors"}, 1)
		var execErr *tool.ExecutionError
		if errors.As(err, &execErr) {
			return NewErrorResponse(req.ID, CodeToolError, execErr.Message)
		}
		return NewErrorResponse(req.ID, CodeInternalError, fmt.Sprintf("Unexpected error: %v", err))
	}
	return NewResponse(req.ID, map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
	})
}

// callTool resolves the named tool and invokes its handler. Every failure
// mode here is a tool-execution error; only a handler returning something
// other than *tool.ExecutionError reaches the internal-error safeguard.
func (s *Server) callTool(ctx context.Context, params map[string]any) (string, error) {
	if !s.initialized {
		return "", tool.Errorf("Server has not been initialized yet.")
	}

	name, ok := params["name"].(string)
	if !ok {
		return "", tool.Errorf("Invalid tool name.")
	}

	var args map[string]any
	switch v := params["arguments"].(type) {
	case nil:
		args = map[string]any{}
	case map[string]any:
		args = v
	default:
		return "", tool.Errorf("Tool arguments must be an object.")
	}

	t, ok := s.registry.Get(name)
	if !ok {
		return "", tool.Errorf("Tool '%s' is not available.", name)
	}

	s.log.Info("Calling tool", "toolName", name)
	return t.Handler(ctx, args)
}

// handlePing answers with the current epoch time in seconds.
func (s *Server) handlePing(_ context.Context, req *Request) *Response {
	if req.ID == nil {
		return nil
	}
	epoch := float64(time.Now().UnixNano()) / float64(time.Second)
	return NewResponse(req.ID, map[string]any{"time": epoch})
}

// handleShutdown acknowledges the request. It does not terminate the read
// loop; the session ends only when the input stream closes.
func (s *Server) handleShutdown(_ context.Context, req *Request) *Response {
	if req.ID == nil {
		return nil
	}
	// struct{}{} marshals as {} and survives the result field's omitempty,
	// which would drop an empty map.
	return NewResponse(req.ID, struct{}{})
}

// truthy mirrors JSON truthiness for the routing decision on the method
// field: null, false, "" and 0 are falsy; objects and arrays are truthy.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return true
	}
}
