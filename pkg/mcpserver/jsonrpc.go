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

package mcpserver

// JSON-RPC error codes used by the server.
const (
	// CodeParseError reports a line that is not valid JSON.
	CodeParseError = -32700
	// CodeInvalidRequest reports a JSON value that is not an object.
	CodeInvalidRequest = -32600
	// CodeMethodNotFound reports an unrecognized method on a request.
	CodeMethodNotFound = -32601
	// CodeToolError reports a tool call that could not be carried out.
	CodeToolError = -32002
	// CodeInternalError is the last-resort safeguard for failures that are
	// not tool-execution errors. It is never an expected path.
	CodeInternalError = -32099
)

// Request is one parsed inbound JSON-RPC message that carries a method.
type Request struct {
	// ID is the request id, or nil when absent or null. Handlers that have
	// nothing to return for a nil ID write no response at all.
	ID any
	// Method is the method name, or "" when the method field was truthy but
	// not a string.
	Method string
	// Params is the params object; non-object or absent params are coerced to
	// an empty map.
	Params map[string]any
}

// Response is a single outbound JSON-RPC response message. Exactly one of
// Result and Error is set.
type Response struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *RPCError `json:"error,omitempty"`
}

// Notification is a single outbound JSON-RPC notification message.
type Notification struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// RPCError is the error member of a JSON-RPC response.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewResponse creates a successful JSON-RPC response.
func NewResponse(id any, result any) *Response {
	return &Response{JSONRPC: "2.0", ID: id, Result: result}
}

// NewErrorResponse creates an error JSON-RPC response. A nil id is serialized
// as an explicit null, which is the expected shape for parse errors where no
// usable id exists.
func NewErrorResponse(id any, code int, message string) *Response {
	return &Response{JSONRPC: "2.0", ID: id, Error: &RPCError{Code: code, Message: message}}
}
