// Copyright 2025 Author(s) of sandtimer-mcp
// SPDX-License-Identifier: Apache-2.0

package tool

import "fmt"

// ExecutionError reports a tool call that could not be carried out, whether
// because the arguments failed validation, the tool does not exist, the
// session is not initialized, or the backend could not be reached. The
// dispatcher maps it to the JSON-RPC tool-execution error code.
type ExecutionError struct {
	Message string
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return e.Message
}

// Errorf builds an ExecutionError from a format string.
func Errorf(format string, args ...any) *ExecutionError {
	return &ExecutionError{Message: fmt.Sprintf(format, args...)}
}
