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

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Writer serializes outgoing messages onto the single output stream. Each
// message becomes one JSON line, written and flushed under a mutex so writes
// stay atomic even if a future version introduces concurrent producers.
//
// A message armed with Arm is delivered immediately after the next Write,
// inside the same critical section, so the two cannot be interleaved with
// other output. At most one armed message exists at a time: arming again
// replaces an undelivered one.
type Writer struct {
	mu      sync.Mutex
	out     *bufio.Writer
	pending []any
}

// NewWriter creates a Writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: bufio.NewWriter(w)}
}

// Arm schedules msg for delivery right after the next Write, replacing any
// armed message that has not been delivered yet.
func (w *Writer) Arm(msg any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = w.pending[:0]
	w.pending = append(w.pending, msg)
}

// Write emits msg as a single line and flushes, then drains the armed
// message, if any.
func (w *Writer) Write(msg any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.writeLocked(msg); err != nil {
		return err
	}
	for len(w.pending) > 0 {
		next := w.pending[0]
		w.pending = w.pending[1:]
		if err := w.writeLocked(next); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeLocked(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal outgoing message: %w", err)
	}
	if _, err := w.out.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := w.out.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := w.out.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}
