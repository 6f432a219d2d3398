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

// Package backend implements the TCP client for the external sandtimer
// service. Delivery is fire-and-forget: each command opens a fresh
// connection, writes a single UTF-8 JSON object and closes the connection
// without reading a response, so a command is applied at most once and never
// confirmed.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/sandtimer/sandtimer-mcp/pkg/consts"
	"github.com/sandtimer/sandtimer-mcp/pkg/metrics"
)

// Defaults used when a Client is constructed with zero values.
const (
	DefaultHost    = "127.0.0.1"
	DefaultPort    = 61420
	DefaultTimeout = 5 * time.Second
)

// command is the wire message understood by the sandtimer service. Time is
// only present for start commands.
type command struct {
	Cmd   string `json:"cmd"`
	Label string `json:"label"`
	Time  int    `json:"time,omitempty"`
}

// Client sends timer commands to the sandtimer service. It is stateless and
// safe for use from a single serving goroutine; every call dials its own
// connection.
type Client struct {
	host    string
	port    int
	timeout time.Duration
}

// NewClient creates a client for the sandtimer service at host:port. An empty
// host, zero port or non-positive timeout falls back to the corresponding
// default. The timeout bounds both the connect and the write of each command.
func NewClient(host string, port int, timeout time.Duration) *Client {
	if host == "" {
		host = DefaultHost
	}
	if port == 0 {
		port = DefaultPort
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{host: host, port: port, timeout: timeout}
}

// Start instructs the service to start (or restart) the named timer with the
// given duration in seconds.
func (c *Client) Start(ctx context.Context, label string, seconds int) error {
	return c.send(ctx, command{Cmd: consts.CommandStart, Label: label, Time: seconds})
}

// Reset instructs the service to reset the named timer to its original
// duration.
func (c *Client) Reset(ctx context.Context, label string) error {
	return c.send(ctx, command{Cmd: consts.CommandReset, Label: label})
}

// Cancel instructs the service to cancel and close the named timer.
func (c *Client) Cancel(ctx context.Context, label string) error {
	return c.send(ctx, command{Cmd: consts.CommandCancel, Label: label})
}

// Addr returns the host:port the client sends commands to.
func (c *Client) Addr() string {
	return net.JoinHostPort(c.host, strconv.Itoa(c.port))
}

func (c *Client) send(ctx context.Context, cmd command) error {
	defer metrics.MeasureSince([]string{"backend", "send", "latency"}, time.Now())

	payload, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("failed to marshal sandtimer command: %w", err)
	}

	dialer := net.Dialer{Timeout: c.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.Addr())
	if err != nil {
		metrics.IncrCounter([]string{"backend", "send", "error"}, 1)
		return fmt.Errorf("sandtimer service unreachable at %s: %w", c.Addr(), err)
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}
	if _, err := conn.Write(payload); err != nil {
		metrics.IncrCounter([]string{"backend", "send", "error"}, 1)
		return fmt.Errorf("sandtimer service unreachable at %s: %w", c.Addr(), err)
	}

	metrics.IncrCounter([]string{"backend", "send", "success"}, 1)
	return nil
}
