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

// Package app wires the backend client, tool registry and protocol engine
// together and runs the stdio session.
package app

import (
	"context"
	"io"

	"github.com/sandtimer/sandtimer-mcp/pkg/appconsts"
	"github.com/sandtimer/sandtimer-mcp/pkg/backend"
	"github.com/sandtimer/sandtimer-mcp/pkg/config"
	"github.com/sandtimer/sandtimer-mcp/pkg/logging"
	"github.com/sandtimer/sandtimer-mcp/pkg/mcpserver"
	"github.com/sandtimer/sandtimer-mcp/pkg/metrics"
	"github.com/sandtimer/sandtimer-mcp/pkg/tool"
)

// Runner starts the server and blocks until the session ends.
type Runner interface {
	Run(ctx context.Context, in io.Reader, out io.Writer, settings config.Settings) error
}

// Application is the production Runner implementation.
type Application struct{}

// NewApplication creates a new Application.
func NewApplication() *Application {
	return &Application{}
}

// Run builds the backend client, the tool registry with the built-in timer
// tools and the protocol engine, then serves the session until in reaches end
// of input or ctx is canceled. When a metrics listen address is configured,
// the /metrics endpoint is served on a background goroutine for the lifetime
// of the process.
func (a *Application) Run(ctx context.Context, in io.Reader, out io.Writer, settings config.Settings) error {
	log := logging.GetLogger().With("service", appconsts.Name)

	if settings.MetricsListenAddress != "" {
		go func() {
			if err := metrics.StartServer(settings.MetricsListenAddress); err != nil {
				log.Error("Metrics server failed", "error", err)
			}
		}()
	}

	client := backend.NewClient(settings.BackendHost, settings.BackendPort, settings.BackendTimeout)
	registry := tool.NewRegistry()
	tool.RegisterTimerTools(registry, client)

	server := mcpserver.NewServer(registry, out)
	log.Info("Serving MCP session", "backend", client.Addr(), "timeout", settings.BackendTimeout)

	if err := server.Serve(ctx, in); err != nil {
		return err
	}
	log.Info("Input stream closed, session complete")
	return nil
}
