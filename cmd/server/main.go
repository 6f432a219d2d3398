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

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sandtimer/sandtimer-mcp/pkg/app"
	"github.com/sandtimer/sandtimer-mcp/pkg/appconsts"
	"github.com/sandtimer/sandtimer-mcp/pkg/config"
	"github.com/sandtimer/sandtimer-mcp/pkg/logging"
	"github.com/sandtimer/sandtimer-mcp/pkg/metrics"
)

var appRunner app.Runner = app.NewApplication()

// newRootCmd creates and configures the main command for the application. The
// root command serves a single MCP session on stdin/stdout: stdout carries
// the JSON-RPC stream, so logs are directed to stderr or a logfile.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          appconsts.Name,
		Short:        "MCP server exposing sand timer tools over stdio.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.Load()

			logLevel := slog.LevelInfo
			if settings.Debug {
				logLevel = slog.LevelDebug
			}

			var logOutput io.Writer = os.Stderr
			if settings.LogFile != "" {
				f, err := os.OpenFile(settings.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
				if err != nil {
					return fmt.Errorf("failed to open logfile: %w", err)
				}
				defer f.Close()
				logOutput = f
			}
			logging.Init(logLevel, logOutput)

			if err := metrics.Initialize(); err != nil {
				return fmt.Errorf("failed to initialize metrics: %w", err)
			}

			log := logging.GetLogger()
			log.Info("Configuration",
				"backend-host", settings.BackendHost,
				"backend-port", settings.BackendPort,
				"backend-timeout", settings.BackendTimeout,
				"metrics-listen-address", settings.MetricsListenAddress)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := appRunner.Run(ctx, os.Stdin, os.Stdout, settings); err != nil {
				log.Error("Server failed", "error", err)
				return err
			}
			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of " + appconsts.Name,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appconsts.Name, appconsts.Version)
			if err != nil {
				return fmt.Errorf("failed to print version: %w", err)
			}
			return nil
		},
	}
	rootCmd.AddCommand(versionCmd)

	if err := config.BindFlags(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding command line flags: %v\n", err)
		os.Exit(1)
	}

	return rootCmd
}

// main is the entry point for the sandtimer-mcp server. The application exits
// with a non-zero status code if the command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
