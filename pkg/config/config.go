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

// Package config binds the server's command line flags and environment
// variables and exposes them as an immutable settings snapshot.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sandtimer/sandtimer-mcp/pkg/backend"
)

// Settings is a snapshot of the server's configuration taken after flag and
// environment parsing.
type Settings struct {
	// BackendHost and BackendPort locate the external sandtimer service.
	BackendHost string
	BackendPort int
	// BackendTimeout bounds the connect and write of each backend command.
	BackendTimeout time.Duration
	// Debug enables debug-level logging.
	Debug bool
	// LogFile, when set, receives log output instead of stderr.
	LogFile string
	// MetricsListenAddress, when set, exposes /metrics on the given address.
	MetricsListenAddress string
}

// BindFlags registers the server's command line flags on cmd and binds them
// to viper so every flag can also be supplied through a SANDTIMER_* environment
// variable (dashes become underscores, e.g. SANDTIMER_BACKEND_PORT).
func BindFlags(cmd *cobra.Command) error {
	viper.SetEnvPrefix("SANDTIMER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	cmd.Flags().String("backend-host", backend.DefaultHost, "Host of the sandtimer service. Env: SANDTIMER_BACKEND_HOST")
	cmd.Flags().Int("backend-port", backend.DefaultPort, "TCP port of the sandtimer service. Env: SANDTIMER_BACKEND_PORT")
	cmd.Flags().Duration("backend-timeout", backend.DefaultTimeout, "Connect and write timeout for backend commands. Env: SANDTIMER_BACKEND_TIMEOUT")
	cmd.Flags().Bool("debug", false, "Enable debug logging. Env: SANDTIMER_DEBUG")
	cmd.Flags().String("logfile", "", "Path to a file to write logs to. If not set, logs are written to stderr. Env: SANDTIMER_LOGFILE")
	cmd.Flags().String("metrics-listen-address", "", "Address to expose /metrics on. Empty disables the metrics listener. Env: SANDTIMER_METRICS_LISTEN_ADDRESS")

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind command line flags: %w", err)
	}
	return nil
}

// Load returns the settings resolved from flags, environment and defaults.
func Load() Settings {
	return Settings{
		BackendHost:          viper.GetString("backend-host"),
		BackendPort:          viper.GetInt("backend-port"),
		BackendTimeout:       viper.GetDuration("backend-timeout"),
		Debug:                viper.GetBool("debug"),
		LogFile:              viper.GetString("logfile"),
		MetricsListenAddress: viper.GetString("metrics-listen-address"),
	}
}
