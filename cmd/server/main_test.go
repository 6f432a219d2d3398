// Copyright 2025 Author(s) of sandtimer-mcp
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandtimer/sandtimer-mcp/pkg/appconsts"
	"github.com/sandtimer/sandtimer-mcp/pkg/config"
)

// mockRunner is a mock implementation of the app.Runner interface.
type mockRunner struct {
	called           bool
	capturedSettings config.Settings
}

func (m *mockRunner) Run(_ context.Context, _ io.Reader, _ io.Writer, settings config.Settings) error {
	m.called = true
	m.capturedSettings = settings
	return nil
}

func TestVersionCmd(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	rootCmd := newRootCmd()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"version"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), appconsts.Name+" version ")
}

func TestRootCmd(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	mock := &mockRunner{}
	originalRunner := appRunner
	appRunner = mock
	defer func() { appRunner = originalRunner }()

	rootCmd := newRootCmd()
	rootCmd.SetArgs([]string{
		"--backend-host", "192.0.2.1",
		"--backend-port", "6000",
		"--backend-timeout", "2s",
	})
	require.NoError(t, rootCmd.Execute())

	assert.True(t, mock.called, "app.Run should have been called")
	assert.Equal(t, "192.0.2.1", mock.capturedSettings.BackendHost)
	assert.Equal(t, 6000, mock.capturedSettings.BackendPort)
	assert.Equal(t, 2*time.Second, mock.capturedSettings.BackendTimeout)
}
