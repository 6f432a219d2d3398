// Copyright 2025 Author(s) of sandtimer-mcp
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setup(t *testing.T) {
	t.Helper()
	ForTestsOnlyResetLogger()
}

func TestGetLogger_DefaultInitialization(t *testing.T) {
	setup(t)

	logger := GetLogger()
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo), "default logger should have Info enabled")
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug), "default logger should not have Debug enabled")
}

func TestInit_WritesToConfiguredOutput(t *testing.T) {
	setup(t)

	var buf bytes.Buffer
	Init(slog.LevelDebug, &buf)

	GetLogger().Debug("test message")
	assert.Contains(t, buf.String(), "test message")
}

func TestInit_IsNoOpAfterFirstCall(t *testing.T) {
	setup(t)

	var buf1, buf2 bytes.Buffer
	Init(slog.LevelDebug, &buf1)
	Init(slog.LevelInfo, &buf2)

	GetLogger().Debug("test message")
	assert.Contains(t, buf1.String(), "test message")
	assert.Empty(t, buf2.String(), "second Init call should be a no-op")
}

func TestGetLogger_ReturnsSingleton(t *testing.T) {
	setup(t)

	logger1 := GetLogger()
	logger2 := GetLogger()
	assert.Same(t, logger1, logger2)
}
