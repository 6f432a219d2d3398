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

package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedCall is one forwarded backend operation.
type recordedCall struct {
	cmd     string
	label   string
	seconds int
}

// fakeForwarder records forwarded operations and optionally fails every call.
type fakeForwarder struct {
	calls []recordedCall
	err   error
}

func (f *fakeForwarder) Start(_ context.Context, label string, seconds int) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, recordedCall{cmd: "start", label: label, seconds: seconds})
	return nil
}

func (f *fakeForwarder) Reset(_ context.Context, label string) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, recordedCall{cmd: "reset", label: label})
	return nil
}

func (f *fakeForwarder) Cancel(_ context.Context, label string) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, recordedCall{cmd: "cancel", label: label})
	return nil
}

func newTimerRegistry(t *testing.T) (*Registry, *fakeForwarder) {
	t.Helper()
	fwd := &fakeForwarder{}
	reg := NewRegistry()
	RegisterTimerTools(reg, fwd)
	return reg, fwd
}

func call(t *testing.T, reg *Registry, name string, args map[string]any) (string, error) {
	t.Helper()
	tl, ok := reg.Get(name)
	require.True(t, ok, "tool %s must be registered", name)
	return tl.Handler(context.Background(), args)
}

func TestBuiltinToolMetadata(t *testing.T) {
	reg, _ := newTimerRegistry(t)

	tools := reg.List()
	require.Len(t, tools, 3)
	assert.Equal(t, "start_timer", tools[0].Name)
	assert.Equal(t, "reset_timer", tools[1].Name)
	assert.Equal(t, "cancel_timer", tools[2].Name)

	assert.Equal(t, []string{"label", "time"}, tools[0].InputSchema["required"])
	assert.Equal(t, []string{"label"}, tools[1].InputSchema["required"])
	assert.Equal(t, []string{"label"}, tools[2].InputSchema["required"])
}

func TestStartTimer(t *testing.T) {
	t.Run("forwards start with integer seconds", func(t *testing.T) {
		reg, fwd := newTimerRegistry(t)
		out, err := call(t, reg, "start_timer", map[string]any{"label": "tea", "time": float64(180)})
		require.NoError(t, err)
		assert.Equal(t, "Timer 'tea' started for 180 seconds.", out)
		assert.Equal(t, []recordedCall{{cmd: "start", label: "tea", seconds: 180}}, fwd.calls)
	})

	t.Run("truncates fractional seconds", func(t *testing.T) {
		reg, fwd := newTimerRegistry(t)
		out, err := call(t, reg, "start_timer", map[string]any{"label": "egg", "time": 2.9})
		require.NoError(t, err)
		assert.Equal(t, "Timer 'egg' started for 2 seconds.", out)
		assert.Equal(t, 2, fwd.calls[0].seconds)
	})

	t.Run("trims the label before forwarding", func(t *testing.T) {
		reg, fwd := newTimerRegistry(t)
		_, err := call(t, reg, "start_timer", map[string]any{"label": "  tea  ", "time": float64(60)})
		require.NoError(t, err)
		assert.Equal(t, "tea", fwd.calls[0].label)
	})

	t.Run("rejects non-positive durations", func(t *testing.T) {
		for _, seconds := range []float64{0, -5, 0.5} {
			reg, fwd := newTimerRegistry(t)
			_, err := call(t, reg, "start_timer", map[string]any{"label": "tea", "time": seconds})
			var execErr *ExecutionError
			require.ErrorAs(t, err, &execErr, "time=%v", seconds)
			assert.Contains(t, execErr.Message, "greater than zero")
			assert.Empty(t, fwd.calls, "no backend call may be issued for time=%v", seconds)
		}
	})

	t.Run("rejects non-numeric durations", func(t *testing.T) {
		for _, badTime := range []any{"180", nil, true, map[string]any{}} {
			reg, fwd := newTimerRegistry(t)
			_, err := call(t, reg, "start_timer", map[string]any{"label": "tea", "time": badTime})
			var execErr *ExecutionError
			require.ErrorAs(t, err, &execErr, "time=%v", badTime)
			assert.Contains(t, execErr.Message, "'time' must be a number")
			assert.Empty(t, fwd.calls)
		}
	})
}

func TestLabelValidation(t *testing.T) {
	badLabels := []any{"", "   ", nil, 42, []any{"tea"}}

	for _, name := range []string{"start_timer", "reset_timer", "cancel_timer"} {
		t.Run(name, func(t *testing.T) {
			for _, label := range badLabels {
				reg, fwd := newTimerRegistry(t)
				args := map[string]any{"label": label}
				if name == "start_timer" {
					args["time"] = float64(60)
				}
				_, err := call(t, reg, name, args)
				var execErr *ExecutionError
				require.ErrorAs(t, err, &execErr, "label=%v", label)
				assert.Contains(t, execErr.Message, "'label' must be a non-empty string")
				assert.Empty(t, fwd.calls, "no backend call may be issued for label=%v", label)
			}
		})
	}
}

func TestResetAndCancelTimer(t *testing.T) {
	reg, fwd := newTimerRegistry(t)

	out, err := call(t, reg, "reset_timer", map[string]any{"label": "tea"})
	require.NoError(t, err)
	assert.Equal(t, "Timer 'tea' reset.", out)

	out, err = call(t, reg, "cancel_timer", map[string]any{"label": "tea"})
	require.NoError(t, err)
	assert.Equal(t, "Timer 'tea' canceled.", out)

	assert.Equal(t, []recordedCall{
		{cmd: "reset", label: "tea"},
		{cmd: "cancel", label: "tea"},
	}, fwd.calls)
}

func TestBackendFailureSurfacesAsExecutionError(t *testing.T) {
	fwd := &fakeForwarder{err: errors.New("dial tcp 127.0.0.1:61420: connection refused")}
	reg := NewRegistry()
	RegisterTimerTools(reg, fwd)

	for _, tc := range []struct {
		name string
		args map[string]any
	}{
		{"start_timer", map[string]any{"label": "tea", "time": float64(60)}},
		{"reset_timer", map[string]any{"label": "tea"}},
		{"cancel_timer", map[string]any{"label": "tea"}},
	} {
		_, err := call(t, reg, tc.name, tc.args)
		var execErr *ExecutionError
		require.ErrorAs(t, err, &execErr, tc.name)
		assert.Contains(t, execErr.Message, "Failed to reach sandtimer service")
		assert.Contains(t, execErr.Message, "connection refused")
	}
}
