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
	"fmt"
	"strings"
)

// Forwarder is the subset of the backend client used by the timer tools. It
// is satisfied by *backend.Client; tests substitute a recorder.
type Forwarder interface {
	Start(ctx context.Context, label string, seconds int) error
	Reset(ctx context.Context, label string) error
	Cancel(ctx context.Context, label string) error
}

// RegisterTimerTools registers the three built-in timer tools on reg, each
// forwarding accepted operations through fwd. Arguments are validated before
// any backend connection is opened; a validation failure never reaches the
// service.
func RegisterTimerTools(reg *Registry, fwd Forwarder) {
	reg.Register(Tool{
		Name:        "start_timer",
		Description: "Start or restart a named sand timer.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"label": map[string]any{
					"type":        "string",
					"description": "Human readable timer name.",
				},
				"time": map[string]any{
					"type":        "number",
					"description": "Duration of the timer in seconds.",
					"minimum":     1,
				},
			},
			"required": []string{"label", "time"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			label, err := validateLabel(args["label"])
			if err != nil {
				return "", err
			}
			seconds, err := validateSeconds(args["time"])
			if err != nil {
				return "", err
			}
			if err := fwd.Start(ctx, label, seconds); err != nil {
				return "", Errorf("Failed to reach sandtimer service: %v", err)
			}
			return fmt.Sprintf("Timer '%s' started for %d seconds.", label, seconds), nil
		},
	})

	reg.Register(Tool{
		Name:        "reset_timer",
		Description: "Reset an existing sand timer to its original duration.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"label": map[string]any{
					"type":        "string",
					"description": "Timer name to reset.",
				},
			},
			"required": []string{"label"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			label, err := validateLabel(args["label"])
			if err != nil {
				return "", err
			}
			if err := fwd.Reset(ctx, label); err != nil {
				return "", Errorf("Failed to reach sandtimer service: %v", err)
			}
			return fmt.Sprintf("Timer '%s' reset.", label), nil
		},
	})

	reg.Register(Tool{
		Name:        "cancel_timer",
		Description: "Cancel and close a sand timer window.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"label": map[string]any{
					"type":        "string",
					"description": "Timer name to cancel.",
				},
			},
			"required": []string{"label"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			label, err := validateLabel(args["label"])
			if err != nil {
				return "", err
			}
			if err := fwd.Cancel(ctx, label); err != nil {
				return "", Errorf("Failed to reach sandtimer service: %v", err)
			}
			return fmt.Sprintf("Timer '%s' canceled.", label), nil
		},
	})
}

// validateLabel requires a non-empty string after trimming and returns the
// trimmed label.
func validateLabel(value any) (string, error) {
	label, ok := value.(string)
	if !ok || strings.TrimSpace(label) == "" {
		return "", Errorf("'label' must be a non-empty string.")
	}
	return strings.TrimSpace(label), nil
}

// validateSeconds requires a positive numeric duration. Fractional values are
// truncated toward zero before the positivity check, so 2.9 becomes 2 and 0.5
// is rejected.
func validateSeconds(value any) (int, error) {
	var seconds int
	switch v := value.(type) {
	case float64: // JSON numbers decode as float64
		seconds = int(v)
	case int:
		seconds = v
	default:
		return 0, Errorf("'time' must be a number of seconds.")
	}
	if seconds <= 0 {
		return 0, Errorf("'time' must be greater than zero.")
	}
	return seconds, nil
}
