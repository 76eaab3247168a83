// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"log/slog"
	"os"
	"time"
)

// =============================================================================
// Service Configuration
// =============================================================================

// ServiceConfig holds the tunable settings of the journal service.
//
// # Description
//
//	Values are fixed at process start: construct with DefaultServiceConfig,
//	then optionally apply environment overrides with FromEnv. Nothing in the
//	pipeline re-reads configuration at runtime.
type ServiceConfig struct {
	// MinScore is the minimum winning score required for the classifier to
	// commit to a category. Below it the default reflective category wins.
	// Default: 2.
	MinScore int

	// MinLength is the minimum input length (in runes) the classifier will
	// consider. Shorter inputs return the default reflective category.
	// Default: 3.
	MinLength int

	// ResolveTimeout is the hard upper bound on the remote intent
	// extraction attempt. Whichever of {remote response, timeout} settles
	// first wins; the loser is discarded. Default: 15s.
	ResolveTimeout time.Duration

	// DataDir is the BadgerDB directory for the task store. Empty means
	// "use the in-memory store" (tests, or degraded deployments).
	DataDir string
}

// DefaultServiceConfig returns sensible defaults.
//
// # Outputs
//
//   - ServiceConfig: Default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MinScore:       2,
		MinLength:      3,
		ResolveTimeout: 15 * time.Second,
	}
}

// FromEnv applies environment overrides to the config.
//
// # Description
//
//	Recognized variables:
//
//	  MINDLOFT_DATA_DIR        - BadgerDB directory for the task store.
//	  MINDLOFT_RESOLVE_TIMEOUT - Go duration string, e.g. "5s", "30s".
//
//	Invalid values are logged and ignored; the existing value is kept.
//
// # Outputs
//
//   - ServiceConfig: The updated configuration (receiver is a value).
func (c ServiceConfig) FromEnv() ServiceConfig {
	if dir := os.Getenv("MINDLOFT_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}
	if raw := os.Getenv("MINDLOFT_RESOLVE_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			slog.Warn("ignoring invalid MINDLOFT_RESOLVE_TIMEOUT",
				slog.String("value", raw),
			)
		} else {
			c.ResolveTimeout = d
		}
	}
	return c
}
