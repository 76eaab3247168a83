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
	"testing"
	"time"
)

func TestDefaultServiceConfig(t *testing.T) {
	cfg := DefaultServiceConfig()
	if cfg.MinScore != 2 {
		t.Errorf("MinScore = %d, want 2", cfg.MinScore)
	}
	if cfg.MinLength != 3 {
		t.Errorf("MinLength = %d, want 3", cfg.MinLength)
	}
	if cfg.ResolveTimeout != 15*time.Second {
		t.Errorf("ResolveTimeout = %v, want 15s", cfg.ResolveTimeout)
	}
	if cfg.DataDir != "" {
		t.Errorf("DataDir = %q, want empty", cfg.DataDir)
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("overrides applied", func(t *testing.T) {
		t.Setenv("MINDLOFT_DATA_DIR", "/var/lib/mindloft")
		t.Setenv("MINDLOFT_RESOLVE_TIMEOUT", "5s")

		cfg := DefaultServiceConfig().FromEnv()
		if cfg.DataDir != "/var/lib/mindloft" {
			t.Errorf("DataDir = %q, want /var/lib/mindloft", cfg.DataDir)
		}
		if cfg.ResolveTimeout != 5*time.Second {
			t.Errorf("ResolveTimeout = %v, want 5s", cfg.ResolveTimeout)
		}
	})

	t.Run("invalid timeout keeps default", func(t *testing.T) {
		t.Setenv("MINDLOFT_RESOLVE_TIMEOUT", "not-a-duration")

		cfg := DefaultServiceConfig().FromEnv()
		if cfg.ResolveTimeout != 15*time.Second {
			t.Errorf("ResolveTimeout = %v, want default 15s", cfg.ResolveTimeout)
		}
	})

	t.Run("negative timeout keeps default", func(t *testing.T) {
		t.Setenv("MINDLOFT_RESOLVE_TIMEOUT", "-5s")

		cfg := DefaultServiceConfig().FromEnv()
		if cfg.ResolveTimeout != 15*time.Second {
			t.Errorf("ResolveTimeout = %v, want default 15s", cfg.ResolveTimeout)
		}
	})

	t.Run("unset env leaves defaults", func(t *testing.T) {
		t.Setenv("MINDLOFT_DATA_DIR", "")
		t.Setenv("MINDLOFT_RESOLVE_TIMEOUT", "")

		cfg := DefaultServiceConfig().FromEnv()
		if cfg != DefaultServiceConfig() {
			t.Errorf("FromEnv() with no overrides = %+v, want defaults", cfg)
		}
	})
}
