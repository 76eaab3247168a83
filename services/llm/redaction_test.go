// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package llm

import (
	"strings"
	"testing"
)

func TestSafeLogString(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantGone    string
		wantPresent string
	}{
		{
			name:        "openai api key",
			input:       "request failed for sk-abcdefghijklmnopqrstuvwxyz123456",
			wantGone:    "sk-abcdefghijklmnopqrstuvwxyz123456",
			wantPresent: "[REDACTED:api_key]",
		},
		{
			name:        "bearer token",
			input:       "header was Authorization: Bearer abc123def456ghi789",
			wantGone:    "abc123def456ghi789",
			wantPresent: "[REDACTED:bearer_token]",
		},
		{
			name:        "url key parameter",
			input:       "called https://api.example.com/v1?key=supersecretvalue1",
			wantGone:    "supersecretvalue1",
			wantPresent: "key=[REDACTED]",
		},
		{
			name:        "password in connection string",
			input:       "dsn: host=db user=app password=hunter2pass",
			wantGone:    "hunter2pass",
			wantPresent: "password=[REDACTED]",
		},
		{
			name:        "short sk prefix passes through",
			input:       "the test key sk-test is not a real secret",
			wantPresent: "sk-test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeLogString(tt.input)
			if tt.wantGone != "" && strings.Contains(got, tt.wantGone) {
				t.Errorf("SafeLogString(%q) = %q, secret still present", tt.input, got)
			}
			if tt.wantPresent != "" && !strings.Contains(got, tt.wantPresent) {
				t.Errorf("SafeLogString(%q) = %q, want it to contain %q", tt.input, got, tt.wantPresent)
			}
		})
	}
}

func TestSafeLogString_Empty(t *testing.T) {
	if got := SafeLogString(""); got != "" {
		t.Errorf("SafeLogString(\"\") = %q, want empty", got)
	}
}
