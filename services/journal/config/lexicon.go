// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config holds the static configuration for the journal service:
// the embedded weighted lexicons and the service settings read from the
// environment at startup.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"sync"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Embedded Lexicon Configuration
// =============================================================================

//go:embed lexicon.yaml
var defaultLexiconYAML []byte

// Lexicon maps a category name to its keyword → weight table. Weights are
// positive integers; a keyword occurring N times contributes N × weight to
// the category score.
//
// The map is loaded from lexicon.yaml at startup and cached. It is the only
// shared resource in the intent pipeline and is immutable after load, so
// concurrent access needs no synchronization.
type Lexicon map[string]map[string]int

var (
	cachedLexicon Lexicon
	lexiconOnce   sync.Once
	lexiconErr    error
)

// LoadLexicon loads and caches the weighted category lexicons from the
// embedded YAML configuration. Returns the cached result on subsequent calls.
//
// # Description
//
//	Parses lexicon.yaml, which maps category names to keyword weight tables.
//	Entries with non-positive weights are rejected at load time rather than
//	silently ignored — a corrupted static table is a startup error, the one
//	place in the pipeline where an error return is reserved for genuinely
//	unexpected state.
//
// # Outputs
//
//   - Lexicon: The loaded mapping. Never nil on success.
//   - error: Non-nil if YAML parsing fails or a weight is not positive.
//
// # Thread Safety
//
// Safe for concurrent use (uses sync.Once internally).
func LoadLexicon() (Lexicon, error) {
	lexiconOnce.Do(func() {
		var raw map[string]map[string]int
		if err := yaml.Unmarshal(defaultLexiconYAML, &raw); err != nil {
			lexiconErr = fmt.Errorf("parsing lexicon.yaml: %w", err)
			return
		}
		keywordCount := 0
		for category, entries := range raw {
			if len(entries) == 0 {
				lexiconErr = fmt.Errorf("lexicon.yaml: category %q has no keywords", category)
				return
			}
			for keyword, weight := range entries {
				if weight <= 0 {
					lexiconErr = fmt.Errorf("lexicon.yaml: keyword %q in %q has non-positive weight %d",
						keyword, category, weight)
					return
				}
				keywordCount++
			}
		}
		cachedLexicon = raw
		slog.Info("category lexicons loaded",
			slog.Int("category_count", len(raw)),
			slog.Int("keyword_count", keywordCount),
		)
	})
	return cachedLexicon, lexiconErr
}
