// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package intent

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/MindloftHQ/mindloft/services/journal/config"
)

// =============================================================================
// ModeClassifier
// =============================================================================

// categoryKeyword is one compiled lexicon entry.
type categoryKeyword struct {
	word    string
	weight  int
	pattern *regexp.Regexp
}

// ModeClassifier scores free text against every category lexicon and picks
// a winner under a minimum-confidence rule.
//
// # Description
//
// For each category, the score is Σ weight × occurrenceCount over all
// lexicon keywords matched as whole words, case-insensitive. The strictly
// highest score wins; an exact tie at or above threshold goes to the
// category earliest in Categories() declaration order. Inputs shorter than
// the minimum length, and winning scores below the minimum score, return
// the default reflective category regardless of scores.
//
// # Thread Safety
//
// ModeClassifier is immutable after NewModeClassifier. Safe for concurrent
// use without synchronization.
type ModeClassifier struct {
	minScore  int
	minLength int
	keywords  map[Category][]categoryKeyword
	logger    *slog.Logger
}

// NewModeClassifier builds a classifier from a loaded lexicon.
//
// # Description
//
//	Compiles every keyword into a case-insensitive whole-word pattern.
//	Lexicon tables keyed by a legacy alias are merged into their canonical
//	category. A keyword that fails to compile is logged and skipped — it
//	simply never matches — rather than failing construction; only an
//	unknown category name is a hard error, since that indicates a
//	corrupted static table.
//
// # Inputs
//
//   - lexicon: Category → keyword → weight tables. Must not be empty.
//   - minScore: Minimum winning score to commit to a category.
//   - minLength: Minimum input length in runes.
//   - logger: Logger instance. Nil uses slog.Default().
//
// # Outputs
//
//   - *ModeClassifier: The constructed classifier.
//   - error: Non-nil if the lexicon is empty or names an unknown category.
func NewModeClassifier(lexicon config.Lexicon, minScore, minLength int, logger *slog.Logger) (*ModeClassifier, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(lexicon) == 0 {
		return nil, fmt.Errorf("classifier: empty lexicon")
	}

	known := make(map[Category]bool, len(allCategories))
	for _, c := range allCategories {
		known[c] = true
	}

	keywords := make(map[Category][]categoryKeyword, len(allCategories))
	for rawCategory, entries := range lexicon {
		category := Category(rawCategory)
		if category == categoryChatAlias {
			// Legacy tables keyed by the presentational alias merge into
			// the canonical reflective category.
			category = CategoryThink
		} else if !known[category] {
			return nil, fmt.Errorf("classifier: unknown category %q in lexicon", rawCategory)
		}

		// Deterministic compile order; score is order-independent.
		words := make([]string, 0, len(entries))
		for word := range entries {
			words = append(words, word)
		}
		sort.Strings(words)

		for _, word := range words {
			pattern, err := compileKeyword(word)
			if err != nil {
				// Treated as "no match" for that keyword, never surfaced.
				logger.Warn("skipping unmatchable lexicon keyword",
					slog.String("category", string(category)),
					slog.String("keyword", word),
					slog.String("error", err.Error()),
				)
				continue
			}
			keywords[category] = append(keywords[category], categoryKeyword{
				word:    word,
				weight:  entries[word],
				pattern: pattern,
			})
		}
	}

	return &ModeClassifier{
		minScore:  minScore,
		minLength: minLength,
		keywords:  keywords,
		logger:    logger,
	}, nil
}

// compileKeyword builds the case-insensitive whole-word pattern for a
// lexicon entry. QuoteMeta keeps user-authored table entries from being
// interpreted as regex syntax.
func compileKeyword(word string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
}

// Classify scores text against every category and returns the winner.
//
// # Description
//
//	Pure function over the static lexicon. Never errors: ambiguity is
//	resolved by the documented threshold and declaration-order tie-break,
//	and a legacy alias, should one ever win, is collapsed to the canonical
//	reflective category before returning.
//
// # Inputs
//
//   - text: Any UTF-8 text, including empty or very short strings.
//
// # Outputs
//
//   - ClassificationResult: Winning category plus the per-category scores
//     that produced it. Scores always has an entry for every category.
//
// # Thread Safety
//
// Safe for concurrent use.
func (m *ModeClassifier) Classify(text string) ClassificationResult {
	scores := make(map[Category]int, len(allCategories))
	for _, category := range allCategories {
		scores[category] = 0
	}

	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < m.minLength {
		classifyTotal.WithLabelValues(string(CategoryThink)).Inc()
		return ClassificationResult{Category: CategoryThink, Scores: scores}
	}

	for category, entries := range m.keywords {
		total := 0
		for _, kw := range entries {
			occurrences := len(kw.pattern.FindAllStringIndex(trimmed, -1))
			if occurrences > 0 {
				total += occurrences * kw.weight
			}
		}
		scores[category] = total
	}

	// Declaration-order scan with a strict > so exact ties go to the
	// earliest category. This is a documented rule, not an accident of
	// map iteration.
	winner := CategoryThink
	best := 0
	for _, category := range allCategories {
		if scores[category] > best {
			best = scores[category]
			winner = category
		}
	}

	if best < m.minScore {
		winner = CategoryThink
	}
	winner = NormalizeCategory(winner)

	classifyTotal.WithLabelValues(string(winner)).Inc()
	return ClassificationResult{Category: winner, Scores: scores}
}
