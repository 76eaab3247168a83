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
	"regexp"
	"strings"
	"time"
)

// =============================================================================
// LocalCommandParser
// =============================================================================

// Parser rewrite patterns. All are single-pass substitutions over the input;
// the parser performs no I/O and completes in time linear in the text.
var (
	// High-priority markers. The bare word "priority" counts only in its
	// urgency-prefix form ("priority:") or as the phrase "high priority" —
	// otherwise "low priority X" would read as high before the low scan runs.
	parserHighMarkers = regexp.MustCompile(
		`(?i)(\b(urgent|important|critical|asap|p1|high(\s+priority)?)\b\s*:?|\bpriority\s*:)`)

	// Low-priority markers, scanned only when no high marker matched.
	parserLowMarkers = regexp.MustCompile(
		`(?i)\b(low(\s+priority)?|minor|p3)\b`)

	// Due-date phrases. Tomorrow is checked first; the two are mutually
	// exclusive and the first match wins.
	parserTomorrow = regexp.MustCompile(`(?i)\b(tomorrow|tmrw)\b`)
	parserTonight  = regexp.MustCompile(`(?i)\btonight\b`)

	// Leading generic command phrase: verb, optional article, optional task
	// noun, optional infinitive "to". "Add a task to buy milk" → "buy milk".
	parserPrefix = regexp.MustCompile(
		`(?i)^\s*(add|create|new|plus|log|remind\s+me\s+to|i\s+need\s+to)\s+((a|an|the)\s+)?((task|todo|to-do|mission|reminder|objective)\b\s*)?(to\s+)?(:\s*)?`)

	// Trailing punctuation runs left behind by stripping.
	parserTrailingPunct = regexp.MustCompile(`[.:!]+\s*$`)

	// Whitespace runs collapse after marker removal.
	parserSpaces = regexp.MustCompile(`\s+`)
)

// clock returns the current time; injectable so due-date tests are stable.
type clock func() time.Time

// LocalCommandParser deterministically extracts {content, priority, due date}
// from a command string using ordered text-rewrite rules.
//
// # Description
//
// This is the offline fallback branch of the resolver and must never fail:
// Parse always returns a valid create action. The rewrite order is fixed —
// priority markers, then due-date phrases, then the leading command phrase,
// then trailing punctuation — and matched tokens are stripped from the
// content as they are consumed. If nothing remains, the content falls back
// to FallbackTaskContent; a create action never carries empty content.
//
// # Thread Safety
//
// LocalCommandParser is immutable after construction. Safe for concurrent use.
type LocalCommandParser struct {
	now clock
}

// NewLocalCommandParser returns a parser using the wall clock for due dates.
func NewLocalCommandParser() *LocalCommandParser {
	return &LocalCommandParser{now: time.Now}
}

// newLocalCommandParserAt returns a parser with a fixed clock, for tests.
func newLocalCommandParserAt(now func() time.Time) *LocalCommandParser {
	return &LocalCommandParser{now: now}
}

// Parse extracts a create action from a command string.
//
// # Inputs
//
//   - text: The raw command text. Empty input is valid.
//
// # Outputs
//
//   - ActionIntent: Always Kind == ActionCreateTask with non-empty Content,
//     a valid Priority, and DueDate either empty or one of
//     "YYYY-MM-DD" (tomorrow/tmrw) and "YYYY-MM-DD 21:00" (tonight).
//
// # Thread Safety
//
// Safe for concurrent use.
func (p *LocalCommandParser) Parse(text string) ActionIntent {
	content := text

	// 1. Priority markers: high first, low only if no high marker matched.
	priority := PriorityMedium
	if parserHighMarkers.MatchString(content) {
		priority = PriorityHigh
		content = parserHighMarkers.ReplaceAllString(content, " ")
	} else if parserLowMarkers.MatchString(content) {
		priority = PriorityLow
		content = parserLowMarkers.ReplaceAllString(content, " ")
	}

	// 2. Due-date phrases, evaluated after priority stripping. First match
	// wins; the matched phrase is consumed.
	dueDate := ""
	switch {
	case parserTomorrow.MatchString(content):
		dueDate = p.now().AddDate(0, 0, 1).Format("2006-01-02")
		content = parserTomorrow.ReplaceAllString(content, " ")
	case parserTonight.MatchString(content):
		dueDate = p.now().Format("2006-01-02") + " 21:00"
		content = parserTonight.ReplaceAllString(content, " ")
	}

	// 3. Leading command phrase, then leftover punctuation and whitespace.
	content = parserSpaces.ReplaceAllString(content, " ")
	content = strings.TrimSpace(content)
	content = parserPrefix.ReplaceAllString(content, "")
	content = parserTrailingPunct.ReplaceAllString(content, "")
	content = strings.TrimSpace(content)

	// 4. Hard invariant: content is never empty.
	if content == "" {
		content = FallbackTaskContent
	}

	return ActionIntent{
		Kind:     ActionCreateTask,
		Content:  content,
		Priority: priority,
		DueDate:  dueDate,
	}
}
