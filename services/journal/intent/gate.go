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

import "regexp"

// =============================================================================
// CommandGate
// =============================================================================

// Command gate patterns, compiled once at init and immutable thereafter.
//
// The imperative pattern is anchored to the start of the (trimmed) utterance
// so that merely mentioning an action verb mid-sentence in a reflective
// entry does not route it into the task pipeline. Reminder, urgency, and
// obligation phrasing match anywhere — those forms are rare outside genuine
// commands.
var (
	// "add a task ...", "create todo ...", "schedule the reminder ...".
	// The verb alone is not enough: it must pair with a task noun, or the
	// noun must directly follow an optional article.
	gateImperative = regexp.MustCompile(
		`(?i)^\s*(add|create|new|log|record|schedule|deploy|execute|start)\s+(a\s+|an\s+|the\s+)?(task|todo|to-do|mission|reminder|objective|operation)\b`)

	// "remind me to call the bank", "don't forget to stretch".
	gateReminder = regexp.MustCompile(
		`(?i)\b(remind\s+me\s+to|don'?t\s+forget\s+to)\b`)

	// "urgent: renew passport", "p1: rotate the keys".
	gateUrgency = regexp.MustCompile(
		`(?i)\b(urgent|priority|p[123])\s*:`)

	// "I need to file taxes", "I must to..." (common ESL phrasing kept).
	gateObligation = regexp.MustCompile(
		`(?i)\bi\s+(need|have|must)\s+to\b`)
)

// IsCommand reports whether text looks like an imperative task command
// rather than a reflective journal entry.
//
// # Description
//
//	Pure boolean predicate evaluated before classification: when true,
//	control routes to the intent resolver and the mode classifier is never
//	invoked for that input.
//
// # Inputs
//
//   - text: The raw utterance. Leading whitespace is tolerated.
//
// # Outputs
//
//   - bool: True when any command pattern matches.
//
// # Thread Safety
//
// Safe for concurrent use (reads pre-compiled package-level patterns).
func IsCommand(text string) bool {
	matched := gateImperative.MatchString(text) ||
		gateReminder.MatchString(text) ||
		gateUrgency.MatchString(text) ||
		gateObligation.MatchString(text)

	if matched {
		gateTotal.WithLabelValues("command").Inc()
	} else {
		gateTotal.WithLabelValues("entry").Inc()
	}
	return matched
}
