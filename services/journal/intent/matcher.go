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

import "strings"

// =============================================================================
// TaskMatcher
// =============================================================================

// MatchTask resolves the single best-matching open task for a free-text
// query from a complete/delete action.
//
// # Description
//
//	The matching rule is deliberately plain: case-insensitive substring
//	containment of the trimmed query inside each candidate's content.
//	Only tasks with status != done are eligible. When several open tasks
//	contain the query, the first in caller-supplied order wins — the
//	caller controls the tie-break by ordering the slice (the service
//	passes most-recently-created first), which keeps the decision
//	deterministic instead of leaving it to map iteration order.
//
//	No fuzzy or edit-distance matching: that is a scope boundary, not a
//	gap. Upgrading it would change observable behavior and must be an
//	explicit decision.
//
// # Inputs
//
//   - query: The free-text task reference. Empty or whitespace-only
//     queries match nothing (an empty substring would match every task).
//   - tasks: Caller-owned candidate list. Read-only; never mutated or
//     retained past the call.
//
// # Outputs
//
//   - *Task: Pointer to a copy of the matched task, or nil when no open
//     task contains the query. Absence of a match is a valid outcome,
//     not an error; the caller owns the "could not find" message.
//
// # Thread Safety
//
// Safe for concurrent use; pure function over the arguments.
func MatchTask(query string, tasks []Task) *Task {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}

	for i := range tasks {
		if tasks[i].Status == StatusDone {
			continue
		}
		if strings.Contains(strings.ToLower(tasks[i].Content), needle) {
			match := tasks[i]
			return &match
		}
	}
	return nil
}
