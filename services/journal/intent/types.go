// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package intent implements the journal intent pipeline: deciding whether a
// free-text utterance is a reflective entry or a task command, classifying
// entries into a category, and turning commands into a normalized action
// with a deterministic offline fallback when the remote model is down.
//
// All exported operations are stateless and safe for concurrent use: the
// lexicons and rule tables are immutable after construction, and every call
// works on copied values.
package intent

import "time"

// =============================================================================
// Category
// =============================================================================

// Category is one of the fixed semantic labels an entry can be classified
// into. The set is closed; Categories() returns the declaration order used
// for deterministic tie-breaking.
type Category string

const (
	// CategoryVision tags dream journals and imagined futures.
	CategoryVision Category = "vision"

	// CategoryBuild tags ideas, projects, and things to make.
	CategoryBuild Category = "build"

	// CategoryLog tags records of what actually happened.
	CategoryLog Category = "log"

	// CategoryThink tags open reflection. It is the default category when
	// classification is below threshold or the input is too short.
	CategoryThink Category = "think"
)

// categoryChatAlias is a legacy presentational label that older clients
// stored in place of think. It is collapsed to CategoryThink before any
// classification result is returned and never appears in new data.
const categoryChatAlias Category = "chat"

// Categories returns all valid categories in declaration order.
//
// # Description
//
// The order is load-bearing: when two categories score exactly equal at or
// above the confidence threshold, the classifier picks the one that appears
// first in this slice. Callers must not mutate the returned slice.
func Categories() []Category {
	return allCategories
}

var allCategories = []Category{CategoryVision, CategoryBuild, CategoryLog, CategoryThink}

// NormalizeCategory collapses legacy aliases and unknown labels.
//
// # Inputs
//
//   - c: Any category string, including values read from old records.
//
// # Outputs
//
//   - Category: A member of the closed set. Unknown labels and the legacy
//     chat alias map to CategoryThink.
func NormalizeCategory(c Category) Category {
	if c == categoryChatAlias {
		return CategoryThink
	}
	for _, known := range allCategories {
		if c == known {
			return c
		}
	}
	return CategoryThink
}

// =============================================================================
// Priority
// =============================================================================

// Priority is the closed task priority set. The zero-ish default for
// unspecified or out-of-set values is PriorityMedium.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// NormalizePriority coerces any string to a valid Priority.
// Values outside the closed set become PriorityMedium.
func NormalizePriority(p string) Priority {
	switch Priority(p) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(p)
	default:
		return PriorityMedium
	}
}

// =============================================================================
// ActionIntent
// =============================================================================

// ActionKind discriminates the ActionIntent union.
type ActionKind string

const (
	ActionCreateTask   ActionKind = "create_task"
	ActionCompleteTask ActionKind = "complete_task"
	ActionDeleteTask   ActionKind = "delete_task"
	ActionUnrecognized ActionKind = "unrecognized"
)

// FallbackTaskContent substitutes for blank content in a create action.
// CreateTask content is never empty after trimming; this is a hard invariant
// enforced by both the local parser and remote normalization.
const FallbackTaskContent = "New Task"

// ActionIntent is the normalized, closed-set representation of what a
// command should do.
//
// # Description
//
// Exactly one variant is populated per Kind:
//
//   - ActionCreateTask: Content (never empty), Priority, DueDate ("" = none).
//   - ActionCompleteTask / ActionDeleteTask: Query.
//   - ActionUnrecognized: no fields.
//
// ActionIntent values are ephemeral — created, consumed, and discarded
// within a single request. Nothing in this package retains one.
type ActionIntent struct {
	Kind ActionKind `json:"kind"`

	// Content is the task text for a create action. Invariant: non-empty
	// after trimming whenever Kind == ActionCreateTask.
	Content string `json:"content,omitempty"`

	// Priority applies to create actions only.
	Priority Priority `json:"priority,omitempty"`

	// DueDate is "YYYY-MM-DD" or "YYYY-MM-DD HH:MM". Empty means no due
	// date; an unparsable remote value is normalized to empty, never kept.
	DueDate string `json:"due_date,omitempty"`

	// Query is the free-text task reference for complete/delete actions.
	Query string `json:"query,omitempty"`
}

// =============================================================================
// ClassificationResult
// =============================================================================

// ClassificationResult is the outcome of classifying one entry. Produced
// fresh per call; it has no identity and is never persisted.
type ClassificationResult struct {
	// Category is the winning category after threshold, tie-break, and
	// alias collapse.
	Category Category `json:"category"`

	// Scores holds the raw per-category score that produced the decision.
	Scores map[Category]int `json:"scores"`
}

// =============================================================================
// Task (read-only to this package)
// =============================================================================

// TaskStatus is the closed task lifecycle set.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

// Task is the external task record the matcher reads. This package never
// mutates a Task; it only selects one by id and hands the decision back.
type Task struct {
	ID       string     `json:"id"`
	Content  string     `json:"content"`
	Status   TaskStatus `json:"status"`
	Priority Priority   `json:"priority"`
	DueDate  string     `json:"due_date,omitempty"`
	Created  time.Time  `json:"created_at"`
}

// =============================================================================
// Resolution provenance
// =============================================================================

// IntentSource records which branch produced an ActionIntent. It is the
// only way a caller can distinguish remote success from local fallback,
// typically surfaced as a "working offline" notice.
type IntentSource string

const (
	SourceRemote IntentSource = "remote"
	SourceLocal  IntentSource = "local"
)
