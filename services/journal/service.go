// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package journal wires the intent pipeline to its collaborators: the task
// store, the entry-analysis boundary, and the HTTP surface. Wire types and
// storage calls live here; the pipeline itself stays free of both.
package journal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MindloftHQ/mindloft/services/journal/config"
	"github.com/MindloftHQ/mindloft/services/journal/intent"
	"github.com/MindloftHQ/mindloft/services/journal/tasks"
)

// =============================================================================
// Collaborator Boundaries
// =============================================================================

// EntryAnalyzer consumes classified reflective entries. What it does with
// them (insight generation, streaks, recall indexing) is its own business;
// this service only hands over the category and the original text.
//
// Thread Safety: Implementations must be safe for concurrent use.
type EntryAnalyzer interface {
	AnalyzeEntry(ctx context.Context, category intent.Category, text string)
}

// noopAnalyzer is the default when no analyzer collaborator is wired.
type noopAnalyzer struct{}

func (noopAnalyzer) AnalyzeEntry(context.Context, intent.Category, string) {}

// =============================================================================
// Outcome
// =============================================================================

// OutcomeKind discriminates what happened to one utterance.
type OutcomeKind string

const (
	// OutcomeEntry: the text was a reflective entry; Category and Scores
	// are set and the entry was handed to the analyzer.
	OutcomeEntry OutcomeKind = "entry"

	// OutcomeTaskCreated / OutcomeTaskCompleted / OutcomeTaskDeleted: a
	// command resolved and the store mutation succeeded; Task is set.
	OutcomeTaskCreated   OutcomeKind = "task_created"
	OutcomeTaskCompleted OutcomeKind = "task_completed"
	OutcomeTaskDeleted   OutcomeKind = "task_deleted"

	// OutcomeNoMatch: a complete/delete command matched no open task;
	// Query carries the text the user should see in the "could not find"
	// message.
	OutcomeNoMatch OutcomeKind = "no_match"

	// OutcomeUnrecognized: the command could not be understood.
	OutcomeUnrecognized OutcomeKind = "unrecognized"
)

// InterpretResult is the outcome of interpreting one utterance.
type InterpretResult struct {
	Kind OutcomeKind

	// Entry path.
	Category intent.Category
	Scores   map[intent.Category]int

	// Command path.
	Task   *intent.Task
	Query  string
	Source intent.IntentSource

	// Degraded is true when a command was resolved by the offline parser,
	// so the UI can show a "working offline" notice.
	Degraded bool
}

// =============================================================================
// Service
// =============================================================================

// Service orchestrates the full pipeline: gate → resolver or classifier →
// store mutation or analyzer hand-off.
//
// # Thread Safety
//
// Safe for concurrent use; all state is read-only after construction and
// the store provides its own isolation.
type Service struct {
	classifier *intent.ModeClassifier
	resolver   *intent.IntentResolver
	store      tasks.Store
	analyzer   EntryAnalyzer
	logger     *slog.Logger
}

// NewService builds the service from configuration.
//
// # Inputs
//
//   - cfg: Classifier thresholds and resolver timeout.
//   - extractor: Remote intent boundary. Nil runs fully offline.
//   - store: Task store. Must not be nil.
//   - analyzer: Entry-analysis collaborator. Nil installs a no-op.
//   - logger: Logger instance. Nil uses slog.Default().
//
// # Outputs
//
//   - *Service: The constructed service.
//   - error: Non-nil only for startup problems (corrupt lexicon, nil store).
func NewService(cfg config.ServiceConfig, extractor intent.RemoteIntentExtractor, store tasks.Store, analyzer EntryAnalyzer, logger *slog.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("journal: store must not be nil")
	}
	if analyzer == nil {
		analyzer = noopAnalyzer{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	lexicon, err := config.LoadLexicon()
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	classifier, err := intent.NewModeClassifier(lexicon, cfg.MinScore, cfg.MinLength, logger)
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}

	resolver := intent.NewIntentResolver(extractor, intent.NewLocalCommandParser(), cfg.ResolveTimeout, logger)

	return &Service{
		classifier: classifier,
		resolver:   resolver,
		store:      store,
		analyzer:   analyzer,
		logger:     logger,
	}, nil
}

// Interpret runs one utterance through the pipeline.
//
// # Description
//
//	Commands route to the resolver and then to the store; everything else
//	is classified and handed to the entry analyzer. The classifier is
//	never invoked for an input the gate accepted. Store errors are the
//	only error this method returns — the pipeline itself cannot fail.
//
// # Inputs
//
//   - ctx: Context for cancellation; bounds the remote extraction attempt.
//   - text: The raw utterance.
//
// # Outputs
//
//   - InterpretResult: See the type doc for which fields each Kind sets.
//   - error: Non-nil only when a store operation fails.
//
// # Thread Safety
//
// Safe for concurrent use.
func (s *Service) Interpret(ctx context.Context, text string) (InterpretResult, error) {
	if !intent.IsCommand(text) {
		classification := s.classifier.Classify(text)
		s.analyzer.AnalyzeEntry(ctx, classification.Category, text)
		return InterpretResult{
			Kind:     OutcomeEntry,
			Category: classification.Category,
			Scores:   classification.Scores,
		}, nil
	}

	resolution := s.resolver.Resolve(ctx, text)
	degraded := resolution.Source == intent.SourceLocal

	switch resolution.Intent.Kind {
	case intent.ActionCreateTask:
		task, err := s.store.Create(ctx, resolution.Intent.Content, resolution.Intent.Priority, resolution.Intent.DueDate)
		if err != nil {
			return InterpretResult{}, err
		}
		return InterpretResult{
			Kind:     OutcomeTaskCreated,
			Task:     &task,
			Source:   resolution.Source,
			Degraded: degraded,
		}, nil

	case intent.ActionCompleteTask, intent.ActionDeleteTask:
		open, err := s.store.ListOpen(ctx)
		if err != nil {
			return InterpretResult{}, err
		}
		match := intent.MatchTask(resolution.Intent.Query, open)
		if match == nil {
			return InterpretResult{
				Kind:     OutcomeNoMatch,
				Query:    resolution.Intent.Query,
				Source:   resolution.Source,
				Degraded: degraded,
			}, nil
		}

		kind := OutcomeTaskCompleted
		if resolution.Intent.Kind == intent.ActionDeleteTask {
			kind = OutcomeTaskDeleted
			err = s.store.Delete(ctx, match.ID)
		} else {
			err = s.store.Complete(ctx, match.ID)
		}
		if err != nil {
			return InterpretResult{}, err
		}
		return InterpretResult{
			Kind:     kind,
			Task:     match,
			Query:    resolution.Intent.Query,
			Source:   resolution.Source,
			Degraded: degraded,
		}, nil

	default:
		s.logger.Info("command not understood",
			slog.String("source", string(resolution.Source)),
		)
		return InterpretResult{
			Kind:     OutcomeUnrecognized,
			Source:   resolution.Source,
			Degraded: degraded,
		}, nil
	}
}

// OpenTasks returns the open-task list, newest first.
func (s *Service) OpenTasks(ctx context.Context) ([]intent.Task, error) {
	return s.store.ListOpen(ctx)
}
