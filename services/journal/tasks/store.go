// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package tasks implements the task-store boundary the intent pipeline
// hands its decisions to. The pipeline itself never writes to storage;
// all mutation goes through a Store.
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	dgbadger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/MindloftHQ/mindloft/services/journal/intent"
	badgerstore "github.com/MindloftHQ/mindloft/services/journal/storage/badger"
)

// taskKeyPrefix namespaces task records in BadgerDB. Versioned (v1) to
// allow future format changes without collision.
const taskKeyPrefix = "tasks/v1/"

// ErrNotFound is returned when a task id does not exist.
var ErrNotFound = errors.New("task not found")

// =============================================================================
// Store Interface
// =============================================================================

// Store persists tasks and serves the open-task list the matcher reads.
//
// # Description
//
// ListOpen returns tasks with status != done, most-recently-created first.
// That ordering is part of the contract: the matcher resolves substring
// ties by taking the first candidate, so the store's ordering is what makes
// complete/delete deterministic.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use.
type Store interface {
	// Create persists a new task built from a create action and returns it.
	Create(ctx context.Context, content string, priority intent.Priority, dueDate string) (intent.Task, error)

	// ListOpen returns all tasks with status != done, newest first.
	ListOpen(ctx context.Context) ([]intent.Task, error)

	// Complete marks the task done. Returns ErrNotFound for unknown ids.
	Complete(ctx context.Context, id string) error

	// Delete removes the task. Returns ErrNotFound for unknown ids.
	Delete(ctx context.Context, id string) error
}

// =============================================================================
// BadgerStore
// =============================================================================

// BadgerStore is the durable Store backed by an embedded BadgerDB.
//
// # Thread Safety
//
// Safe for concurrent use (delegates isolation to BadgerDB transactions).
type BadgerStore struct {
	db     *badgerstore.DB
	logger *slog.Logger
	now    func() time.Time
}

// NewBadgerStore creates a store over an open database.
//
// # Inputs
//
//   - db: Open database handle. Must not be nil.
//   - logger: Logger instance. Nil uses slog.Default().
//
// # Outputs
//
//   - *BadgerStore: The constructed store. Never nil.
func NewBadgerStore(db *badgerstore.DB, logger *slog.Logger) *BadgerStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &BadgerStore{db: db, logger: logger, now: time.Now}
}

func taskKey(id string) []byte {
	return []byte(taskKeyPrefix + id)
}

// Create implements Store.Create.
func (s *BadgerStore) Create(ctx context.Context, content string, priority intent.Priority, dueDate string) (intent.Task, error) {
	task := intent.Task{
		ID:       uuid.NewString(),
		Content:  content,
		Status:   intent.StatusTodo,
		Priority: priority,
		DueDate:  dueDate,
		Created:  s.now().UTC(),
	}
	raw, err := json.Marshal(task)
	if err != nil {
		return intent.Task{}, fmt.Errorf("tasks: encoding task: %w", err)
	}
	err = s.db.WithTxn(ctx, func(txn *dgbadger.Txn) error {
		return txn.Set(taskKey(task.ID), raw)
	})
	if err != nil {
		return intent.Task{}, fmt.Errorf("tasks: storing task: %w", err)
	}
	s.logger.Info("task created",
		slog.String("task_id", task.ID),
		slog.String("priority", string(task.Priority)),
	)
	return task, nil
}

// ListOpen implements Store.ListOpen.
func (s *BadgerStore) ListOpen(ctx context.Context) ([]intent.Task, error) {
	var open []intent.Task
	err := s.db.WithReadTxn(ctx, func(txn *dgbadger.Txn) error {
		opts := dgbadger.DefaultIteratorOptions
		opts.Prefix = []byte(taskKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var task intent.Task
				if err := json.Unmarshal(val, &task); err != nil {
					// A single corrupt record must not take down the
					// listing; log and skip.
					s.logger.Warn("skipping undecodable task record",
						slog.String("key", string(it.Item().Key())),
						slog.String("error", err.Error()),
					)
					return nil
				}
				if task.Status != intent.StatusDone {
					open = append(open, task)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("tasks: listing open tasks: %w", err)
	}
	// Newest first: the matcher's documented tie-break ordering.
	sort.Slice(open, func(i, j int) bool {
		return open[i].Created.After(open[j].Created)
	})
	return open, nil
}

// Complete implements Store.Complete.
func (s *BadgerStore) Complete(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(task *intent.Task) {
		task.Status = intent.StatusDone
	})
}

// Delete implements Store.Delete.
func (s *BadgerStore) Delete(ctx context.Context, id string) error {
	err := s.db.WithTxn(ctx, func(txn *dgbadger.Txn) error {
		if _, err := txn.Get(taskKey(id)); errors.Is(err, dgbadger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(taskKey(id))
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("tasks: deleting task %s: %w", id, err)
	}
	return err
}

// mutate applies fn to a stored task inside one transaction.
func (s *BadgerStore) mutate(ctx context.Context, id string, fn func(*intent.Task)) error {
	err := s.db.WithTxn(ctx, func(txn *dgbadger.Txn) error {
		item, err := txn.Get(taskKey(id))
		if errors.Is(err, dgbadger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		var task intent.Task
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &task)
		}); err != nil {
			return err
		}
		fn(&task)
		raw, err := json.Marshal(task)
		if err != nil {
			return err
		}
		return txn.Set(taskKey(id), raw)
	})
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("tasks: updating task %s: %w", id, err)
	}
	return err
}

// =============================================================================
// MemoryStore
// =============================================================================

// MemoryStore is the in-memory Store used by tests and by deployments where
// the data directory is unavailable (the service degrades rather than
// refusing to start, matching the rest of the pipeline's offline posture).
//
// # Thread Safety
//
// Safe for concurrent use (internal mutex).
type MemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]intent.Task
	now   func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[string]intent.Task),
		now:   time.Now,
	}
}

// Create implements Store.Create.
func (s *MemoryStore) Create(_ context.Context, content string, priority intent.Priority, dueDate string) (intent.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := intent.Task{
		ID:       uuid.NewString(),
		Content:  content,
		Status:   intent.StatusTodo,
		Priority: priority,
		DueDate:  dueDate,
		Created:  s.now().UTC(),
	}
	s.tasks[task.ID] = task
	return task, nil
}

// ListOpen implements Store.ListOpen.
func (s *MemoryStore) ListOpen(_ context.Context) ([]intent.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	open := make([]intent.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if task.Status != intent.StatusDone {
			open = append(open, task)
		}
	}
	sort.Slice(open, func(i, j int) bool {
		return open[i].Created.After(open[j].Created)
	})
	return open, nil
}

// Complete implements Store.Complete.
func (s *MemoryStore) Complete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[id]
	if !ok {
		return ErrNotFound
	}
	task.Status = intent.StatusDone
	s.tasks[id] = task
	return nil
}

// Delete implements Store.Delete.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}
