// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package tasks

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/MindloftHQ/mindloft/services/journal/intent"
	badgerstore "github.com/MindloftHQ/mindloft/services/journal/storage/badger"
)

// tickingClock returns strictly increasing timestamps so creation-order
// assertions are deterministic.
func tickingClock() func() time.Time {
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

func newTestBadgerStore(t *testing.T) *BadgerStore {
	t.Helper()
	cfg := badgerstore.DefaultConfig()
	cfg.Path = t.TempDir()
	db, err := badgerstore.OpenDB(cfg)
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	store := NewBadgerStore(db, slog.Default())
	store.now = tickingClock()
	return store
}

func newTestMemoryStore(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	store.now = tickingClock()
	return store
}

func testStores(t *testing.T) map[string]Store {
	return map[string]Store{
		"badger": newTestBadgerStore(t),
		"memory": newTestMemoryStore(t),
	}
}

func TestStoreCreateAndList(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			created, err := store.Create(ctx, "buy milk", intent.PriorityHigh, "2025-03-11")
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if created.ID == "" {
				t.Error("Create() returned empty ID")
			}
			if created.Status != intent.StatusTodo {
				t.Errorf("Status = %v, want %v", created.Status, intent.StatusTodo)
			}

			open, err := store.ListOpen(ctx)
			if err != nil {
				t.Fatalf("ListOpen() error = %v", err)
			}
			if len(open) != 1 {
				t.Fatalf("ListOpen() returned %d tasks, want 1", len(open))
			}
			got := open[0]
			if got.Content != "buy milk" || got.Priority != intent.PriorityHigh || got.DueDate != "2025-03-11" {
				t.Errorf("ListOpen()[0] = %+v, want created task back", got)
			}
		})
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for _, content := range []string{"first", "second", "third"} {
				if _, err := store.Create(ctx, content, intent.PriorityMedium, ""); err != nil {
					t.Fatalf("Create(%q) error = %v", content, err)
				}
			}

			open, err := store.ListOpen(ctx)
			if err != nil {
				t.Fatalf("ListOpen() error = %v", err)
			}
			if len(open) != 3 {
				t.Fatalf("ListOpen() returned %d tasks, want 3", len(open))
			}
			want := []string{"third", "second", "first"}
			for i, task := range open {
				if task.Content != want[i] {
					t.Errorf("ListOpen()[%d].Content = %q, want %q", i, task.Content, want[i])
				}
			}
		})
	}
}

func TestStoreComplete(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			created, err := store.Create(ctx, "go for a run", intent.PriorityMedium, "")
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if err := store.Complete(ctx, created.ID); err != nil {
				t.Fatalf("Complete() error = %v", err)
			}

			open, err := store.ListOpen(ctx)
			if err != nil {
				t.Fatalf("ListOpen() error = %v", err)
			}
			if len(open) != 0 {
				t.Errorf("completed task still listed as open: %+v", open)
			}
		})
	}
}

func TestStoreDelete(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			created, err := store.Create(ctx, "cancel subscription", intent.PriorityLow, "")
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if err := store.Delete(ctx, created.ID); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}

			open, err := store.ListOpen(ctx)
			if err != nil {
				t.Fatalf("ListOpen() error = %v", err)
			}
			if len(open) != 0 {
				t.Errorf("deleted task still listed: %+v", open)
			}
		})
	}
}

func TestStoreNotFound(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := store.Complete(ctx, "no-such-id"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Complete(missing) error = %v, want ErrNotFound", err)
			}
			if err := store.Delete(ctx, "no-such-id"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestBadgerStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	cfg := badgerstore.DefaultConfig()
	cfg.Path = dir
	db, err := badgerstore.OpenDB(cfg)
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	store := NewBadgerStore(db, slog.Default())

	created, err := store.Create(context.Background(), "persisted task", intent.PriorityMedium, "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	db, err = badgerstore.OpenDB(cfg)
	if err != nil {
		t.Fatalf("reopen OpenDB() error = %v", err)
	}
	defer db.Close()
	store = NewBadgerStore(db, slog.Default())

	open, err := store.ListOpen(context.Background())
	if err != nil {
		t.Fatalf("ListOpen() error = %v", err)
	}
	if len(open) != 1 || open[0].ID != created.ID {
		t.Errorf("ListOpen() after reopen = %+v, want the persisted task", open)
	}
}

func TestStoreCancelledContext(t *testing.T) {
	store := newTestBadgerStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Create(ctx, "x", intent.PriorityMedium, ""); err == nil {
		t.Error("Create() with cancelled context succeeded, want error")
	}
	if _, err := store.ListOpen(ctx); err == nil {
		t.Error("ListOpen() with cancelled context succeeded, want error")
	}
}
