// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package badger wraps BadgerDB behind small transaction helpers so stores
// do not repeat open/close and context plumbing.
package badger

import (
	"context"
	"fmt"
	"log/slog"

	dgbadger "github.com/dgraph-io/badger/v4"
)

// Config holds the options for opening a database.
type Config struct {
	// Path is the on-disk directory. Must not be empty.
	Path string

	// SyncWrites forces fsync on every commit. Task writes are small and
	// rare; durability wins over throughput here. Default: true.
	SyncWrites bool
}

// DefaultConfig returns sensible defaults.
//
// # Outputs
//
//   - Config: Default configuration with Path unset.
func DefaultConfig() Config {
	return Config{SyncWrites: true}
}

// DB is an open BadgerDB handle.
//
// # Thread Safety
//
// Safe for concurrent use; BadgerDB transactions provide isolation.
type DB struct {
	inner *dgbadger.DB
}

// OpenDB opens (creating if needed) the database at cfg.Path.
//
// # Inputs
//
//   - cfg: Open options. cfg.Path must not be empty.
//
// # Outputs
//
//   - *DB: The open handle.
//   - error: Non-nil if the path is empty or BadgerDB fails to open.
func OpenDB(cfg Config) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("badger: path must not be empty")
	}
	opts := dgbadger.DefaultOptions(cfg.Path).
		WithSyncWrites(cfg.SyncWrites).
		WithLogger(nil)
	inner, err := dgbadger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: opening %s: %w", cfg.Path, err)
	}
	slog.Info("BadgerDB opened", slog.String("path", cfg.Path))
	return &DB{inner: inner}, nil
}

// WithTxn runs fn inside a read-write transaction, committing on nil return.
//
// # Inputs
//
//   - ctx: Checked before starting; an already-cancelled context aborts.
//   - fn: Transaction body. A non-nil return discards the transaction.
//
// # Outputs
//
//   - error: fn's error, the commit error, or ctx.Err().
func (db *DB) WithTxn(ctx context.Context, fn func(txn *dgbadger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return db.inner.Update(fn)
}

// WithReadTxn runs fn inside a read-only transaction.
//
// # Inputs
//
//   - ctx: Checked before starting; an already-cancelled context aborts.
//   - fn: Transaction body.
//
// # Outputs
//
//   - error: fn's error or ctx.Err().
func (db *DB) WithReadTxn(ctx context.Context, fn func(txn *dgbadger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return db.inner.View(fn)
}

// Close releases the database. Safe to call once only.
func (db *DB) Close() error {
	return db.inner.Close()
}
