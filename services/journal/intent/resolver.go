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
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// =============================================================================
// IntentResolver
// =============================================================================

// defaultResolveTimeout bounds the remote extraction attempt when the
// resolver is constructed with a non-positive timeout.
const defaultResolveTimeout = 15 * time.Second

// Resolution is the outcome of resolving one command.
type Resolution struct {
	// Intent is the normalized action. Always a valid member of the closed
	// set; never carries an empty create content.
	Intent ActionIntent

	// Source records which branch produced the intent. SourceLocal implies
	// the remote attempt failed, timed out, or was not configured — the
	// caller may surface it as a "working offline" notice.
	Source IntentSource
}

// IntentResolver orchestrates the remote extractor with a bounded timeout,
// falling back to the local parser on any failure.
//
// # Description
//
//	Exactly one of {remote success, local fallback} executes per call,
//	never both. The remote attempt is raced against the timeout; whichever
//	settles first wins and the loser is abandoned — a late remote result
//	lands in a buffered channel nobody reads and can never override the
//	already-returned local fallback. Local fallback is only attempted
//	after the remote attempt has definitively failed or timed out, never
//	speculatively in parallel.
//
//	There is no retry beyond the single fallback: one remote attempt, one
//	local parse, terminal.
//
// # Inputs
//
//	extractor - The remote boundary. Nil disables remote entirely (every
//	            call resolves locally).
//	parser    - The offline parser. Must not be nil.
//	timeout   - Hard upper bound on the remote attempt. Non-positive uses
//	            the 15s default.
//	logger    - Logger instance. Nil uses slog.Default().
//
// # Thread Safety
//
// Safe for concurrent use; the resolver holds no per-call state.
type IntentResolver struct {
	extractor RemoteIntentExtractor
	parser    *LocalCommandParser
	timeout   time.Duration
	logger    *slog.Logger
}

// NewIntentResolver creates a resolver. See the type doc for parameter rules.
func NewIntentResolver(extractor RemoteIntentExtractor, parser *LocalCommandParser, timeout time.Duration, logger *slog.Logger) *IntentResolver {
	if logger == nil {
		logger = slog.Default()
	}
	if parser == nil {
		parser = NewLocalCommandParser()
	}
	if timeout <= 0 {
		timeout = defaultResolveTimeout
	}
	return &IntentResolver{
		extractor: extractor,
		parser:    parser,
		timeout:   timeout,
		logger:    logger,
	}
}

// remoteOutcome carries the extractor result across the race boundary.
type remoteOutcome struct {
	payload RemotePayload
	err     error
}

// Resolve turns a command string into a normalized action.
//
// # Description
//
//  1. If a remote extractor is configured, call it with the timeout.
//  2. On success, normalize the untrusted payload into the canonical
//     ActionIntent shape and return it with SourceRemote.
//  3. On any failure — transport error, non-success response, malformed
//     JSON, timeout, or caller cancellation — log the failure and parse
//     locally instead. The caller never sees the remote error.
//
// # Inputs
//
//   - ctx: Context for cancellation. A cancelled context aborts the pending
//     remote attempt and proceeds straight to the local fallback.
//   - text: The raw command text.
//
// # Outputs
//
//   - Resolution: A valid action plus its provenance. Never an error:
//     every failure path degrades to the local parser, which cannot fail.
//
// # Thread Safety
//
// Safe for concurrent use.
func (r *IntentResolver) Resolve(ctx context.Context, text string) Resolution {
	ctx, span := tracer.Start(ctx, "intent.IntentResolver.Resolve",
		trace.WithAttributes(
			attribute.String("text_preview", truncateForLog(text, 80)),
			attribute.Bool("remote_configured", r.extractor != nil),
		),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		resolveLatency.Observe(time.Since(start).Seconds())
	}()

	if r.extractor == nil {
		resolveTotal.WithLabelValues("fallback_disabled").Inc()
		span.SetAttributes(attribute.String("source", string(SourceLocal)))
		return Resolution{Intent: r.parser.Parse(text), Source: SourceLocal}
	}

	// Race the remote attempt against the timeout. The channel is buffered
	// so a losing goroutine's late send never blocks and is simply dropped.
	remoteCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resCh := make(chan remoteOutcome, 1)
	go func() {
		payload, err := r.extractor.Extract(remoteCtx, text)
		resCh <- remoteOutcome{payload: payload, err: err}
	}()

	select {
	case res := <-resCh:
		if res.err != nil {
			r.logger.Warn("remote intent extraction failed, using local parser",
				slog.String("error", res.err.Error()),
				slog.Duration("elapsed", time.Since(start)),
			)
			resolveTotal.WithLabelValues("fallback_error").Inc()
			span.SetAttributes(attribute.String("source", string(SourceLocal)))
			return Resolution{Intent: r.parser.Parse(text), Source: SourceLocal}
		}

		action := r.normalizeRemote(res.payload, text)
		resolveTotal.WithLabelValues("remote_success").Inc()
		span.SetAttributes(
			attribute.String("source", string(SourceRemote)),
			attribute.String("action", string(action.Kind)),
		)
		return Resolution{Intent: action, Source: SourceRemote}

	case <-remoteCtx.Done():
		// Timeout or caller cancellation. The remote call may still finish
		// in the background; its result is discarded, never applied.
		r.logger.Warn("remote intent extraction timed out, using local parser",
			slog.Duration("timeout", r.timeout),
		)
		resolveTotal.WithLabelValues("fallback_timeout").Inc()
		span.SetAttributes(attribute.String("source", string(SourceLocal)))
		return Resolution{Intent: r.parser.Parse(text), Source: SourceLocal}
	}
}

// =============================================================================
// Remote Payload Normalization
// =============================================================================

// normalizeRemote collapses whatever the remote model returned into the
// canonical ActionIntent shape. The payload is untrusted: field names and
// casing vary by upstream model, labels outside the closed action set map
// to Unrecognized, and every field is validated rather than assumed.
func (r *IntentResolver) normalizeRemote(payload RemotePayload, original string) ActionIntent {
	action := strings.ToLower(strings.TrimSpace(payloadString(payload, "action", "intent", "type")))

	data, ok := payload["data"].(map[string]any)
	if !ok {
		// Some models flatten the data object into the top level.
		data = payload
	}

	switch action {
	case "create", "add", "new", "create_task":
		content := strings.TrimSpace(payloadString(data, "content", "task", "title", "text"))
		if content == "" {
			// Same invariant as the local parser: create never carries
			// empty content.
			content = FallbackTaskContent
		}
		return ActionIntent{
			Kind:     ActionCreateTask,
			Content:  content,
			Priority: NormalizePriority(strings.ToLower(strings.TrimSpace(payloadString(data, "priority")))),
			DueDate:  normalizeDueDate(payloadString(data, "due_date", "dueDate", "due")),
		}

	case "complete", "done", "finish", "complete_task":
		query := strings.TrimSpace(payloadString(data, "query", "task", "content"))
		if query == "" {
			return ActionIntent{Kind: ActionUnrecognized}
		}
		return ActionIntent{Kind: ActionCompleteTask, Query: query}

	case "delete", "remove", "cancel", "delete_task":
		query := strings.TrimSpace(payloadString(data, "query", "task", "content"))
		if query == "" {
			return ActionIntent{Kind: ActionUnrecognized}
		}
		return ActionIntent{Kind: ActionDeleteTask, Query: query}

	default:
		r.logger.Info("remote extractor returned unknown action label",
			slog.String("action", action),
			slog.String("text_preview", truncateForLog(original, 80)),
		)
		return ActionIntent{Kind: ActionUnrecognized}
	}
}

// payloadString fishes the first present string value out of an untrusted
// map, trying exact keys first and then a case-insensitive scan.
func payloadString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := m[key].(string); ok {
			return v
		}
	}
	for _, key := range keys {
		for k, v := range m {
			if strings.EqualFold(k, key) {
				if s, ok := v.(string); ok {
					return s
				}
			}
		}
	}
	return ""
}

// dueDateLayouts are the formats accepted from the remote extractor. The
// first two match what the local parser produces.
var dueDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	time.RFC3339,
}

// normalizeDueDate validates a remote due-date string. Unparsable values
// become empty (no due date) rather than an error.
func normalizeDueDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "null") || strings.EqualFold(raw, "none") {
		return ""
	}
	for _, layout := range dueDateLayouts {
		if _, err := time.Parse(layout, raw); err == nil {
			return raw
		}
	}
	return ""
}
