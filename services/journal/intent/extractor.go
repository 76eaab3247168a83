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
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/MindloftHQ/mindloft/services/llm"
)

// =============================================================================
// RemoteIntentExtractor Boundary
// =============================================================================

// RemotePayload is the untrusted, JSON-like structure a remote model returns.
// Field names, casing, and nesting are whatever the upstream model produced;
// only the resolver's normalization step may interpret it, and the payload
// never leaks past the resolver boundary.
type RemotePayload map[string]any

// RemoteIntentExtractor delegates command understanding to a hosted language
// model. It may fail or time out; the resolver treats every failure mode
// identically and falls back to the local parser.
//
// Thread Safety: Implementations must be safe for concurrent use.
type RemoteIntentExtractor interface {
	// Extract asks the model to turn a command string into a structured
	// action payload.
	//
	// Outputs:
	//   - RemotePayload: The decoded JSON object. Never nil on success.
	//   - error: Non-nil on transport failure, non-success response, or a
	//     response with no parsable JSON object.
	Extract(ctx context.Context, text string) (RemotePayload, error)
}

// =============================================================================
// LLMIntentExtractor
// =============================================================================

// ExtractorConfig configures the LLM-backed intent extractor.
type ExtractorConfig struct {
	// Temperature for the extraction call. Low keeps output deterministic.
	// Default: 0.1.
	Temperature float32 `json:"temperature"`

	// MaxTokens limits the response length. The payload is tiny; 256 is
	// plenty. Default: 256.
	MaxTokens int `json:"max_tokens"`

	// Model overrides the client's default model for extraction calls.
	// Empty uses the client default.
	Model string `json:"model"`
}

// DefaultExtractorConfig returns sensible defaults.
//
// # Outputs
//
//   - ExtractorConfig: Default configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Temperature: 0.1,
		MaxTokens:   256,
	}
}

// LLMIntentExtractor implements RemoteIntentExtractor over a chat client.
//
// # Description
//
// Sends the command text with a fixed system prompt demanding a bare JSON
// object, then scrubs the response (markdown fences, prose around the
// braces) before decoding. Small models frequently wrap JSON in
// commentary; the scrubbing mirrors what they actually emit.
//
// # Thread Safety
//
// Safe for concurrent use.
type LLMIntentExtractor struct {
	client llm.LLMClient
	config ExtractorConfig
	logger *slog.Logger
}

// NewLLMIntentExtractor creates an extractor over the given chat client.
//
// # Inputs
//
//   - client: Chat client for extraction calls. Must not be nil.
//   - config: Extractor configuration.
//
// # Outputs
//
//   - *LLMIntentExtractor: Configured extractor.
//   - error: Non-nil if client is nil.
func NewLLMIntentExtractor(client llm.LLMClient, config ExtractorConfig) (*LLMIntentExtractor, error) {
	if client == nil {
		return nil, fmt.Errorf("extractor: client must not be nil")
	}
	return &LLMIntentExtractor{
		client: client,
		config: config,
		logger: slog.Default(),
	}, nil
}

// extractorSystemPrompt is the fixed instruction for intent extraction.
// The closed action set here must stay in sync with normalizeRemote.
const extractorSystemPrompt = `You are an intent extraction assistant for a journaling app.

Given a user's task command, respond with ONLY a JSON object of this shape:

{"action": "create", "data": {"content": "...", "priority": "low|medium|high", "due_date": "YYYY-MM-DD or null"}}
{"action": "complete", "data": {"query": "..."}}
{"action": "delete", "data": {"query": "..."}}

Rules:
- "action" is exactly one of: create, complete, delete.
- For create: "content" is the task text with command words, priority words,
  and date words removed. "priority" defaults to "medium".
- For complete/delete: "query" is the short phrase identifying which task.
- Do not include any explanation or markdown formatting.`

// Extract implements RemoteIntentExtractor.
//
// # Inputs
//
//   - ctx: Context for cancellation/timeout. The resolver owns the deadline.
//   - text: The user's command text.
//
// # Outputs
//
//   - RemotePayload: The decoded object from the model.
//   - error: Non-nil if the chat call or JSON decoding fails.
//
// # Thread Safety
//
// Safe for concurrent use.
func (e *LLMIntentExtractor) Extract(ctx context.Context, text string) (RemotePayload, error) {
	ctx, span := tracer.Start(ctx, "intent.LLMIntentExtractor.Extract")
	defer span.End()
	span.SetAttributes(
		attribute.String("extractor.model", e.config.Model),
		attribute.String("text_preview", truncateForLog(text, 80)),
	)

	messages := []llm.Message{
		{Role: "system", Content: extractorSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Command: %s", text)},
	}

	temp := e.config.Temperature
	maxTokens := e.config.MaxTokens
	params := llm.GenerationParams{
		Temperature:   &temp,
		MaxTokens:     &maxTokens,
		ModelOverride: e.config.Model,
	}

	response, err := e.client.Chat(ctx, messages, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "chat failed")
		return nil, fmt.Errorf("intent extraction chat failed: %w", err)
	}

	payload, err := parseExtractionResponse(response)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse failed")
		return nil, fmt.Errorf("intent extraction parse failed: %w", err)
	}

	return payload, nil
}

// parseExtractionResponse extracts the JSON object from an LLM response.
func parseExtractionResponse(response string) (RemotePayload, error) {
	response = strings.TrimSpace(response)
	if len(response) == 0 {
		return nil, fmt.Errorf("empty response from model")
	}

	// Clean up markdown code blocks
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	// Find JSON in response
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")
	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return nil, fmt.Errorf("no JSON object found in response: %s", truncateForLog(response, 100))
	}

	jsonStr := response[startIdx : endIdx+1]

	var result RemotePayload
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w, response: %s", err, truncateForLog(jsonStr, 100))
	}

	return result, nil
}
