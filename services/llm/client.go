// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package llm provides the hosted language-model boundary for Mindloft.
// Clients use the provider REST APIs directly via net/http — no third-party
// SDKs — and are safe for concurrent use.
package llm

import "context"

// Message is a single conversation turn sent to a model.
type Message struct {
	// Role is "system", "user", or "assistant". Unknown roles are mapped
	// to "user" by the clients rather than rejected.
	Role string `json:"role"`

	// Content is the message text.
	Content string `json:"content"`
}

// GenerationParams holds per-request generation options.
//
// Description:
//
//	All fields are optional; nil pointer fields are omitted from the wire
//	request so the provider default applies.
type GenerationParams struct {
	// Temperature controls randomness. Nil uses the provider default.
	Temperature *float32

	// MaxTokens limits the response length. Nil uses the provider default.
	MaxTokens *int

	// TopP is the nucleus sampling parameter. Nil uses the provider default.
	TopP *float32

	// Stop lists sequences that terminate generation.
	Stop []string

	// ModelOverride selects a model for this request only. Empty uses the
	// model set at client construction.
	ModelOverride string
}

// LLMClient is the minimal chat interface the intent extractor needs.
//
// Description:
//
//	Intent extraction only requires simple chat (no tool calls, no
//	streaming), which keeps adapters trivial for any provider.
//
// Thread Safety: Implementations must be safe for concurrent use.
type LLMClient interface {
	// Generate sends a single prompt with a default system persona.
	//
	// Outputs:
	//   - string: The assistant's response text.
	//   - error: Non-nil on failure.
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)

	// Chat sends a full message history and returns the response text.
	//
	// Outputs:
	//   - string: The assistant's response text.
	//   - error: Non-nil on failure.
	Chat(ctx context.Context, messages []Message, params GenerationParams) (string, error)
}
