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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

// tracer is the shared OTel tracer for the intent pipeline.
var tracer = otel.Tracer("mindloft.journal.intent")

// Package-level Prometheus metrics for the intent pipeline.
// Auto-registered via promauto so no explicit registry wiring is needed.
var (
	// resolveTotal counts resolver calls by outcome:
	// remote_success, fallback_timeout, fallback_error, fallback_disabled.
	resolveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mindloft",
		Subsystem: "intent",
		Name:      "resolve_total",
		Help:      "Intent resolution outcomes: remote_success, fallback_timeout, fallback_error, fallback_disabled",
	}, []string{"outcome"})

	// resolveLatency measures end-to-end resolve duration, both branches.
	resolveLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mindloft",
		Subsystem: "intent",
		Name:      "resolve_latency_seconds",
		Help:      "Latency of intent resolution including fallback",
		Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.0, 5.0, 15.0, 30.0},
	})

	// classifyTotal counts classification results by final category.
	classifyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mindloft",
		Subsystem: "intent",
		Name:      "classify_total",
		Help:      "Entry classifications by winning category",
	}, []string{"category"})

	// gateTotal counts command-gate decisions.
	gateTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mindloft",
		Subsystem: "intent",
		Name:      "gate_total",
		Help:      "Command gate decisions: command or entry",
	}, []string{"decision"})
)

// truncateForLog shortens a string for span attributes and log lines.
// Journal text is user content; previews keep cardinality and PII exposure down.
func truncateForLog(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
