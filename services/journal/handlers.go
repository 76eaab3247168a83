// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package journal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MindloftHQ/mindloft/services/journal/intent"
)

// =============================================================================
// Wire Types
// =============================================================================

// InterpretRequest is the body of POST /v1/journal/interpret.
type InterpretRequest struct {
	Text string `json:"text" binding:"required"`
}

// InterpretResponse reports what the pipeline did with the utterance.
type InterpretResponse struct {
	Kind     string         `json:"kind"`
	Category string         `json:"category,omitempty"`
	Scores   map[string]int `json:"scores,omitempty"`
	Task     *TaskInfo      `json:"task,omitempty"`
	Query    string         `json:"query,omitempty"`
	Source   string         `json:"source,omitempty"`
	Degraded bool           `json:"degraded,omitempty"`
}

// TaskInfo is the wire form of a task.
type TaskInfo struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	DueDate  string `json:"due_date,omitempty"`
	Created  string `json:"created"`
}

// ListTasksResponse is the body of GET /v1/journal/tasks.
type ListTasksResponse struct {
	Tasks []TaskInfo `json:"tasks"`
	Count int        `json:"count"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func taskInfoFrom(t *intent.Task) *TaskInfo {
	if t == nil {
		return nil
	}
	return &TaskInfo{
		ID:       t.ID,
		Content:  t.Content,
		Status:   string(t.Status),
		Priority: string(t.Priority),
		DueDate:  t.DueDate,
		Created:  t.Created.Format(time.RFC3339),
	}
}

// getOrCreateRequestID returns the X-Request-ID header, minting one when the
// caller did not send it.
func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}

// =============================================================================
// Handlers
// =============================================================================

// Handlers holds the HTTP handlers for the journal service.
type Handlers struct {
	svc *Service
}

// NewHandlers creates the handlers instance.
func NewHandlers(svc *Service) *Handlers {
	return &Handlers{svc: svc}
}

// HandleInterpret handles POST /v1/journal/interpret.
//
// Description:
//
//	Routes one raw utterance through the pipeline and reports the outcome:
//	a classified entry, a task mutation, a no-match string, or an
//	unrecognized command.
//
// Response:
//
//	200 OK: InterpretResponse
//	400 Bad Request: Missing or empty text
//	500 Internal Server Error: Task store failure
//
// Thread Safety: This method is safe for concurrent use.
func (h *Handlers) HandleInterpret(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleInterpret")

	var req InterpretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "text is required",
			Code:  "MISSING_PARAMETER",
		})
		return
	}

	result, err := h.svc.Interpret(c.Request.Context(), req.Text)
	if err != nil {
		logger.Error("Interpret failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "task store unavailable",
			Code:  "STORE_ERROR",
		})
		return
	}

	resp := InterpretResponse{
		Kind:     string(result.Kind),
		Query:    result.Query,
		Source:   string(result.Source),
		Degraded: result.Degraded,
		Task:     taskInfoFrom(result.Task),
	}
	if result.Kind == OutcomeEntry {
		resp.Category = string(result.Category)
		resp.Scores = make(map[string]int, len(result.Scores))
		for category, score := range result.Scores {
			resp.Scores[string(category)] = score
		}
	}
	c.JSON(http.StatusOK, resp)
}

// HandleListTasks handles GET /v1/journal/tasks.
//
// Description:
//
//	Returns all open tasks, newest first.
//
// Response:
//
//	200 OK: ListTasksResponse
//	500 Internal Server Error: Task store failure
//
// Thread Safety: This method is safe for concurrent use.
func (h *Handlers) HandleListTasks(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleListTasks")

	open, err := h.svc.OpenTasks(c.Request.Context())
	if err != nil {
		logger.Error("ListOpen failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "task store unavailable",
			Code:  "STORE_ERROR",
		})
		return
	}

	resp := ListTasksResponse{
		Tasks: make([]TaskInfo, 0, len(open)),
		Count: len(open),
	}
	for i := range open {
		resp.Tasks = append(resp.Tasks, *taskInfoFrom(&open[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// HandleHealth handles GET /v1/journal/health. Liveness only.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleReady handles GET /v1/journal/ready.
//
// Description:
//
//	Readiness probe: verifies the task store answers a list call.
func (h *Handlers) HandleReady(c *gin.Context) {
	if _, err := h.svc.OpenTasks(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
