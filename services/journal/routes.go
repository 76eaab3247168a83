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
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all Journal routes with the router.
//
// Description:
//
//	Registers all /v1/journal/* endpoints with the given Gin router group.
//	The router group should already have any required middleware applied.
//
// Endpoints:
//
//	POST /v1/journal/interpret - Interpret one utterance
//	GET  /v1/journal/tasks - List open tasks
//
// Health Endpoints:
//
//	GET  /v1/journal/health - Health check
//	GET  /v1/journal/ready - Readiness check
//
// Inputs:
//
//	rg - Gin router group (typically /v1)
//	handlers - The handlers instance
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	journal := rg.Group("/journal")
	{
		journal.POST("/interpret", handlers.HandleInterpret)
		journal.GET("/tasks", handlers.HandleListTasks)

		journal.GET("/health", handlers.HandleHealth)
		journal.GET("/ready", handlers.HandleReady)
	}
}
