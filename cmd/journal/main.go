// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command journal starts the Mindloft journal API server.
//
// Mindloft interprets free-form journal entries:
//   - Commands become tasks (create, complete, delete)
//   - Everything else is classified into a journaling mode
//   - Works fully offline; an OpenAI-compatible endpoint is optional
//
// Usage:
//
//	go run ./cmd/journal
//	go run ./cmd/journal -port 9090
//
// With remote intent extraction:
//
//	OPENAI_API_KEY=sk-... go run ./cmd/journal
//	OPENAI_BASE_URL=http://localhost:11434/v1 OPENAI_MODEL=llama3 go run ./cmd/journal
//
// Example requests:
//
//	# Health check
//	curl http://localhost:8080/v1/journal/health
//
//	# Interpret an utterance
//	curl -X POST http://localhost:8080/v1/journal/interpret \
//	  -H "Content-Type: application/json" \
//	  -d '{"text": "add task buy groceries tomorrow"}'
//
//	# List open tasks
//	curl http://localhost:8080/v1/journal/tasks | jq
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"golang.org/x/sync/errgroup"

	"github.com/MindloftHQ/mindloft/services/journal"
	"github.com/MindloftHQ/mindloft/services/journal/config"
	"github.com/MindloftHQ/mindloft/services/journal/intent"
	badgerstore "github.com/MindloftHQ/mindloft/services/journal/storage/badger"
	"github.com/MindloftHQ/mindloft/services/journal/tasks"
	"github.com/MindloftHQ/mindloft/services/llm"
)

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	debug := flag.Bool("debug", false, "Enable debug mode")
	flag.Parse()

	if *debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// W3C TraceContext propagator so trace context flows from incoming
	// HTTP headers through the handlers and the resolver spans.
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	cfg := config.DefaultServiceConfig().FromEnv()

	// Task store: BadgerDB when a data directory is available, with
	// graceful degradation to in-memory-only mode when it is not.
	var store tasks.Store
	var taskDB *badgerstore.DB
	dataDir := cfg.DataDir
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			dataDir = filepath.Join(home, ".mindloft", "journal")
		}
	}
	if dataDir != "" {
		dbCfg := badgerstore.DefaultConfig()
		dbCfg.Path = dataDir
		db, err := badgerstore.OpenDB(dbCfg)
		if err != nil {
			slog.Warn("Task BadgerDB unavailable, tasks will not persist",
				slog.String("path", dataDir),
				slog.String("error", err.Error()),
			)
		} else {
			taskDB = db
			store = tasks.NewBadgerStore(db, slog.Default())
			slog.Info("Task BadgerDB opened", slog.String("path", dataDir))
		}
	}
	if store == nil {
		store = tasks.NewMemoryStore()
	}

	// Remote extractor: optional. Without OPENAI_API_KEY the resolver
	// runs in offline mode and every command goes to the local parser.
	var extractor intent.RemoteIntentExtractor
	if os.Getenv("OPENAI_API_KEY") != "" || os.Getenv("OPENAI_BASE_URL") != "" {
		client, err := llm.NewOpenAIClient()
		if err != nil {
			slog.Warn("Remote extractor unavailable, running offline", slog.String("error", err.Error()))
		} else {
			extractor, err = intent.NewLLMIntentExtractor(client, intent.DefaultExtractorConfig())
			if err != nil {
				slog.Warn("Remote extractor unavailable, running offline", slog.String("error", err.Error()))
			}
		}
	}

	svc, err := journal.NewService(cfg, extractor, store, nil, slog.Default())
	if err != nil {
		slog.Error("Failed to build journal service", slog.String("error", err.Error()))
		os.Exit(1)
	}
	handlers := journal.NewHandlers(svc)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("mindloft-journal"))
	if *debug {
		router.Use(gin.Logger())
	}

	v1 := router.Group("/v1")
	journal.RegisterRoutes(v1, handlers)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	printBanner(*port, extractor != nil, taskDB != nil)

	addr := fmt.Sprintf(":%d", *port)
	srv := &http.Server{Addr: addr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Starting Mindloft journal server", slog.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down Mindloft journal server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Server shutdown was not clean", slog.String("error", err.Error()))
		}
		if taskDB != nil {
			if err := taskDB.Close(); err != nil {
				slog.Warn("Failed to close task BadgerDB", slog.String("error", err.Error()))
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func printBanner(port int, remoteEnabled, persistEnabled bool) {
	remoteStatus := "DISABLED (set OPENAI_API_KEY to enable)"
	if remoteEnabled {
		remoteStatus = "ENABLED"
	}
	persistStatus := "in-memory only"
	if persistEnabled {
		persistStatus = "BadgerDB"
	}

	banner := `
╔═══════════════════════════════════════════════════════════════════╗
║                      MINDLOFT JOURNAL SERVER                      ║
╠═══════════════════════════════════════════════════════════════════╣
║                                                                   ║
║  Journal entries in, classified modes and tasks out.              ║
║  Remote extraction: %-45s ║
║  Task persistence:  %-45s ║
║                                                                   ║
║  Quick Start:                                                     ║
║  ┌─────────────────────────────────────────────────────────────┐  ║
║  │ # Health check                                              │  ║
║  │ curl http://localhost:%d/v1/journal/health            │  ║
║  │                                                             │  ║
║  │ # Interpret an utterance                                    │  ║
║  │ curl -X POST http://localhost:%d/v1/journal/interpret \  ║
║  │   -H "Content-Type: application/json" \                     │  ║
║  │   -d '{"text": "add task buy groceries tomorrow"}'          │  ║
║  │                                                             │  ║
║  │ # List open tasks                                           │  ║
║  │ curl http://localhost:%d/v1/journal/tasks | jq        │  ║
║  └─────────────────────────────────────────────────────────────┘  ║
║                                                                   ║
║  Press Ctrl+C to stop                                             ║
╚═══════════════════════════════════════════════════════════════════╝
`
	fmt.Printf(banner, remoteStatus, persistStatus, port, port, port)
}
