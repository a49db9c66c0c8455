package main

import (
	"context"
	"log"
	"realtime-bridge/internal/bootstrap"
	"realtime-bridge/internal/config"
	"realtime-bridge/internal/observability"
	"realtime-bridge/internal/server"
)

func main() {
	logger := observability.NewLogger()
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %s", err)
	}

	deps, err := bootstrap.Initialize(ctx, cfg, logger)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize dependencies", err)
	}

	srv := server.New(cfg, deps, logger)
	srv.Setup()

	if err := srv.Start(ctx); err != nil {
		logger.Fatal(ctx, "failed to start server", err)
	}

	if err := srv.WaitForShutdown(ctx); err != nil {
		logger.Error(ctx, "shutdown failed", err)
	}
}
