// Package main runs the scheduled scrape daemon.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"steamripper/internal/app"
	"steamripper/internal/config"
	"steamripper/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	log := logger.New()
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}
	log.Info("Configuration loaded", zap.Stringer("config", cfg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("Shutdown signal received")
		cancel()
	}()

	daemon, err := app.NewDaemon(cfg, log)
	if err != nil {
		log.Fatal("Failed to create daemon", zap.Error(err))
	}

	if err := daemon.Start(ctx); err != nil {
		log.Error("Daemon stopped with error", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Daemon stopped successfully")
}
