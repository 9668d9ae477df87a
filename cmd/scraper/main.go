// Package main runs a one-shot scrape and writes the JSON artifact.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"steamripper/internal/app"
	"steamripper/internal/config"
	"steamripper/internal/model"
	"steamripper/internal/service"
	"steamripper/pkg/logger"

	"go.uber.org/zap"
)

const testModeMaxGames = 20

func main() {
	maxGames := flag.Int("max-games", -1, "maximum number of games to scrape (0 = unlimited)")
	output := flag.String("output", "", "output file path (default: OUTPUT_DIR/steamrip_games_<run_id>.json)")
	configFile := flag.String("config", "", "optional JSON config file")
	testMode := flag.Bool("test", false, "test mode, caps the run at 20 games")
	flag.Parse()

	log := logger.New()
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	if *configFile != "" {
		if err := cfg.LoadFromFile(*configFile); err != nil {
			log.Fatal("Failed to load config file", zap.String("path", *configFile), zap.Error(err))
		}
	}

	// Flags override the environment
	if *maxGames >= 0 {
		cfg.MaxGames = *maxGames
	}
	if *testMode && (cfg.MaxGames == 0 || cfg.MaxGames > testModeMaxGames) {
		cfg.MaxGames = testModeMaxGames
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

	factory := app.NewComponentFactory(cfg, log)

	var repo model.GameRepository
	if cfg.DatabaseURL != "" {
		db, err := factory.CreateDatabase()
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer func() { _ = db.Close() }()
		repo = db.GetGameRepository()
	}

	fetcher, cleanup := factory.CreateFetcher()
	defer cleanup()

	scrapeService := factory.CreateScrapeService(fetcher, repo)

	result, err := scrapeService.Run(ctx, cfg.MaxGames, *testMode)
	if err != nil {
		log.Error("Scrape failed", zap.Error(err))
		os.Exit(1)
	}

	exporter := factory.CreateExporter()
	path, err := exporter.Write(result, *output, service.ResolveRunID())
	if err != nil {
		log.Error("Failed to write artifact", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Scrape completed",
		zap.String("artifact", path),
		zap.Int("total_games", result.TotalGames),
		zap.Int("errors", result.Statistics.Errors),
		zap.Float64("elapsed_seconds", result.Statistics.ElapsedTimeSeconds),
		zap.Float64("games_per_minute", result.Statistics.GamesPerMinute))
}
