package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"steamripper/internal/config"
	"steamripper/internal/model"
	"steamripper/internal/scraper"
	"steamripper/internal/worker"

	"go.uber.org/zap"
)

// ScrapeService runs the full listing-to-games pipeline
type ScrapeService struct {
	config  *config.Config
	fetcher scraper.Fetcher
	repo    model.GameRepository
	logger  *zap.Logger
}

// NewScrapeService creates a new scrape service.
// repo may be nil when runs are not persisted.
func NewScrapeService(cfg *config.Config, fetcher scraper.Fetcher, repo model.GameRepository, logger *zap.Logger) *ScrapeService {
	return &ScrapeService{
		config:  cfg,
		fetcher: fetcher,
		repo:    repo,
		logger:  logger,
	}
}

// Run executes one scrape: warm-up, link discovery, concurrent page
// extraction and statistics. Games keep the listing-page order.
func (s *ScrapeService) Run(ctx context.Context, maxGames int, testMode bool) (*model.Result, error) {
	stats := newStatsCollector()

	s.fetcher.WarmUp(ctx)

	links, err := s.fetcher.FetchGameLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to discover game links: %w", err)
	}

	if maxGames > 0 && len(links) > maxGames {
		s.logger.Info("Limiting run to configured maximum",
			zap.Int("discovered", len(links)),
			zap.Int("max_games", maxGames))
		links = links[:maxGames]
	}

	games := s.processLinks(ctx, links, stats)

	if s.repo != nil && len(games) > 0 {
		if err := s.repo.UpsertAll(games); err != nil {
			s.logger.Error("Failed to persist games", zap.Error(err))
			stats.RecordError()
		}
	}

	result := &model.Result{
		Timestamp:      time.Now().Format(time.RFC3339),
		TotalGames:     len(games),
		ScraperVersion: model.ScraperVersion,
		TestMode:       testMode,
		Statistics:     stats.Snapshot(),
		Games:          games,
	}

	s.logger.Info("Scrape run finished",
		zap.Int("total_games", result.TotalGames),
		zap.Int("errors", result.Statistics.Errors),
		zap.Float64("elapsed_seconds", result.Statistics.ElapsedTimeSeconds))

	return result, nil
}

// processLinks fans game pages out over the worker pool and collects
// extracted games indexed by their listing position
func (s *ScrapeService) processLinks(ctx context.Context, links []string, stats *statsCollector) []model.Game {
	pool := worker.NewPool(s.config.MaxConcurrentRequests, len(links), s.logger)
	pool.Start()

	results := make([]*model.Game, len(links))
	var mu sync.Mutex

	for i, link := range links {
		i, link := i, link
		job := worker.Job{
			URL: link,
			Handler: func() error {
				game, err := s.fetcher.FetchGamePage(ctx, link)
				if err != nil {
					stats.RecordError()
					return err
				}
				if err := game.Validate(); err != nil {
					stats.RecordError()
					return fmt.Errorf("invalid game from %s: %w", link, err)
				}

				stats.RecordGame(game)
				mu.Lock()
				results[i] = game
				mu.Unlock()
				return nil
			},
		}
		if err := pool.Submit(job); err != nil {
			s.logger.Error("Failed to submit game page job", zap.String("url", link), zap.Error(err))
			stats.RecordError()
		}
	}

	pool.Stop()

	games := make([]model.Game, 0, len(links))
	for _, game := range results {
		if game != nil {
			games = append(games, *game)
		}
	}
	return games
}
