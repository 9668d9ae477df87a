// Package service orchestrates scrape runs, artifact export and scheduling.
package service

import (
	"math"
	"sync"
	"time"

	"steamripper/internal/model"
)

// statsCollector aggregates per-run statistics across workers
type statsCollector struct {
	mu    sync.Mutex
	stats model.Statistics
	start time.Time
}

func newStatsCollector() *statsCollector {
	return &statsCollector{start: time.Now()}
}

// RecordGame updates the counters for one successfully extracted game
func (s *statsCollector) RecordGame(game *model.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.GamesProcessed++
	if game.CoverImage != "" {
		s.stats.GamesWithCover++
	}
	if len(game.Screenshots) > 0 {
		s.stats.GamesWithScreenshots++
	}
	if game.HasDownloads() {
		s.stats.GamesWithDownloads++
	}
	if game.YouTubeGameplay != "" {
		s.stats.GamesWithYouTube++
	}
	if !game.AdditionalInfo.IsEmpty() {
		s.stats.GamesWithAdditionalInfo++
	}
}

// RecordError counts a failed game page
func (s *statsCollector) RecordError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Errors++
}

// Snapshot finalizes the statistics with elapsed time and throughput
func (s *statsCollector) Snapshot() model.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	elapsed := time.Since(s.start).Seconds()
	stats := s.stats
	stats.ElapsedTimeSeconds = round2(elapsed)
	if elapsed > 0 {
		stats.GamesPerMinute = round2(float64(stats.GamesProcessed) / (elapsed / 60))
	}
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
