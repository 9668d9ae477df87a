package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs scrape jobs on a cron schedule
type Scheduler struct {
	scrapeService *ScrapeService
	exporter      *Exporter
	cronExpr      string
	maxGames      int
	cron          *cron.Cron
	logger        *zap.Logger
	mu            sync.RWMutex
	running       bool
	inFlight      bool
	lastRun       time.Time
	lastErr       error
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewScheduler creates a new scheduler
func NewScheduler(scrapeService *ScrapeService, exporter *Exporter, cronExpr string, maxGames int, logger *zap.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		scrapeService: scrapeService,
		exporter:      exporter,
		cronExpr:      cronExpr,
		maxGames:      maxGames,
		cron:          cron.New(cron.WithLocation(time.UTC)),
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Start registers the scrape job and starts the cron loop
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	if _, err := s.cron.AddFunc(s.cronExpr, s.runScrape); err != nil {
		return fmt.Errorf("failed to register scrape job: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("Scheduler started", zap.String("cron", s.cronExpr))
	return nil
}

// Stop stops the cron loop and cancels any in-flight run
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.logger.Info("Stopping scheduler")

	s.cancel()
	s.cron.Stop()
	s.running = false

	s.logger.Info("Scheduler stopped")
}

// IsRunning reports whether the scheduler is started
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// LastRun returns the time and outcome of the most recent scrape
func (s *Scheduler) LastRun() (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRun, s.lastErr
}

// runScrape executes a single scheduled scrape. Overlapping runs are skipped.
func (s *Scheduler) runScrape() {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		s.logger.Warn("Skipping scheduled scrape, previous run still in progress")
		return
	}
	s.inFlight = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	runID := NewRunID()
	s.logger.Info("Starting scheduled scrape", zap.String("run_id", runID))

	result, err := s.scrapeService.Run(s.ctx, s.maxGames, false)

	s.mu.Lock()
	s.lastRun = time.Now()
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Scheduled scrape failed", zap.String("run_id", runID), zap.Error(err))
		return
	}

	if _, err := s.exporter.Write(result, "", runID); err != nil {
		s.logger.Error("Failed to export scheduled scrape", zap.String("run_id", runID), zap.Error(err))
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
	}
}
