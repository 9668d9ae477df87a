// Package app contains the application component factory.
package app

import (
	"fmt"

	"steamripper/internal/browser"
	"steamripper/internal/config"
	"steamripper/internal/model"
	"steamripper/internal/scraper"
	"steamripper/internal/service"
	"steamripper/internal/storage"

	"go.uber.org/zap"
)

// ComponentFactory creates the application components
type ComponentFactory struct {
	config *config.Config
	logger *zap.Logger
}

// NewComponentFactory creates a new component factory
func NewComponentFactory(config *config.Config, logger *zap.Logger) *ComponentFactory {
	if config == nil {
		logger.Fatal("Config cannot be nil")
	}
	if logger == nil {
		panic("Logger cannot be nil")
	}

	return &ComponentFactory{
		config: config,
		logger: logger,
	}
}

// CreateDatabase creates the database connection
func (f *ComponentFactory) CreateDatabase() (*storage.Postgres, error) {
	if f.config.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := storage.NewPostgres(f.config.DatabaseURL, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	f.logger.Info("Database connection created successfully")
	return db, nil
}

// CreateFetcher creates the page fetcher for the configured render mode.
// The returned cleanup releases browser processes and is a no-op in HTTP mode.
func (f *ComponentFactory) CreateFetcher() (scraper.Fetcher, func()) {
	scraperConfig := scraper.Config{
		BaseURL:            f.config.BaseURL,
		SiteRoot:           f.config.SiteRoot,
		UserAgent:          f.config.UserAgent,
		RequestDelay:       f.config.RequestDelay,
		RequestTimeout:     f.config.RequestTimeout,
		IncludeScreenshots: f.config.IncludeScreenshots,
		IncludeYouTube:     f.config.IncludeYouTube,
		HTTPClientConfig: scraper.HTTPClientConfig{
			MaxIdleConns:          f.config.HTTPClientConfig.MaxIdleConns,
			MaxIdleConnsPerHost:   f.config.HTTPClientConfig.MaxIdleConnsPerHost,
			IdleConnTimeout:       f.config.HTTPClientConfig.IdleConnTimeout,
			TLSHandshakeTimeout:   f.config.HTTPClientConfig.TLSHandshakeTimeout,
			ResponseHeaderTimeout: f.config.HTTPClientConfig.ResponseHeaderTimeout,
			DisableKeepAlives:     f.config.HTTPClientConfig.DisableKeepAlives,
		},
		RetryConfig: scraper.RetryConfig{
			MaxRetries:        f.config.RetryConfig.MaxRetries,
			InitialDelay:      f.config.RetryConfig.InitialDelay,
			MaxDelay:          f.config.RetryConfig.MaxDelay,
			BackoffMultiplier: f.config.RetryConfig.BackoffMultiplier,
		},
	}

	if f.config.RenderMode == config.RenderModeBrowser {
		fetcher, cleanup := browser.NewFetcher(scraperConfig, f.logger)
		f.logger.Info("Browser fetcher created successfully")
		return fetcher, cleanup
	}

	fetcher := scraper.NewFetcher(scraperConfig, f.logger)
	f.logger.Info("HTTP fetcher created successfully")
	return fetcher, func() {}
}

// CreateScrapeService creates the scrape pipeline service
func (f *ComponentFactory) CreateScrapeService(fetcher scraper.Fetcher, repo model.GameRepository) *service.ScrapeService {
	return service.NewScrapeService(f.config, fetcher, repo, f.logger)
}

// CreateExporter creates the artifact exporter
func (f *ComponentFactory) CreateExporter() *service.Exporter {
	return service.NewExporter(f.config.OutputDir, f.config.OutputFilename, f.logger)
}

// CreateScheduler creates the cron scheduler
func (f *ComponentFactory) CreateScheduler(scrapeService *service.ScrapeService, exporter *service.Exporter) *service.Scheduler {
	return service.NewScheduler(scrapeService, exporter, f.config.ScrapeCron, f.config.MaxGames, f.logger)
}
