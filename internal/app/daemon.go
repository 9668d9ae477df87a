package app

import (
	"context"
	"fmt"
	"net/http"

	"steamripper/internal/config"
	"steamripper/internal/infrastructure/health"
	"steamripper/internal/service"
	"steamripper/internal/storage"

	"go.uber.org/zap"
)

// Daemon is the long-running scrape service
type Daemon struct {
	config    *config.Config
	logger    *zap.Logger
	db        *storage.Postgres
	cleanup   func()
	scheduler *service.Scheduler
	health    *health.Server
}

// NewDaemon assembles the daemon from the component factory
func NewDaemon(cfg *config.Config, logger *zap.Logger) (*Daemon, error) {
	factory := NewComponentFactory(cfg, logger)

	db, err := factory.CreateDatabase()
	if err != nil {
		return nil, err
	}

	fetcher, cleanup := factory.CreateFetcher()

	scrapeService := factory.CreateScrapeService(fetcher, db.GetGameRepository())
	exporter := factory.CreateExporter()
	scheduler := factory.CreateScheduler(scrapeService, exporter)

	d := &Daemon{
		config:    cfg,
		logger:    logger,
		db:        db,
		cleanup:   cleanup,
		scheduler: scheduler,
	}

	if cfg.HealthCheckEnabled {
		d.health = health.NewHealthServer(cfg.HealthCheckPort, logger, db, nil, scheduler)
	}

	return d, nil
}

// Start runs the daemon until the context is cancelled
func (d *Daemon) Start(ctx context.Context) error {
	if d.health != nil {
		go func() {
			if err := d.health.Start(); err != nil && err != http.ErrServerClosed {
				d.logger.Error("Health check server failed", zap.Error(err))
			}
		}()
	}

	if err := d.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	d.logger.Info("Daemon started",
		zap.String("cron", d.config.ScrapeCron),
		zap.String("render_mode", d.config.RenderMode))

	<-ctx.Done()
	return d.Stop()
}

// Stop shuts the daemon down within the graceful shutdown timeout
func (d *Daemon) Stop() error {
	d.logger.Info("Shutting down daemon")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), d.config.GracefulShutdownTimeout)
	defer cancel()

	d.scheduler.Stop()

	if d.health != nil {
		if err := d.health.Stop(shutdownCtx); err != nil {
			d.logger.Error("Failed to stop health check server", zap.Error(err))
		}
	}

	d.cleanup()

	if err := d.db.Close(); err != nil {
		d.logger.Error("Failed to close database connection", zap.Error(err))
	}

	d.logger.Info("Daemon stopped")
	return nil
}
