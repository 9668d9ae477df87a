// Package health implements the HTTP healthcheck server for the daemon.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"steamripper/internal/model"
	"steamripper/internal/worker"

	"go.uber.org/zap"
)

// Pinger checks a storage connection
type Pinger interface {
	Ping(ctx context.Context) error
}

// LastRunReporter reports the outcome of the most recent scrape
type LastRunReporter interface {
	LastRun() (time.Time, error)
}

// Server is the HTTP server for health checks
type Server struct {
	server     *http.Server
	logger     *zap.Logger
	port       int
	startTime  time.Time
	storage    Pinger
	workerPool worker.PoolInterface
	scheduler  LastRunReporter
}

var _ ServerInterface = (*Server)(nil)

// Status describes the system health
type Status struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Uptime     string            `json:"uptime"`
	Version    string            `json:"version"`
	Components map[string]string `json:"components,omitempty"`
}

// NewHealthServer creates a new health check server
func NewHealthServer(port int, logger *zap.Logger, storage Pinger, workerPool worker.PoolInterface, scheduler LastRunReporter) *Server {
	mux := http.NewServeMux()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	hs := &Server{
		server:     server,
		logger:     logger,
		port:       port,
		startTime:  time.Now(),
		storage:    storage,
		workerPool: workerPool,
		scheduler:  scheduler,
	}

	mux.HandleFunc("/health", hs.healthHandler)
	mux.HandleFunc("/ready", hs.readyHandler)

	return hs
}

// Start starts the health check server
func (hs *Server) Start() error {
	hs.logger.Info("Starting health check server", zap.Int("port", hs.port))
	return hs.server.ListenAndServe()
}

// Stop stops the health check server
func (hs *Server) Stop(ctx context.Context) error {
	hs.logger.Info("Stopping health check server")
	return hs.server.Shutdown(ctx)
}

func formatDuration(d time.Duration) string {
	seconds := int(d.Seconds())
	return fmt.Sprintf("%ds", seconds)
}

// healthHandler handles /health requests
func (hs *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	components := hs.checkComponents()

	status := Status{
		Status:     "healthy",
		Timestamp:  time.Now(),
		Uptime:     formatDuration(time.Since(hs.startTime)),
		Version:    model.ScraperVersion,
		Components: components,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(status); err != nil {
		hs.logger.Error("Failed to encode health status", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// readyHandler handles /ready requests
func (hs *Server) readyHandler(w http.ResponseWriter, _ *http.Request) {
	components := hs.checkComponents()

	overallStatus := "ready"
	for _, status := range components {
		if status != "healthy" {
			overallStatus = "unhealthy"
			break
		}
	}

	status := Status{
		Status:     overallStatus,
		Timestamp:  time.Now(),
		Uptime:     formatDuration(time.Since(hs.startTime)),
		Version:    model.ScraperVersion,
		Components: components,
	}

	w.Header().Set("Content-Type", "application/json")

	if overallStatus == "ready" {
		w.WriteHeader(http.StatusOK)
		hs.logger.Debug("Health check passed", zap.Any("components", components))
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
		hs.logger.Warn("Health check failed", zap.Any("components", components))
	}

	if err := json.NewEncoder(w).Encode(status); err != nil {
		hs.logger.Error("Failed to encode ready status", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// checkComponents checks the state of all registered components
func (hs *Server) checkComponents() map[string]string {
	components := make(map[string]string)

	if hs.storage != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := hs.storage.Ping(ctx); err != nil {
			components["storage"] = "unhealthy"
			hs.logger.Error("Storage check failed", zap.Error(err))
		} else {
			components["storage"] = "healthy"
		}
		cancel()
	}

	if hs.workerPool != nil {
		if hs.workerPool.GetProcessedJobs() >= 0 {
			components["worker_pool"] = "healthy"
		} else {
			components["worker_pool"] = "unhealthy"
		}
	}

	if hs.scheduler != nil {
		if _, err := hs.scheduler.LastRun(); err != nil {
			components["last_scrape"] = "unhealthy"
		} else {
			components["last_scrape"] = "healthy"
		}
	}

	return components
}
