// Package worker implements the worker pool that processes game pages.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pool is a fixed-size worker pool with a bounded job queue
type Pool struct {
	workers  int
	jobQueue chan Job
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	logger   *zap.Logger
	metrics  *Metrics
	stopOnce sync.Once
	stopped  bool
	mu       sync.RWMutex
}

var _ PoolInterface = (*Pool)(nil)

// Job represents one game page to process
type Job struct {
	URL     string
	Handler func() error
}

// Metrics tracks pool throughput
type Metrics struct {
	mu             sync.RWMutex
	processedJobs  int64
	failedJobs     int64
	processingTime time.Duration
	queueSize      int
}

// ErrQueueFull is returned when the job queue cannot accept more work
var ErrQueueFull = errors.New("job queue is full")

// NewPool creates a new worker pool
func NewPool(workers, queueSize int, logger *zap.Logger) *Pool {
	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger,
		metrics:  &Metrics{},
	}
}

// Start launches the workers
func (wp *Pool) Start() {
	wp.logger.Debug("Starting worker pool", zap.Int("workers", wp.workers))

	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Stop drains the queue and stops the workers
func (wp *Pool) Stop() {
	wp.stopOnce.Do(func() {
		wp.mu.Lock()
		wp.stopped = true
		wp.mu.Unlock()
		close(wp.jobQueue)
	})

	wp.wg.Wait()
	wp.cancel()
	wp.logger.Debug("Worker pool stopped")
}

// Submit enqueues a job, blocking while the queue is full
func (wp *Pool) Submit(job Job) error {
	wp.mu.RLock()
	if wp.stopped {
		wp.mu.RUnlock()
		return ErrQueueFull
	}
	wp.mu.RUnlock()

	select {
	case wp.jobQueue <- job:
		wp.metrics.mu.Lock()
		wp.metrics.queueSize = len(wp.jobQueue)
		wp.metrics.mu.Unlock()
		return nil
	case <-wp.ctx.Done():
		return wp.ctx.Err()
	}
}

// worker is the main worker loop
func (wp *Pool) worker(id int) {
	defer wp.wg.Done()

	for {
		select {
		case job, ok := <-wp.jobQueue:
			if !ok {
				return
			}
			wp.processJob(job, id)
		case <-wp.ctx.Done():
			return
		}
	}
}

// processJob runs a single job and records its outcome
func (wp *Pool) processJob(job Job, workerID int) {
	startTime := time.Now()

	if err := job.Handler(); err != nil {
		wp.logger.Error("Job processing failed",
			zap.Int("worker_id", workerID),
			zap.String("url", job.URL),
			zap.Error(err))

		wp.metrics.mu.Lock()
		wp.metrics.failedJobs++
		wp.metrics.mu.Unlock()
		return
	}

	wp.metrics.mu.Lock()
	wp.metrics.processedJobs++
	wp.metrics.processingTime += time.Since(startTime)
	wp.metrics.mu.Unlock()

	wp.logger.Debug("Job processed",
		zap.Int("worker_id", workerID),
		zap.String("url", job.URL),
		zap.Duration("duration", time.Since(startTime)))
}

// GetProcessedJobs returns the number of successfully processed jobs
func (wp *Pool) GetProcessedJobs() int64 {
	wp.metrics.mu.RLock()
	defer wp.metrics.mu.RUnlock()
	return wp.metrics.processedJobs
}

// GetFailedJobs returns the number of failed jobs
func (wp *Pool) GetFailedJobs() int64 {
	wp.metrics.mu.RLock()
	defer wp.metrics.mu.RUnlock()
	return wp.metrics.failedJobs
}

// GetProcessingTime returns the cumulative processing time
func (wp *Pool) GetProcessingTime() time.Duration {
	wp.metrics.mu.RLock()
	defer wp.metrics.mu.RUnlock()
	return wp.metrics.processingTime
}

// GetQueueSize returns the current queue length
func (wp *Pool) GetQueueSize() int {
	wp.metrics.mu.RLock()
	defer wp.metrics.mu.RUnlock()
	return wp.metrics.queueSize
}
