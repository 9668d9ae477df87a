package worker

import "time"

// PoolInterface defines the worker pool contract
type PoolInterface interface {
	Start()
	Stop()
	Submit(job Job) error
	GetProcessedJobs() int64
	GetFailedJobs() int64
	GetProcessingTime() time.Duration
	GetQueueSize() int
}
