package worker

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"go.uber.org/zap"
)

func TestPool(t *testing.T) {
	logger := zap.NewNop()
	pool := NewPool(2, 10, logger)

	pool.Start()

	var results sync.Map
	var wg sync.WaitGroup

	for i := 0; i < 5; i++ {
		wg.Add(1)
		jobID := i

		job := Job{
			URL: fmt.Sprintf("https://steamrip.com/game-%d-free-download/", jobID),
			Handler: func() error {
				defer wg.Done()
				results.Store(jobID, true)
				return nil
			},
		}

		if err := pool.Submit(job); err != nil {
			t.Errorf("Failed to submit job %d: %v", jobID, err)
		}
	}

	wg.Wait()
	pool.Stop()

	for i := 0; i < 5; i++ {
		if _, ok := results.Load(i); !ok {
			t.Errorf("Job %d was not processed", i)
		}
	}

	if got := pool.GetProcessedJobs(); got != 5 {
		t.Errorf("Expected 5 processed jobs, got %d", got)
	}
	if got := pool.GetFailedJobs(); got != 0 {
		t.Errorf("Expected 0 failed jobs, got %d", got)
	}
}

func TestPoolWithErrors(t *testing.T) {
	logger := zap.NewNop()
	pool := NewPool(1, 5, logger)

	pool.Start()

	var wg sync.WaitGroup
	wg.Add(1)

	job := Job{
		URL: "https://steamrip.com/broken-free-download/",
		Handler: func() error {
			defer wg.Done()
			return errors.New("fetch failed")
		},
	}

	if err := pool.Submit(job); err != nil {
		t.Fatalf("Failed to submit job: %v", err)
	}

	wg.Wait()
	pool.Stop()

	if got := pool.GetFailedJobs(); got != 1 {
		t.Errorf("Expected 1 failed job, got %d", got)
	}
	if got := pool.GetProcessedJobs(); got != 0 {
		t.Errorf("Expected 0 processed jobs, got %d", got)
	}
}

func TestPool_SubmitAfterStop(t *testing.T) {
	pool := NewPool(1, 1, zap.NewNop())
	pool.Start()
	pool.Stop()

	err := pool.Submit(Job{URL: "https://steamrip.com/late-free-download/", Handler: func() error { return nil }})
	if err == nil {
		t.Error("Submit after Stop should fail")
	}
}

func TestPool_StopDrainsQueue(t *testing.T) {
	pool := NewPool(1, 10, zap.NewNop())
	pool.Start()

	var mu sync.Mutex
	processed := 0

	for i := 0; i < 8; i++ {
		job := Job{
			URL: fmt.Sprintf("https://steamrip.com/game-%d-free-download/", i),
			Handler: func() error {
				mu.Lock()
				processed++
				mu.Unlock()
				return nil
			},
		}
		if err := pool.Submit(job); err != nil {
			t.Fatalf("Failed to submit job %d: %v", i, err)
		}
	}

	pool.Stop()

	mu.Lock()
	defer mu.Unlock()
	if processed != 8 {
		t.Errorf("Expected all 8 jobs drained before Stop returned, got %d", processed)
	}
}
