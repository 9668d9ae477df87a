package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestScheduler_StartStop(t *testing.T) {
	svc := NewScrapeService(scrapeTestConfig(), &fakeFetcher{}, nil, zap.NewNop())
	exporter := NewExporter(t.TempDir(), "steamrip_games_{run_id}.json", zap.NewNop())
	scheduler := NewScheduler(svc, exporter, "0 3 * * *", 0, zap.NewNop())

	require.NoError(t, scheduler.Start())
	assert.True(t, scheduler.IsRunning())

	// Double start is rejected
	assert.Error(t, scheduler.Start())

	scheduler.Stop()
	assert.False(t, scheduler.IsRunning())

	// Stop is idempotent
	scheduler.Stop()
}

func TestScheduler_InvalidCron(t *testing.T) {
	svc := NewScrapeService(scrapeTestConfig(), &fakeFetcher{}, nil, zap.NewNop())
	exporter := NewExporter(t.TempDir(), "steamrip_games_{run_id}.json", zap.NewNop())
	scheduler := NewScheduler(svc, exporter, "not a cron expression", 0, zap.NewNop())

	assert.Error(t, scheduler.Start())
	assert.False(t, scheduler.IsRunning())
}
