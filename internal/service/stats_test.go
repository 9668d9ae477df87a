package service

import (
	"testing"

	"steamripper/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestStatsCollector(t *testing.T) {
	stats := newStatsCollector()

	stats.RecordGame(&model.Game{
		CoverImage:      "https://steamrip.com/cover.jpg",
		Screenshots:     []string{"https://steamrip.com/shot.jpg"},
		DownloadLinks:   map[string]string{"gofile": "https://gofile.io/d/abc"},
		YouTubeGameplay: "https://www.youtube.com/results?search_query=x+gameplay",
		AdditionalInfo:  model.AdditionalInfo{Genre: "Action"},
	})
	stats.RecordGame(&model.Game{})
	stats.RecordError()

	snapshot := stats.Snapshot()

	assert.Equal(t, 2, snapshot.GamesProcessed)
	assert.Equal(t, 1, snapshot.GamesWithCover)
	assert.Equal(t, 1, snapshot.GamesWithScreenshots)
	assert.Equal(t, 1, snapshot.GamesWithDownloads)
	assert.Equal(t, 1, snapshot.GamesWithYouTube)
	assert.Equal(t, 1, snapshot.GamesWithAdditionalInfo)
	assert.Equal(t, 1, snapshot.Errors)
	assert.GreaterOrEqual(t, snapshot.ElapsedTimeSeconds, 0.0)
}

func TestStatsCollector_Throughput(t *testing.T) {
	stats := newStatsCollector()
	stats.RecordGame(&model.Game{})

	snapshot := stats.Snapshot()
	if snapshot.ElapsedTimeSeconds > 0 {
		assert.Greater(t, snapshot.GamesPerMinute, 0.0)
	}
}
