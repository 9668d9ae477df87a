package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"steamripper/internal/config"
	"steamripper/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFetcher struct {
	links    []string
	linksErr error
	failURLs map[string]bool
}

func (f *fakeFetcher) WarmUp(context.Context) {}

func (f *fakeFetcher) FetchGameLinks(context.Context) ([]string, error) {
	if f.linksErr != nil {
		return nil, f.linksErr
	}
	return f.links, nil
}

func (f *fakeFetcher) FetchGamePage(_ context.Context, url string) (*model.Game, error) {
	if f.failURLs[url] {
		return nil, errors.New("fetch failed")
	}
	return &model.Game{
		ID:         fmt.Sprintf("%016x", len(url)),
		Name:       "Game " + url,
		ScrapedURL: url,
		ScrapedAt:  time.Now(),
	}, nil
}

func scrapeTestConfig() *config.Config {
	return &config.Config{
		BaseURL:               "https://steamrip.com/games-list-page/",
		MaxConcurrentRequests: 2,
	}
}

func gameLinks(n int) []string {
	links := make([]string, n)
	for i := range links {
		links[i] = fmt.Sprintf("https://steamrip.com/game-%d-free-download/", i)
	}
	return links
}

func TestScrapeService_Run(t *testing.T) {
	fetcher := &fakeFetcher{links: gameLinks(5)}
	svc := NewScrapeService(scrapeTestConfig(), fetcher, nil, zap.NewNop())

	result, err := svc.Run(context.Background(), 0, false)
	require.NoError(t, err)

	assert.Equal(t, 5, result.TotalGames)
	assert.Equal(t, model.ScraperVersion, result.ScraperVersion)
	assert.False(t, result.TestMode)
	assert.Equal(t, 5, result.Statistics.GamesProcessed)
	assert.Equal(t, 0, result.Statistics.Errors)

	// Games keep the listing order despite concurrent fetching
	for i, game := range result.Games {
		assert.Equal(t, fetcher.links[i], game.ScrapedURL)
	}
}

func TestScrapeService_Run_MaxGames(t *testing.T) {
	fetcher := &fakeFetcher{links: gameLinks(10)}
	svc := NewScrapeService(scrapeTestConfig(), fetcher, nil, zap.NewNop())

	result, err := svc.Run(context.Background(), 3, true)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalGames)
	assert.True(t, result.TestMode)
	assert.Equal(t, fetcher.links[0], result.Games[0].ScrapedURL)
	assert.Equal(t, fetcher.links[2], result.Games[2].ScrapedURL)
}

func TestScrapeService_Run_PageErrorsAreCounted(t *testing.T) {
	links := gameLinks(4)
	fetcher := &fakeFetcher{
		links:    links,
		failURLs: map[string]bool{links[1]: true, links[3]: true},
	}
	svc := NewScrapeService(scrapeTestConfig(), fetcher, nil, zap.NewNop())

	result, err := svc.Run(context.Background(), 0, false)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalGames)
	assert.Equal(t, 2, result.Statistics.Errors)
	assert.Equal(t, links[0], result.Games[0].ScrapedURL)
	assert.Equal(t, links[2], result.Games[1].ScrapedURL)
}

func TestScrapeService_Run_ListingFailure(t *testing.T) {
	fetcher := &fakeFetcher{linksErr: errors.New("listing blocked")}
	svc := NewScrapeService(scrapeTestConfig(), fetcher, nil, zap.NewNop())

	_, err := svc.Run(context.Background(), 0, false)
	assert.Error(t, err)
}
