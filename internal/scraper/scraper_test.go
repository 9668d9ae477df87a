package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(baseURL, siteRoot string) Config {
	return Config{
		BaseURL:            baseURL,
		SiteRoot:           siteRoot,
		UserAgent:          "test-agent",
		RequestDelay:       0,
		RequestTimeout:     5 * time.Second,
		IncludeScreenshots: true,
		IncludeYouTube:     true,
		RetryConfig: RetryConfig{
			MaxRetries:        1,
			InitialDelay:      10 * time.Millisecond,
			MaxDelay:          50 * time.Millisecond,
			BackoffMultiplier: 2.0,
		},
	}
}

func TestFetchGameLinks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
			<a href="/elden-ring-free-download/">Elden Ring</a>
			<a href="/hades-free-download/">Hades</a>
			<a href="/about/">About</a>
		</body></html>`))
	}))
	defer server.Close()

	fetcher := NewFetcher(testConfig(server.URL+"/games-list-page/", server.URL+"/"), zap.NewNop())

	links, err := fetcher.FetchGameLinks(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		server.URL + "/elden-ring-free-download/",
		server.URL + "/hades-free-download/",
	}, links)
}

func TestFetchGameLinks_NoLinks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><a href="/about/">About</a></body></html>`))
	}))
	defer server.Close()

	fetcher := NewFetcher(testConfig(server.URL+"/games-list-page/", server.URL+"/"), zap.NewNop())

	_, err := fetcher.FetchGameLinks(context.Background())
	assert.ErrorIs(t, err, ErrNoGameLinks)
}

func TestFetchGamePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
			<h1>Hades Free Download (v1.38)</h1>
			<div class="entry-content"><p>Defy the god of the dead.</p></div>
			<a href="https://megadb.net/abc">DOWNLOAD HERE</a>
		</body></html>`))
	}))
	defer server.Close()

	fetcher := NewFetcher(testConfig(server.URL+"/games-list-page/", server.URL+"/"), zap.NewNop())

	pageURL := server.URL + "/hades-free-download/"
	game, err := fetcher.FetchGamePage(context.Background(), pageURL)
	require.NoError(t, err)

	assert.Equal(t, "Hades", game.Name)
	assert.Equal(t, GameID(pageURL), game.ID)
	assert.Equal(t, pageURL, game.ScrapedURL)
	assert.Equal(t, "https://megadb.net/abc", game.DownloadLinks["megadb"])
}

func TestFetchGamePage_RetriesServerErrors(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><h1>Hades Free Download</h1></body></html>`))
	}))
	defer server.Close()

	fetcher := NewFetcher(testConfig(server.URL+"/games-list-page/", server.URL+"/"), zap.NewNop())

	game, err := fetcher.FetchGamePage(context.Background(), server.URL+"/hades-free-download/")
	require.NoError(t, err)

	assert.Equal(t, 2, attempts)
	assert.Equal(t, "Hades", game.Name)
}

func TestFetchGamePage_Blocked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	fetcher := NewFetcher(testConfig(server.URL+"/games-list-page/", server.URL+"/"), zap.NewNop())

	_, err := fetcher.FetchGamePage(context.Background(), server.URL+"/hades-free-download/")
	assert.ErrorIs(t, err, ErrPageBlocked)
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, zap.NewNop(), RetryConfig{MaxRetries: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, BackoffMultiplier: 2}, func() error {
		t.Fatal("fn should not run with a cancelled context")
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	var calls int
	err := WithRetry(context.Background(), zap.NewNop(), RetryConfig{
		MaxRetries:        2,
		InitialDelay:      time.Millisecond,
		MaxDelay:          5 * time.Millisecond,
		BackoffMultiplier: 2,
	}, func() error {
		calls++
		return assert.AnError
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 3, calls)
}
