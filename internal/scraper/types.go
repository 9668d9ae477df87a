// Package scraper contains the SteamRip fetching and extraction logic.
package scraper

import (
	"context"
	"errors"
	"time"

	"steamripper/internal/model"
)

// Fetcher retrieves game links and game pages from SteamRip
type Fetcher interface {
	// WarmUp primes the session against the site root. Errors are ignored
	// by callers; a failed warm-up only means the first real request pays
	// the anti-bot challenge cost.
	WarmUp(ctx context.Context)
	FetchGameLinks(ctx context.Context) ([]string, error)
	FetchGamePage(ctx context.Context, url string) (*model.Game, error)
}

// Config represents the scraper configuration
type Config struct {
	BaseURL            string
	SiteRoot           string
	UserAgent          string
	RequestDelay       time.Duration
	RequestTimeout     time.Duration
	IncludeScreenshots bool
	IncludeYouTube     bool
	HTTPClientConfig   HTTPClientConfig
	RetryConfig        RetryConfig
}

// HTTPClientConfig represents the HTTP client configuration
type HTTPClientConfig struct {
	MaxIdleConns          int
	MaxIdleConnsPerHost   int
	IdleConnTimeout       time.Duration
	TLSHandshakeTimeout   time.Duration
	ResponseHeaderTimeout time.Duration
	DisableKeepAlives     bool
}

// RetryConfig represents the retry mechanism configuration
type RetryConfig struct {
	MaxRetries        int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
}

// Sentinel errors surfaced by the fetcher
var (
	ErrNoGameLinks = errors.New("no game links found on listing page")
	ErrPageBlocked = errors.New("page request was blocked")
)
