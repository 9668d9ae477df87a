package scraper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"steamripper/internal/model"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// fetcherImpl implements the Fetcher interface over HTTP
type fetcherImpl struct {
	config     Config
	logger     *zap.Logger
	httpClient *HTTPClient
}

// NewFetcher creates a new HTTP Fetcher instance
func NewFetcher(config Config, logger *zap.Logger) Fetcher {
	return &fetcherImpl{
		config:     config,
		logger:     logger,
		httpClient: NewHTTPClient(config, logger),
	}
}

// WarmUp primes the anti-bot session against the site root
func (f *fetcherImpl) WarmUp(ctx context.Context) {
	f.httpClient.Warm(ctx, f.config.SiteRoot)
}

// FetchGameLinks retrieves the game page links from the listing page
func (f *fetcherImpl) FetchGameLinks(ctx context.Context) ([]string, error) {
	var links []string
	seen := make(map[string]struct{})
	var mu sync.Mutex

	collector := f.newCollector()
	collector.OnHTML("a[href]", func(e *colly.HTMLElement) {
		select {
		case <-ctx.Done():
			f.logger.Warn("Link collection stopped", zap.String("url", e.Request.URL.String()), zap.Error(ctx.Err()))
			return
		default:
			href := e.Attr("href")
			if !IsGameLink(href) {
				return
			}
			full := ResolveURL(f.config.BaseURL, href)
			mu.Lock()
			if _, exists := seen[full]; !exists {
				seen[full] = struct{}{}
				links = append(links, full)
			}
			mu.Unlock()
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		f.logger.Error("Failed to scrape listing page",
			zap.String("url", r.Request.URL.String()),
			zap.Int("status_code", r.StatusCode),
			zap.Error(err))
	})

	err := WithRetry(ctx, f.logger, f.config.RetryConfig, func() error {
		return collector.Visit(f.config.BaseURL)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to visit listing page after retries: %w", err)
	}
	collector.Wait()

	if len(links) == 0 {
		return nil, ErrNoGameLinks
	}

	f.logger.Info("Fetched game links", zap.Int("link_count", len(links)))
	return links, nil
}

// FetchGamePage retrieves and extracts a single game page
func (f *fetcherImpl) FetchGamePage(ctx context.Context, url string) (*model.Game, error) {
	var doc *goquery.Document

	err := WithRetry(ctx, f.logger, f.config.RetryConfig, func() error {
		fetched, err := f.httpClient.GetHTML(ctx, url)
		if err != nil {
			return err
		}
		doc = fetched
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch game page %s: %w", url, err)
	}

	game := ExtractGame(doc, url, ExtractOptions{
		IncludeScreenshots: f.config.IncludeScreenshots,
		IncludeYouTube:     f.config.IncludeYouTube,
	})

	f.logger.Debug("Extracted game",
		zap.String("name", game.Name),
		zap.String("url", url),
		zap.Int("download_links", len(game.DownloadLinks)))

	return game, nil
}

// newCollector creates a new colly collector with configured middleware
func (f *fetcherImpl) newCollector() *colly.Collector {
	collector := colly.NewCollector(
		colly.UserAgent(f.config.UserAgent),
		colly.MaxDepth(1),
		colly.AllowURLRevisit(),
	)

	// Share the Cloudflare bypass transport with the page client
	collector.WithTransport(f.httpClient.RoundTripper())

	if err := collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		Delay:       f.config.RequestDelay,
	}); err != nil {
		f.logger.Error("Failed to set collector limit", zap.Error(err))
	}

	collector.OnRequest(func(r *colly.Request) {
		r.Ctx.Put("start_time", time.Now())
		f.logger.Debug("Making request", zap.String("url", r.URL.String()))
	})

	collector.OnResponse(func(r *colly.Response) {
		startTime, _ := r.Ctx.GetAny("start_time").(time.Time)
		f.logger.Debug("Received response",
			zap.String("url", r.Request.URL.String()),
			zap.Int("status_code", r.StatusCode),
			zap.Int("size", len(r.Body)),
			zap.Duration("duration", time.Since(startTime)))
	})

	return collector
}
