// Package browser implements the headless-browser fetcher for JS-driven pages.
package browser

import (
	"context"
	"fmt"
	"strings"

	"steamripper/internal/model"
	"steamripper/internal/scraper"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// fetcherImpl implements scraper.Fetcher on top of a headless Chromium
type fetcherImpl struct {
	config   scraper.Config
	logger   *zap.Logger
	limiter  *rate.Limiter
	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewFetcher creates a Fetcher backed by a shared browser allocator.
// Close must be called to release the browser processes.
func NewFetcher(config scraper.Config, logger *zap.Logger) (scraper.Fetcher, func()) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(config.UserAgent),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	interval := rate.Every(config.RequestDelay)
	if config.RequestDelay <= 0 {
		interval = rate.Inf
	}

	f := &fetcherImpl{
		config:   config,
		logger:   logger,
		limiter:  rate.NewLimiter(interval, 1),
		allocCtx: allocCtx,
		cancel:   cancel,
	}
	return f, f.close
}

func (f *fetcherImpl) close() {
	f.cancel()
}

// WarmUp loads the site root once so the browser session carries its cookies
func (f *fetcherImpl) WarmUp(ctx context.Context) {
	if _, err := f.renderHTML(ctx, f.config.SiteRoot); err != nil {
		f.logger.Debug("Warm-up navigation failed", zap.String("url", f.config.SiteRoot), zap.Error(err))
	}
}

// FetchGameLinks renders the listing page and extracts game links
func (f *fetcherImpl) FetchGameLinks(ctx context.Context) ([]string, error) {
	var links []string

	err := scraper.WithRetry(ctx, f.logger, f.config.RetryConfig, func() error {
		doc, err := f.renderDocument(ctx, f.config.BaseURL)
		if err != nil {
			return err
		}
		links = scraper.ExtractGameLinks(doc, f.config.BaseURL)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render listing page after retries: %w", err)
	}

	if len(links) == 0 {
		return nil, scraper.ErrNoGameLinks
	}

	f.logger.Info("Fetched game links", zap.Int("link_count", len(links)))
	return links, nil
}

// FetchGamePage renders and extracts a single game page
func (f *fetcherImpl) FetchGamePage(ctx context.Context, url string) (*model.Game, error) {
	var doc *goquery.Document

	err := scraper.WithRetry(ctx, f.logger, f.config.RetryConfig, func() error {
		rendered, err := f.renderDocument(ctx, url)
		if err != nil {
			return err
		}
		doc = rendered
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render game page %s: %w", url, err)
	}

	game := scraper.ExtractGame(doc, url, scraper.ExtractOptions{
		IncludeScreenshots: f.config.IncludeScreenshots,
		IncludeYouTube:     f.config.IncludeYouTube,
	})

	f.logger.Debug("Extracted game",
		zap.String("name", game.Name),
		zap.String("url", url))

	return game, nil
}

// renderDocument renders a page and parses the resulting HTML
func (f *fetcherImpl) renderDocument(ctx context.Context, url string) (*goquery.Document, error) {
	html, err := f.renderHTML(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered HTML from %s: %w", url, err)
	}
	return doc, nil
}

// renderHTML navigates a fresh tab to url and returns the rendered markup
func (f *fetcherImpl) renderHTML(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	tabCtx, cancelTab := chromedp.NewContext(f.allocCtx)
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, f.config.RequestTimeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", url, err)
	}

	f.logger.Debug("Rendered page", zap.String("url", url), zap.Int("size", len(html)))
	return html, nil
}
