package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HTTPClient is the hardened HTTP client used for game pages.
// It layers a Cloudflare bypass round-tripper and a politeness rate
// limiter over a tuned transport, mirroring the browser session the
// site expects.
type HTTPClient struct {
	client  *resty.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewHTTPClient creates a new HTTP client for scraping
func NewHTTPClient(config Config, logger *zap.Logger) *HTTPClient {
	transport := &http.Transport{
		MaxIdleConns:          config.HTTPClientConfig.MaxIdleConns,
		MaxIdleConnsPerHost:   config.HTTPClientConfig.MaxIdleConnsPerHost,
		IdleConnTimeout:       config.HTTPClientConfig.IdleConnTimeout,
		TLSHandshakeTimeout:   config.HTTPClientConfig.TLSHandshakeTimeout,
		ResponseHeaderTimeout: config.HTTPClientConfig.ResponseHeaderTimeout,
		DisableKeepAlives:     config.HTTPClientConfig.DisableKeepAlives,
	}

	client := resty.New()
	client.SetTimeout(config.RequestTimeout)
	if jar, err := cookiejar.New(nil); err == nil {
		client.SetCookieJar(jar)
	}
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(transport)

	client.SetHeader("User-Agent", config.UserAgent)
	client.SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	client.SetHeader("Accept-Language", "en-US,en;q=0.5")
	client.SetHeader("Referer", config.SiteRoot)

	// One request per RequestDelay, shared across workers
	interval := rate.Every(config.RequestDelay)
	if config.RequestDelay <= 0 {
		interval = rate.Inf
	}
	limiter := rate.NewLimiter(interval, 1)

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	return &HTTPClient{
		client:  client,
		limiter: limiter,
		logger:  logger,
	}
}

// GetHTML fetches a page and parses it into a goquery document
func (c *HTTPClient) GetHTML(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := c.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	status := resp.StatusCode()
	c.logger.Debug("Fetched page",
		zap.String("url", url),
		zap.Int("status", status),
		zap.Int("size", len(resp.Body())),
		zap.Duration("duration", resp.Time()))

	switch {
	case status == http.StatusForbidden || status == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: %s returned status %d", ErrPageBlocked, url, status)
	case status != http.StatusOK:
		return nil, fmt.Errorf("unexpected status code %d for %s", status, url)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(resp.Body())))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", url, err)
	}

	return doc, nil
}

// Warm issues a throwaway request against the site root to collect
// anti-bot cookies. Failures are logged, never returned.
func (c *HTTPClient) Warm(ctx context.Context, siteRoot string) {
	if _, err := c.client.R().SetContext(ctx).Get(siteRoot); err != nil {
		c.logger.Debug("Warm-up request failed", zap.String("url", siteRoot), zap.Error(err))
	}
}

// RoundTripper exposes the bypass transport for the colly collector
func (c *HTTPClient) RoundTripper() http.RoundTripper {
	return c.client.GetClient().Transport
}
