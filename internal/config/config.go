// Package config loads the application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultUserAgent is sent when USER_AGENT is not configured
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config represents the application configuration
type Config struct {
	BaseURL   string
	SiteRoot  string
	UserAgent string

	// Request settings
	RequestDelay          time.Duration
	RequestTimeout        time.Duration
	MaxRetries            int
	MaxConcurrentRequests int

	// Scrape settings
	MaxGames           int
	IncludeScreenshots bool
	IncludeYouTube     bool
	RenderMode         string

	// Output settings
	OutputDir      string
	OutputFilename string

	// Retry settings
	RetryConfig RetryConfig

	// HTTP client settings
	HTTPClientConfig HTTPClientConfig

	// Daemon settings
	DatabaseURL        string
	ScrapeCron         string
	HealthCheckEnabled bool
	HealthCheckPort    int

	GracefulShutdownTimeout time.Duration

	// Logging
	LogLevel string
}

// RetryConfig configures the retry mechanism
type RetryConfig struct {
	MaxRetries        int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
}

// HTTPClientConfig configures the HTTP client
type HTTPClientConfig struct {
	MaxIdleConns          int
	MaxIdleConnsPerHost   int
	IdleConnTimeout       time.Duration
	TLSHandshakeTimeout   time.Duration
	ResponseHeaderTimeout time.Duration
	DisableKeepAlives     bool
}

// Render modes
const (
	RenderModeHTTP    = "http"
	RenderModeBrowser = "browser"
)

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	config := &Config{}

	if err := config.loadBasicSettings(); err != nil {
		return nil, err
	}

	if err := config.loadRequestSettings(); err != nil {
		return nil, err
	}

	if err := config.loadScrapeSettings(); err != nil {
		return nil, err
	}

	if err := config.loadOutputSettings(); err != nil {
		return nil, err
	}

	if err := config.loadRetrySettings(); err != nil {
		return nil, err
	}

	if err := config.loadHTTPSettings(); err != nil {
		return nil, err
	}

	if err := config.loadDaemonSettings(); err != nil {
		return nil, err
	}

	return config, nil
}

// loadBasicSettings loads the site and client identity settings
func (c *Config) loadBasicSettings() error {
	_ = godotenv.Load() // .env is optional

	c.BaseURL = os.Getenv("STEAMRIP_BASE_URL")
	if c.BaseURL == "" {
		c.BaseURL = "https://steamrip.com/games-list-page/"
	}

	c.SiteRoot = os.Getenv("STEAMRIP_SITE_ROOT")
	if c.SiteRoot == "" {
		c.SiteRoot = "https://steamrip.com/"
	}

	c.UserAgent = os.Getenv("USER_AGENT")
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}

	c.LogLevel = os.Getenv("LOG_LEVEL")
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	return nil
}

// loadRequestSettings loads the request pacing settings
func (c *Config) loadRequestSettings() error {
	c.RequestDelay = getEnvDuration("REQUEST_DELAY", 2*time.Second)
	c.RequestTimeout = getEnvDuration("REQUEST_TIMEOUT", 30*time.Second)

	maxRetriesStr := os.Getenv("MAX_RETRIES")
	if maxRetriesStr == "" {
		c.MaxRetries = 3
	} else {
		var err error
		c.MaxRetries, err = strconv.Atoi(maxRetriesStr)
		if err != nil || c.MaxRetries <= 0 {
			return fmt.Errorf("invalid MAX_RETRIES: %q", maxRetriesStr)
		}
	}

	maxConcurrentStr := os.Getenv("MAX_CONCURRENT_REQUESTS")
	if maxConcurrentStr == "" {
		c.MaxConcurrentRequests = 2
	} else {
		var err error
		c.MaxConcurrentRequests, err = strconv.Atoi(maxConcurrentStr)
		if err != nil || c.MaxConcurrentRequests <= 0 {
			return fmt.Errorf("invalid MAX_CONCURRENT_REQUESTS: %q", maxConcurrentStr)
		}
	}

	return nil
}

// loadScrapeSettings loads the scrape behavior settings
func (c *Config) loadScrapeSettings() error {
	maxGamesStr := os.Getenv("MAX_GAMES")
	if maxGamesStr == "" {
		c.MaxGames = 0 // unlimited
	} else {
		var err error
		c.MaxGames, err = strconv.Atoi(maxGamesStr)
		if err != nil || c.MaxGames < 0 {
			return fmt.Errorf("invalid MAX_GAMES: %q", maxGamesStr)
		}
	}

	c.IncludeScreenshots = getEnvBool("INCLUDE_SCREENSHOTS", true)
	c.IncludeYouTube = getEnvBool("INCLUDE_YOUTUBE", true)

	c.RenderMode = os.Getenv("RENDER_MODE")
	if c.RenderMode == "" {
		c.RenderMode = RenderModeHTTP
	}
	if c.RenderMode != RenderModeHTTP && c.RenderMode != RenderModeBrowser {
		return fmt.Errorf("invalid RENDER_MODE: %q", c.RenderMode)
	}

	return nil
}

// loadOutputSettings loads the artifact output settings
func (c *Config) loadOutputSettings() error {
	c.OutputDir = os.Getenv("OUTPUT_DIR")
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}

	c.OutputFilename = os.Getenv("OUTPUT_FILENAME")
	if c.OutputFilename == "" {
		c.OutputFilename = "steamrip_games_{run_id}.json"
	}

	return nil
}

// loadRetrySettings loads the retry settings
func (c *Config) loadRetrySettings() error {
	c.RetryConfig = RetryConfig{
		MaxRetries:        getEnvInt("RETRY_MAX_ATTEMPTS", c.MaxRetries),
		InitialDelay:      getEnvDuration("RETRY_INITIAL_DELAY", 1*time.Second),
		MaxDelay:          getEnvDuration("RETRY_MAX_DELAY", 30*time.Second),
		BackoffMultiplier: getEnvFloat("RETRY_BACKOFF_MULTIPLIER", 2.0),
	}
	return nil
}

// loadHTTPSettings loads the HTTP client settings
func (c *Config) loadHTTPSettings() error {
	c.HTTPClientConfig.MaxIdleConns = getEnvInt("HTTP_MAX_IDLE_CONNS", 100)
	c.HTTPClientConfig.MaxIdleConnsPerHost = getEnvInt("HTTP_MAX_IDLE_CONNS_PER_HOST", 10)
	c.HTTPClientConfig.IdleConnTimeout = getEnvDuration("HTTP_IDLE_CONN_TIMEOUT", 90*time.Second)
	c.HTTPClientConfig.TLSHandshakeTimeout = getEnvDuration("HTTP_TLS_HANDSHAKE_TIMEOUT", 10*time.Second)
	c.HTTPClientConfig.ResponseHeaderTimeout = getEnvDuration("HTTP_RESPONSE_HEADER_TIMEOUT", 30*time.Second)

	disableKeepAlives := os.Getenv("HTTP_DISABLE_KEEP_ALIVES")
	c.HTTPClientConfig.DisableKeepAlives = disableKeepAlives == "true" || disableKeepAlives == "1"

	return nil
}

// loadDaemonSettings loads the settings used by the scraperd daemon
func (c *Config) loadDaemonSettings() error {
	c.DatabaseURL = os.Getenv("DATABASE_URL")

	c.ScrapeCron = os.Getenv("SCRAPE_CRON")
	if c.ScrapeCron == "" {
		c.ScrapeCron = "0 3 * * *"
	}

	c.HealthCheckEnabled = getEnvBool("HEALTH_CHECK_ENABLED", true)

	healthCheckPortStr := os.Getenv("HEALTH_CHECK_PORT")
	if healthCheckPortStr == "" {
		c.HealthCheckPort = 8080
	} else {
		var err error
		c.HealthCheckPort, err = strconv.Atoi(healthCheckPortStr)
		if err != nil || c.HealthCheckPort <= 0 {
			return fmt.Errorf("invalid HEALTH_CHECK_PORT: %q", healthCheckPortStr)
		}
	}

	c.GracefulShutdownTimeout = getEnvDuration("GRACEFUL_SHUTDOWN_TIMEOUT", 30*time.Second)

	return nil
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if c.MaxRetries <= 0 {
		return fmt.Errorf("max retries must be positive")
	}
	if c.MaxConcurrentRequests <= 0 {
		return fmt.Errorf("max concurrent requests must be positive")
	}
	if c.MaxGames < 0 {
		return fmt.Errorf("max games must not be negative")
	}
	if c.HealthCheckEnabled && (c.HealthCheckPort <= 0 || c.HealthCheckPort > 65535) {
		return fmt.Errorf("invalid health check port: %d", c.HealthCheckPort)
	}
	if c.RetryConfig.BackoffMultiplier < 1 {
		return fmt.Errorf("retry backoff multiplier must be >= 1")
	}
	return nil
}

// String renders the configuration for startup logging. The database
// URL is redacted because it carries credentials.
func (c *Config) String() string {
	dbURL := c.DatabaseURL
	if dbURL != "" {
		dbURL = "[redacted]"
	}
	return fmt.Sprintf(
		"Config{BaseURL: %s, RenderMode: %s, MaxGames: %d, MaxConcurrentRequests: %d, RequestDelay: %s, OutputDir: %s, DatabaseURL: %s, ScrapeCron: %s}",
		c.BaseURL, c.RenderMode, c.MaxGames, c.MaxConcurrentRequests, c.RequestDelay, c.OutputDir, dbURL, c.ScrapeCron)
}

// Environment parsing helpers
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Plain numbers are treated as seconds, matching the legacy deployment
		if seconds, err := strconv.ParseFloat(value, 64); err == nil {
			return time.Duration(seconds * float64(time.Second))
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
