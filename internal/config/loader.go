package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// fileOverlay mirrors the keys accepted in a JSON configuration file.
// Any field left out keeps its environment-derived value.
type fileOverlay struct {
	BaseURL               *string  `json:"base_url"`
	UserAgent             *string  `json:"user_agent"`
	RequestDelay          *float64 `json:"request_delay"`
	RequestTimeout        *float64 `json:"request_timeout"`
	MaxRetries            *int     `json:"max_retries"`
	MaxConcurrentRequests *int     `json:"max_concurrent_requests"`
	MaxGames              *int     `json:"max_games"`
	IncludeScreenshots    *bool    `json:"include_screenshots"`
	IncludeYouTube        *bool    `json:"include_youtube"`
	RenderMode            *string  `json:"render_mode"`
	OutputDir             *string  `json:"output_dir"`
	OutputFilename        *string  `json:"output_filename"`
}

// LoadFromFile overlays settings from a JSON configuration file
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var overlay fileOverlay
	if err := json.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if overlay.BaseURL != nil {
		c.BaseURL = *overlay.BaseURL
	}
	if overlay.UserAgent != nil {
		c.UserAgent = *overlay.UserAgent
	}
	if overlay.RequestDelay != nil {
		c.RequestDelay = time.Duration(*overlay.RequestDelay * float64(time.Second))
	}
	if overlay.RequestTimeout != nil {
		c.RequestTimeout = time.Duration(*overlay.RequestTimeout * float64(time.Second))
	}
	if overlay.MaxRetries != nil {
		c.MaxRetries = *overlay.MaxRetries
		c.RetryConfig.MaxRetries = *overlay.MaxRetries
	}
	if overlay.MaxConcurrentRequests != nil {
		c.MaxConcurrentRequests = *overlay.MaxConcurrentRequests
	}
	if overlay.MaxGames != nil {
		c.MaxGames = *overlay.MaxGames
	}
	if overlay.IncludeScreenshots != nil {
		c.IncludeScreenshots = *overlay.IncludeScreenshots
	}
	if overlay.IncludeYouTube != nil {
		c.IncludeYouTube = *overlay.IncludeYouTube
	}
	if overlay.RenderMode != nil {
		c.RenderMode = *overlay.RenderMode
	}
	if overlay.OutputDir != nil {
		c.OutputDir = *overlay.OutputDir
	}
	if overlay.OutputFilename != nil {
		c.OutputFilename = *overlay.OutputFilename
	}

	return c.Validate()
}
