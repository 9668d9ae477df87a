package model

// ScraperVersion is stamped into every result envelope
const ScraperVersion = "1.0.0"

// Result is the JSON envelope written as the scrape artifact
type Result struct {
	Timestamp      string     `json:"timestamp"`
	TotalGames     int        `json:"total_games"`
	ScraperVersion string     `json:"scraper_version"`
	TestMode       bool       `json:"test_mode"`
	Statistics     Statistics `json:"statistics"`
	Games          []Game     `json:"games"`
}

// Statistics summarizes a scrape run
type Statistics struct {
	GamesProcessed          int     `json:"games_processed"`
	GamesWithCover          int     `json:"games_with_cover"`
	GamesWithScreenshots    int     `json:"games_with_screenshots"`
	GamesWithDownloads      int     `json:"games_with_downloads"`
	GamesWithYouTube        int     `json:"games_with_youtube"`
	GamesWithAdditionalInfo int     `json:"games_with_additional_info"`
	Errors                  int     `json:"errors"`
	ElapsedTimeSeconds      float64 `json:"elapsed_time_seconds"`
	GamesPerMinute          float64 `json:"games_per_minute"`
}
