// Package model contains the data models.
package model

import (
	"time"

	"github.com/uptrace/bun"
)

// Game represents a scraped game listing
type Game struct {
	bun.BaseModel `bun:"table:games"`

	ID              string            `bun:"id,pk" json:"id"`
	Name            string            `bun:"name,notnull" json:"name"`
	Description     string            `bun:"description" json:"description"`
	CoverImage      string            `bun:"cover_image" json:"cover_image"`
	Screenshots     []string          `bun:"screenshots,type:jsonb" json:"screenshots"`
	YouTubeGameplay string            `bun:"youtube_gameplay" json:"youtube_gameplay"`
	DownloadLinks   map[string]string `bun:"download_links,type:jsonb" json:"download_links"`
	AdditionalInfo  AdditionalInfo    `bun:"additional_info,type:jsonb" json:"additional_info"`
	ScrapedURL      string            `bun:"scraped_url,notnull,unique" json:"scraped_url"`
	ScrapedAt       time.Time         `bun:"scraped_at,notnull" json:"scraped_at"`
}

// AdditionalInfo holds the optional metadata parsed from the GAME INFO block
type AdditionalInfo struct {
	SystemRequirements string `json:"system_requirements,omitempty"`
	Genre              string `json:"genre,omitempty"`
	Developer          string `json:"developer,omitempty"`
	Size               string `json:"size,omitempty"`
	Version            string `json:"version,omitempty"`
}

// IsEmpty reports whether no additional info was found
func (a AdditionalInfo) IsEmpty() bool {
	return a == AdditionalInfo{}
}

// Validate checks the game for required fields
func (g *Game) Validate() error {
	var errors ValidationErrors

	if err := ValidateRequired("id", g.ID); err != nil {
		errors = append(errors, err.(ValidationError))
	}

	if err := ValidateRequired("name", g.Name); err != nil {
		errors = append(errors, err.(ValidationError))
	}

	if err := ValidateRequired("scraped_url", g.ScrapedURL); err != nil {
		errors = append(errors, err.(ValidationError))
	}

	if g.ScrapedURL != "" {
		if err := ValidateURL("scraped_url", g.ScrapedURL); err != nil {
			errors = append(errors, err.(ValidationError))
		}
	}

	if errors.HasErrors() {
		return errors
	}

	return nil
}

// HasDownloads reports whether any download link was extracted
func (g *Game) HasDownloads() bool {
	return len(g.DownloadLinks) > 0
}

// GameRepository defines the persistence interface for games
type GameRepository interface {
	Upsert(game *Game) error
	UpsertAll(games []Game) error
	GetByID(id string) (*Game, error)
	GetByScrapedURL(url string) (*Game, error)
	GetAll() ([]Game, error)
	GetScrapedSince(since time.Time) ([]Game, error)
	GetTotalCount() (int, error)
}
