package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validGame() *Game {
	return &Game{
		ID:         "a1b2c3d4e5f60718",
		Name:       "Elden Ring",
		ScrapedURL: "https://steamrip.com/elden-ring-free-download/",
		ScrapedAt:  time.Now(),
	}
}

func TestGame_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Game)
		wantErr bool
	}{
		{
			name:    "valid game",
			mutate:  func(*Game) {},
			wantErr: false,
		},
		{
			name:    "missing id",
			mutate:  func(g *Game) { g.ID = "" },
			wantErr: true,
		},
		{
			name:    "missing name",
			mutate:  func(g *Game) { g.Name = "" },
			wantErr: true,
		},
		{
			name:    "missing scraped url",
			mutate:  func(g *Game) { g.ScrapedURL = "" },
			wantErr: true,
		},
		{
			name:    "relative scraped url",
			mutate:  func(g *Game) { g.ScrapedURL = "/elden-ring-free-download/" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := validGame()
			tt.mutate(game)

			err := game.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Game.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGame_HasDownloads(t *testing.T) {
	game := validGame()
	assert.False(t, game.HasDownloads())

	game.DownloadLinks = map[string]string{"megadb": "https://megadb.net/abc"}
	assert.True(t, game.HasDownloads())
}

func TestAdditionalInfo_IsEmpty(t *testing.T) {
	assert.True(t, AdditionalInfo{}.IsEmpty())
	assert.False(t, AdditionalInfo{Genre: "Action RPG"}.IsEmpty())
	assert.False(t, AdditionalInfo{SystemRequirements: "OS: Windows 10"}.IsEmpty())
}

func TestGame_JSONShape(t *testing.T) {
	game := validGame()
	game.Screenshots = []string{}
	game.DownloadLinks = map[string]string{"gofile": "https://gofile.io/d/abc"}

	data, err := json.Marshal(game)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, key := range []string{
		"id", "name", "description", "cover_image", "screenshots",
		"youtube_gameplay", "download_links", "additional_info",
		"scraped_url", "scraped_at",
	} {
		assert.Contains(t, decoded, key)
	}

	// Empty screenshot lists serialize as [], not null
	assert.Equal(t, []any{}, decoded["screenshots"])
}

func TestAdditionalInfo_OmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(AdditionalInfo{Genre: "Roguelike"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"genre":"Roguelike"}`, string(data))
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "id", Message: "id is required"},
		{Field: "name", Message: "name is required"},
	}

	assert.True(t, errs.HasErrors())
	assert.Equal(t, "id: id is required; name: name is required", errs.Error())
	assert.False(t, ValidationErrors{}.HasErrors())
}
