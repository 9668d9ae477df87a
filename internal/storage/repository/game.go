// Package repository contains the database repositories.
package repository

import (
	"context"
	"fmt"
	"time"

	"steamripper/internal/model"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// GameRepository implements the game persistence interface
type GameRepository struct {
	db     *bun.DB
	logger *zap.Logger
}

var _ model.GameRepository = (*GameRepository)(nil)

// NewGameRepository creates a new game repository
func NewGameRepository(db *bun.DB, logger *zap.Logger) *GameRepository {
	return &GameRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert inserts a game, updating the stored row when the page was scraped before
func (r *GameRepository) Upsert(game *model.Game) error {
	ctx := context.Background()

	_, err := r.db.NewInsert().
		Model(game).
		On("CONFLICT (scraped_url) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("description = EXCLUDED.description").
		Set("cover_image = EXCLUDED.cover_image").
		Set("screenshots = EXCLUDED.screenshots").
		Set("youtube_gameplay = EXCLUDED.youtube_gameplay").
		Set("download_links = EXCLUDED.download_links").
		Set("additional_info = EXCLUDED.additional_info").
		Set("scraped_at = EXCLUDED.scraped_at").
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}

	return nil
}

// UpsertAll upserts a batch of games in one transaction
func (r *GameRepository) UpsertAll(games []model.Game) error {
	if len(games) == 0 {
		return nil
	}

	ctx := context.Background()

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for i := range games {
			_, err := tx.NewInsert().
				Model(&games[i]).
				On("CONFLICT (scraped_url) DO UPDATE").
				Set("name = EXCLUDED.name").
				Set("description = EXCLUDED.description").
				Set("cover_image = EXCLUDED.cover_image").
				Set("screenshots = EXCLUDED.screenshots").
				Set("youtube_gameplay = EXCLUDED.youtube_gameplay").
				Set("download_links = EXCLUDED.download_links").
				Set("additional_info = EXCLUDED.additional_info").
				Set("scraped_at = EXCLUDED.scraped_at").
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to upsert game %s: %w", games[i].ID, err)
			}
		}
		return nil
	})

	if err != nil {
		return fmt.Errorf("failed to upsert games: %w", err)
	}

	r.logger.Debug("Upserted games", zap.Int("count", len(games)))
	return nil
}

// GetByID returns a game by ID
func (r *GameRepository) GetByID(id string) (*model.Game, error) {
	ctx := context.Background()
	game := new(model.Game)

	err := r.db.NewSelect().
		Model(game).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query game by ID: %w", err)
	}

	return game, nil
}

// GetByScrapedURL returns a game by its source page URL
func (r *GameRepository) GetByScrapedURL(url string) (*model.Game, error) {
	ctx := context.Background()
	game := new(model.Game)

	err := r.db.NewSelect().
		Model(game).
		Where("scraped_url = ?", url).
		Scan(ctx)

	if err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query game by scraped URL: %w", err)
	}

	return game, nil
}

// GetAll returns all stored games
func (r *GameRepository) GetAll() ([]model.Game, error) {
	ctx := context.Background()
	var games []model.Game

	err := r.db.NewSelect().
		Model(&games).
		Order("name ASC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}

	return games, nil
}

// GetScrapedSince returns games scraped after the given time
func (r *GameRepository) GetScrapedSince(since time.Time) ([]model.Game, error) {
	ctx := context.Background()
	var games []model.Game

	err := r.db.NewSelect().
		Model(&games).
		Where("scraped_at > ?", since).
		Order("scraped_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to query games by scrape time: %w", err)
	}

	return games, nil
}

// GetTotalCount returns the number of stored games
func (r *GameRepository) GetTotalCount() (int, error) {
	ctx := context.Background()

	count, err := r.db.NewSelect().
		Model((*model.Game)(nil)).
		Count(ctx)

	if err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}

	return count, nil
}
