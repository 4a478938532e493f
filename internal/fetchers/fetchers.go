package fetchers

import (
	"context"

	"fgd/internal/models"
)

// GameFetcher produces the current and upcoming free games from a
// storefront.
type GameFetcher interface {
	FetchFreeGames(ctx context.Context) ([]models.Game, error)
}

// RatingFetcher looks up a rating for one game from a single source.
// Returns (nil, nil) when the source has nothing for the game; an error
// means the source itself failed and contributes nothing this run.
type RatingFetcher interface {
	Name() string
	FetchRating(ctx context.Context, game models.Game) (*models.Rating, error)
}
