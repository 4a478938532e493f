package services

import (
	"context"

	"fgd/internal/fetchers"
	"fgd/internal/models"
	"fgd/internal/providers"
)

type EnrichServiceInterface interface {
	EnrichGames(ctx context.Context, games []models.Game) []models.Game
	FetchRating(ctx context.Context, game models.Game) *models.Rating
}

// EnrichService pools rating data from an ordered chain of sources into a
// single rating per game. A failing source is logged and skipped; it never
// aborts the run.
type EnrichService struct {
	ratingFetchers []fetchers.RatingFetcher
	logger         providers.Logger
	metrics        providers.MetricsProviderInterface
}

func NewEnrichService(ratingFetchers []fetchers.RatingFetcher, logger providers.Logger, metrics providers.MetricsProviderInterface) EnrichServiceInterface {
	return &EnrichService{
		ratingFetchers: ratingFetchers,
		logger:         logger,
		metrics:        metrics,
	}
}

// EnrichGames returns a copy of the list with ratings attached where any
// source had data.
func (es *EnrichService) EnrichGames(ctx context.Context, games []models.Game) []models.Game {
	enriched := make([]models.Game, 0, len(games))
	for _, game := range games {
		enriched = append(enriched, game.WithRating(es.FetchRating(ctx, game)))
	}
	return enriched
}

// FetchRating merges the sources field by field. For each of the four
// named sub-scores the first source in order that supplies a value wins;
// later sources cannot overwrite it. This is deliberately the opposite
// tie-break from the snapshot merge, where the last duplicate wins.
// Returns nil when every field stays absent.
func (es *EnrichService) FetchRating(ctx context.Context, game models.Game) *models.Rating {
	var params models.RatingParams

	for _, fetcher := range es.ratingFetchers {
		rating, err := fetcher.FetchRating(ctx, game)
		if err != nil {
			es.logger.Warnf(providers.TypeFetch, "%s failed for %q: %s", fetcher.Name(), game.Title, err)
			es.metrics.IncRatingFailures(fetcher.Name())
			continue
		}
		if rating == nil {
			continue
		}

		if params.Epic == nil {
			params.Epic = rating.Epic()
		}
		if params.Metacritic == nil {
			params.Metacritic = rating.Metacritic()
		}
		if params.Opencritic == nil {
			params.Opencritic = rating.Opencritic()
		}
		if params.Steam == nil {
			params.Steam = rating.Steam()
		}
	}

	if params.Epic == nil && params.Metacritic == nil && params.Opencritic == nil && params.Steam == nil {
		return nil
	}

	merged, err := models.NewRating(params)
	if err != nil {
		// Source ratings were validated at construction, so merged values
		// are already in range.
		es.logger.Errorf(providers.TypeFetch, "Merged rating rejected for %q: %s", game.Title, err)
		return nil
	}
	return &merged
}
