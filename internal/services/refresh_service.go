package services

import (
	"context"
	"fmt"
	"time"

	"fgd/internal/fetchers"
	"fgd/internal/providers"
	"fgd/internal/snapshot"
)

// RefreshResult summarizes one full refresh run for the entry point.
type RefreshResult struct {
	Fetched    int
	Current    int
	Upcoming   int
	Backfilled int
}

type RefreshServiceInterface interface {
	Run(ctx context.Context) (RefreshResult, error)
}

// RefreshService performs one full cycle: fetch the free games, enrich
// them with ratings, merge-save the snapshot, then backfill ratings for
// past records that still lack them.
type RefreshService struct {
	gameFetcher fetchers.GameFetcher
	enricher    EnrichServiceInterface
	store       snapshot.StoreInterface
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
}

func NewRefreshService(gameFetcher fetchers.GameFetcher, enricher EnrichServiceInterface, store snapshot.StoreInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) RefreshServiceInterface {
	return &RefreshService{
		gameFetcher: gameFetcher,
		enricher:    enricher,
		store:       store,
		logger:      logger,
		metrics:     metrics,
	}
}

func (rs *RefreshService) Run(ctx context.Context) (RefreshResult, error) {
	start := time.Now()
	defer func() {
		rs.metrics.ObserveRefreshDuration(time.Since(start))
	}()

	var result RefreshResult

	rs.logger.Infof(providers.TypeApp, "Fetching free games...")
	games, err := rs.gameFetcher.FetchFreeGames(ctx)
	if err != nil {
		// An unreachable storefront downgrades to an empty fetch; the
		// persisted snapshot stays as it was.
		rs.logger.Errorf(providers.TypeFetch, "Failed to fetch free games: %s", err)
		games = nil
	}
	if len(games) == 0 {
		rs.logger.Warnf(providers.TypeApp, "No games fetched, skipping save")
		return result, nil
	}

	result.Fetched = len(games)
	rs.metrics.IncFetchedGames(len(games))

	rs.logger.Infof(providers.TypeApp, "Collecting ratings for %d games...", len(games))
	games = rs.enricher.EnrichGames(ctx, games)

	if err := rs.store.Save(games); err != nil {
		return result, fmt.Errorf("failed to save snapshot: %w", err)
	}

	now := time.Now().UTC()
	for _, game := range games {
		if game.IsCurrentlyFree(now) {
			result.Current++
		} else if game.IsUpcoming(now) {
			result.Upcoming++
		}
	}
	rs.metrics.SetPartitionSize("currentFree", result.Current)
	rs.metrics.SetPartitionSize("upcoming", result.Upcoming)

	backfilled, err := rs.backfillPastRatings(ctx)
	if err != nil {
		return result, err
	}
	result.Backfilled = backfilled

	rs.metrics.SetPartitionSize("past", len(rs.store.Load().Past))

	rs.logger.Infof(providers.TypeApp, "Refresh done: %d current, %d upcoming, %d backfilled",
		result.Current, result.Upcoming, result.Backfilled)
	return result, nil
}

// backfillPastRatings re-enriches past records saved before their ratings
// were available and patches them in place.
func (rs *RefreshService) backfillPastRatings(ctx context.Context) (int, error) {
	pastGames := rs.store.LoadPastWithoutRating()
	if len(pastGames) == 0 {
		return 0, nil
	}

	rs.logger.Infof(providers.TypeApp, "Backfilling ratings for %d past games...", len(pastGames))
	enriched := rs.enricher.EnrichGames(ctx, pastGames)

	patched, err := rs.store.PatchPastRatings(enriched)
	if err != nil {
		return 0, fmt.Errorf("failed to patch past ratings: %w", err)
	}
	if patched > 0 {
		rs.metrics.AddBackfilledRatings(patched)
	}
	return patched, nil
}
