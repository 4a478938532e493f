package services

import (
	"context"
	"errors"
	"testing"

	"fgd/internal/fetchers"
	"fgd/internal/models"
	"fgd/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func mustRating(t *testing.T, p models.RatingParams) *models.Rating {
	t.Helper()
	r, err := models.NewRating(p)
	require.NoError(t, err)
	return &r
}

func newEnricher(t *testing.T, ratingFetchers ...fetchers.RatingFetcher) (*EnrichService, *testutil.MockLogger, *testutil.MockMetrics) {
	t.Helper()
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	es := NewEnrichService(ratingFetchers, logger, metrics).(*EnrichService)
	return es, logger, metrics
}

func TestFetchRating_SingleSource(t *testing.T) {
	game := models.Game{ID: "a", Title: "Game A"}
	es, _, _ := newEnricher(t, &testutil.MockRatingFetcher{
		SourceName: "steam",
		Ratings:    map[string]*models.Rating{"a": mustRating(t, models.RatingParams{Steam: intPtr(92)})},
	})

	rating := es.FetchRating(context.Background(), game)

	require.NotNil(t, rating)
	assert.Equal(t, 92, *rating.Steam())
	assert.Nil(t, rating.Metacritic())
}

func TestFetchRating_FirstSourceWinsPerField(t *testing.T) {
	game := models.Game{ID: "a", Title: "Game A"}
	es, _, _ := newEnricher(t,
		&testutil.MockRatingFetcher{
			SourceName: "first",
			Ratings:    map[string]*models.Rating{"a": mustRating(t, models.RatingParams{Steam: intPtr(90)})},
		},
		&testutil.MockRatingFetcher{
			SourceName: "second",
			Ratings:    map[string]*models.Rating{"a": mustRating(t, models.RatingParams{Steam: intPtr(10), Metacritic: intPtr(70)})},
		},
	)

	rating := es.FetchRating(context.Background(), game)

	require.NotNil(t, rating)
	// steam came from the first source, metacritic filled in from the second
	assert.Equal(t, 90, *rating.Steam())
	assert.Equal(t, 70, *rating.Metacritic())
}

func TestFetchRating_FailingSourceSkipped(t *testing.T) {
	game := models.Game{ID: "a", Title: "Game A"}
	es, logger, metrics := newEnricher(t,
		&testutil.MockRatingFetcher{SourceName: "broken", Err: errors.New("timeout")},
		&testutil.MockRatingFetcher{
			SourceName: "steam",
			Ratings:    map[string]*models.Rating{"a": mustRating(t, models.RatingParams{Steam: intPtr(80)})},
		},
	)

	rating := es.FetchRating(context.Background(), game)

	require.NotNil(t, rating)
	assert.Equal(t, 80, *rating.Steam())
	assert.True(t, logger.HasLevel("warn"))
	assert.Equal(t, 1, metrics.RatingFailures["broken"])
}

func TestFetchRating_AllSourcesEmpty(t *testing.T) {
	game := models.Game{ID: "a", Title: "Game A"}
	es, _, _ := newEnricher(t,
		&testutil.MockRatingFetcher{SourceName: "steam"},
		&testutil.MockRatingFetcher{SourceName: "other"},
	)

	assert.Nil(t, es.FetchRating(context.Background(), game))
}

func TestFetchRating_NoFetchers(t *testing.T) {
	es, _, _ := newEnricher(t)
	assert.Nil(t, es.FetchRating(context.Background(), models.Game{ID: "a"}))
}

func TestEnrichGames_AttachesRatings(t *testing.T) {
	games := []models.Game{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}
	es, _, _ := newEnricher(t, &testutil.MockRatingFetcher{
		SourceName: "steam",
		Ratings:    map[string]*models.Rating{"a": mustRating(t, models.RatingParams{Steam: intPtr(92)})},
	})

	enriched := es.EnrichGames(context.Background(), games)

	require.Len(t, enriched, 2)
	require.NotNil(t, enriched[0].Rating)
	assert.Equal(t, 92, *enriched[0].Rating.Steam())
	assert.Nil(t, enriched[1].Rating)
	// Input list is untouched.
	assert.Nil(t, games[0].Rating)
}

func TestEnrichGames_Empty(t *testing.T) {
	es, _, _ := newEnricher(t)
	assert.Empty(t, es.EnrichGames(context.Background(), nil))
}
