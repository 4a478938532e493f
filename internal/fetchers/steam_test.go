package fetchers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"fgd/internal/models"
	"fgd/internal/structures"
	"fgd/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type steamStub struct {
	searchBody  string
	detailsBody string
	reviewsBody string
	searchHits  int32
}

func (s *steamStub) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/storesearch"):
			atomic.AddInt32(&s.searchHits, 1)
			w.Write([]byte(s.searchBody))
		case strings.HasPrefix(r.URL.Path, "/api/appdetails"):
			w.Write([]byte(s.detailsBody))
		case strings.HasPrefix(r.URL.Path, "/appreviews/"):
			w.Write([]byte(s.reviewsBody))
		default:
			t.Errorf("unexpected steam path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newSteamTestFetcher(t *testing.T, stub *steamStub) (*SteamFetcher, *testutil.MockCache) {
	t.Helper()
	server := httptest.NewServer(stub.handler(t))
	t.Cleanup(server.Close)

	conf := &structures.Config{}
	conf.Rating.Steam.BaseURL = server.URL
	conf.Rating.Steam.Timeout = 5 * time.Second

	cache := testutil.NewMockCache()
	fetcher := NewSteamFetcher(conf, cache, &testutil.MockLogger{}).(*SteamFetcher)
	return fetcher, cache
}

func fullStub() *steamStub {
	return &steamStub{
		searchBody:  `{"items":[{"id": 440, "name": "Some Game"}]}`,
		detailsBody: `{"440": {"success": true, "data": {"metacritic": {"score": 88}}}}`,
		reviewsBody: `{"query_summary": {"total_reviews": 200, "total_positive": 184}}`,
	}
}

func TestSteamFetchRating_BothScores(t *testing.T) {
	fetcher, _ := newSteamTestFetcher(t, fullStub())

	rating, err := fetcher.FetchRating(context.Background(), models.Game{ID: "a", Title: "Some Game"})
	require.NoError(t, err)
	require.NotNil(t, rating)

	assert.Equal(t, 88, *rating.Metacritic())
	assert.Equal(t, 92, *rating.Steam())
	assert.Nil(t, rating.Epic())
	assert.Nil(t, rating.Opencritic())
}

func TestSteamFetchRating_EmptyTitle(t *testing.T) {
	fetcher, _ := newSteamTestFetcher(t, fullStub())

	rating, err := fetcher.FetchRating(context.Background(), models.Game{ID: "a"})
	require.NoError(t, err)
	assert.Nil(t, rating)
}

func TestSteamFetchRating_NoSearchResults(t *testing.T) {
	stub := fullStub()
	stub.searchBody = `{"items":[]}`
	fetcher, _ := newSteamTestFetcher(t, stub)

	rating, err := fetcher.FetchRating(context.Background(), models.Game{ID: "a", Title: "Obscure Game"})
	require.NoError(t, err)
	assert.Nil(t, rating)
}

func TestSteamFetchRating_SearchErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	conf := &structures.Config{}
	conf.Rating.Steam.BaseURL = server.URL
	conf.Rating.Steam.Timeout = 5 * time.Second
	fetcher := NewSteamFetcher(conf, testutil.NewMockCache(), &testutil.MockLogger{}).(*SteamFetcher)

	_, err := fetcher.FetchRating(context.Background(), models.Game{ID: "a", Title: "Some Game"})
	assert.Error(t, err)
}

func TestSteamFetchRating_MetacriticAbsent(t *testing.T) {
	stub := fullStub()
	stub.detailsBody = `{"440": {"success": true, "data": {"metacritic": {}}}}`
	fetcher, _ := newSteamTestFetcher(t, stub)

	rating, err := fetcher.FetchRating(context.Background(), models.Game{ID: "a", Title: "Some Game"})
	require.NoError(t, err)
	require.NotNil(t, rating)
	assert.Nil(t, rating.Metacritic())
	assert.Equal(t, 92, *rating.Steam())
}

func TestSteamFetchRating_DetailsNotSuccessful(t *testing.T) {
	stub := fullStub()
	stub.detailsBody = `{"440": {"success": false}}`
	fetcher, _ := newSteamTestFetcher(t, stub)

	rating, err := fetcher.FetchRating(context.Background(), models.Game{ID: "a", Title: "Some Game"})
	require.NoError(t, err)
	require.NotNil(t, rating)
	assert.Nil(t, rating.Metacritic())
}

func TestSteamFetchRating_NoReviews(t *testing.T) {
	stub := fullStub()
	stub.reviewsBody = `{"query_summary": {"total_reviews": 0, "total_positive": 0}}`
	fetcher, _ := newSteamTestFetcher(t, stub)

	rating, err := fetcher.FetchRating(context.Background(), models.Game{ID: "a", Title: "Some Game"})
	require.NoError(t, err)
	require.NotNil(t, rating)
	assert.Nil(t, rating.Steam())
	assert.Equal(t, 88, *rating.Metacritic())
}

func TestSteamFetchRating_BothAbsent(t *testing.T) {
	stub := fullStub()
	stub.detailsBody = `{"440": {"success": false}}`
	stub.reviewsBody = `{"query_summary": {"total_reviews": 0}}`
	fetcher, _ := newSteamTestFetcher(t, stub)

	rating, err := fetcher.FetchRating(context.Background(), models.Game{ID: "a", Title: "Some Game"})
	require.NoError(t, err)
	assert.Nil(t, rating)
}

func TestSteamSearch_CachesAppID(t *testing.T) {
	stub := fullStub()
	fetcher, cache := newSteamTestFetcher(t, stub)

	_, err := fetcher.FetchRating(context.Background(), models.Game{ID: "a", Title: "Some Game"})
	require.NoError(t, err)
	assert.Equal(t, []byte("440"), cache.Data["steam:search:Some Game"])

	_, err = fetcher.FetchRating(context.Background(), models.Game{ID: "a", Title: "Some Game"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&stub.searchHits))
}

func TestSteamPositive_Rounds(t *testing.T) {
	stub := fullStub()
	stub.reviewsBody = `{"query_summary": {"total_reviews": 3, "total_positive": 2}}`
	fetcher, _ := newSteamTestFetcher(t, stub)

	rating, err := fetcher.FetchRating(context.Background(), models.Game{ID: "a", Title: "Some Game"})
	require.NoError(t, err)
	require.NotNil(t, rating)
	// 2/3 -> 66.67 -> 67
	assert.Equal(t, 67, *rating.Steam())
}

func TestNewRatingFetchers_ConfiguredOrder(t *testing.T) {
	conf := &structures.Config{}
	conf.Rating.Sources = []string{"steam"}
	logger := &testutil.MockLogger{}

	list := NewRatingFetchers(conf, testutil.NewMockCache(), logger)
	require.Len(t, list, 1)
	assert.Equal(t, "steam", list[0].Name())
	assert.False(t, logger.HasLevel("warn"))
}

func TestNewRatingFetchers_UnknownSourceSkipped(t *testing.T) {
	conf := &structures.Config{}
	conf.Rating.Sources = []string{"gamespot", "steam"}
	logger := &testutil.MockLogger{}

	list := NewRatingFetchers(conf, testutil.NewMockCache(), logger)
	require.Len(t, list, 1)
	assert.Equal(t, "steam", list[0].Name())
	assert.True(t, logger.HasLevel("warn"))
}
