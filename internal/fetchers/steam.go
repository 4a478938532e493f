package fetchers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"fgd/internal/models"
	"fgd/internal/providers"
	"fgd/internal/structures"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// SteamFetcher resolves ratings through the keyless Steam Store API:
// title search for the app id, appdetails for the Metacritic score,
// appreviews for the user positivity percentage.
type SteamFetcher struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	cache   providers.CacheProviderInterface
	logger  providers.Logger
}

func NewSteamFetcher(conf *structures.Config, cache providers.CacheProviderInterface, logger providers.Logger) RatingFetcher {
	limit := rate.Inf
	if conf.Rating.Steam.RateLimitRPS > 0 {
		limit = rate.Limit(conf.Rating.Steam.RateLimitRPS)
	}

	return &SteamFetcher{
		baseURL: conf.Rating.Steam.BaseURL,
		client:  &http.Client{Timeout: conf.Rating.Steam.Timeout},
		limiter: rate.NewLimiter(limit, 1),
		cache:   cache,
		logger:  logger,
	}
}

func (f *SteamFetcher) Name() string {
	return "steam"
}

func (f *SteamFetcher) FetchRating(ctx context.Context, game models.Game) (*models.Rating, error) {
	if game.Title == "" {
		return nil, nil
	}

	appID, err := f.searchApp(ctx, game.Title)
	if err != nil {
		return nil, err
	}
	if appID == 0 {
		f.logger.Debugf(providers.TypeFetch, "Steam search returned no results for %q", game.Title)
		return nil, nil
	}

	metacritic, err := f.metacriticScore(ctx, appID)
	if err != nil {
		f.logger.Debugf(providers.TypeFetch, "Steam details failed for app %d: %s", appID, err)
	}

	positive, err := f.steamPositive(ctx, appID)
	if err != nil {
		f.logger.Debugf(providers.TypeFetch, "Steam reviews failed for app %d: %s", appID, err)
	}

	if metacritic == nil && positive == nil {
		return nil, nil
	}

	rating, err := models.NewRating(models.RatingParams{Metacritic: metacritic, Steam: positive})
	if err != nil {
		return nil, fmt.Errorf("steam rating for %q: %w", game.Title, err)
	}
	return &rating, nil
}

// searchApp returns the first app id matching the title, 0 when Steam has
// no match. Results are cached; title lookups dominate the request budget.
func (f *SteamFetcher) searchApp(ctx context.Context, title string) (int, error) {
	cacheKey := "steam:search:" + title
	if data, ok := f.cache.Get(cacheKey); ok {
		appID, err := strconv.Atoi(string(data))
		if err == nil {
			return appID, nil
		}
	}

	query := url.Values{}
	query.Set("term", title)
	query.Set("l", "english")
	query.Set("cc", "US")

	var payload struct {
		Items []struct {
			ID int `json:"id"`
		} `json:"items"`
	}
	if err := f.getJSON(ctx, "/api/storesearch/?"+query.Encode(), &payload); err != nil {
		return 0, err
	}

	if len(payload.Items) == 0 {
		return 0, nil
	}

	appID := payload.Items[0].ID
	f.cache.Set(cacheKey, []byte(strconv.Itoa(appID)))
	return appID, nil
}

func (f *SteamFetcher) metacriticScore(ctx context.Context, appID int) (*int, error) {
	query := url.Values{}
	query.Set("appids", strconv.Itoa(appID))

	var payload map[string]struct {
		Success bool `json:"success"`
		Data    struct {
			Metacritic struct {
				Score *int `json:"score"`
			} `json:"metacritic"`
		} `json:"data"`
	}
	if err := f.getJSON(ctx, "/api/appdetails?"+query.Encode(), &payload); err != nil {
		return nil, err
	}

	entry, ok := payload[strconv.Itoa(appID)]
	if !ok || !entry.Success {
		return nil, nil
	}
	return entry.Data.Metacritic.Score, nil
}

func (f *SteamFetcher) steamPositive(ctx context.Context, appID int) (*int, error) {
	var payload struct {
		QuerySummary struct {
			TotalReviews  int `json:"total_reviews"`
			TotalPositive int `json:"total_positive"`
		} `json:"query_summary"`
	}
	if err := f.getJSON(ctx, fmt.Sprintf("/appreviews/%d?json=1&language=all", appID), &payload); err != nil {
		return nil, err
	}

	if payload.QuerySummary.TotalReviews == 0 {
		return nil, nil
	}

	positive := int(math.Round(float64(payload.QuerySummary.TotalPositive) / float64(payload.QuerySummary.TotalReviews) * 100))
	return &positive, nil
}

func (f *SteamFetcher) getJSON(ctx context.Context, path string, out any) error {
	if err := f.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("steam returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
