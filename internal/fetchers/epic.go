package fetchers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"fgd/internal/models"
	"fgd/internal/providers"
	"fgd/internal/structures"

	json "github.com/goccy/go-json"
)

// EpicFetcher pulls the free-games promotions feed from the Epic Games
// Store. The response shape is quirky; all extraction fallbacks below
// exist because real payloads exercise them.
type EpicFetcher struct {
	baseURL string
	locale  string
	country string
	client  *http.Client
	logger  providers.Logger
}

func NewEpicFetcher(conf *structures.Config, logger providers.Logger) GameFetcher {
	return &EpicFetcher{
		baseURL: conf.Epic.BaseURL,
		locale:  conf.Epic.Locale,
		country: conf.Epic.Country,
		client:  &http.Client{Timeout: conf.Epic.Timeout},
		logger:  logger,
	}
}

type epicResponse struct {
	Data struct {
		Catalog struct {
			SearchStore struct {
				Elements []epicElement `json:"elements"`
			} `json:"searchStore"`
		} `json:"Catalog"`
	} `json:"data"`
}

type epicElement struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Namespace   string          `json:"namespace"`
	OfferType   string          `json:"offerType"`
	ProductSlug string          `json:"productSlug"`
	URLSlug     string          `json:"urlSlug"`
	KeyImages   []epicKeyImage  `json:"keyImages"`
	Categories  []epicCategory  `json:"categories"`
	Tags        []epicTag       `json:"tags"`
	CatalogNs   *epicCatalogNs  `json:"catalogNs"`
	Promotions  *epicPromotions `json:"promotions"`
}

type epicKeyImage struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type epicCategory struct {
	Path string `json:"path"`
}

type epicTag struct {
	Name string `json:"name"`
}

type epicCatalogNs struct {
	Mappings []epicMapping `json:"mappings"`
}

type epicMapping struct {
	PageSlug string `json:"pageSlug"`
}

type epicPromotions struct {
	PromotionalOffers         []epicOfferGroup `json:"promotionalOffers"`
	UpcomingPromotionalOffers []epicOfferGroup `json:"upcomingPromotionalOffers"`
}

type epicOfferGroup struct {
	PromotionalOffers []epicOffer `json:"promotionalOffers"`
}

type epicOffer struct {
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	DiscountSetting struct {
		DiscountPercentage *int `json:"discountPercentage"`
	} `json:"discountSetting"`
}

func (f *EpicFetcher) FetchFreeGames(ctx context.Context) ([]models.Game, error) {
	query := url.Values{}
	query.Set("locale", f.locale)
	query.Set("country", f.country)
	query.Set("allowCountries", f.country)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("epic promotions request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("epic promotions returned status %d", resp.StatusCode)
	}

	var payload epicResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("epic promotions decode failed: %w", err)
	}

	games := make([]models.Game, 0)
	for _, element := range payload.Data.Catalog.SearchStore.Elements {
		game, ok := f.toGame(element)
		if ok {
			games = append(games, game)
		}
	}
	return games, nil
}

func (f *EpicFetcher) toGame(element epicElement) (models.Game, bool) {
	if element.Promotions == nil {
		return models.Game{}, false
	}

	period, ok := f.extractFreePeriod(element)
	if !ok {
		return models.Game{}, false
	}

	if strings.TrimSpace(element.ID) == "" {
		f.logger.Warnf(providers.TypeFetch, "Game with empty id detected, title: %q", element.Title)
		return models.Game{}, false
	}

	slug := extractSlug(element)

	return models.Game{
		ID:         element.ID,
		Slug:       slug,
		Namespace:  element.Namespace,
		Title:      element.Title,
		Thumbnail:  extractThumbnail(element),
		EpicURL:    f.storeURL(element, slug),
		FreePeriod: period,
		Genres:     extractGenres(element),
	}, true
}

// extractFreePeriod scans current and upcoming offer groups for a fully
// free offer. discountPercentage is the price multiplier left after the
// promotion: 0 means 100% off, anything else is a plain discount and not
// a free game.
func (f *EpicFetcher) extractFreePeriod(element epicElement) (models.FreePeriod, bool) {
	groups := append([]epicOfferGroup{}, element.Promotions.PromotionalOffers...)
	groups = append(groups, element.Promotions.UpcomingPromotionalOffers...)

	for _, group := range groups {
		for _, offer := range group.PromotionalOffers {
			if offer.DiscountSetting.DiscountPercentage == nil || *offer.DiscountSetting.DiscountPercentage != 0 {
				continue
			}
			if offer.StartDate == "" || offer.EndDate == "" {
				continue
			}

			start, err := time.Parse(time.RFC3339, offer.StartDate)
			if err != nil {
				f.logger.Warnf(providers.TypeFetch, "Failed to parse offer start %q: %s", offer.StartDate, err)
				continue
			}
			end, err := time.Parse(time.RFC3339, offer.EndDate)
			if err != nil {
				f.logger.Warnf(providers.TypeFetch, "Failed to parse offer end %q: %s", offer.EndDate, err)
				continue
			}

			period, err := models.NewFreePeriod(start, end)
			if err != nil {
				f.logger.Warnf(providers.TypeFetch, "Invalid free period for %q: %s", element.Title, err)
				continue
			}
			return period, true
		}
	}

	return models.FreePeriod{}, false
}

// extractSlug tries the slug sources in order of reliability:
// catalogNs mapping, then productSlug, then urlSlug.
func extractSlug(element epicElement) string {
	if element.CatalogNs != nil && len(element.CatalogNs.Mappings) > 0 {
		if pageSlug := element.CatalogNs.Mappings[0].PageSlug; pageSlug != "" {
			return pageSlug
		}
	}

	productSlug := element.ProductSlug
	if productSlug != "" && productSlug != "None" && productSlug != "[]" {
		return strings.TrimSuffix(productSlug, "/home")
	}

	// urlSlug is the last resort: skip mystery-game placeholders and bare
	// 32-hex offer ids.
	urlSlug := element.URLSlug
	if urlSlug != "" && !strings.HasPrefix(urlSlug, "mysterygame") && !isHexID(urlSlug) {
		return urlSlug
	}

	return ""
}

func isHexID(s string) bool {
	if len(s) != 32 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func (f *EpicFetcher) storeURL(element epicElement, slug string) string {
	if slug == "" {
		return ""
	}

	pathPart := "p"
	if element.OfferType == "BUNDLE" {
		pathPart = "bundles"
	} else {
		for _, category := range element.Categories {
			if category.Path == "bundles" {
				pathPart = "bundles"
				break
			}
		}
	}

	return fmt.Sprintf("https://store.epicgames.com/%s/%s/%s", f.locale, pathPart, slug)
}

func extractThumbnail(element epicElement) string {
	for _, image := range element.KeyImages {
		if image.Type == "OfferImageWide" {
			return image.URL
		}
	}
	if len(element.KeyImages) > 0 {
		return element.KeyImages[0].URL
	}
	return ""
}

// genreKeywords filters the free-form tags field when the categories
// field carries no genre paths.
var genreKeywords = map[string]struct{}{
	"action": {}, "adventure": {}, "rpg": {}, "puzzle": {}, "strategy": {},
	"simulation": {}, "sports": {}, "racing": {}, "shooter": {}, "platformer": {},
	"horror": {}, "survival": {}, "indie": {}, "casual": {}, "arcade": {},
	"fighting": {}, "roguelike": {}, "open world": {}, "sandbox": {},
}

func extractGenres(element epicElement) []models.Genre {
	genres := make([]models.Genre, 0)
	seen := make(map[string]struct{})

	for _, category := range element.Categories {
		if !strings.HasPrefix(category.Path, "genre/") {
			continue
		}
		name := titleCase(strings.ReplaceAll(strings.TrimPrefix(category.Path, "genre/"), "-", " "))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		genres = append(genres, models.Genre{ID: len(genres), Name: name})
		seen[name] = struct{}{}
	}

	if len(genres) > 0 {
		return genres
	}

	for _, tag := range element.Tags {
		if _, ok := genreKeywords[strings.ToLower(tag.Name)]; !ok {
			continue
		}
		name := titleCase(tag.Name)
		if _, dup := seen[name]; dup {
			continue
		}
		genres = append(genres, models.Genre{ID: len(genres), Name: name})
		seen[name] = struct{}{}
	}

	return genres
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
