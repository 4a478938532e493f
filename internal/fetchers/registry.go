package fetchers

import (
	"fgd/internal/providers"
	"fgd/internal/structures"
)

// NewRatingFetchers builds the rating source chain in configured order.
// Order matters: the enrichment service gives the first source supplying
// a field precedence over later ones.
func NewRatingFetchers(conf *structures.Config, cache providers.CacheProviderInterface, logger providers.Logger) []RatingFetcher {
	ratingFetchers := make([]RatingFetcher, 0, len(conf.Rating.Sources))

	for _, source := range conf.Rating.Sources {
		switch source {
		case "steam":
			ratingFetchers = append(ratingFetchers, NewSteamFetcher(conf, cache, logger))
		default:
			logger.Warnf(providers.TypeApp, "Unknown rating source %q, skipping", source)
		}
	}

	return ratingFetchers
}
