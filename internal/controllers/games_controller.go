package controllers

import (
	"net/http"

	"fgd/internal/providers"
	"fgd/internal/snapshot"

	json "github.com/goccy/go-json"
)

type GamesController struct {
	logger providers.Logger
	store  snapshot.StoreInterface
	cache  providers.CacheProviderInterface
}

func NewGamesController(logger providers.Logger, store snapshot.StoreInterface, cache providers.CacheProviderInterface) *GamesController {
	return &GamesController{
		logger: logger,
		store:  store,
		cache:  cache,
	}
}

// serveFromCacheOrCompute serializes once per snapshot version: cache keys
// carry the document's updated stamp, so a fresh write naturally misses.
func (gc *GamesController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := gc.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gc.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (gc *GamesController) GetGames(w http.ResponseWriter, r *http.Request) {
	doc := gc.store.Load()
	gc.serveFromCacheOrCompute(w, "games:"+doc.Updated, func() (any, error) {
		return doc, nil
	})
}

func (gc *GamesController) GetCurrent(w http.ResponseWriter, r *http.Request) {
	doc := gc.store.Load()
	gc.serveFromCacheOrCompute(w, "current:"+doc.Updated, func() (any, error) {
		return doc.CurrentFree, nil
	})
}

func (gc *GamesController) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	doc := gc.store.Load()
	gc.serveFromCacheOrCompute(w, "upcoming:"+doc.Updated, func() (any, error) {
		return doc.Upcoming, nil
	})
}

func (gc *GamesController) GetPast(w http.ResponseWriter, r *http.Request) {
	doc := gc.store.Load()
	gc.serveFromCacheOrCompute(w, "past:"+doc.Updated, func() (any, error) {
		return doc.Past, nil
	})
}
