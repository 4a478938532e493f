package internal

import (
	"net/http"

	"fgd/internal/controllers"
	"fgd/internal/providers"
	"fgd/internal/structures"

	"github.com/klauspost/compress/gzhttp"
)

func InitRoutes(gamesController *controllers.GamesController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	// Snapshot payloads are repetitive JSON; serve them gzip-compressed.
	routers.Get("/games", gzhttp.GzipHandler(http.HandlerFunc(gamesController.GetGames)))
	routers.Get("/games/current", gzhttp.GzipHandler(http.HandlerFunc(gamesController.GetCurrent)))
	routers.Get("/games/upcoming", gzhttp.GzipHandler(http.HandlerFunc(gamesController.GetUpcoming)))
	routers.Get("/games/past", gzhttp.GzipHandler(http.HandlerFunc(gamesController.GetPast)))
	return routers
}
