//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"fgd/internal"
	"fgd/internal/controllers"
	"fgd/internal/fetchers"
	"fgd/internal/providers"
	"fgd/internal/scheduler"
	"fgd/internal/services"
	"fgd/internal/snapshot"
	"fgd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		snapshot.NewOsFS,
		snapshot.NewStore,
		fetchers.NewEpicFetcher,
		fetchers.NewRatingFetchers,
		services.NewEnrichService,
		services.NewRefreshService,
		scheduler.NewScheduler,
		controllers.NewGamesController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
