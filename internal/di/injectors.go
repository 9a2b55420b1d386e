//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"crewops/internal"
	"crewops/internal/controllers"
	"crewops/internal/providers"
	"crewops/internal/services"
	"crewops/internal/store"
	"crewops/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		store.NewZstdCompressor,
		services.NewSessionService,
		store.NewFileManager,
		store.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
