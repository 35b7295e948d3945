//go:build wireinject
// +build wireinject

package di

import (
	"fragments/internal"
	"fragments/internal/archive"
	"fragments/internal/controllers"
	"fragments/internal/models"
	"fragments/internal/providers"
	"fragments/internal/services"
	"fragments/internal/structures"

	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedStoreProvider,

		services.NewDateWindow,
		models.NewLexicon,
		services.NewFragmentService,
		services.NewSessionClock,
		services.NewLeaderboardService,
		services.NewGameService,

		archive.NewZstdCompressor,
		archive.NewFileManager,
		archive.NewDayArchive,
		wire.Bind(new(services.DayArchiveInterface), new(*archive.DayArchive)),
		archive.NewScheduler,

		controllers.NewGameController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
