package components

import (
	"book-rental/internal/domain/rental"
	"book-rental/internal/pkg/clock"
	"book-rental/internal/pkg/config"
	"book-rental/internal/usecase"
	"book-rental/internal/usecase/commands"
	"book-rental/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(clock clock.Clock, cfg config.Config) *rental.Factory {
		return rental.NewFactory(clock, cfg.Rental.DefaultDurationDays)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewRentalCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewRentalQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
