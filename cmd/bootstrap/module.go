package bootstrap

import (
	"book-rental/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	TelemetryModule,
	JWTModule,
	components.PersistenceModule,
	components.UseCaseModule,
	WorkerModule,
	components.HandlerModule,
)
