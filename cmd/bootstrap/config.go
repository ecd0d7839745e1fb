package bootstrap

import (
	"book-rental/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	ConfigSections,
)

// ConfigSections exposes the parts of Config the workers read. Test apps that
// supply their own Config include it directly.
var ConfigSections = fx.Provide(
	func(c config.Config) config.ReclaimerConfig { return c.Reclaimer },
	func(c config.Config) config.KafkaConfig { return c.Kafka },
)
