package bootstrap

import (
	"context"
	"log/slog"

	"book-rental/internal/pkg/config"
	"book-rental/internal/pkg/telemetry"

	"go.uber.org/fx"
)

var TelemetryModule = fx.Module("telemetry",
	fx.Invoke(SetupTelemetry),
)

func SetupTelemetry(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) error {
	shutdown, err := telemetry.Setup(context.Background(), cfg.Telemetry)
	if err != nil {
		return err
	}
	if cfg.Telemetry.OTLPEndpoint != "" {
		logger.Info("OpenTelemetry export enabled", "endpoint", cfg.Telemetry.OTLPEndpoint)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return shutdown(ctx)
		},
	})
	return nil
}
