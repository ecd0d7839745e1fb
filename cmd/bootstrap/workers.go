package bootstrap

import (
	"context"
	"log/slog"
	"sync"

	"book-rental/internal/infra/eventbus"
	"book-rental/internal/pkg/clock"
	"book-rental/internal/pkg/config"
	"book-rental/internal/usecase/commands"
	"book-rental/internal/usecase/reclaimer"
	"book-rental/internal/usecase/relay"
	"book-rental/internal/usecase/shared"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("workers",
	fx.Provide(
		NewReclaimer,
		func(r *reclaimer.Reclaimer) reclaimer.Runner { return r },
		NewPublisher,
		NewRelay,
	),
	fx.Invoke(StartWorkers),
)

func NewReclaimer(uow shared.UnitOfWork, cmds commands.RentalCommands, clk clock.Clock, logger *slog.Logger, cfg config.ReclaimerConfig) *reclaimer.Reclaimer {
	return reclaimer.New(uow.CommandReads(), cmds, clk, logger, cfg)
}

func NewPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (relay.Publisher, error) {
	var pub relay.Publisher
	if cfg.Kafka.Enabled() {
		kp, err := eventbus.NewKafkaPublisher(cfg.Kafka, cfg.Telemetry.ServiceName)
		if err != nil {
			return nil, err
		}
		logger.Info("publishing rental events to kafka", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
		pub = kp
	} else {
		logger.Info("no kafka brokers configured, rental events are logged")
		pub = eventbus.NewLogPublisher(logger)
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub, nil
}

func NewRelay(outbox shared.OutboxReader, pub relay.Publisher, clk clock.Clock, logger *slog.Logger, cfg config.KafkaConfig) *relay.Relay {
	return relay.New(outbox, pub, clk, logger, cfg.RelayPeriod, cfg.RelayBatch)
}

func StartWorkers(lc fx.Lifecycle, cfg config.Config, rc *reclaimer.Reclaimer, rl *relay.Relay, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			if cfg.Reclaimer.Enabled {
				logger.Info("starting reclaimer",
					"interval", cfg.Reclaimer.Interval,
					"pending_timeout", cfg.Reclaimer.PendingTimeout,
				)
				wg.Add(1)
				go func() {
					defer wg.Done()
					rc.Run(ctx)
				}()
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				rl.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
