package relay

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"book-rental/internal/pkg/clock"
	"book-rental/internal/pkg/errs"
	"book-rental/internal/pkg/telemetry"
	"book-rental/internal/usecase/shared"
)

type Publisher interface {
	Publish(ctx context.Context, events []shared.RentalEvent) error
	Close() error
}

// Relay forwards committed outbox events to a Publisher. Delivery is at least once:
// events are marked only after the publisher accepted them.
type Relay struct {
	outbox    shared.OutboxReader
	publisher Publisher
	clock     clock.Clock
	logger    *slog.Logger
	period    time.Duration
	batch     int
}

func New(outbox shared.OutboxReader, publisher Publisher, clk clock.Clock, logger *slog.Logger, period time.Duration, batch int) *Relay {
	if batch <= 0 {
		batch = 100
	}
	if period <= 0 {
		period = 2 * time.Second
	}
	return &Relay{
		outbox:    outbox,
		publisher: publisher,
		clock:     clk,
		logger:    logger.With("component", "outbox_relay"),
		period:    period,
		batch:     batch,
	}
}

func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.RunOnce(ctx); err != nil && ctx.Err() == nil {
				r.logger.Error("outbox relay failed", "error", err.Error())
			}
		}
	}
}

// RunOnce drains batches until the outbox is empty and returns the number of events published.
func (r *Relay) RunOnce(ctx context.Context) (published int, err error) {
	ctx, span := telemetry.Tracer().Start(ctx, "Relay.RunOnce")
	defer func() { telemetry.EndSpan(span, err) }()

	for {
		events, err := r.outbox.ListUnpublished(ctx, r.batch)
		if err != nil {
			return published, errs.Wrap(err, "list unpublished events")
		}
		if len(events) == 0 {
			return published, nil
		}

		if err := r.publisher.Publish(ctx, events); err != nil {
			return published, errs.Wrap(err, "publish rental events")
		}

		ids := make([]uuid.UUID, len(events))
		for i, e := range events {
			ids[i] = e.ID
		}
		if err := r.outbox.MarkPublished(ctx, ids, r.clock.Now()); err != nil {
			return published, errs.Wrap(err, "mark events published")
		}
		published += len(events)

		if len(events) < r.batch {
			return published, nil
		}
	}
}
