package eventbus

import (
	"context"
	"log/slog"

	"book-rental/internal/usecase/shared"
)

// LogPublisher is used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, events []shared.RentalEvent) error {
	for _, e := range events {
		p.logger.InfoContext(ctx, "rental event",
			"event_id", e.ID,
			"kind", string(e.Kind),
			"rental_id", e.HeaderID,
			"owner_id", e.OwnerID,
			"book_id", e.BookID,
			"status", e.Status,
		)
	}
	return nil
}

func (p *LogPublisher) Close() error { return nil }
