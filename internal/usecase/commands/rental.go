package commands

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"book-rental/internal/domain/rental"
	"book-rental/internal/infra"
	"book-rental/internal/pkg/clock"
	"book-rental/internal/pkg/errs"
	"book-rental/internal/pkg/telemetry"
	"book-rental/internal/usecase/shared"
)

// RentalCommands is the only path that mutates rental status or book inventory.
type RentalCommands interface {
	Create(ctx context.Context, ownerID string, bookID uuid.UUID, durationDays int) (*rental.Header, error)
	Confirm(ctx context.Context, headerID uuid.UUID) error
	Return(ctx context.Context, headerID uuid.UUID) error
	// Expire reports whether this call moved the rental to Expired.
	// Anything other than a pending rental is left untouched.
	Expire(ctx context.Context, headerID uuid.UUID) (bool, error)
}

type rentalCommandsImpl struct {
	uow     shared.UnitOfWork
	factory *rental.Factory
	clock   clock.Clock
	ops     metric.Int64Counter
}

func NewRentalCommands(uow shared.UnitOfWork, factory *rental.Factory, clk clock.Clock) RentalCommands {
	ops, err := telemetry.Meter().Int64Counter(
		"rental.operations",
		metric.WithDescription("Rental lifecycle operations by outcome"),
	)
	if err != nil {
		slog.Warn("failed to create rental operations counter", "error", err.Error())
	}
	return &rentalCommandsImpl{
		uow:     uow,
		factory: factory,
		clock:   clk,
		ops:     ops,
	}
}

func (c *rentalCommandsImpl) Create(ctx context.Context, ownerID string, bookID uuid.UUID, durationDays int) (_ *rental.Header, err error) {
	ctx, span := telemetry.Tracer().Start(ctx, "RentalCommands.Create",
		trace.WithAttributes(attribute.String("book.id", bookID.String())))
	defer func() {
		telemetry.EndSpan(span, err)
		c.record(ctx, "create", err)
	}()

	if strings.TrimSpace(ownerID) == "" {
		return nil, errs.ErrUnauthenticated
	}
	duration, err := c.factory.Duration(durationDays)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidDuration)
	}

	var created *rental.Header
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		exists, err := tx.Rentals().ExistsOpen(ctx, ownerID, bookID)
		if err != nil {
			return err
		}
		if exists {
			return errs.ErrDuplicateActiveReservation
		}

		b, err := tx.Inventory().Get(ctx, bookID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrItemNotFound)
			}
			return err
		}
		if !b.InStock() {
			return errs.ErrOutOfStock
		}

		h, err := rental.NewHeader(ownerID, b.Item(), duration, c.clock.Now())
		if err != nil {
			return headerError(err)
		}
		if err := tx.Rentals().Create(ctx, h); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrDuplicateActiveReservation)
			}
			return err
		}
		// Another transaction may have taken the last copy since Get.
		if err := tx.Inventory().DecrementAvailable(ctx, bookID); err != nil {
			if infra.IsKind(err, infra.KindInsufficientStock) {
				return errs.Mark(err, errs.ErrOutOfStock)
			}
			return err
		}
		if err := tx.Outbox().Append(ctx, shared.NewRentalEvent(shared.EventRentalCreated, h)); err != nil {
			return err
		}

		created = h
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	span.SetAttributes(attribute.String("rental.id", created.ID().String()))
	slog.InfoContext(ctx, "rental created",
		"rental_id", created.ID(),
		"owner_id", created.OwnerID(),
		"book_id", created.BookID(),
		"due_at", created.DueAt(),
		"total_cents", created.TotalAmount().Cents(),
	)
	return created, nil
}

func (c *rentalCommandsImpl) Confirm(ctx context.Context, headerID uuid.UUID) (err error) {
	ctx, span := c.startHeaderSpan(ctx, "RentalCommands.Confirm", headerID)
	defer func() {
		telemetry.EndSpan(span, err)
		c.record(ctx, "confirm", err)
	}()

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		h, err := findHeader(ctx, tx, headerID)
		if err != nil {
			return err
		}
		if _, err := h.Confirm(c.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrInvalidTransition)
		}
		if err := tx.Rentals().UpdateStatus(ctx, h, rental.SourcesOf(rental.StatusActive)); err != nil {
			if infra.IsKind(err, infra.KindStatusConflict) {
				return errs.Mark(err, errs.ErrInvalidTransition)
			}
			return err
		}
		return tx.Outbox().Append(ctx, shared.NewRentalEvent(shared.EventRentalConfirmed, h))
	})
	if err != nil {
		return classify(err)
	}

	slog.InfoContext(ctx, "rental confirmed", "rental_id", headerID)
	return nil
}

func (c *rentalCommandsImpl) Return(ctx context.Context, headerID uuid.UUID) (err error) {
	ctx, span := c.startHeaderSpan(ctx, "RentalCommands.Return", headerID)
	defer func() {
		telemetry.EndSpan(span, err)
		c.record(ctx, "return", err)
	}()

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		h, err := findHeader(ctx, tx, headerID)
		if err != nil {
			return err
		}
		if _, err := h.Return(c.clock.Now()); err != nil {
			if errs.Is(err, rental.ErrAlreadyFinalized) {
				return errs.Mark(err, errs.ErrAlreadyFinalized)
			}
			return errs.Mark(err, errs.ErrInvalidTransition)
		}
		// Pending and Active may both be returned, so a concurrent confirm does not
		// make this update lose; only a terminal status does.
		if err := tx.Rentals().UpdateStatus(ctx, h, rental.SourcesOf(rental.StatusReturned)); err != nil {
			if infra.IsKind(err, infra.KindStatusConflict) {
				return errs.Mark(err, errs.ErrAlreadyFinalized)
			}
			return err
		}
		if err := tx.Inventory().IncrementAvailable(ctx, h.BookID()); err != nil {
			return err
		}
		return tx.Outbox().Append(ctx, shared.NewRentalEvent(shared.EventRentalReturned, h))
	})
	if err != nil {
		return classify(err)
	}

	slog.InfoContext(ctx, "rental returned", "rental_id", headerID)
	return nil
}

func (c *rentalCommandsImpl) Expire(ctx context.Context, headerID uuid.UUID) (expired bool, err error) {
	ctx, span := c.startHeaderSpan(ctx, "RentalCommands.Expire", headerID)
	defer func() {
		span.SetAttributes(attribute.Bool("rental.expired", expired))
		telemetry.EndSpan(span, err)
		c.record(ctx, "expire", err)
	}()

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expired = false
		h, err := findHeader(ctx, tx, headerID)
		if err != nil {
			return err
		}
		if _, err := h.Expire(c.clock.Now()); err != nil {
			if errs.Is(err, rental.ErrInvalidTransition) {
				// no longer pending
				return nil
			}
			return err
		}
		if err := tx.Rentals().UpdateStatus(ctx, h, rental.SourcesOf(rental.StatusExpired)); err != nil {
			if infra.IsKind(err, infra.KindStatusConflict) {
				// confirmed or returned after the scan picked it up
				return nil
			}
			return err
		}
		if err := tx.Inventory().IncrementAvailable(ctx, h.BookID()); err != nil {
			return err
		}
		if err := tx.Outbox().Append(ctx, shared.NewRentalEvent(shared.EventRentalExpired, h)); err != nil {
			return err
		}
		expired = true
		return nil
	})
	if err != nil {
		return false, classify(err)
	}

	if expired {
		slog.InfoContext(ctx, "rental expired", "rental_id", headerID)
	}
	return expired, nil
}

func findHeader(ctx context.Context, tx shared.Tx, id uuid.UUID) (*rental.Header, error) {
	h, err := tx.Rentals().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrNotFound)
		}
		return nil, err
	}
	return h, nil
}

func (c *rentalCommandsImpl) startHeaderSpan(ctx context.Context, name string, id uuid.UUID) (context.Context, trace.Span) {
	return telemetry.Tracer().Start(ctx, name,
		trace.WithAttributes(attribute.String("rental.id", id.String())))
}

func (c *rentalCommandsImpl) record(ctx context.Context, op string, err error) {
	if c.ops == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = kindName(err)
	}
	c.ops.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("outcome", outcome),
	))
}
