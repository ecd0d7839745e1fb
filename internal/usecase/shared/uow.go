package shared

import (
	"context"
	"time"

	"book-rental/internal/domain/book"
	"book-rental/internal/domain/rental"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn in one transaction; header, detail, inventory and outbox writes commit or roll back together.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: reads for background workers, outside any transaction
	CommandReads() CommandReads
}

type Tx interface {
	Rentals() RentalRepository
	Inventory() InventoryStore
	Outbox() OutboxRepository
}

type CommandReads interface {
	// ListStalePending returns pending rentals created strictly before cutoff, oldest first.
	ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]StaleRental, error)
}

type RentalRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*rental.Header, error)
	ExistsOpen(ctx context.Context, ownerID string, bookID uuid.UUID) (bool, error)
	// Create persists header and detail together.
	Create(ctx context.Context, h *rental.Header) error
	// UpdateStatus writes h's status only if the stored status is one of expected.
	// Zero matched rows is reported as infra.KindStatusConflict.
	UpdateStatus(ctx context.Context, h *rental.Header, expected []rental.Status) error
}

// InventoryStore owns quantityAvailable. Decrement is a single conditional update so
// concurrent callers can never take the quantity below zero.
type InventoryStore interface {
	Get(ctx context.Context, bookID uuid.UUID) (*book.Book, error)
	DecrementAvailable(ctx context.Context, bookID uuid.UUID) error
	IncrementAvailable(ctx context.Context, bookID uuid.UUID) error
}

type OutboxRepository interface {
	Append(ctx context.Context, event RentalEvent) error
}

// OutboxReader is used by the relay, outside the lifecycle transactions.
type OutboxReader interface {
	ListUnpublished(ctx context.Context, limit int) ([]RentalEvent, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}
