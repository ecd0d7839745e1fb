package shared

import (
	"time"

	"book-rental/internal/domain/rental"

	"github.com/google/uuid"
)

type StaleRental struct {
	ID        uuid.UUID
	OwnerID   string
	BookID    uuid.UUID
	CreatedAt time.Time
}

type EventKind string

const (
	EventRentalCreated   EventKind = "rental.created"
	EventRentalConfirmed EventKind = "rental.confirmed"
	EventRentalReturned  EventKind = "rental.returned"
	EventRentalExpired   EventKind = "rental.expired"
)

// RentalEvent is written to the outbox in the same transaction as the change it describes.
type RentalEvent struct {
	ID          uuid.UUID `json:"id"`
	Kind        EventKind `json:"kind"`
	HeaderID    uuid.UUID `json:"header_id"`
	OwnerID     string    `json:"owner_id"`
	BookID      uuid.UUID `json:"book_id"`
	Status      string    `json:"status"`
	AmountCents int64     `json:"amount_cents"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewRentalEvent(kind EventKind, h *rental.Header) RentalEvent {
	return RentalEvent{
		ID:          uuid.New(),
		Kind:        kind,
		HeaderID:    h.ID(),
		OwnerID:     h.OwnerID(),
		BookID:      h.BookID(),
		Status:      h.Status().String(),
		AmountCents: h.TotalAmount().Cents(),
		OccurredAt:  h.UpdatedAt(),
	}
}
