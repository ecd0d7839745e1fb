package rental

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus      = errors.New("invalid rental status")
	ErrMissingOwner       = errors.New("owner id is required")
	ErrNonPositivePrice   = errors.New("price per day must be greater than zero")
	ErrInvalidTransition  = errors.New("rental status transition not allowed")
	ErrAlreadyFinalized   = errors.New("rental is already returned or expired")
	ErrInconsistentDetail = errors.New("rental detail does not belong to header")
)

// Item is the part of a catalog item that a rental snapshots.
type Item struct {
	ID          uuid.UUID
	PricePerDay Money
}

// Detail is the single line item of a rental. Price and duration are frozen at booking time.
type Detail struct {
	id          uuid.UUID
	headerID    uuid.UUID
	bookID      uuid.UUID
	pricePerDay Money
	duration    Duration
	totalAmount Money
}

func ReconstructDetail(id, headerID, bookID uuid.UUID, pricePerDay Money, duration Duration, totalAmount Money) Detail {
	return Detail{
		id:          id,
		headerID:    headerID,
		bookID:      bookID,
		pricePerDay: pricePerDay,
		duration:    duration,
		totalAmount: totalAmount,
	}
}

func (d Detail) ID() uuid.UUID       { return d.id }
func (d Detail) HeaderID() uuid.UUID { return d.headerID }
func (d Detail) BookID() uuid.UUID   { return d.bookID }
func (d Detail) PricePerDay() Money  { return d.pricePerDay }
func (d Detail) Duration() Duration  { return d.duration }
func (d Detail) TotalAmount() Money  { return d.totalAmount }

type Header struct {
	id          uuid.UUID
	ownerID     string
	bookID      uuid.UUID
	createdAt   time.Time
	dueAt       time.Time
	returnedAt  *time.Time
	totalAmount Money
	status      Status
	updatedAt   time.Time
	detail      Detail
}

func NewHeader(ownerID string, item Item, duration Duration, now time.Time) (*Header, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrMissingOwner
	}
	if !item.PricePerDay.IsPositive() {
		return nil, ErrNonPositivePrice
	}
	if duration.Days() == 0 {
		return nil, ErrInvalidDuration
	}

	id := uuid.New()
	total := item.PricePerDay.Mul(duration.Days())

	return &Header{
		id:          id,
		ownerID:     ownerID,
		bookID:      item.ID,
		createdAt:   now,
		dueAt:       duration.DueFrom(now),
		totalAmount: total,
		status:      StatusPending,
		updatedAt:   now,
		detail: Detail{
			id:          uuid.New(),
			headerID:    id,
			bookID:      item.ID,
			pricePerDay: item.PricePerDay,
			duration:    duration,
			totalAmount: total,
		},
	}, nil
}

func ReconstructHeader(
	id uuid.UUID,
	ownerID string,
	createdAt, dueAt time.Time,
	returnedAt *time.Time,
	totalAmount Money,
	status Status,
	updatedAt time.Time,
	detail Detail,
) (*Header, error) {
	if detail.headerID != id {
		return nil, ErrInconsistentDetail
	}
	return &Header{
		id:          id,
		ownerID:     ownerID,
		bookID:      detail.bookID,
		createdAt:   createdAt,
		dueAt:       dueAt,
		returnedAt:  returnedAt,
		totalAmount: totalAmount,
		status:      status,
		updatedAt:   updatedAt,
		detail:      detail,
	}, nil
}

// Confirm moves Pending to Active. Inventory was already debited at creation.
func (h *Header) Confirm(now time.Time) (Status, error) {
	if h.status != StatusPending {
		return h.status, ErrInvalidTransition
	}
	return h.transition(StatusActive, now)
}

// Return moves an open rental to Returned and stamps returnedAt.
func (h *Header) Return(now time.Time) (Status, error) {
	if h.status.IsTerminal() {
		return h.status, ErrAlreadyFinalized
	}
	from, err := h.transition(StatusReturned, now)
	if err != nil {
		return from, err
	}
	returned := now
	h.returnedAt = &returned
	return from, nil
}

// Expire moves Pending to Expired.
func (h *Header) Expire(now time.Time) (Status, error) {
	if h.status != StatusPending {
		return h.status, ErrInvalidTransition
	}
	return h.transition(StatusExpired, now)
}

func (h *Header) transition(next Status, now time.Time) (Status, error) {
	from := h.status
	if !from.CanTransitionTo(next) {
		return from, ErrInvalidTransition
	}
	h.status = next
	h.updatedAt = now
	return from, nil
}

func (h *Header) IsOverdue(now time.Time) bool {
	return h.status == StatusActive && now.After(h.dueAt)
}

// IsStalePending reports whether a pending rental was created strictly before cutoff.
func (h *Header) IsStalePending(cutoff time.Time) bool {
	return h.status == StatusPending && h.createdAt.Before(cutoff)
}

func (h *Header) ID() uuid.UUID          { return h.id }
func (h *Header) OwnerID() string        { return h.ownerID }
func (h *Header) BookID() uuid.UUID      { return h.bookID }
func (h *Header) CreatedAt() time.Time   { return h.createdAt }
func (h *Header) DueAt() time.Time       { return h.dueAt }
func (h *Header) ReturnedAt() *time.Time { return h.returnedAt }
func (h *Header) TotalAmount() Money     { return h.totalAmount }
func (h *Header) Status() Status         { return h.status }
func (h *Header) UpdatedAt() time.Time   { return h.updatedAt }
func (h *Header) Detail() Detail         { return h.detail }
