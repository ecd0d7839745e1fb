package queries

import (
	"time"

	"github.com/google/uuid"
)

// RentalView is everything the confirmation page shows for one rental.
type RentalView struct {
	ID               uuid.UUID
	OwnerID          string
	BookID           uuid.UUID
	BookTitle        string
	BookAuthor       string
	Status           string
	CreatedAt        time.Time
	DueAt            time.Time
	ReturnedAt       *time.Time
	PricePerDayCents int64
	DurationDays     int
	TotalAmountCents int64
	IsOverdue        bool
}

type RentalListItem struct {
	ID               uuid.UUID
	BookID           uuid.UUID
	BookTitle        string
	BookAuthor       string
	Status           string
	CreatedAt        time.Time
	DueAt            time.Time
	ReturnedAt       *time.Time
	TotalAmountCents int64
	IsOverdue        bool
}
