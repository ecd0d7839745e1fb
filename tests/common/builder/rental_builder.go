//go:build unit || e2e

package builder

import (
	"time"

	"book-rental/internal/domain/rental"
	reqdto "book-rental/internal/handler/dto/request"
	"book-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

type RentalBuilder struct {
	OwnerID          string
	BookID           uuid.UUID
	BookTitle        string
	BookAuthor       string
	PricePerDayCents int64
	DurationDays     int
	CreatedAt        time.Time
	Status           rental.Status
}

func NewRentalBuilder() *RentalBuilder {
	return &RentalBuilder{
		OwnerID:          "owner-1",
		BookID:           uuid.New(),
		BookTitle:        "The Go Programming Language",
		BookAuthor:       "Alan Donovan",
		PricePerDayCents: 200,
		DurationDays:     7,
		CreatedAt:        time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		Status:           rental.StatusPending,
	}
}

func (r *RentalBuilder) With(mutate func(*RentalBuilder)) *RentalBuilder {
	mutate(r)
	return r
}

// BuildDomain returns a header in Status, reached through the normal transitions.
func (r *RentalBuilder) BuildDomain() (*rental.Header, error) {
	duration, err := rental.NewDuration(r.DurationDays)
	if err != nil {
		return nil, err
	}
	item := rental.Item{ID: r.BookID, PricePerDay: rental.MustMoney(r.PricePerDayCents)}
	h, err := rental.NewHeader(r.OwnerID, item, duration, r.CreatedAt)
	if err != nil {
		return nil, err
	}

	at := r.CreatedAt.Add(time.Minute)
	switch r.Status {
	case rental.StatusActive:
		_, err = h.Confirm(at)
	case rental.StatusReturned:
		_, err = h.Return(at)
	case rental.StatusExpired:
		_, err = h.Expire(at)
	}
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (r *RentalBuilder) BuildView() *queries.RentalView {
	return &queries.RentalView{
		ID:               uuid.New(),
		OwnerID:          r.OwnerID,
		BookID:           r.BookID,
		BookTitle:        r.BookTitle,
		BookAuthor:       r.BookAuthor,
		Status:           r.Status.String(),
		CreatedAt:        r.CreatedAt,
		DueAt:            r.CreatedAt.AddDate(0, 0, r.DurationDays),
		PricePerDayCents: r.PricePerDayCents,
		DurationDays:     r.DurationDays,
		TotalAmountCents: r.PricePerDayCents * int64(r.DurationDays),
	}
}

func (r *RentalBuilder) BuildListItem() *queries.RentalListItem {
	v := r.BuildView()
	return &queries.RentalListItem{
		ID:               v.ID,
		BookID:           v.BookID,
		BookTitle:        v.BookTitle,
		BookAuthor:       v.BookAuthor,
		Status:           v.Status,
		CreatedAt:        v.CreatedAt,
		DueAt:            v.DueAt,
		TotalAmountCents: v.TotalAmountCents,
	}
}

func (r *RentalBuilder) BuildCreateRequestDTO() reqdto.CreateRentalRequest {
	return reqdto.CreateRentalRequest{
		BookID:       r.BookID,
		DurationDays: r.DurationDays,
	}
}
