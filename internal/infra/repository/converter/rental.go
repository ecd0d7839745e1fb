package converter

import (
	"fmt"
	"time"

	"book-rental/internal/domain/book"
	"book-rental/internal/domain/rental"

	"github.com/google/uuid"
)

// RentalRow is one rental_headers row joined with its rental_details row.
type RentalRow struct {
	ID               uuid.UUID
	OwnerID          string
	Status           string
	CreatedAt        time.Time
	DueAt            time.Time
	ReturnedAt       *time.Time
	TotalAmountCents int64
	UpdatedAt        time.Time

	DetailID         uuid.UUID
	BookID           uuid.UUID
	PricePerDayCents int64
	DurationDays     int
	DetailTotalCents int64
}

type BookRow struct {
	ID                uuid.UUID
	Title             string
	Author            string
	ISBN              string
	PricePerDayCents  int64
	QuantityAvailable int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func RentalToDomain(row RentalRow) (*rental.Header, error) {
	status, err := rental.ParseStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("rental %s: %w", row.ID, err)
	}
	duration, err := rental.NewDuration(row.DurationDays)
	if err != nil {
		return nil, fmt.Errorf("rental %s: %w", row.ID, err)
	}
	price, err := rental.NewMoney(row.PricePerDayCents)
	if err != nil {
		return nil, fmt.Errorf("rental %s: %w", row.ID, err)
	}
	total, err := rental.NewMoney(row.TotalAmountCents)
	if err != nil {
		return nil, fmt.Errorf("rental %s: %w", row.ID, err)
	}
	detailTotal, err := rental.NewMoney(row.DetailTotalCents)
	if err != nil {
		return nil, fmt.Errorf("rental %s: %w", row.ID, err)
	}

	detail := rental.ReconstructDetail(row.DetailID, row.ID, row.BookID, price, duration, detailTotal)
	return rental.ReconstructHeader(
		row.ID,
		row.OwnerID,
		row.CreatedAt,
		row.DueAt,
		row.ReturnedAt,
		total,
		status,
		row.UpdatedAt,
		detail,
	)
}

func BookToDomain(row BookRow) (*book.Book, error) {
	price, err := rental.NewMoney(row.PricePerDayCents)
	if err != nil {
		return nil, fmt.Errorf("book %s: %w", row.ID, err)
	}
	return book.ReconstructBook(
		row.ID,
		row.Title,
		row.Author,
		row.ISBN,
		price,
		row.QuantityAvailable,
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}
