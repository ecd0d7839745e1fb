//go:build unit || e2e

package builder

import (
	"time"

	"book-rental/internal/domain/book"
	"book-rental/internal/domain/rental"
	"book-rental/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type BookBuilder struct {
	ID                uuid.UUID
	Title             string
	Author            string
	ISBN              string
	PricePerDayCents  int64
	QuantityAvailable int
	CreatedAt         time.Time
}

func NewBookBuilder() *BookBuilder {
	return &BookBuilder{
		ID:                uuid.New(),
		Title:             "The Go Programming Language",
		Author:            "Alan Donovan",
		ISBN:              "978-0134190440",
		PricePerDayCents:  200,
		QuantityAvailable: 3,
		CreatedAt:         time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *BookBuilder) With(mutate func(*BookBuilder)) *BookBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookBuilder) BuildDomain() *book.Book {
	return book.ReconstructBook(
		b.ID, b.Title, b.Author, b.ISBN,
		rental.MustMoney(b.PricePerDayCents),
		b.QuantityAvailable,
		b.CreatedAt, b.CreatedAt,
	)
}

func (b *BookBuilder) BuildRow() converter.BookRow {
	return converter.BookRow{
		ID:                b.ID,
		Title:             b.Title,
		Author:            b.Author,
		ISBN:              b.ISBN,
		PricePerDayCents:  b.PricePerDayCents,
		QuantityAvailable: b.QuantityAvailable,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.CreatedAt,
	}
}
