package book

import (
	"errors"
	"strings"
	"time"

	"book-rental/internal/domain/rental"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle       = errors.New("book title cannot be empty")
	ErrTitleTooLong     = errors.New("book title is too long (max 255 characters)")
	ErrNegativeQuantity = errors.New("quantity available cannot be negative")
	ErrNonPositivePrice = errors.New("price per day must be greater than zero")
)

const (
	MaxTitleLength = 255
)

// Book is a catalog item. The catalog is managed elsewhere; the rental core only reads it
// and moves quantityAvailable through the inventory store.
type Book struct {
	id                uuid.UUID
	title             string
	author            string
	isbn              string
	pricePerDay       rental.Money
	quantityAvailable int
	createdAt         time.Time
	updatedAt         time.Time
}

func NewBook(id uuid.UUID, title, author, isbn string, pricePerDay rental.Money, quantityAvailable int) (*Book, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if !pricePerDay.IsPositive() {
		return nil, ErrNonPositivePrice
	}
	if quantityAvailable < 0 {
		return nil, ErrNegativeQuantity
	}
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Book{
		id:                id,
		title:             strings.TrimSpace(title),
		author:            strings.TrimSpace(author),
		isbn:              strings.TrimSpace(isbn),
		pricePerDay:       pricePerDay,
		quantityAvailable: quantityAvailable,
	}, nil
}

func ReconstructBook(
	id uuid.UUID,
	title, author, isbn string,
	pricePerDay rental.Money,
	quantityAvailable int,
	createdAt, updatedAt time.Time,
) *Book {
	return &Book{
		id:                id,
		title:             title,
		author:            author,
		isbn:              isbn,
		pricePerDay:       pricePerDay,
		quantityAvailable: quantityAvailable,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

func (b *Book) InStock() bool {
	return b.quantityAvailable > 0
}

// Item snapshots the fields a rental copies at booking time.
func (b *Book) Item() rental.Item {
	return rental.Item{ID: b.id, PricePerDay: b.pricePerDay}
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func (b *Book) ID() uuid.UUID             { return b.id }
func (b *Book) Title() string             { return b.title }
func (b *Book) Author() string            { return b.author }
func (b *Book) ISBN() string              { return b.isbn }
func (b *Book) PricePerDay() rental.Money { return b.pricePerDay }
func (b *Book) QuantityAvailable() int    { return b.quantityAvailable }
func (b *Book) CreatedAt() time.Time      { return b.createdAt }
func (b *Book) UpdatedAt() time.Time      { return b.updatedAt }
