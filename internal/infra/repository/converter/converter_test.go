//go:build unit

package converter_test

import (
	"testing"
	"time"

	"book-rental/internal/domain/rental"
	"book-rental/internal/infra/repository/converter"
	"book-rental/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rentalRow() converter.RentalRow {
	created := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	return converter.RentalRow{
		ID:               uuid.New(),
		OwnerID:          "owner-1",
		Status:           "active",
		CreatedAt:        created,
		DueAt:            created.AddDate(0, 0, 7),
		TotalAmountCents: 1400,
		UpdatedAt:        created.Add(time.Minute),
		DetailID:         uuid.New(),
		BookID:           uuid.New(),
		PricePerDayCents: 200,
		DurationDays:     7,
		DetailTotalCents: 1400,
	}
}

func TestRentalToDomain(t *testing.T) {
	row := rentalRow()

	h, err := converter.RentalToDomain(row)
	require.NoError(t, err)

	assert.Equal(t, row.ID, h.ID())
	assert.Equal(t, rental.StatusActive, h.Status())
	assert.Equal(t, row.BookID, h.BookID())
	assert.Equal(t, row.DetailID, h.Detail().ID())
	assert.Equal(t, 7, h.Detail().Duration().Days())
	assert.Equal(t, int64(1400), h.TotalAmount().Cents())
	assert.Nil(t, h.ReturnedAt())
}

func TestRentalToDomain_Invalid(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*converter.RentalRow)
	}{
		{"unknown status", func(r *converter.RentalRow) { r.Status = "lost" }},
		{"duration out of range", func(r *converter.RentalRow) { r.DurationDays = 45 }},
		{"negative price", func(r *converter.RentalRow) { r.PricePerDayCents = -1 }},
		{"negative total", func(r *converter.RentalRow) { r.TotalAmountCents = -5 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			row := rentalRow()
			tc.mutate(&row)

			_, err := converter.RentalToDomain(row)
			require.Error(t, err)
			assert.Contains(t, err.Error(), row.ID.String())
		})
	}
}

func TestBookToDomain(t *testing.T) {
	row := builder.NewBookBuilder().BuildRow()

	b, err := converter.BookToDomain(row)
	require.NoError(t, err)
	assert.Equal(t, row.ID, b.ID())
	assert.Equal(t, row.Title, b.Title())
	assert.Equal(t, row.PricePerDayCents, b.PricePerDay().Cents())
	assert.Equal(t, row.QuantityAvailable, b.QuantityAvailable())

	row.PricePerDayCents = -100
	_, err = converter.BookToDomain(row)
	assert.Error(t, err)
}
