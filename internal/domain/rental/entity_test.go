//go:build unit

package rental_test

import (
	"testing"
	"time"

	"book-rental/internal/domain/rental"
	"book-rental/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.RentalBuilder)
	errIs  error
}

func TestNewHeader(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewRentalBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "owner-1", actual.OwnerID())
		assert.Equal(t, b.BookID, actual.BookID())
		assert.Equal(t, rental.StatusPending, actual.Status())
		assert.Equal(t, b.CreatedAt, actual.CreatedAt())
		assert.Equal(t, b.CreatedAt.AddDate(0, 0, 7), actual.DueAt())
		assert.Nil(t, actual.ReturnedAt())
		assert.Equal(t, int64(1400), actual.TotalAmount().Cents())

		d := actual.Detail()
		assert.Equal(t, actual.ID(), d.HeaderID())
		assert.Equal(t, b.BookID, d.BookID())
		assert.Equal(t, int64(200), d.PricePerDay().Cents())
		assert.Equal(t, 7, d.Duration().Days())
		assert.Equal(t, actual.TotalAmount(), d.TotalAmount())
	})

	t.Run("owner id is kept verbatim", func(t *testing.T) {
		b := builder.NewRentalBuilder().With(func(b *builder.RentalBuilder) { b.OwnerID = " owner-1 " })
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, " owner-1 ", actual.OwnerID())
	})

	t.Run("validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty owner",
				mutate: func(b *builder.RentalBuilder) { b.OwnerID = "" },
				errIs:  rental.ErrMissingOwner,
			},
			{
				name:   "blank owner",
				mutate: func(b *builder.RentalBuilder) { b.OwnerID = "   " },
				errIs:  rental.ErrMissingOwner,
			},
			{
				name:   "zero price",
				mutate: func(b *builder.RentalBuilder) { b.PricePerDayCents = 0 },
				errIs:  rental.ErrNonPositivePrice,
			},
			{
				name:   "minimum duration",
				mutate: func(b *builder.RentalBuilder) { b.DurationDays = 1 },
			},
			{
				name:   "maximum duration",
				mutate: func(b *builder.RentalBuilder) { b.DurationDays = 30 },
			},
			{
				name:   "duration too long",
				mutate: func(b *builder.RentalBuilder) { b.DurationDays = 31 },
				errIs:  rental.ErrInvalidDuration,
			},
			{
				name:   "zero duration",
				mutate: func(b *builder.RentalBuilder) { b.DurationDays = 0 },
				errIs:  rental.ErrInvalidDuration,
			},
		})
	})
}

func TestHeaderTransitions(t *testing.T) {
	now := time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)

	t.Run("confirm pending", func(t *testing.T) {
		h := mustHeader(t, rental.StatusPending)
		from, err := h.Confirm(now)
		require.NoError(t, err)
		assert.Equal(t, rental.StatusPending, from)
		assert.Equal(t, rental.StatusActive, h.Status())
		assert.Equal(t, now, h.UpdatedAt())
	})

	t.Run("confirm is rejected outside pending", func(t *testing.T) {
		for _, s := range []rental.Status{rental.StatusActive, rental.StatusReturned, rental.StatusExpired} {
			h := mustHeader(t, s)
			_, err := h.Confirm(now)
			require.ErrorIs(t, err, rental.ErrInvalidTransition, s.String())
			assert.Equal(t, s, h.Status())
		}
	})

	t.Run("return from pending and active stamps returnedAt", func(t *testing.T) {
		for _, s := range []rental.Status{rental.StatusPending, rental.StatusActive} {
			h := mustHeader(t, s)
			from, err := h.Return(now)
			require.NoError(t, err)
			assert.Equal(t, s, from)
			assert.Equal(t, rental.StatusReturned, h.Status())
			require.NotNil(t, h.ReturnedAt())
			assert.Equal(t, now, *h.ReturnedAt())
		}
	})

	t.Run("return of a finalized rental", func(t *testing.T) {
		for _, s := range []rental.Status{rental.StatusReturned, rental.StatusExpired} {
			h := mustHeader(t, s)
			_, err := h.Return(now)
			require.ErrorIs(t, err, rental.ErrAlreadyFinalized, s.String())
			assert.Equal(t, s, h.Status())
		}
	})

	t.Run("expire only from pending", func(t *testing.T) {
		h := mustHeader(t, rental.StatusPending)
		_, err := h.Expire(now)
		require.NoError(t, err)
		assert.Equal(t, rental.StatusExpired, h.Status())
		assert.Nil(t, h.ReturnedAt())

		for _, s := range []rental.Status{rental.StatusActive, rental.StatusReturned, rental.StatusExpired} {
			h := mustHeader(t, s)
			_, err := h.Expire(now)
			require.ErrorIs(t, err, rental.ErrInvalidTransition, s.String())
		}
	})
}

func TestHeaderPredicates(t *testing.T) {
	b := builder.NewRentalBuilder()
	due := b.CreatedAt.AddDate(0, 0, b.DurationDays)

	active := mustHeader(t, rental.StatusActive)
	assert.False(t, active.IsOverdue(due))
	assert.True(t, active.IsOverdue(due.Add(time.Second)))

	pending := mustHeader(t, rental.StatusPending)
	assert.False(t, pending.IsOverdue(due.Add(time.Hour)))
	assert.False(t, pending.IsStalePending(b.CreatedAt))
	assert.True(t, pending.IsStalePending(b.CreatedAt.Add(time.Nanosecond)))
	assert.False(t, active.IsStalePending(b.CreatedAt.Add(time.Hour)))
}

func TestReconstructHeader(t *testing.T) {
	id := uuid.New()
	detail := rental.ReconstructDetail(uuid.New(), uuid.New(), uuid.New(),
		rental.MustMoney(100), mustDuration(t, 3), rental.MustMoney(300))

	_, err := rental.ReconstructHeader(id, "owner-1", time.Now(), time.Now(), nil,
		rental.MustMoney(300), rental.StatusPending, time.Now(), detail)
	require.ErrorIs(t, err, rental.ErrInconsistentDetail)
}

func TestMoney(t *testing.T) {
	_, err := rental.NewMoney(-1)
	require.ErrorIs(t, err, rental.ErrNegativeMoney)

	m := rental.MustMoney(250)
	assert.Equal(t, int64(750), m.Mul(3).Cents())
	assert.Equal(t, "2.50", m.String())
}

func TestFactoryDuration(t *testing.T) {
	f := rental.NewFactory(nil, 0)

	d, err := f.Duration(0)
	require.NoError(t, err)
	assert.Equal(t, rental.DefaultDurationDays, d.Days())

	d, err = f.Duration(14)
	require.NoError(t, err)
	assert.Equal(t, 14, d.Days())

	_, err = f.Duration(-3)
	require.ErrorIs(t, err, rental.ErrInvalidDuration)
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewRentalBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}

func mustHeader(t *testing.T, status rental.Status) *rental.Header {
	t.Helper()
	h, err := builder.NewRentalBuilder().With(func(b *builder.RentalBuilder) { b.Status = status }).BuildDomain()
	require.NoError(t, err)
	return h
}

func mustDuration(t *testing.T, days int) rental.Duration {
	t.Helper()
	d, err := rental.NewDuration(days)
	require.NoError(t, err)
	return d
}
