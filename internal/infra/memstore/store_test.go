//go:build unit

package memstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"book-rental/internal/domain/book"
	"book-rental/internal/domain/rental"
	"book-rental/internal/infra"
	"book-rental/internal/infra/memstore"
	"book-rental/internal/pkg/clock"
	"book-rental/internal/usecase/shared"
	"book-rental/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

func newStore(t *testing.T) (*memstore.Store, *book.Book) {
	t.Helper()
	store := memstore.NewStore(clock.NewMockClock(base))
	b := builder.NewBookBuilder().BuildDomain()
	store.PutBook(b)
	return store, b
}

func insert(t *testing.T, store *memstore.Store, rb *builder.RentalBuilder) *rental.Header {
	t.Helper()
	h, err := rb.BuildDomain()
	require.NoError(t, err)
	err = store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		return tx.Rentals().Create(ctx, h)
	})
	require.NoError(t, err)
	return h
}

func TestWithin_RollsBackOnError(t *testing.T) {
	store, b := newStore(t)
	h, err := builder.NewRentalBuilder().With(func(r *builder.RentalBuilder) { r.BookID = b.ID() }).BuildDomain()
	require.NoError(t, err)

	errAbort := errors.New("abort")
	err = store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		require.NoError(t, tx.Inventory().DecrementAvailable(ctx, b.ID()))
		require.NoError(t, tx.Rentals().Create(ctx, h))
		require.NoError(t, tx.Outbox().Append(ctx, shared.NewRentalEvent(shared.EventRentalCreated, h)))
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)

	assert.Equal(t, 0, store.HeaderCount())
	assert.Empty(t, store.Events())
	got, err := store.Book(b.ID())
	require.NoError(t, err)
	assert.Equal(t, b.QuantityAvailable(), got.QuantityAvailable())
	dec, inc := store.InventoryMoves(b.ID())
	assert.Zero(t, dec)
	assert.Zero(t, inc)
}

func TestWithin_CancelledContext(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := store.Within(ctx, func(context.Context, shared.Tx) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
	assert.True(t, infra.IsRepositoryError(err))
}

func TestFailNext_FiresOnce(t *testing.T) {
	store, b := newStore(t)
	store.FailNext(memstore.OpDecrement, errors.New("disk full"))

	decrement := func() error {
		return store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			return tx.Inventory().DecrementAvailable(ctx, b.ID())
		})
	}

	err := decrement()
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	require.NoError(t, decrement())

	dec, _ := store.InventoryMoves(b.ID())
	assert.Equal(t, 1, dec)
}

func TestInventory_Decrement(t *testing.T) {
	store := memstore.NewStore(clock.NewMockClock(base))
	b := builder.NewBookBuilder().With(func(b *builder.BookBuilder) { b.QuantityAvailable = 1 }).BuildDomain()
	store.PutBook(b)

	decrement := func() error {
		return store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			return tx.Inventory().DecrementAvailable(ctx, b.ID())
		})
	}

	require.NoError(t, decrement())
	err := decrement()
	assert.True(t, infra.IsKind(err, infra.KindInsufficientStock))

	got, err := store.Book(b.ID())
	require.NoError(t, err)
	assert.Equal(t, 0, got.QuantityAvailable())
}

func TestRentals_Create(t *testing.T) {
	t.Run("rejects a second open rental for the same owner and book", func(t *testing.T) {
		store, b := newStore(t)
		rb := builder.NewRentalBuilder().With(func(r *builder.RentalBuilder) { r.BookID = b.ID() })
		insert(t, store, rb)

		h, err := rb.BuildDomain()
		require.NoError(t, err)
		err = store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			return tx.Rentals().Create(ctx, h)
		})
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})

	t.Run("allows a new rental after the previous one was returned", func(t *testing.T) {
		store, b := newStore(t)
		insert(t, store, builder.NewRentalBuilder().With(func(r *builder.RentalBuilder) {
			r.BookID = b.ID()
			r.Status = rental.StatusReturned
		}))
		insert(t, store, builder.NewRentalBuilder().With(func(r *builder.RentalBuilder) { r.BookID = b.ID() }))
		assert.Equal(t, 2, store.HeaderCount())
	})

	t.Run("unknown book", func(t *testing.T) {
		store, _ := newStore(t)
		h, err := builder.NewRentalBuilder().BuildDomain()
		require.NoError(t, err)
		err = store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			return tx.Rentals().Create(ctx, h)
		})
		assert.True(t, infra.IsKind(err, infra.KindForeignKeyViolated))
	})
}

func TestRentals_UpdateStatus(t *testing.T) {
	store, b := newStore(t)
	h := insert(t, store, builder.NewRentalBuilder().With(func(r *builder.RentalBuilder) { r.BookID = b.ID() }))

	update := func(expected ...rental.Status) error {
		return store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			cur, err := tx.Rentals().FindByID(ctx, h.ID())
			if err != nil {
				return err
			}
			if _, err := cur.Confirm(base.Add(time.Hour)); err != nil {
				return err
			}
			return tx.Rentals().UpdateStatus(ctx, cur, expected)
		})
	}

	err := update(rental.StatusActive)
	assert.True(t, infra.IsKind(err, infra.KindStatusConflict))
	assert.Equal(t, rental.StatusPending, mustHeader(t, store, h.ID()).Status())

	require.NoError(t, update(rental.SourcesOf(rental.StatusActive)...))
	assert.Equal(t, rental.StatusActive, mustHeader(t, store, h.ID()).Status())
}

func TestListStalePending(t *testing.T) {
	store, b := newStore(t)
	other := builder.NewBookBuilder().BuildDomain()
	store.PutBook(other)

	newest := insert(t, store, builder.NewRentalBuilder().With(func(r *builder.RentalBuilder) {
		r.BookID = b.ID()
		r.OwnerID = "owner-c"
		r.CreatedAt = base.Add(-20 * time.Minute)
	}))
	oldest := insert(t, store, builder.NewRentalBuilder().With(func(r *builder.RentalBuilder) {
		r.BookID = b.ID()
		r.OwnerID = "owner-a"
		r.CreatedAt = base.Add(-time.Hour)
	}))
	middle := insert(t, store, builder.NewRentalBuilder().With(func(r *builder.RentalBuilder) {
		r.BookID = other.ID()
		r.OwnerID = "owner-b"
		r.CreatedAt = base.Add(-30 * time.Minute)
	}))
	// active and fresh rentals are never stale
	insert(t, store, builder.NewRentalBuilder().With(func(r *builder.RentalBuilder) {
		r.BookID = other.ID()
		r.OwnerID = "owner-a"
		r.CreatedAt = base.Add(-2 * time.Hour)
		r.Status = rental.StatusActive
	}))
	insert(t, store, builder.NewRentalBuilder().With(func(r *builder.RentalBuilder) {
		r.BookID = other.ID()
		r.OwnerID = "owner-d"
		r.CreatedAt = base.Add(-15 * time.Minute)
	}))

	cutoff := base.Add(-15 * time.Minute)
	stale, err := store.CommandReads().ListStalePending(context.Background(), cutoff, 0)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{oldest.ID(), middle.ID(), newest.ID()}, ids(stale))

	limited, err := store.CommandReads().ListStalePending(context.Background(), cutoff, 2)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{oldest.ID(), middle.ID()}, ids(limited))
}

func TestOutbox_ListAndMarkPublished(t *testing.T) {
	store, b := newStore(t)
	h := insert(t, store, builder.NewRentalBuilder().With(func(r *builder.RentalBuilder) { r.BookID = b.ID() }))

	var appended []uuid.UUID
	for range 3 {
		e := shared.NewRentalEvent(shared.EventRentalCreated, h)
		appended = append(appended, e.ID)
		require.NoError(t, store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
			return tx.Outbox().Append(ctx, e)
		}))
	}

	first, err := store.ListUnpublished(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, appended[:2], []uuid.UUID{first[0].ID, first[1].ID})

	require.NoError(t, store.MarkPublished(context.Background(), []uuid.UUID{first[0].ID, first[1].ID}, base))

	rest, err := store.ListUnpublished(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, appended[2], rest[0].ID)
	assert.Len(t, store.Events(), 3)
}

func TestReadStore(t *testing.T) {
	store, b := newStore(t)
	older := insert(t, store, builder.NewRentalBuilder().With(func(r *builder.RentalBuilder) {
		r.BookID = b.ID()
		r.Status = rental.StatusReturned
	}))
	newer := insert(t, store, builder.NewRentalBuilder().With(func(r *builder.RentalBuilder) {
		r.BookID = b.ID()
		r.CreatedAt = r.CreatedAt.Add(24 * time.Hour)
	}))
	insert(t, store, builder.NewRentalBuilder().With(func(r *builder.RentalBuilder) {
		r.BookID = b.ID()
		r.OwnerID = "someone-else"
	}))

	items, err := store.ListByOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, newer.ID(), items[0].ID)
	assert.Equal(t, older.ID(), items[1].ID)
	assert.Equal(t, b.Title(), items[0].BookTitle)
	assert.NotNil(t, items[1].ReturnedAt)

	empty, err := store.ListByOwner(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	view, err := store.FindByID(context.Background(), newer.ID())
	require.NoError(t, err)
	assert.Equal(t, "pending", view.Status)
	assert.Equal(t, b.Author(), view.BookAuthor)

	_, err = store.FindByID(context.Background(), uuid.New())
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func mustHeader(t *testing.T, store *memstore.Store, id uuid.UUID) *rental.Header {
	t.Helper()
	h, err := store.Header(id)
	require.NoError(t, err)
	return h
}

func ids(rows []shared.StaleRental) []uuid.UUID {
	out := make([]uuid.UUID, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}
