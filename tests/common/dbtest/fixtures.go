//go:build e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateTestBook(t *testing.T, db DBLike, title string, pricePerDayCents int64, quantity int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO books (id, title, author, isbn, price_per_day_cents, quantity_available)
		 VALUES ($1, $2, 'Test Author', '', $3, $4)`,
		id, title, pricePerDayCents, quantity)
	require.NoError(t, err)
	return id
}

func BookQuantity(t *testing.T, db DBLike, id uuid.UUID) int {
	t.Helper()

	var qty int
	err := db.QueryRow(context.Background(),
		"SELECT quantity_available FROM books WHERE id = $1", id).Scan(&qty)
	require.NoError(t, err)
	return qty
}

func RentalStatus(t *testing.T, db DBLike, id uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(),
		"SELECT status FROM rental_headers WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	return status
}

func CountRows(t *testing.T, db DBLike, table string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n)
	require.NoError(t, err)
	return n
}

// BackdateRental moves a rental's creation time, for pending-timeout scenarios.
func BackdateRental(t *testing.T, db DBLike, id uuid.UUID, createdAt time.Time) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE rental_headers SET created_at = $2 WHERE id = $1", id, createdAt)
	require.NoError(t, err)
}

// ResetDB empties every table between subtests.
func ResetDB(db DBLike) error {
	_, err := db.Exec(context.Background(),
		"TRUNCATE rental_events, rental_details, rental_headers, books CASCADE")
	return err
}
