package repository

import (
	"context"
	"time"

	"book-rental/internal/domain/rental"
	"book-rental/internal/infra"
	"book-rental/internal/infra/db"
	"book-rental/internal/infra/repository/converter"
	"book-rental/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var rentalColumns = []interface{}{
	goqu.I("h.id"),
	goqu.I("h.owner_id"),
	goqu.I("h.status"),
	goqu.I("h.created_at"),
	goqu.I("h.due_at"),
	goqu.I("h.returned_at"),
	goqu.I("h.total_amount_cents"),
	goqu.I("h.updated_at"),
	goqu.I("d.id"),
	goqu.I("d.book_id"),
	goqu.I("d.price_per_day_cents"),
	goqu.I("d.duration_days"),
	goqu.I("d.total_amount_cents"),
}

type RentalRepository struct {
	db db.DBTX
}

func NewRentalRepository(db db.DBTX) *RentalRepository {
	return &RentalRepository{db: db}
}

func (r *RentalRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.Header, error) {
	query, args, err := build(dialect.From(goqu.T(tableRentalHeaders).As("h")).
		Join(goqu.T(tableRentalDetails).As("d"), goqu.On(goqu.I("d.header_id").Eq(goqu.I("h.id")))).
		Select(rentalColumns...).
		Where(goqu.I("h.id").Eq(id)).
		Prepared(true))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build rental query", err)
	}

	row, err := scanRental(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("rental not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find rental", err)
	}

	h, err := converter.RentalToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid rental row", err)
	}
	return h, nil
}

func (r *RentalRepository) ExistsOpen(ctx context.Context, ownerID string, bookID uuid.UUID) (bool, error) {
	query, args, err := build(dialect.From(tableRentalHeaders).
		Select(goqu.L("1")).
		Where(
			goqu.C("owner_id").Eq(ownerID),
			goqu.C("book_id").Eq(bookID),
			goqu.C("status").In(openStatusValues()),
		).
		Limit(1).
		Prepared(true))
	if err != nil {
		return false, infra.WrapRepoErr("failed to build open rental query", err)
	}

	var one int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if infra.IsNoRows(err) {
			return false, nil
		}
		return false, infra.WrapRepoErr("failed to check open rentals", err)
	}
	return true, nil
}

// Create inserts the header and then its detail; callers run it inside a transaction.
// The open-rental unique index surfaces as KindDuplicateKey.
func (r *RentalRepository) Create(ctx context.Context, h *rental.Header) error {
	d := h.Detail()

	headerSQL, headerArgs, err := build(dialect.Insert(tableRentalHeaders).Rows(goqu.Record{
		"id":                 h.ID(),
		"owner_id":           h.OwnerID(),
		"book_id":            h.BookID(),
		"status":             h.Status().String(),
		"created_at":         h.CreatedAt(),
		"due_at":             h.DueAt(),
		"returned_at":        h.ReturnedAt(),
		"total_amount_cents": h.TotalAmount().Cents(),
		"updated_at":         h.UpdatedAt(),
	}).Prepared(true))
	if err != nil {
		return infra.WrapRepoErr("failed to build rental header insert", err)
	}
	if _, err := r.db.Exec(ctx, headerSQL, headerArgs...); err != nil {
		return infra.WrapRepoErr("failed to insert rental header", err)
	}

	detailSQL, detailArgs, err := build(dialect.Insert(tableRentalDetails).Rows(goqu.Record{
		"id":                  d.ID(),
		"header_id":           h.ID(),
		"book_id":             d.BookID(),
		"price_per_day_cents": d.PricePerDay().Cents(),
		"duration_days":       d.Duration().Days(),
		"total_amount_cents":  d.TotalAmount().Cents(),
	}).Prepared(true))
	if err != nil {
		return infra.WrapRepoErr("failed to build rental detail insert", err)
	}
	if _, err := r.db.Exec(ctx, detailSQL, detailArgs...); err != nil {
		return infra.WrapRepoErr("failed to insert rental detail", err)
	}
	return nil
}

func (r *RentalRepository) UpdateStatus(ctx context.Context, h *rental.Header, expected []rental.Status) error {
	from := make([]string, len(expected))
	for i, s := range expected {
		from[i] = s.String()
	}

	query, args, err := build(dialect.Update(tableRentalHeaders).
		Set(goqu.Record{
			"status":      h.Status().String(),
			"returned_at": h.ReturnedAt(),
			"updated_at":  h.UpdatedAt(),
		}).
		Where(
			goqu.C("id").Eq(h.ID()),
			goqu.C("status").In(from),
		).
		Prepared(true))
	if err != nil {
		return infra.WrapRepoErr("failed to build rental status update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update rental status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindStatusConflict, "rental status changed concurrently")
	}
	return nil
}

func (r *RentalRepository) ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]shared.StaleRental, error) {
	ds := dialect.From(tableRentalHeaders).
		Select("id", "owner_id", "book_id", "created_at").
		Where(
			goqu.C("status").Eq(rental.StatusPending.String()),
			goqu.C("created_at").Lt(cutoff),
		).
		Order(goqu.C("created_at").Asc())
	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}
	query, args, err := build(ds.Prepared(true))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build stale rental query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list stale rentals", err)
	}
	defer rows.Close()

	var out []shared.StaleRental
	for rows.Next() {
		var s shared.StaleRental
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.BookID, &s.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan stale rental", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate stale rentals", err)
	}
	return out, nil
}

func scanRental(row pgx.Row) (converter.RentalRow, error) {
	var r converter.RentalRow
	err := row.Scan(
		&r.ID, &r.OwnerID, &r.Status, &r.CreatedAt, &r.DueAt, &r.ReturnedAt, &r.TotalAmountCents, &r.UpdatedAt,
		&r.DetailID, &r.BookID, &r.PricePerDayCents, &r.DurationDays, &r.DetailTotalCents,
	)
	return r, err
}

func build(b sqlBuilder) (string, []interface{}, error) {
	return b.ToSQL()
}
