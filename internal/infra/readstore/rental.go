package readstore

import (
	"context"

	"book-rental/internal/infra"
	"book-rental/internal/infra/db"
	"book-rental/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var dialect = goqu.Dialect("postgres")

type RentalReadStore struct {
	db db.DBTX
}

func NewRentalReadStore(db db.DBTX) *RentalReadStore {
	return &RentalReadStore{db: db}
}

func (r *RentalReadStore) baseQuery() *goqu.SelectDataset {
	return dialect.From(goqu.T("rental_headers").As("h")).
		Join(goqu.T("rental_details").As("d"), goqu.On(goqu.I("d.header_id").Eq(goqu.I("h.id")))).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("d.book_id")))).
		Select(
			goqu.I("h.id"),
			goqu.I("h.owner_id"),
			goqu.I("d.book_id"),
			goqu.I("b.title"),
			goqu.I("b.author"),
			goqu.I("h.status"),
			goqu.I("h.created_at"),
			goqu.I("h.due_at"),
			goqu.I("h.returned_at"),
			goqu.I("d.price_per_day_cents"),
			goqu.I("d.duration_days"),
			goqu.I("h.total_amount_cents"),
		)
}

func (r *RentalReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RentalView, error) {
	query, args, err := r.baseQuery().
		Where(goqu.I("h.id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build rental view query", err)
	}

	view, err := scanView(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("rental not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find rental view", err)
	}
	return view, nil
}

func (r *RentalReadStore) ListByOwner(ctx context.Context, ownerID string) ([]*queries.RentalListItem, error) {
	query, args, err := r.baseQuery().
		Where(goqu.I("h.owner_id").Eq(ownerID)).
		Order(goqu.I("h.created_at").Desc(), goqu.I("h.id").Desc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build rental list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rentals", err)
	}
	defer rows.Close()

	items := make([]*queries.RentalListItem, 0)
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan rental", err)
		}
		items = append(items, toListItem(v))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rentals", err)
	}
	return items, nil
}

func scanView(row pgx.Row) (*queries.RentalView, error) {
	var v queries.RentalView
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.BookID, &v.BookTitle, &v.BookAuthor, &v.Status,
		&v.CreatedAt, &v.DueAt, &v.ReturnedAt,
		&v.PricePerDayCents, &v.DurationDays, &v.TotalAmountCents,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func toListItem(v *queries.RentalView) *queries.RentalListItem {
	return &queries.RentalListItem{
		ID:               v.ID,
		BookID:           v.BookID,
		BookTitle:        v.BookTitle,
		BookAuthor:       v.BookAuthor,
		Status:           v.Status,
		CreatedAt:        v.CreatedAt,
		DueAt:            v.DueAt,
		ReturnedAt:       v.ReturnedAt,
		TotalAmountCents: v.TotalAmountCents,
	}
}
