package repository

import (
	"context"

	"book-rental/internal/domain/book"
	"book-rental/internal/infra"
	"book-rental/internal/infra/db"
	"book-rental/internal/infra/repository/converter"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

// BookRepository is the inventory store. Quantity changes are single conditional
// UPDATE statements so the row lock taken by Postgres serializes them.
type BookRepository struct {
	db db.DBTX
}

func NewBookRepository(db db.DBTX) *BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) Get(ctx context.Context, bookID uuid.UUID) (*book.Book, error) {
	query, args, err := dialect.From(tableBooks).
		Select("id", "title", "author", "isbn", "price_per_day_cents", "quantity_available", "created_at", "updated_at").
		Where(goqu.C("id").Eq(bookID)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build book query", err)
	}

	var row converter.BookRow
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&row.ID, &row.Title, &row.Author, &row.ISBN,
		&row.PricePerDayCents, &row.QuantityAvailable, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find book", err)
	}

	b, err := converter.BookToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid book row", err)
	}
	return b, nil
}

// DecrementAvailable takes one copy. Zero matched rows means the shelf is empty.
func (r *BookRepository) DecrementAvailable(ctx context.Context, bookID uuid.UUID) error {
	ds := dialect.Update(tableBooks).
		Set(goqu.Record{
			"quantity_available": goqu.L("quantity_available - 1"),
			"updated_at":         goqu.L("now()"),
		}).
		Where(
			goqu.C("id").Eq(bookID),
			goqu.C("quantity_available").Gt(0),
		)

	affected, err := r.exec(ctx, ds)
	if err != nil {
		return infra.WrapRepoErr("failed to decrement book quantity", err)
	}
	if affected == 0 {
		return infra.NewRepoErr(infra.KindInsufficientStock, "no copies available")
	}
	return nil
}

func (r *BookRepository) IncrementAvailable(ctx context.Context, bookID uuid.UUID) error {
	ds := dialect.Update(tableBooks).
		Set(goqu.Record{
			"quantity_available": goqu.L("quantity_available + 1"),
			"updated_at":         goqu.L("now()"),
		}).
		Where(goqu.C("id").Eq(bookID))

	affected, err := r.exec(ctx, ds)
	if err != nil {
		return infra.WrapRepoErr("failed to increment book quantity", err)
	}
	if affected == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "book not found")
	}
	return nil
}

func (r *BookRepository) exec(ctx context.Context, ds *goqu.UpdateDataset) (int64, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return 0, err
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
