package repository

import (
	"context"
	"time"

	"book-rental/internal/infra"
	"book-rental/internal/infra/db"
	"book-rental/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// OutboxRepository stores rental events next to the rows they describe.
type OutboxRepository struct {
	db db.DBTX
}

func NewOutboxRepository(db db.DBTX) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) Append(ctx context.Context, event shared.RentalEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return infra.WrapRepoErr("failed to encode rental event", err)
	}

	query, args, err := build(dialect.Insert(tableRentalEvents).Rows(goqu.Record{
		"id":          event.ID,
		"kind":        string(event.Kind),
		"header_id":   event.HeaderID,
		"payload":     string(payload),
		"occurred_at": event.OccurredAt,
	}).Prepared(true))
	if err != nil {
		return infra.WrapRepoErr("failed to build rental event insert", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to insert rental event", err)
	}
	return nil
}

func (r *OutboxRepository) ListUnpublished(ctx context.Context, limit int) ([]shared.RentalEvent, error) {
	query, args, err := build(dialect.From(tableRentalEvents).
		Select("payload").
		Where(goqu.C("published_at").IsNull()).
		Order(goqu.C("occurred_at").Asc(), goqu.C("id").Asc()).
		Limit(uint(limit)).
		Prepared(true))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build outbox query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list unpublished events", err)
	}
	defer rows.Close()

	var events []shared.RentalEvent
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, infra.WrapRepoErr("failed to scan rental event", err)
		}
		var e shared.RentalEvent
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, infra.WrapRepoErr("failed to decode rental event", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rental events", err)
	}
	return events, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := build(dialect.Update(tableRentalEvents).
		Set(goqu.Record{"published_at": at}).
		Where(goqu.C("id").In(ids)).
		Prepared(true))
	if err != nil {
		return infra.WrapRepoErr("failed to build outbox update", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to mark events published", err)
	}
	return nil
}
