package queries

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"book-rental/internal/domain/rental"
	"book-rental/internal/infra"
	"book-rental/internal/pkg/clock"
	"book-rental/internal/pkg/errs"
)

type RentalReadStore interface {
	// ListByOwner returns the owner's rentals, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*RentalListItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*RentalView, error)
}

type RentalQueries interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*RentalListItem, error)
	GetForOwner(ctx context.Context, ownerID string, id uuid.UUID) (*RentalView, error)
}

type rentalQueriesImpl struct {
	readStore RentalReadStore
	clock     clock.Clock
}

func NewRentalQueries(readStore RentalReadStore, clk clock.Clock) RentalQueries {
	return &rentalQueriesImpl{
		readStore: readStore,
		clock:     clk,
	}
}

func (q *rentalQueriesImpl) ListByOwner(ctx context.Context, ownerID string) ([]*RentalListItem, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, errs.ErrUnauthenticated
	}

	items, err := q.readStore.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStoreUnavailable)
	}

	now := q.clock.Now()
	for _, item := range items {
		item.IsOverdue = isOverdue(item.Status, item.DueAt, now)
	}
	return items, nil
}

// GetForOwner hides rentals of other owners behind NotFound.
func (q *rentalQueriesImpl) GetForOwner(ctx context.Context, ownerID string, id uuid.UUID) (*RentalView, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, errs.ErrUnauthenticated
	}

	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrNotFound)
		}
		return nil, errs.Mark(err, errs.ErrStoreUnavailable)
	}
	if view.OwnerID != ownerID {
		return nil, errs.ErrNotFound
	}

	view.IsOverdue = isOverdue(view.Status, view.DueAt, q.clock.Now())
	return view, nil
}

func isOverdue(status string, dueAt, now time.Time) bool {
	return status == rental.StatusActive.String() && now.After(dueAt)
}
