package commands

import (
	"book-rental/internal/domain/rental"
	"book-rental/internal/infra"
	"book-rental/internal/pkg/errs"
)

var knownKinds = []struct {
	err  error
	name string
}{
	{errs.ErrUnauthenticated, "unauthenticated"},
	{errs.ErrItemNotFound, "item_not_found"},
	{errs.ErrOutOfStock, "out_of_stock"},
	{errs.ErrItemNotRentable, "item_not_rentable"},
	{errs.ErrDuplicateActiveReservation, "duplicate_active_reservation"},
	{errs.ErrNotFound, "not_found"},
	{errs.ErrInvalidTransition, "invalid_transition"},
	{errs.ErrAlreadyFinalized, "already_finalized"},
	{errs.ErrConflict, "conflict"},
	{errs.ErrInvalidDuration, "invalid_duration"},
	{errs.ErrStoreUnavailable, "store_unavailable"},
}

// classify leaves rental kinds untouched, reports a lost status race as Conflict
// and any other persistence failure as StoreUnavailable.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, k := range knownKinds {
		if errs.Is(err, k.err) {
			return err
		}
	}
	switch {
	case infra.IsKind(err, infra.KindStatusConflict):
		return errs.Mark(err, errs.ErrConflict)
	case infra.IsRepositoryError(err):
		return errs.Mark(err, errs.ErrStoreUnavailable)
	}
	return err
}

// headerError marks a rental construction failure with the kind the caller can act on.
func headerError(err error) error {
	switch {
	case errs.Is(err, rental.ErrMissingOwner):
		return errs.Mark(err, errs.ErrUnauthenticated)
	case errs.Is(err, rental.ErrInvalidDuration):
		return errs.Mark(err, errs.ErrInvalidDuration)
	default:
		return errs.Mark(err, errs.ErrItemNotRentable)
	}
}

func kindName(err error) string {
	for _, k := range knownKinds {
		if errs.Is(err, k.err) {
			return k.name
		}
	}
	return "error"
}
