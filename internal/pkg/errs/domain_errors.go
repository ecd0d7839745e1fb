package errs

// Rental error kinds shared by the usecase and handler layers.
// Callers match them with Is; the usecase layer attaches them with Mark.
var (
	ErrUnauthenticated = New("unauthenticated")

	// Catalog
	ErrItemNotFound = New("item not found")
	ErrOutOfStock   = New("item out of stock")
	// ErrItemNotRentable covers catalog data a rental cannot be built from, such as a zero price.
	ErrItemNotRentable = New("item not rentable")

	// Rental lifecycle
	ErrDuplicateActiveReservation = New("duplicate active reservation")
	ErrNotFound                   = New("rental not found")
	ErrInvalidTransition          = New("invalid rental status transition")
	ErrAlreadyFinalized           = New("rental already finalized")
	ErrConflict                   = New("concurrent modification conflict")

	// Validation
	ErrInvalidDuration = New("invalid rental duration")

	// Collaborators
	ErrStoreUnavailable = New("store unavailable")
)
