package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"book-rental/internal/domain/book"
	"book-rental/internal/domain/rental"
	"book-rental/internal/infra"
	"book-rental/internal/infra/repository/converter"
	"book-rental/internal/pkg/clock"
	"book-rental/internal/usecase/queries"
	"book-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

// Operations that can be failed with FailNext.
const (
	OpGetBook      = "books.get"
	OpDecrement    = "books.decrement"
	OpIncrement    = "books.increment"
	OpCreateRental = "rentals.create"
	OpFindRental   = "rentals.find"
	OpUpdateStatus = "rentals.update_status"
	OpAppendEvent  = "outbox.append"
	OpListStale    = "rentals.list_stale"
)

type eventRow struct {
	event       shared.RentalEvent
	publishedAt *time.Time
}

type state struct {
	books      map[uuid.UUID]converter.BookRow
	rentals    map[uuid.UUID]converter.RentalRow
	events     []eventRow
	decrements map[uuid.UUID]int
	increments map[uuid.UUID]int
}

func newState() *state {
	return &state{
		books:      make(map[uuid.UUID]converter.BookRow),
		rentals:    make(map[uuid.UUID]converter.RentalRow),
		decrements: make(map[uuid.UUID]int),
		increments: make(map[uuid.UUID]int),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.books {
		c.books[k] = v
	}
	for k, v := range s.rentals {
		c.rentals[k] = v
	}
	c.events = append(c.events, s.events...)
	for k, v := range s.decrements {
		c.decrements[k] = v
	}
	for k, v := range s.increments {
		c.increments[k] = v
	}
	return c
}

// Store keeps books, rentals and outbox events in process. Transactions are
// serialized and applied copy-on-commit, so a failed transaction leaves nothing behind.
type Store struct {
	mu     sync.Mutex
	state  *state
	faults map[string]error
	clock  clock.Clock
}

func NewStore(clk clock.Clock) *Store {
	return &Store{
		state:  newState(),
		faults: make(map[string]error),
		clock:  clk,
	}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return infra.WrapRepoErr("transaction aborted", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(ctx, &memTx{store: s, st: work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *Store) CommandReads() shared.CommandReads {
	return commandReads{store: s}
}

// FailNext makes the next call of op return err wrapped as a store failure.
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

// fault must be called with mu held.
func (s *Store) fault(op string) error {
	err, ok := s.faults[op]
	if !ok {
		return nil
	}
	delete(s.faults, op)
	return infra.WrapRepoErr("injected failure: "+op, err)
}

func (s *Store) PutBook(b *book.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.books[b.ID()] = converter.BookRow{
		ID:                b.ID(),
		Title:             b.Title(),
		Author:            b.Author(),
		ISBN:              b.ISBN(),
		PricePerDayCents:  b.PricePerDay().Cents(),
		QuantityAvailable: b.QuantityAvailable(),
		CreatedAt:         b.CreatedAt(),
		UpdatedAt:         b.UpdatedAt(),
	}
}

func (s *Store) Book(id uuid.UUID) (*book.Book, error) {
	s.mu.Lock()
	row, ok := s.state.books[id]
	s.mu.Unlock()
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "book not found")
	}
	return converter.BookToDomain(row)
}

func (s *Store) Header(id uuid.UUID) (*rental.Header, error) {
	s.mu.Lock()
	row, ok := s.state.rentals[id]
	s.mu.Unlock()
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "rental not found")
	}
	return converter.RentalToDomain(row)
}

func (s *Store) HeaderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.rentals)
}

// InventoryMoves returns how many committed decrements and increments a book received.
func (s *Store) InventoryMoves(bookID uuid.UUID) (decrements, increments int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.decrements[bookID], s.state.increments[bookID]
}

// Events returns every committed outbox event in commit order.
func (s *Store) Events() []shared.RentalEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]shared.RentalEvent, len(s.state.events))
	for i, e := range s.state.events {
		out[i] = e.event
	}
	return out
}

type memTx struct {
	store *Store
	st    *state
}

func (t *memTx) Rentals() shared.RentalRepository { return rentalRepo{t} }
func (t *memTx) Inventory() shared.InventoryStore { return inventoryRepo{t} }
func (t *memTx) Outbox() shared.OutboxRepository  { return outboxRepo{t} }

type rentalRepo struct{ tx *memTx }

func (r rentalRepo) FindByID(_ context.Context, id uuid.UUID) (*rental.Header, error) {
	if err := r.tx.store.fault(OpFindRental); err != nil {
		return nil, err
	}
	row, ok := r.tx.st.rentals[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "rental not found")
	}
	h, err := converter.RentalToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid rental row", err)
	}
	return h, nil
}

func (r rentalRepo) ExistsOpen(_ context.Context, ownerID string, bookID uuid.UUID) (bool, error) {
	for _, row := range r.tx.st.rentals {
		if row.OwnerID == ownerID && row.BookID == bookID && isOpen(row.Status) {
			return true, nil
		}
	}
	return false, nil
}

func (r rentalRepo) Create(_ context.Context, h *rental.Header) error {
	if err := r.tx.store.fault(OpCreateRental); err != nil {
		return err
	}
	if _, ok := r.tx.st.books[h.BookID()]; !ok {
		return infra.NewRepoErr(infra.KindForeignKeyViolated, "book does not exist")
	}
	if _, ok := r.tx.st.rentals[h.ID()]; ok {
		return infra.NewRepoErr(infra.KindDuplicateKey, "rental id already exists")
	}
	if open, _ := r.ExistsOpen(context.Background(), h.OwnerID(), h.BookID()); open {
		return infra.NewRepoErr(infra.KindDuplicateKey, "open rental already exists for owner and book")
	}

	d := h.Detail()
	r.tx.st.rentals[h.ID()] = converter.RentalRow{
		ID:               h.ID(),
		OwnerID:          h.OwnerID(),
		Status:           h.Status().String(),
		CreatedAt:        h.CreatedAt(),
		DueAt:            h.DueAt(),
		ReturnedAt:       copyTime(h.ReturnedAt()),
		TotalAmountCents: h.TotalAmount().Cents(),
		UpdatedAt:        h.UpdatedAt(),
		DetailID:         d.ID(),
		BookID:           d.BookID(),
		PricePerDayCents: d.PricePerDay().Cents(),
		DurationDays:     d.Duration().Days(),
		DetailTotalCents: d.TotalAmount().Cents(),
	}
	return nil
}

func (r rentalRepo) UpdateStatus(_ context.Context, h *rental.Header, expected []rental.Status) error {
	if err := r.tx.store.fault(OpUpdateStatus); err != nil {
		return err
	}
	row, ok := r.tx.st.rentals[h.ID()]
	if !ok {
		return infra.NewRepoErr(infra.KindStatusConflict, "rental status changed concurrently")
	}
	matched := false
	for _, s := range expected {
		if row.Status == s.String() {
			matched = true
			break
		}
	}
	if !matched {
		return infra.NewRepoErr(infra.KindStatusConflict, "rental status changed concurrently")
	}

	row.Status = h.Status().String()
	row.ReturnedAt = copyTime(h.ReturnedAt())
	row.UpdatedAt = h.UpdatedAt()
	r.tx.st.rentals[h.ID()] = row
	return nil
}

type inventoryRepo struct{ tx *memTx }

func (r inventoryRepo) Get(_ context.Context, bookID uuid.UUID) (*book.Book, error) {
	if err := r.tx.store.fault(OpGetBook); err != nil {
		return nil, err
	}
	row, ok := r.tx.st.books[bookID]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "book not found")
	}
	b, err := converter.BookToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid book row", err)
	}
	return b, nil
}

func (r inventoryRepo) DecrementAvailable(_ context.Context, bookID uuid.UUID) error {
	if err := r.tx.store.fault(OpDecrement); err != nil {
		return err
	}
	row, ok := r.tx.st.books[bookID]
	if !ok || row.QuantityAvailable <= 0 {
		return infra.NewRepoErr(infra.KindInsufficientStock, "no copies available")
	}
	row.QuantityAvailable--
	row.UpdatedAt = r.tx.store.clock.Now()
	r.tx.st.books[bookID] = row
	r.tx.st.decrements[bookID]++
	return nil
}

func (r inventoryRepo) IncrementAvailable(_ context.Context, bookID uuid.UUID) error {
	if err := r.tx.store.fault(OpIncrement); err != nil {
		return err
	}
	row, ok := r.tx.st.books[bookID]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "book not found")
	}
	row.QuantityAvailable++
	row.UpdatedAt = r.tx.store.clock.Now()
	r.tx.st.books[bookID] = row
	r.tx.st.increments[bookID]++
	return nil
}

type outboxRepo struct{ tx *memTx }

func (r outboxRepo) Append(_ context.Context, event shared.RentalEvent) error {
	if err := r.tx.store.fault(OpAppendEvent); err != nil {
		return err
	}
	r.tx.st.events = append(r.tx.st.events, eventRow{event: event})
	return nil
}

type commandReads struct{ store *Store }

func (c commandReads) ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]shared.StaleRental, error) {
	if err := ctx.Err(); err != nil {
		return nil, infra.WrapRepoErr("scan aborted", err)
	}
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if err := c.store.fault(OpListStale); err != nil {
		return nil, err
	}

	var out []shared.StaleRental
	for _, row := range c.store.state.rentals {
		if row.Status == rental.StatusPending.String() && row.CreatedAt.Before(cutoff) {
			out = append(out, shared.StaleRental{
				ID:        row.ID,
				OwnerID:   row.OwnerID,
				BookID:    row.BookID,
				CreatedAt: row.CreatedAt,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListUnpublished and MarkPublished make Store an outbox reader for the relay.
func (s *Store) ListUnpublished(_ context.Context, limit int) ([]shared.RentalEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []shared.RentalEvent
	for _, e := range s.state.events {
		if e.publishedAt != nil {
			continue
		}
		out = append(out, e.event)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *Store) MarkPublished(_ context.Context, ids []uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	marked := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		marked[id] = struct{}{}
	}
	events := make([]eventRow, len(s.state.events))
	copy(events, s.state.events)
	for i := range events {
		if _, ok := marked[events[i].event.ID]; ok {
			ts := at
			events[i].publishedAt = &ts
		}
	}
	s.state.events = events
	return nil
}

// FindByID and ListByOwner make Store a read store for the rental queries.
func (s *Store) FindByID(_ context.Context, id uuid.UUID) (*queries.RentalView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.state.rentals[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "rental not found")
	}
	return s.view(row), nil
}

func (s *Store) ListByOwner(_ context.Context, ownerID string) ([]*queries.RentalListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]*queries.RentalListItem, 0)
	for _, row := range s.state.rentals {
		if row.OwnerID != ownerID {
			continue
		}
		v := s.view(row)
		items = append(items, &queries.RentalListItem{
			ID:               v.ID,
			BookID:           v.BookID,
			BookTitle:        v.BookTitle,
			BookAuthor:       v.BookAuthor,
			Status:           v.Status,
			CreatedAt:        v.CreatedAt,
			DueAt:            v.DueAt,
			ReturnedAt:       v.ReturnedAt,
			TotalAmountCents: v.TotalAmountCents,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID.String() > items[j].ID.String()
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// view must be called with mu held.
func (s *Store) view(row converter.RentalRow) *queries.RentalView {
	b := s.state.books[row.BookID]
	return &queries.RentalView{
		ID:               row.ID,
		OwnerID:          row.OwnerID,
		BookID:           row.BookID,
		BookTitle:        b.Title,
		BookAuthor:       b.Author,
		Status:           row.Status,
		CreatedAt:        row.CreatedAt,
		DueAt:            row.DueAt,
		ReturnedAt:       copyTime(row.ReturnedAt),
		PricePerDayCents: row.PricePerDayCents,
		DurationDays:     row.DurationDays,
		TotalAmountCents: row.TotalAmountCents,
	}
}

func isOpen(status string) bool {
	s, err := rental.ParseStatus(status)
	return err == nil && s.IsOpen()
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
