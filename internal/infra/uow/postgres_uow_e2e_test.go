//go:build e2e

package uow_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"book-rental/internal/domain/rental"
	"book-rental/internal/infra/readstore"
	"book-rental/internal/infra/uow"
	"book-rental/internal/pkg/clock"
	"book-rental/internal/pkg/config"
	"book-rental/internal/pkg/errs"
	"book-rental/internal/usecase/commands"
	"book-rental/internal/usecase/queries"
	"book-rental/internal/usecase/reclaimer"
	"book-rental/internal/usecase/relay"
	"book-rental/internal/usecase/shared"
	"book-rental/tests/common/dbtest"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
)

type PostgresUoWTestSuite struct {
	suite.Suite
	ctx   context.Context
	pool  *pgxpool.Pool
	store *uow.PostgresUoW
	clock clock.Clock
	cmds  commands.RentalCommands
}

func TestPostgresUoWTestSuite(t *testing.T) {
	suite.Run(t, new(PostgresUoWTestSuite))
}

func (s *PostgresUoWTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.pool, _ = dbtest.NewDatabase(s.T())
	s.store = uow.NewPostgresUoW(s.pool)
	s.clock = clock.NewRealClock()
	s.cmds = commands.NewRentalCommands(s.store, rental.NewFactory(s.clock, rental.DefaultDurationDays), s.clock)
}

func (s *PostgresUoWTestSuite) requireKind(err error, kind error) {
	s.T().Helper()
	s.Require().Error(err)
	s.Require().Truef(errs.Is(err, kind), "expected %v, got %v", kind, err)
}

func (s *PostgresUoWTestSuite) TestCreateReservesCopyAndWritesEvent() {
	bookID := dbtest.CreateTestBook(s.T(), s.pool, "Concurrency in Go", 250, 2)

	h, err := s.cmds.Create(s.ctx, "owner-a", bookID, 4)
	s.Require().NoError(err)

	s.Equal(1, dbtest.BookQuantity(s.T(), s.pool, bookID))
	s.Equal("pending", dbtest.RentalStatus(s.T(), s.pool, h.ID()))
	s.Equal(1, dbtest.CountRows(s.T(), s.pool, "rental_details"))
	s.Equal(1, dbtest.CountRows(s.T(), s.pool, "rental_events"))

	view, err := queries.NewRentalQueries(readstore.NewRentalReadStore(s.pool), s.clock).GetForOwner(s.ctx, "owner-a", h.ID())
	s.Require().NoError(err)
	s.Equal("Concurrency in Go", view.BookTitle)
	s.Equal(int64(1000), view.TotalAmountCents)
}

func (s *PostgresUoWTestSuite) TestLastCopyThenOutOfStock() {
	bookID := dbtest.CreateTestBook(s.T(), s.pool, "Last Copy", 100, 1)

	_, err := s.cmds.Create(s.ctx, "owner-a", bookID, 0)
	s.Require().NoError(err)

	_, err = s.cmds.Create(s.ctx, "owner-b", bookID, 0)
	s.requireKind(err, errs.ErrOutOfStock)

	s.Equal(0, dbtest.BookQuantity(s.T(), s.pool, bookID))
	s.Equal(1, dbtest.CountRows(s.T(), s.pool, "rental_headers"))
}

func (s *PostgresUoWTestSuite) TestDuplicateOpenRental() {
	bookID := dbtest.CreateTestBook(s.T(), s.pool, "Twice", 100, 5)

	_, err := s.cmds.Create(s.ctx, "owner-a", bookID, 0)
	s.Require().NoError(err)

	_, err = s.cmds.Create(s.ctx, "owner-a", bookID, 0)
	s.requireKind(err, errs.ErrDuplicateActiveReservation)
	s.Equal(4, dbtest.BookQuantity(s.T(), s.pool, bookID))
}

func (s *PostgresUoWTestSuite) TestConfirmThenReturnRestocks() {
	bookID := dbtest.CreateTestBook(s.T(), s.pool, "Round Trip", 100, 1)

	h, err := s.cmds.Create(s.ctx, "owner-a", bookID, 0)
	s.Require().NoError(err)
	s.Require().NoError(s.cmds.Confirm(s.ctx, h.ID()))
	s.Equal("active", dbtest.RentalStatus(s.T(), s.pool, h.ID()))

	s.requireKind(s.cmds.Confirm(s.ctx, h.ID()), errs.ErrInvalidTransition)

	s.Require().NoError(s.cmds.Return(s.ctx, h.ID()))
	s.Equal("returned", dbtest.RentalStatus(s.T(), s.pool, h.ID()))
	s.Equal(1, dbtest.BookQuantity(s.T(), s.pool, bookID))

	s.requireKind(s.cmds.Return(s.ctx, h.ID()), errs.ErrAlreadyFinalized)
	s.Equal(1, dbtest.BookQuantity(s.T(), s.pool, bookID))
	s.Equal(3, dbtest.CountRows(s.T(), s.pool, "rental_events"))
}

func (s *PostgresUoWTestSuite) TestUnknownRental() {
	s.requireKind(s.cmds.Confirm(s.ctx, uuid.New()), errs.ErrNotFound)

	_, err := s.cmds.Create(s.ctx, "owner-a", uuid.New(), 0)
	s.requireKind(err, errs.ErrItemNotFound)
}

func (s *PostgresUoWTestSuite) TestConcurrentCreatesNeverOversell() {
	const copies, callers = 5, 30
	bookID := dbtest.CreateTestBook(s.T(), s.pool, "Hot Item", 100, copies)

	var (
		wg         sync.WaitGroup
		succeeded  atomic.Int32
		outOfStock atomic.Int32
		start      = make(chan struct{})
	)
	for i := range callers {
		wg.Add(1)
		go func(owner string) {
			defer wg.Done()
			<-start
			_, err := s.cmds.Create(s.ctx, owner, bookID, 0)
			switch {
			case err == nil:
				succeeded.Add(1)
			case errs.Is(err, errs.ErrOutOfStock):
				outOfStock.Add(1)
			}
		}(fmt.Sprintf("owner-%d", i))
	}
	close(start)
	wg.Wait()

	s.Equal(int32(copies), succeeded.Load())
	s.Equal(int32(callers-copies), outOfStock.Load())
	s.Equal(0, dbtest.BookQuantity(s.T(), s.pool, bookID))
	s.Equal(copies, dbtest.CountRows(s.T(), s.pool, "rental_headers"))
}

func (s *PostgresUoWTestSuite) TestReclaimerExpiresStalePending() {
	bookID := dbtest.CreateTestBook(s.T(), s.pool, "Forgotten", 100, 2)

	stale, err := s.cmds.Create(s.ctx, "owner-a", bookID, 0)
	s.Require().NoError(err)
	fresh, err := s.cmds.Create(s.ctx, "owner-b", bookID, 0)
	s.Require().NoError(err)
	dbtest.BackdateRental(s.T(), s.pool, stale.ID(), time.Now().Add(-time.Hour))

	r := reclaimer.New(s.store.CommandReads(), s.cmds, s.clock, slog.New(slog.NewTextHandler(io.Discard, nil)), config.ReclaimerConfig{
		Interval:       time.Minute,
		PendingTimeout: 15 * time.Minute,
		BatchSize:      500,
	})

	res, err := r.RunOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(reclaimer.Result{Selected: 1, Expired: 1}, res)
	s.Equal("expired", dbtest.RentalStatus(s.T(), s.pool, stale.ID()))
	s.Equal("pending", dbtest.RentalStatus(s.T(), s.pool, fresh.ID()))
	s.Equal(1, dbtest.BookQuantity(s.T(), s.pool, bookID))

	res, err = r.RunOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(reclaimer.Result{}, res)
	s.Equal(1, dbtest.BookQuantity(s.T(), s.pool, bookID))
}

type collectingPublisher struct {
	mu     sync.Mutex
	events []shared.RentalEvent
}

func (p *collectingPublisher) Publish(_ context.Context, events []shared.RentalEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *collectingPublisher) Close() error { return nil }

func (s *PostgresUoWTestSuite) TestRelayPublishesOutbox() {
	bookID := dbtest.CreateTestBook(s.T(), s.pool, "Relayed", 100, 3)
	h, err := s.cmds.Create(s.ctx, "owner-a", bookID, 0)
	s.Require().NoError(err)
	s.Require().NoError(s.cmds.Confirm(s.ctx, h.ID()))

	pub := &collectingPublisher{}
	rl := relay.New(s.store.Outbox(), pub, s.clock, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Second, 1)

	n, err := rl.RunOnce(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, n)
	s.Require().Len(pub.events, 2)
	s.Equal(shared.EventRentalCreated, pub.events[0].Kind)
	s.Equal(shared.EventRentalConfirmed, pub.events[1].Kind)
	s.Equal(h.ID(), pub.events[1].HeaderID)

	var unpublished int
	s.Require().NoError(s.pool.QueryRow(s.ctx,
		"SELECT count(*) FROM rental_events WHERE published_at IS NULL").Scan(&unpublished))
	s.Zero(unpublished)

	n, err = rl.RunOnce(s.ctx)
	s.Require().NoError(err)
	s.Zero(n)
}
