package components

import (
	"context"
	"log/slog"

	"book-rental/internal/domain/book"
	"book-rental/internal/domain/rental"
	"book-rental/internal/infra/db"
	"book-rental/internal/infra/memstore"
	"book-rental/internal/infra/readstore"
	"book-rental/internal/infra/uow"
	"book-rental/internal/pkg/clock"
	"book-rental/internal/pkg/config"
	"book-rental/internal/usecase/queries"
	"book-rental/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewStores,
	),
)

type Stores struct {
	fx.Out

	UoW       shared.UnitOfWork
	Outbox    shared.OutboxReader
	ReadStore queries.RentalReadStore
}

// NewStores picks the backend named by STORE_DRIVER.
func NewStores(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (Stores, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		store := memstore.NewStore(clk)
		seedDemoCatalog(store, logger)
		logger.Warn("using in-memory store, data is lost on restart")
		return Stores{UoW: store, Outbox: store, ReadStore: store}, nil
	}

	pool, err := NewDB(lc, cfg)
	if err != nil {
		return Stores{}, err
	}
	u := uow.NewPostgresUoW(pool)
	return Stores{
		UoW:       u,
		Outbox:    u.Outbox(),
		ReadStore: readstore.NewRentalReadStore(pool),
	}, nil
}

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(context.Background(), cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}

var demoCatalog = []struct {
	title, author, isbn string
	priceCents          int64
	quantity            int
}{
	{"The Go Programming Language", "Alan A. A. Donovan", "9780134190440", 150, 3},
	{"Designing Data-Intensive Applications", "Martin Kleppmann", "9781449373320", 200, 2},
	{"Concurrency in Go", "Katherine Cox-Buday", "9781491941195", 120, 1},
}

func seedDemoCatalog(store *memstore.Store, logger *slog.Logger) {
	for _, item := range demoCatalog {
		b, err := book.NewBook(uuid.New(), item.title, item.author, item.isbn, rental.MustMoney(item.priceCents), item.quantity)
		if err != nil {
			logger.Error("invalid demo book", "title", item.title, "error", err.Error())
			continue
		}
		store.PutBook(b)
		logger.Info("seeded demo book", "book_id", b.ID(), "title", b.Title(), "quantity", b.QuantityAvailable())
	}
}
