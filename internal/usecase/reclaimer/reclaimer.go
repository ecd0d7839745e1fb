package reclaimer

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"book-rental/internal/pkg/clock"
	"book-rental/internal/pkg/config"
	"book-rental/internal/pkg/errs"
	"book-rental/internal/pkg/telemetry"
	"book-rental/internal/usecase/commands"
	"book-rental/internal/usecase/shared"
)

var ErrRunInProgress = errs.New("reclaim run already in progress")

type Result struct {
	Selected int `json:"selected"`
	Expired  int `json:"expired"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// Reclaimer expires pending rentals older than the pending timeout and gives their
// copies back to inventory. Every expiry goes through RentalCommands.Expire.
type Reclaimer struct {
	reads    shared.CommandReads
	commands commands.RentalCommands
	clock    clock.Clock
	logger   *slog.Logger

	interval       time.Duration
	pendingTimeout time.Duration
	batchSize      int

	running atomic.Bool
}

func New(
	reads shared.CommandReads,
	cmds commands.RentalCommands,
	clk clock.Clock,
	logger *slog.Logger,
	cfg config.ReclaimerConfig,
) *Reclaimer {
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 500
	}
	return &Reclaimer{
		reads:          reads,
		commands:       cmds,
		clock:          clk,
		logger:         logger.With("component", "reclaimer"),
		interval:       cfg.Interval,
		pendingTimeout: cfg.PendingTimeout,
		batchSize:      batch,
	}
}

// Run sweeps once immediately, then on every interval until ctx is done.
func (r *Reclaimer) Run(ctx context.Context) {
	r.tick(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Reclaimer) tick(ctx context.Context) {
	res, err := r.RunOnce(ctx)
	if err != nil {
		if errs.Is(err, ErrRunInProgress) {
			r.logger.Debug("previous run still in progress, skipping tick")
			return
		}
		r.logger.Error("reclaim run failed", "error", err.Error())
		return
	}
	if res.Selected > 0 || res.Failed > 0 {
		r.logger.Info("reclaim run finished",
			"selected", res.Selected,
			"expired", res.Expired,
			"skipped", res.Skipped,
			"failed", res.Failed,
		)
	}
}

// RunOnce performs one sweep. A call made while another sweep is running returns
// ErrRunInProgress without doing anything.
func (r *Reclaimer) RunOnce(ctx context.Context) (res Result, err error) {
	if !r.running.CompareAndSwap(false, true) {
		return Result{}, ErrRunInProgress
	}
	defer r.running.Store(false)

	ctx, span := telemetry.Tracer().Start(ctx, "Reclaimer.RunOnce")
	defer func() {
		span.SetAttributes(
			attribute.Int("reclaim.selected", res.Selected),
			attribute.Int("reclaim.expired", res.Expired),
			attribute.Int("reclaim.failed", res.Failed),
		)
		telemetry.EndSpan(span, err)
	}()

	cutoff := r.clock.Now().Add(-r.pendingTimeout)
	stale, err := r.reads.ListStalePending(ctx, cutoff, r.batchSize)
	if err != nil {
		return Result{}, errs.Mark(errs.Wrap(err, "scan stale pending rentals"), errs.ErrStoreUnavailable)
	}

	res.Selected = len(stale)
	for _, s := range stale {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		expired, err := r.commands.Expire(ctx, s.ID)
		if err != nil {
			res.Failed++
			r.logger.Warn("failed to expire rental",
				"rental_id", s.ID,
				"owner_id", s.OwnerID,
				"book_id", s.BookID,
				"error", err.Error(),
			)
			continue
		}
		if expired {
			res.Expired++
		} else {
			res.Skipped++
		}
	}
	return res, nil
}

func (r *Reclaimer) Running() bool {
	return r.running.Load()
}

// Runner is what the admin endpoint needs from the reclaimer.
type Runner interface {
	RunOnce(ctx context.Context) (Result, error)
}

var _ Runner = (*Reclaimer)(nil)
