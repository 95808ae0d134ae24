// FILENAME: internal/table/table.go
package table

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/xkilldash9x/round-table/internal/config"
	"github.com/xkilldash9x/round-table/internal/models"
	"github.com/xkilldash9x/round-table/internal/philosopher"
	"github.com/xkilldash9x/round-table/internal/sync/barrier"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Table owns the shared barrier and one philosopher per seat.
type Table struct {
	cfg          config.Table
	barrier      *barrier.RoundBarrier
	philosophers []*philosopher.Philosopher
	observers    models.Fanout
	completed    atomic.Int64
	clock        clock.Clock
	logger       *zap.Logger
}

// Option configures a Table.
type Option func(*Table)

// WithObserver adds a receiver for meal and round events.
func WithObserver(o models.Observer) Option {
	return func(t *Table) { t.observers = append(t.observers, o) }
}

// WithClock replaces the wall clock used by every philosopher.
func WithClock(c clock.Clock) Option {
	return func(t *Table) { t.clock = c }
}

// New validates cfg and seats the philosophers around a fresh barrier.
func New(cfg config.Table, logger *zap.Logger, opts ...Option) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid table: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	t := &Table{
		cfg:    cfg,
		clock:  clock.New(),
		logger: logger,
	}
	for _, opt := range opts {
		opt(t)
	}

	t.barrier = barrier.New(cfg.Philosophers, barrier.WithTripHook(t.onTrip))
	t.philosophers = make([]*philosopher.Philosopher, cfg.Philosophers)
	for i, seat := range cfg.Seats {
		t.philosophers[i] = philosopher.New(seat, i, cfg.Philosophers, t.barrier,
			philosopher.WithClock(t.clock),
			philosopher.WithObserver(t.observers),
			philosopher.WithLogger(logger),
		)
	}
	return t, nil
}

func (t *Table) onTrip(completed, next int) {
	t.completed.Add(1)
	t.logger.Debug("round complete", zap.Int("round", completed), zap.Int("next", next))
	t.observers.OnRound(models.RoundEvent{
		Completed: completed,
		Next:      next,
		At:        t.clock.Now(),
	})
}

// Run starts one goroutine per philosopher and waits for all of them.
// rounds <= 0 runs until ctx is done. A philosopher that fails leaves
// without cancelling the others, so they stall at the barrier until ctx ends.
func (t *Table) Run(ctx context.Context, rounds int) error {
	t.logger.Info("table opened",
		zap.Int("philosophers", t.cfg.Philosophers),
		zap.Int("rounds", rounds))
	start := time.Now()

	var g errgroup.Group
	for _, p := range t.philosophers {
		p := p
		g.Go(func() error {
			if err := p.Run(ctx, rounds); err != nil {
				return fmt.Errorf("%s: %w", p.Name, err)
			}
			return nil
		})
	}
	err := g.Wait()

	t.logger.Info("table closed",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("round", t.barrier.Round()),
		zap.Error(err))
	return err
}

// Round returns the current round number.
func (t *Table) Round() int {
	return t.barrier.Round()
}

// Completed returns how many rounds have finished since the table opened.
func (t *Table) Completed() int {
	return int(t.completed.Load())
}

// Barrier exposes the shared barrier for diagnostics.
func (t *Table) Barrier() *barrier.RoundBarrier {
	return t.barrier
}

// Philosopher returns the philosopher at seat i.
func (t *Table) Philosopher(i int) *philosopher.Philosopher {
	return t.philosophers[i]
}

// Snapshot returns per-seat meal counts.
func (t *Table) Snapshot() []models.SeatStats {
	out := make([]models.SeatStats, len(t.philosophers))
	for i, p := range t.philosophers {
		out[i] = models.SeatStats{
			Seat:    p.ID,
			Name:    p.Name,
			Meals:   p.Meals(),
			EatTime: p.EatTime,
		}
	}
	return out
}
