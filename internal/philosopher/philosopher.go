// FILENAME: internal/philosopher/philosopher.go
package philosopher

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/xkilldash9x/round-table/internal/config"
	"github.com/xkilldash9x/round-table/internal/models"
	"github.com/xkilldash9x/round-table/internal/schedule"
	"go.uber.org/zap"
)

// Barrier is the round rendezvous shared by every philosopher at a table.
type Barrier interface {
	Round() int
	Advance(ctx context.Context) error
}

// Philosopher decides each round whether it may eat, eats if so, then waits
// at the barrier for the rest of the table.
type Philosopher struct {
	ID      int
	Name    string
	EatTime time.Duration

	count   int
	barrier Barrier
	meals   atomic.Int64
	eating  atomic.Bool

	clock    clock.Clock
	observer models.Observer
	logger   *zap.Logger
}

// Option configures a Philosopher.
type Option func(*Philosopher)

// WithClock replaces the wall clock used for eating.
func WithClock(c clock.Clock) Option {
	return func(p *Philosopher) { p.clock = c }
}

// WithObserver sets the receiver of meal events.
func WithObserver(o models.Observer) Option {
	return func(p *Philosopher) { p.observer = o }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Philosopher) { p.logger = l }
}

// New seats a philosopher at position id of a table of count seats.
func New(seat config.Seat, id, count int, b Barrier, opts ...Option) *Philosopher {
	p := &Philosopher{
		ID:      id,
		Name:    seat.Name,
		EatTime: seat.EatTime,
		count:   count,
		barrier: b,
		clock:   clock.New(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(zap.String("philosopher", p.Name), zap.Int("seat", p.ID))
	return p
}

// Meals returns how many times the philosopher has eaten.
func (p *Philosopher) Meals() int64 {
	return p.meals.Load()
}

// Eating reports whether the philosopher is currently eating.
func (p *Philosopher) Eating() bool {
	return p.eating.Load()
}

// Run executes the decide/eat/advance loop. With rounds <= 0 it runs until
// ctx ends; otherwise it returns after rounds barrier passes.
//
// Any error ends the loop for good. The barrier needs every seat, so the
// rest of the table stalls once one philosopher has left.
func (p *Philosopher) Run(ctx context.Context, rounds int) error {
	p.logger.Debug("philosopher seated", zap.Duration("eat_time", p.EatTime))
	for done := 0; rounds <= 0 || done < rounds; done++ {
		if err := p.step(ctx); err != nil {
			p.logger.Info("philosopher left the table",
				zap.Int64("meals", p.Meals()),
				zap.Error(err))
			return err
		}
	}
	p.logger.Debug("philosopher finished", zap.Int64("meals", p.Meals()))
	return nil
}

// step runs one round: decide, maybe eat, then wait for the table.
func (p *Philosopher) step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	round := p.barrier.Round()
	for n := schedule.Matches(round, p.count, p.ID); n > 0; n-- {
		if err := p.eat(ctx, round); err != nil {
			return err
		}
	}
	return p.barrier.Advance(ctx)
}

func (p *Philosopher) eat(ctx context.Context, round int) error {
	meals := p.meals.Add(1)
	p.eating.Store(true)
	defer p.eating.Store(false)

	if p.observer != nil {
		p.observer.OnMeal(models.MealEvent{
			Seat:  p.ID,
			Name:  p.Name,
			Meals: meals,
			Round: round,
			At:    p.clock.Now(),
		})
	}
	p.logger.Debug("eating", zap.Int("round", round), zap.Int64("meals", meals))

	if p.EatTime <= 0 {
		return nil
	}
	timer := p.clock.Timer(p.EatTime)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
