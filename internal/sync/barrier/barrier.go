// FILENAME: internal/sync/barrier/barrier.go
package barrier

import (
	"context"
	"sync"
)

// RoundBarrier is a reusable rendezvous for a fixed party of goroutines.
// Every party calls Advance once per round; the last one to arrive bumps the
// round number (mod parties) and releases everyone else in the same critical
// section.
//
// If fewer than parties goroutines keep calling Advance, the barrier never
// trips again and the remaining callers wait until their contexts end.
type RoundBarrier struct {
	mu      sync.Mutex
	parties int
	round   int
	arrived int

	// release is closed by the last arriver of the current round and then
	// replaced, so waiters of different rounds never share a signal.
	release chan struct{}

	onTrip func(completed, next int)
}

// Option configures a RoundBarrier.
type Option func(*RoundBarrier)

// WithTripHook registers fn to run each time a round completes.
// fn runs while the barrier lock is held and must not call back into the barrier.
func WithTripHook(fn func(completed, next int)) Option {
	return func(b *RoundBarrier) {
		b.onTrip = fn
	}
}

// New creates a barrier for the given number of participants.
func New(parties int, opts ...Option) *RoundBarrier {
	if parties <= 0 {
		panic("barrier: parties must be > 0")
	}
	b := &RoundBarrier{
		parties: parties,
		release: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Round returns the current round number. The value can be stale as soon as
// it is returned.
func (b *RoundBarrier) Round() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.round
}

// Arrived returns how many parties are currently waiting in Advance.
func (b *RoundBarrier) Arrived() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.arrived
}

// Parties returns the number of participants the barrier was built for.
func (b *RoundBarrier) Parties() int {
	return b.parties
}

// Advance registers the caller for the current round and blocks until all
// parties have arrived.
//
// If ctx ends first, the caller's arrival is withdrawn and ctx.Err() is
// returned. A caller that was already released returns nil even if ctx is
// done by the time it wakes up.
func (b *RoundBarrier) Advance(ctx context.Context) error {
	b.mu.Lock()
	if err := ctx.Err(); err != nil {
		b.mu.Unlock()
		return err
	}

	if b.arrived+1 == b.parties {
		completed := b.round
		b.arrived = 0
		b.round = (b.round + 1) % b.parties
		close(b.release)
		b.release = make(chan struct{})
		if b.onTrip != nil {
			b.onTrip(completed, b.round)
		}
		b.mu.Unlock()
		return nil
	}

	b.arrived++
	release := b.release
	b.mu.Unlock()

	select {
	case <-release:
		return nil
	case <-ctx.Done():
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	select {
	case <-release:
		// Tripped while we were acquiring the lock; our arrival was consumed.
		return nil
	default:
	}
	b.arrived--
	return ctx.Err()
}
