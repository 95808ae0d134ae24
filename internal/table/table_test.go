// FILENAME: internal/table/table_test.go
package table_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xkilldash9x/round-table/internal/config"
	"github.com/xkilldash9x/round-table/internal/models"
	"github.com/xkilldash9x/round-table/internal/schedule"
	"github.com/xkilldash9x/round-table/internal/table"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fastTable(t *testing.T, n int) config.Table {
	t.Helper()
	cfg, err := config.Default(n)
	require.NoError(t, err)
	return cfg.WithEatTime(0)
}

// recorder checks event ordering as it goes and keeps per-round eaters.
type recorder struct {
	t       *testing.T
	mu      sync.Mutex
	n       int
	current int
	trips   int
	eaters  map[int][]int // trip index -> seats
}

func newRecorder(t *testing.T, n int) *recorder {
	return &recorder{t: t, n: n, eaters: make(map[int][]int)}
}

func (r *recorder) OnMeal(e models.MealEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	assert.Equal(r.t, r.current, e.Round, "%s ate in a round that is not open", e.Name)
	r.eaters[r.trips] = append(r.eaters[r.trips], e.Seat)
}

func (r *recorder) OnRound(e models.RoundEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	assert.Equal(r.t, r.current, e.Completed)
	assert.Equal(r.t, (e.Completed+1)%r.n, e.Next)
	r.current = e.Next
	r.trips++
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := table.New(config.Table{Philosophers: 3}, nil)
	assert.ErrorContains(t, err, "invalid table")
}

func TestRun_Liveness(t *testing.T) {
	const n = 5
	const cycles = 4
	rec := newRecorder(t, n)
	tbl, err := table.New(fastTable(t, n), zaptest.NewLogger(t), table.WithObserver(rec))
	require.NoError(t, err)

	require.NoError(t, tbl.Run(context.Background(), n*cycles))

	for _, s := range tbl.Snapshot() {
		assert.Equal(t, int64(schedule.MealsAfter(n*cycles, n, s.Seat)), s.Meals, s.Name)
		assert.Equal(t, int64(2*cycles), s.Meals, s.Name)
	}
	assert.Equal(t, 0, tbl.Round())
	assert.Equal(t, 0, tbl.Barrier().Arrived())

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, n*cycles, rec.trips)
	for trip := 0; trip < n*cycles; trip++ {
		assert.ElementsMatch(t, schedule.Candidates(trip%n, n), rec.eaters[trip], "trip %d", trip)
	}
}

func TestRun_EvenAndOddTables(t *testing.T) {
	for _, n := range []int{2, 3, 4, 6, 7} {
		tbl, err := table.New(fastTable(t, n), nil)
		require.NoError(t, err)
		require.NoError(t, tbl.Run(context.Background(), 2*n))

		var total int64
		for _, s := range tbl.Snapshot() {
			total += s.Meals
		}
		assert.Equal(t, int64(2*n*(n/2)), total, "n=%d", n)
	}
}

func TestRun_CancelStopsEveryone(t *testing.T) {
	const n = 5
	tripped := make(chan struct{}, 1)
	tbl, err := table.New(fastTable(t, n), zaptest.NewLogger(t),
		table.WithObserver(models.ObserverFuncs{Round: func(models.RoundEvent) {
			select {
			case tripped <- struct{}{}:
			default:
			}
		}}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- tbl.Run(ctx, 0) }()

	<-tripped
	cancel()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("table did not stop after cancellation")
	}
	assert.Equal(t, 0, tbl.Barrier().Arrived())
}

func TestRun_LeavingPhilosopherStallsTable(t *testing.T) {
	const n = 3
	tbl, err := table.New(fastTable(t, n), zaptest.NewLogger(t))
	require.NoError(t, err)

	gone, cancelGone := context.WithCancel(context.Background())
	cancelGone()
	require.ErrorIs(t, tbl.Philosopher(n-1).Run(gone, 0), context.Canceled)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	var wg sync.WaitGroup
	errs := make([]error, n-1)
	for i := 0; i < n-1; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = tbl.Philosopher(i).Run(ctx, 0)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	}
	assert.Equal(t, 0, tbl.Round(), "the barrier never trips without every seat")
	assert.Equal(t, int64(1), tbl.Philosopher(0).Meals(), "seat 0 eats once in round 0 and then waits")
}
