package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dafibh/fortuna/fortuna-tracker/internal/domain"
	"github.com/dafibh/fortuna/fortuna-tracker/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReloader struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (r *countingReloader) Reload(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.err
}

func (r *countingReloader) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func newTestRefreshWorker(reloader Reloader) *RefreshWorker {
	return NewRefreshWorker(reloader, zerolog.Nop(), RefreshWorkerConfig{
		Interval: 10 * time.Millisecond, // Fast interval for testing
		Timeout:  time.Second,
	})
}

func TestRefreshWorker_DefaultConfig(t *testing.T) {
	config := DefaultRefreshWorkerConfig()

	assert.Equal(t, 5*time.Minute, config.Interval)
	assert.Equal(t, 15*time.Second, config.Timeout)

	worker := NewRefreshWorker(&countingReloader{}, zerolog.Nop(), RefreshWorkerConfig{})
	assert.Equal(t, config.Interval, worker.interval)
	assert.Equal(t, config.Timeout, worker.timeout)
	assert.False(t, worker.IsRunning())
}

func TestRefreshWorker_ReloadsPeriodically(t *testing.T) {
	reloader := &countingReloader{}
	worker := newTestRefreshWorker(reloader)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker.Start(ctx)
	assert.True(t, worker.IsRunning())

	require.Eventually(t, func() bool { return reloader.Calls() >= 2 }, time.Second, 5*time.Millisecond)

	worker.Stop()
	assert.False(t, worker.IsRunning())

	runs, failures := worker.Stats()
	assert.GreaterOrEqual(t, runs, 2)
	assert.Zero(t, failures)
}

func TestRefreshWorker_CountsFailures(t *testing.T) {
	reloader := &countingReloader{err: errors.New("store down")}
	worker := newTestRefreshWorker(reloader)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker.Start(ctx)
	require.Eventually(t, func() bool {
		_, failures := worker.Stats()
		return failures >= 1
	}, time.Second, 5*time.Millisecond)
	worker.Stop()

	runs, failures := worker.Stats()
	assert.Equal(t, runs, failures)
}

func TestRefreshWorker_StartTwiceAndStopTwice(t *testing.T) {
	worker := newTestRefreshWorker(&countingReloader{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker.Start(ctx)
	worker.Start(ctx)
	assert.True(t, worker.IsRunning())

	worker.Stop()
	worker.Stop()
	assert.False(t, worker.IsRunning())

	// A stopped worker cannot be restarted
	worker.Start(ctx)
	assert.False(t, worker.IsRunning())
}

func TestRefreshWorker_StopWithoutStart(t *testing.T) {
	worker := newTestRefreshWorker(&countingReloader{})
	worker.Stop()
	assert.False(t, worker.IsRunning())
}

func TestRefreshWorker_ContextCancellation(t *testing.T) {
	worker := newTestRefreshWorker(&countingReloader{})

	ctx, cancel := context.WithCancel(context.Background())
	worker.Start(ctx)
	cancel()

	require.Eventually(t, func() bool { return !worker.IsRunning() }, time.Second, 5*time.Millisecond)
}

func TestRefreshWorker_NoRestartAfterContextCancellation(t *testing.T) {
	reloader := &countingReloader{}
	worker := newTestRefreshWorker(reloader)

	ctx, cancel := context.WithCancel(context.Background())
	worker.Start(ctx)
	cancel()
	require.Eventually(t, func() bool { return !worker.IsRunning() }, time.Second, 5*time.Millisecond)

	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel2()
	worker.Start(ctx2)
	assert.False(t, worker.IsRunning())

	calls := reloader.Calls()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, reloader.Calls())

	// Stop after the context already ended returns immediately
	worker.Stop()
	assert.False(t, worker.IsRunning())
}

func TestRefreshWorker_PicksUpStoreChanges(t *testing.T) {
	store := testutil.NewMockFinanceStore()
	finance := NewFinanceService(store, domain.DefaultCategoryRegistry(), nil, zerolog.Nop(), FinanceServiceConfig{})
	require.NoError(t, finance.Load(context.Background()))
	require.Empty(t, finance.Transactions())

	store.AddTransaction(testutil.Transaction("remote", "2024-03-01", domain.TransactionTypeIncome, "10",
		testutil.Split("cat_inc_1", "10")))

	worker := newTestRefreshWorker(finance)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker.Start(ctx)
	defer worker.Stop()

	require.Eventually(t, func() bool { return len(finance.Transactions()) == 1 }, time.Second, 5*time.Millisecond)
}
