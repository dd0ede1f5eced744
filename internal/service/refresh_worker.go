package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Reloader refreshes data from the store
type Reloader interface {
	Reload(ctx context.Context) error
}

// RefreshWorker is a background worker that periodically reloads the finance data so that
// changes made to the store by other clients show up without a manual reload
type RefreshWorker struct {
	reloader Reloader
	logger   zerolog.Logger
	interval time.Duration
	timeout  time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	mu       sync.Mutex
	running  bool
	stopped  bool
	runs     int
	failures int
}

// RefreshWorkerConfig holds configuration for the refresh worker
type RefreshWorkerConfig struct {
	Interval time.Duration // How often to reload
	Timeout  time.Duration // Deadline for a single reload
}

// DefaultRefreshWorkerConfig returns sensible defaults
func DefaultRefreshWorkerConfig() RefreshWorkerConfig {
	return RefreshWorkerConfig{
		Interval: 5 * time.Minute,
		Timeout:  15 * time.Second,
	}
}

// NewRefreshWorker creates a new refresh worker
func NewRefreshWorker(reloader Reloader, logger zerolog.Logger, config RefreshWorkerConfig) *RefreshWorker {
	defaults := DefaultRefreshWorkerConfig()
	if config.Interval <= 0 {
		config.Interval = defaults.Interval
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}

	return &RefreshWorker{
		reloader: reloader,
		logger:   logger.With().Str("component", "refresh_worker").Logger(),
		interval: config.Interval,
		timeout:  config.Timeout,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the periodic reload. The first reload happens after one interval,
// since callers load the data themselves on startup. Once the worker has stopped, through
// Stop or its context, Start does nothing.
func (w *RefreshWorker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running || w.stopped {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	w.logger.Info().Dur("interval", w.interval).Msg("Starting refresh worker")

	go w.run(ctx)
}

// Stop gracefully stops the refresh worker and waits for an in-flight reload
func (w *RefreshWorker) Stop() {
	w.mu.Lock()
	if !w.running || w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	w.mu.Unlock()

	w.logger.Info().Msg("Stopping refresh worker")
	close(w.stopCh)
	<-w.doneCh
	w.logger.Info().Msg("Refresh worker stopped")
}

func (w *RefreshWorker) run(ctx context.Context) {
	defer func() {
		// Any exit is final; doneCh closes exactly once
		w.mu.Lock()
		w.running = false
		w.stopped = true
		w.mu.Unlock()
		close(w.doneCh)
	}()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *RefreshWorker) refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	start := time.Now()
	err := w.reloader.Reload(ctx)

	w.mu.Lock()
	w.runs++
	if err != nil {
		w.failures++
	}
	w.mu.Unlock()

	if err != nil {
		w.logger.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("Background reload failed")
		return
	}
	w.logger.Debug().Dur("elapsed", time.Since(start)).Msg("Background reload completed")
}

// IsRunning returns whether the worker is currently running
func (w *RefreshWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Stats returns how many reloads ran and how many of them failed
func (w *RefreshWorker) Stats() (runs, failures int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.runs, w.failures
}
