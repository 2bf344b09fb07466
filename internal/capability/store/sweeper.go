package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/allisson/minidrive/internal/metrics"
)

// Sweeper periodically removes expired capability records so storage does not
// grow unboundedly under read-light workloads. It is owned by the store's
// lifecycle: started once at process start, stopped on shutdown. There is no
// fire-and-forget path; Stop blocks until the loop has exited.
type Sweeper struct {
	store    *Store
	interval time.Duration
	logger   *slog.Logger
	metrics  metrics.BusinessMetrics

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewSweeper creates a Sweeper over the given store.
func NewSweeper(
	store *Store,
	interval time.Duration,
	logger *slog.Logger,
	businessMetrics metrics.BusinessMetrics,
) *Sweeper {
	return &Sweeper{
		store:    store,
		interval: interval,
		logger:   logger,
		metrics:  businessMetrics,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop. The loop also exits when ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

// Stop terminates the sweep loop and waits for it to exit. Safe to call more
// than once.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	<-s.done
}

// run executes sweeps on a fixed interval, independent of request traffic.
func (s *Sweeper) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("capability sweeper started",
		slog.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("capability sweeper stopped", slog.String("reason", "context cancelled"))
			return
		case <-s.stop:
			s.logger.Info("capability sweeper stopped", slog.String("reason", "shutdown"))
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

// sweepOnce runs a single sweep and records the outcome. A failing sweep is
// logged and retried on the next tick; it never terminates the loop.
func (s *Sweeper) sweepOnce(ctx context.Context) {
	count, err := s.store.Sweep(ctx)
	if err != nil {
		s.logger.Error("capability sweep failed", slog.Any("error", err))
		s.metrics.RecordOperation(ctx, "capability", "sweep", "error")
		return
	}

	s.metrics.RecordOperation(ctx, "capability", "sweep", "success")
	s.metrics.RecordSweep(ctx, count)

	if count > 0 {
		s.logger.Info("capability sweep removed expired records",
			slog.Int64("count", count))
	}
}
