// Package worker runs the catalog warmer: a periodic loop that pre-embeds
// every scoreable job in the local catalog into the shared embedding cache,
// so the first match request after startup or a catalog change hits warm
// vectors instead of paying one backend call per job.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/talentforge-labs/matchcore/internal/core/ports/driven"
	"github.com/talentforge-labs/matchcore/internal/runtime"
)

// DefaultInterval is the pause between warm passes.
const DefaultInterval = 15 * time.Minute

// Warmer periodically embeds the local catalog into the embedding cache.
type Warmer struct {
	jobStore driven.JobStore
	services *runtime.Services
	logger   *slog.Logger
	interval time.Duration

	// Internal state
	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// WarmerConfig holds configuration for the catalog warmer.
type WarmerConfig struct {
	JobStore driven.JobStore
	Services *runtime.Services
	Logger   *slog.Logger
	Interval time.Duration
}

// NewWarmer creates a new catalog warmer.
func NewWarmer(cfg WarmerConfig) *Warmer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Warmer{
		jobStore: cfg.JobStore,
		services: cfg.Services,
		logger:   logger,
		interval: interval,
	}
}

// Start begins the warm loop. It runs one pass immediately, then one per
// interval until Stop is called or the context is cancelled.
func (w *Warmer) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	w.logger.Info("catalog warmer starting", "interval", w.interval)

	go func() {
		defer close(w.doneCh)

		w.warmPass(ctx)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				w.logger.Info("catalog warmer context cancelled")
				return
			case <-w.stopCh:
				w.logger.Info("catalog warmer stop signal received")
				return
			case <-ticker.C:
				w.warmPass(ctx)
			}
		}
	}()

	return nil
}

// Stop gracefully stops the warmer.
func (w *Warmer) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	w.logger.Info("catalog warmer stopped")
}

// Wait blocks until the warmer stops.
func (w *Warmer) Wait() {
	<-w.doneCh
}

// Running reports whether the warm loop is active.
func (w *Warmer) Running() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// warmPass embeds every scoreable catalog job once. Failures are logged
// and skipped; the next pass retries them.
func (w *Warmer) warmPass(ctx context.Context) {
	cache := w.services.EmbeddingCache()
	if cache == nil {
		w.logger.Debug("no embedding backend configured, skipping warm pass")
		return
	}

	jobs, err := w.jobStore.List(ctx)
	if err != nil {
		w.logger.Error("failed to list catalog jobs", "error", err)
		return
	}

	startTime := time.Now()
	warmed := 0
	failed := 0

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		default:
		}

		if !job.Scoreable() {
			continue
		}

		if _, err := cache.GetOrCompute(ctx, job.CompositeText()); err != nil {
			failed++
			w.logger.Warn("failed to warm job embedding", "job_id", job.ID, "error", err)
			continue
		}
		warmed++
	}

	w.logger.Info("warm pass completed",
		"jobs", len(jobs),
		"warmed", warmed,
		"failed", failed,
		"cached", cache.Len(),
		"duration", time.Since(startTime),
	)
}
