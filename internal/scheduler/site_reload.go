package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/coursesite/internal/domain"
	"github.com/MrSnakeDoc/coursesite/internal/index"
	"github.com/MrSnakeDoc/coursesite/internal/logger"
	"github.com/MrSnakeDoc/coursesite/internal/metrics"
)

// ErrRejected is returned when strict mode refuses a snapshot whose report
// has errors.
var ErrRejected = errors.New("snapshot rejected: validation report has errors")

// Builder produces a new snapshot from the site definition.
type Builder interface {
	Build(ctx context.Context) (*domain.Snapshot, error)
}

// SnapshotStore persists published snapshots.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snap *domain.Snapshot) error
}

// ReloaderOptions configures a SiteReloader.
type ReloaderOptions struct {
	Interval time.Duration // periodic reload, 0 disables the ticker
	Strict   bool          // reject snapshots with errors

	// WatchDir enables file-system driven reloads when set.
	WatchDir      string
	WatchDebounce time.Duration
}

// SiteReloader rebuilds the site snapshot on start, on a ticker, on manual
// triggers and on file changes, and publishes it to the index and store.
type SiteReloader struct {
	builder       Builder
	store         SnapshotStore // nil when redis is disabled
	index         *index.MemoryIndex
	metrics       *metrics.Metrics
	logger        logger.Logger
	opts          ReloaderOptions
	stopCh        chan struct{}
	manualTrigger chan struct{}

	reloadMu sync.Mutex // serializes Reload
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewSiteReloader creates a new site reloader
func NewSiteReloader(
	builder Builder,
	store SnapshotStore,
	idx *index.MemoryIndex,
	m *metrics.Metrics,
	log logger.Logger,
	opts ReloaderOptions,
	manualTrigger chan struct{},
) *SiteReloader {
	return &SiteReloader{
		builder:       builder,
		store:         store,
		index:         idx,
		metrics:       m,
		logger:        log,
		opts:          opts,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the site once, then keeps reloading in the background until
// Stop is called or ctx is done.
//
// A failed initial load is fatal only when nothing was restored earlier:
// a snapshot already in the index keeps being served.
func (sr *SiteReloader) Start(ctx context.Context) error {
	if err := sr.Reload(ctx); err != nil {
		if !sr.index.Ready() {
			return fmt.Errorf("initial reload failed: %w", err)
		}
		sr.logger.Warn("initial reload failed, serving restored snapshot",
			logger.String("revision", sr.index.Revision()),
			logger.Error(err))
	}

	fsEvents := make(chan struct{}, 1)
	if sr.opts.WatchDir != "" {
		w, err := newWatcher(sr.opts.WatchDir, sr.opts.WatchDebounce, sr.logger)
		if err != nil {
			return err
		}
		sr.wg.Add(1)
		go func() {
			defer sr.wg.Done()
			w.run(ctx, sr.stopCh, fsEvents)
		}()
	}

	sr.wg.Add(1)
	go func() {
		defer sr.wg.Done()
		sr.loop(ctx, fsEvents)
	}()

	return nil
}

func (sr *SiteReloader) loop(ctx context.Context, fsEvents <-chan struct{}) {
	var tick <-chan time.Time
	if sr.opts.Interval > 0 {
		ticker := time.NewTicker(sr.opts.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		var trigger string
		select {
		case <-tick:
			trigger = "interval"
		case <-sr.manualTrigger:
			trigger = "manual"
		case <-fsEvents:
			trigger = "watch"
		case <-sr.stopCh:
			return
		case <-ctx.Done():
			return
		}

		sr.logger.Info("reload triggered", logger.String("trigger", trigger))
		if err := sr.Reload(ctx); err != nil {
			sr.logger.Error("failed to reload site", logger.String("trigger", trigger), logger.Error(err))
		}
	}
}

// Stop stops the background goroutines and waits for them to exit.
func (sr *SiteReloader) Stop() {
	sr.stopOnce.Do(func() { close(sr.stopCh) })
	sr.wg.Wait()
}

// Reload builds a snapshot and publishes it to the index, then to the store
// (best effort). In strict mode a report with errors keeps the previous
// snapshot and returns ErrRejected.
func (sr *SiteReloader) Reload(ctx context.Context) error {
	sr.reloadMu.Lock()
	defer sr.reloadMu.Unlock()

	start := time.Now()
	sr.logger.Info("reloading site definition")

	snap, err := sr.builder.Build(ctx)
	if err != nil {
		sr.metrics.ObserveReload(metrics.ResultFailed, time.Since(start))
		sr.index.RecordFailure(err)
		return fmt.Errorf("failed to build site: %w", err)
	}

	sr.logReport(snap)

	if sr.opts.Strict && snap.Report.HasErrors() {
		sr.metrics.ObserveReload(metrics.ResultRejected, time.Since(start))
		err := fmt.Errorf("%w (%d errors)", ErrRejected, snap.Report.Count(domain.SeverityError))
		sr.index.RecordFailure(err)
		return err
	}

	sr.index.Update(snap)
	sr.metrics.ObserveReload(metrics.ResultSuccess, time.Since(start))
	sr.metrics.ObserveSnapshot(snap)

	sr.logger.Info("site snapshot published",
		logger.String("revision", snap.Revision),
		logger.Int("docs", len(snap.Docs)),
		logger.Int("sidebars", len(snap.Sidebars)),
		logger.Duration("elapsed", time.Since(start)))

	// Update Redis store (best effort)
	if sr.store != nil {
		if err := sr.store.SaveSnapshot(ctx, snap); err != nil {
			sr.logger.Warn("failed to save snapshot to redis", logger.Error(err))
			// Don't fail - memory index is the primary source
		}
	}

	return nil
}

func (sr *SiteReloader) logReport(snap *domain.Snapshot) {
	for _, is := range snap.Report.Issues {
		fields := []logger.Field{
			logger.String("code", is.Code),
			logger.String("location", is.Location),
		}
		switch is.Severity {
		case domain.SeverityError:
			sr.logger.Error(is.Message, fields...)
		case domain.SeverityWarning:
			sr.logger.Warn(is.Message, fields...)
		default:
			sr.logger.Info(is.Message, fields...)
		}
	}
}
