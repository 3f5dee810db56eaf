package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	mlog "github.com/BrandonDHaskell/makerspace-crm/internal/log"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
	"github.com/BrandonDHaskell/makerspace-crm/internal/metrics"
)

// AccessLogPruner periodically deletes access log rows older than a
// configurable retention period.  It runs as a background goroutine and is
// stopped via its context or the Stop method.
//
// A retention of 0 disables pruning entirely.
type AccessLogPruner struct {
	store     store.AccessLogStore
	retention time.Duration
	interval  time.Duration
	logger    zerolog.Logger

	// once guards the single transition out of the idle state, by either
	// Start or an early Stop.
	once   sync.Once
	cancel context.CancelFunc
	done   chan struct{}
}

type PrunerConfig struct {
	// RetentionDays is how many days of access history to keep.
	// 0 keeps everything and the pruner never starts.
	RetentionDays int

	// IntervalHours is how often the pruner runs.  Defaults to 6.
	IntervalHours int
}

// NewAccessLogPruner creates a pruner but does not start it.
func NewAccessLogPruner(s store.AccessLogStore, cfg PrunerConfig, logger zerolog.Logger) *AccessLogPruner {
	interval := time.Duration(cfg.IntervalHours) * time.Hour
	if interval <= 0 {
		interval = 6 * time.Hour
	}

	return &AccessLogPruner{
		store:     s,
		retention: time.Duration(cfg.RetentionDays) * 24 * time.Hour,
		interval:  interval,
		logger:    logger.With().Str(mlog.FieldComponent, "access_log_pruner").Logger(),
		done:      make(chan struct{}),
	}
}

// Start runs one prune immediately, then repeats on the configured interval
// until ctx is cancelled or Stop is called. Only the first call has any
// effect, and Start after Stop does nothing.
func (p *AccessLogPruner) Start(ctx context.Context) {
	p.once.Do(func() {
		if p.retention <= 0 {
			p.logger.Info().Msg("access log pruner disabled (retention=0)")
			close(p.done)
			return
		}

		ctx, p.cancel = context.WithCancel(ctx)
		go p.loop(ctx)

		p.logger.Info().
			Int("retention_days", int(p.retention.Hours()/24)).
			Dur("interval", p.interval).
			Msg("access log pruner started")
	})
}

// Stop signals the pruner to exit and waits for it to finish.  Safe to call
// more than once, and returns at once if Start was never called.
func (p *AccessLogPruner) Stop() {
	p.once.Do(func() { close(p.done) })
	if p.cancel != nil {
		p.cancel()
	}
	<-p.done
}

func (p *AccessLogPruner) loop(ctx context.Context) {
	defer close(p.done)

	p.PruneOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.PruneOnce(ctx)
		}
	}
}

// PruneOnce deletes everything older than the retention window and returns
// the number of rows removed.
func (p *AccessLogPruner) PruneOnce(ctx context.Context) int64 {
	if p.retention <= 0 {
		return 0
	}
	cutoff := time.Now().UTC().Add(-p.retention)
	deleted, err := p.store.PruneOlderThan(ctx, cutoff)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Error().Err(err).Msg("access log prune failed")
		}
		return 0
	}
	metrics.AddPruned(deleted)
	if deleted > 0 {
		p.logger.Info().
			Int64("deleted", deleted).
			Time("cutoff", cutoff).
			Msg("access log pruned")
	}
	return deleted
}
