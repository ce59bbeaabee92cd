// Package scheduler runs periodic background jobs against the record store.
package scheduler

import (
	"context"
	"time"

	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/logger"
)

// DefaultStatsInterval is used when a non-positive interval is given.
const DefaultStatsInterval = time.Minute

// RecordSink receives per-source record counts.
type RecordSink interface {
	SetRecords(source string, n int)
}

// StoreStats periodically counts local and catalog records and publishes
// them to a sink.
type StoreStats struct {
	store    domain.Store
	sink     RecordSink
	logger   logger.Logger
	interval time.Duration
	timeout  time.Duration
	stopCh   chan struct{}
}

// NewStoreStats creates a stats refresher. timeout bounds each refresh.
func NewStoreStats(
	store domain.Store,
	sink RecordSink,
	log logger.Logger,
	interval time.Duration,
	timeout time.Duration,
) *StoreStats {
	if interval <= 0 {
		interval = DefaultStatsInterval
	}
	return &StoreStats{
		store:    store,
		sink:     sink,
		logger:   log,
		interval: interval,
		timeout:  timeout,
		stopCh:   make(chan struct{}),
	}
}

// Start refreshes once in the background, then on every tick until ctx is
// done or Stop is called.
func (s *StoreStats) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		if err := s.Refresh(ctx); err != nil {
			s.logger.Warn("initial store stats refresh failed", logger.Error(err))
		}
		for {
			select {
			case <-ticker.C:
				if err := s.Refresh(ctx); err != nil {
					s.logger.Warn("store stats refresh failed", logger.Error(err))
				}
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ends the refresh loop. It must be called at most once.
func (s *StoreStats) Stop() {
	close(s.stopCh)
}

// Refresh counts both sources. A failing source leaves its last value in place.
func (s *StoreStats) Refresh(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	local, err := s.store.Local().Count(ctx)
	if err != nil {
		return &domain.StoreError{Op: "count local games", Err: err}
	}
	s.sink.SetRecords(string(domain.SourceLocal), local)

	catalog, err := s.store.Catalog().Count(ctx)
	if err != nil {
		return &domain.StoreError{Op: "count catalog games", Err: err}
	}
	s.sink.SetRecords(string(domain.SourceCatalog), catalog)

	s.logger.Debug("store stats refreshed",
		logger.Int("local", local),
		logger.Int("catalog", catalog))
	return nil
}
