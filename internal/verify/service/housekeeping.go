package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/verify/internal/verify/store"
)

// HousekeepingService periodically persists the expired status for pending
// tokens whose expiry has passed. Readers resolve expiry lazily, so this is
// an optimization that keeps the persisted state honest, not a correctness
// requirement.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs the sweep.
// Non-blocking; call Stop() to gracefully shut the worker down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress sweep.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

// run is the main background worker loop.
func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run a sweep immediately on startup
	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep persists lazy expiry for any overdue pending tokens.
func (s *HousekeepingService) sweep() {
	ctx := context.Background()

	swept, err := s.Store.Tokens().MarkExpired(ctx, time.Now().UTC())
	if err != nil {
		s.Logger.Error("failed to mark expired tokens", "error", err)
		return
	}

	if swept > 0 {
		s.Logger.Info("housekeeping sweep completed", "tokens_expired", swept)
	} else {
		s.Logger.Debug("housekeeping sweep completed, nothing to expire")
	}
}
