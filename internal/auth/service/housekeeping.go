package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/dev-gonzo/system-rpg-backend-sub000/internal/auth/store"
)

// HousekeepingService periodically deletes revocation entries whose tokens
// have expired on their own. An expired token fails verification before
// the blacklist is ever consulted, so dropping its entry changes nothing.
type HousekeepingService struct {
	Revoked  store.RevokedTokens
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates the cleanup worker. If interval is 0 or
// negative, defaults to 24 hours.
func NewHousekeepingService(revoked store.RevokedTokens, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	return &HousekeepingService{
		Revoked:  revoked,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut it
// down gracefully.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop shuts down the worker and blocks until any in-progress cleanup
// finishes.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup.
	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup purges expired revocation entries once. Exported so callers can
// trigger an out-of-cycle purge.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	purged, err := s.Revoked.PurgeExpired(ctx, time.Now().UTC())
	if err != nil {
		s.Logger.Error("failed to purge expired revocation entries", "error", err)
		return
	}
	s.Logger.Info("purged expired revocation entries", slog.Int64("purged", purged))
}
