package cron

import (
	"fmt"
	"time"

	reservationRepo "riverwood/database/repository/reservation"
	"riverwood/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper cancels pending reservations whose deadline has passed. It runs
// outside the turn pipeline and shares reservation rows with the chat flow
// and the admin API; updates are last-writer-wins by design.
type Sweeper struct {
	Reservations reservationRepo.ReservationRepository
	TTL          time.Duration
	Interval     time.Duration
	Now          func() time.Time
	Logger       *zap.Logger
}

// NewSweeper builds a sweeper with the real clock.
func NewSweeper(repo reservationRepo.ReservationRepository, ttl, interval time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		Reservations: repo,
		TTL:          ttl,
		Interval:     interval,
		Now:          time.Now,
		Logger:       logger,
	}
}

// Start schedules periodic sweeps. The returned cron is already running;
// callers stop it on shutdown.
func (s *Sweeper) Start() (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", s.Interval), func() {
		s.SweepOnce()
	}); err != nil {
		return nil, fmt.Errorf("failed to schedule reservation sweep: %w", err)
	}
	c.Start()
	s.Logger.Info("reservation sweeper started",
		zap.Duration("interval", s.Interval), zap.Duration("ttl", s.TTL))
	return c, nil
}

// SweepOnce cancels every pending reservation older than the TTL and returns
// how many rows changed. Idempotent: a second run right after the first finds
// nothing left to cancel. One row's failure is logged and skipped, never
// aborting the rest of the sweep.
func (s *Sweeper) SweepOnce() int {
	cutoff := s.Now().UTC().Add(-s.TTL)
	expired, err := s.Reservations.GetPendingCreatedBefore(cutoff)
	if err != nil {
		s.Logger.Error("reservation sweep query failed", zap.Error(err))
		return 0
	}

	cancelled := 0
	for _, res := range expired {
		if err := s.Reservations.UpdateStatus(res.ID, models.ReservationCancelled); err != nil {
			s.Logger.Warn("failed to cancel expired reservation",
				zap.String("reservation", res.ID), zap.Error(err))
			continue
		}
		cancelled++
		s.Logger.Info("expired pending reservation cancelled",
			zap.String("reservation", res.ID),
			zap.Time("created_at", res.CreatedAt))
	}
	return cancelled
}
