package cron

import (
	"context"
	"time"

	bookingRepo "festoria/database/repository/booking"
	"festoria/models"
	"festoria/services/booking"

	"go.uber.org/zap"
)

// ReminderQueue accepts payment reminder payloads for asynchronous delivery.
type ReminderQueue interface {
	EnqueueReminder(ctx context.Context, payload models.ReminderPayload) error
}

// Sweeper runs the periodic deadline sweeps. It never touches booking state
// directly: every forced transition goes through the lifecycle engine as the
// system actor.
type Sweeper struct {
	Engine   booking.BookingService
	Repo     bookingRepo.BookingRepository
	Queue    ReminderQueue
	Logger   *zap.Logger
	Interval time.Duration
}

// Start runs the sweep loop until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.Logger.Info("booking sweeper started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			s.Logger.Info("booking sweeper shutdown signal received")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	if n, err := s.ExpirePendingBookings(ctx); err != nil {
		s.Logger.Error("auto-expiry sweep aborted", zap.Error(err))
	} else if n > 0 {
		s.Logger.Info("auto-expiry sweep finished", zap.Int("expired", n))
	}

	if n, err := s.SendPaymentReminders(ctx); err != nil {
		s.Logger.Error("payment reminder sweep aborted", zap.Error(err))
	} else if n > 0 {
		s.Logger.Info("payment reminder sweep finished", zap.Int("reminded", n))
	}
}

// ExpirePendingBookings force-cancels bookings the provider never acted on
// within the expiry window. A failure on one booking is logged and the sweep
// moves on; a store-level failure aborts and the next tick retries.
func (s *Sweeper) ExpirePendingBookings(ctx context.Context) (int, error) {
	expired, err := s.Repo.FindExpiredPending(time.Now())
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, b := range expired {
		if _, err := s.Engine.Cancel(ctx, b.ID, models.SystemActor, "auto-expired"); err != nil {
			// Concurrent provider action is expected here and not a defect.
			s.Logger.Warn("failed to auto-expire booking",
				zap.String("bookingId", b.ID), zap.Error(err))
			continue
		}
		processed++
	}
	return processed, nil
}

// SendPaymentReminders queues a reminder for every overdue confirmed booking.
// Status is untouched; a booking stays in the sweep until it pays or cancels,
// so reminders repeat each cycle it remains overdue.
func (s *Sweeper) SendPaymentReminders(ctx context.Context) (int, error) {
	overdue, err := s.Repo.FindPaymentOverdue(time.Now())
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, b := range overdue {
		payload := models.ReminderPayload{
			BookingID: b.ID,
			Recipient: models.RoleClient,
			Event:     models.EventPaymentReminder,
		}
		if err := s.Queue.EnqueueReminder(ctx, payload); err != nil {
			s.Logger.Warn("failed to enqueue payment reminder",
				zap.String("bookingId", b.ID), zap.Error(err))
			continue
		}
		processed++
	}
	return processed, nil
}
