package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingRepo "festoria/database/repository/booking"
	"festoria/models"
	"festoria/services/booking"

	"go.uber.org/zap"
)

// mockEngine embeds the service interface so only the methods the sweeper
// drives need real implementations.
type mockEngine struct {
	booking.BookingService
	cancelFn func(ctx context.Context, id string, actor models.Actor, reason string) (*models.Booking, error)
}

func (m *mockEngine) Cancel(ctx context.Context, id string, actor models.Actor, reason string) (*models.Booking, error) {
	return m.cancelFn(ctx, id, actor, reason)
}

type mockRepo struct {
	bookingRepo.BookingRepository
	expiredFn func(now time.Time) ([]models.Booking, error)
	overdueFn func(now time.Time) ([]models.Booking, error)
}

func (m *mockRepo) FindExpiredPending(now time.Time) ([]models.Booking, error) {
	return m.expiredFn(now)
}
func (m *mockRepo) FindPaymentOverdue(now time.Time) ([]models.Booking, error) {
	return m.overdueFn(now)
}

type mockQueue struct {
	enqueueFn func(ctx context.Context, payload models.ReminderPayload) error
}

func (m *mockQueue) EnqueueReminder(ctx context.Context, payload models.ReminderPayload) error {
	return m.enqueueFn(ctx, payload)
}

func TestExpirePendingBookingsGoesThroughEngine(t *testing.T) {
	expired := []models.Booking{
		{ID: "bk-1", Status: models.StatusPendingProviderConfirmation},
		{ID: "bk-2", Status: models.StatusPendingProviderConfirmation},
	}
	var cancelled []string
	engine := &mockEngine{cancelFn: func(ctx context.Context, id string, actor models.Actor, reason string) (*models.Booking, error) {
		if actor != models.SystemActor {
			t.Errorf("auto-expiry must cancel as the system actor, got %+v", actor)
		}
		if reason != "auto-expired" {
			t.Errorf("reason = %q, want auto-expired", reason)
		}
		cancelled = append(cancelled, id)
		return &models.Booking{ID: id, Status: models.StatusCancelledByProvider}, nil
	}}
	s := &Sweeper{
		Engine: engine,
		Repo:   &mockRepo{expiredFn: func(now time.Time) ([]models.Booking, error) { return expired, nil }},
		Logger: zap.NewNop(),
	}

	n, err := s.ExpirePendingBookings(context.Background())
	if err != nil {
		t.Fatalf("ExpirePendingBookings failed: %v", err)
	}
	if n != 2 || len(cancelled) != 2 {
		t.Errorf("expired %d bookings (%v), want 2", n, cancelled)
	}
}

func TestExpirePendingBookingsSkipsFailedRows(t *testing.T) {
	expired := []models.Booking{{ID: "bk-1"}, {ID: "bk-2"}, {ID: "bk-3"}}
	engine := &mockEngine{cancelFn: func(ctx context.Context, id string, actor models.Actor, reason string) (*models.Booking, error) {
		if id == "bk-2" {
			// The provider confirmed between the query and the sweep.
			return nil, booking.NewError(booking.CodeConcurrentModification, "booking %s changed", id)
		}
		return &models.Booking{ID: id}, nil
	}}
	s := &Sweeper{
		Engine: engine,
		Repo:   &mockRepo{expiredFn: func(now time.Time) ([]models.Booking, error) { return expired, nil }},
		Logger: zap.NewNop(),
	}

	n, err := s.ExpirePendingBookings(context.Background())
	if err != nil {
		t.Fatalf("ExpirePendingBookings failed: %v", err)
	}
	if n != 2 {
		t.Errorf("processed %d, want 2 with the conflicting row skipped", n)
	}
}

func TestSendPaymentRemindersEnqueuesPerOverdueBooking(t *testing.T) {
	overdue := []models.Booking{
		{ID: "bk-1", Status: models.StatusConfirmedAwaitingPayment},
		{ID: "bk-2", Status: models.StatusConfirmedAwaitingPayment},
	}
	var payloads []models.ReminderPayload
	s := &Sweeper{
		Repo: &mockRepo{overdueFn: func(now time.Time) ([]models.Booking, error) { return overdue, nil }},
		Queue: &mockQueue{enqueueFn: func(ctx context.Context, payload models.ReminderPayload) error {
			payloads = append(payloads, payload)
			return nil
		}},
		Logger: zap.NewNop(),
	}

	n, err := s.SendPaymentReminders(context.Background())
	if err != nil {
		t.Fatalf("SendPaymentReminders failed: %v", err)
	}
	if n != 2 || len(payloads) != 2 {
		t.Fatalf("enqueued %d reminders, want 2", len(payloads))
	}
	for _, p := range payloads {
		if p.Recipient != models.RoleClient {
			t.Errorf("reminder recipient = %s, want client", p.Recipient)
		}
		if p.Event != models.EventPaymentReminder {
			t.Errorf("reminder event = %s, want %s", p.Event, models.EventPaymentReminder)
		}
	}
}

func TestSendPaymentRemindersAbortsOnStoreFailure(t *testing.T) {
	s := &Sweeper{
		Repo: &mockRepo{overdueFn: func(now time.Time) ([]models.Booking, error) {
			return nil, errors.New("connection reset")
		}},
		Logger: zap.NewNop(),
	}
	if _, err := s.SendPaymentReminders(context.Background()); err == nil {
		t.Fatal("expected the sweep to surface the store failure")
	}
}
