package booking

import (
	"context"
	"time"

	bookingRepo "festoria/database/repository/booking"
	catalogRepo "festoria/database/repository/catalog"
	"festoria/models"
	"festoria/services/notification"

	"go.uber.org/zap"
)

// CreateBookingInput is the client's request to engage a provider's package.
type CreateBookingInput struct {
	PackageID       string    `json:"package_id" binding:"required"`
	EventDate       time.Time `json:"event_date" binding:"required"`
	EventTime       string    `json:"event_time"`
	EventLocation   string    `json:"event_location" binding:"required"`
	EventType       string    `json:"event_type"`
	SpecialRequests string    `json:"special_requests"`
}

// BookingService is the lifecycle engine: the only component allowed to move
// a booking between statuses.
type BookingService interface {
	CreateBooking(ctx context.Context, client models.Actor, input CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, id string, actor models.Actor) (*models.Booking, error)
	Stats(ctx context.Context, actor models.Actor) (map[models.BookingStatus]int64, error)

	// Transition is the generic contract; the methods below are its
	// specializations with their own preconditions and side effects.
	Transition(ctx context.Context, id string, requested models.BookingStatus, actor models.Actor) (*models.Booking, error)

	Confirm(ctx context.Context, id string, actor models.Actor) (*models.Booking, error)
	Reject(ctx context.Context, id string, actor models.Actor, reason string) (*models.Booking, error)
	RequestModification(ctx context.Context, id string, actor models.Actor, note string, changes models.BookingFieldChange) (*models.Booking, error)
	RespondToModification(ctx context.Context, id string, actor models.Actor, accepted bool) (*models.Booking, error)
	Cancel(ctx context.Context, id string, actor models.Actor, reason string) (*models.Booking, error)
	StartService(ctx context.Context, id string, actor models.Actor) (*models.Booking, error)
	CompleteService(ctx context.Context, id string, actor models.Actor) (*models.Booking, error)
	RaiseDispute(ctx context.Context, id string, actor models.Actor, reason, details string) (*models.Booking, error)
	ResolveDispute(ctx context.Context, id string, resolution string) (*models.Booking, error)

	// MarkPaid is the system transition driven by payment verification.
	MarkPaid(ctx context.Context, id string) (*models.Booking, error)
}

// RefundService is the slice of payment reconciliation the engine needs when
// a paid booking is cancelled.
type RefundService interface {
	Refund(ctx context.Context, booking *models.Booking, reason string) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	Catalog  catalogRepo.CatalogRepository
	Payments RefundService
	Notifier notification.NotificationService
	Logger   *zap.Logger

	// Deadline windows; zero values fall back to the marketplace defaults.
	AutoExpiryWindow time.Duration
	PaymentDueWindow time.Duration
}

const (
	defaultAutoExpiryWindow = 48 * time.Hour
	defaultPaymentDueWindow = 24 * time.Hour
)

func (s *DefaultBookingService) autoExpiryWindow() time.Duration {
	if s.AutoExpiryWindow > 0 {
		return s.AutoExpiryWindow
	}
	return defaultAutoExpiryWindow
}

func (s *DefaultBookingService) paymentDueWindow() time.Duration {
	if s.PaymentDueWindow > 0 {
		return s.PaymentDueWindow
	}
	return defaultPaymentDueWindow
}
