package payment

import (
	"context"
	"time"

	bookingRepo "festoria/database/repository/booking"
	paymentRepo "festoria/database/repository/payment"
	"festoria/models"

	"go.uber.org/zap"
)

// PaymentService reconciles payment transactions against the external
// gateway. It is the only component that writes PaymentTransaction rows.
type PaymentService interface {
	// InitiatePayment creates a pending transaction for a payable booking and
	// returns it with the gateway redirect reference attached.
	InitiatePayment(ctx context.Context, bookingID string, actor models.Actor) (*models.PaymentTransaction, error)
	// VerifyPayment reconciles one gateway reference with its authoritative
	// status. Idempotent: re-verifying a completed transaction returns the
	// stored result.
	VerifyPayment(ctx context.Context, externalRef string) (*models.PaymentTransaction, error)
	// Refund reverses the booking's completed transaction. The local record
	// always updates; the gateway call is best-effort.
	Refund(ctx context.Context, booking *models.Booking, reason string) error
}

// BookingMarker is the slice of the lifecycle engine payment reconciliation
// drives when a verification succeeds. Reconciliation never writes booking
// status fields itself.
type BookingMarker interface {
	MarkPaid(ctx context.Context, bookingID string) (*models.Booking, error)
}

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	TxRepo   paymentRepo.PaymentTransactionRepository
	Bookings bookingRepo.BookingRepository
	Gateway  Gateway
	Marker   BookingMarker
	Logger   *zap.Logger

	Currency       string
	GatewayTimeout time.Duration
}

const defaultGatewayTimeout = 15 * time.Second

func (s *DefaultPaymentService) gatewayTimeout() time.Duration {
	if s.GatewayTimeout > 0 {
		return s.GatewayTimeout
	}
	return defaultGatewayTimeout
}

func (s *DefaultPaymentService) currency() string {
	if s.Currency != "" {
		return s.Currency
	}
	return "usd"
}
