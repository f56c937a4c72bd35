package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "festoria/database/repository/booking"
	paymentRepo "festoria/database/repository/payment"
	"festoria/models"
	"festoria/services/booking"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InitiatePayment opens a gateway checkout for a confirmed booking. The
// pending transaction row is only persisted once the gateway handed back a
// reference, so a gateway timeout leaves no local state behind.
func (s *DefaultPaymentService) InitiatePayment(ctx context.Context, bookingID string, actor models.Actor) (*models.PaymentTransaction, error) {
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, booking.NewError(booking.CodeNotFound, "booking %s not found", bookingID)
		}
		return nil, err
	}
	if !b.OwnedBy(actor) {
		return nil, booking.NewError(booking.CodeNotFound, "booking %s not found", bookingID)
	}
	if b.Status != models.StatusConfirmedAwaitingPayment {
		return nil, booking.NewError(booking.CodeBookingNotPayable,
			"booking %s is %s; payment is only accepted while awaiting payment", bookingID, b.Status)
	}

	if active, err := s.TxRepo.FindActiveByBooking(bookingID); err == nil {
		return nil, booking.NewError(booking.CodePaymentAlreadyInFlight,
			"a payment for booking %s is already in flight (transaction %s)", bookingID, active.ID)
	} else if !errors.Is(err, paymentRepo.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	tx := &models.PaymentTransaction{
		ID:        uuid.New().String(),
		BookingID: bookingID,
		Amount:    b.TotalAmount,
		Currency:  s.currency(),
		Method:    "card",
		Status:    models.TxPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	gwCtx, cancel := context.WithTimeout(ctx, s.gatewayTimeout())
	defer cancel()
	ref, err := s.Gateway.Initiate(gwCtx, InitiateRequest{
		BookingID:     bookingID,
		TransactionID: tx.ID,
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		Description:   fmt.Sprintf("%s — %s", b.Package.Name, b.ServiceType),
	})
	if err != nil {
		s.Logger.Warn("payment initiation failed at gateway",
			zap.String("bookingId", bookingID), zap.Error(err))
		return nil, booking.NewError(booking.CodeGatewayUnavailable,
			"payment gateway unavailable; please retry")
	}

	tx.ExternalRef = ref.ExternalRef
	tx.RedirectURL = ref.RedirectURL
	if err := s.TxRepo.Create(tx); err != nil {
		// A concurrent initiation can slip past the in-flight check; the
		// unique pending index catches it at insert time.
		if errors.Is(err, paymentRepo.ErrDuplicatePending) {
			return nil, booking.NewError(booking.CodePaymentAlreadyInFlight,
				"a payment for booking %s is already in flight", bookingID)
		}
		return nil, err
	}

	s.Logger.Info("payment initiated",
		zap.String("bookingId", bookingID),
		zap.String("transactionId", tx.ID),
		zap.String("externalRef", tx.ExternalRef))
	return tx, nil
}

// VerifyPayment asks the gateway for the authoritative outcome of one
// reference and reconciles the local records. Completed transactions are
// returned as-is so gateway callbacks and client polling can both hit this
// path without double-applying.
func (s *DefaultPaymentService) VerifyPayment(ctx context.Context, externalRef string) (*models.PaymentTransaction, error) {
	tx, err := s.TxRepo.GetByExternalRef(externalRef)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrNotFound) {
			return nil, booking.NewError(booking.CodeNotFound, "no transaction for reference %s", externalRef)
		}
		return nil, err
	}
	if tx.Status.IsTerminal() {
		return tx, nil
	}

	gwCtx, cancel := context.WithTimeout(ctx, s.gatewayTimeout())
	defer cancel()
	result, err := s.Gateway.Verify(gwCtx, externalRef)
	if err != nil {
		s.Logger.Warn("payment verification failed at gateway",
			zap.String("externalRef", externalRef), zap.Error(err))
		return nil, booking.NewError(booking.CodeGatewayUnavailable,
			"payment gateway unavailable; please retry verification")
	}

	if !result.Paid {
		reason := result.FailureReason
		if reason == "" {
			reason = "payment was not completed"
		}
		if err := s.TxRepo.MarkFailed(tx.ID, reason, result.Raw); err != nil {
			return nil, err
		}
		if err := s.Bookings.SetPaymentStatus(tx.BookingID, models.PaymentFailed); err != nil {
			return nil, err
		}
		s.Logger.Info("payment verification recorded failure",
			zap.String("transactionId", tx.ID), zap.String("reason", reason))
		return s.TxRepo.GetByID(tx.ID)
	}

	if err := s.TxRepo.MarkCompleted(tx.ID, result.PaymentID, result.Raw); err != nil {
		return nil, err
	}
	if _, err := s.Marker.MarkPaid(ctx, tx.BookingID); err != nil {
		// A racing callback may have advanced the booking already; the
		// transaction record itself is settled either way.
		if !booking.IsCode(err, booking.CodeAlreadyInState) {
			return nil, err
		}
	}

	s.Logger.Info("payment verified",
		zap.String("bookingId", tx.BookingID),
		zap.String("transactionId", tx.ID))
	return s.TxRepo.GetByID(tx.ID)
}

// Refund reverses the booking's latest completed transaction. The
// marketplace's own record updates first; the gateway call is best-effort and
// a failure there is logged for asynchronous reconciliation rather than
// blocking the cancellation.
func (s *DefaultPaymentService) Refund(ctx context.Context, b *models.Booking, reason string) error {
	tx, err := s.TxRepo.LatestCompletedByBooking(b.ID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrNotFound) {
			return fmt.Errorf("refund: booking %s is paid but has no completed transaction", b.ID)
		}
		return err
	}

	if reason == "" {
		reason = "booking cancelled"
	}
	if err := s.TxRepo.MarkCancelled(tx.ID, reason); err != nil {
		return err
	}
	if err := s.Bookings.SetPaymentStatus(b.ID, models.PaymentRefunded); err != nil {
		return err
	}

	gwCtx, cancel := context.WithTimeout(ctx, s.gatewayTimeout())
	defer cancel()
	if err := s.Gateway.Refund(gwCtx, tx.GatewayPaymentID, tx.Amount); err != nil {
		s.Logger.Error("gateway refund failed; local refund recorded, needs reconciliation",
			zap.String("bookingId", b.ID),
			zap.String("transactionId", tx.ID),
			zap.String("gatewayPaymentId", tx.GatewayPaymentID),
			zap.Error(err))
		return nil
	}

	s.Logger.Info("refund completed",
		zap.String("bookingId", b.ID),
		zap.String("transactionId", tx.ID))
	return nil
}
