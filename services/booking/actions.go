package booking

import (
	"context"
	"time"

	"festoria/models"
)

// The methods below are the named specializations of the generic transition
// contract. Each fixes the target status and attaches its payload; the shared
// transition path enforces the table, actor permission and atomicity.

// Confirm is the provider accepting a pending booking.
func (s *DefaultBookingService) Confirm(ctx context.Context, id string, actor models.Actor) (*models.Booking, error) {
	return s.transition(ctx, id, models.StatusConfirmedAwaitingPayment, actor, transitionOpts{})
}

// Reject is the provider declining a pending booking.
func (s *DefaultBookingService) Reject(ctx context.Context, id string, actor models.Actor, reason string) (*models.Booking, error) {
	if reason == "" {
		reason = "rejected by provider"
	}
	return s.transition(ctx, id, models.StatusRejected, actor, transitionOpts{reason: reason})
}

// RequestModification is the provider proposing changed terms the client must
// accept before confirmation proceeds.
func (s *DefaultBookingService) RequestModification(ctx context.Context, id string, actor models.Actor, note string, changes models.BookingFieldChange) (*models.Booking, error) {
	mod := &models.ModificationRequest{
		ProposedBy:    actor.ID,
		ProposedAt:    time.Now(),
		Note:          note,
		Modifications: changes,
	}
	return s.transition(ctx, id, models.StatusModificationRequested, actor, transitionOpts{modification: mod})
}

// RespondToModification is the client's accept/decline of a proposed change.
// Accepting merges the proposed fields and moves straight to awaiting
// payment; declining returns the booking to the provider's queue.
func (s *DefaultBookingService) RespondToModification(ctx context.Context, id string, actor models.Actor, accepted bool) (*models.Booking, error) {
	target := models.StatusPendingProviderConfirmation
	if accepted {
		target = models.StatusConfirmedAwaitingPayment
	}
	return s.transition(ctx, id, target, actor, transitionOpts{})
}

// Cancel ends the booking from either side. The target status follows the
// acting role; the system cancels on the provider's behalf (auto-expiry).
func (s *DefaultBookingService) Cancel(ctx context.Context, id string, actor models.Actor, reason string) (*models.Booking, error) {
	var target models.BookingStatus
	switch actor.Role {
	case models.RoleClient:
		target = models.StatusCancelledByClient
	default:
		target = models.StatusCancelledByProvider
	}
	if reason == "" {
		reason = "cancelled"
	}
	return s.transition(ctx, id, target, actor, transitionOpts{reason: reason})
}

// StartService marks the engagement as underway.
func (s *DefaultBookingService) StartService(ctx context.Context, id string, actor models.Actor) (*models.Booking, error) {
	return s.transition(ctx, id, models.StatusInProgress, actor, transitionOpts{})
}

// CompleteService finalizes a delivered engagement.
func (s *DefaultBookingService) CompleteService(ctx context.Context, id string, actor models.Actor) (*models.Booking, error) {
	return s.transition(ctx, id, models.StatusCompleted, actor, transitionOpts{})
}

// RaiseDispute opens a post-payment disagreement from either party.
func (s *DefaultBookingService) RaiseDispute(ctx context.Context, id string, actor models.Actor, reason, details string) (*models.Booking, error) {
	dispute := &models.DisputeDetails{
		RaisedBy: actor.ID,
		RaisedAt: time.Now(),
		Reason:   reason,
		Details:  details,
	}
	return s.transition(ctx, id, models.StatusDisputeRaised, actor, transitionOpts{dispute: dispute})
}

// ResolveDispute records the out-of-band resolution and closes the dispute.
func (s *DefaultBookingService) ResolveDispute(ctx context.Context, id string, resolution string) (*models.Booking, error) {
	return s.transition(ctx, id, models.StatusDisputeResolved, models.SystemActor, transitionOpts{resolution: resolution})
}

// MarkPaid advances a verified booking to confirmed_paid. Only payment
// reconciliation calls it, as the system actor.
func (s *DefaultBookingService) MarkPaid(ctx context.Context, id string) (*models.Booking, error) {
	return s.transition(ctx, id, models.StatusConfirmedPaid, models.SystemActor, transitionOpts{})
}
