package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "festoria/database/repository/booking"
	"festoria/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// transitionOpts carries the state-specific payloads a transition may attach.
type transitionOpts struct {
	reason       string
	modification *models.ModificationRequest
	dispute      *models.DisputeDetails
	resolution   string
}

// Transition applies the generic transition contract: table lookup, actor
// permission, then one atomic compare-and-swap write carrying every side
// field the target state requires.
func (s *DefaultBookingService) Transition(ctx context.Context, id string, requested models.BookingStatus, actor models.Actor) (*models.Booking, error) {
	return s.transition(ctx, id, requested, actor, transitionOpts{})
}

func (s *DefaultBookingService) transition(ctx context.Context, id string, requested models.BookingStatus, actor models.Actor, opts transitionOpts) (*models.Booking, error) {
	if !requested.IsValid() {
		return nil, NewError(CodeInvalidTransition, "unknown status %q", requested)
	}

	current, err := s.getOwned(id, actor)
	if err != nil {
		return nil, err
	}

	if current.Status == requested {
		return nil, NewError(CodeAlreadyInState, "booking %s is already %s", id, requested)
	}
	if !current.Status.TransitionAllowed(requested, actor.Role) {
		return nil, NewError(CodeInvalidTransition,
			"cannot move booking %s from %s to %s as %s", id, current.Status, requested, actor.Role)
	}

	// A paid booking being cancelled refunds before the cancellation is
	// finalized. The refund is durable locally even if the gateway is down.
	if requested.IsCancellation() && current.PaymentStatus == models.PaymentPaid {
		if err := s.Payments.Refund(ctx, current, opts.reason); err != nil {
			return nil, err
		}
	}

	update := s.buildTransitionUpdate(current, requested, actor, opts)
	updated, err := s.Repo.ApplyTransition(id, current.Status, update)
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrStatusConflict):
			return nil, NewError(CodeConcurrentModification,
				"booking %s changed while processing; re-fetch and retry", id)
		case errors.Is(err, bookingRepo.ErrNotFound):
			return nil, NewError(CodeNotFound, "booking %s not found", id)
		default:
			return nil, err
		}
	}

	s.Logger.Info("booking transition applied",
		zap.String("bookingId", id),
		zap.String("from", string(current.Status)),
		zap.String("to", string(requested)),
		zap.String("actorRole", string(actor.Role)))

	s.notifyTransition(ctx, updated, current.Status, requested, actor)
	return updated, nil
}

// buildTransitionUpdate assembles the single atomic update for the requested
// state so status, payment status and deadline fields can never drift apart.
func (s *DefaultBookingService) buildTransitionUpdate(current *models.Booking, requested models.BookingStatus, actor models.Actor, opts transitionOpts) bson.M {
	now := time.Now()
	set := bson.M{
		"status":     requested,
		"updated_at": now,
	}
	unset := bson.M{}

	switch requested {
	case models.StatusConfirmedAwaitingPayment:
		set["confirmed_at"] = now
		set["payment_due_date"] = now.Add(s.paymentDueWindow())
		unset["auto_expiry_date"] = ""
		// Reached from modification_requested only via client accept: the
		// proposed field changes land atomically with the state change.
		if current.Status == models.StatusModificationRequested {
			applyModification(set, current.ModificationRequest)
			unset["modification_request"] = ""
		}

	case models.StatusPendingProviderConfirmation:
		// Declined modification: the booking goes back to waiting on the
		// provider, so the expiry clock restarts.
		set["auto_expiry_date"] = now.Add(s.autoExpiryWindow())
		unset["modification_request"] = ""

	case models.StatusModificationRequested:
		set["modification_request"] = opts.modification
		unset["auto_expiry_date"] = ""

	case models.StatusRejected, models.StatusCancelledByClient, models.StatusCancelledByProvider:
		set["cancellation"] = &models.CancellationDetails{
			Reason:      opts.reason,
			RequestedBy: actor.ID,
			RequestedAt: now,
		}
		unset["auto_expiry_date"] = ""
		unset["payment_due_date"] = ""

	case models.StatusConfirmedPaid:
		set["payment_status"] = models.PaymentPaid
		unset["payment_due_date"] = ""

	case models.StatusDisputeRaised:
		set["dispute"] = opts.dispute

	case models.StatusDisputeResolved:
		set["dispute.resolution"] = opts.resolution
		set["dispute.resolved_at"] = now
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

// applyModification merges the accepted field changes into the same update
// document as the state change.
func applyModification(set bson.M, req *models.ModificationRequest) {
	if req == nil {
		return
	}
	changes := req.Modifications
	if changes.EventDate != nil {
		set["event_date"] = *changes.EventDate
	}
	if changes.EventTime != nil {
		set["event_time"] = *changes.EventTime
	}
	if changes.EventLocation != nil {
		set["event_location"] = *changes.EventLocation
	}
	if changes.TotalAmount != nil {
		set["total_amount"] = *changes.TotalAmount
	}
}

// getOwned fetches a booking and verifies the actor is a party to it. A
// booking the actor cannot see is reported as absent, not forbidden.
func (s *DefaultBookingService) getOwned(id string, actor models.Actor) (*models.Booking, error) {
	b, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, NewError(CodeNotFound, "booking %s not found", id)
		}
		return nil, err
	}
	if !b.OwnedBy(actor) {
		return nil, NewError(CodeNotFound, "booking %s not found", id)
	}
	return b, nil
}

// notifyTransition dispatches fire-and-forget notifications; delivery failure
// never fails the transition.
func (s *DefaultBookingService) notifyTransition(ctx context.Context, b *models.Booking, from, requested models.BookingStatus, actor models.Actor) {
	if s.Notifier == nil {
		return
	}

	event, recipients := transitionEvent(from, requested, actor)
	if event == "" {
		return
	}
	for _, role := range recipients {
		if err := s.Notifier.Notify(ctx, b.ID, role, event, nil); err != nil {
			s.Logger.Warn("failed to dispatch booking notification",
				zap.String("bookingId", b.ID),
				zap.String("event", string(event)),
				zap.Error(err))
		}
	}
}

// transitionEvent maps a transition to the notification event and its
// recipients. The acting party is not notified of its own action.
func transitionEvent(from, requested models.BookingStatus, actor models.Actor) (models.BookingEvent, []models.Role) {
	both := []models.Role{models.RoleClient, models.RoleProvider}
	counterpart := []models.Role{models.CounterpartRole(actor.Role)}

	switch requested {
	case models.StatusConfirmedAwaitingPayment:
		// Reached by the client accepting proposed terms, or by the provider
		// confirming a pending request.
		if from == models.StatusModificationRequested {
			return models.EventModificationAccepted, []models.Role{models.RoleProvider}
		}
		return models.EventBookingConfirmed, []models.Role{models.RoleClient}
	case models.StatusRejected:
		return models.EventBookingRejected, []models.Role{models.RoleClient}
	case models.StatusModificationRequested:
		return models.EventModificationProposed, []models.Role{models.RoleClient}
	case models.StatusPendingProviderConfirmation:
		return models.EventModificationDeclined, []models.Role{models.RoleProvider}
	case models.StatusCancelledByClient, models.StatusCancelledByProvider:
		if actor.Role == models.RoleSystem {
			return models.EventBookingCancelled, both
		}
		return models.EventBookingCancelled, counterpart
	case models.StatusConfirmedPaid:
		return models.EventPaymentReceived, both
	case models.StatusInProgress:
		return models.EventServiceStarted, []models.Role{models.RoleClient}
	case models.StatusCompleted:
		return models.EventServiceCompleted, []models.Role{models.RoleClient}
	case models.StatusDisputeRaised:
		return models.EventDisputeRaised, counterpart
	case models.StatusDisputeResolved:
		return models.EventDisputeResolved, both
	}
	return "", nil
}
