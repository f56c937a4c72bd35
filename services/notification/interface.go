package notification

import (
	"context"

	"festoria/models"
)

// NotificationService dispatches a booking lifecycle event to one party.
// Callers treat it as fire-and-forget: delivery failures are logged, never
// propagated into the booking transition that triggered them.
type NotificationService interface {
	Notify(ctx context.Context, bookingID string, recipient models.Role, event models.BookingEvent, data map[string]string) error
}
