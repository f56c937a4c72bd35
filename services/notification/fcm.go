package notification

import (
	"context"
	"fmt"

	bookingRepo "festoria/database/repository/booking"
	directoryRepo "festoria/database/repository/directory"
	"festoria/models"
	"festoria/utils"

	"firebase.google.com/go/v4/messaging"
)

// DefaultNotificationService sends FCM pushes to booking parties.
type DefaultNotificationService struct {
	Bookings  bookingRepo.BookingRepository
	Directory directoryRepo.DirectoryRepository
}

func NewDefaultNotificationService(bookings bookingRepo.BookingRepository, directory directoryRepo.DirectoryRepository) (*DefaultNotificationService, error) {
	if bookings == nil || directory == nil {
		return nil, fmt.Errorf("notification service initialization error: booking or directory repository is nil")
	}
	return &DefaultNotificationService{Bookings: bookings, Directory: directory}, nil
}

// Notify resolves the recipient's contact record and pushes the event.
func (s *DefaultNotificationService) Notify(ctx context.Context, bookingID string, recipient models.Role, event models.BookingEvent, data map[string]string) error {
	booking, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return fmt.Errorf("Notify: could not load booking %s: %w", bookingID, err)
	}

	recipientID := booking.ClientID
	if recipient == models.RoleProvider {
		recipientID = booking.ProviderID
	}

	contact, err := s.Directory.GetContact(recipientID)
	if err != nil {
		return fmt.Errorf("Notify: could not resolve contact for %s: %w", recipientID, err)
	}
	if contact.FCMToken == "" {
		return fmt.Errorf("Notify: %s %s has no FCM token", recipient, recipientID)
	}

	title, body := eventCopy(event, booking)
	if data == nil {
		data = map[string]string{}
	}
	data["bookingId"] = booking.ID
	data["event"] = string(event)
	data["role"] = string(recipient)

	msg := &messaging.Message{
		Token: contact.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("Notify: failed to send FCM message: %w", err)
	}
	return nil
}

// eventCopy renders the user-facing title/body for a lifecycle event.
func eventCopy(event models.BookingEvent, b *models.Booking) (string, string) {
	switch event {
	case models.EventBookingCreated:
		return "New booking request", fmt.Sprintf("You have a new request for %s.", b.Package.Name)
	case models.EventBookingConfirmed:
		return "Booking confirmed", fmt.Sprintf("Your booking for %s is confirmed. Payment is due within 24 hours.", b.Package.Name)
	case models.EventBookingRejected:
		return "Booking declined", fmt.Sprintf("Your request for %s was declined by the provider.", b.Package.Name)
	case models.EventModificationProposed:
		return "Change proposed", fmt.Sprintf("The provider proposed changes to your %s booking.", b.Package.Name)
	case models.EventModificationAccepted:
		return "Change accepted", fmt.Sprintf("The client accepted your proposed changes for %s. Payment is now due.", b.Package.Name)
	case models.EventModificationDeclined:
		return "Change declined", fmt.Sprintf("The client declined your proposed changes for %s.", b.Package.Name)
	case models.EventBookingCancelled:
		return "Booking cancelled", fmt.Sprintf("The booking for %s has been cancelled.", b.Package.Name)
	case models.EventPaymentReceived:
		return "Payment received", fmt.Sprintf("Payment of %.2f was received for %s.", b.TotalAmount, b.Package.Name)
	case models.EventPaymentReminder:
		return "Payment due", fmt.Sprintf("Payment for %s is still outstanding. Complete it to keep your booking.", b.Package.Name)
	case models.EventServiceStarted:
		return "Service started", fmt.Sprintf("Your %s service is now underway.", b.Package.Name)
	case models.EventServiceCompleted:
		return "Service completed", fmt.Sprintf("Your %s service is complete. You can now leave a review.", b.Package.Name)
	case models.EventDisputeRaised:
		return "Dispute raised", fmt.Sprintf("A dispute was raised on the booking for %s.", b.Package.Name)
	case models.EventDisputeResolved:
		return "Dispute resolved", fmt.Sprintf("The dispute on the booking for %s has been resolved.", b.Package.Name)
	}
	return "Booking update", fmt.Sprintf("Your booking for %s was updated.", b.Package.Name)
}
