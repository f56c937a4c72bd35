package models

// BookingEvent names the lifecycle moments the notification dispatcher can
// announce to a booking party.
type BookingEvent string

const (
	EventBookingCreated       BookingEvent = "booking_created"
	EventBookingConfirmed     BookingEvent = "booking_confirmed"
	EventBookingRejected      BookingEvent = "booking_rejected"
	EventModificationProposed BookingEvent = "modification_proposed"
	EventModificationAccepted BookingEvent = "modification_accepted"
	EventModificationDeclined BookingEvent = "modification_declined"
	EventBookingCancelled     BookingEvent = "booking_cancelled"
	EventPaymentReceived      BookingEvent = "payment_received"
	EventPaymentReminder      BookingEvent = "payment_reminder"
	EventServiceStarted       BookingEvent = "service_started"
	EventServiceCompleted     BookingEvent = "service_completed"
	EventDisputeRaised        BookingEvent = "dispute_raised"
	EventDisputeResolved      BookingEvent = "dispute_resolved"
)

// ReminderPayload is the asynq task body for a queued payment reminder.
type ReminderPayload struct {
	BookingID string            `json:"bookingId"`
	Recipient Role              `json:"recipient"`
	Event     BookingEvent      `json:"event"`
	Data      map[string]string `json:"data,omitempty"`
}

// ContactRecord is the directory entry the dispatcher resolves a recipient
// against (push token, email).
type ContactRecord struct {
	ID          string `bson:"id" json:"id"`
	Role        Role   `bson:"role" json:"role"`
	DisplayName string `bson:"display_name" json:"display_name"`
	Email       string `bson:"email,omitempty" json:"email,omitempty"`
	FCMToken    string `bson:"fcm_token,omitempty" json:"fcm_token,omitempty"`
}

// ServicePackage is the catalog entry a booking snapshots at creation time.
// The catalog itself is owned by another service; bookings only read it.
type ServicePackage struct {
	ID          string   `bson:"id" json:"id"`
	ProviderID  string   `bson:"provider_id" json:"provider_id"`
	Name        string   `bson:"name" json:"name"`
	ServiceType string   `bson:"service_type" json:"service_type"`
	Price       float64  `bson:"price" json:"price"`
	Features    []string `bson:"features,omitempty" json:"features,omitempty"`
	Active      bool     `bson:"active" json:"active"`
}
