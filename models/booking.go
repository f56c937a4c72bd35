package models

import "time"

// PackageSnapshot is an immutable copy of the catalog package taken when the
// booking is created. Later catalog edits never touch existing bookings.
type PackageSnapshot struct {
	PackageID   string   `bson:"package_id" json:"package_id"`
	Name        string   `bson:"name" json:"name"`
	ServiceType string   `bson:"service_type" json:"service_type"`
	Price       float64  `bson:"price" json:"price"`
	Features    []string `bson:"features,omitempty" json:"features,omitempty"`
}

// ModificationRequest is a provider-proposed change to booking terms awaiting
// the client's accept/decline.
type ModificationRequest struct {
	ProposedBy    string             `bson:"proposed_by" json:"proposed_by"`
	ProposedAt    time.Time          `bson:"proposed_at" json:"proposed_at"`
	Note          string             `bson:"note,omitempty" json:"note,omitempty"`
	Modifications BookingFieldChange `bson:"modifications" json:"modifications"`
}

// BookingFieldChange carries the subset of booking fields a modification may
// rewrite. Nil pointers leave the field untouched.
type BookingFieldChange struct {
	EventDate     *time.Time `bson:"event_date,omitempty" json:"event_date,omitempty"`
	EventTime     *string    `bson:"event_time,omitempty" json:"event_time,omitempty"`
	EventLocation *string    `bson:"event_location,omitempty" json:"event_location,omitempty"`
	TotalAmount   *float64   `bson:"total_amount,omitempty" json:"total_amount,omitempty"`
}

// CancellationDetails records who ended the booking, when, and why.
type CancellationDetails struct {
	Reason      string    `bson:"reason" json:"reason"`
	RequestedBy string    `bson:"requested_by" json:"requested_by"`
	RequestedAt time.Time `bson:"requested_at" json:"requested_at"`
}

// DisputeDetails records a post-payment disagreement and, once resolved, its
// resolution payload.
type DisputeDetails struct {
	RaisedBy   string     `bson:"raised_by" json:"raised_by"`
	RaisedAt   time.Time  `bson:"raised_at" json:"raised_at"`
	Reason     string     `bson:"reason" json:"reason"`
	Details    string     `bson:"details,omitempty" json:"details,omitempty"`
	Resolution string     `bson:"resolution,omitempty" json:"resolution,omitempty"`
	ResolvedAt *time.Time `bson:"resolved_at,omitempty" json:"resolved_at,omitempty"`
}

// Booking represents one service engagement request tracked through the fixed
// status lifecycle.
type Booking struct {
	ID         string `bson:"id" json:"id"`
	ClientID   string `bson:"client_id" json:"client_id"`
	ProviderID string `bson:"provider_id" json:"provider_id"`

	Package     PackageSnapshot `bson:"package" json:"package"`
	ServiceType string          `bson:"service_type" json:"service_type"`

	EventDate       time.Time `bson:"event_date" json:"event_date"`
	EventTime       string    `bson:"event_time" json:"event_time"`
	EventLocation   string    `bson:"event_location" json:"event_location"`
	EventType       string    `bson:"event_type" json:"event_type"`
	TotalAmount     float64   `bson:"total_amount" json:"total_amount"`
	SpecialRequests string    `bson:"special_requests,omitempty" json:"special_requests,omitempty"`

	Status        BookingStatus `bson:"status" json:"status"`
	PaymentStatus PaymentStatus `bson:"payment_status" json:"payment_status"`

	ModificationRequest *ModificationRequest `bson:"modification_request,omitempty" json:"modification_request,omitempty"`
	Cancellation        *CancellationDetails `bson:"cancellation,omitempty" json:"cancellation,omitempty"`
	Dispute             *DisputeDetails      `bson:"dispute,omitempty" json:"dispute,omitempty"`

	ConfirmedAt    *time.Time `bson:"confirmed_at,omitempty" json:"confirmed_at,omitempty"`
	PaymentDueDate *time.Time `bson:"payment_due_date,omitempty" json:"payment_due_date,omitempty"`
	AutoExpiryDate *time.Time `bson:"auto_expiry_date,omitempty" json:"auto_expiry_date,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// OwnedBy reports whether the actor is a party to the booking. The system
// actor owns every booking.
func (b *Booking) OwnedBy(actor Actor) bool {
	switch actor.Role {
	case RoleClient:
		return b.ClientID == actor.ID
	case RoleProvider:
		return b.ProviderID == actor.ID
	case RoleSystem:
		return true
	}
	return false
}

// CounterpartRole returns the other side of the booking relative to role.
func CounterpartRole(role Role) Role {
	if role == RoleClient {
		return RoleProvider
	}
	return RoleClient
}
