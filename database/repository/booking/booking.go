package bookingRepo

import (
	"time"

	"festoria/models"

	"go.mongodb.org/mongo-driver/bson"
)

// BookingRepository defines methods for booking data access. Status fields are
// only ever written through ApplyTransition so the lifecycle engine stays the
// single writer of booking state.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
	// ApplyTransition atomically applies an update document to a booking,
	// conditioned on its status still matching expected. Returns the updated
	// booking, ErrNotFound if the booking does not exist, or
	// ErrStatusConflict if another writer moved the status first.
	ApplyTransition(id string, expected models.BookingStatus, update bson.M) (*models.Booking, error)
	// SetPaymentStatus updates only the payment_status field.
	SetPaymentStatus(id string, status models.PaymentStatus) error
	// FindExpiredPending returns bookings still awaiting provider action whose
	// auto-expiry deadline passed.
	FindExpiredPending(now time.Time) ([]models.Booking, error)
	// FindPaymentOverdue returns confirmed bookings whose payment deadline passed.
	FindPaymentOverdue(now time.Time) ([]models.Booking, error)
	// CountByStatus aggregates booking counts by status for one actor's side.
	CountByStatus(actor models.Actor) (map[models.BookingStatus]int64, error)
	// EnsureIndexes creates the necessary indexes on the bookings collection.
	EnsureIndexes() error
}
