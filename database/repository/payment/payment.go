package paymentRepo

import (
	"festoria/models"
)

// PaymentTransactionRepository defines methods for payment transaction data
// access. Only the payment reconciliation service writes through it.
type PaymentTransactionRepository interface {
	// Create inserts a new payment transaction record.
	Create(tx *models.PaymentTransaction) error
	// GetByID retrieves a transaction by its unique ID.
	GetByID(id string) (*models.PaymentTransaction, error)
	// GetByExternalRef retrieves a transaction by its gateway reference.
	GetByExternalRef(ref string) (*models.PaymentTransaction, error)
	// FindActiveByBooking returns the booking's non-terminal transaction, or
	// ErrNotFound when none is in flight.
	FindActiveByBooking(bookingID string) (*models.PaymentTransaction, error)
	// LatestCompletedByBooking returns the most recent completed transaction
	// for the booking.
	LatestCompletedByBooking(bookingID string) (*models.PaymentTransaction, error)
	// MarkCompleted finalizes a transaction: status completed, completed_at
	// stamped, gateway payment id and raw payload stored.
	MarkCompleted(id string, gatewayPaymentID string, raw map[string]any) error
	// MarkFailed records a failed attempt with the gateway's reason.
	MarkFailed(id string, reason string, raw map[string]any) error
	// MarkCancelled records a refund-driven cancellation of a completed
	// transaction.
	MarkCancelled(id string, reason string) error
	// EnsureIndexes creates the necessary indexes on the transactions collection.
	EnsureIndexes() error
}
