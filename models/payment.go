package models

import "time"

// TransactionStatus is the lifecycle of one payment attempt.
type TransactionStatus string

const (
	TxPending   TransactionStatus = "pending"
	TxCompleted TransactionStatus = "completed"
	TxFailed    TransactionStatus = "failed"
	TxCancelled TransactionStatus = "cancelled"
)

// IsTerminal returns true once the transaction can no longer change outcome.
func (s TransactionStatus) IsTerminal() bool {
	return s == TxCompleted || s == TxFailed || s == TxCancelled
}

// PaymentTransaction represents one attempt to collect payment for a booking
// via the external gateway. A booking may accumulate several transactions over
// time but carries at most one non-terminal transaction at any moment.
type PaymentTransaction struct {
	ID        string `bson:"id" json:"id"`
	BookingID string `bson:"booking_id" json:"booking_id"`

	// ExternalRef is the gateway-side identifier (empty until the gateway
	// assigns one). GatewayPaymentID is the charge object behind it, needed
	// for refunds; it is learned at verification time.
	ExternalRef      string `bson:"external_ref,omitempty" json:"external_ref,omitempty"`
	GatewayPaymentID string `bson:"gateway_payment_id,omitempty" json:"gateway_payment_id,omitempty"`
	RedirectURL      string `bson:"redirect_url,omitempty" json:"redirect_url,omitempty"`

	Amount   float64 `bson:"amount" json:"amount"`
	Currency string  `bson:"currency" json:"currency"`
	Method   string  `bson:"method" json:"method"`

	Status        TransactionStatus `bson:"status" json:"status"`
	FailureReason string            `bson:"failure_reason,omitempty" json:"failure_reason,omitempty"`
	RawResponse   map[string]any    `bson:"raw_response,omitempty" json:"raw_response,omitempty"`

	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}
