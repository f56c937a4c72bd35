package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InitiateRequest is what the gateway needs to open a checkout for a booking.
type InitiateRequest struct {
	BookingID     string
	TransactionID string
	Amount        float64
	Currency      string
	Description   string
}

// GatewayReference is the gateway-assigned handle for a checkout in flight.
type GatewayReference struct {
	ExternalRef string
	RedirectURL string
}

// VerifyResult is the gateway's authoritative answer for one reference.
type VerifyResult struct {
	Paid          bool
	PaymentID     string
	FailureReason string
	Raw           map[string]any
}

// Gateway abstracts the external payment provider behind initiate, verify and
// refund. Implementations must honor ctx cancellation and deadlines.
type Gateway interface {
	Initiate(ctx context.Context, req InitiateRequest) (*GatewayReference, error)
	Verify(ctx context.Context, externalRef string) (*VerifyResult, error)
	Refund(ctx context.Context, paymentID string, amount float64) error
}

// MockGateway approves everything without leaving the process. Enabled with
// PAYMENT_GATEWAY_MOCK for local development and staging.
type MockGateway struct{}

func (MockGateway) Initiate(ctx context.Context, req InitiateRequest) (*GatewayReference, error) {
	ref := "mock_" + uuid.New().String()
	return &GatewayReference{
		ExternalRef: ref,
		RedirectURL: fmt.Sprintf("https://gateway.mock/checkout/%s", ref),
	}, nil
}

func (MockGateway) Verify(ctx context.Context, externalRef string) (*VerifyResult, error) {
	return &VerifyResult{
		Paid:      true,
		PaymentID: "mock_pi_" + uuid.New().String(),
		Raw: map[string]any{
			"id":             externalRef,
			"payment_status": "paid",
			"verified_at":    time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

func (MockGateway) Refund(ctx context.Context, paymentID string, amount float64) error {
	return nil
}
