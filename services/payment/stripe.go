package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/refund"
)

// StripeGateway implements Gateway on Stripe Checkout Sessions.
type StripeGateway struct {
	SuccessURL string
	CancelURL  string
}

func NewStripeGateway(successURL, cancelURL string) *StripeGateway {
	return &StripeGateway{SuccessURL: successURL, CancelURL: cancelURL}
}

// Initiate opens a checkout session for the booking amount and returns its id
// and hosted payment URL.
func (g *StripeGateway) Initiate(ctx context.Context, req InitiateRequest) (*GatewayReference, error) {
	params := &stripe.CheckoutSessionParams{
		Params:     stripe.Params{Context: ctx},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.SuccessURL),
		CancelURL:  stripe.String(g.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(minorUnits(req.Amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.AddMetadata("booking_id", req.BookingID)
	params.AddMetadata("transaction_id", req.TransactionID)

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to create checkout session: %w", err)
	}
	return &GatewayReference{ExternalRef: sess.ID, RedirectURL: sess.URL}, nil
}

// Verify fetches the session and reports whether Stripe considers it paid.
func (g *StripeGateway) Verify(ctx context.Context, externalRef string) (*VerifyResult, error) {
	params := &stripe.CheckoutSessionParams{Params: stripe.Params{Context: ctx}}
	params.AddExpand("payment_intent")

	sess, err := session.Get(externalRef, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to fetch checkout session %s: %w", externalRef, err)
	}

	result := &VerifyResult{
		Paid: sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		Raw: map[string]any{
			"id":             sess.ID,
			"status":         string(sess.Status),
			"payment_status": string(sess.PaymentStatus),
			"amount_total":   sess.AmountTotal,
			"currency":       string(sess.Currency),
		},
	}
	if sess.PaymentIntent != nil {
		result.PaymentID = sess.PaymentIntent.ID
		result.Raw["payment_intent"] = sess.PaymentIntent.ID
	}
	if !result.Paid {
		result.FailureReason = fmt.Sprintf("checkout session is %s", sess.PaymentStatus)
	}
	return result, nil
}

// Refund reverses the charge behind a completed checkout.
func (g *StripeGateway) Refund(ctx context.Context, paymentID string, amount float64) error {
	params := &stripe.RefundParams{
		Params:        stripe.Params{Context: ctx},
		PaymentIntent: stripe.String(paymentID),
		Amount:        stripe.Int64(minorUnits(amount)),
	}
	if _, err := refund.New(params); err != nil {
		return fmt.Errorf("stripe: failed to refund payment %s: %w", paymentID, err)
	}
	return nil
}

// minorUnits converts a decimal amount to the smallest currency unit.
func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
