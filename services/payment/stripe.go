package payment

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/sekharpasem/YouCanStyle-Api/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/payout"
	"github.com/stripe/stripe-go/v76/refund"
)

// StripeGateway drives captures, refunds and payouts through Stripe.
// The global stripe.Key is assigned at boot from config.
type StripeGateway struct {
	// Timeout bounds every provider call; zero means 15s.
	Timeout time.Duration
}

func NewStripeGateway(timeout time.Duration) *StripeGateway {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &StripeGateway{Timeout: timeout}
}

// minorUnits converts a two-decimal amount to the integer minor units the
// provider expects.
func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (g *StripeGateway) Capture(ctx context.Context, amount float64, currency, clientID, bookingID string) (*GatewayResult, error) {
	ctx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(minorUnits(amount)),
		Currency: stripe.String(strings.ToLower(currency)),
		Confirm:  stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx
	params.AddMetadata("bookingId", bookingID)
	params.AddMetadata("clientId", clientID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, &models.GatewayError{Op: "capture", Err: err}
	}
	return &GatewayResult{TransactionID: pi.ID}, nil
}

func (g *StripeGateway) Refund(ctx context.Context, transactionID string, amount float64, currency, reason string) (*GatewayResult, error) {
	ctx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(transactionID),
		Amount:        stripe.Int64(minorUnits(amount)),
	}
	params.Context = ctx
	if reason != "" {
		params.AddMetadata("reason", reason)
	}

	r, err := refund.New(params)
	if err != nil {
		return nil, &models.GatewayError{Op: "refund", Err: err}
	}
	return &GatewayResult{TransactionID: r.ID}, nil
}

func (g *StripeGateway) Payout(ctx context.Context, amount float64, currency, stylistID, bankAccountID string) (*GatewayResult, error) {
	ctx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	params := &stripe.PayoutParams{
		Amount:   stripe.Int64(minorUnits(amount)),
		Currency: stripe.String(strings.ToLower(currency)),
	}
	params.Context = ctx
	params.AddMetadata("stylistId", stylistID)
	params.AddMetadata("bankAccountId", bankAccountID)

	p, err := payout.New(params)
	if err != nil {
		return nil, &models.GatewayError{Op: "payout", Err: err}
	}
	return &GatewayResult{TransactionID: p.ID}, nil
}
