package payment

import "context"

// GatewayResult is the provider's reference for a successful money movement.
type GatewayResult struct {
	TransactionID string
}

// Gateway abstracts the external payment provider. Implementations must
// honour ctx cancellation; a provider-side failure is returned as a
// models.GatewayError so callers can map it without inspecting provider
// types.
type Gateway interface {
	// Capture charges the client for a booking and returns the provider's
	// transaction reference.
	Capture(ctx context.Context, amount float64, currency, clientID, bookingID string) (*GatewayResult, error)

	// Refund reverses a previously captured transaction.
	Refund(ctx context.Context, transactionID string, amount float64, currency, reason string) (*GatewayResult, error)

	// Payout transfers net earnings out to a stylist's bank instrument.
	Payout(ctx context.Context, amount float64, currency, stylistID, bankAccountID string) (*GatewayResult, error)
}
