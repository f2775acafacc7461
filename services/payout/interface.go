package payout

import (
	"context"

	"github.com/sekharpasem/YouCanStyle-Api/models"
)

// PayoutService handles stylist withdrawals of accumulated net earnings.
type PayoutService interface {
	// RequestPayout validates the target bank instrument, checks the amount
	// against the stylist's available balance, invokes the gateway and
	// persists the payout with its ledger row. The payout stays pending until
	// the provider settles it.
	RequestPayout(ctx context.Context, in models.PayoutCreate) (*models.Payout, error)

	ListStylistPayouts(ctx context.Context, stylistID string, skip, limit int64) ([]models.Payout, error)

	// Statistics aggregates the stylist's ledger position at read time.
	Statistics(ctx context.Context, stylistID string) (*models.PaymentStatistics, error)
}
