package payout

import (
	"context"
	"fmt"
	"time"

	ledgerRepo "github.com/sekharpasem/YouCanStyle-Api/database/repository/ledger"
	"github.com/sekharpasem/YouCanStyle-Api/models"
	"github.com/sekharpasem/YouCanStyle-Api/services/notification"
	"github.com/sekharpasem/YouCanStyle-Api/services/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultPayoutService is the production PayoutService.
type DefaultPayoutService struct {
	Ledger   ledgerRepo.LedgerRepository
	Gateway  payment.Gateway
	Notifier notification.Notifier
	Logger   *zap.Logger

	// Currency is applied when the payout request carries none.
	Currency string
}

func (s *DefaultPayoutService) RequestPayout(ctx context.Context, in models.PayoutCreate) (*models.Payout, error) {
	if in.Amount <= 0 {
		return nil, &models.ValidationError{Field: "amount", Message: "must be greater than zero"}
	}
	currency := in.Currency
	if currency == "" {
		currency = s.Currency
	}

	// The bank instrument must exist and belong to the requesting stylist.
	method, err := s.Ledger.GetPaymentMethodByID(ctx, in.BankAccountID)
	if err != nil {
		return nil, err
	}
	if method.UserID != in.StylistID {
		return nil, &models.ForbiddenError{Message: "payment method does not belong to this stylist"}
	}

	result, err := s.Gateway.Payout(ctx, in.Amount, currency, in.StylistID, in.BankAccountID)
	if err != nil {
		s.logger().Warn("payout gateway call failed",
			zap.String("stylistId", in.StylistID), zap.Error(err))
		return nil, err
	}

	now := time.Now().UTC()
	description := in.Description
	if description == "" {
		description = "Payout to bank account"
	}

	payout := &models.Payout{
		ID:            uuid.NewString(),
		StylistID:     in.StylistID,
		Amount:        in.Amount,
		Currency:      currency,
		Status:        models.PaymentPending,
		BankAccountID: in.BankAccountID,
		Description:   in.Description,
		TransactionID: result.TransactionID,
		CreatedAt:     now,
	}
	payoutRow := &models.Transaction{
		ID:          uuid.NewString(),
		UserID:      in.StylistID,
		Type:        models.TxnPayout,
		Amount:      in.Amount,
		Currency:    currency,
		Status:      models.PaymentPending,
		Description: description,
		PayoutID:    payout.ID,
		CreatedAt:   now,
	}

	// The balance guard runs inside the store transaction so two concurrent
	// requests cannot both draw down the same earnings.
	if err := s.Ledger.CreatePayout(ctx, payout, payoutRow); err != nil {
		return nil, err
	}

	s.logger().Info("payout requested",
		zap.String("payoutId", payout.ID),
		zap.String("stylistId", in.StylistID),
		zap.Float64("amount", in.Amount))

	if s.Notifier != nil {
		s.Notifier.Notify(ctx, in.StylistID, models.NotifyPayoutRequested,
			"Payout Requested",
			fmt.Sprintf("Your payout of %s %.2f is being processed", currency, in.Amount),
			map[string]string{"payoutId": payout.ID})
	}
	return payout, nil
}

func (s *DefaultPayoutService) ListStylistPayouts(ctx context.Context, stylistID string, skip, limit int64) ([]models.Payout, error) {
	return s.Ledger.ListStylistPayouts(ctx, stylistID, skip, limit)
}

func (s *DefaultPayoutService) Statistics(ctx context.Context, stylistID string) (*models.PaymentStatistics, error) {
	return s.Ledger.Statistics(ctx, stylistID)
}

func (s *DefaultPayoutService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
