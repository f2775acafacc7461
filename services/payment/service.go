package payment

import (
	"context"
	"fmt"
	"time"

	bookingRepo "github.com/sekharpasem/YouCanStyle-Api/database/repository/booking"
	ledgerRepo "github.com/sekharpasem/YouCanStyle-Api/database/repository/ledger"
	"github.com/sekharpasem/YouCanStyle-Api/models"
	"github.com/sekharpasem/YouCanStyle-Api/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultPaymentService is the production PaymentService.
type DefaultPaymentService struct {
	Ledger   ledgerRepo.LedgerRepository
	Bookings bookingRepo.BookingRepository
	Gateway  Gateway
	Notifier notification.Notifier
	Logger   *zap.Logger

	// FeePercent is the platform's cut of every capture, e.g. 10.0.
	FeePercent float64
	// Currency is applied when the capture request carries none.
	Currency string
}

var validMethods = map[models.PaymentMethodType]bool{
	models.MethodCreditCard: true,
	models.MethodDebitCard:  true,
	models.MethodUPI:        true,
	models.MethodNetbanking: true,
	models.MethodWallet:     true,
	models.MethodCash:       true,
}

func (s *DefaultPaymentService) Capture(ctx context.Context, in models.PaymentCreate, clientID string) (*models.Payment, error) {
	if in.Amount <= 0 {
		return nil, &models.ValidationError{Field: "amount", Message: "must be greater than zero"}
	}
	if !validMethods[in.PaymentMethod] {
		return nil, &models.ValidationError{Field: "paymentMethod", Message: fmt.Sprintf("unsupported payment method %q", in.PaymentMethod)}
	}
	currency := in.Currency
	if currency == "" {
		currency = s.Currency
	}

	if in.IdempotencyKey != "" {
		if existing, err := s.Ledger.FindPaymentByIdempotencyKey(ctx, clientID, in.IdempotencyKey); err == nil {
			return existing, nil
		} else if !models.IsNotFound(err) {
			return nil, err
		}
	}

	booking, err := s.Bookings.GetByID(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.ClientID != clientID {
		return nil, &models.ForbiddenError{Message: "booking does not belong to this client"}
	}

	platformFee, stylistAmount := ComputeFeeSplit(in.Amount, s.FeePercent)
	now := time.Now().UTC()

	payment := &models.Payment{
		ID:            uuid.NewString(),
		BookingID:     in.BookingID,
		ClientID:      clientID,
		StylistID:     booking.StylistID,
		Amount:        in.Amount,
		Currency:      currency,
		PaymentMethod: in.PaymentMethod,
		Status:        models.PaymentPending,
		PlatformFee:   platformFee,
		StylistAmount: stylistAmount,
		CreatedAt:     now,
	}

	result, err := s.Gateway.Capture(ctx, in.Amount, currency, clientID, in.BookingID)
	if err != nil {
		payment.Status = models.PaymentFailed
		payment.ErrorMessage = err.Error()
		payment.UpdatedAt = time.Now().UTC()
		// The audit row never carries the idempotency key so a retry of the
		// same request is not deduplicated against a failure.
		if recErr := s.Ledger.RecordFailedPayment(ctx, payment); recErr != nil {
			s.logger().Error("failed to record failed payment",
				zap.String("bookingId", in.BookingID), zap.Error(recErr))
		}
		s.logger().Warn("payment capture failed",
			zap.String("bookingId", in.BookingID), zap.Error(err))
		return nil, err
	}

	payment.Status = models.PaymentCompleted
	payment.TransactionID = result.TransactionID
	payment.IdempotencyKey = in.IdempotencyKey
	payment.UpdatedAt = time.Now().UTC()

	clientRow := &models.Transaction{
		ID:          uuid.NewString(),
		UserID:      clientID,
		Type:        models.TxnPayment,
		Amount:      in.Amount,
		Currency:    currency,
		Status:      models.PaymentCompleted,
		Description: fmt.Sprintf("Payment for booking #%s", in.BookingID),
		BookingID:   in.BookingID,
		PaymentID:   payment.ID,
		Fee:         platformFee,
		CreatedAt:   now,
	}
	feeRow := &models.Transaction{
		ID:          uuid.NewString(),
		UserID:      models.PlatformUserID,
		Type:        models.TxnFee,
		Amount:      platformFee,
		Currency:    currency,
		Status:      models.PaymentCompleted,
		Description: fmt.Sprintf("Platform fee for booking #%s", in.BookingID),
		BookingID:   in.BookingID,
		PaymentID:   payment.ID,
		CreatedAt:   now,
	}

	if err := s.Ledger.CapturePayment(ctx, payment, clientRow, feeRow); err != nil {
		return nil, err
	}

	s.logger().Info("payment captured",
		zap.String("paymentId", payment.ID),
		zap.String("bookingId", in.BookingID),
		zap.Float64("amount", in.Amount),
		zap.Float64("platformFee", platformFee))

	if s.Notifier != nil {
		s.Notifier.Notify(ctx, booking.StylistID, models.NotifyPaymentReceived,
			"Payment Received",
			fmt.Sprintf("You've received a payment of %s %.2f for booking #%s", currency, stylistAmount, in.BookingID),
			map[string]string{"bookingId": in.BookingID, "paymentId": payment.ID})
	}
	return payment, nil
}

func (s *DefaultPaymentService) Refund(ctx context.Context, paymentID, reason string) (*models.Payment, error) {
	p, err := s.Ledger.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.Status != models.PaymentCompleted {
		return nil, &models.InvalidStateError{
			Entity: "payment", ID: paymentID, Status: string(p.Status),
			Message: fmt.Sprintf("cannot refund payment %s in status %q", paymentID, p.Status),
		}
	}

	result, err := s.Gateway.Refund(ctx, p.TransactionID, p.Amount, p.Currency, reason)
	if err != nil {
		s.logger().Warn("refund failed",
			zap.String("paymentId", paymentID), zap.Error(err))
		return nil, err
	}

	refundRow := &models.Transaction{
		ID:          uuid.NewString(),
		UserID:      p.ClientID,
		Type:        models.TxnRefund,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Status:      models.PaymentCompleted,
		Description: fmt.Sprintf("Refund for booking #%s", p.BookingID),
		BookingID:   p.BookingID,
		PaymentID:   paymentID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Ledger.RefundPayment(ctx, paymentID, result.TransactionID, reason, refundRow); err != nil {
		return nil, err
	}

	s.logger().Info("payment refunded",
		zap.String("paymentId", paymentID), zap.String("bookingId", p.BookingID))

	if s.Notifier != nil {
		s.Notifier.Notify(ctx, p.ClientID, models.NotifyPaymentRefunded,
			"Payment Refunded",
			fmt.Sprintf("Your payment of %s %.2f for booking #%s has been refunded", p.Currency, p.Amount, p.BookingID),
			map[string]string{"bookingId": p.BookingID, "paymentId": paymentID})
	}
	return s.Ledger.GetPaymentByID(ctx, paymentID)
}

func (s *DefaultPaymentService) GetByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	return s.Ledger.GetPaymentByID(ctx, paymentID)
}

func (s *DefaultPaymentService) GetBookingPayment(ctx context.Context, bookingID string) (*models.Payment, error) {
	return s.Ledger.GetBookingPayment(ctx, bookingID)
}

func (s *DefaultPaymentService) ListClientPayments(ctx context.Context, clientID string, skip, limit int64) ([]models.Payment, error) {
	return s.Ledger.ListClientPayments(ctx, clientID, skip, limit)
}

func (s *DefaultPaymentService) ListStylistPayments(ctx context.Context, stylistID string, skip, limit int64) ([]models.Payment, error) {
	return s.Ledger.ListStylistPayments(ctx, stylistID, skip, limit)
}

func (s *DefaultPaymentService) ListUserTransactions(ctx context.Context, userID string, skip, limit int64) ([]models.Transaction, error) {
	return s.Ledger.ListUserTransactions(ctx, userID, skip, limit)
}

func (s *DefaultPaymentService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}
