package ledgerRepo

import (
	"context"

	"github.com/sekharpasem/YouCanStyle-Api/models"
)

// LedgerRepository is the persistence contract for the money-movement
// records: payments, append-only transactions, payouts and stored payment
// methods.
//
// The capture, refund and payout units each run as a single Mongo session
// transaction so a crash can never leave a booking marked paid without its
// ledger rows, or vice versa.
type LedgerRepository interface {
	// CapturePayment atomically persists the completed payment, its two
	// ledger rows (payment to the client, fee to the platform) and the
	// booking's paymentStatus update/promotion.
	CapturePayment(ctx context.Context, payment *models.Payment, clientRow, feeRow *models.Transaction) error

	// RecordFailedPayment persists an audit row for a failed capture attempt.
	RecordFailedPayment(ctx context.Context, payment *models.Payment) error

	// RefundPayment atomically marks the payment refunded, appends the refund
	// ledger row and flips the booking's paymentStatus to refunded.
	RefundPayment(ctx context.Context, paymentID, refundTransactionID, reason string, refundRow *models.Transaction) error

	GetPaymentByID(ctx context.Context, paymentID string) (*models.Payment, error)
	GetBookingPayment(ctx context.Context, bookingID string) (*models.Payment, error)
	FindPaymentByIdempotencyKey(ctx context.Context, clientID, key string) (*models.Payment, error)
	ListClientPayments(ctx context.Context, clientID string, skip, limit int64) ([]models.Payment, error)
	ListStylistPayments(ctx context.Context, stylistID string, skip, limit int64) ([]models.Payment, error)
	ListUserTransactions(ctx context.Context, userID string, skip, limit int64) ([]models.Transaction, error)

	// CreatePayout atomically verifies the requested amount against the
	// stylist's available balance (completed earnings minus already-pending
	// payouts) and persists the payout with its ledger row.
	CreatePayout(ctx context.Context, payout *models.Payout, payoutRow *models.Transaction) error
	ListStylistPayouts(ctx context.Context, stylistID string, skip, limit int64) ([]models.Payout, error)

	// Statistics aggregates the stylist's ledger position at read time.
	Statistics(ctx context.Context, stylistID string) (*models.PaymentStatistics, error)

	InsertPaymentMethod(ctx context.Context, method *models.PaymentMethod) error
	GetPaymentMethodByID(ctx context.Context, methodID string) (*models.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, userID string) ([]models.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, methodID, userID string) error
	SetDefaultPaymentMethod(ctx context.Context, methodID, userID string) error
}
