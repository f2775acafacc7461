package payment

import (
	"context"

	"github.com/sekharpasem/YouCanStyle-Api/models"
)

// PaymentService orchestrates captures, refunds and stored payment methods.
// Money-movement writes run as ledger-store transactions; the gateway call
// itself sits outside them, with failed attempts persisted for audit.
type PaymentService interface {
	// Capture charges the client for a booking, splits the platform fee and
	// settles the ledger rows atomically with the booking's paymentStatus.
	Capture(ctx context.Context, in models.PaymentCreate, clientID string) (*models.Payment, error)

	// Refund reverses a completed payment in full.
	Refund(ctx context.Context, paymentID, reason string) (*models.Payment, error)

	GetByID(ctx context.Context, paymentID string) (*models.Payment, error)
	GetBookingPayment(ctx context.Context, bookingID string) (*models.Payment, error)
	ListClientPayments(ctx context.Context, clientID string, skip, limit int64) ([]models.Payment, error)
	ListStylistPayments(ctx context.Context, stylistID string, skip, limit int64) ([]models.Payment, error)
	ListUserTransactions(ctx context.Context, userID string, skip, limit int64) ([]models.Transaction, error)

	AddPaymentMethod(ctx context.Context, in models.PaymentMethodCreate) (*models.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, userID string) ([]models.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, methodID, userID string) error
	SetDefaultPaymentMethod(ctx context.Context, methodID, userID string) error
}
