package payment

import (
	"context"
	"time"

	"github.com/sekharpasem/YouCanStyle-Api/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddPaymentMethod stores a redacted payment instrument. Card and bank
// account numbers are reduced to their last four digits before anything
// reaches the store; the full numbers are dropped here.
func (s *DefaultPaymentService) AddPaymentMethod(ctx context.Context, in models.PaymentMethodCreate) (*models.PaymentMethod, error) {
	if !validMethods[in.Type] {
		return nil, &models.ValidationError{Field: "type", Message: "unsupported payment method type"}
	}

	method := &models.PaymentMethod{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		Type:      in.Type,
		IsDefault: in.IsDefault,
		CreatedAt: time.Now().UTC(),
	}

	switch in.Type {
	case models.MethodCreditCard, models.MethodDebitCard:
		if in.CardNumber == "" {
			return nil, &models.ValidationError{Field: "cardNumber", Message: "required for card methods"}
		}
		method.LastFour = lastFour(in.CardNumber)
		method.CardBrand = DetectCardBrand(in.CardNumber)
		method.CardExpiry = in.CardExpiry
		method.CardHolderName = in.CardHolderName
	case models.MethodNetbanking:
		if in.BankAccountNumber == "" {
			return nil, &models.ValidationError{Field: "bankAccountNumber", Message: "required for netbanking"}
		}
		method.BankName = in.BankName
		method.BankLast4 = lastFour(in.BankAccountNumber)
		method.IfscCode = in.IfscCode
	case models.MethodUPI:
		if in.UpiID == "" {
			return nil, &models.ValidationError{Field: "upiId", Message: "required for UPI"}
		}
		method.UpiID = in.UpiID
	}

	if err := s.Ledger.InsertPaymentMethod(ctx, method); err != nil {
		return nil, err
	}
	s.logger().Info("payment method added",
		zap.String("userId", in.UserID), zap.String("type", string(in.Type)))
	return method, nil
}

func (s *DefaultPaymentService) ListPaymentMethods(ctx context.Context, userID string) ([]models.PaymentMethod, error) {
	return s.Ledger.ListPaymentMethods(ctx, userID)
}

func (s *DefaultPaymentService) DeletePaymentMethod(ctx context.Context, methodID, userID string) error {
	return s.Ledger.DeletePaymentMethod(ctx, methodID, userID)
}

func (s *DefaultPaymentService) SetDefaultPaymentMethod(ctx context.Context, methodID, userID string) error {
	return s.Ledger.SetDefaultPaymentMethod(ctx, methodID, userID)
}
