package models

import "time"

// PaymentStatus enumerates capture states on a Payment record.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
	PaymentCancelled PaymentStatus = "cancelled"
)

// PaymentMethodType is the closed set of supported payment instruments.
type PaymentMethodType string

const (
	MethodCreditCard PaymentMethodType = "credit_card"
	MethodDebitCard  PaymentMethodType = "debit_card"
	MethodUPI        PaymentMethodType = "upi"
	MethodNetbanking PaymentMethodType = "netbanking"
	MethodWallet     PaymentMethodType = "wallet"
	MethodCash       PaymentMethodType = "cash"
)

// Payment is one capture attempt against a booking. Failed attempts are
// persisted for audit but are never linked as "the" payment for the booking.
type Payment struct {
	ID            string            `bson:"id" json:"id"`
	BookingID     string            `bson:"bookingId" json:"bookingId"`
	ClientID      string            `bson:"clientId" json:"clientId"`
	StylistID     string            `bson:"stylistId" json:"stylistId"`
	Amount        float64           `bson:"amount" json:"amount"`
	Currency      string            `bson:"currency" json:"currency"`
	PaymentMethod PaymentMethodType `bson:"paymentMethod" json:"paymentMethod"`
	Status        PaymentStatus     `bson:"status" json:"status"`
	TransactionID string            `bson:"transactionId,omitempty" json:"transactionId,omitempty"`

	// Fee split, computed once at capture time.
	PlatformFee   float64 `bson:"platformFee" json:"platformFee"`
	StylistAmount float64 `bson:"stylistAmount" json:"stylistAmount"`

	RefundTransactionID string `bson:"refundTransactionId,omitempty" json:"refundTransactionId,omitempty"`
	RefundReason        string `bson:"refundReason,omitempty" json:"refundReason,omitempty"`
	ErrorMessage        string `bson:"errorMessage,omitempty" json:"errorMessage,omitempty"`

	IdempotencyKey string    `bson:"idempotencyKey,omitempty" json:"-"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// PaymentCreate is the client-supplied capture request.
type PaymentCreate struct {
	BookingID      string            `json:"bookingId" binding:"required"`
	Amount         float64           `json:"amount" binding:"required"`
	Currency       string            `json:"currency"`
	PaymentMethod  PaymentMethodType `json:"paymentMethod" binding:"required"`
	IdempotencyKey string            `json:"idempotencyKey,omitempty"`
}

// PaymentMethod is a stored, partially redacted payment instrument.
// Full card and bank account numbers are never persisted.
type PaymentMethod struct {
	ID             string            `bson:"id" json:"id"`
	UserID         string            `bson:"userId" json:"userId"`
	Type           PaymentMethodType `bson:"type" json:"type"`
	LastFour       string            `bson:"lastFour,omitempty" json:"lastFour,omitempty"`
	CardBrand      string            `bson:"cardBrand,omitempty" json:"cardBrand,omitempty"`
	CardExpiry     string            `bson:"cardExpiry,omitempty" json:"cardExpiry,omitempty"`
	CardHolderName string            `bson:"cardHolderName,omitempty" json:"cardHolderName,omitempty"`
	UpiID          string            `bson:"upiId,omitempty" json:"upiId,omitempty"`
	BankName       string            `bson:"bankName,omitempty" json:"bankName,omitempty"`
	BankLast4      string            `bson:"bankAccountLast4,omitempty" json:"bankAccountLast4,omitempty"`
	IfscCode       string            `bson:"ifscCode,omitempty" json:"ifscCode,omitempty"`
	IsDefault      bool              `bson:"isDefault" json:"isDefault"`
	CreatedAt      time.Time         `bson:"createdAt" json:"createdAt"`
}

// PaymentMethodCreate carries the raw instrument details; sensitive fields
// are redacted before anything reaches the store.
type PaymentMethodCreate struct {
	UserID            string            `json:"userId"`
	Type              PaymentMethodType `json:"type" binding:"required"`
	CardNumber        string            `json:"cardNumber,omitempty"`
	CardExpiry        string            `json:"cardExpiry,omitempty"`
	CardHolderName    string            `json:"cardHolderName,omitempty"`
	UpiID             string            `json:"upiId,omitempty"`
	BankName          string            `json:"bankName,omitempty"`
	BankAccountNumber string            `json:"bankAccountNumber,omitempty"`
	IfscCode          string            `json:"ifscCode,omitempty"`
	IsDefault         bool              `json:"isDefault"`
}
