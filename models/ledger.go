package models

import "time"

// TransactionType tags a ledger row with the kind of money movement.
type TransactionType string

const (
	TxnPayment    TransactionType = "payment"
	TxnRefund     TransactionType = "refund"
	TxnPayout     TransactionType = "payout"
	TxnWithdrawal TransactionType = "withdrawal"
	TxnDeposit    TransactionType = "deposit"
	TxnFee        TransactionType = "fee"
	TxnTax        TransactionType = "tax"
)

// PlatformUserID is the sentinel userId under which platform fee rows are booked.
const PlatformUserID = "platform"

// Transaction is an immutable, append-only ledger entry.
type Transaction struct {
	ID          string          `bson:"id" json:"id"`
	UserID      string          `bson:"userId" json:"userId"`
	Type        TransactionType `bson:"type" json:"type"`
	Amount      float64         `bson:"amount" json:"amount"`
	Currency    string          `bson:"currency" json:"currency"`
	Status      PaymentStatus   `bson:"status" json:"status"`
	Description string          `bson:"description" json:"description"`
	BookingID   string          `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	PaymentID   string          `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	PayoutID    string          `bson:"payoutId,omitempty" json:"payoutId,omitempty"`
	Fee         float64         `bson:"fee,omitempty" json:"fee,omitempty"`
	Tax         float64         `bson:"tax,omitempty" json:"tax,omitempty"`
	CreatedAt   time.Time       `bson:"createdAt" json:"createdAt"`
}

// Payout is a stylist's request to withdraw accumulated net earnings.
type Payout struct {
	ID            string        `bson:"id" json:"id"`
	StylistID     string        `bson:"stylistId" json:"stylistId"`
	Amount        float64       `bson:"amount" json:"amount"`
	Currency      string        `bson:"currency" json:"currency"`
	Status        PaymentStatus `bson:"status" json:"status"`
	BankAccountID string        `bson:"bankAccountId" json:"bankAccountId"`
	Description   string        `bson:"description,omitempty" json:"description,omitempty"`
	TransactionID string        `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	ProcessedAt   time.Time     `bson:"processedAt,omitempty" json:"processedAt,omitempty"`
}

// PayoutCreate is a stylist's payout request.
type PayoutCreate struct {
	StylistID     string  `json:"stylistId"`
	Amount        float64 `json:"amount" binding:"required"`
	Currency      string  `json:"currency"`
	BankAccountID string  `json:"bankAccountId" binding:"required"`
	Description   string  `json:"description,omitempty"`
}

// PaymentStatistics is a live aggregate over the ledger for one stylist.
type PaymentStatistics struct {
	TotalEarnings     float64 `json:"totalEarnings"`
	PendingPayouts    float64 `json:"pendingPayouts"`
	TotalBookings     int64   `json:"totalBookings"`
	CompletedBookings int64   `json:"completedBookings"`
}
