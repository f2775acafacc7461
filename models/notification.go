package models

import "time"

// NotificationType names the lifecycle events the dispatcher understands.
type NotificationType string

const (
	NotifyBookingConfirmed NotificationType = "booking_confirmed"
	NotifyBookingCancelled NotificationType = "booking_cancelled"
	NotifyBookingNoShow    NotificationType = "booking_no_show"
	NotifyRescheduled      NotificationType = "booking_rescheduled"
	NotifySessionStarted   NotificationType = "session_started"
	NotifySessionCompleted NotificationType = "session_completed"
	NotifyPaymentReceived  NotificationType = "payment_received"
	NotifyPaymentRefunded  NotificationType = "payment_refunded"
	NotifyPayoutRequested  NotificationType = "payout_requested"
)

// Notification is one queued/delivered push event.
type Notification struct {
	ID        string            `bson:"id" json:"id"`
	UserID    string            `bson:"userId" json:"userId"`
	Type      NotificationType  `bson:"type" json:"type"`
	Title     string            `bson:"title" json:"title"`
	Message   string            `bson:"message" json:"message"`
	Data      map[string]string `bson:"data,omitempty" json:"data,omitempty"`
	Sent      bool              `bson:"sent" json:"sent"`
	Read      bool              `bson:"read" json:"read"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
}
