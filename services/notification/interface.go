package notification

import (
	"context"

	"github.com/sekharpasem/YouCanStyle-Api/models"
)

// Notifier is the dispatcher contract the booking, payment and payout flows
// emit lifecycle events to. Delivery is fire-and-forget: implementations log
// failures and never propagate them to the caller.
type Notifier interface {
	Notify(ctx context.Context, userID string, typ models.NotificationType, title, message string, data map[string]string)
}
