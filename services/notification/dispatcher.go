package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sekharpasem/YouCanStyle-Api/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeNotificationSend is the asynq task type for queued push deliveries.
const TypeNotificationSend = "notification:send"

// AsynqNotifier enqueues notification events onto the delivery queue. The
// worker in cron/ drains the queue and performs the actual FCM send, so no
// booking or payment operation ever blocks on delivery.
type AsynqNotifier struct {
	Client *asynq.Client
	Logger *zap.Logger
}

// NewAsynqNotifier constructs a queue-backed Notifier.
func NewAsynqNotifier(client *asynq.Client, logger *zap.Logger) *AsynqNotifier {
	return &AsynqNotifier{Client: client, Logger: logger}
}

// Notify enqueues one delivery task. Enqueue failures are logged and
// swallowed.
func (n *AsynqNotifier) Notify(ctx context.Context, userID string, typ models.NotificationType, title, message string, data map[string]string) {
	event := models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Message:   message,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		n.Logger.Error("notification: failed to marshal event", zap.Error(err))
		return
	}

	task := asynq.NewTask(TypeNotificationSend, payload)
	if _, err := n.Client.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		n.Logger.Error("notification: failed to enqueue event",
			zap.String("userId", userID),
			zap.String("type", string(typ)),
			zap.Error(err),
		)
	}
}
