package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/sekharpasem/YouCanStyle-Api/config"
	notificationRepo "github.com/sekharpasem/YouCanStyle-Api/database/repository/notification"
	stylistRepo "github.com/sekharpasem/YouCanStyle-Api/database/repository/stylist"
	userRepo "github.com/sekharpasem/YouCanStyle-Api/database/repository/user"
	"github.com/sekharpasem/YouCanStyle-Api/models"
	"github.com/sekharpasem/YouCanStyle-Api/services/notification"
	"github.com/sekharpasem/YouCanStyle-Api/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// NotificationWorkerDeps are the stores the delivery worker reads tokens
// from and writes delivered rows to.
type NotificationWorkerDeps struct {
	Users         userRepo.UserRepository
	Stylists      stylistRepo.StylistRepository
	Notifications notificationRepo.NotificationRepository
}

// InitNotificationWorker runs the async delivery worker in background.
func InitNotificationWorker(deps NotificationWorkerDeps) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeNotificationSend, handleNotificationTask(deps))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[NotificationWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotificationWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotificationWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleNotificationTask(deps NotificationWorkerDeps) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var event models.Notification
		if err := json.Unmarshal(task.Payload(), &event); err != nil {
			log.Printf("[NotificationHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		token, err := resolveFCMToken(ctx, deps, event.UserID)
		if err != nil {
			log.Printf("[NotificationHandler] ⚠️ No recipient for %s: %v", event.UserID, err)
			// Still persist the row so the in-app feed shows it.
			event.Sent = false
			return deps.Notifications.Insert(ctx, &event)
		}

		if token != "" && utils.FCMClient != nil {
			msg := &messaging.Message{
				Token: token,
				Notification: &messaging.Notification{
					Title: event.Title,
					Body:  event.Message,
				},
				Data: event.Data,
			}
			if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
				log.Printf("[NotificationHandler] ❌ Failed to send push to %s: %v", event.UserID, err)
			} else {
				event.Sent = true
			}
		}

		if err := deps.Notifications.Insert(ctx, &event); err != nil {
			log.Printf("[NotificationHandler] ❌ Failed to persist notification: %v", err)
			return err
		}
		return nil
	}
}

// resolveFCMToken looks the recipient up in the user directory first, then
// the stylist directory.
func resolveFCMToken(ctx context.Context, deps NotificationWorkerDeps, userID string) (string, error) {
	user, err := deps.Users.GetByID(ctx, userID)
	if err == nil {
		return user.FCMToken, nil
	}
	if !models.IsNotFound(err) {
		return "", err
	}

	stylist, err := deps.Stylists.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return stylist.FCMToken, nil
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[NotificationWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
