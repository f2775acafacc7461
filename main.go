package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sekharpasem/YouCanStyle-Api/config"
	"github.com/sekharpasem/YouCanStyle-Api/cron"
	"github.com/sekharpasem/YouCanStyle-Api/database"
	bookingRepoPkg "github.com/sekharpasem/YouCanStyle-Api/database/repository/booking"
	ledgerRepoPkg "github.com/sekharpasem/YouCanStyle-Api/database/repository/ledger"
	notificationRepoPkg "github.com/sekharpasem/YouCanStyle-Api/database/repository/notification"
	stylistRepoPkg "github.com/sekharpasem/YouCanStyle-Api/database/repository/stylist"
	userRepoPkg "github.com/sekharpasem/YouCanStyle-Api/database/repository/user"
	"github.com/sekharpasem/YouCanStyle-Api/handlers"
	"github.com/sekharpasem/YouCanStyle-Api/middleware"
	"github.com/sekharpasem/YouCanStyle-Api/routes"
	"github.com/sekharpasem/YouCanStyle-Api/services/booking"
	"github.com/sekharpasem/YouCanStyle-Api/services/notification"
	"github.com/sekharpasem/YouCanStyle-Api/services/payment"
	"github.com/sekharpasem/YouCanStyle-Api/services/payout"
	"github.com/sekharpasem/YouCanStyle-Api/services/review"
	"github.com/sekharpasem/YouCanStyle-Api/services/stylist"
	"github.com/sekharpasem/YouCanStyle-Api/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	ledgerRepo := ledgerRepoPkg.NewMongoLedgerRepo()
	stylistRepo := stylistRepoPkg.NewMongoStylistRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIndexes()
	if err := bookingRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}
	if err := ledgerRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure ledger indexes: %v", err)
	}
	if err := notificationRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure notification indexes: %v", err)
	}

	// Notification queue producer.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	notifier := notification.NewAsynqNotifier(asynqClient, logger)

	// services.
	reviewService := &review.DefaultReviewService{
		Stylists: stylistRepo,
		Logger:   logger,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:            bookingRepo,
		Users:           userRepo,
		Stylists:        stylistRepo,
		Reviews:         reviewService,
		Notifier:        notifier,
		Logger:          logger,
		OTPTTL:          time.Duration(config.AppConfig.BookingOTPTTLHours) * time.Hour,
		MeetingLinkBase: config.AppConfig.MeetingLinkBase,
	}
	gateway := payment.NewStripeGateway(time.Duration(config.AppConfig.GatewayTimeoutSecs) * time.Second)
	paymentService := &payment.DefaultPaymentService{
		Ledger:     ledgerRepo,
		Bookings:   bookingRepo,
		Gateway:    gateway,
		Notifier:   notifier,
		Logger:     logger,
		FeePercent: config.AppConfig.PlatformFeePercent,
		Currency:   config.AppConfig.DefaultCurrency,
	}
	payoutService := &payout.DefaultPayoutService{
		Ledger:   ledgerRepo,
		Gateway:  gateway,
		Notifier: notifier,
		Logger:   logger,
		Currency: config.AppConfig.DefaultCurrency,
	}
	catalogService := &stylist.DefaultCatalogService{
		Stylists: stylistRepo,
		Logger:   logger,
	}

	// Background delivery worker.
	cron.InitNotificationWorker(cron.NotificationWorkerDeps{
		Users:         userRepo,
		Stylists:      stylistRepo,
		Notifications: notificationRepo,
	})

	utils.StartHealthMonitor(
		map[string]*redis.Client{
			"cache": utils.GetCacheClient(),
			"auth":  utils.GetAuthCacheClient(),
		},
		database.MongoClient,
	)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Booking:      handlers.NewBookingHandler(bookingService, logger),
		Payment:      handlers.NewPaymentHandler(paymentService, logger),
		Payout:       handlers.NewPayoutHandler(payoutService, logger),
		Review:       handlers.NewReviewHandler(reviewService, logger),
		Stylist:      handlers.NewStylistHandler(catalogService, logger),
		Notification: handlers.NewNotificationHandler(notificationRepo),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
