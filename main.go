// File: festoria/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"festoria/config"
	"festoria/cron"
	"festoria/database"
	bookingRepoPkg "festoria/database/repository/booking"
	catalogRepoPkg "festoria/database/repository/catalog"
	directoryRepoPkg "festoria/database/repository/directory"
	paymentRepoPkg "festoria/database/repository/payment"
	ratingRepoPkg "festoria/database/repository/rating"
	"festoria/handlers"
	"festoria/middleware"
	"festoria/routes"
	"festoria/services/booking"
	"festoria/services/notification"
	"festoria/services/payment"
	"festoria/services/rating"
	"festoria/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
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
	paymentTxRepo := paymentRepoPkg.NewMongoPaymentTxRepo()
	directoryRepo := directoryRepoPkg.NewMongoDirectoryRepo()
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()

	if err := bookingRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}
	if err := paymentTxRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure payment indexes: %v", err)
	}

	// services.
	notificationService, err := notification.NewDefaultNotificationService(bookingRepo, directoryRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	bookingEngine := &booking.DefaultBookingService{
		Repo:             bookingRepo,
		Catalog:          catalogRepo,
		Notifier:         notificationService,
		Logger:           logger,
		AutoExpiryWindow: config.AppConfig.AutoExpiryWindow,
		PaymentDueWindow: config.AppConfig.PaymentDueWindow,
	}

	var gateway payment.Gateway = payment.NewStripeGateway(
		config.AppConfig.PaymentSuccessURL,
		config.AppConfig.PaymentCancelURL,
	)
	if config.AppConfig.PaymentGatewayMock {
		logger.Warn("payment gateway running in mock mode")
		gateway = payment.MockGateway{}
	}

	paymentService := &payment.DefaultPaymentService{
		TxRepo:         paymentTxRepo,
		Bookings:       bookingRepo,
		Gateway:        gateway,
		Marker:         bookingEngine,
		Logger:         logger,
		Currency:       config.AppConfig.DefaultCurrency,
		GatewayTimeout: config.AppConfig.GatewayTimeout,
	}
	// The engine refunds through reconciliation; reconciliation marks paid
	// through the engine.
	bookingEngine.Payments = paymentService

	ratingRegistry := rating.NewRegistry()
	ratingRegistry.SetFallback(ratingRepoPkg.NewMongoProviderRatingRepo())
	ratingService := &rating.Service{
		Registry: ratingRegistry,
		Bookings: bookingEngine,
	}

	// Reminder queue and deadline sweeper.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	sweeper := &cron.Sweeper{
		Engine:   bookingEngine,
		Repo:     bookingRepo,
		Queue:    &cron.AsynqReminderQueue{Client: asynqClient},
		Logger:   logger,
		Interval: config.AppConfig.SweepInterval,
	}
	go sweeper.Start(sweepCtx)
	cron.InitReminderWorker(notificationService)

	// handlers and routes.
	bookingHandler := &handlers.BookingHandler{Svc: bookingEngine}
	paymentHandler := &handlers.PaymentHandler{Svc: paymentService}
	ratingHandler := &handlers.RatingHandler{Svc: ratingService}
	routes.RegisterRoutes(router, bookingHandler, paymentHandler, ratingHandler)

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
	stopSweeper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
