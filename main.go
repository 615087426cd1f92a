// File: nyumbani/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nyumbani/config"
	"nyumbani/cron"
	"nyumbani/database"
	bookingRepoPkg "nyumbani/database/repository/booking"
	contactRepoPkg "nyumbani/database/repository/contact"
	garbageRepoPkg "nyumbani/database/repository/garbage"
	moverRepoPkg "nyumbani/database/repository/mover"
	paymentRepoPkg "nyumbani/database/repository/payment"
	propertyRepoPkg "nyumbani/database/repository/property"
	settingsRepoPkg "nyumbani/database/repository/settings"
	userRepoPkg "nyumbani/database/repository/user"
	"nyumbani/handlers"
	"nyumbani/routes"
	"nyumbani/services/booking"
	"nyumbani/services/contact"
	"nyumbani/services/garbage"
	"nyumbani/services/mover"
	"nyumbani/services/notification"
	"nyumbani/services/payment"
	"nyumbani/services/property"
	"nyumbani/services/settings"
	"nyumbani/services/user"
	"nyumbani/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	cloudinaryStorage, err := utils.Cloudinary()
	if err != nil {
		logger.Warn("cloudinary storage unavailable, uploads disabled", zap.Error(err))
		cloudinaryStorage = nil
	}

	// Repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	propertyRepo := propertyRepoPkg.NewMongoPropertyRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	garbageCompanyRepo := garbageRepoPkg.NewMongoCompanyRepo()
	garbageBookingRepo := garbageRepoPkg.NewMongoBookingRepo()
	moverCompanyRepo := moverRepoPkg.NewMongoCompanyRepo()
	moverBookingRepo := moverRepoPkg.NewMongoBookingRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo(config.AppConfig.MongoTransactions)
	settingsRepo := settingsRepoPkg.NewMongoSettingsRepo()
	contactRepo := contactRepoPkg.NewMongoContactRepo()

	// Services.
	userService := &user.DefaultUserService{
		Repo:      userRepo,
		AuthCache: utils.GetAuthCacheClient(),
	}

	if config.AppConfig.AdminPassword != "" {
		if err := userService.SeedAdmin(config.AppConfig.AdminEmail, config.AppConfig.AdminPassword); err != nil {
			logger.Error("failed to seed admin account", zap.Error(err))
		}
	}

	notificationService := &notification.DefaultNotificationService{Users: userService}

	settingsService := &settings.DefaultSettingsService{
		Repo:  settingsRepo,
		Cache: utils.GetCacheClient(),
	}

	propertyService := &property.DefaultPropertyService{
		Repo:    propertyRepo,
		Storage: cloudinaryStorage,
	}

	bookingService := &booking.DefaultBookingService{
		Bookings:   bookingRepo,
		Properties: propertyRepo,
		Payments:   paymentRepo,
		Settings:   settingsService,
		Notifier:   notificationService,
	}

	garbageService := &garbage.DefaultGarbageService{
		Companies: garbageCompanyRepo,
		Bookings:  garbageBookingRepo,
		Payments:  paymentRepo,
		Users:     userService,
		Settings:  settingsService,
		Notifier:  notificationService,
		Storage:   cloudinaryStorage,
	}

	moverService := &mover.DefaultMoverService{
		Companies: moverCompanyRepo,
		Bookings:  moverBookingRepo,
		Payments:  paymentRepo,
		Users:     userService,
		Settings:  settingsService,
		Notifier:  notificationService,
		Storage:   cloudinaryStorage,
	}

	paymentService := &payment.DefaultPaymentService{
		Payments:        paymentRepo,
		Bookings:        bookingRepo,
		GarbageBookings: garbageBookingRepo,
		MoverBookings:   moverBookingRepo,
		Gateway:         payment.NewStripeGateway(),
		Reconciler:      cron.NewClient(),
		Notifier:        notificationService,
	}

	// Background reconciliation worker and sweep.
	cron.InitReconcileWorker(paymentRepo, &cron.Reconciler{
		Bookings:        bookingRepo,
		GarbageBookings: garbageBookingRepo,
		MoverBookings:   moverBookingRepo,
	})

	contactService := &contact.DefaultContactService{Repo: contactRepo}

	handlerBundle := handlers.NewHandlerBundle(
		userService,
		propertyService,
		bookingService,
		garbageService,
		moverService,
		paymentService,
		settingsService,
		contactService,
	)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(utils.ErrorHandler())
	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("starting server", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}
