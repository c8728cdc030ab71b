package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"salonbook-backend/config"
	"salonbook-backend/controllers"
	"salonbook-backend/routes"
	"salonbook-backend/services"
	"salonbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger, err := config.NewLogger(settings)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if settings.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rules, err := settings.Rules()
	if err != nil {
		logger.Fatal("invalid business rules", zap.Error(err))
	}

	secret := settings.JWTSecret
	if secret == "" {
		if settings.IsProduction() {
			logger.Fatal("JWT_SECRET must be set in production")
		}
		secret = utils.GenerateJWTSecret()
		logger.Warn("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}
	utils.ConfigureJWT(secret, settings.JWTExpiryHours)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		bookingStore services.BookingStore
		serviceStore services.ServiceStore
		userStore    services.UserStore
		notifier     services.Notifier
		dbPinger     utils.Pinger
	)

	if settings.DatabaseURL != "" {
		db, err := config.ConnectDB(settings.DatabaseURL, settings.IsProduction())
		if err != nil {
			logger.Fatal("failed to connect database", zap.Error(err))
		}
		sqlDB, err := db.DB()
		if err != nil {
			logger.Fatal("failed to get database handle", zap.Error(err))
		}
		dbPinger = sqlDB

		bookingStore = services.NewGormBookingStore(db)
		serviceStore = services.NewGormServiceStore(db)
		userStore = services.NewGormUserStore(db)

		if settings.TwilioAccountSID != "" {
			notifier = services.NewTwilioNotifier(db, services.TwilioConfig{
				AccountSID:     settings.TwilioAccountSID,
				AuthToken:      settings.TwilioAuthToken,
				PhoneNumber:    settings.TwilioPhoneNumber,
				WhatsAppNumber: settings.TwilioWhatsAppNumber,
				SalonName:      settings.SalonName,
			}, logger)
		}
	} else {
		logger.Warn("DATABASE_URL not set, keeping data in memory")
		bookingStore = services.NewMemoryBookingStore()
		serviceStore = services.NewMemoryServiceStore()
		userStore = services.NewMemoryUserStore()
	}
	if notifier == nil {
		logger.Info("Twilio not configured, notifications are only logged")
		notifier = services.LogNotifier{SalonName: settings.SalonName, Logger: logger}
	}

	var dispatcher services.Dispatcher = services.DirectDispatcher{Notifier: notifier, Logger: logger}
	var redisClient *redis.Client
	if settings.RedisAddr != "" {
		redisOpt := asynq.RedisClientOpt{
			Addr:     settings.RedisAddr,
			Password: settings.RedisPassword,
			DB:       settings.RedisQueueDB,
		}
		queue := asynq.NewClient(redisOpt)
		defer queue.Close()
		worker := services.StartNotificationWorker(redisOpt, notifier, logger)
		defer worker.Shutdown()

		dispatcher = services.QueueDispatcher{Client: queue, Fallback: dispatcher, Logger: logger}
		redisClient = redis.NewClient(&redis.Options{
			Addr:     settings.RedisAddr,
			Password: settings.RedisPassword,
			DB:       settings.RedisQueueDB,
		})
		defer redisClient.Close()
	}

	bookingService := services.NewBookingService(bookingStore, serviceStore, rules, dispatcher, logger)
	catalogService := services.NewCatalogService(serviceStore, logger)
	authService := services.NewAuthService(userStore, logger)

	if err := authService.EnsureAdmin(ctx, settings.AdminEmail, settings.AdminPassword); err != nil {
		logger.Fatal("failed to ensure admin account", zap.Error(err))
	}
	if len(catalogService.ListAll(ctx)) == 0 {
		catalogService.SeedDefaults(ctx)
	}

	reminders := services.NewReminderService(bookingService, dispatcher, logger)
	if err := reminders.StartScheduler(settings.ReminderCron); err != nil {
		logger.Fatal("invalid REMINDER_CRON", zap.String("schedule", settings.ReminderCron), zap.Error(err))
	}
	defer reminders.Stop()

	health := utils.NewHealthMonitor(dbPinger, redisClient)
	health.Start(ctx, 30*time.Second)

	bookingLimiter := utils.NewRateLimiterStore(settings.MaxBookingsPerMin, 3)
	bookingLimiter.StartSweeper(ctx, time.Minute, 10*time.Minute)

	r := routes.SetupRouter(routes.Deps{
		Bookings: bookingService,
		Catalog:  catalogService,
		Auth:     authService,
		Profile: controllers.NewSalonProfile(
			settings.SalonName, settings.SalonPhone, settings.SalonEmail, settings.SalonAddress, rules),
		Health:         health,
		Logger:         logger,
		AllowedOrigins: settings.Origins(),
		BookingLimiter: bookingLimiter,
		SecureCookie:   settings.IsProduction(),
	})
	if !settings.IsProduction() {
		printRoutes(r)
	}

	srv := &http.Server{Addr: ":" + settings.Port, Handler: r}
	go func() {
		logger.Info("server listening", zap.String("port", settings.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
