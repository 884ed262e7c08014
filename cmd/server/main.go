package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"albaniarides/internal/app"
	"albaniarides/internal/auth"
	"albaniarides/internal/config"
	"albaniarides/internal/crypto"
	"albaniarides/internal/handler"
	"albaniarides/internal/middleware"
	internalRedis "albaniarides/internal/redis"
	"albaniarides/internal/repository/postgres"
	"albaniarides/internal/service"
	"albaniarides/internal/sms"
	"albaniarides/internal/web"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so the database driver can be instrumented.
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Warn("new relic init failed", zap.Error(err))
		} else {
			log.Info("new relic enabled", zap.String("app", cfg.NewRelic.AppName))
		}
	}

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	defer db.Close()
	log.Info("connected to postgres", zap.String("db", cfg.Database.DBName))

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatal("redis init failed", zap.Error(err))
	}
	defer redisClient.Close()
	log.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))

	server, sweeper, err := wireServer(db, redisClient, nrApp, cfg, log)
	if err != nil {
		log.Fatal("wiring failed", zap.Error(err))
	}

	// Background rating sweeper, stopped on shutdown.
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	go sweeper.Run(sweepCtx)

	go func() {
		log.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	stopSweeper()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("forced shutdown", zap.Error(err))
	}

	log.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server and the
// background rating sweeper.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config, log *zap.Logger) (*http.Server, *service.RatingSweeper, error) {
	cipher, err := crypto.NewPhoneCipher(cfg.Auth.PhoneKey)
	if err != nil {
		return nil, nil, err
	}
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret)

	// SMS goes through Twilio in production and the log in test mode.
	var sender sms.Sender
	if cfg.SMS.TestMode {
		sender = sms.NewLogSender(log)
	} else {
		sender = sms.NewTwilioSender(cfg.SMS.TwilioAccountSID, cfg.SMS.TwilioAuthToken, cfg.SMS.TwilioFromNumber)
	}

	// Redis stores.
	otpStore := internalRedis.NewOTPStore(redisClient, cfg.SMS.TestMode)
	linkStore := internalRedis.NewMagicLinkStore(redisClient)

	// Repositories.
	userRepo := postgres.NewUserRepository(db)
	rideRepo := postgres.NewRideRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	ratingRepo := postgres.NewRatingRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	txRunner := postgres.NewTxRunner(db)

	// Services.
	notifier := service.NewNotificationService(sender, cipher, log)
	authService := service.NewAuthService(userRepo, otpStore, linkStore, cipher, tokens, notifier, cfg.Server.BaseURL)
	userService := service.NewUserService(userRepo)
	rideService := service.NewRideService(rideRepo, bookingRepo, userRepo)
	bookingService := service.NewBookingService(txRunner, bookingRepo, rideRepo, userRepo, notifier)
	messageService := service.NewMessageService(messageRepo, bookingRepo, rideRepo)
	ratingService := service.NewRatingService(txRunner, ratingRepo, rideRepo, bookingRepo)
	sweeper := service.NewRatingSweeper(txRunner, cfg.Ratings.SweepInterval, cfg.Ratings.SweepAfter, log)

	// Handlers.
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:    handler.NewAuthHandler(authService),
		UserHandler:    handler.NewUserHandler(userService),
		RideHandler:    handler.NewRideHandler(rideService, bookingService),
		BookingHandler: handler.NewBookingHandler(bookingService, messageService),
		RatingHandler:  handler.NewRatingHandler(ratingService),
		CitiesHandler:  handler.NewCitiesHandler(),
		WebServer:      web.NewServer(rideService, cfg.Server.TemplateGlob),
		RequireAuth:    middleware.RequireAuth(tokens),
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return server, sweeper, nil
}
