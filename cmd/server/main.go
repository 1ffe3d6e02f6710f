package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/event-booking/internal/config"
	"github.com/iliyamo/event-booking/internal/database"
	"github.com/iliyamo/event-booking/internal/handler"
	"github.com/iliyamo/event-booking/internal/queue"
	"github.com/iliyamo/event-booking/internal/repository"
	"github.com/iliyamo/event-booking/internal/router"
	"github.com/iliyamo/event-booking/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment
	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Env == "dev" {
		logger.SetLevel(logrus.DebugLevel)
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil disables rate limiting and caching
	if rdb == nil {
		logger.Warn("redis unavailable; rate limiting and response cache disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	events := repository.NewEventRepo(db)
	bookings := repository.NewBookingRepo(db)

	publisher := service.NewAMQPPublisher(queue.BrokerURL(), logger)

	authSvc := service.NewAuthService(users, tokens, service.TokenConfig{
		Secret:         cfg.JWTSecret,
		Issuer:         cfg.JWTIssuer,
		Audience:       cfg.JWTAudience,
		AccessTTLMin:   cfg.AccessTTLMin,
		RefreshTTLDays: cfg.RefreshTTLDays,
	}, cfg.BcryptCost)
	eventSvc := service.NewEventService(events, bookings)
	bookingSvc := service.NewBookingService(bookings, publisher)
	adminSvc := service.NewAdminService(events, users, bookings)

	// Background booking log consumer; reconnects on its own.
	go func() {
		if err := queue.StartBookingConsumer(logger); err != nil {
			logger.WithError(err).Warn("booking consumer stopped")
		}
	}()

	// Hourly purge of expired/revoked refresh tokens. Rotation and login
	// only flag rows; this reclaims them.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			n, err := tokens.PurgeExpired(ctx, time.Now().UTC())
			cancel()
			if err != nil {
				logger.WithError(err).Warn("refresh token purge failed")
				continue
			}
			if n > 0 {
				logger.WithField("purged", n).Info("refresh tokens purged")
			}
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Event:      handler.NewEventHandler(eventSvc),
		Booking:    handler.NewBookingHandler(bookingSvc),
		Admin:      handler.NewAdminHandler(eventSvc, adminSvc),
		AdminSetup: handler.NewAdminSetupHandler(authSvc),
	}, cfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
