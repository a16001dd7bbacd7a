package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/goalpark/stadium-booking/internal/config"
	"github.com/goalpark/stadium-booking/internal/database"
	"github.com/goalpark/stadium-booking/internal/handler"
	"github.com/goalpark/stadium-booking/internal/middleware"
	"github.com/goalpark/stadium-booking/internal/objectstore"
	"github.com/goalpark/stadium-booking/internal/queue"
	"github.com/goalpark/stadium-booking/internal/repository"
	"github.com/goalpark/stadium-booking/internal/router"
	"github.com/goalpark/stadium-booking/internal/service"
)

func main() {
	// .env is a dev convenience; production sets real env vars.
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("APP_ENV") == "dev" {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	store, err := objectstore.NewFSStore(cfg.StorageDir, cfg.StorageBucket, cfg.StorageBaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.StorageDir).Msg("object storage init failed")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	stadiums := repository.NewStadiumRepo(db)
	bookings := repository.NewBookingRepo(db)
	slips := repository.NewPaymentSlipRepo(db)

	publisher := queue.NewPublisher(log)
	go func() {
		if err := queue.StartConsumer(log); err != nil {
			log.Warn().Err(err).Msg("event consumer stopped")
		}
	}()

	svc := service.NewBookingService(bookings, stadiums, slips, store, publisher, service.Config{
		UploadMaxBytes:  cfg.UploadMaxBytes,
		StrictConflicts: cfg.StrictConflicts,
	}, log)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable; rate limiting and response cache disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	var cacheMW echo.MiddlewareFunc
	if rdb != nil {
		cacheMW = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewStadiumHandler(stadiums, svc), cacheMW)
	router.RegisterBookings(e, handler.NewBookingHandler(svc), cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(stadiums, slips, svc), cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
