package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/config"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/database"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/handler"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/middleware"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/queue"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/repository"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/router"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables response caching and rate
	// limiting but the engine itself keeps working.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, caching and rate limiting disabled")
	}

	// Repositories.
	users := repository.NewUserRepo(db)
	refresh := repository.NewRefreshTokenRepo(db)
	hotels := repository.NewHotelRepo(db)
	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)
	inventory := repository.NewInventoryRepo(db)
	checkinTokens := repository.NewCheckInTokenRepo(db)

	// Services and collaborators.
	cacheCfg := config.LoadCacheConfig()
	invalidator := service.NewRedisInvalidator(rdb, cacheCfg.Prefix)
	var notifier service.NotificationPort = service.NewRabbitNotifier()
	tokens := service.NewTokenService(checkinTokens, bookings, cfg.JWTSecret, cfg.Token)
	pricing := service.FallbackOracle{
		Primary:      service.NewRateTableOracle(hotels),
		DefaultCents: cfg.DefaultNightlyRateCents,
	}
	engine := service.NewBookingService(bookings, inventory, rooms, hotels, tokens,
		pricing, cfg, invalidator, notifier)

	// Background workers: the broker consumer writes lifecycle events to
	// logs/booking.log, the sweeper expires lapsed check-in tokens.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()
	tokens.StartExpirySweeper(context.Background(), time.Hour)

	// HTTP wiring.
	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, refresh), cfg.JWTSecret)
	router.RegisterAvailability(e, handler.NewAvailabilityHandler(engine), cacheCfg, rdb)
	router.RegisterShared(e, handler.NewBookingHandler(engine), cfg.JWTSecret)
	router.RegisterCustomer(e, handler.NewBookingHandler(engine), handler.NewTokenHandler(tokens), cfg.JWTSecret)
	router.RegisterStaff(e, handler.NewBookingHandler(engine), handler.NewTokenHandler(tokens), cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(hotels, rooms), cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
