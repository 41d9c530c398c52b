package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashutosh1890/Air-Cargo-booking/config"
	"github.com/ashutosh1890/Air-Cargo-booking/internal/bootstrap"
	"github.com/ashutosh1890/Air-Cargo-booking/internal/cache"
	"github.com/ashutosh1890/Air-Cargo-booking/internal/kafka"
	"github.com/ashutosh1890/Air-Cargo-booking/internal/repository"
	"github.com/ashutosh1890/Air-Cargo-booking/internal/service/booking"
	"github.com/ashutosh1890/Air-Cargo-booking/internal/service/routes"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Search.RoutesCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	routeService := routes.NewRouteService(flightRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		producer,
		cfg.Kafka.BookingEventsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, routeService, bookingService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
