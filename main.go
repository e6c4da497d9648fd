// main.go
package main

import (
	"context"
	"log"
	"time"

	"travel-booking/cmd"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/kafka"
	"travel-booking/internal/wire"
	"travel-booking/pkg/cache"
	"travel-booking/pkg/database"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Optional session cache
	var sessionCache *cache.SessionCache
	if config.Redis.Addr != "" {
		sessionCache = cache.NewSessionCache(config.Redis,
			time.Duration(config.Session.CacheTTLMinutes)*time.Minute)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := sessionCache.Ping(ctx); err != nil {
			logger.Warn("Redis unreachable, session cache disabled", zap.Error(err))
			sessionCache = nil
		} else {
			logger.Info("Session cache connected", zap.String("addr", config.Redis.Addr))
		}
		cancel()
	}

	// Optional booking event producer
	var producer *kafka.Producer
	if len(config.Kafka.Brokers) > 0 {
		producer = kafka.NewProducer(config.Kafka.Brokers)
		defer producer.Close()
		logger.Info("Kafka producer ready",
			zap.Strings("brokers", config.Kafka.Brokers),
			zap.String("topic", config.Kafka.BookingEventsTopic))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, sessionCache, producer, logger)

	// Background sweep for expired booking holds
	go runReaper(app, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}

func runReaper(app *wire.App, config *utils.Config, logger *zap.Logger) {
	interval := time.Duration(config.Booking.SweepMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		result, err := app.Service.Booking.ReapExpired(ctx)
		cancel()

		if err != nil {
			logger.Error("Expiry sweep failed", zap.Error(err))
			continue
		}
		if result.Reaped > 0 {
			logger.Info("Expiry sweep finished", zap.Int("reaped", result.Reaped))
		}
	}
}
