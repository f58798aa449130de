// main.go
package main

import (
	"context"
	"log"

	"studio-booking/cmd"
	"studio-booking/internal/data/cache"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/wire"
	"studio-booking/pkg/database"
	"studio-booking/pkg/notify"
	"studio-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig(".env")
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
		zap.String("store", config.Store.Driver),
		zap.String("notifier", config.Notify.Driver),
	)

	// Record store
	var repos *repository.Repository
	switch config.Store.Driver {
	case utils.StoreDriverMemory:
		logger.Warn("Using in-memory store; bookings are lost on restart")
		repos = repository.NewMemoryRepository(logger)
	default:
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if config.Database.AutoMigrate {
			if err := database.Migrate(context.Background(), db); err != nil {
				logger.Fatal("Failed to migrate database", zap.Error(err))
			}
		}

		logger.Info("Database connected successfully")
		repos = repository.NewRepository(db, logger)
	}

	// Availability cache
	availability := cache.NewNopAvailabilityCache()
	if config.Redis.Addr != "" {
		client, err := cache.NewRedisClient(config.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, availability cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			availability = cache.NewRedisAvailabilityCache(client, config.Redis.TTL, logger)
			logger.Info("Availability cache enabled", zap.String("addr", config.Redis.Addr))
		}
	}

	// Confirmation sender
	notifier, closer, err := notify.New(config, logger)
	if err != nil {
		logger.Fatal("Failed to init notifier", zap.Error(err))
	}
	defer closer.Close()

	// Wire all dependencies
	app := wire.Wiring(repos, notifier, availability, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}
