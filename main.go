// main.go
package main

import (
	"log"

	"slot-booking/cmd"
	"slot-booking/internal/data/repository"
	"slot-booking/internal/notify"
	"slot-booking/internal/wire"
	"slot-booking/pkg/database"
	"slot-booking/pkg/utils"

	"github.com/hibiken/asynq"
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

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Transaction runner for the booking coordinator
	runner := database.NewTxRunner(db, database.TxOptions{
		MaxRetries: config.Booking.TxMaxRetries,
		Timeout:    config.Booking.TxTimeout,
	}, logger)
	atomic := repository.NewAtomic(runner, repos)

	// Notification pipeline: queue client for the API, worker consuming it
	redisOpt := asynq.RedisClientOpt{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	}
	queueClient := asynq.NewClient(redisOpt)
	defer queueClient.Close()
	dispatcher := notify.NewDispatcher(queueClient, logger)

	worker := notify.NewWorker(repos, notify.NewLineClient(config.Line), config.Line, logger)
	go func() {
		if err := worker.Run(redisOpt); err != nil {
			logger.Fatal("Notification worker stopped", zap.Error(err))
		}
	}()

	// Wire all dependencies
	app := wire.Wiring(atomic, repos, dispatcher, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
