package main

import (
	"context"
	"errors"

	"bukid/internal/inventory/handler"
	"bukid/internal/inventory/repository"
	"bukid/internal/inventory/service"
	"bukid/internal/inventory/validator"
	"bukid/pkg/app"
	"bukid/pkg/config"
	"bukid/pkg/kafka"
	kafka_config "bukid/pkg/kafka/config"
	middleware "bukid/pkg/kafka/middleware"
)

const (
	ServiceName   = "inventory"
	consumerGroup = "inventory-booking-events"
)

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.LogConfiguration()
	cfg.SetMongo()

	cfg.Log.Info("Starting Inventory service")
	inventoryService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewInventoryHandler(inventoryService, cfg.Log))
	serverApp.AddWorker(initConsumer(cfg, inventoryService))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.InventoryService {
	inventoryService := service.NewInventoryService(
		repository.NewMongoItemRepository(cfg),
		repository.NewMongoReservationRepository(cfg),
		validator.NewInventoryValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Inventory service initialized", "database", cfg.MongoDatabaseName)
	return inventoryService
}

// initConsumer subscribes to booking events so reservation snapshots track
// booking status changes without polling the bookings database.
func initConsumer(cfg *config.Config, svc service.InventoryService) app.Worker {
	consumer, err := kafka.NewConsumer(
		kafka_config.Load(),
		kafka.TopicBookingEvents,
		consumerGroup,
		kafka.TopicBookingEventsDLQ,
		service.NewBookingEventsHandler(svc, cfg.Log),
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(middleware.LoggingConsumerMiddleware(cfg.Log))
	consumer.Use(middleware.MetricsConsumerMiddleware())

	return app.WorkerFunc(func(ctx context.Context) {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			cfg.Log.Error("Booking events consumer stopped", "error", err)
		}
		if err := consumer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka consumer", "error", err)
		}
	})
}
