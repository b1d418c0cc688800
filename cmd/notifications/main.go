package main

import (
	"context"
	"errors"

	bookingRepo "bukid/internal/bookings/repository"
	"bukid/internal/notifications/handler"
	"bukid/internal/notifications/repository"
	"bukid/internal/notifications/service"
	"bukid/pkg/app"
	"bukid/pkg/config"
	"bukid/pkg/kafka"
	kafka_config "bukid/pkg/kafka/config"
	middleware "bukid/pkg/kafka/middleware"
)

const (
	ServiceName   = "notifications"
	consumerGroup = "notifications-booking-events"
)

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.LogConfiguration()
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Notifications service")

	notificationRepo := repository.NewMongoNotificationRepository(cfg)
	checker := initChecker(cfg, notificationRepo)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewNotificationHandler(service.NewBellService(notificationRepo, cfg), cfg.Log))
	serverApp.AddWorker(service.NewWorker(checker, cfg.ScanInterval))
	serverApp.AddWorker(initConsumer(cfg, checker))
	serverApp.Run()
}

func initChecker(cfg *config.Config, notifs repository.NotificationRepository) *service.Checker {
	checker := service.NewChecker(
		bookingRepo.NewMongoBookingRepository(cfg),
		notifs,
		repository.NewMongoScheduleRepository(cfg),
		service.NewRedisGuard(cfg),
		cfg,
	)

	cfg.Log.Info("Notification checker initialized",
		"database", cfg.MongoDatabaseName,
		"scan_interval", cfg.ScanInterval.String(),
	)
	return checker
}

// initConsumer reacts to booking events as they happen, so a booking created
// close to its event date gets its payment alert without waiting for the
// next scheduled scan.
func initConsumer(cfg *config.Config, checker *service.Checker) app.Worker {
	consumer, err := kafka.NewConsumer(
		kafka_config.Load(),
		kafka.TopicBookingEvents,
		consumerGroup,
		kafka.TopicBookingEventsDLQ,
		service.NewBookingEventsHandler(checker, cfg.Log),
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
