package main

import (
	"bukid/internal/bookings/handler"
	"bukid/internal/bookings/repository"
	"bukid/internal/bookings/service"
	"bukid/internal/bookings/validator"
	"bukid/pkg/app"
	"bukid/pkg/config"
	"bukid/pkg/kafka"
	kafka_config "bukid/pkg/kafka/config"
	middleware "bukid/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	// Log all configuration values
	cfg.LogConfiguration()
	cfg.SetMongo()

	cfg.Log.Info("Starting Bookings service")
	bookingService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.AddWorker(service.NewRefreshWorker(bookingService, cfg.ScanInterval, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewBookingLockRepository(cfg)

	bookingService := service.NewBookingService(
		bookingRepo,
		lockRepo,
		bookingValidator,
		initPublisher(cfg),
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

func initPublisher(cfg *config.Config) service.EventPublisher {
	producer, err := kafka.NewProducer(
		kafka_config.Load(),
		kafka.TopicBookingEvents,
		kafka.TopicBookingEventsDLQ,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(middleware.LoggingProducerMiddleware(cfg.Log))
	producer.Use(middleware.MetricsProducerMiddleware())

	cfg.Log.Info("Kafka producer initialized", "topic", kafka.TopicBookingEvents)
	return producer
}
