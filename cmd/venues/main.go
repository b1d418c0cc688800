package main

import (
	cateringHandler "bukid/internal/catering/handler"
	cateringRepo "bukid/internal/catering/repository"
	cateringService "bukid/internal/catering/service"
	cateringValidator "bukid/internal/catering/validator"
	venueHandler "bukid/internal/pavilions/handler"
	venueRepo "bukid/internal/pavilions/repository"
	venueService "bukid/internal/pavilions/service"
	venueValidator "bukid/internal/pavilions/validator"
	"bukid/pkg/app"
	"bukid/pkg/config"
	"bukid/pkg/contracts"

	"github.com/julienschmidt/httprouter"
)

const ServiceName = "venues"

// compositeHandler mounts several domain handlers on one router. The venues
// binary serves both the pavilion/room and the package/dish APIs.
type compositeHandler struct {
	handlers []contracts.Handler
}

func (h *compositeHandler) RegisterRoutes(router *httprouter.Router) {
	for _, handler := range h.handlers {
		handler.RegisterRoutes(router)
	}
}

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.LogConfiguration()
	cfg.SetMongo()

	cfg.Log.Info("Starting Venues service")
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(&compositeHandler{
		handlers: []contracts.Handler{
			initVenues(cfg),
			initCatering(cfg),
		},
	})
	serverApp.Run()
}

func initVenues(cfg *config.Config) contracts.Handler {
	svc := venueService.NewVenueService(
		venueRepo.NewMongoPavilionRepository(cfg),
		venueRepo.NewMongoRoomRepository(cfg),
		venueValidator.NewVenueValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Venue service initialized", "database", cfg.MongoDatabaseName)
	return venueHandler.NewVenueHandler(svc, cfg.Log)
}

func initCatering(cfg *config.Config) contracts.Handler {
	svc := cateringService.NewCateringService(
		cateringRepo.NewMongoPackageRepository(cfg),
		cateringRepo.NewMongoDishRepository(cfg),
		cateringValidator.NewCateringValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Catering service initialized", "database", cfg.MongoDatabaseName)
	return cateringHandler.NewCateringHandler(svc, cfg.Log)
}
