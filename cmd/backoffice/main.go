package main

import (
	discountHandler "bukid/internal/discounts/handler"
	discountRepo "bukid/internal/discounts/repository"
	discountService "bukid/internal/discounts/service"
	discountValidator "bukid/internal/discounts/validator"
	reportHandler "bukid/internal/reports/handler"
	reportRepo "bukid/internal/reports/repository"
	reportService "bukid/internal/reports/service"
	staffHandler "bukid/internal/staff/handler"
	staffRepo "bukid/internal/staff/repository"
	staffService "bukid/internal/staff/service"
	staffValidator "bukid/internal/staff/validator"
	"bukid/pkg/app"
	"bukid/pkg/client"
	"bukid/pkg/config"
	"bukid/pkg/contracts"

	"github.com/julienschmidt/httprouter"
)

const ServiceName = "backoffice"

// compositeHandler mounts several domain handlers on one router. The
// back-office binary serves employees, discount requests and reports.
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
	cfg.SetRedis()

	cfg.Log.Info("Starting Back-office service")
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(&compositeHandler{
		handlers: []contracts.Handler{
			initStaff(cfg),
			initDiscounts(cfg),
			initReports(cfg),
		},
	})
	serverApp.Run()
}

func initStaff(cfg *config.Config) contracts.Handler {
	svc := staffService.NewEmployeeService(
		staffRepo.NewMongoEmployeeRepository(cfg),
		staffValidator.NewEmployeeValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Employee service initialized", "database", cfg.MongoDatabaseName)
	return staffHandler.NewEmployeeHandler(svc, cfg.Log)
}

func initDiscounts(cfg *config.Config) contracts.Handler {
	// Discount settlement goes through the bookings HTTP API rather than the
	// bookings collection, so balance updates run the bookings service's own
	// validation.
	bookings := client.NewBookingClient(cfg.BookingsServiceURL, cfg.ServiceClientTimeout)

	svc := discountService.NewDiscountService(
		discountRepo.NewMongoDiscountRepository(cfg),
		bookings,
		discountValidator.NewDiscountValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Discount service initialized", "bookings_url", cfg.BookingsServiceURL)
	return discountHandler.NewDiscountHandler(svc, cfg.Log)
}

func initReports(cfg *config.Config) contracts.Handler {
	svc := reportService.NewReportService(
		reportRepo.NewMongoReportRepository(cfg),
		reportService.NewRedisCache(cfg),
		cfg,
	)

	cfg.Log.Info("Report service initialized", "cache_ttl", cfg.ReportCacheTTL.String())
	return reportHandler.NewReportHandler(svc, cfg.Log)
}
