package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "bukid"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultRedisAddr = "localhost:6379"
	DefaultRedisDB   = 0

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100

	// The farm operates on Manila time; day-granularity date math (overlap
	// checks, days-until-event) is anchored to this zone.
	DefaultBusinessTimezone = "Asia/Manila"

	DefaultScanInterval        = 5 * time.Minute
	DefaultUnpaidReminderEvery = 72 * time.Hour
	DefaultDedupGuardTTL       = 10 * time.Minute
	DefaultReportCacheTTL      = 5 * time.Minute
	DefaultBookingLockTTL      = 30 * time.Second

	DefaultBookingsServiceURL   = "http://localhost:8081"
	DefaultInventoryServiceURL  = "http://localhost:8083"
	DefaultServiceClientTimeout = 10 * time.Second
)

// PaymentAlertOffsets are the day marks before an event at which payment
// alerts fire, highest first.
var PaymentAlertOffsets = []int{7, 3, 1}
