package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvBusinessTimezone     = "BUSINESS_TIMEZONE"
	EnvScanInterval         = "NOTIFICATION_SCAN_INTERVAL"
	EnvUnpaidReminderEvery  = "UNPAID_REMINDER_EVERY"
	EnvDedupGuardTTL        = "NOTIFICATION_DEDUP_GUARD_TTL"
	EnvReportCacheTTL       = "REPORT_CACHE_TTL"
	EnvBookingLockTTL       = "BOOKING_LOCK_TTL"
	EnvBookingsServiceURL   = "BOOKINGS_SERVICE_URL"
	EnvInventoryServiceURL  = "INVENTORY_SERVICE_URL"
	EnvServiceClientTimeout = "SERVICE_CLIENT_TIMEOUT"
)
