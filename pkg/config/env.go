package config

const (
	EnvPrefix = "RATEWISE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvAppEnv   = "RATEWISE_APP_ENV"
	EnvPort     = "RATEWISE_APP_PORT"
	EnvLogLevel = "RATEWISE_LOG_LEVEL"

	EnvDBDSN  = "RATEWISE_DB_DSN"
	EnvDBHost = "RATEWISE_DB_HOST"
	EnvDBUser = "RATEWISE_DB_USER"
	EnvDBName = "RATEWISE_DB_NAME"

	EnvUseSQLite = "RATEWISE_USE_SQLITE"

	EnvRedisURL  = "RATEWISE_REDIS_URL"
	EnvRedisAddr = "RATEWISE_REDIS_ADDR"

	EnvPricingHighCommission = "RATEWISE_PRICING_HIGH_COMMISSION_THRESHOLD"
	EnvPricingMinRetention   = "RATEWISE_PRICING_MIN_RETENTION_RATIO"
	EnvPricingTieBreak       = "RATEWISE_PRICING_CONFLICT_TIE_BREAK"
	EnvPricingWorkers        = "RATEWISE_PRICING_WORKERS"
	EnvPricingCacheEnabled   = "RATEWISE_PRICING_CACHE_ENABLED"
	EnvPricingCacheTTL       = "RATEWISE_PRICING_CACHE_TTL"
)

var componentDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
