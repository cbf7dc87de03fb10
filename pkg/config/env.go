package config

// EnvPrefix namespaces every variable read by envconfig.
const EnvPrefix = "STOCKROOM"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv          = "STOCKROOM_APP_ENV"
	EnvPort            = "STOCKROOM_APP_PORT"
	EnvLogLevel        = "STOCKROOM_LOG_LEVEL"
	EnvShutdownTimeout = "STOCKROOM_SHUTDOWN_TIMEOUT"

	EnvDBDSN    = "STOCKROOM_DB_DSN"
	EnvDBDriver = "STOCKROOM_DB_DRIVER"
	EnvDBHost   = "STOCKROOM_DB_HOST"
	EnvDBPort   = "STOCKROOM_DB_PORT"
	EnvDBUser   = "STOCKROOM_DB_USER"
	EnvDBPass   = "STOCKROOM_DB_PASSWORD"
	EnvDBName   = "STOCKROOM_DB_NAME"

	EnvUseSQLite   = "STOCKROOM_USE_SQLITE"
	EnvAutoMigrate = "STOCKROOM_AUTO_MIGRATE"

	EnvEnvelopeMode = "STOCKROOM_ENVELOPE_MODE"
	EnvEnvelopeKey  = "STOCKROOM_ENVELOPE_KEY"

	EnvRedisURL  = "STOCKROOM_REDIS_URL"
	EnvRedisAddr = "STOCKROOM_REDIS_ADDR"

	EnvIdempotencyTTL = "STOCKROOM_IDEMPOTENCY_TTL"
	EnvMetricsEnabled = "STOCKROOM_METRICS_ENABLED"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvelopeModePlain     = "plain"
	EnvelopeModeEncrypted = "encrypted"
)
