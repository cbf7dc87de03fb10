package config

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	FeatureFlags FeatureFlagsConfig
	Envelope     EnvelopeConfig
	Redis        RedisConfig
	Idempotency  IdempotencyConfig
	Metrics      MetricsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DriverSQLite
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs error
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = multierr.Append(errs, fmt.Errorf("%s must be %q or %q, got %q", EnvDBDriver, DriverPostgres, DriverSQLite, c.DB.Driver))
	}
	switch {
	case strings.EqualFold(c.Envelope.Mode, EnvelopeModePlain):
	case c.Envelope.Encrypted():
		if strings.TrimSpace(c.Envelope.Key) == "" {
			errs = multierr.Append(errs, fmt.Errorf("%s is required when %s=%s", EnvEnvelopeKey, EnvEnvelopeMode, EnvelopeModeEncrypted))
		} else if _, err := c.Envelope.DecodeKey(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", EnvEnvelopeKey, err))
		}
	default:
		errs = multierr.Append(errs, fmt.Errorf("%s must be %q or %q, got %q", EnvEnvelopeMode, EnvelopeModePlain, EnvelopeModeEncrypted, c.Envelope.Mode))
	}
	if c.App.ShutdownTimeout <= 0 {
		errs = multierr.Append(errs, errors.New(EnvShutdownTimeout+" must be positive"))
	}
	return errs
}

type AppConfig struct {
	Env             string        `envconfig:"STOCKROOM_APP_ENV" required:"true"`
	Port            string        `envconfig:"STOCKROOM_APP_PORT" default:"8000"`
	LogLevel        string        `envconfig:"STOCKROOM_LOG_LEVEL" default:"info"`
	LogWarnStack    bool          `envconfig:"STOCKROOM_LOG_WARN_STACK" default:"false"`
	ShutdownTimeout time.Duration `envconfig:"STOCKROOM_SHUTDOWN_TIMEOUT" default:"10s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STOCKROOM_DB_DSN"`
	Driver string `envconfig:"STOCKROOM_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STOCKROOM_DB_HOST"`
	LegacyPort     int    `envconfig:"STOCKROOM_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STOCKROOM_DB_USER"`
	LegacyPassword string `envconfig:"STOCKROOM_DB_PASSWORD"`
	LegacyName     string `envconfig:"STOCKROOM_DB_NAME"`
	LegacySSLMode  string `envconfig:"STOCKROOM_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOCKROOM_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOCKROOM_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOCKROOM_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOCKROOM_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"STOCKROOM_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"STOCKROOM_AUTO_MIGRATE" default:"false"`
}

// EnvelopeConfig selects how request and response bodies cross the wire.
// Key is only read in encrypted mode and must decode to 32 bytes.
type EnvelopeConfig struct {
	Mode string `envconfig:"STOCKROOM_ENVELOPE_MODE" default:"plain"`
	Key  string `envconfig:"STOCKROOM_ENVELOPE_KEY"`
}

// EnvelopeKeySize is the AES-256 key length in bytes.
const EnvelopeKeySize = 32

func (e EnvelopeConfig) Encrypted() bool {
	return strings.EqualFold(strings.TrimSpace(e.Mode), EnvelopeModeEncrypted)
}

// DecodeKey accepts a 32 character secret, 64 hex characters, or standard
// Base64 of 32 bytes.
func (e EnvelopeConfig) DecodeKey() ([]byte, error) {
	raw := strings.TrimSpace(e.Key)
	if raw == "" {
		return nil, errors.New("envelope key is empty")
	}
	if len(raw) == EnvelopeKeySize {
		return []byte(raw), nil
	}
	if len(raw) == 2*EnvelopeKeySize {
		if key, err := hex.DecodeString(raw); err == nil {
			return key, nil
		}
	}
	if key, err := base64.StdEncoding.DecodeString(raw); err == nil && len(key) == EnvelopeKeySize {
		return key, nil
	}
	return nil, fmt.Errorf("envelope key must be %d bytes (raw, hex or base64)", EnvelopeKeySize)
}

type RedisConfig struct {
	URL          string        `envconfig:"STOCKROOM_REDIS_URL"`
	Address      string        `envconfig:"STOCKROOM_REDIS_ADDR"`
	Password     string        `envconfig:"STOCKROOM_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOCKROOM_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOCKROOM_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOCKROOM_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOCKROOM_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOCKROOM_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOCKROOM_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint has been configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"STOCKROOM_IDEMPOTENCY_TTL" default:"24h"`
}

type MetricsConfig struct {
	Enabled bool `envconfig:"STOCKROOM_METRICS_ENABLED" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.Driver == DriverSQLite {
		db.DSN = "file:stockroom.db?cache=shared"
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
