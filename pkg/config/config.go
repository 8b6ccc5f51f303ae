package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/angelmondragon/ratewise-backend/pkg/enums"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Pricing      PricingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = DriverSQLite
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	var errs error
	if c.DB.Driver != DriverPostgres && c.DB.Driver != DriverSQLite {
		errs = multierr.Append(errs, fmt.Errorf("unsupported db driver %q", c.DB.Driver))
	}
	errs = multierr.Append(errs, c.Pricing.validate())
	if c.Pricing.CacheEnabled && c.Redis.URL == "" && c.Redis.Address == "" {
		errs = multierr.Append(errs, fmt.Errorf("%s or %s is required when %s is set", EnvRedisURL, EnvRedisAddr, EnvPricingCacheEnabled))
	}
	return errs
}

type AppConfig struct {
	Env          string `envconfig:"RATEWISE_APP_ENV" required:"true"`
	Port         string `envconfig:"RATEWISE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"RATEWISE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RATEWISE_LOG_WARN_STACK" default:"false"`

	CORSAllowedOrigins []string `envconfig:"RATEWISE_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"RATEWISE_DB_DSN"`
	Driver string `envconfig:"RATEWISE_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"RATEWISE_DB_HOST"`
	Port     int    `envconfig:"RATEWISE_DB_PORT" default:"5432"`
	User     string `envconfig:"RATEWISE_DB_USER"`
	Password string `envconfig:"RATEWISE_DB_PASSWORD"`
	Name     string `envconfig:"RATEWISE_DB_NAME"`
	SSLMode  string `envconfig:"RATEWISE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RATEWISE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RATEWISE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RATEWISE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RATEWISE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RATEWISE_REDIS_URL"`
	Address      string        `envconfig:"RATEWISE_REDIS_ADDR"`
	Password     string        `envconfig:"RATEWISE_REDIS_PASSWORD"`
	DB           int           `envconfig:"RATEWISE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RATEWISE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RATEWISE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RATEWISE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RATEWISE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RATEWISE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"RATEWISE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"RATEWISE_AUTO_MIGRATE" default:"false"`
}

// PricingConfig tunes the matrix engine. Percent values are plain numbers (30 means 30%).
type PricingConfig struct {
	HighCommissionThreshold string        `envconfig:"RATEWISE_PRICING_HIGH_COMMISSION_THRESHOLD" default:"30"`
	MinRetentionRatio       string        `envconfig:"RATEWISE_PRICING_MIN_RETENTION_RATIO" default:"0.5"`
	ConflictTieBreak        string        `envconfig:"RATEWISE_PRICING_CONFLICT_TIE_BREAK" default:"FIRST_WINS"`
	Workers                 int           `envconfig:"RATEWISE_PRICING_WORKERS" default:"4"`
	CacheEnabled            bool          `envconfig:"RATEWISE_PRICING_CACHE_ENABLED" default:"false"`
	CacheTTL                time.Duration `envconfig:"RATEWISE_PRICING_CACHE_TTL" default:"10m"`
}

// HighCommission returns the parsed commission warning threshold.
func (p PricingConfig) HighCommission() decimal.Decimal {
	return decimal.RequireFromString(p.HighCommissionThreshold)
}

// MinRetention returns the parsed minimum net / BAR ratio.
func (p PricingConfig) MinRetention() decimal.Decimal {
	return decimal.RequireFromString(p.MinRetentionRatio)
}

// TieBreak returns the parsed conflict tie-break.
func (p PricingConfig) TieBreak() enums.TieBreak {
	return enums.TieBreak(p.ConflictTieBreak)
}

func (p PricingConfig) validate() error {
	var errs error
	threshold, err := decimal.NewFromString(p.HighCommissionThreshold)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", EnvPricingHighCommission, err))
	} else if threshold.IsNegative() || threshold.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		errs = multierr.Append(errs, fmt.Errorf("%s must be in [0,100)", EnvPricingHighCommission))
	}
	ratio, err := decimal.NewFromString(p.MinRetentionRatio)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", EnvPricingMinRetention, err))
	} else if ratio.IsNegative() || ratio.GreaterThan(decimal.NewFromInt(1)) {
		errs = multierr.Append(errs, fmt.Errorf("%s must be in [0,1]", EnvPricingMinRetention))
	}
	if _, err := enums.ParseTieBreak(p.ConflictTieBreak); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", EnvPricingTieBreak, err))
	}
	if p.Workers <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s must be positive", EnvPricingWorkers))
	}
	if p.CacheEnabled && p.CacheTTL <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s must be positive when caching", EnvPricingCacheTTL))
	}
	return errs
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if db.DSN != "" {
		return nil
	}
	if useSQLite {
		db.DSN = "file:ratewise.db?cache=shared"
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range componentDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
