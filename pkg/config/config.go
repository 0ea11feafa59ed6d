package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Identity     IdentityConfig
	Checkout     CheckoutConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TRENDORA_APP_ENV" required:"true"`
	Port         string `envconfig:"TRENDORA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TRENDORA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TRENDORA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TRENDORA_DB_DSN"`
	Driver string `envconfig:"TRENDORA_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"TRENDORA_DB_HOST"`
	Port     int    `envconfig:"TRENDORA_DB_PORT" default:"5432"`
	User     string `envconfig:"TRENDORA_DB_USER"`
	Password string `envconfig:"TRENDORA_DB_PASSWORD"`
	Name     string `envconfig:"TRENDORA_DB_NAME"`
	SSLMode  string `envconfig:"TRENDORA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TRENDORA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TRENDORA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TRENDORA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TRENDORA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TRENDORA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TRENDORA_REDIS_ADDR"`
	Password     string        `envconfig:"TRENDORA_REDIS_PASSWORD"`
	DB           int           `envconfig:"TRENDORA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TRENDORA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TRENDORA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TRENDORA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TRENDORA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TRENDORA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig bounds how long a session cart and checkout draft survive in Redis.
type SessionConfig struct {
	CartTTL  time.Duration `envconfig:"TRENDORA_SESSION_CART_TTL" default:"168h"`
	DraftTTL time.Duration `envconfig:"TRENDORA_SESSION_DRAFT_TTL" default:"24h"`
}

// IdentityConfig describes how bearer tokens from the external auth provider
// are verified. This service never issues tokens.
type IdentityConfig struct {
	JWTSecret string `envconfig:"TRENDORA_IDENTITY_JWT_SECRET" required:"true"`
	Issuer    string `envconfig:"TRENDORA_IDENTITY_ISSUER" default:"trendora-auth"`
}

// CheckoutConfig tunes the order-submission boundary, the one call whose
// failure forces a user to redo a full checkout form.
type CheckoutConfig struct {
	SubmitTimeout      time.Duration `envconfig:"TRENDORA_CHECKOUT_SUBMIT_TIMEOUT" default:"10s"`
	SubmitMaxAttempts  uint64        `envconfig:"TRENDORA_CHECKOUT_SUBMIT_MAX_ATTEMPTS" default:"3"`
	SubmitRetryBackoff time.Duration `envconfig:"TRENDORA_CHECKOUT_SUBMIT_RETRY_BACKOFF" default:"250ms"`
	IdempotencyTTL     time.Duration `envconfig:"TRENDORA_CHECKOUT_IDEMPOTENCY_TTL" default:"168h"`
}

// RateLimitConfig throttles the storefront writes that touch Redis and the
// database. Zero disables a limiter.
type RateLimitConfig struct {
	CheckoutSubmitLimit  int64         `envconfig:"TRENDORA_RATE_LIMIT_CHECKOUT_SUBMIT" default:"10"`
	CheckoutSubmitWindow time.Duration `envconfig:"TRENDORA_RATE_LIMIT_CHECKOUT_SUBMIT_WINDOW" default:"1m"`
	CartWriteLimit       int64         `envconfig:"TRENDORA_RATE_LIMIT_CART_WRITES" default:"120"`
	CartWriteWindow      time.Duration `envconfig:"TRENDORA_RATE_LIMIT_CART_WRITES_WINDOW" default:"1m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TRENDORA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TRENDORA_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
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
