package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "FRESHCART"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv        = "FRESHCART_APP_ENV"
	EnvPort          = "FRESHCART_APP_PORT"
	EnvLogLevel      = "FRESHCART_LOG_LEVEL"
	EnvJWTSecret     = "FRESHCART_JWT_SECRET"
	EnvJWTIssuer     = "FRESHCART_JWT_ISSUER"
	EnvJWTExpMins    = "FRESHCART_JWT_EXPIRATION_MINUTES"
	EnvCatalogSeed   = "FRESHCART_CATALOG_SEED_PATH"
	EnvFreeDelivery  = "FRESHCART_DELIVERY_FREE_THRESHOLD"
	EnvDeliveryFee   = "FRESHCART_DELIVERY_FLAT_FEE"
	EnvSessionTTL    = "FRESHCART_SESSION_IDLE_TTL"
	EnvSessionMaxQty = "FRESHCART_SESSION_MAX_LINE_QTY"
	EnvSessionMax    = "FRESHCART_SESSION_MAX_ACTIVE"
	EnvCORSOrigins   = "FRESHCART_CORS_ALLOWED_ORIGINS"
	EnvDemoEmail     = "FRESHCART_DEMO_USER_EMAIL"
	EnvDemoPassword  = "FRESHCART_DEMO_USER_PASSWORD"
	EnvRedisURL      = "FRESHCART_REDIS_URL"
	EnvRateWindow    = "FRESHCART_AUTH_RATE_WINDOW"
)

type Config struct {
	App       AppConfig
	JWT       JWTConfig
	Password  PasswordConfig
	Catalog   CatalogConfig
	Delivery  DeliveryConfig
	Session   SessionConfig
	CORS      CORSConfig
	Demo      DemoUserConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Delivery.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Session.validate(); err != nil {
		return nil, err
	}
	if err := cfg.RateLimit.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FRESHCART_APP_ENV" required:"true"`
	Port         string `envconfig:"FRESHCART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FRESHCART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FRESHCART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type JWTConfig struct {
	Secret            string `envconfig:"FRESHCART_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FRESHCART_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"FRESHCART_JWT_EXPIRATION_MINUTES" default:"60"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FRESHCART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FRESHCART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FRESHCART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FRESHCART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FRESHCART_ARGON_KEY_LEN" default:"32"`
}

// CatalogConfig controls where the product catalog is loaded from.
// An empty SeedPath uses the catalog embedded in the binary.
type CatalogConfig struct {
	SeedPath         string `envconfig:"FRESHCART_CATALOG_SEED_PATH"`
	DefaultPageLimit int    `envconfig:"FRESHCART_CATALOG_DEFAULT_LIMIT" default:"50"`
}

type DeliveryConfig struct {
	FreeThreshold float64 `envconfig:"FRESHCART_DELIVERY_FREE_THRESHOLD" default:"500"`
	FlatFee       float64 `envconfig:"FRESHCART_DELIVERY_FLAT_FEE" default:"40"`
}

func (d DeliveryConfig) validate() error {
	if d.FreeThreshold < 0 {
		return fmt.Errorf("%s must be non-negative", EnvFreeDelivery)
	}
	if d.FlatFee < 0 {
		return fmt.Errorf("%s must be non-negative", EnvDeliveryFee)
	}
	return nil
}

type SessionConfig struct {
	Header          string        `envconfig:"FRESHCART_SESSION_HEADER" default:"X-Cart-Session"`
	IdleTTL         time.Duration `envconfig:"FRESHCART_SESSION_IDLE_TTL" default:"2h"`
	SweepInterval   time.Duration `envconfig:"FRESHCART_SESSION_SWEEP_INTERVAL" default:"5m"`
	MaxLineQuantity int           `envconfig:"FRESHCART_SESSION_MAX_LINE_QTY" default:"999"`
	MaxActive       int           `envconfig:"FRESHCART_SESSION_MAX_ACTIVE" default:"10000"`
}

func (s SessionConfig) validate() error {
	if s.IdleTTL <= 0 {
		return fmt.Errorf("%s must be positive", EnvSessionTTL)
	}
	if s.MaxLineQuantity <= 0 {
		return fmt.Errorf("%s must be positive", EnvSessionMaxQty)
	}
	if s.MaxActive <= 0 {
		return fmt.Errorf("%s must be positive", EnvSessionMax)
	}
	return nil
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"FRESHCART_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

// DemoUserConfig seeds one shopper account at startup when a password is set.
type DemoUserConfig struct {
	Name     string `envconfig:"FRESHCART_DEMO_USER_NAME" default:"Demo Shopper"`
	Email    string `envconfig:"FRESHCART_DEMO_USER_EMAIL" default:"demo@freshcart.local"`
	Password string `envconfig:"FRESHCART_DEMO_USER_PASSWORD"`
}

// Enabled reports whether the demo account should be created.
func (d DemoUserConfig) Enabled() bool {
	return d.Password != ""
}

// RateLimitConfig throttles the login and register endpoints per client IP and per email.
// A zero window disables throttling.
type RateLimitConfig struct {
	Window     time.Duration `envconfig:"FRESHCART_AUTH_RATE_WINDOW" default:"1m"`
	IPLimit    int           `envconfig:"FRESHCART_AUTH_RATE_IP_LIMIT" default:"30"`
	EmailLimit int           `envconfig:"FRESHCART_AUTH_RATE_EMAIL_LIMIT" default:"10"`
}

func (r RateLimitConfig) validate() error {
	if r.Window < 0 {
		return fmt.Errorf("%s must be non-negative", EnvRateWindow)
	}
	return nil
}

// RedisConfig points the rate limiter at a shared Redis. Without a URL or
// address the counters stay in process memory.
type RedisConfig struct {
	URL          string        `envconfig:"FRESHCART_REDIS_URL"`
	Address      string        `envconfig:"FRESHCART_REDIS_ADDRESS"`
	Password     string        `envconfig:"FRESHCART_REDIS_PASSWORD"`
	DB           int           `envconfig:"FRESHCART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FRESHCART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FRESHCART_REDIS_MIN_IDLE_CONNS" default:"1"`
	DialTimeout  time.Duration `envconfig:"FRESHCART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FRESHCART_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"FRESHCART_REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Enabled reports whether a Redis endpoint is configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}
