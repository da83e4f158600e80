package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Backend  BackendConfig
	Redis    RedisConfig
	Profile  ProfileConfig
	Checkout CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Backend.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"THALI_APP_ENV" required:"true"`
	Port         string `envconfig:"THALI_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"THALI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"THALI_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BackendConfig points the storefront at the food-ordering API.
type BackendConfig struct {
	BaseURL string        `envconfig:"THALI_BACKEND_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"THALI_BACKEND_TIMEOUT" default:"15s"`
}

func (b BackendConfig) validate() error {
	parsed, err := url.Parse(b.BaseURL)
	if err != nil {
		return fmt.Errorf("parsing backend base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("backend base url must be http(s), got %q", b.BaseURL)
	}
	if b.Timeout <= 0 {
		return fmt.Errorf("backend timeout must be positive")
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"THALI_REDIS_URL"`
	Address      string        `envconfig:"THALI_REDIS_ADDR"`
	Password     string        `envconfig:"THALI_REDIS_PASSWORD"`
	DB           int           `envconfig:"THALI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"THALI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"THALI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"THALI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"THALI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"THALI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// ProfileConfig controls the on-disk profile used when the storefront
// runs without Redis (single-visitor/local mode).
type ProfileConfig struct {
	Dir string `envconfig:"THALI_PROFILE_DIR" default:".thali"`
}

type CheckoutConfig struct {
	IdempotencyTTL time.Duration `envconfig:"THALI_CHECKOUT_IDEMPOTENCY_TTL" default:"168h"`
	VisitorTTL     time.Duration `envconfig:"THALI_VISITOR_TTL" default:"720h"`
}
