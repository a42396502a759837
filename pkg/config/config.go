package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	CORS         CORSConfig
	Session      SessionConfig
	AdminJWT     AdminJWTConfig
	Firestore    FirestoreConfig
	DB           DBConfig
	Redis        RedisConfig
	RateLimit    RateLimitConfig
	Checkout     CheckoutConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DECANTIQ_APP_ENV" required:"true"`
	Port         string `envconfig:"DECANTIQ_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"DECANTIQ_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DECANTIQ_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"DECANTIQ_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type SessionConfig struct {
	CookieName string        `envconfig:"DECANTIQ_SESSION_COOKIE_NAME" default:"decantiq_session"`
	TTL        time.Duration `envconfig:"DECANTIQ_SESSION_TTL" default:"720h"`
	Secure     bool          `envconfig:"DECANTIQ_SESSION_COOKIE_SECURE" default:"true"`
}

type AdminJWTConfig struct {
	Secret            string `envconfig:"DECANTIQ_ADMIN_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"DECANTIQ_ADMIN_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"DECANTIQ_ADMIN_JWT_EXPIRATION_MINUTES" default:"60"`
}

type FirestoreConfig struct {
	ProjectID          string `envconfig:"DECANTIQ_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON    string `envconfig:"DECANTIQ_GCP_CREDENTIALS_JSON"`
	PerfumesCollection string `envconfig:"DECANTIQ_FS_PERFUMES_COLLECTION" default:"perfumes"`
	CuratedCollection  string `envconfig:"DECANTIQ_FS_COLLECTIONS_COLLECTION" default:"collections"`
}

type DBConfig struct {
	DSN string `envconfig:"DECANTIQ_DB_DSN" required:"true"`

	MaxOpenConns    int           `envconfig:"DECANTIQ_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DECANTIQ_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DECANTIQ_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DECANTIQ_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DECANTIQ_REDIS_URL" required:"true"`
	Address      string        `envconfig:"DECANTIQ_REDIS_ADDR"`
	Password     string        `envconfig:"DECANTIQ_REDIS_PASSWORD"`
	DB           int           `envconfig:"DECANTIQ_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DECANTIQ_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DECANTIQ_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DECANTIQ_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DECANTIQ_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DECANTIQ_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type RateLimitConfig struct {
	WriteWindow time.Duration `envconfig:"DECANTIQ_RATE_LIMIT_WRITE_WINDOW" default:"1m"`
	WriteLimit  int64         `envconfig:"DECANTIQ_RATE_LIMIT_WRITE_LIMIT" default:"60"`
}

type CheckoutConfig struct {
	IdempotencyTTL time.Duration `envconfig:"DECANTIQ_CHECKOUT_IDEMPOTENCY_TTL" default:"168h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"DECANTIQ_AUTO_MIGRATE" default:"false"`
}
