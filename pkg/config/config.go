package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the envconfig namespace shared by every binary.
const EnvPrefix = "salesdesk"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Query         QueryConfig
	Redis         RedisConfig
	AuthRateLimit AuthRateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("SALESDESK_DB_DSN is required")
	}
	return &cfg, nil
}

type AppConfig struct {
	Env      string `envconfig:"SALESDESK_APP_ENV" default:"dev"`
	Port     string `envconfig:"SALESDESK_APP_PORT" default:"8080"`
	LogLevel string `envconfig:"SALESDESK_LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN             string        `envconfig:"SALESDESK_DB_DSN"`
	MaxOpenConns    int           `envconfig:"SALESDESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SALESDESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SALESDESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SALESDESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// JWTConfig drives session token minting. Tokens stay valid for TTL (30 days
// unless overridden).
type JWTConfig struct {
	Secret string        `envconfig:"SALESDESK_JWT_SECRET" required:"true"`
	Issuer string        `envconfig:"SALESDESK_JWT_ISSUER" default:"salesdesk"`
	TTL    time.Duration `envconfig:"SALESDESK_JWT_TTL" default:"720h"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SALESDESK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SALESDESK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SALESDESK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SALESDESK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SALESDESK_ARGON_KEY_LEN" default:"32"`
}

// QueryConfig caps list endpoints so a client cannot request unbounded pages.
type QueryConfig struct {
	DefaultLimit int `envconfig:"SALESDESK_QUERY_DEFAULT_LIMIT" default:"10"`
	MaxLimit     int `envconfig:"SALESDESK_QUERY_MAX_LIMIT" default:"100"`
}

// RedisConfig is optional; auth rate limiting degrades to a no-op without it.
type RedisConfig struct {
	URL string `envconfig:"SALESDESK_REDIS_URL"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"SALESDESK_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"SALESDESK_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"SALESDESK_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"SALESDESK_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"SALESDESK_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"SALESDESK_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}
