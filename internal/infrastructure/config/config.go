package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string `env:"PORT, default=5000"`
	Env         string `env:"ENV, default=development"`
	LogLevel    string `env:"LOG_LEVEL, default=info"`
	ServiceName string `env:"SERVICE_NAME, default=recon-api"`

	Auth      AuthConfig
	Admin     AdminConfig
	HTTP      HTTPConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Telemetry TelemetryConfig
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
}

// AdminConfig seeds the first admin account when none exists.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL, default=admin@recon.com"`
	Password string `env:"ADMIN_PASSWORD, default=admin123"`
	Username string `env:"ADMIN_USERNAME, default=Admin"`
}

type HTTPConfig struct {
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS, default=*"`
	AuthRateLimit      float64       `env:"AUTH_RATE_LIMIT, default=5"`
	StatsCacheTTL      time.Duration `env:"STATS_CACHE_TTL, default=30s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB, default=recon"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// TelemetryConfig enables OTLP trace export when Endpoint is set.
type TelemetryConfig struct {
	Endpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Insecure bool   `env:"OTEL_INSECURE, default=false"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("load config: JWT_SECRET must not be blank")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("load config: TOKEN_TTL must be positive")
	}
	if c.HTTP.AuthRateLimit < 0 {
		return fmt.Errorf("load config: AUTH_RATE_LIMIT must not be negative")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}
