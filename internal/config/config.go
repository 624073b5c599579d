package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Cache drivers.
const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
	CacheDriverNone   = "none"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Messaging MessagingConfig
	Auth      AuthConfig
	Telemetry TelemetryConfig
	Sampling  SamplingConfig
}

type AppConfig struct {
	Port               string `env:"APP_PORT" envDefault:"3000"`
	BaseURL            string `env:"APP_BASE_URL" envDefault:"http://localhost:3000"`
	Environment        string `env:"GO_ENV" envDefault:"development"`
	LogFilePath        string `env:"LOG_FILE_PATH" envDefault:"app.log.csv"`
	CorsAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
	// InstanceName tags published events; empty means the hostname.
	InstanceName string `env:"INSTANCE_NAME"`
}

func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

type DatabaseConfig struct {
	Connection  string `env:"DB_CONNECTION_STRING"`
	Driver      string `env:"STORE_DRIVER" envDefault:"postgres"`
	LogLevel    string `env:"DB_LOG_LEVEL" envDefault:"warn"`
	AutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"true"`
}

type CacheConfig struct {
	Driver   string        `env:"CACHE_DRIVER" envDefault:"memory"`
	TTL      time.Duration `env:"CACHE_TTL" envDefault:"30s"`
	RedisURL string        `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
}

type MessagingConfig struct {
	// NatsURL empty keeps events on this instance.
	NatsURL    string `env:"NATS_URL"`
	LocalTopic string `env:"EXERCISE_EVENTS_TOPIC" envDefault:"exercise_events"`
}

type AuthConfig struct {
	// JwtSecret empty leaves the write routes open.
	JwtSecret string `env:"JWT_SECRET"`
}

type TelemetryConfig struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"false"`
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"workout-generator-be"`
}

type SamplingConfig struct {
	// Seed 0 seeds from the clock.
	Seed    uint64  `env:"SAMPLER_SEED" envDefault:"0"`
	MaxSeed float64 `env:"MAX_SEED" envDefault:"1000"`
}

// Parse reads the process environment into a Config and checks enumerated
// values.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads .env when present, then the environment. It panics on malformed
// values.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	cfg, err := Parse()
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Database.Driver)
	}
	switch c.Cache.Driver {
	case CacheDriverMemory, CacheDriverRedis, CacheDriverNone:
	default:
		return fmt.Errorf("unknown CACHE_DRIVER %q", c.Cache.Driver)
	}
	if c.Sampling.MaxSeed <= 0 {
		return fmt.Errorf("MAX_SEED must be positive, got %v", c.Sampling.MaxSeed)
	}
	return nil
}
