package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API     APIConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig

	LogoutWorkers int `env:"LOGOUT_WORKERS, default=2"`
}

type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=https://server.aptech.io"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=10s"`
}

type SessionConfig struct {
	Secret      string        `env:"SESSION_SECRET"`
	CookieName  string        `env:"SESSION_COOKIE, default=tm_session"`
	TTL         time.Duration `env:"SESSION_TTL,    default=24h"`
	Secure      bool          `env:"COOKIE_SECURE,  default=false"`
	FlashSecret string        `env:"FLASH_SECRET"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=task_console"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate rejects settings the console cannot run with.
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return fmt.Errorf("config: SESSION_SECRET is required")
	}
	if c.Session.FlashSecret == "" {
		c.Session.FlashSecret = c.Session.Secret
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive")
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load for process startup. It panics when the environment
// cannot be parsed.
func MustLoad(ctx context.Context) *Config {
	cfg, err := Load(ctx)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}
