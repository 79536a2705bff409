package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingDatabaseURI is returned when no connection string is configured.
// The panel cannot serve a single request without a database.
var ErrMissingDatabaseURI = errors.New("database not configured: set DATABASE_URI (or MONGODB_URI)")

type Config struct {
	Server ServerConfig `mapstructure:"server"`

	// Single connection string; backend (MongoDB vs Postgres) is detected
	// from it at startup.
	Database DatabaseConfig `mapstructure:"database"`

	// External auth provider (identity + role resolution).
	Auth AuthConfig `mapstructure:"auth"`

	// Hosting provider env-var sync (optional).
	Render RenderConfig `mapstructure:"render"`

	// Redis (optional, rate limiting)
	Redis RedisConfig `mapstructure:"redis"`

	// NATS (optional, activity event stream)
	NATS NATSConfig `mapstructure:"nats"`

	// Prometheus
	Prometheus PrometheusConfig `mapstructure:"prometheus"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	URI string `mapstructure:"uri"`
}

type AuthConfig struct {
	URL     string `mapstructure:"url"`
	AnonKey string `mapstructure:"anon_key"`
}

type RenderConfig struct {
	APIKey    string `mapstructure:"api_key"`
	ServiceID string `mapstructure:"service_id"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type NATSConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

type PrometheusConfig struct {
	Port int `mapstructure:"port"`
}

func Load() (*Config, error) {
	// Load local .env for development (ignored when missing).
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	// Search for config/config.yaml (plus root for overrides).
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Allow environment variables to override YAML entries.
	v.SetEnvPrefix("")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Preserve legacy env variable names.
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}

	return &cfg, nil
}

// Validate checks the hard requirements; everything else is optional.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.URI) == "" {
		return ErrMissingDatabaseURI
	}
	return nil
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("server.addr", "SERVER_ADDR")

	// The bot stack historically used MONGODB_URI even for Postgres.
	v.BindEnv("database.uri", "DATABASE_URI", "MONGODB_URI")

	// Auth provider
	v.BindEnv("auth.url", "AUTH_URL", "SUPABASE_URL")
	v.BindEnv("auth.anon_key", "AUTH_ANON_KEY", "SUPABASE_ANON_KEY")

	// Hosting provider
	v.BindEnv("render.api_key", "RENDER_API_KEY")
	v.BindEnv("render.service_id", "RENDER_SERVICE_ID")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")

	// NATS
	v.BindEnv("nats.host", "NATS_HOST")
	v.BindEnv("nats.port", "NATS_PORT")
	v.BindEnv("nats.user", "NATS_USER")
	v.BindEnv("nats.password", "NATS_PASSWORD")

	// Prometheus
	v.BindEnv("prometheus.port", "PROM_PORT")
}
