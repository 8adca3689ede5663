package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application. It is built once at
// startup and passed by reference into the services that need it; nothing
// reads environment variables after this point.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Events   EventsConfig
	Env      string // "development" or "production"
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings.
// Driver is either "sqlite" or "postgres"; DSN is driver-specific.
type DatabaseConfig struct {
	Driver string
	DSN    string
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// EventsConfig holds the message broker settings. An empty URL disables
// event publishing entirely.
type EventsConfig struct {
	URL   string
	Queue string
}

// Load reads configuration from environment variables with sane defaults
// for local development.
func Load() *Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("SHUTDOWN_TIMEOUT", 5*time.Second)
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "pustaka.db")
	viper.SetDefault("JWT_SECRET", "dev-secret-change-in-production")
	viper.SetDefault("JWT_ACCESS_TTL", 7*24*time.Hour)
	viper.SetDefault("JWT_REFRESH_TTL", 30*24*time.Hour)
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AMQP_QUEUE", "book_events")
	viper.AutomaticEnv()

	return &Config{
		Server: ServerConfig{
			Port:            viper.GetString("APP_PORT"),
			ShutdownTimeout: viper.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Driver: viper.GetString("DB_DRIVER"),
			DSN:    viper.GetString("DB_DSN"),
		},
		JWT: JWTConfig{
			Secret:     viper.GetString("JWT_SECRET"),
			AccessTTL:  viper.GetDuration("JWT_ACCESS_TTL"),
			RefreshTTL: viper.GetDuration("JWT_REFRESH_TTL"),
		},
		Events: EventsConfig{
			URL:   viper.GetString("AMQP_URL"),
			Queue: viper.GetString("AMQP_QUEUE"),
		},
		Env: viper.GetString("APP_ENV"),
	}
}

// IsProduction reports whether the app runs with production error redaction.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
