// Package config loads the engine's runtime configuration from a TOML
// file with github.com/BurntSushi/toml, the same way cmd/bookingengine
// composes its Database/Server/Logs/Metrics sections at startup.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration tree parsed from config.toml.
type Config struct {
	Database       Database       `toml:"database"`
	Server         Server         `toml:"server"`
	Logs           Logs           `toml:"logs"`
	Metrics        Metrics        `toml:"metrics"`
	PaymentGateway PaymentGateway `toml:"payment_gateway"`
	Notifications  Notifications  `toml:"notifications"`
	Events         Events         `toml:"events"`
}

// Database holds the Postgres connection parameters and pool tuning.
type Database struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"db_name"`
	SSLMode         string `toml:"ssl_mode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime_seconds"`
}

// DSN builds the lib/pq connection string from the Database section.
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Server holds the HTTP server's listen port and timeouts.
type Server struct {
	HTTPPort        int    `toml:"http_port"`
	ReadTimeout     int    `toml:"read_timeout_seconds"`
	WriteTimeout    int    `toml:"write_timeout_seconds"`
	IdleTimeout     int    `toml:"idle_timeout_seconds"`
	ShutdownTimeout int    `toml:"shutdown_timeout_seconds"`
	FrontendURL     string `toml:"frontend_url"`
}

// Logs controls pkg/logger's target and level.
type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Metrics controls whether pkg/metrics and the /metrics endpoint are
// wired in at all.
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// PaymentGateway holds the outbound gateway's shared secret and the
// separate secret used to verify inbound webhook signatures.
type PaymentGateway struct {
	Secret        string `toml:"secret"`
	WebhookSecret string `toml:"webhook_secret"`
}

// Notifications controls the optional Telegram notifier. When Enabled
// is false (or BotToken is empty) internal/infra/notify is never
// wired in, so a booking command never blocks on it.
type Notifications struct {
	Enabled  bool   `toml:"enabled"`
	BotToken string `toml:"bot_token"`
}

// Events controls the RabbitMQ domain-event publisher. When Enabled is
// false internal/infra/events falls back to a no-op publisher, so a
// broker outage never blocks a booking command.
type Events struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// Load parses path into a Config, failing if required fields needed to
// reach the database or the payment gateway, or the frontend URL, are
// missing.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.db_name are required")
	}
	if c.Server.HTTPPort == 0 {
		return fmt.Errorf("config: server.http_port is required")
	}
	if c.Server.FrontendURL == "" {
		return fmt.Errorf("config: server.frontend_url is required")
	}
	if c.PaymentGateway.Secret == "" {
		return fmt.Errorf("config: payment_gateway.secret is required")
	}
	if c.PaymentGateway.WebhookSecret == "" {
		return fmt.Errorf("config: payment_gateway.webhook_secret is required")
	}
	return nil
}
